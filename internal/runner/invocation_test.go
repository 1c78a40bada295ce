// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionsResolve_DefaultsMaxBuffer(t *testing.T) {
	in := Options{Dir: "/tmp"}
	out := in.Resolve()

	assert.Equal(t, DefaultMaxBuffer, out.MaxBuffer)
	assert.Equal(t, "/tmp", out.Dir)
	assert.Zero(t, in.MaxBuffer, "caller options must not be mutated")
}

func TestOptionsResolve_KeepsExplicitMaxBuffer(t *testing.T) {
	assert.Equal(t, int64(10), Options{MaxBuffer: 10}.Resolve().MaxBuffer)
}

func TestInvocationResolve_DeepCopy(t *testing.T) {
	in := Invocation{
		Args:    []string{"a", "b"},
		Options: Options{Env: map[string]string{"K": "V"}},
	}

	out := in.Resolve()
	out.Args[0] = "changed"
	out.Options.Env["K"] = "changed"

	assert.Equal(t, []string{"a", "b"}, in.Args)
	assert.Equal(t, "V", in.Options.Env["K"])
}

func TestInvocationWithArgs_DoesNotAlias(t *testing.T) {
	args := make([]string, 1, 4)
	args[0] = "url"
	in := Invocation{Args: args}

	a := in.WithArgs("-o", "-")
	b := in.WithArgs("--dump-json")

	assert.Equal(t, []string{"url", "-o", "-"}, a.Args)
	assert.Equal(t, []string{"url", "--dump-json"}, b.Args)
	assert.Equal(t, []string{"url"}, in.Args)
}

func TestInvocationHasFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{name: "short flag", args: []string{"url", "-f", "22"}, want: true},
		{name: "long flag", args: []string{"--format", "best", "url"}, want: true},
		{name: "long flag with equals", args: []string{"--format=best"}, want: true},
		{name: "absent", args: []string{"url", "--dump-json"}, want: false},
		{name: "short flag attached value", args: []string{"-fbestaudio", "url"}, want: true},
		{name: "similar prefix", args: []string{"--format-sort", "res"}, want: false},
		{name: "other short flag", args: []string{"-x", "url"}, want: false},
		{name: "empty", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Invocation{Args: tt.args}.HasFlag("-f", "--format"))
		})
	}
}

func TestOptionsEnviron(t *testing.T) {
	t.Setenv("YTDLWRAP_TEST_INHERITED", "1")
	t.Setenv("YTDLWRAP_TEST_OVERRIDE", "old")

	env := Options{Env: map[string]string{
		"YTDLWRAP_TEST_OVERRIDE": "new",
		"YTDLWRAP_TEST_ADDED":    "x",
	}}.environ()

	assert.Contains(t, env, "YTDLWRAP_TEST_INHERITED=1")
	assert.Contains(t, env, "YTDLWRAP_TEST_OVERRIDE=new")
	assert.NotContains(t, env, "YTDLWRAP_TEST_OVERRIDE=old")
	assert.Contains(t, env, "YTDLWRAP_TEST_ADDED=x")

	isolated := Options{NoInheritEnv: true, Env: map[string]string{"B": "2", "A": "1"}}.environ()
	assert.Equal(t, []string{"A=1", "B=2"}, isolated)
}

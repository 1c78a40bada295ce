// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"maps"
	"os"
	"slices"
	"strings"
)

// DefaultMaxBuffer caps captured output when Options.MaxBuffer is unset.
const DefaultMaxBuffer int64 = 1024 * 1024 * 1024

// Options controls how the child process is launched.
type Options struct {
	Dir          string            // Working directory, empty inherits ours.
	Env          map[string]string // Added to (or replacing) the inherited environment.
	NoInheritEnv bool              // Start from an empty environment instead of os.Environ().
	MaxBuffer    int64             // Maximum bytes captured per output channel.
	Stdin        *os.File          // Child stdin, defaults to the null device.
	Signals      <-chan os.Signal  // Signals to forward to the child, nil disables forwarding.
}

// Invocation is one launch of the download tool: its arguments and options.
type Invocation struct {
	Args    []string
	Options Options
}

// NewInvocation returns an Invocation with default options.
func NewInvocation(args ...string) Invocation {
	return Invocation{Args: args}
}

// Resolve returns a copy of o with defaults applied. o is not modified.
func (o Options) Resolve() Options {
	r := o
	r.Env = maps.Clone(o.Env)

	if r.MaxBuffer <= 0 {
		r.MaxBuffer = DefaultMaxBuffer
	}

	return r
}

// Resolve returns a deep copy of inv with resolved options.
func (inv Invocation) Resolve() Invocation {
	return Invocation{
		Args:    slices.Clone(inv.Args),
		Options: inv.Options.Resolve(),
	}
}

// WithArgs returns a copy of inv with extra appended to its arguments.
func (inv Invocation) WithArgs(extra ...string) Invocation {
	return Invocation{
		Args:    slices.Concat(inv.Args, extra),
		Options: inv.Options,
	}
}

// HasFlag reports whether any argument is one of names, either on its own
// ("--format best"), in the "--format=best" form, or for a single-letter
// name with the value attached ("-fbest").
func (inv Invocation) HasFlag(names ...string) bool {
	for _, a := range inv.Args {
		for _, n := range names {
			if a == n || hasAttachedValue(a, n) {
				return true
			}
		}
	}

	return false
}

func hasAttachedValue(arg, name string) bool {
	if strings.HasPrefix(name, "--") {
		return strings.HasPrefix(arg, name+"=")
	}

	return len(name) == 2 && name[0] == '-' && strings.HasPrefix(arg, name)
}

// environ builds the child environment. Keys in Env are applied in sorted
// order and replace inherited values of the same name.
func (o Options) environ() []string {
	// A nil slice would make the child inherit our environment.
	env := []string{}
	if !o.NoInheritEnv {
		env = os.Environ()
	}

	if len(o.Env) == 0 {
		return env
	}

	env = slices.DeleteFunc(env, func(kv string) bool {
		k, _, _ := strings.Cut(kv, "=")
		_, override := o.Env[k]

		return override
	})

	for _, k := range slices.Sorted(maps.Keys(o.Env)) {
		env = append(env, k+"="+o.Env[k])
	}

	return env
}

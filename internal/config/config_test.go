// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"testing"

	"github.com/matt-FFFFFF/ytdlwrap/internal/runner"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}

	stubs := gostub.Stub(&FsFactory, func() afero.Fs {
		return fs
	})
	t.Cleanup(stubs.Reset)

	return fs
}

func TestLoad_Empty(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoad_YAML(t *testing.T) {
	fs := stubFs(t, map[string]string{
		"/etc/ytdlwrap.yaml": `
binary_path: /usr/local/bin/yt-dlp
working_dir: /downloads
max_buffer: 1048576
log_level: debug
env:
  LC_ALL: C.UTF-8
default_args:
  - --no-playlist
  - --restrict-filenames
`,
	})
	require.NoError(t, fs.MkdirAll("/downloads", 0o755))

	cfg, err := Load("/etc/ytdlwrap.yaml")
	require.NoError(t, err)
	assert.Equal(t, &Config{
		BinaryPath:  "/usr/local/bin/yt-dlp",
		WorkingDir:  "/downloads",
		MaxBuffer:   1048576,
		LogLevel:    "debug",
		Env:         map[string]string{"LC_ALL": "C.UTF-8"},
		DefaultArgs: []string{"--no-playlist", "--restrict-filenames"},
	}, cfg)
}

func TestLoad_YAMLUnknownField(t *testing.T) {
	stubFs(t, map[string]string{"/c.yml": "binary: yt-dlp\n"})

	_, err := Load("/c.yml")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParseConfigFile)
}

func TestLoad_HCL(t *testing.T) {
	stubs := gostub.New()
	stubs.SetEnv("YTDLWRAP_TEST_HOME", "/home/tester")
	t.Cleanup(stubs.Reset)

	stubFs(t, map[string]string{
		"/c.hcl": `
binary_path  = "${env.YTDLWRAP_TEST_HOME}/bin/yt-dlp"
max_buffer   = 2048
default_args = ["--no-progress"]
env = {
  HOME = env.YTDLWRAP_TEST_HOME
}
`,
	})

	cfg, err := Load("/c.hcl")
	require.NoError(t, err)
	assert.Equal(t, "/home/tester/bin/yt-dlp", cfg.BinaryPath)
	assert.Equal(t, int64(2048), cfg.MaxBuffer)
	assert.Equal(t, []string{"--no-progress"}, cfg.DefaultArgs)
	assert.Equal(t, map[string]string{"HOME": "/home/tester"}, cfg.Env)
}

func TestLoad_HCLSyntaxError(t *testing.T) {
	stubFs(t, map[string]string{"/c.hcl": `binary_path = `})

	_, err := Load("/c.hcl")
	assert.ErrorIs(t, err, ErrParseConfigFile)
}

func TestLoad_Errors(t *testing.T) {
	stubFs(t, map[string]string{"/c.toml": `binary_path = "x"`})

	_, err := Load("/missing.yaml")
	assert.ErrorIs(t, err, ErrReadConfigFile)

	_, err = Load("/c.toml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	stubFs(t, nil)

	cfg := &Config{
		MaxBuffer:  -1,
		LogLevel:   "loud",
		WorkingDir: "/nowhere",
		Env:        map[string]string{"A=B": "x"},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "max_buffer")
	assert.Contains(t, err.Error(), "log_level")
	assert.Contains(t, err.Error(), "working_dir")
	assert.Contains(t, err.Error(), "env key")
}

func TestOverride(t *testing.T) {
	cfg := &Config{BinaryPath: "yt-dlp", WorkingDir: "/a"}

	cfg.Override("", "")
	assert.Equal(t, "yt-dlp", cfg.BinaryPath)
	assert.Equal(t, "/a", cfg.WorkingDir)

	cfg.Override("/opt/youtube-dl", "/b")
	assert.Equal(t, "/opt/youtube-dl", cfg.BinaryPath)
	assert.Equal(t, "/b", cfg.WorkingDir)
}

func TestInvocation(t *testing.T) {
	cfg := &Config{
		WorkingDir:  "/downloads",
		Env:         map[string]string{"LC_ALL": "C"},
		DefaultArgs: []string{"--no-playlist"},
	}

	inv := cfg.Invocation("URL")
	assert.Equal(t, []string{"--no-playlist", "URL"}, inv.Args)
	assert.Equal(t, "/downloads", inv.Options.Dir)
	assert.Equal(t, runner.DefaultMaxBuffer, inv.Options.MaxBuffer)

	inv.Options.Env["LC_ALL"] = "changed"
	inv.Args[0] = "changed"
	assert.Equal(t, "C", cfg.Env["LC_ALL"])
	assert.Equal(t, "--no-playlist", cfg.DefaultArgs[0])
}

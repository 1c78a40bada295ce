// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/matt-FFFFFF/ytdlwrap/internal/runner"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
)

// PathEnvVar names the config file used when --config is not given.
const PathEnvVar = "YTDLWRAP_CONFIG"

var (
	// ErrReadConfigFile is returned when the config file cannot be read.
	ErrReadConfigFile = errors.New("failed to read config file")
	// ErrParseConfigFile is returned when the config file cannot be decoded.
	ErrParseConfigFile = errors.New("failed to parse config file")
	// ErrUnsupportedFormat is returned for a config file extension that is neither YAML nor HCL.
	ErrUnsupportedFormat = errors.New("unsupported config file format, use .yaml, .yml or .hcl")
	// ErrInvalidConfig is returned when a decoded config fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

var logLevels = []string{"", "debug", "info", "warn", "warning", "error"}

// Config holds the settings applied to every invocation.
type Config struct {
	BinaryPath  string            `yaml:"binary_path" hcl:"binary_path,optional"`
	WorkingDir  string            `yaml:"working_dir" hcl:"working_dir,optional"`
	MaxBuffer   int64             `yaml:"max_buffer" hcl:"max_buffer,optional"`
	Env         map[string]string `yaml:"env" hcl:"env,optional"`
	DefaultArgs []string          `yaml:"default_args" hcl:"default_args,optional"`
	LogLevel    string            `yaml:"log_level" hcl:"log_level,optional"`
}

// Load reads and validates the file at path. An empty path returns an empty Config.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}

	data, err := afero.ReadFile(FsFactory(), path)
	if err != nil {
		return nil, errors.Join(ErrReadConfigFile, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.UnmarshalWithOptions(data, cfg, yaml.Strict())
	case ".hcl":
		err = hclsimple.Decode(filepath.Base(path), data, evalContext(), cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	if err != nil {
		return nil, errors.Join(ErrParseConfigFile, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports every problem with the config at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.MaxBuffer < 0 {
		result = multierror.Append(result, fmt.Errorf("max_buffer must not be negative, got %d", c.MaxBuffer))
	}

	if !slices.Contains(logLevels, strings.ToLower(c.LogLevel)) {
		result = multierror.Append(result, fmt.Errorf("log_level %q is not one of debug, info, warn, error", c.LogLevel))
	}

	if c.WorkingDir != "" {
		if ok, err := afero.DirExists(FsFactory(), c.WorkingDir); err != nil || !ok {
			result = multierror.Append(result, fmt.Errorf("working_dir %q is not a directory", c.WorkingDir))
		}
	}

	for k := range c.Env {
		if k == "" || strings.ContainsAny(k, "=\x00") {
			result = multierror.Append(result, fmt.Errorf("env key %q is not a valid variable name", k))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}

	return nil
}

// Override replaces the binary path and working directory with non-empty values.
func (c *Config) Override(binaryPath, workingDir string) {
	if binaryPath != "" {
		c.BinaryPath = binaryPath
	}

	if workingDir != "" {
		c.WorkingDir = workingDir
	}
}

// Invocation builds an invocation of args preceded by the configured default arguments.
func (c *Config) Invocation(args ...string) runner.Invocation {
	inv := runner.NewInvocation(slices.Concat(c.DefaultArgs, args)...)
	inv.Options.Dir = c.WorkingDir
	inv.Options.MaxBuffer = c.MaxBuffer

	if len(c.Env) > 0 {
		inv.Options.Env = maps.Clone(c.Env)
	}

	return inv.Resolve()
}

// evalContext exposes the host environment to HCL expressions as env.NAME.
func evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)

	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}

		vars[k] = cty.StringVal(v)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}

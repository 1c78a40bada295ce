// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the ytdlwrap command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/ytdlwrap"
	"github.com/matt-FFFFFF/ytdlwrap/cmd/cmdstate"
	"github.com/matt-FFFFFF/ytdlwrap/cmd/ytdlwrap/execute"
	"github.com/matt-FFFFFF/ytdlwrap/cmd/ytdlwrap/info"
	"github.com/matt-FFFFFF/ytdlwrap/cmd/ytdlwrap/query"
	"github.com/matt-FFFFFF/ytdlwrap/cmd/ytdlwrap/releases"
	"github.com/matt-FFFFFF/ytdlwrap/cmd/ytdlwrap/shell"
	"github.com/matt-FFFFFF/ytdlwrap/cmd/ytdlwrap/stream"
	"github.com/matt-FFFFFF/ytdlwrap/internal/config"
	"github.com/matt-FFFFFF/ytdlwrap/internal/ctxlog"
	"github.com/matt-FFFFFF/ytdlwrap/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

const (
	binaryFlag    = "binary"
	configFlag    = "config"
	cwdFlag       = "cwd"
	binaryEnvVar  = "YTDLWRAP_BINARY"
	versionFormat = "%s (commit: %s)"
)

// newRootCmd builds the root command for the CLI.
func newRootCmd() *cli.Command {
	return &cli.Command{
		Commands: append([]*cli.Command{
			execute.ExecCmd,
			info.InfoCmd,
			stream.StreamCmd,
			releases.ReleasesCmd,
			releases.InstallCmd,
			shell.ShellCmd,
		}, query.Commands()...),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     binaryFlag,
				Aliases:  []string{"b"},
				Usage:    "Path or name of the download tool binary",
				Sources:  cli.EnvVars(binaryEnvVar),
				OnlyOnce: true,
			},
			&cli.StringFlag{
				Name:      configFlag,
				Aliases:   []string{"c"},
				Usage:     "Configuration file (.yaml, .yml or .hcl)",
				Sources:   cli.EnvVars(config.PathEnvVar),
				TakesFile: true,
				OnlyOnce:  true,
			},
			&cli.StringFlag{
				Name:      cwdFlag,
				Usage:     "Working directory for the download tool",
				TakesFile: true,
				OnlyOnce:  true,
			},
		},
		Before:    before,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Name:      "ytdlwrap",
		Description: `ytdlwrap drives youtube-dl compatible download tools. It streams their output,
extracts download progress, reads media metadata as JSON and can pipe the downloaded
media straight to a file or another program.`,
		Usage:     "ytdlwrap exec -- https://www.youtube.com/watch?v=...",
		Version:   fmt.Sprintf(versionFormat, ytdlwrap.Version, ytdlwrap.Commit),
		Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Authors: []any{
			"Matt White (matt-FFFFFF)",
		},
		EnableShellCompletion: true,
	}
}

// before loads the configuration, applies the global flags and stores the
// resulting state for the subcommands.
func before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := config.Load(cmd.String(configFlag))
	if err != nil {
		return ctx, cli.Exit(err.Error(), 1)
	}

	cfg.Override(cmd.String(binaryFlag), cmd.String(cwdFlag))

	if cfg.LogLevel != "" && os.Getenv(ctxlog.LevelEnvVar) == "" {
		ctxlog.LevelVar.Set(ctxlog.ParseLevel(cfg.LogLevel))
	}

	ctxlog.Debug(ctx, "configuration loaded",
		"binary", cfg.BinaryPath,
		"cwd", cfg.WorkingDir,
		"defaultArgs", cfg.DefaultArgs,
	)

	return cmdstate.WithState(ctx, cmdstate.New(cfg)), nil
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

	defer cancel()

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel)

	err := newRootCmd().Run(ctx, os.Args) // Err is handled by cli framework

	if ctx.Err() != nil {
		ctxlog.Logger(ctx).Error("command terminated due to cancellation", "error", ctx.Err())
		os.Exit(1)
	}

	if err != nil {
		ctxlog.Logger(ctx).Error("command execution failed", "error", err)
		os.Exit(1)
	}
}

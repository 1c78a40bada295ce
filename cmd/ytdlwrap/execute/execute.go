// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package execute contains the exec command, which runs the download tool and
// relays its output as it happens.
package execute

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/matt-FFFFFF/ytdlwrap/cmd/cmdstate"
	"github.com/matt-FFFFFF/ytdlwrap/internal/ctxlog"
	"github.com/matt-FFFFFF/ytdlwrap/internal/signalbroker"
	"github.com/matt-FFFFFF/ytdlwrap/internal/tui"
	"github.com/matt-FFFFFF/ytdlwrap/internal/ytdl"
	"github.com/urfave/cli/v3"
)

const (
	tuiFlag          = "tui"
	jsonProgressFlag = "json-progress"
)

// Options controls how an execution is presented.
type Options struct {
	// TUI shows a progress bar instead of the raw output.
	TUI bool
	// JSONProgress replaces standard output with one JSON progress record per line.
	JSONProgress bool
	Stdout       io.Writer
	Stderr       io.Writer
}

// ExecCmd runs the download tool with the given arguments.
var ExecCmd = &cli.Command{
	Name:      "exec",
	Usage:     "Run the download tool and stream its output",
	ArgsUsage: "-- [tool arguments...]",
	Description: `Runs the download tool with the arguments after --, passing its standard output
and standard error through as they are written. Download progress can be shown as a
progress bar (--tui) or as JSON records (--json-progress).

The first interrupt is passed on to the tool; a second one kills it.`,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:        tuiFlag,
			Aliases:     []string{"t"},
			Usage:       "Show an interactive progress bar",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
		&cli.BoolFlag{
			Name:        jsonProgressFlag,
			Aliases:     []string{"j"},
			Usage:       "Write parsed progress records as JSON lines instead of the tool's output",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	state, err := cmdstate.FromContext(ctx)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	args := cmd.Args().Slice()
	if len(args) == 0 {
		logger.Error("Please give the arguments for the download tool after --.")
		return cli.Exit("", 1)
	}

	err = Run(ctx, state, args, Options{
		TUI:          cmd.Bool(tuiFlag),
		JSONProgress: cmd.Bool(jsonProgressFlag),
		Stdout:       cmd.Root().Writer,
		Stderr:       cmd.Root().ErrWriter,
	})
	if err != nil {
		logger.Error("download tool failed", "error", err)
	}

	return cmdstate.Exit(err)
}

// Run executes args and presents the execution according to opts.
// It returns nil when the tool exits 0.
func Run(ctx context.Context, state *cmdstate.State, args []string, opts Options) error {
	sigCh := signalbroker.New(ctx)
	defer signalbroker.Stop(sigCh)

	inv := state.Invocation(args...)
	inv.Options.Signals = sigCh

	if opts.TUI {
		buf := new(bytes.Buffer)
		tuiCtx := ctxlog.NewForTUI(ctx, buf)

		err := tui.NewRunner(strings.Join(args, " ")).Run(tuiCtx, state.Client.Exec(tuiCtx, inv))

		buf.WriteTo(opts.Stderr) //nolint:errcheck

		return err
	}

	e := state.Client.Exec(ctx, inv)
	defer e.Close()

	return Print(ctx, e, opts)
}

// Print writes the events of e to the writers in opts until the execution ends.
func Print(ctx context.Context, e *ytdl.Execution, opts Options) error {
	enc := json.NewEncoder(opts.Stdout)

	for ev := range e.Events() {
		switch ev := ev.(type) {
		case ytdl.StdoutEvent:
			if !opts.JSONProgress {
				io.WriteString(opts.Stdout, ev.Text) //nolint:errcheck
			}
		case ytdl.StderrEvent:
			io.WriteString(opts.Stderr, ev.Text) //nolint:errcheck
		case ytdl.ProgressEvent:
			if opts.JSONProgress {
				if err := enc.Encode(ev.Progress); err != nil {
					ctxlog.Warn(ctx, "failed to write progress record", "error", err)
				}
			}
		case ytdl.ClosedEvent:
			ctxlog.Debug(ctx, "download tool exited", "exitCode", ev.ExitCode)
		case ytdl.FailedEvent:
			ctxlog.Debug(ctx, "download tool failed", "exitCode", ev.Err.ExitCode)
		}
	}

	return e.Wait()
}

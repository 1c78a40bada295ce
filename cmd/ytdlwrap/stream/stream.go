// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package stream contains the stream command, which copies the downloaded
// media bytes to a file or standard output.
package stream

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/matt-FFFFFF/ytdlwrap/cmd/cmdstate"
	"github.com/matt-FFFFFF/ytdlwrap/internal/ctxlog"
	"github.com/matt-FFFFFF/ytdlwrap/internal/runner"
	"github.com/matt-FFFFFF/ytdlwrap/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

const outFlag = "out"

var (
	// ErrCreateOutput is returned when the output file cannot be created.
	ErrCreateOutput = errors.New("failed to create output file")
	// ErrCopy is returned when the stream cannot be copied to the output.
	ErrCopy = errors.New("failed to copy stream")
)

// StreamCmd writes the media the tool downloads to a file or standard output.
var StreamCmd = &cli.Command{
	Name:      "stream",
	Usage:     "Download a URL and write the media bytes to a file or stdout",
	ArgsUsage: "-- URL [tool arguments...]",
	Description: `Runs the download tool with its output target set to standard output and copies
the bytes to --out, or to standard output when no file is given. The tool's own
messages go to standard error.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:      outFlag,
			Aliases:   []string{"o"},
			Usage:     "Write the media to this file instead of standard output",
			TakesFile: true,
			Value:     "",
			OnlyOnce:  true,
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
		logger.Error("Please give a URL after --.")
		return cli.Exit("", 1)
	}

	var w io.Writer = cmd.Root().Writer

	if name := cmd.String(outFlag); name != "" {
		f, err := os.Create(name)
		if err != nil {
			logger.Error("failed to create output file", "file", name, "error", err)
			return cli.Exit(errors.Join(ErrCreateOutput, err).Error(), 1)
		}

		defer f.Close() //nolint:errcheck

		w = f
	}

	sigCh := signalbroker.New(ctx)
	defer signalbroker.Stop(sigCh)

	inv := state.Invocation(args...)
	inv.Options.Signals = sigCh

	n, err := Copy(ctx, w, state.Client.Stream(ctx, inv))
	if err != nil {
		logger.Error("stream failed", "bytes", n, "error", err)
		return cmdstate.Exit(err)
	}

	logger.Info("stream complete", "bytes", n)

	return nil
}

// Copy writes everything read from s to w and closes s.
// If w fails, s is closed early, which kills the tool.
func Copy(ctx context.Context, w io.Writer, s io.ReadCloser) (int64, error) {
	defer s.Close() //nolint:errcheck

	n, err := io.Copy(w, s)
	if err == nil {
		return n, nil
	}

	ctxlog.Debug(ctx, "stream copy ended", "bytes", n, "error", err)

	var pe *runner.ProcessError
	if errors.As(err, &pe) {
		return n, err
	}

	return n, errors.Join(ErrCopy, err)
}

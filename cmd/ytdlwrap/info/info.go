// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package info contains the info command, which prints media metadata as JSON.
package info

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/TylerBrock/colorjson"
	"github.com/matt-FFFFFF/ytdlwrap/cmd/cmdstate"
	"github.com/matt-FFFFFF/ytdlwrap/internal/color"
	"github.com/matt-FFFFFF/ytdlwrap/internal/ctxlog"
	"github.com/urfave/cli/v3"
)

const (
	rawFlag      = "raw"
	indentSpaces = 2
)

// ErrWriteMetadata is returned when the metadata cannot be written out.
var ErrWriteMetadata = errors.New("failed to write metadata")

// InfoCmd prints the metadata the download tool reports for its arguments.
var InfoCmd = &cli.Command{
	Name:      "info",
	Usage:     "Print metadata for a URL as JSON",
	ArgsUsage: "-- URL [tool arguments...]",
	Description: `Asks the download tool for the metadata of the given URLs without downloading them.
A single video prints one JSON object; a playlist or several URLs print an array.
A format of "best" is requested unless -f or --format is given.`,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:        rawFlag,
			Usage:       "Print compact JSON without colour",
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
		logger.Error("Please give a URL after --.")
		return cli.Exit("", 1)
	}

	v, err := state.Client.JSON(ctx, state.Invocation(args...))
	if err != nil {
		logger.Error("failed to get metadata", "error", err)
		return cmdstate.Exit(err)
	}

	opts := WriteOptions{Raw: cmd.Bool(rawFlag), Colour: color.Enabled()}
	if err := Write(cmd.Root().Writer, v, opts); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	return nil
}

// WriteOptions selects the JSON rendering.
type WriteOptions struct {
	// Raw prints compact JSON. Colour is ignored.
	Raw    bool
	Colour bool
}

// Write prints v as JSON followed by a newline.
func Write(w io.Writer, v any, opts WriteOptions) error {
	var (
		out []byte
		err error
	)

	if opts.Raw {
		out, err = json.Marshal(v)
	} else {
		f := colorjson.NewFormatter()
		f.Indent = indentSpaces
		f.DisabledColor = !opts.Colour
		out, err = f.Marshal(v)
	}

	if err != nil {
		return errors.Join(ErrWriteMetadata, err)
	}

	if _, err := w.Write(append(out, '\n')); err != nil {
		return errors.Join(ErrWriteMetadata, err)
	}

	return nil
}

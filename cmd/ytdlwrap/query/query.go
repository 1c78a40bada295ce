// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package query contains the commands that ask the download tool about itself.
package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/ytdlwrap/cmd/cmdstate"
	"github.com/matt-FFFFFF/ytdlwrap/internal/ctxlog"
	"github.com/matt-FFFFFF/ytdlwrap/internal/ytdl"
	"github.com/urfave/cli/v3"
)

const descriptionsFlag = "descriptions"

// Commands returns a fresh set of the query commands.
func Commands() []*cli.Command {
	return []*cli.Command{extractorsCmd(), userAgentCmd(), toolVersionCmd(), toolHelpCmd()}
}

func extractorsCmd() *cli.Command {
	return &cli.Command{
		Name:  "extractors",
		Usage: "List the extractors the download tool supports",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        descriptionsFlag,
				Aliases:     []string{"d"},
				Usage:       "List extractor descriptions instead of names",
				Value:       false,
				DefaultText: "false",
				OnlyOnce:    true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(ctx, cmd, func(ctx context.Context, c *ytdl.Client) (string, error) {
				list := c.Extractors
				if cmd.Bool(descriptionsFlag) {
					list = c.ExtractorDescriptions
				}

				lines, err := list(ctx)
				if err != nil {
					return "", err
				}

				return strings.Join(lines, "\n") + "\n", nil
			})
		},
	}
}

func userAgentCmd() *cli.Command {
	return &cli.Command{
		Name:  "useragent",
		Usage: "Print the user agent the download tool sends",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(ctx, cmd, func(ctx context.Context, c *ytdl.Client) (string, error) {
				return c.UserAgent(ctx)
			})
		},
	}
}

func toolVersionCmd() *cli.Command {
	return &cli.Command{
		Name:  "tool-version",
		Usage: "Print the download tool's version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(ctx, cmd, func(ctx context.Context, c *ytdl.Client) (string, error) {
				return c.Version(ctx)
			})
		},
	}
}

func toolHelpCmd() *cli.Command {
	return &cli.Command{
		Name:  "tool-help",
		Usage: "Print the download tool's help text",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(ctx, cmd, func(ctx context.Context, c *ytdl.Client) (string, error) {
				return c.Help(ctx)
			})
		},
	}
}

func run(ctx context.Context, cmd *cli.Command, query func(context.Context, *ytdl.Client) (string, error)) error {
	state, err := cmdstate.FromContext(ctx)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	out, err := query(ctx, state.Client)
	if err != nil {
		ctxlog.Logger(ctx).Error("query failed", "command", cmd.Name, "error", err)
		return cmdstate.Exit(err)
	}

	fmt.Fprint(cmd.Root().Writer, out) //nolint:errcheck

	return nil
}

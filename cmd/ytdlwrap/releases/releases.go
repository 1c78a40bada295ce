// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package releases contains the commands that list and install published
// releases of the download tool.
package releases

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/matt-FFFFFF/ytdlwrap/internal/color"
	"github.com/matt-FFFFFF/ytdlwrap/internal/ctxlog"
	"github.com/matt-FFFFFF/ytdlwrap/internal/release"
	"github.com/urfave/cli/v3"
)

const (
	pageFlag     = "page"
	perPageFlag  = "per-page"
	versionFlag  = "version"
	pathFlag     = "path"
	platformFlag = "platform"

	defaultPerPage = 10
	dateLayout     = "2006-01-02"
)

// ReleasesCmd lists published releases, newest first.
var ReleasesCmd = &cli.Command{
	Name:  "releases",
	Usage: "List published releases of the download tool",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  pageFlag,
			Usage: "Page of the release index to show, starting at 1",
			Value: 1,
		},
		&cli.IntFlag{
			Name:  perPageFlag,
			Usage: "Number of releases per page",
			Value: defaultPerPage,
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		list, err := release.Releases(ctx, int(cmd.Int(pageFlag)), int(cmd.Int(perPageFlag)))
		if err != nil {
			ctxlog.Logger(ctx).Error("failed to list releases", "error", err)
			return cli.Exit(err.Error(), 1)
		}

		WriteList(cmd.Root().Writer, list, color.Enabled())

		return nil
	},
}

// InstallCmd downloads a release binary.
var InstallCmd = &cli.Command{
	Name:  "install",
	Usage: "Download a release of the download tool",
	Description: `Downloads the release binary for the platform and makes it executable.
Without --version the latest release is installed. Without --path the binary is
written to the current directory.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     versionFlag,
			Usage:    "Release tag to install, latest when empty",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:      pathFlag,
			Aliases:   []string{"p"},
			Usage:     "Where to write the binary",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.StringFlag{
			Name:     platformFlag,
			Usage:    "Platform to install for, as a GOOS value",
			Value:    runtime.GOOS,
			OnlyOnce: true,
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		path, err := release.Download(ctx, release.DownloadRequest{
			Version:  cmd.String(versionFlag),
			Path:     cmd.String(pathFlag),
			Platform: cmd.String(platformFlag),
		})
		if err != nil {
			ctxlog.Logger(ctx).Error("failed to install release", "error", err)
			return cli.Exit(err.Error(), 1)
		}

		fmt.Fprintln(cmd.Root().Writer, path) //nolint:errcheck

		return nil
	},
}

// WriteList prints one release per line: tag, publish date and name.
func WriteList(w io.Writer, list []release.Release, colour bool) {
	for _, r := range list {
		tag := color.Paint(colour, r.TagName, color.Bold)

		date := ""
		if !r.PublishedAt.IsZero() {
			date = r.PublishedAt.Format(dateLayout)
		}

		line := fmt.Sprintf("%s\t%s\t%s", tag, date, r.Name)
		if r.Prerelease {
			line += "\t" + color.Paint(colour, "prerelease", color.FgYellow)
		}

		fmt.Fprintln(w, line) //nolint:errcheck
	}
}

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package release

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/ytdlwrap/internal/ctxlog"
	"github.com/spf13/afero"
)

const (
	binaryName        = "youtube-dl"
	windowsBinaryName = "youtube-dl.exe"
	binaryMode        = 0o755
)

// ErrDownload is returned when a release binary cannot be fetched or installed.
var ErrDownload = errors.New("failed to download release")

// DownloadRequest selects the binary to install. Empty fields mean the
// latest release, ./<FileName> and the current platform.
type DownloadRequest struct {
	Version  string
	Path     string
	Platform string
}

// FileName returns the release asset name for a GOOS value.
func FileName(platform string) string {
	if strings.EqualFold(platform, "windows") || strings.EqualFold(platform, "win32") {
		return windowsBinaryName
	}

	return binaryName
}

// Download fetches the binary described by req, writes it to req.Path and
// makes it executable. It returns the path written.
func Download(ctx context.Context, req DownloadRequest) (string, error) {
	if req.Platform == "" {
		req.Platform = runtime.GOOS
	}

	fileName := FileName(req.Platform)

	if req.Version == "" {
		latest, err := Latest(ctx)
		if err != nil {
			return "", errors.Join(ErrDownload, err)
		}

		req.Version = latest.TagName
	}

	if req.Path == "" {
		req.Path = "." + string(filepath.Separator) + fileName
	}

	src := strings.TrimSuffix(downloadURL, "/") + "/" + req.Version + "/" + fileName

	data, err := fetch(ctx, src, fileName)
	if err != nil {
		return "", errors.Join(ErrDownload, err)
	}

	fs := FsFactory()

	if dir := filepath.Dir(req.Path); dir != "." {
		if err := fs.MkdirAll(dir, binaryMode); err != nil {
			return "", errors.Join(ErrDownload, err)
		}
	}

	if err := afero.WriteFile(fs, req.Path, data, binaryMode); err != nil {
		return "", errors.Join(ErrDownload, err)
	}

	if err := fs.Chmod(req.Path, binaryMode); err != nil {
		return "", errors.Join(ErrDownload, err)
	}

	ctxlog.Info(ctx, "installed release", "version", req.Version, "path", req.Path, "bytes", len(data))

	return req.Path, nil
}

// fetch retrieves src into a temporary directory with go-getter and returns its content.
func fetch(ctx context.Context, src, fileName string) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "ytdlwrap-getter-*")
	if err != nil {
		return nil, err
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	cli := getter.Client{
		DisableSymlinks: true,
		Getters: []getter.Getter{
			&getter.HttpGetter{},
		},
	}

	ctxlog.Debug(ctx, "downloading release binary", "url", src)

	res, err := cli.Get(ctx, &getter.Request{
		Src:     src,
		Dst:     filepath.Join(tmpDir, fileName),
		Pwd:     wd,
		GetMode: getter.ModeFile,
	})
	if err != nil {
		return nil, err
	}

	return os.ReadFile(res.Dst)
}

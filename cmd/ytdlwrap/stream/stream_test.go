// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package stream

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/matt-FFFFFF/ytdlwrap/cmd/cmdstate"
	"github.com/matt-FFFFFF/ytdlwrap/internal/config"
	"github.com/matt-FFFFFF/ytdlwrap/internal/runner"
	"github.com/matt-FFFFFF/ytdlwrap/internal/ytdl"
	"github.com/matt-FFFFFF/ytdlwrap/internal/ytdltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestCopy(t *testing.T) {
	c := ytdl.New(ytdltest.Script(t, `printf 'media'`))

	var buf bytes.Buffer

	n, err := Copy(context.Background(), &buf, c.Stream(context.Background(), runner.NewInvocation("URL")))
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	assert.Equal(t, "media", buf.String())
}

func TestCopy_ToolFails(t *testing.T) {
	c := ytdl.New(ytdltest.Script(t, `echo 'ERROR: private video' >&2; exit 1`))

	_, err := Copy(context.Background(), &bytes.Buffer{}, c.Stream(context.Background(), runner.NewInvocation("URL")))
	require.Error(t, err)

	var pe *runner.ProcessError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "ERROR: private video\n", pe.Stderr)
	assert.NotErrorIs(t, err, ErrCopy)
}

func TestCopy_WriterFails(t *testing.T) {
	c := ytdl.New(ytdltest.Script(t, `while true; do echo data; done`))

	_, err := Copy(context.Background(), failingWriter{}, c.Stream(context.Background(), runner.NewInvocation("URL")))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCopy)
}

func TestStreamCmd_OutFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "video.mp4")

	root := &cli.Command{
		Name:           "test",
		Commands:       []*cli.Command{StreamCmd},
		Writer:         &bytes.Buffer{},
		ErrWriter:      &bytes.Buffer{},
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	state := cmdstate.New(&config.Config{BinaryPath: ytdltest.Script(t, `printf '%s' "$*"`)})

	err := root.Run(cmdstate.WithState(context.Background(), state), []string{"test", "stream", "--out", out, "--", "URL"})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "URL -o -", string(data))
}

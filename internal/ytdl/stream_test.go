// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ytdl

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/matt-FFFFFF/ytdlwrap/internal/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream_Bytes(t *testing.T) {
	c := fakeTool(t, `printf '\001\002\003'`)

	s := c.Stream(context.Background(), runner.NewInvocation("URL"))
	defer s.Close() //nolint:errcheck

	data, err := io.ReadAll(s)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, data)

	n, err := s.Read(make([]byte, 8))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestStream_AppendsStdoutTarget(t *testing.T) {
	c := fakeTool(t, `printf '%s' "$*"`)

	s := c.Stream(context.Background(), runner.NewInvocation("URL"))
	defer s.Close() //nolint:errcheck

	data, err := io.ReadAll(s)
	require.NoError(t, err)
	assert.Equal(t, "URL -o -", string(data))
}

func TestStream_Failure(t *testing.T) {
	c := fakeTool(t, `printf 'partial'; echo 'ERROR: unavailable' >&2; exit 1`)

	s := c.Stream(context.Background(), runner.NewInvocation("URL"))
	defer s.Close() //nolint:errcheck

	data, err := io.ReadAll(s)
	assert.Equal(t, "partial", string(data))
	require.Error(t, err)

	var pe *runner.ProcessError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 1, pe.ExitCode)
	assert.Equal(t, "ERROR: unavailable\n", pe.Stderr)
}

func TestStream_MissingBinary(t *testing.T) {
	s := missingTool(t).Stream(context.Background(), runner.NewInvocation("URL"))
	defer s.Close() //nolint:errcheck

	data, err := io.ReadAll(s)
	assert.Empty(t, data)
	require.Error(t, err)
	assert.True(t, runner.IsSpawnError(err))
}

func TestStream_CloseKillsProcess(t *testing.T) {
	c := fakeTool(t, `while true; do echo data; done`)

	s := c.Stream(context.Background(), runner.NewInvocation())

	buf := make([]byte, 4)
	_, err := io.ReadFull(s, buf)
	require.NoError(t, err)

	require.NoError(t, s.Close())
	<-s.Done()

	n, err := s.Read(buf)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.ErrClosedPipe)
	assert.NoError(t, s.Close())
}

func TestStream_CloseWithChildProcess(t *testing.T) {
	// sleep is a child of the shell and holds stdout open
	c := fakeTool(t, `printf 'x'; sleep 5; echo done`)

	s := c.Stream(context.Background(), runner.NewInvocation())

	buf := make([]byte, 1)
	_, err := io.ReadFull(s, buf)
	require.NoError(t, err)
	assert.Equal(t, "x", string(buf))

	start := time.Now()

	require.NoError(t, s.Close())
	assert.Less(t, time.Since(start), 3*time.Second)
}

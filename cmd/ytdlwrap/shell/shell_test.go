// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/matt-FFFFFF/ytdlwrap/cmd/cmdstate"
	"github.com/matt-FFFFFF/ytdlwrap/internal/config"
	"github.com/matt-FFFFFF/ytdlwrap/internal/ytdltest"
	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted answers prompts from a fixed list and then returns end.
type scripted struct {
	lines   []string
	end     error
	history []string
}

func (s *scripted) Prompt(string) (string, error) {
	if len(s.lines) == 0 {
		return "", s.end
	}

	l := s.lines[0]
	s.lines = s.lines[1:]

	return l, nil
}

func (s *scripted) AppendHistory(item string) {
	s.history = append(s.history, item)
}

func testState(t *testing.T) *cmdstate.State {
	t.Helper()

	return cmdstate.New(&config.Config{
		BinaryPath: ytdltest.Script(t, `for a in "$@"; do echo "[$a]"; done; [ "$1" != fail ] || exit 1`),
	})
}

func TestLoop_RunsLinesUntilExit(t *testing.T) {
	var stdout, stderr bytes.Buffer

	p := &scripted{lines: []string{"", `-f best "a URL"`, "fail", "exit", "never"}}

	require.NoError(t, Loop(context.Background(), p, testState(t), &stdout, &stderr))

	assert.Contains(t, stdout.String(), "[-f]\n[best]\n[a URL]\n")
	assert.Contains(t, stdout.String(), "[fail]\n")
	assert.Contains(t, stderr.String(), "process exited with code 1")
	assert.Equal(t, []string{`-f best "a URL"`, "fail"}, p.history)
	assert.Equal(t, []string{"never"}, p.lines)
}

func TestLoop_Aborted(t *testing.T) {
	var stdout bytes.Buffer

	p := &scripted{end: liner.ErrPromptAborted}

	require.NoError(t, Loop(context.Background(), p, testState(t), &stdout, io.Discard))
	assert.Contains(t, stdout.String(), "Aborted")
}

func TestLoop_EOF(t *testing.T) {
	p := &scripted{end: io.EOF}
	assert.NoError(t, Loop(context.Background(), p, testState(t), io.Discard, io.Discard))
}

func TestLoop_ReadError(t *testing.T) {
	p := &scripted{end: errors.New("tty gone")}

	err := Loop(context.Background(), p, testState(t), io.Discard, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tty gone")
}

func TestLoop_BadQuoting(t *testing.T) {
	var stderr bytes.Buffer

	p := &scripted{lines: []string{`"unterminated`}, end: io.EOF}

	require.NoError(t, Loop(context.Background(), p, testState(t), io.Discard, &stderr))
	assert.NotEmpty(t, stderr.String())
}

func TestLoop_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &scripted{lines: []string{"URL"}}

	require.NoError(t, Loop(ctx, p, testState(t), io.Discard, io.Discard))
	assert.Equal(t, []string{"URL"}, p.lines)
}

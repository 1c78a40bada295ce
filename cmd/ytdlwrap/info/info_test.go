// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package info

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/matt-FFFFFF/ytdlwrap/cmd/cmdstate"
	"github.com/matt-FFFFFF/ytdlwrap/internal/config"
	"github.com/matt-FFFFFF/ytdlwrap/internal/ytdltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestWrite_Raw(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, map[string]any{"id": "abc", "duration": 12.0}, WriteOptions{Raw: true, Colour: true}))
	assert.Equal(t, `{"duration":12,"id":"abc"}`+"\n", buf.String())
}

func TestWrite_Pretty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, map[string]any{"id": "abc"}, WriteOptions{}))
	assert.NotContains(t, buf.String(), "\033[")
	assert.Contains(t, buf.String(), "\n  \"id\"")

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, map[string]any{"id": "abc"}, got)
}

func TestInfoCmd(t *testing.T) {
	var stdout bytes.Buffer

	root := &cli.Command{
		Name:           "test",
		Commands:       []*cli.Command{InfoCmd},
		Writer:         &stdout,
		ErrWriter:      &bytes.Buffer{},
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	state := cmdstate.New(&config.Config{
		BinaryPath: ytdltest.Script(t, `printf '{"args":"%s"}\n' "$*"`),
	})

	err := root.Run(cmdstate.WithState(context.Background(), state), []string{"test", "info", "--raw", "--", "URL"})
	require.NoError(t, err)
	assert.Equal(t, `{"args":"URL -f best --dump-json"}`+"\n", stdout.String())
}

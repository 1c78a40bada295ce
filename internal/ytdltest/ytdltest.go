// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ytdltest provides fake download tools for tests.
package ytdltest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// Script writes a /bin/sh script with body into a temporary directory and
// returns its path. The test is skipped where /bin/sh is unavailable.
func Script(t testing.TB, body string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}

	path := filepath.Join(t.TempDir(), "youtube-dl")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755)) //nolint:gosec

	return path
}

// Missing returns a path in a temporary directory where no binary exists.
func Missing(t testing.TB) string {
	t.Helper()

	return filepath.Join(t.TempDir(), "does-not-exist")
}

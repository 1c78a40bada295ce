// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ytdlwrap holds build metadata for the ytdlwrap command-line tool.
package ytdlwrap

var (
	// Version is set during the build process.
	Version = "dev"
	// Commit is set during the build process.
	Commit = "unknown"
)

// UserAgent identifies ytdlwrap in outbound HTTP requests.
func UserAgent() string {
	return "ytdlwrap/" + Version
}

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tui renders a live progress display for a single download.
//
// The display shows a progress bar driven by the tool's progress lines, the
// reported size, speed and ETA, and the last line of output. It is fed by the
// events of a ytdl.Execution and exits on its own once the execution ends.
package tui

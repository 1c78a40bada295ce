// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress extracts download progress from the download tool's console output.
//
// Parse recognises a single progress line. LineSplitter turns an arbitrary
// sequence of output chunks into complete lines, keeping any partial line until
// the rest of it arrives.
package progress

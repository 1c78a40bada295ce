// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ytdl drives youtube-dl compatible download tools.
//
// A Client offers three ways to run the tool:
//
//   - Text and JSON wait for the process to exit and return what it printed.
//   - Exec returns an Execution that delivers typed Events (output chunks,
//     parsed download progress and one terminal event) as they happen.
//   - Stream returns a ByteStream with the media bytes the tool writes to its
//     standard output.
//
// Every failure coming from the process is a *runner.ProcessError carrying the
// exit code, the cause and the captured standard error.
package ytdl

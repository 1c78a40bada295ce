// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runner launches the download tool as a child process and tracks it
// until it exits.
//
// A Runner only knows the binary path. Each call to Start creates an independent
// Process with its own stdout and stderr pipes and a watchdog goroutine that
// kills the child when the context is done, passes the first OS signal on to it,
// and kills it on a repeated signal.
//
// Starting and exiting are reported as two different kinds of failure: Start
// returns an error wrapping ErrCouldNotStartProcess when the OS cannot launch the
// binary; a non-zero exit status is only classified by CheckExit once the
// process has been waited for.
package runner

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCouldNotStartProcess is returned when the OS could not launch the binary.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrNonZeroExit marks a process that ran and exited with a non-zero status.
	ErrNonZeroExit = errors.New("process exited with non-zero status")
	// ErrFailedToCreatePipe is returned when an output pipe could not be created.
	ErrFailedToCreatePipe = errors.New("failed to create pipe")
	// ErrFailedToReadBuffer is returned when reading a pipe fails.
	ErrFailedToReadBuffer = errors.New("failed to read buffer")
	// ErrBufferOverflow is returned when an output channel exceeds Options.MaxBuffer.
	ErrBufferOverflow = errors.New("output exceeds max buffer size")
	// ErrTimeoutExceeded is returned when the context deadline killed the process.
	ErrTimeoutExceeded = errors.New("timeout exceeded")
	// ErrKilled is returned when the process was killed by cancellation or on request.
	ErrKilled = errors.New("process killed")
	// ErrSignalReceived is returned when an OS signal was passed on to the process.
	ErrSignalReceived = errors.New("signal received")
	// ErrDuplicateSignalReceived is returned when a repeated signal forced termination.
	ErrDuplicateSignalReceived = errors.New("duplicate signal received, process forcefully terminated")
)

// ProcessError is the failure payload of an invocation.
//
// ExitCode is -1 when the process never started or was killed. Err holds the
// spawn or runtime cause and is nil for a plain non-zero exit. Stderr is
// everything the process wrote to standard error.
type ProcessError struct {
	ExitCode int
	Err      error
	Stderr   string
}

// Error implements error.
func (e *ProcessError) Error() string {
	sb := strings.Builder{}

	switch {
	case e.ExitCode > 0:
		fmt.Fprintf(&sb, "process exited with code %d", e.ExitCode)
	case errors.Is(e.Err, ErrCouldNotStartProcess):
		sb.WriteString("process did not start")
	default:
		sb.WriteString("process failed")
	}

	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}

	if s := strings.TrimSpace(e.Stderr); s != "" {
		sb.WriteString(": ")
		sb.WriteString(s)
	}

	return sb.String()
}

// Unwrap exposes the cause and, for a real exit status, ErrNonZeroExit.
func (e *ProcessError) Unwrap() []error {
	var errs []error
	if e.ExitCode > 0 {
		errs = append(errs, ErrNonZeroExit)
	}

	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	return errs
}

// IsSpawnError reports whether err means the process never started.
func IsSpawnError(err error) bool {
	return errors.Is(err, ErrCouldNotStartProcess)
}

// CheckExit classifies a finished process. It returns nil for exit code 0 with
// no wait error, whatever was written to stderr; otherwise a *ProcessError.
func CheckExit(exitCode int, waitErr error, stderr string) error {
	if exitCode == 0 && waitErr == nil {
		return nil
	}

	if exitCode == 0 {
		exitCode = -1
	}

	return &ProcessError{
		ExitCode: exitCode,
		Err:      waitErr,
		Stderr:   stderr,
	}
}

// SpawnFailure wraps a Start error in the failure payload.
func SpawnFailure(err error) *ProcessError {
	return &ProcessError{
		ExitCode: -1,
		Err:      err,
	}
}

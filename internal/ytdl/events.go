// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ytdl

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/matt-FFFFFF/ytdlwrap/internal/ctxlog"
	"github.com/matt-FFFFFF/ytdlwrap/internal/progress"
	"github.com/matt-FFFFFF/ytdlwrap/internal/runner"
)

const readChunkSize = 32 * 1024

// Event is one occurrence during an Execution. The concrete types are
// StdoutEvent, StderrEvent, ProgressEvent, ClosedEvent and FailedEvent.
type Event interface {
	isEvent()
}

// StdoutEvent carries a chunk of standard output as it was read.
type StdoutEvent struct {
	Text string
}

// StderrEvent carries a chunk of standard error as it was read.
type StderrEvent struct {
	Text string
}

// ProgressEvent is emitted for each standard output line that reports download
// progress, as soon as the line parses, even before it is terminated.
type ProgressEvent struct {
	Progress progress.Record
}

// ClosedEvent is the terminal event of a process that exited with code 0.
type ClosedEvent struct {
	ExitCode int
}

// FailedEvent is the terminal event of a process that did not start, exited
// non-zero or was killed.
type FailedEvent struct {
	Err *runner.ProcessError
}

func (StdoutEvent) isEvent()   {}
func (StderrEvent) isEvent()   {}
func (ProgressEvent) isEvent() {}
func (ClosedEvent) isEvent()   {}
func (FailedEvent) isEvent()   {}

// IsTerminal reports whether e ends its Execution.
func IsTerminal(e Event) bool {
	switch e.(type) {
	case ClosedEvent, FailedEvent:
		return true
	default:
		return false
	}
}

// Execution is a running invocation that reports its output as events.
type Execution struct {
	proc   *runner.Process
	events *eventQueue
	done   chan struct{}
	err    error
}

// Exec starts inv and returns immediately.
//
// Events are queued without bound until they are received, so subscribing late
// loses nothing and never stalls the process. The last event is always exactly
// one ClosedEvent or FailedEvent, after which the channel is closed. A process
// that cannot be started produces a single FailedEvent.
//
// Undelivered events stay buffered until Events is drained or Close is called,
// so a caller that only uses Wait must still call Close.
func (c *Client) Exec(ctx context.Context, inv runner.Invocation) *Execution {
	inv = inv.Resolve()

	e := &Execution{
		events: newEventQueue(),
		done:   make(chan struct{}),
	}

	p, err := c.runner().Start(ctx, inv)
	if err != nil {
		e.finish(runner.SpawnFailure(err))
		return e
	}

	e.proc = p

	go e.run(ctx, p)

	return e
}

// Events returns the event channel. It is closed after the terminal event.
func (e *Execution) Events() <-chan Event {
	return e.events.out
}

// Done is closed once the terminal event has been queued.
func (e *Execution) Done() <-chan struct{} {
	return e.done
}

// Wait blocks until the process has finished and returns the failure carried
// by the terminal event, or nil after a ClosedEvent.
func (e *Execution) Wait() error {
	<-e.done

	return e.err
}

// Kill terminates the process. The Execution still ends with a single FailedEvent.
func (e *Execution) Kill() {
	if e.proc != nil {
		e.proc.Kill()
	}
}

// Close kills the process if it is still running and stops event delivery.
// Pending events are dropped and the event channel is closed.
func (e *Execution) Close() {
	e.Kill()
	e.events.discard()
}

func (e *Execution) run(ctx context.Context, p *runner.Process) {
	var (
		wg     sync.WaitGroup
		stderr strings.Builder
	)

	wg.Add(2)

	go func() {
		defer wg.Done()

		var (
			lines    progress.LineSplitter
			reported string // unterminated line already sent as progress
		)

		readChunks(ctx, p.Stdout(), func(chunk string) {
			e.events.push(StdoutEvent{Text: chunk})

			completed := lines.Write(chunk)
			if len(completed) > 0 {
				if reported != "" && completed[0] == reported {
					completed = completed[1:]
				}

				reported = ""
			}

			for _, line := range completed {
				e.pushProgress(line)
			}

			// The tool redraws progress with a leading '\r' and no terminator,
			// so the line is reported as soon as it parses.
			if partial := lines.Partial(); partial != reported && e.pushProgress(partial) {
				reported = partial
			}
		})

		if last := lines.Flush(); last != reported {
			e.pushProgress(last)
		}
	}()

	go func() {
		defer wg.Done()

		readChunks(ctx, p.Stderr(), func(chunk string) {
			stderr.WriteString(chunk)
			e.events.push(StderrEvent{Text: chunk})
		})
	}()

	wg.Wait()

	exitCode, waitErr := p.Wait()

	var failure *runner.ProcessError
	if err := runner.CheckExit(exitCode, waitErr, stderr.String()); err != nil {
		errors.As(err, &failure)
	}

	if failure == nil {
		e.events.push(ClosedEvent{ExitCode: exitCode})
		e.finish(nil)

		return
	}

	e.finish(failure)
}

func (e *Execution) pushProgress(line string) bool {
	rec, ok := progress.Parse(line)
	if ok {
		e.events.push(ProgressEvent{Progress: rec})
	}

	return ok
}

// finish queues the failure event, if any, and releases waiters.
func (e *Execution) finish(failure *runner.ProcessError) {
	if failure != nil {
		e.err = failure
		e.events.push(FailedEvent{Err: failure})
	}

	e.events.close()
	close(e.done)
}

// readChunks calls fn with each chunk read from r until EOF or a read error.
func readChunks(ctx context.Context, r io.Reader, fn func(string)) {
	buf := make([]byte, readChunkSize)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			fn(string(buf[:n]))
		}

		if err != nil {
			if !errors.Is(err, io.EOF) {
				ctxlog.Debug(ctx, "pipe read ended", "error", err)
			}

			return
		}
	}
}

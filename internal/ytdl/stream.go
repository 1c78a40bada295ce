// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ytdl

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"

	"github.com/matt-FFFFFF/ytdlwrap/internal/ctxlog"
	"github.com/matt-FFFFFF/ytdlwrap/internal/runner"
)

var streamToStdout = []string{"-o", "-"}

// ByteStream is the raw standard output of a process that writes its download to stdout.
//
// Output is buffered without bound, so the process never waits on the reader.
// Read returns io.EOF after the last byte when the process exits 0, and the
// *runner.ProcessError otherwise. Closing the stream before the process has
// finished kills it and discards whatever was not read.
type ByteStream struct {
	mu     sync.Mutex
	cond   *sync.Cond
	buf    bytes.Buffer
	err    error
	closed bool

	proc *runner.Process
	done chan struct{}
}

var _ io.ReadCloser = (*ByteStream)(nil)

// Stream starts inv with output redirected to stdout and returns immediately.
func (c *Client) Stream(ctx context.Context, inv runner.Invocation) *ByteStream {
	inv = inv.Resolve().WithArgs(streamToStdout...)

	s := &ByteStream{done: make(chan struct{})}
	s.cond = sync.NewCond(&s.mu)

	p, err := c.runner().Start(ctx, inv)
	if err != nil {
		s.finish(runner.SpawnFailure(err))
		return s
	}

	s.proc = p

	go s.run(ctx, p)

	return s
}

// Read implements io.Reader.
func (s *ByteStream) Read(b []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for !s.closed && s.buf.Len() == 0 && s.err == nil {
		s.cond.Wait()
	}

	if s.closed {
		return 0, io.ErrClosedPipe
	}

	if s.buf.Len() > 0 {
		return s.buf.Read(b)
	}

	return 0, s.err
}

// Close kills the process if it is still running and waits for it to be reaped.
func (s *ByteStream) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}

	s.closed = true
	s.buf.Reset()
	s.cond.Broadcast()
	s.mu.Unlock()

	if s.proc != nil {
		s.proc.Kill()
	}

	<-s.done

	return nil
}

// Done is closed once the process has finished and its result is known.
func (s *ByteStream) Done() <-chan struct{} {
	return s.done
}

func (s *ByteStream) run(ctx context.Context, p *runner.Process) {
	var (
		wg     sync.WaitGroup
		stderr strings.Builder
	)

	wg.Add(2)

	go func() {
		defer wg.Done()

		readChunks(ctx, p.Stdout(), func(chunk string) {
			s.mu.Lock()
			if !s.closed {
				s.buf.WriteString(chunk)
				s.cond.Broadcast()
			}
			s.mu.Unlock()
		})
	}()

	go func() {
		defer wg.Done()

		readChunks(ctx, p.Stderr(), func(chunk string) {
			stderr.WriteString(chunk)
		})
	}()

	wg.Wait()

	exitCode, waitErr := p.Wait()

	if err := runner.CheckExit(exitCode, waitErr, stderr.String()); err != nil {
		ctxlog.Debug(ctx, "byte stream failed", "runID", p.ID, "error", err)
		s.finish(err)

		return
	}

	s.finish(io.EOF)
}

func (s *ByteStream) finish(err error) {
	s.mu.Lock()
	s.err = err
	s.cond.Broadcast()
	s.mu.Unlock()

	close(s.done)
}

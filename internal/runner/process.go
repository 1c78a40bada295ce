// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/matt-FFFFFF/ytdlwrap/internal/ctxlog"
)

// Runner starts processes of a single binary. It is safe for concurrent use.
type Runner struct {
	path string
}

// New returns a Runner for binaryPath. A bare name is looked up on PATH at start time.
func New(binaryPath string) *Runner {
	return &Runner{path: binaryPath}
}

// Path returns the binary path the Runner was created with.
func (r *Runner) Path() string {
	return r.path
}

// Process is one running or finished child.
// It is owned by the executor that started it.
type Process struct {
	ID         string     // Run identifier used in log records.
	Path       string     // Resolved binary path.
	Invocation Invocation // Resolved invocation.

	ps     *os.Process
	stdout *os.File
	stderr *os.File
	logger *slog.Logger

	done chan struct{} // closed once the process has been reaped

	mu        sync.Mutex
	reason    error // why the process was killed, first one wins
	forwarded bool  // a signal was passed on without killing

	waitOnce sync.Once
	exitCode int
	waitErr  error
}

// Start launches the binary with inv. The returned error wraps
// ErrCouldNotStartProcess when the process could not be launched.
//
// The caller must consume Stdout and Stderr until EOF and then call Wait.
func (r *Runner) Start(ctx context.Context, inv Invocation) (*Process, error) {
	inv = inv.Resolve()
	id := uuid.NewString()

	logger := ctxlog.Logger(ctx).With("runID", id, "binary", r.path)
	logger.Debug("starting process", "args", inv.Args, "cwd", inv.Options.Dir)

	path, err := resolveBinary(r.path)
	if err != nil {
		logger.Debug("binary not found", "error", err)
		return nil, errors.Join(ErrCouldNotStartProcess, err)
	}

	stdin := inv.Options.Stdin
	if stdin == nil {
		devNull, err := os.Open(os.DevNull)
		if err != nil {
			return nil, errors.Join(ErrCouldNotStartProcess, err)
		}

		defer devNull.Close() //nolint:errcheck

		stdin = devNull
	}

	rOut, wOut, err := os.Pipe()
	if err != nil {
		return nil, errors.Join(ErrCouldNotStartProcess, ErrFailedToCreatePipe, err)
	}

	rErr, wErr, err := os.Pipe()
	if err != nil {
		closeAll(rOut, wOut)
		return nil, errors.Join(ErrCouldNotStartProcess, ErrFailedToCreatePipe, err)
	}

	ps, err := os.StartProcess(path, slices.Concat([]string{filepath.Base(path)}, inv.Args), &os.ProcAttr{
		Dir:   inv.Options.Dir,
		Env:   inv.Options.environ(),
		Files: []*os.File{stdin, wOut, wErr},
		Sys:   sysProcAttr(),
	})

	// The child holds its own copies of the write ends; ours must go so readers see EOF.
	closeAll(wOut, wErr)

	if err != nil {
		closeAll(rOut, rErr)
		logger.Debug("process did not start", "error", err)

		return nil, errors.Join(ErrCouldNotStartProcess, err)
	}

	logger = logger.With("pid", ps.Pid)
	logger.Debug("process started")

	p := &Process{
		ID:         id,
		Path:       path,
		Invocation: inv,
		ps:         ps,
		stdout:     rOut,
		stderr:     rErr,
		logger:     logger,
		done:       make(chan struct{}),
	}

	go p.watchdog(ctx)

	return p, nil
}

// Pid returns the OS process id.
func (p *Process) Pid() int {
	return p.ps.Pid
}

// Stdout returns the read end of the child's standard output.
func (p *Process) Stdout() io.Reader {
	return p.stdout
}

// Stderr returns the read end of the child's standard error.
func (p *Process) Stderr() io.Reader {
	return p.stderr
}

// Kill terminates the process and any children it started. It is safe to call more than once and after exit.
func (p *Process) Kill() {
	p.Terminate(ErrKilled)
}

// Terminate kills the process and records reason as the cause reported by Wait.
// Only the first reason is kept.
func (p *Process) Terminate(reason error) {
	select {
	case <-p.done:
		return
	default:
	}

	p.setReason(reason)
	p.kill()
}

// Wait blocks until the process exits and returns its exit code.
// The error is non-nil only when the process was killed or could not be reaped;
// a non-zero exit on its own is not an error here, see CheckExit.
// Wait closes the output pipes, so readers must be finished first.
func (p *Process) Wait() (int, error) {
	p.waitOnce.Do(func() {
		state, err := p.ps.Wait()
		close(p.done)
		closeAll(p.stdout, p.stderr)

		p.exitCode = -1
		if state != nil {
			p.exitCode = state.ExitCode()
		}

		p.mu.Lock()
		reason, forwarded := p.reason, p.forwarded
		p.mu.Unlock()

		// A forwarded signal only explains the outcome when it ended the process;
		// a child that handled it keeps its own exit code.
		if reason == nil && forwarded && p.exitCode == -1 {
			reason = ErrSignalReceived
		}

		p.waitErr = errors.Join(err, reason)
		if reason != nil {
			p.exitCode = -1
		}

		p.logger.Debug("process finished", "exitCode", p.exitCode, "error", p.waitErr)
	})

	return p.exitCode, p.waitErr
}

// watchdog kills the process when ctx is done and handles forwarded signals.
func (p *Process) watchdog(ctx context.Context) {
	seen := make(map[os.Signal]struct{})
	sigCh := p.Invocation.Options.Signals

	for {
		select {
		case <-p.done:
			return

		case <-ctx.Done():
			reason := ErrKilled
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				reason = ErrTimeoutExceeded
			}

			p.logger.Info("context done, killing process", "reason", reason)
			p.Terminate(errors.Join(reason, ctx.Err()))

			return

		case s, ok := <-sigCh:
			if !ok {
				sigCh = nil
				continue
			}

			if _, dup := seen[s]; dup {
				p.logger.Info("received duplicate signal, killing process", "signal", s.String())
				p.Terminate(ErrDuplicateSignalReceived)

				return
			}

			seen[s] = struct{}{}

			p.logger.Info("passing signal to process", "signal", s.String())
			p.mu.Lock()
			p.forwarded = true
			p.mu.Unlock()

			if err := signalGroup(p.ps, s); err != nil {
				p.logger.Info("failed to send signal", "signal", s.String(), "error", err)
			}
		}
	}
}

func (p *Process) setReason(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.reason == nil {
		p.reason = err
	}
}

func (p *Process) kill() {
	if err := killGroup(p.ps); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			p.logger.Debug("process already done")
			return
		}

		p.logger.Error("process kill error", "error", err)

		return
	}

	p.logger.Info("process killed")
}

// ReadAllUpToMax reads r to EOF, keeping at most maxBytes.
// It returns ErrBufferOverflow, with the first maxBytes, as soon as the limit is passed.
func ReadAllUpToMax(r io.Reader, maxBytes int64) ([]byte, error) {
	var buf bytes.Buffer

	n, err := io.CopyN(&buf, r, maxBytes+1)
	if err != nil && !errors.Is(err, io.EOF) {
		return buf.Bytes(), errors.Join(ErrFailedToReadBuffer, err)
	}

	if n > maxBytes {
		return buf.Bytes()[:maxBytes], ErrBufferOverflow
	}

	return buf.Bytes(), nil
}

func resolveBinary(path string) (string, error) {
	if filepath.Base(path) != path {
		return path, nil
	}

	return exec.LookPath(path)
}

func closeAll(files ...*os.File) {
	for _, f := range files {
		_ = f.Close()
	}
}

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/ytdlwrap/internal/ytdl"
)

// Runner manages the TUI application and forwards execution events to it.
type Runner struct {
	model   *Model
	program *tea.Program
	mutex   sync.Mutex
}

// NewRunner creates a new TUI runner.
func NewRunner(title string, opts ...tea.ProgramOption) *Runner {
	model := NewModel(title)

	return &Runner{
		model:   model,
		program: tea.NewProgram(model, opts...),
	}
}

// Model returns the model driven by the runner.
func (r *Runner) Model() *Model {
	return r.model
}

// Run displays the progress of e until it ends, the user quits or ctx is done.
// Quitting early kills the process. The execution's result is returned, or the
// TUI's own error if it failed.
func (r *Runner) Run(ctx context.Context, e *ytdl.Execution) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	forwarded := make(chan struct{})

	go func() {
		defer close(forwarded)

		for ev := range e.Events() {
			r.program.Send(EventMsg{Event: ev})
		}

		r.program.Send(DoneMsg{Err: e.Wait()})
	}()

	go func() {
		select {
		case <-ctx.Done():
			r.program.Quit()
		case <-forwarded:
		}
	}()

	_, tuiErr := r.program.Run()

	// Stops the process and event delivery if the TUI ended first.
	e.Close()
	<-forwarded

	if tuiErr != nil {
		return tuiErr
	}

	return e.Wait()
}

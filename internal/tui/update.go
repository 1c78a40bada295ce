// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/ytdlwrap/internal/ytdl"
)

const durationRounding = 100 * time.Millisecond

// EventMsg wraps an execution event for the tea framework.
type EventMsg struct {
	Event ytdl.Event
}

// DoneMsg indicates that the execution has ended and carries its result.
type DoneMsg struct {
	Err error
}

// Init implements bubbletea.Model.Init.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements bubbletea.Model.Update.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.mutex.Lock()
		m.setWidth(msg.Width)
		m.mutex.Unlock()

		return m, nil

	case EventMsg:
		m.mutex.Lock()
		m.applyEvent(msg.Event)
		m.mutex.Unlock()

		return m, nil

	case DoneMsg:
		m.mutex.Lock()
		m.finish(msg.Err)
		m.mutex.Unlock()

		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) applyEvent(ev ytdl.Event) {
	switch ev := ev.(type) {
	case ytdl.StdoutEvent:
		m.setOutput(ev.Text)
	case ytdl.StderrEvent:
		m.setOutput(ev.Text)
	case ytdl.ProgressEvent:
		m.record = ev.Progress
		m.seen = true
	case ytdl.ClosedEvent:
		m.finish(nil)
	case ytdl.FailedEvent:
		if ev.Err == nil {
			m.finish(errors.New("execution failed"))
			return
		}

		m.finish(ev.Err)
	}
}

// finish records the outcome once; later calls are ignored.
func (m *Model) finish(err error) {
	if m.status != StatusRunning {
		return
	}

	m.endTime = time.Now()

	if err == nil {
		m.status = StatusSuccess
		return
	}

	m.status = StatusFailed
	m.errMsg = err.Error()
}

// View implements bubbletea.Model.View.
func (m *Model) View() string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.quitting {
		return "Aborting download...\n"
	}

	var view strings.Builder

	view.WriteString(m.styles.Title.Render(m.title))
	view.WriteString("\n\n")

	view.WriteString(m.bar.ViewAs(m.record.Percent / 100)) //nolint:mnd
	view.WriteString("\n")

	if m.seen {
		stats := fmt.Sprintf("of %s at %s ETA %s", m.record.TotalSize, m.record.CurrentSpeed, m.record.ETA)
		view.WriteString(m.styles.Stats.Render(stats))
		view.WriteString("\n")
	}

	if m.lastOutput != "" {
		view.WriteString(m.styles.Output.Render(m.lastOutput))
		view.WriteString("\n")
	}

	end := m.endTime
	if end.IsZero() {
		end = time.Now()
	}

	elapsed := end.Sub(m.startTime).Round(durationRounding)

	switch m.status {
	case StatusRunning:
		view.WriteString(m.styles.Running.Render(fmt.Sprintf("⚡ downloading (%v)", elapsed)))
	case StatusSuccess:
		view.WriteString(m.styles.Success.Render(fmt.Sprintf("✅ done (%v)", elapsed)))
	case StatusFailed:
		view.WriteString(m.styles.Failed.Render(fmt.Sprintf("❌ failed (%v)", elapsed)))
		view.WriteString("\n")
		view.WriteString(m.styles.Error.Render(m.errMsg))
	}

	view.WriteString("\n")

	if m.status == StatusRunning {
		view.WriteString(m.styles.Help.Render("'q' to abort"))
		view.WriteString("\n")
	}

	return view.String()
}

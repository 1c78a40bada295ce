// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"strings"
	"sync"
	"time"

	bprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/ytdlwrap/internal/progress"
)

const (
	defaultBarWidth = 40
	maxBarWidth     = 80
	barPadding      = 4
)

// Status represents the current state of the download.
type Status int

const (
	StatusRunning Status = iota
	StatusSuccess
	StatusFailed
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Styles contains all the styling for the TUI.
type Styles struct {
	Title   lipgloss.Style
	Running lipgloss.Style
	Success lipgloss.Style
	Failed  lipgloss.Style
	Stats   lipgloss.Style
	Output  lipgloss.Style
	Error   lipgloss.Style
	Help    lipgloss.Style
}

// NewStyles creates the default styling for the TUI.
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")),
		Running: lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")),
		Failed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")),
		Stats: lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")),
		Output: lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Italic(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Italic(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
	}
}

// Model represents the TUI application state.
type Model struct {
	title      string
	status     Status
	record     progress.Record
	seen       bool
	lastOutput string
	errMsg     string
	startTime  time.Time
	endTime    time.Time
	bar        bprogress.Model
	width      int
	quitting   bool
	mutex      sync.RWMutex

	styles *Styles
}

// NewModel creates a new TUI model titled with the URL or arguments being downloaded.
func NewModel(title string) *Model {
	return &Model{
		title:     title,
		status:    StatusRunning,
		startTime: time.Now(),
		bar: bprogress.New(
			bprogress.WithDefaultGradient(),
			bprogress.WithWidth(defaultBarWidth),
		),
		styles: NewStyles(),
	}
}

// Status returns the current status.
func (m *Model) Status() Status {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.status
}

// Progress returns the latest progress record and whether one has been seen.
func (m *Model) Progress() (progress.Record, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.record, m.seen
}

// LastOutput returns the last non-progress line written by the tool.
func (m *Model) LastOutput() string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.lastOutput
}

// setOutput keeps the last non-empty line of text that is not a progress line.
func (m *Model) setOutput(text string) {
	lines := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r'
	})

	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		if _, ok := progress.Parse(line); ok {
			continue
		}

		m.lastOutput = line

		return
	}
}

func (m *Model) setWidth(width int) {
	m.width = width
	m.bar.Width = min(max(width-barPadding, 10), maxBarWidth) //nolint:mnd
}

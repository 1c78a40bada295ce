// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdstate carries the state shared by every subcommand.
// The root command builds it before any action runs and stores it in the context.
package cmdstate

import (
	"context"
	"errors"

	"github.com/matt-FFFFFF/ytdlwrap/internal/config"
	"github.com/matt-FFFFFF/ytdlwrap/internal/runner"
	"github.com/matt-FFFFFF/ytdlwrap/internal/ytdl"
)

// ErrNoState is returned when a command runs without the root command's setup.
var ErrNoState = errors.New("command state not found in context")

type stateKey struct{}

// State is the resolved configuration and the client built from it.
type State struct {
	Config *config.Config
	Client *ytdl.Client
}

// New builds the state for cfg.
func New(cfg *config.Config) *State {
	return &State{
		Config: cfg,
		Client: ytdl.New(cfg.BinaryPath),
	}
}

// Invocation returns an invocation of args with the configured defaults applied.
func (s *State) Invocation(args ...string) runner.Invocation {
	return s.Config.Invocation(args...)
}

// WithState returns a copy of ctx carrying s.
func WithState(ctx context.Context, s *State) context.Context {
	return context.WithValue(ctx, stateKey{}, s)
}

// FromContext returns the state stored in ctx.
func FromContext(ctx context.Context) (*State, error) {
	s, ok := ctx.Value(stateKey{}).(*State)
	if !ok || s == nil {
		return nil, ErrNoState
	}

	return s, nil
}

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ytdl

import (
	"context"
	"errors"
	"strings"

	"github.com/matt-FFFFFF/ytdlwrap/internal/ctxlog"
	"github.com/matt-FFFFFF/ytdlwrap/internal/runner"
)

// Flags for the read-only convenience queries.
const (
	flagListExtractors        = "--list-extractors"
	flagExtractorDescriptions = "--extractor-descriptions"
	flagHelp                  = "--help"
	flagDumpUserAgent         = "--dump-user-agent"
	flagVersion               = "--version"
)

// Text runs inv to completion and returns everything written to stdout.
//
// Both output channels are capped at the invocation's MaxBuffer; going over
// kills the process and fails with runner.ErrBufferOverflow. A spawn failure or
// a non-zero exit returns a *runner.ProcessError with the full stderr text.
func (c *Client) Text(ctx context.Context, inv runner.Invocation) (string, error) {
	inv = inv.Resolve()

	p, err := c.runner().Start(ctx, inv)
	if err != nil {
		return "", runner.SpawnFailure(err)
	}

	limit := inv.Options.MaxBuffer

	type capture struct {
		data []byte
		err  error
	}

	stderrCh := make(chan capture, 1)

	go func() {
		data, err := runner.ReadAllUpToMax(p.Stderr(), limit)
		if err != nil {
			p.Terminate(err)
		}

		stderrCh <- capture{data: data, err: err}
	}()

	stdout, readErr := runner.ReadAllUpToMax(p.Stdout(), limit)
	if readErr != nil {
		p.Terminate(readErr)
	}

	stderr := <-stderrCh
	exitCode, waitErr := p.Wait()

	if readErr != nil || stderr.err != nil {
		ctxlog.Debug(ctx, "output capture failed", "runID", p.ID, "error", errors.Join(readErr, stderr.err))

		return "", &runner.ProcessError{
			ExitCode: -1,
			Err:      errors.Join(readErr, stderr.err, waitErr),
			Stderr:   string(stderr.data),
		}
	}

	if err := runner.CheckExit(exitCode, waitErr, string(stderr.data)); err != nil {
		return "", err
	}

	return string(stdout), nil
}

// Extractors returns the names of the supported extractors, one per line of output.
func (c *Client) Extractors(ctx context.Context) ([]string, error) {
	return c.lines(ctx, flagListExtractors)
}

// ExtractorDescriptions returns the extractor descriptions, one per line of output.
func (c *Client) ExtractorDescriptions(ctx context.Context) ([]string, error) {
	return c.lines(ctx, flagExtractorDescriptions)
}

// Help returns the tool's help text.
func (c *Client) Help(ctx context.Context) (string, error) {
	return c.Text(ctx, runner.NewInvocation(flagHelp))
}

// UserAgent returns the user agent the tool sends.
func (c *Client) UserAgent(ctx context.Context) (string, error) {
	return c.Text(ctx, runner.NewInvocation(flagDumpUserAgent))
}

// Version returns the tool's version output.
func (c *Client) Version(ctx context.Context) (string, error) {
	return c.Text(ctx, runner.NewInvocation(flagVersion))
}

func (c *Client) lines(ctx context.Context, flag string) ([]string, error) {
	out, err := c.Text(ctx, runner.NewInvocation(flag))
	if err != nil {
		return nil, err
	}

	return strings.Split(strings.TrimRight(out, "\r\n"), "\n"), nil
}

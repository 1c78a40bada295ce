// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ytdl

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/matt-FFFFFF/ytdlwrap/internal/ctxlog"
	"github.com/matt-FFFFFF/ytdlwrap/internal/runner"
)

const (
	flagDumpJSON  = "--dump-json"
	defaultFormat = "best"
)

// formatFlags are the spellings of the format selector.
var formatFlags = []string{"-f", "--format"}

// ErrParseMetadata is returned when the tool's JSON output cannot be decoded.
var ErrParseMetadata = errors.New("failed to parse metadata JSON")

// ParseStrategy records which decoding path produced a metadata value.
type ParseStrategy int

const (
	// StrategyNone means nothing could be decoded.
	StrategyNone ParseStrategy = iota
	// StrategyStrict means the output was a single JSON document.
	StrategyStrict
	// StrategyJoinedLines means the output was one JSON document per line and
	// was decoded as an array built from those lines.
	StrategyJoinedLines
)

// String implements fmt.Stringer.
func (s ParseStrategy) String() string {
	switch s {
	case StrategyStrict:
		return "strict"
	case StrategyJoinedLines:
		return "joined-lines"
	default:
		return "none"
	}
}

// JSON runs inv asking the tool for one JSON record per item and decodes the result.
// A default format selector is added when inv has none. A single item decodes to
// a map; a playlist or several URLs decode to a slice of maps.
func (c *Client) JSON(ctx context.Context, inv runner.Invocation) (any, error) {
	out, err := c.Text(ctx, metadataInvocation(inv))
	if err != nil {
		return nil, err
	}

	v, strategy, err := ParseJSONOutput(out)

	switch strategy {
	case StrategyStrict:
		ctxlog.Debug(ctx, "metadata decoded", "strategy", strategy.String())
	case StrategyJoinedLines:
		ctxlog.Info(ctx, "metadata decoded from multiple records", "strategy", strategy.String())
	default:
		ctxlog.Warn(ctx, "metadata could not be decoded", "error", err, "bytes", len(out))
	}

	return v, err
}

// VideoInfo is JSON for a plain argument list, usually a single URL.
func (c *Client) VideoInfo(ctx context.Context, args ...string) (any, error) {
	return c.JSON(ctx, runner.NewInvocation(args...))
}

// ParseJSONOutput decodes the tool's --dump-json output.
//
// The whole text is first decoded as one JSON document. If that fails, every
// non-blank line is taken as one record and the lines are decoded as an array.
// When both fail the error wraps ErrParseMetadata and both causes.
func ParseJSONOutput(text string) (any, ParseStrategy, error) {
	var v any

	strictErr := json.Unmarshal([]byte(text), &v)
	if strictErr == nil {
		return v, StrategyStrict, nil
	}

	var records []string

	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			records = append(records, line)
		}
	}

	if len(records) == 0 {
		return nil, StrategyNone, errors.Join(ErrParseMetadata, strictErr)
	}

	var list []any

	joinedErr := json.Unmarshal([]byte("["+strings.Join(records, ",")+"]"), &list)
	if joinedErr != nil {
		return nil, StrategyNone, errors.Join(ErrParseMetadata, strictErr, joinedErr)
	}

	return list, StrategyJoinedLines, nil
}

func metadataInvocation(inv runner.Invocation) runner.Invocation {
	if !inv.HasFlag(formatFlags...) {
		inv = inv.WithArgs(formatFlags[0], defaultFormat)
	}

	return inv.WithArgs(flagDumpJSON)
}

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger through a context.Context.
//
// The default logger writes to stderr through a pretty console handler, so that
// the wrapped tool's stdout stays clean when it is piped. The level is read once
// from the YTDLWRAP_LOG_LEVEL environment variable and can be changed at runtime
// through LevelVar.
package ctxlog

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/ytdlwrap/internal/ctxlog"
)

// Watch cancels the context on the second signal of a given type.
// The first one is left for the child process, which receives its own copy.
// Watch returns when sigCh is closed, when ctx is done, or after cancelling.
func Watch(ctx context.Context, sigCh <-chan os.Signal, cancel context.CancelFunc) {
	seen := make(map[os.Signal]struct{})

	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-sigCh:
			if !ok {
				return
			}

			if _, dup := seen[sig]; dup {
				ctxlog.Info(ctx, "watchdog", "detail", "second signal received, cancelling", "signal", sig.String())
				cancel()

				return
			}

			ctxlog.Info(ctx, "watchdog", "detail", "first signal received, passing to child", "signal", sig.String())

			seen[sig] = struct{}{}
		}
	}
}

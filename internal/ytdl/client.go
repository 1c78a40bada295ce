// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ytdl

import (
	"sync"

	"github.com/matt-FFFFFF/ytdlwrap/internal/runner"
)

// DefaultBinary is used when no binary path is configured.
const DefaultBinary = "youtube-dl"

// Client runs the download tool found at its binary path.
// It is safe for concurrent use; each call launches its own process.
type Client struct {
	mu         sync.RWMutex
	binaryPath string
}

// New returns a Client for binaryPath, or DefaultBinary when it is empty.
func New(binaryPath string) *Client {
	c := &Client{}
	c.SetBinaryPath(binaryPath)

	return c
}

// BinaryPath returns the configured binary path.
func (c *Client) BinaryPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.binaryPath
}

// SetBinaryPath changes the binary used by later invocations.
func (c *Client) SetBinaryPath(path string) {
	if path == "" {
		path = DefaultBinary
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.binaryPath = path
}

func (c *Client) runner() *runner.Runner {
	return runner.New(c.BinaryPath())
}

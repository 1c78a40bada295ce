// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmdstate

import (
	"errors"

	"github.com/matt-FFFFFF/ytdlwrap/internal/runner"
	"github.com/urfave/cli/v3"
)

const cliExitStr = ""

// Exit converts an invocation error into a cli exit error.
// The download tool's own exit code is kept when it ran and failed; anything else exits 1.
func Exit(err error) error {
	if err == nil {
		return nil
	}

	var pe *runner.ProcessError
	if errors.As(err, &pe) && pe.ExitCode > 0 {
		return cli.Exit(cliExitStr, pe.ExitCode)
	}

	return cli.Exit(cliExitStr, 1)
}

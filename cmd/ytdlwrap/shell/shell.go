// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package shell contains an interactive prompt that runs each line as a
// download tool invocation.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/shlex"
	"github.com/matt-FFFFFF/ytdlwrap/cmd/cmdstate"
	"github.com/matt-FFFFFF/ytdlwrap/cmd/ytdlwrap/execute"
	"github.com/peterh/liner"
	"github.com/urfave/cli/v3"
)

const prompt = "ytdl> "

// ShellCmd starts the interactive prompt.
var ShellCmd = &cli.Command{
	Name:  "shell",
	Usage: "Run download tool invocations from an interactive prompt",
	Description: `Each line is split like a shell command line and run as the arguments of
the download tool. Type quit or exit, or press Ctrl+C at the prompt, to leave.`,
	Action: func(ctx context.Context, cmd *cli.Command) error {
		state, err := cmdstate.FromContext(ctx)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		line := liner.NewLiner()

		defer func() {
			_ = line.Close()
		}()

		line.SetCtrlCAborts(true)

		return Loop(ctx, line, state, cmd.Root().Writer, cmd.Root().ErrWriter)
	},
}

// Prompter reads one line of input.
type Prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// Loop reads lines from p and runs each one until quit, exit, an aborted prompt or EOF.
func Loop(ctx context.Context, p Prompter, state *cmdstate.State, stdout, stderr io.Writer) error {
	fmt.Fprintln(stdout, "Entering interactive mode, type `quit` or `exit` or press Ctrl+C to quit.") //nolint:errcheck

	var (
		err   error
		input string
	)

	for {
		if ctx.Err() != nil {
			return nil
		}

		input, err = p.Prompt(prompt)
		if err != nil {
			break
		}

		input = strings.TrimSpace(input)

		if input == "" {
			continue
		}

		if input == "quit" || input == "exit" {
			return nil
		}

		p.AppendHistory(input)

		args, splitErr := shlex.Split(input)
		if splitErr != nil {
			fmt.Fprintf(stderr, "%s\n", splitErr) //nolint:errcheck
			continue
		}

		runErr := execute.Run(ctx, state, args, execute.Options{Stdout: stdout, Stderr: stderr})
		if runErr != nil {
			fmt.Fprintf(stderr, "%s\n", runErr) //nolint:errcheck
		}
	}

	if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
		fmt.Fprintln(stdout, "Aborted") //nolint:errcheck
		return nil
	}

	return cli.Exit(fmt.Sprintf("Error reading line: %s", err), 1)
}

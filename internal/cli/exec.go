// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// exec.go - One-shot execution of command lines.

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/medrec/internal/commands"
	"github.com/jeranaias/medrec/internal/session"
)

// ExecOptions controls exec mode.
type ExecOptions struct {
	Yes       bool
	JSON      bool
	KeepGoing bool
}

func execCmd(flags *GlobalFlags, streams Streams, jsonMode *bool) *cobra.Command {
	opts := ExecOptions{}

	cmd := &cobra.Command{
		Use:   "exec [LINE]...",
		Short: "Run command lines and exit",
		Long: `Run each argument as one command line, in order. With no arguments,
lines are read from stdin.

Destructive commands (delete, clear, deletemr, clearmu) need --yes unless
stdin is a terminal.`,
		Example: `  medrec exec "add n/S1234567A nm/Alex Yeoh p/87438807 e/alex@example.com a/Blk 30"
  medrec exec --yes "clearmu n/S1234567A"
  medrec exec --json "viewmr 1"`,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			*jsonMode = opts.JSON

			lines := args
			if len(lines) == 0 {
				lines, err = readLines(streams)
				if err != nil {
					return err
				}
			}
			if len(lines) == 0 {
				return &UsageError{Reason: "no command lines given", Example: `medrec exec "list"`}
			}

			app, err := NewApp(*flags, streams)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			mgr, err := app.OpenSession(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := mgr.Close(ctx); closeErr != nil && err == nil {
					err = closeErr
				}
			}()

			return RunLines(ctx, mgr, lines, opts, streams)
		},
	}

	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "confirm destructive commands without prompting")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "print one JSON response per line")
	cmd.Flags().BoolVarP(&opts.KeepGoing, "keep-going", "k", false, "continue after a failed line")
	return cmd
}

func readLines(streams Streams) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(streams.In)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" && !strings.HasPrefix(line, "#") {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

// RunLines executes lines in order. It stops at the first failure unless
// KeepGoing is set, and returns the first failure either way. An exit
// command ends the run.
func RunLines(ctx context.Context, mgr *session.Manager, lines []string, opts ExecOptions, streams Streams) error {
	confirm := Confirmer(ConfirmationOptions{
		Yes:         opts.Yes,
		JSONMode:    opts.JSON,
		Interactive: IsTTY(),
	}, ReaderPrompter(streams.In, streams.Err))

	var firstErr error
	for _, line := range lines {
		result, err := mgr.Handle(ctx, line, confirm)
		if opts.JSON {
			printJSONResult(streams, mgr, line, result, err)
		} else {
			printResult(streams, mgr, result, err)
		}

		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			// Save failures and confirmation refusals stop regardless.
			var usageErr *UsageError
			if !opts.KeepGoing || errors.Is(err, session.ErrSave) || errors.As(err, &usageErr) {
				return silenced{firstErr}
			}
			continue
		}
		if result.Exit {
			break
		}
	}
	if firstErr != nil {
		return silenced{firstErr}
	}
	return nil
}

func printResult(streams Streams, mgr *session.Manager, result commands.Result, err error) {
	if result.Feedback != "" {
		fmt.Fprintln(streams.Out, result.Feedback)
	}
	if err != nil {
		DisplayError(streams.Err, err, false)
		return
	}
	if result.ShowHelp {
		fmt.Fprint(streams.Out, commands.HelpText(mgr.Parser().Registry()))
	}
}

func printJSONResult(streams Streams, mgr *session.Manager, line string, result commands.Result, err error) {
	var resp *JSONResponse
	if err != nil {
		resp = NewJSONErrorResponse(line, err)
		data := ExecData{Feedback: result.Feedback}
		if kind := errorKind(err); kind != nil {
			data.Kind = kind.Error()
		}
		resp.Data = data
	} else {
		feedback := result.Feedback
		if result.ShowHelp {
			feedback = commands.HelpText(mgr.Parser().Registry())
		}
		resp = NewJSONResponse(line, ExecData{Feedback: feedback, Exit: result.Exit})
	}
	_ = resp.Print(streams.Out)
}

// silenced marks an error that has already been displayed.
type silenced struct{ error }

func (s silenced) Unwrap() error { return s.error }

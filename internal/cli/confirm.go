// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// confirm.go - Confirmation of destructive patient commands.
//
// The same flow is used by every line-oriented front end:
//   1. If --yes was given, proceed without prompting
//   2. In --json mode, require --yes (no interactive prompts in JSON mode)
//   3. If there is no terminal to prompt on, require --yes
//   4. Otherwise ask and accept only "y" or "yes"

package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jeranaias/medrec/internal/commands"
	"github.com/jeranaias/medrec/internal/session"
)

// =============================================================================
// UNIFIED CONFIRMATION HANDLING
// =============================================================================

// ConfirmationOptions controls how destructive commands are confirmed.
type ConfirmationOptions struct {
	// Yes indicates --yes was passed (skip interactive prompt)
	Yes bool
	// JSONMode indicates --json was passed
	JSONMode bool
	// Interactive is false when there is no terminal to prompt on
	Interactive bool
}

// LinePrompter shows prompt and returns the line the user typed.
type LinePrompter func(prompt string) (string, error)

// ReaderPrompter prompts on out and reads the answer from in.
func ReaderPrompter(in io.Reader, out io.Writer) LinePrompter {
	reader := bufio.NewReader(in)
	return func(prompt string) (string, error) {
		fmt.Fprint(out, prompt)
		input, err := reader.ReadString('\n')
		if err != nil && input == "" {
			return "", fmt.Errorf("failed to read confirmation: %w", err)
		}
		return input, nil
	}
}

// Confirmer returns the session callback implementing the flow above.
func Confirmer(opts ConfirmationOptions, prompt LinePrompter) session.ConfirmFunc {
	return func(cmd commands.Command) (bool, error) {
		if opts.Yes {
			return true, nil
		}
		if opts.JSONMode {
			return false, &UsageError{
				Reason:  "confirmation required: use --yes for destructive commands in JSON mode",
				Example: "medrec exec --json --yes \"" + cmd.Word() + " ...\"",
			}
		}
		if !opts.Interactive {
			return false, &UsageError{
				Reason:  "confirmation required but stdin is not a terminal; use --yes",
				Example: "medrec exec --yes \"" + cmd.Word() + " ...\"",
			}
		}

		input, err := prompt(fmt.Sprintf("Are you sure you want to %s? [y/N]: ", commands.DescribeAction(cmd)))
		if err != nil {
			return false, err
		}
		return IsYes(input), nil
	}
}

// IsYes reports whether a prompt answer approves the action.
func IsYes(input string) bool {
	response := strings.ToLower(strings.TrimSpace(input))
	return response == "y" || response == "yes"
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Unified error display and exit codes for the medrec CLI.
//
// Command handlers always return errors; Execute displays them once and
// maps them to an exit code.

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jeranaias/medrec/internal/commands"
	"github.com/jeranaias/medrec/internal/config"
	"github.com/jeranaias/medrec/internal/storage"
)

// =============================================================================
// EXIT CODES - Specific codes for different error categories
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitNotFoundError indicates a patient or file was not found
	ExitNotFoundError = 7
)

// ErrConfig marks failures to load or apply configuration.
var ErrConfig = errors.New("configuration error")

// UsageError reports bad process arguments.
type UsageError struct {
	Reason  string
	Example string
}

func (e *UsageError) Error() string {
	if e.Example != "" {
		return fmt.Sprintf("%s\nExample: %s", e.Reason, e.Example)
	}
	return e.Reason
}

// =============================================================================
// ERROR DISPLAY HELPERS
// =============================================================================

// DisplayError writes err to w, styled, or as a JSON response in JSON mode.
func DisplayError(w io.Writer, err error, jsonMode bool) {
	if err == nil {
		return
	}

	if jsonMode {
		DisplayErrorJSON(w, err)
		return
	}

	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("[ERROR]"), err.Error())
}

// DisplayErrorJSON writes err as a structured JSON object.
func DisplayErrorJSON(w io.Writer, err error) {
	output := map[string]any{
		"success":    false,
		"error":      err.Error(),
		"error_type": ErrorType(err),
		"exit_code":  GetExitCode(err),
	}
	if kind := errorKind(err); kind != nil {
		output["kind"] = kind.Error()
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(output)
}

// ErrorType names the category of err for JSON output.
func ErrorType(err error) string {
	var parseErr *commands.ParseError
	var cmdErr *commands.CommandError
	var usageErr *UsageError
	var validateErrs config.ValidateErrors

	switch {
	case errors.As(err, &parseErr):
		return "parse_error"
	case errors.As(err, &cmdErr):
		return "command_error"
	case errors.As(err, &usageErr):
		return "usage_error"
	case errors.As(err, &validateErrs), errors.Is(err, ErrConfig):
		return "config_error"
	default:
		return "generic_error"
	}
}

func errorKind(err error) error {
	var parseErr *commands.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Kind
	}
	var cmdErr *commands.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Kind
	}
	return nil
}

// GetExitCode determines the appropriate exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usageErr *UsageError
	var validateErrs config.ValidateErrors

	switch {
	case errors.Is(err, commands.ErrPersonNotFound),
		errors.Is(err, commands.ErrInvalidDisplayedIndex):
		return ExitNotFoundError
	case errors.Is(err, commands.ErrUnknownCommand),
		errors.Is(err, commands.ErrInvalidCommandFormat),
		errors.Is(err, commands.ErrDuplicatePrefix),
		errors.Is(err, commands.ErrInvalidFieldContent),
		errors.Is(err, commands.ErrInvalidValue),
		errors.As(err, &usageErr):
		return ExitUsageError
	case errors.Is(err, ErrConfig),
		errors.Is(err, storage.ErrUnknownBackend),
		errors.As(err, &validateErrs):
		return ExitConfigError
	default:
		return ExitGeneralError
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERROR KINDS
// =============================================================================

// Error kinds. Every error returned by Parse or Execute wraps exactly one of
// these, so callers can branch with errors.Is.
var (
	ErrUnknownCommand        = errors.New("unknown command")
	ErrInvalidCommandFormat  = errors.New("invalid command format")
	ErrDuplicatePrefix       = errors.New("duplicate prefix")
	ErrInvalidFieldContent   = errors.New("invalid field content")
	ErrInvalidValue          = errors.New("invalid value")
	ErrInvalidDisplayedIndex = errors.New("invalid displayed index")
	ErrPersonNotFound        = errors.New("person not found")
	ErrDuplicatePatient      = errors.New("duplicate patient")
	ErrDuplicateUsage        = errors.New("duplicate medicine usage")
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ParseError is returned when input is rejected before any model access.
type ParseError struct {
	Kind    error
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// CommandError is returned when a parsed command cannot be applied to the model.
type CommandError struct {
	Kind    error
	Message string
	Err     error // underlying model error, if any
}

func (e *CommandError) Error() string {
	return e.Message
}

func (e *CommandError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// =============================================================================
// CONSTRUCTORS
// =============================================================================

func invalidFormat(usage string) error {
	return &ParseError{
		Kind:    ErrInvalidCommandFormat,
		Message: fmt.Sprintf(MessageInvalidCommandFormat, usage),
	}
}

func invalidValue(err error) error {
	return &ParseError{Kind: ErrInvalidValue, Message: err.Error()}
}

func commandFailure(kind error, format string, args ...any) error {
	return &CommandError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "errors"

var (
	// ErrDuplicatePatient is returned when adding a patient whose NRIC is taken.
	ErrDuplicatePatient = errors.New("patient already exists")

	// ErrPatientNotFound is returned by mutations targeting an unknown NRIC.
	ErrPatientNotFound = errors.New("patient not found")

	// ErrDuplicateUsage is returned when the same medicine usage is added twice.
	ErrDuplicateUsage = errors.New("medicine usage already recorded")

	// ErrInvalidReportField is returned when a report field breaks the field rule.
	ErrInvalidReportField = errors.New("invalid report field")
)

// ConstraintError reports a value that fails a field's format rule.
type ConstraintError struct {
	Field   string // e.g. "nric", "phone"
	Value   string // raw input
	Message string // user-facing constraint description
}

func (e *ConstraintError) Error() string {
	return e.Message
}

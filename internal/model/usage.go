// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the on-screen and on-disk format for usage dates.
const DateLayout = "2006-01-02"

// Constraint messages for medicine usages.
const (
	MessageMedicineConstraints = "Medicine names and dosages must contain only letters, numbers, spaces, commas, hyphens, and at least one letter"
	MessageDateConstraints     = "Dates should be in the format YYYY-MM-DD"
	MessagePeriodConstraints   = "End date cannot be before start date"
)

// MedicineUsage records one medicine taken by a patient over a date range.
type MedicineUsage struct {
	Name   string
	Dosage string
	Start  time.Time
	End    time.Time
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &ConstraintError{Field: "date", Value: s, Message: MessageDateConstraints}
	}
	return t, nil
}

// NewMedicineUsage validates and builds a usage from raw field values.
func NewMedicineUsage(name, dosage, start, end string) (MedicineUsage, error) {
	name = strings.TrimSpace(name)
	dosage = strings.TrimSpace(dosage)
	if !IsValidField(name) {
		return MedicineUsage{}, &ConstraintError{Field: "medicine", Value: name, Message: MessageMedicineConstraints}
	}
	if !IsValidField(dosage) {
		return MedicineUsage{}, &ConstraintError{Field: "dosage", Value: dosage, Message: MessageMedicineConstraints}
	}

	startDate, err := ParseDate(start)
	if err != nil {
		return MedicineUsage{}, err
	}
	endDate, err := ParseDate(end)
	if err != nil {
		return MedicineUsage{}, err
	}
	if endDate.Before(startDate) {
		return MedicineUsage{}, &ConstraintError{Field: "period", Value: end, Message: MessagePeriodConstraints}
	}

	return MedicineUsage{Name: name, Dosage: dosage, Start: startDate, End: endDate}, nil
}

// Equal reports whether both usages record the same medicine, dosage and period.
// Medicine names compare case-insensitively.
func (u MedicineUsage) Equal(other MedicineUsage) bool {
	return strings.EqualFold(u.Name, other.Name) &&
		u.Dosage == other.Dosage &&
		u.Start.Equal(other.Start) &&
		u.End.Equal(other.End)
}

func (u MedicineUsage) String() string {
	return fmt.Sprintf("%s (%s) from %s to %s",
		u.Name, u.Dosage, u.Start.Format(DateLayout), u.End.Format(DateLayout))
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "strings"

// MessageNricConstraints describes a valid NRIC.
const MessageNricConstraints = "NRIC should start with S, T, F, G or M, followed by 7 digits and end with a capital letter"

// Nric is a National Registration Identity Card number.
// The zero value is not a valid NRIC; use ParseNric.
type Nric struct {
	value string
}

// ParseNric trims and upper-cases s and validates it as an NRIC.
func ParseNric(s string) (Nric, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if !IsValidNric(v) {
		return Nric{}, &ConstraintError{Field: "nric", Value: s, Message: MessageNricConstraints}
	}
	return Nric{value: v}, nil
}

// MustParseNric is like ParseNric but panics on invalid input.
// Intended for tests and fixtures.
func MustParseNric(s string) Nric {
	n, err := ParseNric(s)
	if err != nil {
		panic(err)
	}
	return n
}

// IsValidNric reports whether s is an NRIC in canonical form.
func IsValidNric(s string) bool {
	return validate.Var(s, "nric") == nil
}

// IsZero reports whether n was never set.
func (n Nric) IsZero() bool {
	return n.value == ""
}

func (n Nric) String() string {
	return n.value
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	nricPattern        = regexp.MustCompile(`^[STFGM]\d{7}[A-Z]$`)
	fieldCharsPattern  = regexp.MustCompile(`^[a-zA-Z0-9 ,\-]+$`)
	fieldLetterPattern = regexp.MustCompile(`[a-zA-Z]`)
	namePattern        = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} ]*$`)
)

// Validation tags understood by validate, in addition to the validator
// built-ins (email, number, min, max, required).
const (
	tagNric        = "nric"
	tagReportField = "reportfield"
	tagPatientName = "patientname"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	rules := map[string]validator.Func{
		tagNric:        validateNric,
		tagReportField: validateReportField,
		tagPatientName: validatePatientName,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("model: register %q validation: %v", tag, err))
		}
	}

	return v
}

func validateNric(fl validator.FieldLevel) bool {
	return nricPattern.MatchString(fl.Field().String())
}

// validateReportField accepts letters, digits, spaces, commas and hyphens,
// requiring at least one letter and a non-blank value.
func validateReportField(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	return s != "" &&
		fieldCharsPattern.MatchString(s) &&
		fieldLetterPattern.MatchString(s)
}

func validatePatientName(fl validator.FieldLevel) bool {
	return namePattern.MatchString(fl.Field().String())
}

// IsValidField reports whether s satisfies the free-text field rule used by
// medical report fields and medicine usages.
func IsValidField(s string) bool {
	return validate.Var(s, tagReportField) == nil
}

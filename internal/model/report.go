// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"strings"
)

// None is the sentinel stored in a report field that has no content.
const None = "None"

// MedicalReport is a value object: the four categorical fields plus the
// patient's medicine usages. It is replaced wholesale, never edited in place.
type MedicalReport struct {
	Allergy        string
	Illness        string
	Surgery        string
	Immunization   string
	MedicineUsages []MedicineUsage
}

// EmptyMedicalReport returns a report with every field set to None.
func EmptyMedicalReport() MedicalReport {
	return MedicalReport{
		Allergy:      None,
		Illness:      None,
		Surgery:      None,
		Immunization: None,
	}
}

// NewMedicalReport validates the four fields and builds a report without
// medicine usages. Every field must satisfy IsValidField; a failure reports
// ErrInvalidReportField without naming the offending field.
func NewMedicalReport(allergy, illness, surgery, immunization string) (MedicalReport, error) {
	fields := []string{allergy, illness, surgery, immunization}
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
		if !IsValidField(fields[i]) {
			return MedicalReport{}, ErrInvalidReportField
		}
	}
	return MedicalReport{
		Allergy:      fields[0],
		Illness:      fields[1],
		Surgery:      fields[2],
		Immunization: fields[3],
	}, nil
}

// IsEmpty reports whether all four categorical fields are None.
func (r MedicalReport) IsEmpty() bool {
	return r.Allergy == None && r.Illness == None &&
		r.Surgery == None && r.Immunization == None
}

// WithMedicineUsages returns a copy of r carrying usages.
func (r MedicalReport) WithMedicineUsages(usages []MedicineUsage) MedicalReport {
	r.MedicineUsages = append([]MedicineUsage(nil), usages...)
	return r
}

// Equal compares all fields, including usages in order.
func (r MedicalReport) Equal(other MedicalReport) bool {
	if r.Allergy != other.Allergy || r.Illness != other.Illness ||
		r.Surgery != other.Surgery || r.Immunization != other.Immunization {
		return false
	}
	if len(r.MedicineUsages) != len(other.MedicineUsages) {
		return false
	}
	for i := range r.MedicineUsages {
		if !r.MedicineUsages[i].Equal(other.MedicineUsages[i]) {
			return false
		}
	}
	return true
}

func (r MedicalReport) clone() MedicalReport {
	return r.WithMedicineUsages(r.MedicineUsages)
}

func (r MedicalReport) String() string {
	return fmt.Sprintf("Allergy: %s; Illness: %s; Surgery: %s; Immunization: %s",
		r.Allergy, r.Illness, r.Surgery, r.Immunization)
}

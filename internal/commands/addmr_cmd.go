// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"fmt"

	"github.com/jeranaias/medrec/internal/model"
)

const (
	AddReportWord  = "addmr"
	AddReportUsage = AddReportWord + ": Adds a medical report to the patient identified by NRIC. " +
		"Fields left out are recorded as None.\n" +
		"Parameters: n/NRIC [al/ALLERGY] [ill/ILLNESS] [sur/SURGERY] [imm/IMMUNIZATION]\n" +
		"Example: " + AddReportWord + " n/S1234567A al/Peanuts ill/Flu sur/Appendectomy imm/COVID-19"

	MessageAddReportSuccess = "Medical report added for %s: %s"
)

var addReportPrefixes = []Prefix{PrefixNric, PrefixAllergy, PrefixIllness, PrefixSurgery, PrefixImmunization}

func addReportSpec() *Spec {
	return &Spec{
		Word:     AddReportWord,
		Summary:  "Record a patient's medical report",
		Usage:    AddReportUsage,
		Category: CategoryReports,
		Prefixes: addReportPrefixes,
		Parse:    parseAddReport,
	}
}

// AddMedicalReportCommand replaces the categorical fields of a patient's
// medical report. Medicine usages already recorded are kept.
type AddMedicalReportCommand struct {
	nric   model.Nric
	report model.MedicalReport
}

// NewAddMedicalReportCommand creates the command for nric.
func NewAddMedicalReportCommand(nric model.Nric, report model.MedicalReport) *AddMedicalReportCommand {
	if nric.IsZero() {
		panic("commands: zero NRIC")
	}
	return &AddMedicalReportCommand{nric: nric, report: report}
}

func parseAddReport(args string) (Command, error) {
	am := Tokenize(args, addReportPrefixes...)
	if !am.Has(PrefixNric) || am.Preamble() != "" {
		return nil, invalidFormat(AddReportUsage)
	}
	if err := am.VerifyNoDuplicatePrefixesFor(addReportPrefixes...); err != nil {
		return nil, err
	}

	raw, _ := am.Value(PrefixNric)
	nric, err := parseNric(raw)
	if err != nil {
		return nil, err
	}

	report, err := model.NewMedicalReport(
		am.ValueOr(PrefixAllergy, model.None),
		am.ValueOr(PrefixIllness, model.None),
		am.ValueOr(PrefixSurgery, model.None),
		am.ValueOr(PrefixImmunization, model.None),
	)
	if errors.Is(err, model.ErrInvalidReportField) {
		return nil, &ParseError{Kind: ErrInvalidFieldContent, Message: MessageInvalidFieldContent}
	} else if err != nil {
		return nil, err
	}

	return NewAddMedicalReportCommand(nric, report), nil
}

func (c *AddMedicalReportCommand) Word() string { return AddReportWord }

// Nric returns the targeted patient's NRIC.
func (c *AddMedicalReportCommand) Nric() model.Nric { return c.nric }

// Report returns the report fields to record.
func (c *AddMedicalReportCommand) Report() model.MedicalReport { return c.report }

func (c *AddMedicalReportCommand) Execute(m Model) (Result, error) {
	if _, err := resolveTarget(m, ByNric(c.nric)); err != nil {
		return Result{}, err
	}
	if err := m.SetMedicalReport(c.nric, c.report); err != nil {
		return Result{}, err
	}
	return Result{Feedback: fmt.Sprintf(MessageAddReportSuccess, c.nric, c.report)}, nil
}

func (c *AddMedicalReportCommand) Equal(other Command) bool {
	o, ok := other.(*AddMedicalReportCommand)
	return ok && c.nric == o.nric && c.report.Equal(o.report)
}

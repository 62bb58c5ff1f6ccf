// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"fmt"

	"github.com/jeranaias/medrec/internal/model"
)

const (
	AddUsageWord  = "addmu"
	AddUsageUsage = AddUsageWord + ": Adds a medicine usage to a patient identified by NRIC, OR by the index " +
		"number used in the displayed patient list. However, it cannot be both NRIC and index.\n" +
		"Parameters for first method: n/NRIC mn/MEDICINE dos/DOSAGE sd/START_DATE ed/END_DATE\n" +
		"Example: " + AddUsageWord + " n/S1234567A mn/Paracetamol dos/500mg sd/2024-01-01 ed/2024-01-07\n" +
		"Parameters for second method: INDEX (must be a positive integer) mn/MEDICINE dos/DOSAGE sd/START_DATE ed/END_DATE\n" +
		"Example: " + AddUsageWord + " 1 mn/Paracetamol dos/500mg sd/2024-01-01 ed/2024-01-07"

	MessageAddUsageSuccess = "Medicine usage added to %s: %s"
	MessageDuplicateUsage  = "This medicine usage already exists for the patient"
)

var (
	usageFieldPrefixes = []Prefix{PrefixMedicineName, PrefixDosage, PrefixStartDate, PrefixEndDate}
	addUsagePrefixes   = append([]Prefix{PrefixNric}, usageFieldPrefixes...)
)

func addUsageSpec() *Spec {
	return &Spec{
		Word:       AddUsageWord,
		Summary:    "Record a medicine usage",
		Usage:      AddUsageUsage,
		Category:   CategoryUsages,
		Prefixes:   addUsagePrefixes,
		TakesIndex: true,
		Parse:      parseAddUsage,
	}
}

// AddMedicineUsageCommand appends one medicine usage to a patient's report.
type AddMedicineUsageCommand struct {
	target Target
	usage  model.MedicineUsage
}

// NewAddMedicineUsageCommand creates the command for t.
func NewAddMedicineUsageCommand(t Target, usage model.MedicineUsage) *AddMedicineUsageCommand {
	return &AddMedicineUsageCommand{target: mustTarget(t), usage: usage}
}

func parseAddUsage(args string) (Command, error) {
	am := Tokenize(args, addUsagePrefixes...)
	if !am.Has(usageFieldPrefixes...) {
		return nil, invalidFormat(AddUsageUsage)
	}
	if err := am.VerifyNoDuplicatePrefixesFor(addUsagePrefixes...); err != nil {
		return nil, err
	}

	t, err := parseTarget(am, AddUsageUsage)
	if err != nil {
		return nil, err
	}

	usage, err := model.NewMedicineUsage(
		am.ValueOr(PrefixMedicineName, ""),
		am.ValueOr(PrefixDosage, ""),
		am.ValueOr(PrefixStartDate, ""),
		am.ValueOr(PrefixEndDate, ""),
	)
	if err != nil {
		return nil, invalidValue(err)
	}

	return NewAddMedicineUsageCommand(t, usage), nil
}

func (c *AddMedicineUsageCommand) Word() string { return AddUsageWord }

// Target returns the patient selector.
func (c *AddMedicineUsageCommand) Target() Target { return c.target }

// Usage returns the medicine usage to record.
func (c *AddMedicineUsageCommand) Usage() model.MedicineUsage { return c.usage }

func (c *AddMedicineUsageCommand) Execute(m Model) (Result, error) {
	p, err := resolveTarget(m, c.target)
	if err != nil {
		return Result{}, err
	}
	for _, u := range p.MedicineUsages() {
		if u.Equal(c.usage) {
			return Result{}, commandFailure(ErrDuplicateUsage, MessageDuplicateUsage)
		}
	}
	if err := m.AddMedicineUsage(p, c.usage); err != nil {
		if errors.Is(err, model.ErrDuplicateUsage) {
			return Result{}, &CommandError{Kind: ErrDuplicateUsage, Message: MessageDuplicateUsage, Err: err}
		}
		return Result{}, err
	}
	return Result{Feedback: fmt.Sprintf(MessageAddUsageSuccess, p.Nric, c.usage)}, nil
}

func (c *AddMedicineUsageCommand) Equal(other Command) bool {
	o, ok := other.(*AddMedicineUsageCommand)
	return ok && sameTarget(c.target, o.target) && c.usage.Equal(o.usage)
}

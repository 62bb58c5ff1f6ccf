// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"

	"github.com/jeranaias/medrec/internal/model"
)

// =============================================================================
// COMMAND
// =============================================================================

// Command is a fully validated, immutable command value.
type Command interface {
	// Word is the command word the value was parsed from.
	Word() string

	// Execute applies the command to m. Every check runs before the single
	// mutating call, so a failed Execute leaves m untouched.
	Execute(m Model) (Result, error)

	// Equal reports whether other is the same command with the same arguments.
	Equal(other Command) bool
}

// Confirmable is implemented by commands the user must confirm before they
// run.
type Confirmable interface {
	RequiresConfirmation() bool
}

// NeedsConfirmation reports whether the front end must ask before executing cmd.
func NeedsConfirmation(cmd Command) bool {
	c, ok := cmd.(Confirmable)
	return ok && c.RequiresConfirmation()
}

// TargetOf names the record cmd acts on, or "" for commands without one.
func TargetOf(cmd Command) string {
	switch c := cmd.(type) {
	case interface{ Target() Target }:
		return c.Target().String()
	case *AddMedicalReportCommand:
		return NricTarget{Nric: c.Nric()}.String()
	case *AddCommand:
		return NricTarget{Nric: c.Patient().Nric}.String()
	}
	return ""
}

// DescribeAction says what cmd is about to do, for confirmation prompts.
func DescribeAction(cmd Command) string {
	target := TargetOf(cmd)
	switch cmd.Word() {
	case DeleteWord:
		return "delete patient " + target
	case ClearWord:
		return "delete ALL patient records"
	case DeleteReportWord:
		return "reset the medical report of " + target
	case ClearUsageWord:
		return "clear all medicine usages of " + target
	}
	if target != "" {
		return "run " + cmd.Word() + " on " + target
	}
	return "run " + cmd.Word()
}

// Result is what a successful command hands back to the front end.
type Result struct {
	Feedback string
	ShowHelp bool
	Exit     bool
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the patient store a command runs against. *model.Manager
// satisfies it.
type Model interface {
	FindPatientByNric(nric model.Nric) (*model.Patient, bool)
	HasPatient(nric model.Nric) bool

	// FilteredPatients is the displayed list that indices refer to.
	FilteredPatients() []*model.Patient
	UpdateFilter(pred model.Predicate)

	AddPatient(p *model.Patient) error
	DeletePatient(p *model.Patient) error
	ClearPatients()
	SetMedicalReport(nric model.Nric, report model.MedicalReport) error
	AddMedicineUsage(p *model.Patient, usage model.MedicineUsage) error
	ClearMedicineUsage(p *model.Patient) error
}

// =============================================================================
// TARGET
// =============================================================================

// Target selects one patient, either by NRIC or by position in the displayed
// list. The only implementations are NricTarget and IndexTarget.
type Target interface {
	fmt.Stringer
	isTarget()
}

// NricTarget looks the patient up in the full collection.
type NricTarget struct {
	Nric model.Nric
}

// IndexTarget picks the patient at a position in the displayed list.
type IndexTarget struct {
	Index model.Index
}

func (NricTarget) isTarget()  {}
func (IndexTarget) isTarget() {}

func (t NricTarget) String() string  { return "n/" + t.Nric.String() }
func (t IndexTarget) String() string { return t.Index.String() }

// ByNric targets the patient with the given NRIC.
func ByNric(nric model.Nric) Target {
	return NricTarget{Nric: nric}
}

// ByIndex targets the patient at a displayed position.
func ByIndex(index model.Index) Target {
	return IndexTarget{Index: index}
}

func mustTarget(t Target) Target {
	if t == nil {
		panic("commands: nil target")
	}
	return t
}

// resolveTarget performs the one lookup a targeted command is allowed.
func resolveTarget(m Model, t Target) (*model.Patient, error) {
	switch t := t.(type) {
	case NricTarget:
		p, ok := m.FindPatientByNric(t.Nric)
		if !ok || p == nil {
			return nil, commandFailure(ErrPersonNotFound, MessagePersonNotFoundNric, t.Nric)
		}
		return p, nil
	case IndexTarget:
		shown := m.FilteredPatients()
		if t.Index.ZeroBased() >= len(shown) {
			return nil, commandFailure(ErrInvalidDisplayedIndex, MessageInvalidPatientDisplayedIndex)
		}
		p := shown[t.Index.ZeroBased()]
		if p == nil {
			return nil, commandFailure(ErrPersonNotFound, MessagePersonNotFoundIndex, t.Index.OneBased())
		}
		return p, nil
	default:
		panic(fmt.Sprintf("commands: unknown target %T", t))
	}
}

// targetMessage formats byNric with the NRIC or byIndex with the one-based
// index, depending on how t was given.
func targetMessage(t Target, byNric, byIndex string) string {
	if it, ok := t.(IndexTarget); ok {
		return fmt.Sprintf(byIndex, it.Index.OneBased())
	}
	return fmt.Sprintf(byNric, t.(NricTarget).Nric)
}

func sameTarget(a, b Target) bool {
	return a == b
}

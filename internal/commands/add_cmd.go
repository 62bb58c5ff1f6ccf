// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"fmt"

	"github.com/jeranaias/medrec/internal/model"
)

const (
	AddWord  = "add"
	AddUsage = AddWord + ": Adds a patient to the records.\n" +
		"Parameters: n/NRIC nm/NAME p/PHONE e/EMAIL a/ADDRESS\n" +
		"Example: " + AddWord + " n/S1234567A nm/John Doe p/98765432 e/johnd@example.com a/311, Clementi Ave 2, #02-25"

	MessageAddSuccess       = "New patient added: %s"
	MessageDuplicatePatient = "This patient already exists in the records"
)

var addPrefixes = []Prefix{PrefixNric, PrefixName, PrefixPhone, PrefixEmail, PrefixAddress}

func addSpec() *Spec {
	return &Spec{
		Word:     AddWord,
		Summary:  "Add a patient",
		Usage:    AddUsage,
		Category: CategoryPatients,
		Prefixes: addPrefixes,
		Parse:    parseAdd,
	}
}

// AddCommand records a new patient with an empty medical report.
type AddCommand struct {
	patient *model.Patient
}

// NewAddCommand creates an AddCommand for p.
func NewAddCommand(p *model.Patient) *AddCommand {
	if p == nil {
		panic("commands: nil patient")
	}
	return &AddCommand{patient: p}
}

func parseAdd(args string) (Command, error) {
	am := Tokenize(args, addPrefixes...)
	if !am.Has(addPrefixes...) || am.Preamble() != "" {
		return nil, invalidFormat(AddUsage)
	}
	if err := am.VerifyNoDuplicatePrefixesFor(addPrefixes...); err != nil {
		return nil, err
	}

	nric, err := parseNric(am.ValueOr(PrefixNric, ""))
	if err != nil {
		return nil, err
	}
	name, err := model.ParseName(am.ValueOr(PrefixName, ""))
	if err != nil {
		return nil, invalidValue(err)
	}
	phone, err := model.ParsePhone(am.ValueOr(PrefixPhone, ""))
	if err != nil {
		return nil, invalidValue(err)
	}
	email, err := model.ParseEmail(am.ValueOr(PrefixEmail, ""))
	if err != nil {
		return nil, invalidValue(err)
	}
	address, err := model.ParseAddress(am.ValueOr(PrefixAddress, ""))
	if err != nil {
		return nil, invalidValue(err)
	}

	return NewAddCommand(model.NewPatient(nric, name, phone, email, address)), nil
}

func (c *AddCommand) Word() string { return AddWord }

// Patient returns the patient to be added.
func (c *AddCommand) Patient() *model.Patient { return c.patient }

func (c *AddCommand) Execute(m Model) (Result, error) {
	if m.HasPatient(c.patient.Nric) {
		return Result{}, commandFailure(ErrDuplicatePatient, MessageDuplicatePatient)
	}
	if err := m.AddPatient(c.patient); err != nil {
		if errors.Is(err, model.ErrDuplicatePatient) {
			return Result{}, &CommandError{Kind: ErrDuplicatePatient, Message: MessageDuplicatePatient, Err: err}
		}
		return Result{}, err
	}
	return Result{Feedback: fmt.Sprintf(MessageAddSuccess, c.patient)}, nil
}

func (c *AddCommand) Equal(other Command) bool {
	o, ok := other.(*AddCommand)
	return ok && c.patient.Equal(o.patient)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import "fmt"

const (
	DeleteWord  = "delete"
	DeleteUsage = DeleteWord + ": Deletes a patient identified by NRIC, OR by the index number used in the " +
		"displayed patient list. However, it cannot be both NRIC and index.\n" +
		"Parameters for first method: n/NRIC\n" +
		"Example: " + DeleteWord + " n/S1234567A\n" +
		"Parameters for second method: INDEX (must be a positive integer)\n" +
		"Example: " + DeleteWord + " 1"

	MessageDeleteSuccess = "Deleted Patient: %s"
)

func deleteSpec() *Spec {
	return &Spec{
		Word:       DeleteWord,
		Aliases:    []string{"del"},
		Summary:    "Delete a patient",
		Usage:      DeleteUsage,
		Category:   CategoryPatients,
		Prefixes:   []Prefix{PrefixNric},
		TakesIndex: true,
		Parse:      parseDelete,
	}
}

// DeleteCommand removes one patient and their medical data.
type DeleteCommand struct {
	target Target
}

// NewDeleteCommand creates a DeleteCommand for t.
func NewDeleteCommand(t Target) *DeleteCommand {
	return &DeleteCommand{target: mustTarget(t)}
}

func parseDelete(args string) (Command, error) {
	t, err := parseTarget(Tokenize(args, PrefixNric), DeleteUsage)
	if err != nil {
		return nil, err
	}
	return NewDeleteCommand(t), nil
}

func (c *DeleteCommand) Word() string { return DeleteWord }

// Target returns the patient selector.
func (c *DeleteCommand) Target() Target { return c.target }

func (c *DeleteCommand) RequiresConfirmation() bool { return true }

func (c *DeleteCommand) Execute(m Model) (Result, error) {
	p, err := resolveTarget(m, c.target)
	if err != nil {
		return Result{}, err
	}
	if err := m.DeletePatient(p); err != nil {
		return Result{}, err
	}
	return Result{Feedback: fmt.Sprintf(MessageDeleteSuccess, p)}, nil
}

func (c *DeleteCommand) Equal(other Command) bool {
	o, ok := other.(*DeleteCommand)
	return ok && sameTarget(c.target, o.target)
}

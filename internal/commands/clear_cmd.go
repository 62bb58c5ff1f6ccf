// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

const (
	ClearWord  = "clear"
	ClearUsage = ClearWord + ": Deletes every patient record.\nExample: " + ClearWord

	MessageClearSuccess = "Patient records have been cleared!"
)

func clearSpec() *Spec {
	return &Spec{
		Word:     ClearWord,
		Summary:  "Delete every patient",
		Usage:    ClearUsage,
		Category: CategoryPatients,
		Parse:    func(string) (Command, error) { return ClearCommand{}, nil },
	}
}

// ClearCommand removes all patients.
type ClearCommand struct{}

func (ClearCommand) Word() string { return ClearWord }

func (ClearCommand) RequiresConfirmation() bool { return true }

func (ClearCommand) Execute(m Model) (Result, error) {
	m.ClearPatients()
	return Result{Feedback: MessageClearSuccess}, nil
}

func (ClearCommand) Equal(other Command) bool {
	_, ok := other.(ClearCommand)
	return ok
}

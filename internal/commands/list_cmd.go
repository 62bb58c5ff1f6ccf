// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import "github.com/jeranaias/medrec/internal/model"

const (
	ListWord  = "list"
	ListUsage = ListWord + ": Lists all patients.\nExample: " + ListWord

	MessageListSuccess = "Listed all patients"
)

func listSpec() *Spec {
	return &Spec{
		Word:     ListWord,
		Aliases:  []string{"ls"},
		Summary:  "Show every patient",
		Usage:    ListUsage,
		Category: CategoryPatients,
		Parse:    func(string) (Command, error) { return ListCommand{}, nil },
	}
}

// ListCommand resets the displayed list to every patient.
type ListCommand struct{}

func (ListCommand) Word() string { return ListWord }

func (ListCommand) Execute(m Model) (Result, error) {
	m.UpdateFilter(model.ShowAll)
	return Result{Feedback: MessageListSuccess}, nil
}

func (ListCommand) Equal(other Command) bool {
	_, ok := other.(ListCommand)
	return ok
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jeranaias/medrec/internal/model"
)

const (
	FindWord  = "find"
	FindUsage = FindWord + ": Finds all patients whose names contain any of the specified keywords " +
		"(case-insensitive) and displays them as a list with index numbers.\n" +
		"Parameters: KEYWORD [MORE_KEYWORDS]...\n" +
		"Example: " + FindWord + " alice bob charlie"
)

func findSpec() *Spec {
	return &Spec{
		Word:     FindWord,
		Summary:  "Filter patients by name",
		Usage:    FindUsage,
		Category: CategoryPatients,
		Parse:    parseFind,
	}
}

// FindCommand narrows the displayed list to patients whose name contains any
// keyword as a whole word.
type FindCommand struct {
	keywords []string
}

// NewFindCommand creates a FindCommand. At least one keyword is required.
func NewFindCommand(keywords ...string) *FindCommand {
	if len(keywords) == 0 {
		panic("commands: find needs a keyword")
	}
	return &FindCommand{keywords: slices.Clone(keywords)}
}

func parseFind(args string) (Command, error) {
	keywords := strings.Fields(args)
	if len(keywords) == 0 {
		return nil, invalidFormat(FindUsage)
	}
	return NewFindCommand(keywords...), nil
}

func (c *FindCommand) Word() string { return FindWord }

// Keywords returns the search keywords.
func (c *FindCommand) Keywords() []string { return slices.Clone(c.keywords) }

func (c *FindCommand) Execute(m Model) (Result, error) {
	m.UpdateFilter(model.NameContainsKeywords(c.keywords))
	return Result{Feedback: fmt.Sprintf(MessagePatientsListedOverview, len(m.FilteredPatients()))}, nil
}

func (c *FindCommand) Equal(other Command) bool {
	o, ok := other.(*FindCommand)
	return ok && slices.Equal(c.keywords, o.keywords)
}

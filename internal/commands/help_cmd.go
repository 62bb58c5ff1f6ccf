// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

const (
	HelpWord  = "help"
	HelpUsage = HelpWord + ": Shows program usage instructions.\nExample: " + HelpWord

	MessageShowingHelp = "Opened help window."

	ExitWord  = "exit"
	ExitUsage = ExitWord + ": Exits the program.\nExample: " + ExitWord

	MessageExitAcknowledgement = "Exiting medrec as requested ..."
)

func helpSpec() *Spec {
	return &Spec{
		Word:     HelpWord,
		Aliases:  []string{"h", "?"},
		Summary:  "Show help",
		Usage:    HelpUsage,
		Category: CategoryGeneral,
		Parse:    func(string) (Command, error) { return HelpCommand{}, nil },
	}
}

func exitSpec() *Spec {
	return &Spec{
		Word:     ExitWord,
		Aliases:  []string{"quit", "q"},
		Summary:  "Exit medrec",
		Usage:    ExitUsage,
		Category: CategoryGeneral,
		Parse:    func(string) (Command, error) { return ExitCommand{}, nil },
	}
}

// HelpCommand asks the front end to show help.
type HelpCommand struct{}

func (HelpCommand) Word() string { return HelpWord }

func (HelpCommand) Execute(Model) (Result, error) {
	return Result{Feedback: MessageShowingHelp, ShowHelp: true}, nil
}

func (HelpCommand) Equal(other Command) bool {
	_, ok := other.(HelpCommand)
	return ok
}

// ExitCommand asks the front end to exit.
type ExitCommand struct{}

func (ExitCommand) Word() string { return ExitWord }

func (ExitCommand) Execute(Model) (Result, error) {
	return Result{Feedback: MessageExitAcknowledgement, Exit: true}, nil
}

func (ExitCommand) Equal(other Command) bool {
	_, ok := other.(ExitCommand)
	return ok
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands parses and executes the medrec command language.
//
// A line such as "clearmu n/S1234567A" is split into a command word and an
// argument string. The argument string is tokenized against the prefixes the
// command recognizes, validated, and turned into an immutable Command. No
// model access happens while parsing. Executing the Command performs a single
// lookup in the Model, checks the business rule, applies at most one mutation
// and returns a Result.
//
// # Key Types
//
//   - Registry: command words, usage text and parse functions
//   - Parser: turns an input line into a Command
//   - Command: parsed, executable command value
//   - Target: NRIC or displayed-index reference to a patient
//   - ArgumentMultimap: prefix-tokenized arguments
//   - Completer: command word and prefix completion for the front ends
//
// # Usage
//
//	parser := commands.NewParser(commands.NewRegistry())
//	cmd, err := parser.Parse("clearmu 1")
//	if err != nil {
//	    return err // *ParseError, errors.Is(err, commands.ErrInvalidCommandFormat) etc.
//	}
//	if commands.NeedsConfirmation(cmd) && !askUser() {
//	    return nil
//	}
//	result, err := cmd.Execute(manager)
package commands

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the visual pieces of the medrec records screen.

# Key Types

  - PatientTable: the displayed patient list, one-based indices first
  - StatusBar: session summary and key hints along the bottom edge
  - CompletionPopup: Tab completion candidates above the input line

Components are plain renderers. They hold no session state of their own;
the records model feeds them on every update and calls View.

# Usage

	table := components.NewPatientTable(theme)
	table.SetWidth(width)
	table.SetPatients(mgr.Patients())
	fmt.Println(table.View())
*/
package components

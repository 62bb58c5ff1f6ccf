// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package records implements the full-screen medrec interface.

The screen shows the displayed patient list in a scrollable table, the
feedback of the last command, an input line with history and Tab
completion, and a status bar with the session summary.

# Key Types

  - Model: the Bubble Tea model; commands run through a session.Manager
  - KeyMap: the key bindings, shared with the help view
  - State: ready, running, confirm or help

# Confirmation

Destructive commands (delete, clear, deletemr, clearmu) are parsed first
and held while the screen asks y/n. "y" executes the held command, "n" or
Esc cancels it and the cancellation is audited.

# Usage

	err := records.Run(ctx, mgr, records.Options{Theme: cfg.UI.Theme})
*/
package records

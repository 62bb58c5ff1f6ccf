// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session runs command lines against the patient records.
//
// A Manager owns the in-memory model, the store it was loaded from, the
// audit trail and the dirty state. Every front end (TUI, REPL, exec) hands
// it raw lines; it parses, asks for confirmation when the command is
// destructive, executes, audits and saves.
//
// # Key Types
//
//   - Manager: one editing session over a store
//   - Options: collaborators and behavior switches
//   - ConfirmFunc: front-end callback for destructive commands
//   - Status: snapshot for status bars
//
// # Usage
//
//	mgr, err := session.NewManager(ctx, session.Options{
//	    Store:    store,
//	    Audit:    trail,
//	    Logger:   log,
//	    Autosave: true,
//	})
//	if err != nil {
//	    return err
//	}
//	defer mgr.Close(ctx)
//
//	result, err := mgr.Handle(ctx, "clearmu n/S1234567A", askYesNo)
package session

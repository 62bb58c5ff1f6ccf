// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package audit records every executed command in an append-only trail.
//
// Each event is one zerolog JSON line carrying a UUID, a timestamp, the
// session it belongs to, the command word, its target and the outcome.
//
// # Key Types
//
//   - Logger: appends events to the trail file
//   - Event: one recorded command or session event
//   - Outcome: success, failure or cancelled
//
// # Usage
//
//	trail, err := audit.NewLogger("~/.medrec/audit.log")
//	if err != nil {
//	    return err
//	}
//	defer trail.Close()
//	trail.LogCommand("clearmu", "n/S1234567A", audit.OutcomeSuccess, nil)
package audit

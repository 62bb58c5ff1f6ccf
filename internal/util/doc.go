// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the medrec packages.
//
// # Key Functions
//
// Display Utilities:
//   - TruncateWidth: display-width aware truncation with ellipsis
//   - PadRight: pads a cell to a display width for table rendering
//   - StringWidth: terminal column width of a string
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	// Render a patient name into a fixed-width column
//	cell := util.PadRight(util.TruncateWidth(name, 24), 24)
//
//	// Write the patient file atomically to prevent data loss
//	err := util.AtomicWriteFile(path, data, 0600)
package util

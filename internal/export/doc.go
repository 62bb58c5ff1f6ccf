// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export renders the patient list to files for sharing or backup.
//
// # Supported Formats
//
//   - JSON: the data file layout, so an export can be opened with --data
//   - Markdown: one section per patient with report and medicine usages
//   - HTML: a standalone styled page with light and dark themes
//
// # Usage
//
//	exporter, err := export.New("markdown", opts)
//	if err != nil {
//	    return err
//	}
//	path, err := export.ExportToFile(patients, exporter, opts)
package export

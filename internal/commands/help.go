// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"strings"
)

// HelpMarkdown renders every registered command as a markdown document,
// grouped by category.
func HelpMarkdown(r *Registry) string {
	var b strings.Builder
	b.WriteString("# medrec commands\n\n")
	b.WriteString("Patients are targeted by `n/NRIC` or by their index in the displayed list.\n")

	grouped := r.ByCategory()
	for _, category := range r.Categories() {
		fmt.Fprintf(&b, "\n## %s\n\n", category)
		b.WriteString("| Command | Description |\n|---|---|\n")
		for _, spec := range grouped[category] {
			word := "`" + spec.Word + "`"
			if len(spec.Aliases) > 0 {
				word += " (" + strings.Join(spec.Aliases, ", ") + ")"
			}
			fmt.Fprintf(&b, "| %s | %s |\n", word, spec.Summary)
		}
	}

	b.WriteString("\n## Usage\n")
	for _, spec := range r.All() {
		fmt.Fprintf(&b, "\n```\n%s\n```\n", spec.Usage)
	}
	return b.String()
}

// HelpText renders the registry as plain text for non-terminal output.
func HelpText(r *Registry) string {
	var b strings.Builder
	grouped := r.ByCategory()
	for i, category := range r.Categories() {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s:\n", category)
		for _, spec := range grouped[category] {
			fmt.Fprintf(&b, "  %-10s %s\n", spec.Word, spec.Summary)
		}
	}
	return b.String()
}

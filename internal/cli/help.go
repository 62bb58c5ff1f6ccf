// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/medrec/internal/commands"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// RenderHelp renders the command reference for a terminal of the given
// width. Without color it falls back to the plain-text listing.
func RenderHelp(registry *commands.Registry, theme string, width int, color bool) string {
	if !color {
		return commands.HelpText(registry)
	}
	return renderMarkdown(commands.HelpMarkdown(registry), theme, width)
}

// renderMarkdown renders markdown content for terminal display.
// Returns the original content if rendering fails.
func renderMarkdown(content, theme string, width int) string {
	if theme != "light" {
		theme = "dark"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the colors and lipgloss styles of the medrec
records screen.

# Color System (colors.go)

All colors are lipgloss.AdaptiveColor values, resolved against the
renderer's background:

	Cyan, Purple        - brand and report accents
	Emerald, Rose, Amber - success, error and warning
	Surface, Overlay    - backgrounds and borders
	TextPrimary..Muted  - text hierarchy

# Theme System (theme.go)

A Theme binds every style to one lipgloss.Renderer. The configured
ui.theme forces the dark or light variant; other values follow the
terminal:

	theme := styles.NewTheme(cfg.UI.Theme)
	theme.SetSize(width, height)
	header := theme.HeaderTitle.Render("medrec")

PlainTheme builds the same styles without escape sequences, for tests
and non-color output.
*/
package styles

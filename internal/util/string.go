// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the medrec packages.
package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// UNICODE: widths are measured in terminal columns, not bytes or runes.

// TruncateWidth truncates s to at most maxWidth terminal columns.
// If the string is truncated and there is room, "..." is appended.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	if out := runewidth.Truncate(s, maxWidth, "..."); out != "..." {
		return out
	}
	// Nothing fits beside the tail, so keep the content instead.
	return runewidth.Truncate(s, maxWidth, "")
}

// PadRight pads s with spaces up to width terminal columns.
// Strings already at or beyond width are returned unchanged.
func PadRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// StringWidth returns the display width of a string.
// Double-width characters count as 2 columns.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Pluralize returns singular when n == 1 and plural otherwise.
func Pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

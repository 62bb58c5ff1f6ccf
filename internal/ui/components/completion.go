// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/medrec/internal/commands"
	"github.com/jeranaias/medrec/internal/ui/styles"
	"github.com/jeranaias/medrec/internal/util"
)

// =============================================================================
// COMPLETION POPUP COMPONENT
// =============================================================================

const completionValueWidth = 20

// CompletionPopup displays the candidates of a completion state.
type CompletionPopup struct {
	state      *commands.CompletionState
	maxVisible int
	width      int
	theme      *styles.Theme
}

// NewCompletionPopup creates a popup over state.
func NewCompletionPopup(theme *styles.Theme, state *commands.CompletionState) *CompletionPopup {
	return &CompletionPopup{
		state:      state,
		maxVisible: 6,
		width:      50,
		theme:      theme,
	}
}

// SetWidth sets the popup width.
func (c *CompletionPopup) SetWidth(width int) {
	c.width = width
}

// SetMaxVisible sets the maximum number of visible completions.
func (c *CompletionPopup) SetMaxVisible(n int) {
	if n > 0 {
		c.maxVisible = n
	}
}

// Visible reports whether there is anything to show.
func (c *CompletionPopup) Visible() bool {
	return c.state != nil && c.state.Visible && len(c.state.Completions) > 0
}

// View renders the popup, or "" when hidden.
func (c *CompletionPopup) View() string {
	if !c.Visible() {
		return ""
	}

	completions := c.state.Completions
	selected := c.state.Selected

	// Scrolling window centered on the selection
	start, end := 0, len(completions)
	if len(completions) > c.maxVisible {
		start = selected - c.maxVisible/2
		if start < 0 {
			start = 0
		}
		end = start + c.maxVisible
		if end > len(completions) {
			end = len(completions)
			start = end - c.maxVisible
		}
	}

	items := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		items = append(items, c.renderItem(completions[i], i == selected))
	}
	if hidden := len(completions) - (end - start); hidden > 0 {
		items = append(items, c.theme.CompletionDesc.Render("  "+strconv.Itoa(hidden)+" more, Tab to cycle"))
	}

	return c.theme.CompletionPopup.
		Width(c.width).
		MaxWidth(c.width + 2).
		Render(strings.Join(items, "\n"))
}

func (c *CompletionPopup) renderItem(comp commands.Completion, isSelected bool) string {
	value := comp.Display
	if value == "" {
		value = comp.Value
	}
	value = util.PadRight(util.TruncateWidth(value, completionValueWidth), completionValueWidth)

	descWidth := c.width - completionValueWidth - 5
	desc := util.TruncateWidth(comp.Description, max(descWidth, 0))

	indicator := "  "
	valueStyle := c.theme.CompletionItem
	if isSelected {
		indicator = "> "
		valueStyle = c.theme.CompletionSelected
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		c.theme.InputPrompt.Render(indicator),
		valueStyle.Render(value),
		" ",
		c.theme.CompletionDesc.Render(desc),
	)
}

// ViewCompact renders a one-line hint such as "Tab: 3 completions".
func (c *CompletionPopup) ViewCompact() string {
	if !c.Visible() {
		return ""
	}
	completions := c.state.Completions
	if len(completions) == 1 {
		value := completions[0].Display
		if value == "" {
			value = completions[0].Value
		}
		return c.theme.ShortcutDesc.Render("Tab: complete \"" + value + "\"")
	}
	return c.theme.ShortcutDesc.Render("Tab: " + strconv.Itoa(len(completions)) + " completions")
}

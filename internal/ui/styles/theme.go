// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme names accepted by NewTheme.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Theme holds all the styled components for the records screen.
type Theme struct {
	Name         string
	IsDark       bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	renderer *lipgloss.Renderer

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// PATIENT TABLE STYLES
	// ==========================================================================

	TableHeader lipgloss.Style
	TableRow    lipgloss.Style
	TableRowAlt lipgloss.Style
	TableIndex  lipgloss.Style
	TableEmpty  lipgloss.Style
	ReportBadge lipgloss.Style

	// ==========================================================================
	// FEEDBACK STYLES
	// ==========================================================================

	Feedback        lipgloss.Style
	FeedbackError   lipgloss.Style
	FeedbackWarning lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// CONFIRMATION STYLES
	// ==========================================================================

	ConfirmBox   lipgloss.Style
	ConfirmTitle lipgloss.Style
	ConfirmKey   lipgloss.Style

	// ==========================================================================
	// COMPLETION POPUP STYLES
	// ==========================================================================

	CompletionPopup    lipgloss.Style
	CompletionItem     lipgloss.Style
	CompletionSelected lipgloss.Style
	CompletionDesc     lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	StatusLabel  lipgloss.Style
	StatusValue  lipgloss.Style
	StatusDirty  lipgloss.Style
	StatusSaved  lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	Separator lipgloss.Style
}

// NewTheme creates a theme for stdout. name is ThemeDark or ThemeLight;
// anything else follows the terminal background.
func NewTheme(name string) *Theme {
	return NewThemeWithRenderer(name, lipgloss.NewRenderer(os.Stdout))
}

// NewThemeWithRenderer creates a theme whose styles render through r.
func NewThemeWithRenderer(name string, r *lipgloss.Renderer) *Theme {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case ThemeDark:
		r.SetHasDarkBackground(true)
	case ThemeLight:
		r.SetHasDarkBackground(false)
	default:
		if r.HasDarkBackground() {
			name = ThemeDark
		} else {
			name = ThemeLight
		}
	}

	t := &Theme{
		Name:         name,
		IsDark:       r.HasDarkBackground(),
		ColorProfile: r.ColorProfile(),
		renderer:     r,
	}
	t.initStyles()
	return t
}

// PlainTheme renders without any escape sequences.
func PlainTheme(name string) *Theme {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return NewThemeWithRenderer(name, r)
}

// Renderer returns the renderer the styles were built with.
func (t *Theme) Renderer() *lipgloss.Renderer {
	return t.renderer
}

// NewStyle returns an empty style bound to the theme's renderer.
func (t *Theme) NewStyle() lipgloss.Style {
	return t.renderer.NewStyle()
}

func (t *Theme) initStyles() {
	s := t.renderer.NewStyle

	// Header
	t.Header = s().
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderTitle = s().
		Bold(true).
		Foreground(Cyan)

	t.HeaderSubtitle = s().
		Foreground(TextSecondary).
		Italic(true)

	// Patient table
	t.TableHeader = s().
		Bold(true).
		Foreground(TextSecondary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay)

	t.TableRow = s().
		Foreground(TextPrimary)

	t.TableRowAlt = s().
		Foreground(TextPrimary).
		Background(SurfaceBright)

	t.TableIndex = s().
		Foreground(Cyan).
		Bold(true)

	t.TableEmpty = s().
		Foreground(TextMuted).
		Italic(true).
		Padding(1, 2)

	t.ReportBadge = s().
		Foreground(Purple)

	// Feedback
	t.Feedback = s().
		Foreground(Emerald)

	t.FeedbackError = s().
		Foreground(Rose).
		Bold(true)

	t.FeedbackWarning = s().
		Foreground(Amber)

	// Input area
	t.InputContainer = s().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = s().
		Foreground(Cyan).
		Bold(true)

	t.InputText = s().
		Foreground(TextPrimary)

	t.InputPlaceholder = s().
		Foreground(TextMuted).
		Italic(true)

	// Confirmation
	t.ConfirmBox = s().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(0, 2)

	t.ConfirmTitle = s().
		Foreground(Rose).
		Bold(true)

	t.ConfirmKey = s().
		Foreground(Cyan).
		Bold(true)

	// Completion popup
	t.CompletionPopup = s().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Cyan).
		Padding(0, 1)

	t.CompletionItem = s().
		Foreground(TextPrimary)

	t.CompletionSelected = s().
		Foreground(TextInverse).
		Background(Cyan).
		Bold(true)

	t.CompletionDesc = s().
		Foreground(TextSecondary)

	// Status bar
	t.StatusBar = s().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatusLabel = s().
		Foreground(TextMuted)

	t.StatusValue = s().
		Foreground(TextSecondary).
		Bold(true)

	t.StatusDirty = s().
		Foreground(Amber).
		Bold(true)

	t.StatusSaved = s().
		Foreground(Emerald)

	t.ShortcutKey = s().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = s().
		Foreground(TextMuted)

	t.Separator = s().
		Foreground(Overlay)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)

func (l LayoutMode) String() string {
	switch l {
	case LayoutNarrow:
		return "narrow"
	case LayoutMedium:
		return "medium"
	default:
		return "wide"
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/medrec/internal/session"
	"github.com/jeranaias/medrec/internal/ui/styles"
	"github.com/jeranaias/medrec/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Shortcut is one key hint shown on the right of the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar shows the session summary along the bottom edge.
type StatusBar struct {
	Status    session.Status
	Width     int
	Shortcuts []Shortcut
	theme     *styles.Theme
}

// NewStatusBar creates a StatusBar component.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{Width: 80, theme: theme}
}

// SetStatus replaces the session snapshot.
func (s *StatusBar) SetStatus(status session.Status) {
	s.Status = status
}

// SetWidth sets the bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// View renders the bar, dropping detail as the width shrinks.
func (s *StatusBar) View() string {
	sep := s.theme.Separator.Render(" | ")

	left := []string{s.renderCount(), s.renderSaveState()}
	mode := s.theme.GetLayoutMode()
	if mode != styles.LayoutNarrow && s.Status.StorePath != "" {
		left = append(left, s.theme.StatusLabel.Render(filepath.Base(s.Status.StorePath)))
	}
	if mode == styles.LayoutWide {
		left = append(left, s.theme.StatusLabel.Render("session ")+s.theme.StatusValue.Render(session.FormatDuration(s.Status.Duration)))
		if s.Status.AuditEnabled {
			left = append(left, s.theme.StatusLabel.Render("audit on"))
		}
	}
	content := strings.Join(left, sep)

	if shortcuts := s.renderShortcuts(); shortcuts != "" {
		gap := s.Width - 2 - lipgloss.Width(content) - lipgloss.Width(shortcuts)
		if gap >= 2 {
			content += strings.Repeat(" ", gap) + shortcuts
		}
	}

	return s.theme.StatusBar.Width(s.Width).MaxWidth(s.Width).Render(content)
}

func (s *StatusBar) renderCount() string {
	st := s.Status
	text := strconv.Itoa(st.Displayed) + " " + util.Pluralize(st.Displayed, "patient", "patients")
	if st.Displayed != st.Patients {
		text += " of " + strconv.Itoa(st.Patients)
	}
	return s.theme.StatusValue.Render(text)
}

func (s *StatusBar) renderSaveState() string {
	if s.Status.IsDirty {
		return s.theme.StatusDirty.Render("unsaved")
	}
	if s.Status.LastSave.IsZero() {
		return s.theme.StatusSaved.Render("saved")
	}
	return s.theme.StatusSaved.Render("saved " + s.Status.LastSave.Format(time.Kitchen))
}

func (s *StatusBar) renderShortcuts() string {
	parts := make([]string, 0, len(s.Shortcuts))
	for _, sc := range s.Shortcuts {
		parts = append(parts, s.theme.ShortcutKey.Render(sc.Key)+" "+s.theme.ShortcutDesc.Render(sc.Desc))
	}
	return strings.Join(parts, "  ")
}

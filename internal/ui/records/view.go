// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package records

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/medrec/internal/commands"
	"github.com/jeranaias/medrec/internal/util"
)

// Fixed heights of the screen sections around the viewport.
const (
	headerHeight    = 1
	inputAreaHeight = 2 // separator + input line
	statusBarHeight = 1
	confirmHeight   = 3 // rounded box around one line
)

// layout sizes the viewport and the input to the space the other
// sections leave.
func (m *Model) layout() {
	reserved := headerHeight + inputAreaHeight + statusBarHeight
	reserved += lipgloss.Height(m.feedbackView())
	if m.feedback == "" {
		reserved--
	}
	if m.state == StateConfirm {
		reserved += confirmHeight
	}

	m.popup.SetWidth(min(max(m.width-4, 20), 70))
	if popup := m.popup.View(); popup != "" {
		reserved += lipgloss.Height(popup)
	}

	m.viewport.Width = max(m.width, 1)
	m.viewport.Height = max(m.height-reserved, 1)

	m.input.Width = max(m.width-lipgloss.Width(m.input.Prompt)-4, 10)
	m.status.SetWidth(m.width)
}

// View renders the screen from top to bottom.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderHeader(), m.viewport.View()}
	if m.feedback != "" {
		sections = append(sections, m.feedbackView())
	}
	if m.state == StateConfirm {
		sections = append(sections, m.renderConfirm())
	}
	if popup := m.popup.View(); popup != "" {
		sections = append(sections, popup)
	}
	sections = append(sections, m.renderInput(), m.status.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("medrec")
	var subtitle string
	switch m.state {
	case StateHelp:
		subtitle = "command reference (Esc to return)"
	case StateRunning:
		subtitle = "working..."
	default:
		subtitle = "patient records"
	}
	text := title + " " + m.theme.HeaderSubtitle.Render(subtitle)
	return m.theme.Header.Width(max(m.width, 1)).MaxWidth(max(m.width, 1)).Render(text)
}

// feedbackView renders the last command's feedback, keeping at most
// maxFeedbackLines lines.
func (m Model) feedbackView() string {
	if m.feedback == "" {
		return ""
	}

	lines := strings.Split(m.feedback, "\n")
	if len(lines) > maxFeedbackLines {
		hidden := len(lines) - maxFeedbackLines + 1
		more := util.Pluralize(hidden, "more line", "more lines")
		lines = append(lines[:maxFeedbackLines-1], "... "+strconv.Itoa(hidden)+" "+more)
	}
	text := strings.Join(lines, "\n")

	style := m.theme.Feedback
	switch m.feedbackKind {
	case FeedbackError:
		style = m.theme.FeedbackError
	case FeedbackWarning:
		style = m.theme.FeedbackWarning
	}
	return style.Width(max(m.width, 1)).Render(text)
}

func (m Model) renderConfirm() string {
	if m.pending == nil {
		return ""
	}
	question := m.theme.ConfirmTitle.Render("Are you sure you want to "+commands.DescribeAction(m.pending)+"?") +
		"  " + m.help.ShortHelpView(m.keys.ConfirmHelp())
	return m.theme.ConfirmBox.MaxWidth(max(m.width, 1)).Render(question)
}

func (m Model) renderInput() string {
	return m.theme.InputContainer.Width(max(m.width, 1)).Render(m.input.View())
}

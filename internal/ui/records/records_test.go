// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package records

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/medrec/internal/commands"
	"github.com/jeranaias/medrec/internal/session"
	"github.com/jeranaias/medrec/internal/ui/styles"
)

const addAlex = "add n/S1234567A nm/Alex Yeoh p/87438807 e/alexyeoh@example.com a/Blk 30 Geylang Street 29"

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestModel(t *testing.T, opts Options) (Model, *session.Manager) {
	t.Helper()
	ctx := context.Background()
	mgr, err := session.NewManager(ctx, session.Options{
		Logger:             zerolog.Nop(),
		ConfirmDestructive: true,
	})
	require.NoError(t, err)

	opts.styles = styles.PlainTheme(styles.ThemeDark)
	m := New(ctx, mgr, opts)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, mgr
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// finish feeds the result of an execute command back into the model.
func finish(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return m, nil
	}
	msg := cmd()
	if _, ok := msg.(commandResultMsg); !ok {
		return m, cmd
	}
	assert.Equal(t, StateRunning, m.State())
	next, after := m.Update(msg)
	return next.(Model), after
}

// runLine types line, presses Enter and applies the result.
func runLine(t *testing.T, m Model, line string) (Model, tea.Cmd) {
	t.Helper()
	m = typeText(t, m, line)
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	return finish(t, m, cmd)
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// =============================================================================
// COMMAND FLOW TESTS
// =============================================================================

func TestModel_AddAndList(t *testing.T) {
	m, mgr := newTestModel(t, Options{})
	assert.Contains(t, m.View(), "No patients to show")

	m, _ = runLine(t, m, addAlex)

	feedback, kind := m.Feedback()
	assert.Equal(t, "New patient added: Alex Yeoh; NRIC: S1234567A; Phone: 87438807; "+
		"Email: alexyeoh@example.com; Address: Blk 30 Geylang Street 29", feedback)
	assert.Equal(t, FeedbackInfo, kind)
	assert.Equal(t, StateReady, m.State())
	assert.Empty(t, m.InputValue())
	assert.Len(t, mgr.Patients(), 1)

	view := m.View()
	assert.Contains(t, view, "S1234567A")
	assert.Contains(t, view, "Alex Yeoh")
	assert.Contains(t, view, "1 patient")
}

func TestModel_Errors(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	m, cmd := runLine(t, m, "frobnicate")
	assert.Nil(t, cmd)
	feedback, kind := m.Feedback()
	assert.Equal(t, commands.MessageUnknownCommand, feedback)
	assert.Equal(t, FeedbackError, kind)

	m, _ = runLine(t, m, "viewmr 3")
	feedback, kind = m.Feedback()
	assert.Equal(t, commands.MessageInvalidPatientDisplayedIndex, feedback)
	assert.Equal(t, FeedbackError, kind)
	assert.Contains(t, m.View(), commands.MessageInvalidPatientDisplayedIndex)
}

func TestModel_ConfirmDestructive(t *testing.T) {
	m, mgr := newTestModel(t, Options{})
	m, _ = runLine(t, m, addAlex)

	m = typeText(t, m, "clear")
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd, "nothing runs before confirmation")
	assert.Equal(t, StateConfirm, m.State())
	require.NotNil(t, m.Pending())
	assert.Contains(t, m.View(), "Are you sure you want to delete ALL patient records?")

	// Typing is ignored while asking.
	m, _ = press(t, m, runeKey('x'))
	assert.Equal(t, StateConfirm, m.State())

	m, cmd = press(t, m, runeKey('n'))
	assert.Nil(t, cmd)
	assert.Equal(t, StateReady, m.State())
	assert.Nil(t, m.Pending())
	feedback, kind := m.Feedback()
	assert.Equal(t, session.MessageCancelled, feedback)
	assert.Equal(t, FeedbackWarning, kind)
	assert.Len(t, mgr.Patients(), 1)

	m = typeText(t, m, "clear")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd = press(t, m, runeKey('y'))
	m, _ = finish(t, m, cmd)

	feedback, _ = m.Feedback()
	assert.Equal(t, commands.MessageClearSuccess, feedback)
	assert.Empty(t, mgr.Patients())
	assert.Contains(t, m.View(), "No patients to show")
}

func TestModel_EscCancelsConfirmation(t *testing.T) {
	m, mgr := newTestModel(t, Options{})
	m, _ = runLine(t, m, addAlex)

	m = typeText(t, m, "delete 1")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, StateConfirm, m.State())
	assert.Contains(t, m.View(), "delete patient 1")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StateReady, m.State())
	assert.Len(t, mgr.Patients(), 1)
}

func TestModel_ViewReport(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m, _ = runLine(t, m, addAlex)
	m, _ = runLine(t, m, "addmr n/S1234567A al/Peanuts ill/Flu")
	m, _ = runLine(t, m, "viewmr 1")

	feedback, kind := m.Feedback()
	assert.Equal(t, FeedbackInfo, kind)
	assert.True(t, strings.HasPrefix(feedback, "Medical report for Alex Yeoh (S1234567A)"), feedback)
	assert.Contains(t, m.View(), "Peanuts")
	assert.Contains(t, m.View(), "yes, 0 rx")
}

func TestModel_Help(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	m, _ = runLine(t, m, "help")
	assert.Equal(t, StateHelp, m.State())
	view := m.View()
	assert.Contains(t, view, "Patients:")
	assert.Contains(t, view, "command reference")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StateReady, m.State())
	assert.Contains(t, m.View(), "No patients to show")

	custom, _ := newTestModel(t, Options{Help: func(width int) string { return "CUSTOM REFERENCE" }})
	custom, _ = press(t, custom, tea.KeyMsg{Type: tea.KeyF1})
	assert.Equal(t, StateHelp, custom.State())
	assert.Contains(t, custom.View(), "CUSTOM REFERENCE")
}

func TestModel_Exit(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	m, cmd := runLine(t, m, "exit")
	assert.True(t, isQuit(cmd))
	assert.True(t, m.Quitting())
	assert.Empty(t, m.View())
}

func TestModel_QuitKey(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, isQuit(cmd))
	assert.True(t, m.Quitting())
}

func TestModel_RunningIgnoresKeys(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	m = typeText(t, m, "list")
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, StateRunning, m.State())
	assert.Contains(t, m.View(), "working...")

	m = typeText(t, m, "abc")
	assert.Empty(t, m.InputValue())

	m, _ = finish(t, m, cmd)
	feedback, _ := m.Feedback()
	assert.Equal(t, commands.MessageListSuccess, feedback)
}

// =============================================================================
// INPUT TESTS
// =============================================================================

func TestModel_TabCompletion(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m, _ = runLine(t, m, addAlex)

	m = typeText(t, m, "viewm")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "viewmr", m.InputValue())

	m = typeText(t, m, " n/")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "viewmr n/S1234567A", m.InputValue())
}

func TestModel_TabCycles(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	m = typeText(t, m, "cl")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	first := m.InputValue()
	assert.True(t, m.popup.Visible())
	assert.Contains(t, m.View(), "> "+first)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	second := m.InputValue()
	assert.ElementsMatch(t, []string{"clear", "clearmu"}, []string{first, second})

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, first, m.InputValue())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.popup.Visible())
	assert.Equal(t, first, m.InputValue())
}

func TestModel_History(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m, _ = runLine(t, m, "list")
	m, _ = runLine(t, m, "find alex")
	m, _ = runLine(t, m, "find alex")

	m = typeText(t, m, "dra")

	up := tea.KeyMsg{Type: tea.KeyUp}
	down := tea.KeyMsg{Type: tea.KeyDown}

	m, _ = press(t, m, up)
	assert.Equal(t, "find alex", m.InputValue())
	m, _ = press(t, m, up)
	assert.Equal(t, "list", m.InputValue(), "repeated lines are stored once")
	m, _ = press(t, m, up)
	assert.Equal(t, "list", m.InputValue())

	m, _ = press(t, m, down)
	assert.Equal(t, "find alex", m.InputValue())
	m, _ = press(t, m, down)
	assert.Equal(t, "dra", m.InputValue(), "the draft comes back")
}

func TestModel_FeedbackIsCapped(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m.setFeedback(strings.Repeat("line\n", 20), FeedbackInfo)

	view := m.feedbackView()
	assert.Equal(t, maxFeedbackLines, lipgloss.Height(view))
	assert.Contains(t, view, "13 more lines")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	feedback, _ := m.Feedback()
	assert.Empty(t, feedback)
}

// =============================================================================
// LAYOUT TESTS
// =============================================================================

func TestModel_LayoutFitsWindow(t *testing.T) {
	for _, size := range []tea.WindowSizeMsg{{Width: 120, Height: 40}, {Width: 70, Height: 20}, {Width: 45, Height: 15}} {
		m, _ := newTestModel(t, Options{})
		m, _ = runLine(t, m, addAlex)
		m = update(t, m, size)

		view := m.View()
		assert.Equal(t, size.Height, lipgloss.Height(view), "view fills %dx%d", size.Width, size.Height)
		for _, line := range strings.Split(view, "\n") {
			assert.LessOrEqual(t, lipgloss.Width(line), size.Width)
		}
	}
}

func TestKeyMap_Help(t *testing.T) {
	keys := DefaultKeyMap()
	assert.Len(t, keys.ShortHelp(), 3)
	assert.Len(t, keys.ConfirmHelp(), 2)

	total := 0
	for _, group := range keys.FullHelp() {
		total += len(group)
	}
	assert.Equal(t, 11, total)
}

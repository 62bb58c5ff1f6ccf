// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package records

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/medrec/internal/commands"
	"github.com/jeranaias/medrec/internal/session"
	"github.com/jeranaias/medrec/internal/ui/components"
	"github.com/jeranaias/medrec/internal/ui/styles"
)

// =============================================================================
// SCREEN STATE
// =============================================================================

// State represents what the records screen is showing.
type State int

const (
	StateReady   State = iota // Table and input line
	StateRunning              // A command is executing
	StateConfirm              // Waiting for y/n on a destructive command
	StateHelp                 // Command reference in the viewport
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateConfirm:
		return "confirm"
	case StateHelp:
		return "help"
	default:
		return "unknown"
	}
}

// FeedbackKind selects how the feedback area is styled.
type FeedbackKind int

const (
	FeedbackInfo FeedbackKind = iota
	FeedbackError
	FeedbackWarning
)

// Options configures the records screen.
type Options struct {
	// Theme is "dark" or "light"; anything else follows the terminal.
	Theme string

	// Help renders the command reference for a width. Nil falls back to
	// the plain reference.
	Help func(width int) string

	// styles overrides Theme, for tests.
	styles *styles.Theme
}

const (
	maxHistory       = 100
	maxFeedbackLines = 8
	statusInterval   = time.Second
)

// =============================================================================
// MESSAGES
// =============================================================================

// commandResultMsg carries the outcome of an executed command.
type commandResultMsg struct {
	result commands.Result
	err    error
}

// statusTickMsg refreshes the session clock in the status bar.
type statusTickMsg time.Time

// =============================================================================
// RECORDS MODEL
// =============================================================================

// Model is the Bubble Tea model of the records screen.
type Model struct {
	ctx  context.Context
	mgr  *session.Manager
	opts Options
	keys KeyMap

	state State
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	input    textinput.Model
	viewport viewport.Model
	help     help.Model

	table  *components.PatientTable
	status *components.StatusBar

	completer  *commands.Completer
	completion *commands.CompletionState
	popup      *components.CompletionPopup

	// pending is the destructive command awaiting confirmation.
	pending commands.Command

	feedback     string
	feedbackKind FeedbackKind

	history    []string
	historyPos int
	draft      string

	quitting bool
}

// New creates the records screen over mgr.
func New(ctx context.Context, mgr *session.Manager, opts Options) Model {
	theme := opts.styles
	if theme == nil {
		theme = styles.NewTheme(opts.Theme)
	}

	input := textinput.New()
	input.Prompt = "medrec> "
	input.Placeholder = "type a command, e.g. list or help"
	input.PromptStyle = theme.InputPrompt
	input.TextStyle = theme.InputText
	input.PlaceholderStyle = theme.InputPlaceholder
	input.CharLimit = 1024
	input.Focus()

	completer := commands.NewCompleter(mgr.Parser().Registry())
	completer.NricsFn = mgr.Nrics
	completion := commands.NewCompletionState()

	keys := DefaultKeyMap()
	status := components.NewStatusBar(theme)
	status.Shortcuts = shortcuts(keys.ShortHelp())

	m := Model{
		ctx:        ctx,
		mgr:        mgr,
		opts:       opts,
		keys:       keys,
		state:      StateReady,
		theme:      theme,
		width:      80,
		height:     24,
		input:      input,
		viewport:   viewport.New(80, 10),
		help:       help.New(),
		table:      components.NewPatientTable(theme),
		status:     status,
		completer:  completer,
		completion: completion,
		popup:      components.NewCompletionPopup(theme, completion),
	}
	m.refresh()
	m.layout()
	return m
}

func shortcuts(bindings []key.Binding) []components.Shortcut {
	out := make([]components.Shortcut, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, components.Shortcut{Key: h.Key, Desc: h.Desc})
	}
	return out
}

// Init starts the cursor blink and the status clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, statusTick())
}

func statusTick() tea.Cmd {
	return tea.Tick(statusInterval, func(t time.Time) tea.Msg {
		return statusTickMsg(t)
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case commandResultMsg:
		return m.handleResult(msg)

	case statusTickMsg:
		m.status.SetStatus(m.mgr.GetStatus())
		return m, statusTick()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(m.width, m.height)
	m.layout()
	m.refreshViewport()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case StateRunning:
		return m, nil
	case StateConfirm:
		return m.handleConfirmKey(msg)
	case StateHelp:
		return m.handleHelpKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Complete):
		m.complete(false)
		return m, nil

	case key.Matches(msg, m.keys.CompletePrev):
		m.complete(true)
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		if m.completion.Visible {
			m.completion.Clear()
			m.layout()
		}
		return m, nil

	case key.Matches(msg, m.keys.HistoryPrev):
		m.recall(-1)
		return m, nil

	case key.Matches(msg, m.keys.HistoryNext):
		m.recall(1)
		return m, nil

	case key.Matches(msg, m.keys.PageUp, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keys.Help):
		m.showHelp()
		return m, nil

	case key.Matches(msg, m.keys.ClearScreen):
		m.setFeedback("", FeedbackInfo)
		return m, nil
	}

	// Typing invalidates the completion menu.
	if m.completion.Visible {
		m.completion.Clear()
		m.layout()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		cmd := m.pending
		m.pending = nil
		m.state = StateRunning
		m.layout()
		return m, m.execute(cmd)

	case key.Matches(msg, m.keys.No):
		result := m.mgr.Cancel(m.pending)
		m.pending = nil
		m.state = StateReady
		m.setFeedback(result.Feedback, FeedbackWarning)
		return m, nil
	}
	return m, nil
}

func (m Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Cancel, m.keys.Help, m.keys.Submit) || msg.String() == "q" {
		m.state = StateReady
		m.refreshViewport()
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleResult(msg commandResultMsg) (tea.Model, tea.Cmd) {
	m.state = StateReady
	m.refresh()

	feedback := msg.result.Feedback
	kind := FeedbackInfo
	if msg.err != nil {
		kind = FeedbackError
		if errors.Is(msg.err, session.ErrSave) && feedback != "" {
			feedback += "\n" + msg.err.Error()
		} else {
			feedback = msg.err.Error()
		}
	}
	m.setFeedback(feedback, kind)

	if msg.err == nil && msg.result.Exit {
		m.quitting = true
		return m, tea.Quit
	}
	if msg.err == nil && msg.result.ShowHelp {
		m.showHelp()
	}
	return m, nil
}

// =============================================================================
// ACTIONS
// =============================================================================

// submit parses the input line and either runs it or asks for confirmation.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.completion.Clear()
	if line == "" {
		m.layout()
		return m, nil
	}

	m.pushHistory(line)
	m.input.Reset()

	cmd, err := m.mgr.Parse(line)
	if err != nil {
		m.setFeedback(err.Error(), FeedbackError)
		return m, nil
	}

	if m.mgr.NeedsConfirmation(cmd) {
		m.pending = cmd
		m.state = StateConfirm
		m.setFeedback("", FeedbackInfo)
		return m, nil
	}

	m.state = StateRunning
	m.layout()
	return m, m.execute(cmd)
}

func (m Model) execute(cmd commands.Command) tea.Cmd {
	ctx, mgr := m.ctx, m.mgr
	return func() tea.Msg {
		result, err := mgr.Execute(ctx, cmd)
		return commandResultMsg{result: result, err: err}
	}
}

// complete starts or cycles Tab completion and writes the candidate into
// the input.
func (m *Model) complete(reverse bool) {
	if !m.completion.Visible {
		value := m.input.Value()
		m.completion.Update(value, m.completer.Complete(value, len(value)))
		if !m.completion.Visible {
			return
		}
		if len(m.completion.Completions) == 1 {
			m.input.SetValue(m.completion.Accept())
			m.input.CursorEnd()
			m.completion.Clear()
			m.layout()
			return
		}
		if reverse {
			m.completion.Prev()
		}
	} else if reverse {
		m.completion.Prev()
	} else {
		m.completion.Next()
	}

	m.input.SetValue(m.completion.Accept())
	m.input.CursorEnd()
	m.layout()
}

// pushHistory appends line unless it repeats the previous entry.
func (m *Model) pushHistory(line string) {
	if n := len(m.history); n == 0 || m.history[n-1] != line {
		m.history = append(m.history, line)
		if len(m.history) > maxHistory {
			m.history = m.history[len(m.history)-maxHistory:]
		}
	}
	m.historyPos = len(m.history)
	m.draft = ""
}

// recall moves through history; past the newest entry the draft returns.
func (m *Model) recall(delta int) {
	if len(m.history) == 0 {
		return
	}
	if m.historyPos == len(m.history) {
		m.draft = m.input.Value()
	}

	pos := m.historyPos + delta
	if pos < 0 || pos > len(m.history) {
		return
	}
	m.historyPos = pos

	if pos == len(m.history) {
		m.input.SetValue(m.draft)
	} else {
		m.input.SetValue(m.history[pos])
	}
	m.input.CursorEnd()
}

func (m *Model) showHelp() {
	m.state = StateHelp
	m.layout()
	m.refreshViewport()
	m.viewport.GotoTop()
}

func (m *Model) setFeedback(text string, kind FeedbackKind) {
	m.feedback = strings.TrimRight(text, "\n")
	m.feedbackKind = kind
	m.layout()
}

// refresh reloads the table and the status bar from the session.
func (m *Model) refresh() {
	m.table.SetPatients(m.mgr.Patients())
	m.status.SetStatus(m.mgr.GetStatus())
	m.refreshViewport()
}

func (m *Model) refreshViewport() {
	if m.state == StateHelp {
		m.viewport.SetContent(m.helpContent())
		return
	}
	m.table.SetWidth(m.width)
	m.viewport.SetContent(m.table.View())
}

func (m *Model) helpContent() string {
	var text string
	if m.opts.Help != nil {
		text = m.opts.Help(m.width)
	} else {
		text = commands.HelpText(m.mgr.Parser().Registry())
	}
	return text + "\n" + m.help.FullHelpView(m.keys.FullHelp())
}

// =============================================================================
// ACCESSORS
// =============================================================================

// State returns the current screen state.
func (m Model) State() State {
	return m.state
}

// Feedback returns the message shown under the table.
func (m Model) Feedback() (string, FeedbackKind) {
	return m.feedback, m.feedbackKind
}

// InputValue returns the current input line.
func (m Model) InputValue() string {
	return m.input.Value()
}

// Pending returns the command awaiting confirmation, or nil.
func (m Model) Pending() commands.Command {
	return m.pending
}

// Quitting reports whether the screen asked the program to exit.
func (m Model) Quitting() bool {
	return m.quitting
}

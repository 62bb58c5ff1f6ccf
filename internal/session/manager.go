// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jeranaias/medrec/internal/audit"
	"github.com/jeranaias/medrec/internal/commands"
	"github.com/jeranaias/medrec/internal/model"
	"github.com/jeranaias/medrec/internal/storage"
)

// MessageCancelled is the feedback for a declined confirmation.
const MessageCancelled = "Command cancelled."

// ErrSave wraps a failed save. The command itself has already been applied.
var ErrSave = errors.New("failed to save patient records")

// ConfirmFunc asks the user whether cmd should run.
type ConfirmFunc func(cmd commands.Command) (bool, error)

// =============================================================================
// SESSION MANAGER
// =============================================================================

// Options configures a Manager.
type Options struct {
	// Store persists the records. Nil keeps them in memory only.
	Store storage.Store

	// Audit receives one event per handled line. Nil disables auditing.
	Audit *audit.Logger

	Logger zerolog.Logger

	// Autosave saves after every command that changed the records.
	// Otherwise changes are saved by Close.
	Autosave bool

	// ConfirmDestructive asks before delete, clear, deletemr and clearmu.
	ConfirmDestructive bool

	// Registry defaults to commands.NewRegistry().
	Registry *commands.Registry
}

// Manager serializes command handling over one patient model.
type Manager struct {
	mu sync.Mutex

	sessionID    string
	startTime    time.Time
	lastActivity time.Time

	model  *model.Manager
	parser *commands.Parser
	store  storage.Store
	audit  *audit.Logger
	log    zerolog.Logger

	autosave      bool
	confirm       bool
	savedRevision uint64
	lastSave      time.Time
	commandCount  int
}

// NewManager loads the records from opts.Store and starts a session.
func NewManager(ctx context.Context, opts Options) (*Manager, error) {
	registry := opts.Registry
	if registry == nil {
		registry = commands.NewRegistry()
	}

	mdl := model.NewManager()
	if opts.Store != nil {
		patients, err := opts.Store.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load patient records from %s: %w", opts.Store.Path(), err)
		}
		if err := mdl.Reset(patients); err != nil {
			return nil, fmt.Errorf("failed to load patient records from %s: %w", opts.Store.Path(), err)
		}
	}

	sessionID := opts.Audit.SessionID()
	if sessionID == "" {
		sessionID = generateSessionID()
	}

	now := time.Now()
	m := &Manager{
		sessionID:     sessionID,
		startTime:     now,
		lastActivity:  now,
		model:         mdl,
		parser:        commands.NewParser(registry),
		store:         opts.Store,
		audit:         opts.Audit,
		log:           opts.Logger.With().Str("session", sessionID).Logger(),
		autosave:      opts.Autosave,
		confirm:       opts.ConfirmDestructive,
		savedRevision: mdl.Revision(),
	}

	m.log.Info().Int("patients", len(mdl.Patients())).Msg("session started")
	if err := m.audit.LogSessionStart(); err != nil {
		m.log.Warn().Err(err).Msg("audit write failed")
	}
	return m, nil
}

// =============================================================================
// SESSION STATE
// =============================================================================

// SessionID returns the current session ID.
func (m *Manager) SessionID() string {
	return m.sessionID
}

// Parser returns the command parser, for help and completion.
func (m *Manager) Parser() *commands.Parser {
	return m.parser
}

// Patients returns the displayed (filtered) list.
func (m *Manager) Patients() []*model.Patient {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.model.FilteredPatients()
}

// Nrics returns the NRIC of every recorded patient.
func (m *Manager) Nrics() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.model.Patients()
	nrics := make([]string, len(all))
	for i, p := range all {
		nrics[i] = p.Nric.String()
	}
	return nrics
}

// IsDirty returns whether the records have unsaved changes.
func (m *Manager) IsDirty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isDirtyLocked()
}

func (m *Manager) isDirtyLocked() bool {
	return m.store != nil && m.model.Revision() != m.savedRevision
}

// =============================================================================
// COMMAND HANDLING
// =============================================================================

// Handle parses line and executes it. Destructive commands run only when
// confirm approves them; a nil confirm approves everything.
func (m *Manager) Handle(ctx context.Context, line string, confirm ConfirmFunc) (commands.Result, error) {
	cmd, err := m.Parse(line)
	if err != nil {
		return commands.Result{}, err
	}

	if m.NeedsConfirmation(cmd) && confirm != nil {
		ok, err := confirm(cmd)
		if err != nil {
			return commands.Result{}, err
		}
		if !ok {
			return m.Cancel(cmd), nil
		}
	}

	return m.Execute(ctx, cmd)
}

// Parse turns line into a command. Failures are audited.
func (m *Manager) Parse(line string) (commands.Command, error) {
	cmd, err := m.parser.Parse(line)
	if err != nil {
		word, _ := commands.SplitCommandWord(line)
		m.log.Debug().Str("command", word).Err(err).Msg("parse failed")
		m.record(word, "", audit.OutcomeFailure, err)
		return nil, err
	}
	return cmd, nil
}

// NeedsConfirmation reports whether cmd must be confirmed before Execute.
func (m *Manager) NeedsConfirmation(cmd commands.Command) bool {
	return m.confirm && commands.NeedsConfirmation(cmd)
}

// Cancel records that the user declined cmd.
func (m *Manager) Cancel(cmd commands.Command) commands.Result {
	m.log.Debug().Str("command", cmd.Word()).Msg("command cancelled")
	m.record(cmd.Word(), commands.TargetOf(cmd), audit.OutcomeCancelled, nil)
	return commands.Result{Feedback: MessageCancelled}
}

// Execute runs cmd against the records, audits it and saves when autosave
// is on. On a save failure the result is still returned alongside an error
// wrapping ErrSave.
func (m *Manager) Execute(ctx context.Context, cmd commands.Command) (commands.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastActivity = time.Now()
	m.commandCount++
	target := commands.TargetOf(cmd)

	start := time.Now()
	result, err := cmd.Execute(m.model)
	event := m.log.Debug().
		Str("command", cmd.Word()).
		Str("target", target).
		Dur("elapsed", time.Since(start))
	if err != nil {
		event.Err(err).Msg("command failed")
		m.record(cmd.Word(), target, audit.OutcomeFailure, err)
		return commands.Result{}, err
	}
	event.Msg("command executed")
	m.record(cmd.Word(), target, audit.OutcomeSuccess, nil)

	if m.autosave && m.isDirtyLocked() {
		if err := m.saveLocked(ctx); err != nil {
			return result, err
		}
	}
	return result, nil
}

func (m *Manager) record(word, target string, outcome audit.Outcome, cmdErr error) {
	if err := m.audit.LogCommand(word, target, outcome, cmdErr); err != nil {
		m.log.Warn().Err(err).Msg("audit write failed")
	}
}

// =============================================================================
// PERSISTENCE
// =============================================================================

// Save writes the records to the store if they changed.
func (m *Manager) Save(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.isDirtyLocked() {
		return nil
	}
	return m.saveLocked(ctx)
}

func (m *Manager) saveLocked(ctx context.Context) error {
	rev := m.model.Revision()
	if err := m.store.Save(ctx, m.model.Patients()); err != nil {
		m.log.Error().Err(err).Str("path", m.store.Path()).Msg("save failed")
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	m.savedRevision = rev
	m.lastSave = time.Now()
	m.log.Debug().Uint64("revision", rev).Str("path", m.store.Path()).Msg("records saved")
	return nil
}

// Close saves pending changes, ends the session and closes the store.
// The audit logger belongs to the caller and stays open.
func (m *Manager) Close(ctx context.Context) error {
	var errs []error
	if err := m.Save(ctx); err != nil {
		errs = append(errs, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.audit.LogSessionEnd(); err != nil {
		m.log.Warn().Err(err).Msg("audit write failed")
	}
	m.log.Info().
		Int("commands", m.commandCount).
		Str("duration", FormatDuration(time.Since(m.startTime))).
		Msg("session ended")

	if m.store != nil {
		if err := m.store.Close(); err != nil {
			errs = append(errs, err)
		}
		m.store = nil
	}
	return errors.Join(errs...)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateSessionID creates a session ID when no audit trail supplies one.
func generateSessionID() string {
	return "sess_" + formatTimestamp(time.Now())
}

// formatTimestamp formats a time for use in IDs.
func formatTimestamp(t time.Time) string {
	return t.Format("20060102_150405")
}

// =============================================================================
// SESSION STATUS
// =============================================================================

// Status represents the current session status.
type Status struct {
	SessionID    string
	StartTime    time.Time
	Duration     time.Duration
	IdleTime     time.Duration
	Patients     int
	Displayed    int
	Commands     int
	IsDirty      bool
	LastSave     time.Time
	StorePath    string
	AuditEnabled bool
}

// GetStatus returns the current session status.
func (m *Manager) GetStatus() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	status := Status{
		SessionID:    m.sessionID,
		StartTime:    m.startTime,
		Duration:     now.Sub(m.startTime),
		IdleTime:     now.Sub(m.lastActivity),
		Patients:     m.model.Len(),
		Displayed:    len(m.model.FilteredPatients()),
		Commands:     m.commandCount,
		IsDirty:      m.isDirtyLocked(),
		LastSave:     m.lastSave,
		AuditEnabled: m.audit.Enabled(),
	}
	if m.store != nil {
		status.StorePath = m.store.Path()
	}
	return status
}

// FormatDuration returns a human-readable duration string.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		secs := int(d.Seconds())
		return strconv.Itoa(secs) + "s"
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	if secs == 0 {
		return strconv.Itoa(mins) + "m"
	}
	return strconv.Itoa(mins) + "m " + strconv.Itoa(secs) + "s"
}

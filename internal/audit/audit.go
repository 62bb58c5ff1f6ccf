// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package audit

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jeranaias/medrec/internal/util"
)

// =============================================================================
// EVENTS
// =============================================================================

// Outcome is the result of an audited command.
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeFailure   Outcome = "failure"
	OutcomeCancelled Outcome = "cancelled"
)

// Event types.
const (
	EventCommand      = "command"
	EventSessionStart = "session_start"
	EventSessionEnd   = "session_end"
)

// Event is one line of the audit trail.
type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"time"`
	Type      string    `json:"event"`
	SessionID string    `json:"session"`
	Command   string    `json:"command,omitempty"`
	Target    string    `json:"target,omitempty"`
	Outcome   Outcome   `json:"outcome,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// ToLogLine formats the event for terminal display.
func (e Event) ToLogLine() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %-13s", e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Type)
	if e.Command != "" {
		fmt.Fprintf(&b, " %s", e.Command)
	}
	if e.Target != "" {
		fmt.Fprintf(&b, " %s", e.Target)
	}
	if e.Outcome != "" {
		fmt.Fprintf(&b, " [%s]", e.Outcome)
	}
	if e.Error != "" {
		fmt.Fprintf(&b, " %q", e.Error)
	}
	return b.String()
}

// =============================================================================
// LOGGER
// =============================================================================

// DefaultMaxFileSize is the trail size that triggers rotation.
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// Logger appends events to an audit file. A nil or disabled Logger
// discards events.
type Logger struct {
	mu        sync.Mutex
	path      string
	file      *os.File
	log       zerolog.Logger
	sessionID string
	maxSize   int64
	now       func() time.Time
}

// NewLogger opens (creating if needed) the trail at path.
func NewLogger(path string) (*Logger, error) {
	path, err := util.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create audit log directory: %w", err)
	}

	l := &Logger{
		path:      path,
		sessionID: uuid.NewString(),
		maxSize:   DefaultMaxFileSize,
		now:       time.Now,
	}
	if err := l.open(); err != nil {
		return nil, err
	}
	return l, nil
}

// Disabled returns a logger that records nothing.
func Disabled() *Logger {
	return nil
}

func (l *Logger) open() error {
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log file: %w", err)
	}
	l.file = file
	l.log = zerolog.New(file)
	return nil
}

// Enabled reports whether events are being recorded.
func (l *Logger) Enabled() bool {
	return l != nil
}

// SessionID identifies this process run in every event.
func (l *Logger) SessionID() string {
	if l == nil {
		return ""
	}
	return l.sessionID
}

// Path returns the trail file path.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// SetMaxSize sets the file size that triggers rotation. Zero disables it.
func (l *Logger) SetMaxSize(size int64) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.maxSize = size
}

// Record writes ev, filling ID, Timestamp and SessionID when unset.
func (l *Logger) Record(ev Event) error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return ErrClosed
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = l.now().UTC()
	}
	if ev.SessionID == "" {
		ev.SessionID = l.sessionID
	}

	e := l.log.Log().
		Str("id", ev.ID).
		Time("time", ev.Timestamp).
		Str("event", ev.Type).
		Str("session", ev.SessionID)
	if ev.Command != "" {
		e = e.Str("command", ev.Command)
	}
	if ev.Target != "" {
		e = e.Str("target", ev.Target)
	}
	if ev.Outcome != "" {
		e = e.Str("outcome", string(ev.Outcome))
	}
	if ev.Error != "" {
		e = e.Str("error", ev.Error)
	}
	e.Send()

	return l.checkRotationLocked()
}

// LogCommand records one command execution.
func (l *Logger) LogCommand(word, target string, outcome Outcome, cmdErr error) error {
	ev := Event{Type: EventCommand, Command: word, Target: target, Outcome: outcome}
	if cmdErr != nil {
		ev.Error = cmdErr.Error()
	}
	return l.Record(ev)
}

// LogSessionStart records the start of a run.
func (l *Logger) LogSessionStart() error {
	return l.Record(Event{Type: EventSessionStart})
}

// LogSessionEnd records the end of a run.
func (l *Logger) LogSessionEnd() error {
	return l.Record(Event{Type: EventSessionEnd})
}

// Close closes the trail file.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// ErrClosed is returned when recording to a closed logger.
var ErrClosed = errors.New("audit log is closed")

// =============================================================================
// FILE ROTATION
// =============================================================================

// Rotate moves the current file aside with a timestamp suffix.
func (l *Logger) Rotate() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rotateLocked()
}

func (l *Logger) rotateLocked() error {
	if l.file == nil {
		return nil
	}
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("failed to close audit log for rotation: %w", err)
	}

	ext := filepath.Ext(l.path)
	base := strings.TrimSuffix(l.path, ext)
	rotated := fmt.Sprintf("%s_%s%s", base, l.now().Format("20060102_150405.000000000"), ext)

	if err := os.Rename(l.path, rotated); err != nil {
		_ = l.open()
		return fmt.Errorf("failed to rotate audit log: %w", err)
	}
	return l.open()
}

func (l *Logger) checkRotationLocked() error {
	if l.maxSize <= 0 {
		return nil
	}
	info, err := l.file.Stat()
	if err != nil {
		return nil
	}
	if info.Size() >= l.maxSize {
		return l.rotateLocked()
	}
	return nil
}

// =============================================================================
// READING
// =============================================================================

// ReadEvents parses the trail at path, oldest first. Lines that are not
// valid events are skipped. A missing file yields no events.
func ReadEvents(path string) ([]Event, error) {
	path, err := util.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev Event
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil || ev.ID == "" {
			continue
		}
		events = append(events, ev)
	}
	return events, scanner.Err()
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/medrec/internal/audit"
	"github.com/jeranaias/medrec/internal/commands"
	"github.com/jeranaias/medrec/internal/model"
	"github.com/jeranaias/medrec/internal/storage"
)

const addAlex = "add n/S1234567A nm/Alex Yeoh p/87438807 e/alexyeoh@example.com a/Blk 30 Geylang Street 29"

// =============================================================================
// TEST HELPERS
// =============================================================================

type fakeStore struct {
	patients []*model.Patient
	saves    int
	saveErr  error
	closed   bool
}

func (s *fakeStore) Load(context.Context) ([]*model.Patient, error) { return s.patients, nil }

func (s *fakeStore) Save(_ context.Context, patients []*model.Patient) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.patients = patients
	return nil
}

func (s *fakeStore) Path() string { return "memory" }
func (s *fakeStore) Close() error { s.closed = true; return nil }

func newTestManager(t *testing.T, store storage.Store, opts Options) *Manager {
	t.Helper()
	opts.Store = store
	opts.Logger = zerolog.Nop()
	m, err := NewManager(context.Background(), opts)
	require.NoError(t, err)
	return m
}

func always(answer bool) ConfirmFunc {
	return func(commands.Command) (bool, error) { return answer, nil }
}

// =============================================================================
// MANAGER CREATION TESTS
// =============================================================================

func TestNewManager(t *testing.T) {
	m := newTestManager(t, nil, Options{})

	assert.True(t, strings.HasPrefix(m.SessionID(), "sess_"), "got %q", m.SessionID())
	assert.Empty(t, m.Patients())
	assert.False(t, m.IsDirty())
	assert.NotNil(t, m.Parser())
}

func TestNewManager_LoadsStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patients.json")
	store, err := storage.Open(storage.BackendJSON, path)
	require.NoError(t, err)
	p := model.NewPatient(model.MustParseNric("S1234567A"), "Alex Yeoh", "87438807", "alexyeoh@example.com", "Blk 30")
	require.NoError(t, store.Save(context.Background(), []*model.Patient{p}))

	m := newTestManager(t, store, Options{})
	require.Len(t, m.Patients(), 1)
	assert.Equal(t, []string{"S1234567A"}, m.Nrics())
	assert.False(t, m.IsDirty())
}

func TestNewManager_UsesAuditSession(t *testing.T) {
	trail, err := audit.NewLogger(filepath.Join(t.TempDir(), "audit.log"))
	require.NoError(t, err)
	defer trail.Close()

	m := newTestManager(t, nil, Options{Audit: trail})
	assert.Equal(t, trail.SessionID(), m.SessionID())
}

// =============================================================================
// COMMAND HANDLING TESTS
// =============================================================================

func TestManager_Handle(t *testing.T) {
	store := &fakeStore{}
	m := newTestManager(t, store, Options{Autosave: true, ConfirmDestructive: true})
	ctx := context.Background()

	result, err := m.Handle(ctx, addAlex, nil)
	require.NoError(t, err)
	assert.Contains(t, result.Feedback, "Alex Yeoh")
	assert.Equal(t, 1, store.saves)

	_, err = m.Handle(ctx, "addmu 1 mn/Paracetamol dos/2 tablets sd/2024-01-01 ed/2024-01-10", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, store.saves)

	result, err = m.Handle(ctx, "clearmu n/S1234567A", always(false))
	require.NoError(t, err)
	assert.Equal(t, MessageCancelled, result.Feedback)
	assert.Len(t, m.Patients()[0].MedicineUsages(), 1)
	assert.Equal(t, 2, store.saves)

	result, err = m.Handle(ctx, "clearmu n/S1234567A", always(true))
	require.NoError(t, err)
	assert.Equal(t, "Medicine usage successfully deleted from S1234567A", result.Feedback)
	assert.Empty(t, m.Patients()[0].MedicineUsages())
	assert.Equal(t, 3, store.saves)

	_, err = m.Handle(ctx, "list", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, store.saves, "read-only commands do not save")
}

func TestManager_HandleErrors(t *testing.T) {
	m := newTestManager(t, &fakeStore{}, Options{Autosave: true})
	ctx := context.Background()

	tests := []struct {
		line string
		kind error
	}{
		{"frobnicate", commands.ErrUnknownCommand},
		{"clearmu", commands.ErrInvalidCommandFormat},
		{"clearmu 3", commands.ErrInvalidDisplayedIndex},
		{"clearmu n/S7654321Z", commands.ErrPersonNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := m.Handle(ctx, tt.line, nil)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
	assert.False(t, m.IsDirty())
}

func TestManager_ConfirmErrorAborts(t *testing.T) {
	m := newTestManager(t, nil, Options{ConfirmDestructive: true})
	ctx := context.Background()
	_, err := m.Handle(ctx, addAlex, nil)
	require.NoError(t, err)

	boom := errors.New("input closed")
	_, err = m.Handle(ctx, "clear", func(commands.Command) (bool, error) { return false, boom })
	assert.ErrorIs(t, err, boom)
	assert.Len(t, m.Patients(), 1)
}

func TestManager_ConfirmDisabled(t *testing.T) {
	m := newTestManager(t, nil, Options{ConfirmDestructive: false})
	cmd, err := m.Parse("clear")
	require.NoError(t, err)
	assert.False(t, m.NeedsConfirmation(cmd))

	asked := false
	_, err = m.Handle(context.Background(), "clear", func(commands.Command) (bool, error) {
		asked = true
		return false, nil
	})
	require.NoError(t, err)
	assert.False(t, asked)
}

// =============================================================================
// PERSISTENCE TESTS
// =============================================================================

func TestManager_SaveOnCloseWithoutAutosave(t *testing.T) {
	store := &fakeStore{}
	m := newTestManager(t, store, Options{Autosave: false})
	ctx := context.Background()

	_, err := m.Handle(ctx, addAlex, nil)
	require.NoError(t, err)
	assert.True(t, m.IsDirty())
	assert.Equal(t, 0, store.saves)

	require.NoError(t, m.Close(ctx))
	assert.Equal(t, 1, store.saves)
	assert.True(t, store.closed)
	require.Len(t, store.patients, 1)
}

func TestManager_SaveFailure(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("disk full")}
	m := newTestManager(t, store, Options{Autosave: true})

	result, err := m.Handle(context.Background(), addAlex, nil)
	assert.ErrorIs(t, err, ErrSave)
	assert.Contains(t, result.Feedback, "Alex Yeoh", "the command still ran")
	assert.True(t, m.IsDirty())

	store.saveErr = nil
	require.NoError(t, m.Save(context.Background()))
	assert.False(t, m.IsDirty())
}

// =============================================================================
// AUDIT TESTS
// =============================================================================

func TestManager_AuditTrail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	trail, err := audit.NewLogger(path)
	require.NoError(t, err)

	m := newTestManager(t, nil, Options{Audit: trail, ConfirmDestructive: true})
	ctx := context.Background()

	_, _ = m.Handle(ctx, addAlex, nil)
	_, _ = m.Handle(ctx, "delete 1", always(false))
	_, _ = m.Handle(ctx, "viewmr 4", nil)
	_, _ = m.Handle(ctx, "bogus", nil)
	require.NoError(t, m.Close(ctx))
	require.NoError(t, trail.Close())

	events, err := audit.ReadEvents(path)
	require.NoError(t, err)
	require.Len(t, events, 6)

	assert.Equal(t, audit.EventSessionStart, events[0].Type)
	assert.Equal(t, "add", events[1].Command)
	assert.Equal(t, "n/S1234567A", events[1].Target)
	assert.Equal(t, audit.OutcomeSuccess, events[1].Outcome)
	assert.Equal(t, audit.OutcomeCancelled, events[2].Outcome)
	assert.Equal(t, "1", events[2].Target)
	assert.Equal(t, audit.OutcomeFailure, events[3].Outcome)
	assert.Equal(t, "The patient index provided is invalid", events[3].Error)
	assert.Equal(t, "bogus", events[4].Command)
	assert.Equal(t, audit.OutcomeFailure, events[4].Outcome)
	assert.Equal(t, audit.EventSessionEnd, events[5].Type)
}

// =============================================================================
// STATUS TESTS
// =============================================================================

func TestManager_GetStatus(t *testing.T) {
	m := newTestManager(t, &fakeStore{}, Options{})
	_, err := m.Handle(context.Background(), addAlex, nil)
	require.NoError(t, err)

	status := m.GetStatus()
	assert.Equal(t, m.SessionID(), status.SessionID)
	assert.Equal(t, 1, status.Patients)
	assert.Equal(t, 1, status.Displayed)
	assert.Equal(t, 1, status.Commands)
	assert.True(t, status.IsDirty)
	assert.Equal(t, "memory", status.StorePath)
	assert.False(t, status.AuditEnabled)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input time.Duration
		want  string
	}{
		{30 * time.Second, "30s"},
		{90 * time.Second, "1m 30s"},
		{5 * time.Minute, "5m"},
		{5*time.Minute + 30*time.Second, "5m 30s"},
	}

	for _, tc := range tests {
		got := FormatDuration(tc.input)
		if got != tc.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

// =============================================================================
// CONCURRENCY TESTS
// =============================================================================

func TestManager_ConcurrentAccess(t *testing.T) {
	m := newTestManager(t, &fakeStore{}, Options{Autosave: true})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_, _ = m.Handle(ctx, "list", nil)
				_ = m.Patients()
				_ = m.Nrics()
				_ = m.IsDirty()
				_ = m.GetStatus()
			}
		}()
	}
	wg.Wait()
}

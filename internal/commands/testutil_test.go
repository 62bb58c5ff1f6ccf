// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jeranaias/medrec/internal/model"
)

func newPatient(nric, name string) *model.Patient {
	return model.NewPatient(model.MustParseNric(nric), model.Name(name),
		"91234567", "patient@example.com", "1 Jurong West Ave 1")
}

func newUsage(t *testing.T, name string) model.MedicineUsage {
	t.Helper()
	u, err := model.NewMedicineUsage(name, "500mg", "2024-01-01", "2024-01-07")
	require.NoError(t, err)
	return u
}

// newManager builds a model holding patients, then records usages for the
// patient at usages' keys.
func newManager(t *testing.T, patients []*model.Patient, usages map[string][]string) *model.Manager {
	t.Helper()
	m, err := model.NewManagerWith(patients)
	require.NoError(t, err)
	for nric, names := range usages {
		p, ok := m.FindPatientByNric(model.MustParseNric(nric))
		require.True(t, ok, "fixture patient %s missing", nric)
		for _, name := range names {
			require.NoError(t, m.AddMedicineUsage(p, newUsage(t, name)))
			p, _ = m.FindPatientByNric(p.Nric)
		}
	}
	return m
}

func mustParse(t *testing.T, line string) Command {
	t.Helper()
	cmd, err := NewParser(NewRegistry()).Parse(line)
	require.NoError(t, err, "parse %q", line)
	return cmd
}

// =============================================================================
// MOCK MODEL
// =============================================================================

// mockModel is a Model whose behavior is set per test. Unset functions
// fail the test when called.
type mockModel struct {
	t *testing.T

	FindPatientByNricFn  func(model.Nric) (*model.Patient, bool)
	FilteredPatientsFn   func() []*model.Patient
	ClearMedicineUsageFn func(*model.Patient) error

	calls []string
}

func (m *mockModel) record(name string) {
	m.calls = append(m.calls, name)
}

func (m *mockModel) FindPatientByNric(n model.Nric) (*model.Patient, bool) {
	m.record("FindPatientByNric")
	if m.FindPatientByNricFn == nil {
		m.t.Fatal("unexpected FindPatientByNric")
	}
	return m.FindPatientByNricFn(n)
}

func (m *mockModel) FilteredPatients() []*model.Patient {
	m.record("FilteredPatients")
	if m.FilteredPatientsFn == nil {
		m.t.Fatal("unexpected FilteredPatients")
	}
	return m.FilteredPatientsFn()
}

func (m *mockModel) ClearMedicineUsage(p *model.Patient) error {
	m.record("ClearMedicineUsage")
	if m.ClearMedicineUsageFn == nil {
		m.t.Fatal("unexpected ClearMedicineUsage")
	}
	return m.ClearMedicineUsageFn(p)
}

func (m *mockModel) HasPatient(model.Nric) bool {
	m.t.Fatal("unexpected HasPatient")
	return false
}

func (m *mockModel) UpdateFilter(model.Predicate) { m.t.Fatal("unexpected UpdateFilter") }

func (m *mockModel) AddPatient(*model.Patient) error {
	m.t.Fatal("unexpected AddPatient")
	return nil
}

func (m *mockModel) DeletePatient(*model.Patient) error {
	m.t.Fatal("unexpected DeletePatient")
	return nil
}

func (m *mockModel) ClearPatients() { m.t.Fatal("unexpected ClearPatients") }

func (m *mockModel) SetMedicalReport(model.Nric, model.MedicalReport) error {
	m.t.Fatal("unexpected SetMedicalReport")
	return nil
}

func (m *mockModel) AddMedicineUsage(*model.Patient, model.MedicineUsage) error {
	m.t.Fatal("unexpected AddMedicineUsage")
	return nil
}

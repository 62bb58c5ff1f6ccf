// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "fmt"

// =============================================================================
// MANAGER
// =============================================================================

// Manager is the in-memory model: the full patient book plus the filter that
// defines the displayed list. It has exactly one caller at a time and does no
// locking.
type Manager struct {
	book     *PatientBook
	filter   Predicate
	revision uint64
}

// NewManager returns an empty model showing all patients.
func NewManager() *Manager {
	return &Manager{book: &PatientBook{}, filter: ShowAll}
}

// NewManagerWith returns a model holding patients, in order.
func NewManagerWith(patients []*Patient) (*Manager, error) {
	book, err := NewPatientBook(patients)
	if err != nil {
		return nil, err
	}
	return &Manager{book: book, filter: ShowAll}, nil
}

// Revision increments on every successful mutation. Callers compare values to
// detect unsaved changes.
func (m *Manager) Revision() uint64 {
	return m.revision
}

// Len returns the number of patients, ignoring the filter.
func (m *Manager) Len() int {
	return m.book.Len()
}

// Patients returns every patient, ignoring the filter.
func (m *Manager) Patients() []*Patient {
	return m.book.Patients()
}

// Reset replaces the whole collection and shows all patients.
func (m *Manager) Reset(patients []*Patient) error {
	book, err := NewPatientBook(patients)
	if err != nil {
		return err
	}
	m.book = book
	m.filter = ShowAll
	m.revision++
	return nil
}

// =============================================================================
// QUERIES
// =============================================================================

// FindPatientByNric looks the patient up in the full collection.
func (m *Manager) FindPatientByNric(nric Nric) (*Patient, bool) {
	return m.book.Find(nric)
}

// HasPatient reports whether the NRIC is already recorded.
func (m *Manager) HasPatient(nric Nric) bool {
	return m.book.Has(nric)
}

// FilteredPatients returns the displayed list. Positions are stable until the
// next mutation or filter change.
func (m *Manager) FilteredPatients() []*Patient {
	var shown []*Patient
	for _, p := range m.book.patients {
		if m.filter(p) {
			shown = append(shown, p)
		}
	}
	return shown
}

// UpdateFilter changes which patients are displayed. A nil predicate shows all.
func (m *Manager) UpdateFilter(pred Predicate) {
	if pred == nil {
		pred = ShowAll
	}
	m.filter = pred
}

// =============================================================================
// MUTATIONS
// =============================================================================

// AddPatient appends a new patient.
func (m *Manager) AddPatient(p *Patient) error {
	if err := m.book.Add(p); err != nil {
		return err
	}
	m.revision++
	return nil
}

// DeletePatient removes the patient with p's NRIC.
func (m *Manager) DeletePatient(p *Patient) error {
	if err := m.book.Remove(p); err != nil {
		return err
	}
	m.revision++
	return nil
}

// ClearPatients removes every patient.
func (m *Manager) ClearPatients() {
	m.book.Clear()
	m.revision++
}

// SetMedicalReport replaces the categorical fields of the patient's report.
// Recorded medicine usages are carried over.
func (m *Manager) SetMedicalReport(nric Nric, report MedicalReport) error {
	p, ok := m.book.Find(nric)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPatientNotFound, nric)
	}
	report = report.WithMedicineUsages(p.Report.MedicineUsages)
	return m.replace(p, p.WithReport(report))
}

// AddMedicineUsage appends a usage to the patient's report.
func (m *Manager) AddMedicineUsage(p *Patient, usage MedicineUsage) error {
	current, ok := m.book.Find(p.Nric)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPatientNotFound, p.Nric)
	}
	for _, u := range current.Report.MedicineUsages {
		if u.Equal(usage) {
			return fmt.Errorf("%w: %s", ErrDuplicateUsage, usage.Name)
		}
	}
	usages := append(append([]MedicineUsage(nil), current.Report.MedicineUsages...), usage)
	return m.replace(current, current.WithReport(current.Report.WithMedicineUsages(usages)))
}

// ClearMedicineUsage removes every medicine usage from the patient's report.
func (m *Manager) ClearMedicineUsage(p *Patient) error {
	current, ok := m.book.Find(p.Nric)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPatientNotFound, p.Nric)
	}
	return m.replace(current, current.WithReport(current.Report.WithMedicineUsages(nil)))
}

func (m *Manager) replace(target, edited *Patient) error {
	if err := m.book.Replace(target, edited); err != nil {
		return err
	}
	m.revision++
	return nil
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "fmt"

// PatientBook is an ordered list of patients with unique NRICs.
type PatientBook struct {
	patients []*Patient
}

// NewPatientBook builds a book from patients, rejecting duplicate NRICs.
func NewPatientBook(patients []*Patient) (*PatientBook, error) {
	b := &PatientBook{}
	for _, p := range patients {
		if err := b.Add(p); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Len returns the number of patients.
func (b *PatientBook) Len() int {
	return len(b.patients)
}

// Patients returns a copy of the patient slice in insertion order.
func (b *PatientBook) Patients() []*Patient {
	return append([]*Patient(nil), b.patients...)
}

// Find returns the patient with nric.
func (b *PatientBook) Find(nric Nric) (*Patient, bool) {
	i := b.position(nric)
	if i < 0 {
		return nil, false
	}
	return b.patients[i], true
}

// Has reports whether a patient with nric exists.
func (b *PatientBook) Has(nric Nric) bool {
	return b.position(nric) >= 0
}

// Add appends p. Fails with ErrDuplicatePatient if the NRIC is taken.
func (b *PatientBook) Add(p *Patient) error {
	if p == nil {
		return fmt.Errorf("model: cannot add nil patient")
	}
	for _, existing := range b.patients {
		if existing.IsSamePatient(p) {
			return fmt.Errorf("%w: %s", ErrDuplicatePatient, p.Nric)
		}
	}
	b.patients = append(b.patients, p)
	return nil
}

// Replace swaps the stored patient with the same NRIC as target for edited,
// keeping its position.
func (b *PatientBook) Replace(target, edited *Patient) error {
	i := b.position(target.Nric)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrPatientNotFound, target.Nric)
	}
	if target.Nric != edited.Nric && b.Has(edited.Nric) {
		return fmt.Errorf("%w: %s", ErrDuplicatePatient, edited.Nric)
	}
	b.patients[i] = edited
	return nil
}

// Remove deletes the patient with the same NRIC as p.
func (b *PatientBook) Remove(p *Patient) error {
	i := b.position(p.Nric)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrPatientNotFound, p.Nric)
	}
	b.patients = append(b.patients[:i], b.patients[i+1:]...)
	return nil
}

// Clear removes every patient.
func (b *PatientBook) Clear() {
	b.patients = nil
}

func (b *PatientBook) position(nric Nric) int {
	for i, p := range b.patients {
		if p.Nric == nric {
			return i
		}
	}
	return -1
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "testing"

func newTestPatient(t *testing.T, nric, name string) *Patient {
	t.Helper()
	return NewPatient(MustParseNric(nric), Name(name), "91234567", "patient@example.com", "1 Jurong West Ave 1")
}

func newTestUsage(t *testing.T, name string) MedicineUsage {
	t.Helper()
	u, err := NewMedicineUsage(name, "500mg", "2024-01-01", "2024-01-07")
	if err != nil {
		t.Fatalf("NewMedicineUsage(%q) failed: %v", name, err)
	}
	return u
}

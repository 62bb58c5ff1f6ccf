// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the patient records and the in-memory model that
// commands operate on.
//
// # Key Types
//
//   - Nric: validated national identifier, the canonical patient key
//   - Index: position in the currently displayed patient list
//   - Patient: contact details plus a MedicalReport
//   - MedicalReport: allergy, illness, surgery, immunization and medicine usages
//   - MedicineUsage: one medicine taken over a date range
//   - Manager: the mutable patient collection with a filtered view
//
// # Usage
//
// Build a manager and look a patient up:
//
//	m := model.NewManager()
//	nric, _ := model.ParseNric("S1234567A")
//	if p, ok := m.FindPatientByNric(nric); ok {
//	    fmt.Println(p.Report)
//	}
//
// Values handed out by Manager are snapshots. Mutations go through Manager
// methods, which replace the stored patient instead of editing it in place.
package model

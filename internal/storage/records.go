// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"fmt"

	"github.com/jeranaias/medrec/internal/model"
)

// =============================================================================
// STORED RECORD TYPES
// =============================================================================

// patientRecord is the serialized form of a patient.
type patientRecord struct {
	Nric           string        `json:"nric"`
	Name           string        `json:"name"`
	Phone          string        `json:"phone"`
	Email          string        `json:"email"`
	Address        string        `json:"address"`
	Report         reportRecord  `json:"report"`
	MedicineUsages []usageRecord `json:"medicineUsages"`
}

type reportRecord struct {
	Allergy      string `json:"allergy"`
	Illness      string `json:"illness"`
	Surgery      string `json:"surgery"`
	Immunization string `json:"immunization"`
}

type usageRecord struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// =============================================================================
// CONVERSION
// =============================================================================

func toRecord(p *model.Patient) patientRecord {
	r := p.Report
	rec := patientRecord{
		Nric:    p.Nric.String(),
		Name:    string(p.Name),
		Phone:   string(p.Phone),
		Email:   string(p.Email),
		Address: string(p.Address),
		Report: reportRecord{
			Allergy:      r.Allergy,
			Illness:      r.Illness,
			Surgery:      r.Surgery,
			Immunization: r.Immunization,
		},
		MedicineUsages: make([]usageRecord, 0, len(r.MedicineUsages)),
	}
	for _, u := range r.MedicineUsages {
		rec.MedicineUsages = append(rec.MedicineUsages, usageRecord{
			Name:      u.Name,
			Dosage:    u.Dosage,
			StartDate: u.Start.Format(model.DateLayout),
			EndDate:   u.End.Format(model.DateLayout),
		})
	}
	return rec
}

// fromRecord validates rec with the same rules as user input.
func fromRecord(rec patientRecord) (*model.Patient, error) {
	nric, err := model.ParseNric(rec.Nric)
	if err != nil {
		return nil, corrupt(rec.Nric, err)
	}
	name, err := model.ParseName(rec.Name)
	if err != nil {
		return nil, corrupt(rec.Nric, err)
	}
	phone, err := model.ParsePhone(rec.Phone)
	if err != nil {
		return nil, corrupt(rec.Nric, err)
	}
	email, err := model.ParseEmail(rec.Email)
	if err != nil {
		return nil, corrupt(rec.Nric, err)
	}
	address, err := model.ParseAddress(rec.Address)
	if err != nil {
		return nil, corrupt(rec.Nric, err)
	}

	report, err := model.NewMedicalReport(
		orNone(rec.Report.Allergy),
		orNone(rec.Report.Illness),
		orNone(rec.Report.Surgery),
		orNone(rec.Report.Immunization),
	)
	if err != nil {
		return nil, corrupt(rec.Nric, err)
	}

	usages := make([]model.MedicineUsage, 0, len(rec.MedicineUsages))
	for _, u := range rec.MedicineUsages {
		usage, err := model.NewMedicineUsage(u.Name, u.Dosage, u.StartDate, u.EndDate)
		if err != nil {
			return nil, corrupt(rec.Nric, err)
		}
		usages = append(usages, usage)
	}

	p := model.NewPatient(nric, name, phone, email, address)
	return p.WithReport(report.WithMedicineUsages(usages)), nil
}

func fromRecords(recs []patientRecord) ([]*model.Patient, error) {
	patients := make([]*model.Patient, 0, len(recs))
	for _, rec := range recs {
		p, err := fromRecord(rec)
		if err != nil {
			return nil, err
		}
		patients = append(patients, p)
	}
	return patients, nil
}

func orNone(s string) string {
	if s == "" {
		return model.None
	}
	return s
}

func corrupt(nric string, err error) error {
	return fmt.Errorf("%w: patient %q: %v", ErrCorruptData, nric, err)
}

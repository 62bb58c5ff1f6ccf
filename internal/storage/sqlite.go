// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/medrec/internal/model"
)

// sqliteSchema creates the tables on first open.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS patients (
    id TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    nric TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    phone TEXT NOT NULL,
    email TEXT NOT NULL,
    address TEXT NOT NULL,
    allergy TEXT NOT NULL DEFAULT 'None',
    illness TEXT NOT NULL DEFAULT 'None',
    surgery TEXT NOT NULL DEFAULT 'None',
    immunization TEXT NOT NULL DEFAULT 'None'
) WITHOUT ROWID;

CREATE TABLE IF NOT EXISTS medicine_usages (
    id TEXT PRIMARY KEY,
    patient_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    dosage TEXT NOT NULL,
    start_date TEXT NOT NULL,  -- YYYY-MM-DD
    end_date TEXT NOT NULL,
    FOREIGN KEY (patient_id) REFERENCES patients(id) ON DELETE CASCADE
) WITHOUT ROWID;

CREATE INDEX IF NOT EXISTS idx_usages_patient ON medicine_usages(patient_id, position);
`

// SQLiteStore keeps the patient list in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

func (s *SQLiteStore) Path() string { return s.path }

// Load reads every patient ordered by position, with usages.
func (s *SQLiteStore) Load(ctx context.Context) ([]*model.Patient, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, nric, name, phone, email, address, allergy, illness, surgery, immunization
		FROM patients ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query patients: %w", err)
	}
	defer rows.Close()

	var ids []string
	var recs []patientRecord
	for rows.Next() {
		var id string
		var rec patientRecord
		if err := rows.Scan(&id, &rec.Nric, &rec.Name, &rec.Phone, &rec.Email, &rec.Address,
			&rec.Report.Allergy, &rec.Report.Illness, &rec.Report.Surgery, &rec.Report.Immunization); err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}
		ids = append(ids, id)
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for i, id := range ids {
		usages, err := s.loadUsages(ctx, id)
		if err != nil {
			return nil, err
		}
		recs[i].MedicineUsages = usages
	}
	return fromRecords(recs)
}

func (s *SQLiteStore) loadUsages(ctx context.Context, patientID string) ([]usageRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, dosage, start_date, end_date
		FROM medicine_usages WHERE patient_id = ? ORDER BY position`, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query medicine usages: %w", err)
	}
	defer rows.Close()

	var usages []usageRecord
	for rows.Next() {
		var u usageRecord
		if err := rows.Scan(&u.Name, &u.Dosage, &u.StartDate, &u.EndDate); err != nil {
			return nil, fmt.Errorf("failed to scan medicine usage: %w", err)
		}
		usages = append(usages, u)
	}
	return usages, rows.Err()
}

// Save replaces every row in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, patients []*model.Patient) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM medicine_usages"); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM patients"); err != nil {
		return err
	}

	patientStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO patients (id, position, nric, name, phone, email, address,
			allergy, illness, surgery, immunization)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer patientStmt.Close()

	usageStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO medicine_usages (id, patient_id, position, name, dosage, start_date, end_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer usageStmt.Close()

	for i, p := range patients {
		rec := toRecord(p)
		id := uuid.NewString()
		if _, err := patientStmt.ExecContext(ctx, id, i, rec.Nric, rec.Name, rec.Phone, rec.Email, rec.Address,
			rec.Report.Allergy, rec.Report.Illness, rec.Report.Surgery, rec.Report.Immunization); err != nil {
			return fmt.Errorf("failed to insert patient %s: %w", rec.Nric, err)
		}
		for j, u := range rec.MedicineUsages {
			if _, err := usageStmt.ExecContext(ctx, uuid.NewString(), id, j,
				u.Name, u.Dosage, u.StartDate, u.EndDate); err != nil {
				return fmt.Errorf("failed to insert medicine usage for %s: %w", rec.Nric, err)
			}
		}
	}

	return tx.Commit()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

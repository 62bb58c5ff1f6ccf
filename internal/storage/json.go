// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jeranaias/medrec/internal/model"
	"github.com/jeranaias/medrec/internal/util"
)

// jsonDocument is the top-level JSON layout.
type jsonDocument struct {
	Patients []patientRecord `json:"patients"`
}

// JSONStore keeps the patient list in one JSON file.
type JSONStore struct {
	path string
}

// NewJSONStore creates a store at path, creating its directory if needed.
func NewJSONStore(path string) (*JSONStore, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	return &JSONStore{path: path}, nil
}

func (s *JSONStore) Path() string { return s.path }

// Load reads the document. A missing file is an empty list.
func (s *JSONStore) Load(ctx context.Context) ([]*model.Patient, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []*model.Patient{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptData, s.path, err)
	}
	return fromRecords(doc.Patients)
}

// Save writes the document atomically.
func (s *JSONStore) Save(ctx context.Context, patients []*model.Patient) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := EncodeDocument(patients)
	if err != nil {
		return err
	}
	if err := util.AtomicWriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

func (s *JSONStore) Close() error { return nil }

// EncodeDocument renders patients in the layout JSONStore reads, so an
// encoded list can be opened as a data file.
func EncodeDocument(patients []*model.Patient) ([]byte, error) {
	doc := jsonDocument{Patients: make([]patientRecord, 0, len(patients))}
	for _, p := range patients {
		doc.Patients = append(doc.Patients, toRecord(p))
	}
	return json.MarshalIndent(doc, "", "  ")
}

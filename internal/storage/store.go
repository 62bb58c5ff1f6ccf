// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/medrec/internal/model"
	"github.com/jeranaias/medrec/internal/util"
)

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

var (
	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown storage backend")

	// ErrCorruptData is returned when stored data cannot be turned back
	// into valid patients.
	ErrCorruptData = errors.New("stored patient data is invalid")
)

// Store loads and saves the complete patient list.
type Store interface {
	// Load returns every stored patient in order. A store that has never
	// been saved returns an empty list.
	Load(ctx context.Context) ([]*model.Patient, error)

	// Save replaces the stored list with patients.
	Save(ctx context.Context, patients []*model.Patient) error

	// Path is the file backing the store.
	Path() string

	Close() error
}

// Open returns the store for backend at path. A leading "~" in path is
// expanded to the user's home directory.
func Open(backend, path string) (Store, error) {
	path, err := util.ExpandHome(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(backend) {
	case "", BackendJSON:
		return NewJSONStore(path)
	case BackendSQLite:
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

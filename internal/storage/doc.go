// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists the patient list between runs.
//
// Two backends are provided: a single JSON document written atomically, and
// a SQLite database. Both save the whole list at once and load it back in the
// same order.
//
// # Key Types
//
//   - Store: backend-neutral persistence interface
//   - JSONStore: JSON document backend (default)
//   - SQLiteStore: SQLite backend using the pure Go modernc driver
//
// # Usage
//
//	store, err := storage.Open(storage.BackendJSON, "~/.medrec/patients.json")
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	patients, err := store.Load(ctx)
//	...
//	err = store.Save(ctx, manager.Patients())
//
// # Storage Location
//
// By default data lives in ~/.medrec/patients.json, or ~/.medrec/patients.db
// for the SQLite backend.
package storage

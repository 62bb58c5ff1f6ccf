// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for medrec.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - StorageConfig: Where and how patient data is persisted
//   - UIConfig: Front end selection and confirmation behavior
//   - LoggingConfig, AuditConfig: Diagnostic log and audit trail
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Command-line flags (applied by the cli package)
//   - Environment variables (MEDREC_*)
//   - ~/.medrec/config.toml
//   - ~/.medrec/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	store, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path)
package config

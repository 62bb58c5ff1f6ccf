// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// app.go - Process-wide wiring: config, logging, audit trail and sessions.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jeranaias/medrec/internal/audit"
	"github.com/jeranaias/medrec/internal/config"
	"github.com/jeranaias/medrec/internal/logging"
	"github.com/jeranaias/medrec/internal/session"
	"github.com/jeranaias/medrec/internal/storage"
)

// Streams are the process's standard streams.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// GlobalFlags are accepted by every subcommand.
type GlobalFlags struct {
	ConfigPath string
	DataPath   string
	Backend    string
	Verbose    bool
}

// App holds the collaborators shared by the subcommands of one run.
type App struct {
	Config  *config.Config
	Log     zerolog.Logger
	Audit   *audit.Logger
	Streams Streams

	closers []io.Closer
}

// LoadConfig reads the configuration selected by flags and applies the
// storage overrides.
func LoadConfig(flags GlobalFlags) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if flags.ConfigPath != "" {
		cfg, err = config.LoadFromPath(flags.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	backend := strings.ToLower(strings.TrimSpace(flags.Backend))
	if backend != "" && backend != cfg.Storage.Backend {
		if cfg.Storage.Path == config.DefaultDataPath(cfg.Storage.Backend) {
			cfg.Storage.Path = config.DefaultDataPath(backend)
		}
		cfg.Storage.Backend = backend
	}
	if flags.DataPath != "" {
		cfg.Storage.Path = flags.DataPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return cfg, nil
}

// NewApp loads configuration and opens the log and the audit trail.
func NewApp(flags GlobalFlags, streams Streams) (*App, error) {
	cfg, err := LoadConfig(flags)
	if err != nil {
		return nil, err
	}

	log, logCloser, err := logging.New(logging.Options{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.File,
		Verbose: flags.Verbose,
		Stderr:  streams.Err,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	app := &App{
		Config:  cfg,
		Log:     log,
		Audit:   audit.Disabled(),
		Streams: streams,
		closers: []io.Closer{logCloser},
	}

	if cfg.Audit.Enabled {
		trail, err := audit.NewLogger(cfg.Audit.Path)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to open audit trail: %w", err)
		}
		app.Audit = trail
		app.closers = append([]io.Closer{trail}, app.closers...)
	}

	log.Debug().
		Str("backend", cfg.Storage.Backend).
		Str("data", cfg.Storage.Path).
		Bool("audit", cfg.Audit.Enabled).
		Msg("configuration loaded")
	return app, nil
}

// OpenSession opens the configured store and starts a session over it.
func (a *App) OpenSession(ctx context.Context) (*session.Manager, error) {
	store, err := storage.Open(a.Config.Storage.Backend, a.Config.Storage.Path)
	if err != nil {
		return nil, err
	}

	mgr, err := session.NewManager(ctx, session.Options{
		Store:              store,
		Audit:              a.Audit,
		Logger:             a.Log,
		Autosave:           a.Config.Storage.Autosave,
		ConfirmDestructive: a.Config.UI.ConfirmDestructive,
	})
	if err != nil {
		store.Close()
		return nil, err
	}
	return mgr, nil
}

// Close releases the audit trail and the log file.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

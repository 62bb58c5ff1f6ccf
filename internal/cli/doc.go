// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the medrec command line.
//
// The root command opens the full-screen interface on a terminal and the
// line REPL otherwise. Subcommands run lines non-interactively, manage the
// configuration file and review the audit trail.
//
// # Key Types
//
//   - App: configuration, logger and audit trail for one run
//   - REPL: liner-based line front end
//   - Streams: injectable stdin, stdout and stderr
//
// # Usage
//
//	os.Exit(cli.Main(ctx))
//
// # Commands Overview
//
//   - medrec: TUI or REPL, per ui.mode
//   - repl, tui: force a front end
//   - exec: run command lines and exit (--yes, --json, --keep-going)
//   - config: show, path, init, get, set
//   - audit: show, export, stats, path
//   - version
//
// Exit codes: 0 success, 1 general, 2 usage, 3 configuration, 7 not found.
package cli

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - Line-oriented front end with history and Tab completion.

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/medrec/internal/commands"
	"github.com/jeranaias/medrec/internal/session"
	"github.com/jeranaias/medrec/internal/util"
)

const replPrompt = "medrec> "

// REPLOptions configures a REPL.
type REPLOptions struct {
	// HistoryFile persists line history between runs. Empty disables it.
	HistoryFile string
	Theme       string

	// Interactive enables liner line editing. Otherwise lines are read
	// from Streams.In without a prompt.
	Interactive bool

	Streams Streams
}

// REPL reads command lines and runs them through a session.
type REPL struct {
	mgr     *session.Manager
	opts    REPLOptions
	line    *liner.State
	reader  *bufio.Reader
	confirm session.ConfirmFunc

	historyFile string
}

// NewREPL creates a REPL over mgr.
func NewREPL(mgr *session.Manager, opts REPLOptions) (*REPL, error) {
	r := &REPL{mgr: mgr, opts: opts}

	if opts.Interactive {
		completer := commands.NewCompleter(mgr.Parser().Registry())
		completer.NricsFn = mgr.Nrics

		r.line = liner.NewLiner()
		r.line.SetCtrlCAborts(true)
		r.line.SetCompleter(completer.CompleteLine)
		r.line.SetTabCompletionStyle(liner.TabPrints)

		if opts.HistoryFile != "" {
			path, err := util.ExpandHome(opts.HistoryFile)
			if err != nil {
				r.line.Close()
				return nil, err
			}
			r.historyFile = path
			r.loadHistory()
		}
	} else {
		r.reader = bufio.NewReader(opts.Streams.In)
	}

	// Answers come from the same input as commands.
	r.confirm = Confirmer(ConfirmationOptions{Interactive: true}, r.readAnswer)
	return r, nil
}

// =============================================================================
// INPUT HISTORY
// =============================================================================

func (r *REPL) loadHistory() {
	if f, err := os.Open(r.historyFile); err == nil {
		r.line.ReadHistory(f)
		f.Close()
	}
}

// saveHistory persists command history with 0600 permissions.
func (r *REPL) saveHistory() {
	if r.line == nil || r.historyFile == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(r.historyFile), 0700); err != nil {
		return
	}
	f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	r.line.WriteHistory(f)
}

// Close saves history and restores the terminal.
func (r *REPL) Close() {
	if r.line != nil {
		r.saveHistory()
		r.line.Close()
	}
}

// =============================================================================
// MAIN LOOP
// =============================================================================

// readLine returns the next command line. io.EOF ends the loop.
func (r *REPL) readLine() (string, error) {
	if r.line != nil {
		input, err := r.line.Prompt(replPrompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return "", io.EOF
			}
			return "", err
		}
		if strings.TrimSpace(input) != "" {
			r.line.AppendHistory(input)
		}
		return input, nil
	}

	input, err := r.reader.ReadString('\n')
	if err != nil && input == "" {
		return "", err
	}
	return strings.TrimRight(input, "\r\n"), nil
}

func (r *REPL) readAnswer(prompt string) (string, error) {
	if r.line != nil {
		return r.line.Prompt(prompt)
	}
	fmt.Fprint(r.opts.Streams.Out, prompt)
	return r.reader.ReadString('\n')
}

// Run reads and executes lines until exit or end of input.
func (r *REPL) Run(ctx context.Context) error {
	out := r.opts.Streams.Out
	if r.opts.Interactive {
		fmt.Fprintln(out, TitleStyle.Render("medrec "+Version))
		fmt.Fprintln(out, DimStyle.Render("Type 'help' for commands, 'exit' to quit. Tab completes."))
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		input, err := r.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				if r.opts.Interactive {
					fmt.Fprintln(out)
				}
				return nil
			}
			return err
		}

		if strings.TrimSpace(input) == "" {
			continue
		}
		if r.handle(ctx, input) {
			return nil
		}
	}
}

// handle runs one line and reports whether the REPL should exit.
func (r *REPL) handle(ctx context.Context, input string) bool {
	out := r.opts.Streams.Out

	result, err := r.mgr.Handle(ctx, input, r.confirm)
	if result.Feedback != "" {
		fmt.Fprintln(out, result.Feedback)
	}
	if err != nil {
		DisplayError(out, err, false)
		return false
	}

	if result.ShowHelp {
		fmt.Fprintln(out, RenderHelp(r.mgr.Parser().Registry(), r.opts.Theme, GetTerminalWidth(), r.opts.Interactive && ColorsEnabled()))
	}
	return result.Exit
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// root.go - Command tree for the medrec binary.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/jeranaias/medrec/internal/ui/records"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Execute runs the medrec command line and returns the process exit code.
func Execute(ctx context.Context, args []string, streams Streams) int {
	var jsonMode bool
	root := NewRootCommand(streams, &jsonMode)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		var shown silenced
		if !errors.As(err, &shown) {
			DisplayError(streams.Err, err, jsonMode)
		}
		return GetExitCode(err)
	}
	return ExitSuccess
}

// NewRootCommand builds the command tree. jsonMode is set when a
// subcommand runs with --json so errors can be reported the same way.
func NewRootCommand(streams Streams, jsonMode *bool) *cobra.Command {
	flags := &GlobalFlags{}

	root := &cobra.Command{
		Use:   "medrec",
		Short: "Patient records with medical reports and medicine usages",
		Long: `medrec keeps patient records, their medical reports and medicine usages.

Run without a subcommand to open the full-screen interface when attached to a
terminal, or the line REPL otherwise.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), *flags, streams, "")
		},
	}
	root.SetIn(streams.In)
	root.SetOut(streams.Out)
	root.SetErr(streams.Err)

	pf := root.PersistentFlags()
	pf.StringVar(&flags.ConfigPath, "config", "", "config file (default ~/.medrec/config.toml)")
	pf.StringVar(&flags.DataPath, "data", "", "patient data file")
	pf.StringVar(&flags.Backend, "backend", "", "storage backend: json or sqlite")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(replCmd(flags, streams))
	root.AddCommand(tuiCmd(flags, streams))
	root.AddCommand(execCmd(flags, streams, jsonMode))
	root.AddCommand(configCmd(flags, streams))
	root.AddCommand(auditCmd(flags, streams, jsonMode))
	root.AddCommand(exportCmd(flags, streams))
	root.AddCommand(versionCmd(streams))

	return root
}

func replCmd(flags *GlobalFlags, streams Streams) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the line-editing REPL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), *flags, streams, ModeREPL)
		},
	}
}

func tuiCmd(flags *GlobalFlags, streams Streams) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the full-screen interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), *flags, streams, ModeTUI)
		},
	}
}

func versionCmd(streams Streams) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(streams.Out, "medrec %s\n", Version)
			fmt.Fprintf(streams.Out, "  commit:  %s\n", GitCommit)
			fmt.Fprintf(streams.Out, "  built:   %s\n", BuildDate)
			fmt.Fprintf(streams.Out, "  go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}

// runInteractive opens a session and hands it to the selected front end.
// An empty mode defers to ui.mode.
func runInteractive(ctx context.Context, flags GlobalFlags, streams Streams, mode string) (err error) {
	app, err := NewApp(flags, streams)
	if err != nil {
		return err
	}
	defer app.Close()

	mgr, err := app.OpenSession(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := mgr.Close(ctx); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if mode == "" {
		mode = app.Config.UI.Mode
	}
	mode = ResolveMode(mode, IsTTY(), IsStdoutTTY())
	app.Log.Debug().Str("mode", mode).Msg("starting front end")

	if mode == ModeTUI {
		return records.Run(ctx, mgr, records.Options{
			Theme: app.Config.UI.Theme,
			Help: func(width int) string {
				return RenderHelp(mgr.Parser().Registry(), app.Config.UI.Theme, width, true)
			},
		})
	}

	repl, err := NewREPL(mgr, REPLOptions{
		HistoryFile: app.Config.UI.HistoryFile,
		Theme:       app.Config.UI.Theme,
		Interactive: IsTTY(),
		Streams:     streams,
	})
	if err != nil {
		return err
	}
	defer repl.Close()
	return repl.Run(ctx)
}

// defaultStreams returns the process's standard streams.
func defaultStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Main runs medrec with the process arguments and standard streams.
func Main(ctx context.Context) int {
	return Execute(ctx, os.Args[1:], defaultStreams())
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// export_cmd.go - "medrec export": write the patient list as JSON, Markdown or HTML.

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeranaias/medrec/internal/export"
	"github.com/jeranaias/medrec/internal/storage"
	"github.com/jeranaias/medrec/internal/util"
)

func exportCmd(flags *GlobalFlags, streams Streams) *cobra.Command {
	var (
		format     string
		dir        string
		stdout     bool
		open       bool
		noMetadata bool
		theme      string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export patient records as JSON, Markdown or HTML",
		Long: `Export the stored patient records.

JSON exports use the data file layout and can be opened again with --data.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(*flags)
			if err != nil {
				return err
			}

			source, err := util.ExpandHome(cfg.Storage.Path)
			if err != nil {
				return err
			}
			opts := export.DefaultOptions()
			opts.OutputDir = dir
			opts.OpenAfterExport = open && !stdout
			opts.IncludeMetadata = !noMetadata
			opts.Source = source
			opts.Theme = theme
			if opts.Theme == "" {
				opts.Theme = cfg.UI.Theme
			}

			exporter, err := export.New(format, opts)
			if errors.Is(err, export.ErrUnsupportedFormat) {
				return &UsageError{Reason: err.Error(), Example: "medrec export --format markdown"}
			}
			if err != nil {
				return err
			}

			store, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			patients, err := store.Load(cmd.Context())
			if err != nil {
				return err
			}

			if stdout {
				if !IsTerminalWriter(streams.Out) {
					return export.Write(streams.Out, patients, exporter)
				}
				content, err := exporter.Export(patients)
				if err != nil {
					return fmt.Errorf("export failed: %w", err)
				}
				fmt.Fprint(streams.Out, Highlight(string(content), lexerFor(exporter), opts.Theme))
				return nil
			}
			path, err := export.ExportToFile(patients, exporter, opts)
			if err != nil && path == "" {
				return err
			}
			fmt.Fprintf(streams.Out, "%s Exported %d %s to %s\n", SuccessStyle.Render("OK"),
				len(patients), util.Pluralize(len(patients), "patient", "patients"), path)
			if err != nil {
				fmt.Fprintf(streams.Err, "%s %v\n", WarningStyle.Render("Warning"), err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", export.FormatMarkdown, "json, markdown or html")
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "directory for the export file")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "write to stdout instead of a file")
	cmd.Flags().BoolVar(&open, "open", false, "open the file in the default application")
	cmd.Flags().BoolVar(&noMetadata, "no-metadata", false, "omit export time, counts and source")
	cmd.Flags().StringVar(&theme, "theme", "", "HTML theme: dark or light (default ui.theme)")
	return cmd
}

// lexerFor names the chroma lexer for an exporter's output.
func lexerFor(e export.Exporter) string {
	switch e.FileExtension() {
	case ".json":
		return "json"
	case ".md":
		return "markdown"
	case ".html":
		return "html"
	default:
		return ""
	}
}

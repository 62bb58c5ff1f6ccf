// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// audit_cmd.go - "medrec audit": review the command audit trail.

package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/medrec/internal/audit"
	"github.com/jeranaias/medrec/internal/util"
)

// AuditFilter selects events for display or export.
type AuditFilter struct {
	Since   time.Time
	Command string
	Outcome string
	Limit   int
}

func auditCmd(flags *GlobalFlags, streams Streams, jsonMode *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Review the command audit trail",
	}

	var (
		lines    int
		since    string
		command  string
		outcome  string
		showJSON bool
	)
	show := &cobra.Command{
		Use:   "show",
		Short: "Show recent audit events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			*jsonMode = showJSON
			filter, path, err := auditQuery(*flags, since, command, outcome, lines)
			if err != nil {
				return err
			}
			events, err := readFiltered(path, filter)
			if err != nil {
				return err
			}
			if showJSON {
				return NewJSONResponse("audit show", map[string]any{
					"entries": events,
					"count":   len(events),
					"path":    path,
				}).Print(streams.Out)
			}
			printEvents(streams.Out, events, path)
			return nil
		},
	}
	show.Flags().IntVarP(&lines, "lines", "n", 50, "number of most recent events")
	show.Flags().StringVar(&since, "since", "", "only events after a date or duration (e.g. 2025-01-31, 24h, 7d)")
	show.Flags().StringVar(&command, "command", "", "only events for this command word")
	show.Flags().StringVar(&outcome, "outcome", "", "only success, failure or cancelled")
	show.Flags().BoolVar(&showJSON, "json", false, "output as JSON")

	var format, output string
	export := &cobra.Command{
		Use:   "export",
		Short: "Export the audit trail as JSON or CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, path, err := auditQuery(*flags, since, command, outcome, 0)
			if err != nil {
				return err
			}
			events, err := readFiltered(path, filter)
			if err != nil {
				return err
			}

			w := streams.Out
			if output != "" {
				f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
				if err != nil {
					return fmt.Errorf("failed to create export file: %w", err)
				}
				defer f.Close()
				w = f
			}

			switch strings.ToLower(format) {
			case "json":
				return exportJSON(events, w)
			case "csv":
				return exportCSV(events, w)
			default:
				return &UsageError{Reason: "unsupported format: " + format, Example: "medrec audit export --format csv"}
			}
		},
	}
	export.Flags().StringVar(&format, "format", "json", "json or csv")
	export.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	export.Flags().StringVar(&since, "since", "", "only events after a date or duration")
	export.Flags().StringVar(&command, "command", "", "only events for this command word")
	export.Flags().StringVar(&outcome, "outcome", "", "only success, failure or cancelled")

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the audit trail",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, path, err := auditQuery(*flags, "", "", "", 0)
			if err != nil {
				return err
			}
			events, err := audit.ReadEvents(path)
			if err != nil {
				return err
			}
			printStats(streams.Out, ComputeAuditStats(events), path)
			return nil
		},
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the audit trail path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(*flags)
			if err != nil {
				return err
			}
			p, err := util.ExpandHome(cfg.Audit.Path)
			if err != nil {
				return err
			}
			fmt.Fprintln(streams.Out, p)
			if !cfg.Audit.Enabled {
				fmt.Fprintf(streams.Err, "%s audit trail is disabled (medrec config set audit.enabled true)\n", WarningStyle.Render("Note"))
			}
			return nil
		},
	}

	cmd.AddCommand(show, export, stats, path)
	return cmd
}

func auditQuery(flags GlobalFlags, since, command, outcome string, limit int) (AuditFilter, string, error) {
	cfg, err := LoadConfig(flags)
	if err != nil {
		return AuditFilter{}, "", err
	}
	filter := AuditFilter{Command: strings.ToLower(command), Outcome: strings.ToLower(outcome), Limit: limit}
	if since != "" {
		filter.Since, err = ParseSince(since, time.Now())
		if err != nil {
			return AuditFilter{}, "", err
		}
	}
	return filter, cfg.Audit.Path, nil
}

func readFiltered(path string, filter AuditFilter) ([]audit.Event, error) {
	events, err := audit.ReadEvents(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audit trail: %w", err)
	}
	return FilterEvents(events, filter), nil
}

// FilterEvents returns the matching events in chronological order, keeping
// only the newest Limit when Limit is positive.
func FilterEvents(events []audit.Event, filter AuditFilter) []audit.Event {
	var matched []audit.Event
	for _, ev := range events {
		if !filter.Since.IsZero() && ev.Timestamp.Before(filter.Since) {
			continue
		}
		if filter.Command != "" && ev.Command != filter.Command {
			continue
		}
		if filter.Outcome != "" && string(ev.Outcome) != filter.Outcome {
			continue
		}
		matched = append(matched, ev)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.Before(matched[j].Timestamp)
	})
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[len(matched)-filter.Limit:]
	}
	return matched
}

var relativeTimeRegex = regexp.MustCompile(`^(\d+)([smhd])$`)

// ParseSince accepts a date, a timestamp or a duration back from now.
func ParseSince(s string, now time.Time) (time.Time, error) {
	formats := []string{
		"2006-01-02",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		time.RFC3339,
	}
	for _, format := range formats {
		if t, err := time.ParseInLocation(format, s, time.Local); err == nil {
			return t, nil
		}
	}

	matches := relativeTimeRegex.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if len(matches) != 3 {
		return time.Time{}, &UsageError{
			Reason:  "invalid date format: " + s,
			Example: "--since 2025-01-31, --since \"2025-01-31 09:00:00\" or --since 24h",
		}
	}
	value, _ := strconv.Atoi(matches[1])
	unit := map[string]time.Duration{
		"s": time.Second,
		"m": time.Minute,
		"h": time.Hour,
		"d": 24 * time.Hour,
	}[matches[2]]
	return now.Add(-time.Duration(value) * unit), nil
}

// =============================================================================
// OUTPUT
// =============================================================================

func printEvents(w io.Writer, events []audit.Event, path string) {
	if len(events) == 0 {
		fmt.Fprintln(w, DimStyle.Render("No audit events found matching the specified criteria."))
		return
	}

	fmt.Fprintln(w, TitleStyle.Render("Audit Trail"))
	for _, ev := range events {
		fmt.Fprintf(w, "%s  %-13s", DimStyle.Render(ev.Timestamp.Local().Format("2006-01-02 15:04:05")), ev.Type)
		if ev.Command != "" {
			fmt.Fprintf(w, "  %-9s", ev.Command)
		}
		if ev.Target != "" {
			fmt.Fprintf(w, "  %s", ev.Target)
		}
		if ev.Outcome != "" {
			fmt.Fprintf(w, "  %s", RenderOutcome(string(ev.Outcome)))
		}
		fmt.Fprintln(w)
		if ev.Error != "" {
			fmt.Fprintf(w, "           %s %s\n", ErrorStyle.Render("Error:"), firstLine(ev.Error))
		}
	}
	fmt.Fprintf(w, "\nShowing %d %s from: %s\n", len(events), util.Pluralize(len(events), "event", "events"), DimStyle.Render(path))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func exportJSON(events []audit.Event, w io.Writer) error {
	data := map[string]any{
		"export_time": time.Now().Format(time.RFC3339),
		"entry_count": len(events),
		"format":      "medrec-audit-v1",
		"entries":     events,
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func exportCSV(events []audit.Event, w io.Writer) error {
	writer := csv.NewWriter(w)

	header := []string{"id", "timestamp", "event", "session", "command", "target", "outcome", "error"}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, ev := range events {
		record := []string{
			ev.ID,
			ev.Timestamp.Format(time.RFC3339),
			ev.Type,
			ev.SessionID,
			ev.Command,
			ev.Target,
			string(ev.Outcome),
			ev.Error,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// AuditStats summarizes an audit trail.
type AuditStats struct {
	Total         int
	Sessions      int
	CommandCounts map[string]int
	OutcomeCounts map[audit.Outcome]int
	Oldest        time.Time
	Newest        time.Time
}

// ComputeAuditStats summarizes events.
func ComputeAuditStats(events []audit.Event) AuditStats {
	stats := AuditStats{
		Total:         len(events),
		CommandCounts: make(map[string]int),
		OutcomeCounts: make(map[audit.Outcome]int),
	}
	sessions := make(map[string]bool)
	for _, ev := range events {
		sessions[ev.SessionID] = true
		if ev.Type == audit.EventCommand {
			stats.CommandCounts[ev.Command]++
			stats.OutcomeCounts[ev.Outcome]++
		}
		if stats.Oldest.IsZero() || ev.Timestamp.Before(stats.Oldest) {
			stats.Oldest = ev.Timestamp
		}
		if ev.Timestamp.After(stats.Newest) {
			stats.Newest = ev.Timestamp
		}
	}
	stats.Sessions = len(sessions)
	return stats
}

func printStats(w io.Writer, stats AuditStats, path string) {
	fmt.Fprintln(w, TitleStyle.Render("Audit Statistics"))
	fmt.Fprintf(w, "%s%d\n", RenderLabel("Events:"), stats.Total)
	fmt.Fprintf(w, "%s%d\n", RenderLabel("Sessions:"), stats.Sessions)
	if stats.Total > 0 {
		fmt.Fprintf(w, "%s%s\n", RenderLabel("Oldest:"), stats.Oldest.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(w, "%s%s\n", RenderLabel("Newest:"), stats.Newest.Local().Format("2006-01-02 15:04:05"))
	}

	for _, outcome := range []audit.Outcome{audit.OutcomeSuccess, audit.OutcomeFailure, audit.OutcomeCancelled} {
		fmt.Fprintf(w, "%s%d\n", RenderLabel(string(outcome)+":"), stats.OutcomeCounts[outcome])
	}

	words := make([]string, 0, len(stats.CommandCounts))
	for word := range stats.CommandCounts {
		words = append(words, word)
	}
	sort.Strings(words)
	if len(words) > 0 {
		fmt.Fprintln(w, "\nBy command:")
		for _, word := range words {
			fmt.Fprintf(w, "  %s%d\n", RenderLabel(word, 12), stats.CommandCounts[word])
		}
	}
	fmt.Fprintf(w, "\nTrail: %s\n", DimStyle.Render(path))
}

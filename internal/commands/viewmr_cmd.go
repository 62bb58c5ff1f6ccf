// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"strings"

	"github.com/jeranaias/medrec/internal/model"
)

const (
	ViewReportWord  = "viewmr"
	ViewReportUsage = ViewReportWord + ": Shows the medical report of a patient identified by NRIC, OR by the " +
		"index number used in the displayed patient list. However, it cannot be both NRIC and index.\n" +
		"Parameters for first method: n/NRIC\n" +
		"Example: " + ViewReportWord + " n/S1234567A\n" +
		"Parameters for second method: INDEX (must be a positive integer)\n" +
		"Example: " + ViewReportWord + " 1"
)

func viewReportSpec() *Spec {
	return &Spec{
		Word:       ViewReportWord,
		Summary:    "Show a patient's medical report",
		Usage:      ViewReportUsage,
		Category:   CategoryReports,
		Prefixes:   []Prefix{PrefixNric},
		TakesIndex: true,
		Parse:      parseViewReport,
	}
}

// ViewMedicalReportCommand renders a patient's report. It never mutates.
type ViewMedicalReportCommand struct {
	target Target
}

// NewViewMedicalReportCommand creates the command for t.
func NewViewMedicalReportCommand(t Target) *ViewMedicalReportCommand {
	return &ViewMedicalReportCommand{target: mustTarget(t)}
}

func parseViewReport(args string) (Command, error) {
	t, err := parseTarget(Tokenize(args, PrefixNric), ViewReportUsage)
	if err != nil {
		return nil, err
	}
	return NewViewMedicalReportCommand(t), nil
}

func (c *ViewMedicalReportCommand) Word() string { return ViewReportWord }

// Target returns the patient selector.
func (c *ViewMedicalReportCommand) Target() Target { return c.target }

func (c *ViewMedicalReportCommand) Execute(m Model) (Result, error) {
	p, err := resolveTarget(m, c.target)
	if err != nil {
		return Result{}, err
	}
	return Result{Feedback: FormatReport(p)}, nil
}

func (c *ViewMedicalReportCommand) Equal(other Command) bool {
	o, ok := other.(*ViewMedicalReportCommand)
	return ok && sameTarget(c.target, o.target)
}

// FormatReport renders a patient's medical report as plain text.
func FormatReport(p *model.Patient) string {
	var b strings.Builder
	r := p.Report
	fmt.Fprintf(&b, "Medical report for %s (%s)\n", p.Name, p.Nric)
	fmt.Fprintf(&b, "  Allergy:      %s\n", r.Allergy)
	fmt.Fprintf(&b, "  Illness:      %s\n", r.Illness)
	fmt.Fprintf(&b, "  Surgery:      %s\n", r.Surgery)
	fmt.Fprintf(&b, "  Immunization: %s\n", r.Immunization)
	if len(r.MedicineUsages) == 0 {
		b.WriteString("  Medicine usages: None")
		return b.String()
	}
	b.WriteString("  Medicine usages:")
	for i, u := range r.MedicineUsages {
		fmt.Fprintf(&b, "\n    %d. %s", i+1, u)
	}
	return b.String()
}

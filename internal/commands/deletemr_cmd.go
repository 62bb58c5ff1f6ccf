// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import "github.com/jeranaias/medrec/internal/model"

const (
	DeleteReportWord  = "deletemr"
	DeleteReportUsage = DeleteReportWord + ": Resets the medical report of a patient identified by NRIC, OR by the " +
		"index number used in the displayed patient list. However, it cannot be both NRIC and index. " +
		"Medicine usages are kept.\n" +
		"Parameters for first method: n/NRIC\n" +
		"Example: " + DeleteReportWord + " n/S1234567A\n" +
		"Parameters for second method: INDEX (must be a positive integer)\n" +
		"Example: " + DeleteReportWord + " 1"

	MessageDeleteReportNric      = "Medical report deleted from %s"
	MessageDeleteReportIndex     = "Medical report deleted from patient at index %d"
	MessageNoReportToDeleteNric  = "Patient with NRIC %s has no medical report to delete!"
	MessageNoReportToDeleteIndex = "Patient at index %d has no medical report to delete!"
)

func deleteReportSpec() *Spec {
	return &Spec{
		Word:       DeleteReportWord,
		Summary:    "Reset a patient's medical report",
		Usage:      DeleteReportUsage,
		Category:   CategoryReports,
		Prefixes:   []Prefix{PrefixNric},
		TakesIndex: true,
		Parse:      parseDeleteReport,
	}
}

// DeleteMedicalReportCommand sets the four report fields back to None.
type DeleteMedicalReportCommand struct {
	target Target
}

// NewDeleteMedicalReportCommand creates the command for t.
func NewDeleteMedicalReportCommand(t Target) *DeleteMedicalReportCommand {
	return &DeleteMedicalReportCommand{target: mustTarget(t)}
}

func parseDeleteReport(args string) (Command, error) {
	t, err := parseTarget(Tokenize(args, PrefixNric), DeleteReportUsage)
	if err != nil {
		return nil, err
	}
	return NewDeleteMedicalReportCommand(t), nil
}

func (c *DeleteMedicalReportCommand) Word() string { return DeleteReportWord }

// Target returns the patient selector.
func (c *DeleteMedicalReportCommand) Target() Target { return c.target }

func (c *DeleteMedicalReportCommand) RequiresConfirmation() bool { return true }

func (c *DeleteMedicalReportCommand) Execute(m Model) (Result, error) {
	p, err := resolveTarget(m, c.target)
	if err != nil {
		return Result{}, err
	}
	if p.Report.IsEmpty() {
		return Result{Feedback: targetMessage(c.target, MessageNoReportToDeleteNric, MessageNoReportToDeleteIndex)}, nil
	}
	if err := m.SetMedicalReport(p.Nric, model.EmptyMedicalReport()); err != nil {
		return Result{}, err
	}
	return Result{Feedback: targetMessage(c.target, MessageDeleteReportNric, MessageDeleteReportIndex)}, nil
}

func (c *DeleteMedicalReportCommand) Equal(other Command) bool {
	o, ok := other.(*DeleteMedicalReportCommand)
	return ok && sameTarget(c.target, o.target)
}

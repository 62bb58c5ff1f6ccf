// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

const (
	ClearUsageWord  = "clearmu"
	ClearUsageUsage = ClearUsageWord + ": Clears all medicine usages of a patient identified by NRIC, OR by the " +
		"index number used in the displayed patient list. However, it cannot be both NRIC and index.\n" +
		"Parameters for first method: n/NRIC\n" +
		"Example: " + ClearUsageWord + " n/S1234567A\n" +
		"Parameters for second method: INDEX (must be a positive integer)\n" +
		"Example: " + ClearUsageWord + " 1"

	MessageClearUsageNric      = "Medicine usage successfully deleted from %s"
	MessageClearUsageIndex     = "Medicine usage successfully deleted from patient at index %d"
	MessageClearUsagesNric     = "Medicine usages successfully deleted from %s"
	MessageClearUsagesIndex    = "Medicine usages successfully deleted from patient at index %d"
	MessageNoUsageToClearNric  = "Patient with NRIC %s has no medicine usages to clear!"
	MessageNoUsageToClearIndex = "Patient at index %d has no medicine usages to clear!"
)

func clearUsageSpec() *Spec {
	return &Spec{
		Word:       ClearUsageWord,
		Summary:    "Delete all of a patient's medicine usages",
		Usage:      ClearUsageUsage,
		Category:   CategoryUsages,
		Prefixes:   []Prefix{PrefixNric},
		TakesIndex: true,
		Parse:      parseClearUsage,
	}
}

// ClearMedicineUsageCommand removes every medicine usage of one patient.
type ClearMedicineUsageCommand struct {
	target Target
}

// NewClearMedicineUsageCommand creates the command for t. It panics if t is nil.
func NewClearMedicineUsageCommand(t Target) *ClearMedicineUsageCommand {
	return &ClearMedicineUsageCommand{target: mustTarget(t)}
}

func parseClearUsage(args string) (Command, error) {
	t, err := parseTarget(Tokenize(args, PrefixNric), ClearUsageUsage)
	if err != nil {
		return nil, err
	}
	return NewClearMedicineUsageCommand(t), nil
}

func (c *ClearMedicineUsageCommand) Word() string { return ClearUsageWord }

// Target returns the patient selector.
func (c *ClearMedicineUsageCommand) Target() Target { return c.target }

// RequiresConfirmation is always true: clearing usages cannot be undone.
func (c *ClearMedicineUsageCommand) RequiresConfirmation() bool { return true }

func (c *ClearMedicineUsageCommand) Execute(m Model) (Result, error) {
	p, err := resolveTarget(m, c.target)
	if err != nil {
		return Result{}, err
	}

	var byNric, byIndex string
	switch n := len(p.MedicineUsages()); {
	case n == 0:
		return Result{Feedback: targetMessage(c.target, MessageNoUsageToClearNric, MessageNoUsageToClearIndex)}, nil
	case n == 1:
		byNric, byIndex = MessageClearUsageNric, MessageClearUsageIndex
	default:
		byNric, byIndex = MessageClearUsagesNric, MessageClearUsagesIndex
	}

	if err := m.ClearMedicineUsage(p); err != nil {
		return Result{}, err
	}
	return Result{Feedback: targetMessage(c.target, byNric, byIndex)}, nil
}

func (c *ClearMedicineUsageCommand) Equal(other Command) bool {
	o, ok := other.(*ClearMedicineUsageCommand)
	return ok && sameTarget(c.target, o.target)
}

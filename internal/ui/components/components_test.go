// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/medrec/internal/commands"
	"github.com/jeranaias/medrec/internal/model"
	"github.com/jeranaias/medrec/internal/session"
	"github.com/jeranaias/medrec/internal/ui/styles"
)

func plainTheme(width int) *styles.Theme {
	theme := styles.PlainTheme(styles.ThemeDark)
	theme.SetSize(width, 30)
	return theme
}

func samplePatients(t *testing.T) []*model.Patient {
	t.Helper()
	alex := model.NewPatient(model.MustParseNric("S1234567A"), "Alex Yeoh", "87438807", "alexyeoh@example.com", "Blk 30 Geylang Street 29")
	bernice := model.NewPatient(model.MustParseNric("T7654321B"), "Bernice Yu", "99272758", "berniceyu@example.com", "Blk 30 Lorong 3 Serangoon Gardens")

	usage, err := model.NewMedicineUsage("Paracetamol", "2 tablets", "2024-01-01", "2024-01-10")
	require.NoError(t, err)
	bernice = bernice.WithReport(bernice.Report.WithMedicineUsages([]model.MedicineUsage{usage}))

	return []*model.Patient{alex, bernice}
}

// =============================================================================
// PATIENT TABLE TESTS
// =============================================================================

func TestPatientTable_Empty(t *testing.T) {
	table := NewPatientTable(plainTheme(120))
	table.SetWidth(120)

	assert.Equal(t, 0, table.Len())
	assert.Contains(t, table.View(), "No patients to show")
}

func TestPatientTable_Layouts(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		want    []string
		notWant []string
	}{
		{"narrow", 50, []string{"#", "NRIC", "Name", "Alex Yeoh"}, []string{"Phone", "Email", "Address"}},
		{"medium", 80, []string{"Phone", "Report", "87438807", "yes, 1 rx"}, []string{"Email", "Address"}},
		{"wide", 160, []string{"Email", "Address", "alexyeoh@example.com", "Blk 30 Geylang Street 29"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewPatientTable(plainTheme(tt.width))
			table.SetWidth(tt.width)
			table.SetPatients(samplePatients(t))

			view := table.View()
			for _, s := range tt.want {
				assert.Contains(t, view, s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, view, s)
			}
			for _, line := range strings.Split(view, "\n") {
				assert.LessOrEqual(t, lipgloss.Width(line), tt.width, "line overflows: %q", line)
			}
		})
	}
}

func TestPatientTable_OneBasedIndices(t *testing.T) {
	table := NewPatientTable(plainTheme(80))
	table.SetWidth(80)
	table.SetPatients(samplePatients(t))

	lines := strings.Split(table.View(), "\n")
	require.GreaterOrEqual(t, len(lines), 3)

	last := lines[len(lines)-1]
	assert.True(t, strings.HasPrefix(last, "2 "), "last row starts with its index: %q", last)
	assert.Contains(t, last, "T7654321B")
	assert.Contains(t, lines[len(lines)-2], "S1234567A")
}

func TestPatientTable_TruncatesLongValues(t *testing.T) {
	long := model.NewPatient(model.MustParseNric("S1234567A"), model.Name(strings.Repeat("Ab", 60)), "87438807", "a@example.com", "Somewhere")

	table := NewPatientTable(plainTheme(60))
	table.SetWidth(60)
	table.SetPatients([]*model.Patient{long})

	view := table.View()
	assert.Contains(t, view, "...")
	for _, line := range strings.Split(view, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 60)
	}
}

func TestReportSummary(t *testing.T) {
	patients := samplePatients(t)
	assert.Equal(t, "-", reportSummary(patients[0]))
	assert.Equal(t, "yes, 1 rx", reportSummary(patients[1]))

	report, err := model.NewMedicalReport("Peanuts", model.None, model.None, model.None)
	require.NoError(t, err)
	assert.Equal(t, "yes, 0 rx", reportSummary(patients[0].WithReport(report)))
}

// =============================================================================
// COMPLETION POPUP TESTS
// =============================================================================

func TestCompletionPopup_Hidden(t *testing.T) {
	state := commands.NewCompletionState()
	popup := NewCompletionPopup(plainTheme(80), state)

	assert.False(t, popup.Visible())
	assert.Empty(t, popup.View())
	assert.Empty(t, popup.ViewCompact())
}

func TestCompletionPopup_View(t *testing.T) {
	state := commands.NewCompletionState()
	state.Update("cl", []commands.Completion{
		{Value: "clear", Description: "Clears all patient records"},
		{Value: "clearmu", Description: "Clears medicine usages"},
	})
	state.Next()

	popup := NewCompletionPopup(plainTheme(80), state)
	view := popup.View()

	assert.Contains(t, view, "clear")
	assert.Contains(t, view, "> clearmu")
	assert.Contains(t, view, "Clears all patient")
	assert.Equal(t, "Tab: 2 completions", popup.ViewCompact())
}

func TestCompletionPopup_ScrollWindow(t *testing.T) {
	var completions []commands.Completion
	for _, v := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		completions = append(completions, commands.Completion{Value: "n/S000000" + v})
	}
	state := commands.NewCompletionState()
	state.Update("viewmr n/", completions)
	for i := 0; i < 7; i++ {
		state.Next()
	}

	popup := NewCompletionPopup(plainTheme(80), state)
	popup.SetMaxVisible(3)
	view := popup.View()

	assert.Contains(t, view, "> n/S000000h")
	assert.NotContains(t, view, "n/S000000a")
	assert.Contains(t, view, "5 more")
}

func TestCompletionPopup_Single(t *testing.T) {
	state := commands.NewCompletionState()
	state.Update("viewm", []commands.Completion{{Value: "viewmr"}})

	popup := NewCompletionPopup(plainTheme(80), state)
	assert.Equal(t, `Tab: complete "viewmr"`, popup.ViewCompact())
}

// =============================================================================
// STATUS BAR TESTS
// =============================================================================

func TestStatusBar_View(t *testing.T) {
	status := session.Status{
		Patients:     3,
		Displayed:    1,
		IsDirty:      true,
		StorePath:    "/home/u/.medrec/patients.json",
		Duration:     90 * time.Second,
		AuditEnabled: true,
	}

	tests := []struct {
		name    string
		width   int
		want    []string
		notWant []string
	}{
		{"narrow", 50, []string{"1 patient of 3", "unsaved"}, []string{"patients.json", "audit on"}},
		{"medium", 80, []string{"patients.json"}, []string{"audit on"}},
		{"wide", 140, []string{"audit on", "session 1m"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewStatusBar(plainTheme(tt.width))
			bar.SetWidth(tt.width)
			bar.SetStatus(status)

			view := bar.View()
			for _, s := range tt.want {
				assert.Contains(t, view, s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, view, s)
			}
		})
	}
}

func TestStatusBar_SavedAndShortcuts(t *testing.T) {
	bar := NewStatusBar(plainTheme(100))
	bar.SetWidth(100)
	bar.Shortcuts = []Shortcut{{Key: "Tab", Desc: "complete"}, {Key: "Esc", Desc: "quit"}}
	bar.SetStatus(session.Status{Patients: 2, Displayed: 2})

	view := bar.View()
	assert.Contains(t, view, "2 patients")
	assert.NotContains(t, view, " of ")
	assert.Contains(t, view, "saved")
	assert.Contains(t, view, "Tab complete")
	assert.Contains(t, view, "Esc quit")
}

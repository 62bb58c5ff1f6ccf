// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/jeranaias/medrec/internal/model"
	"github.com/jeranaias/medrec/internal/ui/styles"
	"github.com/jeranaias/medrec/internal/util"
)

// =============================================================================
// PATIENT TABLE COMPONENT
// =============================================================================

// EmptyTableText is shown when no patient is displayed.
const EmptyTableText = "No patients to show. Add one with: add n/NRIC nm/NAME p/PHONE e/EMAIL a/ADDRESS"

const (
	nricColumnWidth   = 9
	phoneColumnWidth  = 15
	reportColumnWidth = 10
	columnGap         = 2
)

// column is one table column. A zero width is shared out of the
// remaining space.
type column struct {
	title string
	width int
	value func(p *model.Patient) string
}

// PatientTable renders the displayed patient list.
type PatientTable struct {
	theme    *styles.Theme
	patients []*model.Patient
	width    int
}

// NewPatientTable creates an empty table.
func NewPatientTable(theme *styles.Theme) *PatientTable {
	return &PatientTable{theme: theme, width: 80}
}

// SetPatients replaces the rows. Row i is shown with index i+1.
func (t *PatientTable) SetPatients(patients []*model.Patient) {
	t.patients = patients
}

// SetWidth sets the available width in columns. Which columns are shown
// follows the theme's layout mode.
func (t *PatientTable) SetWidth(width int) {
	t.width = width
}

// Len returns the number of rows.
func (t *PatientTable) Len() int {
	return len(t.patients)
}

// View renders the header and one line per patient.
func (t *PatientTable) View() string {
	if len(t.patients) == 0 {
		return t.theme.TableEmpty.Render(util.TruncateWidth(EmptyTableText, max(t.width-4, 10)))
	}

	cols := t.layout()

	var b strings.Builder
	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.title
	}
	b.WriteString(t.theme.TableHeader.Render(t.renderRow(cols, titles)))

	for i, p := range t.patients {
		b.WriteByte('\n')
		cells := make([]string, len(cols))
		for j, c := range cols {
			if j == 0 {
				cells[j] = strconv.Itoa(i + 1)
				continue
			}
			cells[j] = c.value(p)
		}
		line := t.renderRow(cols, cells)
		if i%2 == 1 {
			b.WriteString(t.theme.TableRowAlt.Render(line))
		} else {
			b.WriteString(t.theme.TableRow.Render(line))
		}
	}
	return b.String()
}

func (t *PatientTable) renderRow(cols []column, cells []string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = util.PadRight(util.TruncateWidth(cells[i], c.width), c.width)
	}
	return strings.TrimRight(strings.Join(parts, strings.Repeat(" ", columnGap)), " ")
}

// layout picks the columns that fit the width and sizes the flexible ones.
func (t *PatientTable) layout() []column {
	indexWidth := len(strconv.Itoa(len(t.patients)))
	if indexWidth < 2 {
		indexWidth = 2
	}

	cols := []column{
		{title: "#", width: indexWidth},
		{title: "NRIC", width: nricColumnWidth, value: func(p *model.Patient) string { return p.Nric.String() }},
		{title: "Name", value: func(p *model.Patient) string { return string(p.Name) }},
	}

	mode := t.theme.GetLayoutMode()
	if mode != styles.LayoutNarrow {
		cols = append(cols,
			column{title: "Phone", width: phoneColumnWidth, value: func(p *model.Patient) string { return string(p.Phone) }},
			column{title: "Report", width: reportColumnWidth, value: reportSummary},
		)
	}
	if mode == styles.LayoutWide {
		cols = append(cols,
			column{title: "Email", value: func(p *model.Patient) string { return string(p.Email) }},
			column{title: "Address", value: func(p *model.Patient) string { return string(p.Address) }},
		)
	}

	fixed, flexible := 0, 0
	for _, c := range cols {
		fixed += c.width
		if c.width == 0 {
			flexible++
		}
	}
	fixed += columnGap * (len(cols) - 1)

	share := 10
	if flexible > 0 && t.width-fixed > share*flexible {
		share = (t.width - fixed) / flexible
	}
	for i := range cols {
		if cols[i].width == 0 {
			cols[i].width = share
		}
	}
	return cols
}

// reportSummary is "-" for an empty report, else the usage count.
func reportSummary(p *model.Patient) string {
	usages := len(p.MedicineUsages())
	if p.Report.IsEmpty() && usages == 0 {
		return "-"
	}
	return "yes, " + strconv.Itoa(usages) + " rx"
}

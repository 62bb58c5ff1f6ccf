// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/medrec/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports patients to Markdown.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export renders one section per patient.
func (e *MarkdownExporter) Export(patients []*model.Patient) ([]byte, error) {
	var sb strings.Builder
	exported := e.options.now()

	// YAML frontmatter with metadata
	if e.options.IncludeMetadata {
		sb.WriteString("---\n")
		sb.WriteString("title: Patient records\n")
		sb.WriteString(fmt.Sprintf("exported: %s\n", exported.Format(time.RFC3339)))
		sb.WriteString(fmt.Sprintf("patients: %d\n", len(patients)))
		sb.WriteString(fmt.Sprintf("medicine_usages: %d\n", usageCount(patients)))
		if e.options.Source != "" {
			sb.WriteString(fmt.Sprintf("source: %s\n", escapeYAML(e.options.Source)))
		}
		sb.WriteString("generator: medrec\n")
		sb.WriteString("---\n\n")
	}

	sb.WriteString("# Patient records\n\n")

	if len(patients) == 0 {
		sb.WriteString("_No patients recorded._\n")
		return []byte(sb.String()), nil
	}

	// Summary table
	sb.WriteString("| # | NRIC | Name | Phone | Email |\n")
	sb.WriteString("|---|------|------|-------|-------|\n")
	for i, p := range patients {
		sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s |\n",
			i+1, p.Nric, escapeCell(string(p.Name)), p.Phone, escapeCell(string(p.Email))))
	}
	sb.WriteString("\n")

	for i, p := range patients {
		sb.WriteString("---\n\n")
		sb.WriteString(e.formatPatient(i+1, p))
	}

	if e.options.IncludeMetadata {
		sb.WriteString("---\n\n")
		sb.WriteString(fmt.Sprintf("*Exported from medrec on %s*\n", formatTimestamp(exported)))
	}

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// =============================================================================
// FORMATTING HELPERS
// =============================================================================

func (e *MarkdownExporter) formatPatient(n int, p *model.Patient) string {
	var sb strings.Builder
	r := p.Report

	sb.WriteString(fmt.Sprintf("## %d. %s (%s)\n\n", n, escapeMarkdown(string(p.Name)), p.Nric))
	sb.WriteString(fmt.Sprintf("- **Phone**: %s\n", p.Phone))
	sb.WriteString(fmt.Sprintf("- **Email**: %s\n", escapeMarkdown(string(p.Email))))
	sb.WriteString(fmt.Sprintf("- **Address**: %s\n\n", escapeMarkdown(string(p.Address))))

	sb.WriteString("### Medical report\n\n")
	if r.IsEmpty() {
		sb.WriteString("_No medical report recorded._\n\n")
	} else {
		sb.WriteString(fmt.Sprintf("- **Allergy**: %s\n", r.Allergy))
		sb.WriteString(fmt.Sprintf("- **Illness**: %s\n", r.Illness))
		sb.WriteString(fmt.Sprintf("- **Surgery**: %s\n", r.Surgery))
		sb.WriteString(fmt.Sprintf("- **Immunization**: %s\n\n", r.Immunization))
	}

	sb.WriteString("### Medicine usages\n\n")
	usages := p.MedicineUsages()
	if len(usages) == 0 {
		sb.WriteString("_None._\n\n")
		return sb.String()
	}
	sb.WriteString("| Medicine | Dosage | Period |\n")
	sb.WriteString("|----------|--------|--------|\n")
	for _, u := range usages {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", u.Name, u.Dosage, formatPeriod(u)))
	}
	sb.WriteString("\n")
	return sb.String()
}

// escapeMarkdown escapes characters that would break formatting in
// headings and list items.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "#", "\\#")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	return s
}

// escapeCell also escapes the table column separator.
func escapeCell(s string) string {
	return strings.ReplaceAll(escapeMarkdown(s), "|", "\\|")
}

// escapeYAML quotes values with special YAML characters.
func escapeYAML(s string) string {
	if strings.ContainsAny(s, ":#|>@`\"'[]{}!%&*\n\r\\") || strings.HasPrefix(s, " ") || strings.HasSuffix(s, " ") {
		s = strings.ReplaceAll(s, "\\", "\\\\")
		s = strings.ReplaceAll(s, "\"", "\\\"")
		s = strings.ReplaceAll(s, "\n", "\\n")
		s = strings.ReplaceAll(s, "\r", "\\r")
		return fmt.Sprintf("\"%s\"", s)
	}
	return s
}

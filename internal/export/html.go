// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/jeranaias/medrec/internal/model"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter exports patients to a standalone HTML page with embedded CSS.
type HTMLExporter struct {
	options *Options
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTMLExporter{options: opts}
}

// Export renders the page.
func (e *HTMLExporter) Export(patients []*model.Patient) ([]byte, error) {
	var sb strings.Builder
	exported := e.options.now()

	theme := e.options.Theme
	if theme != "light" {
		theme = "dark"
	}

	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n")
	sb.WriteString("<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	sb.WriteString("    <title>Patient records</title>\n")
	sb.WriteString("    <meta name=\"generator\" content=\"medrec\">\n")
	sb.WriteString(fmt.Sprintf("    <meta name=\"date\" content=\"%s\">\n", exported.Format(time.RFC3339)))
	sb.WriteString(e.getCSS())
	sb.WriteString("</head>\n")
	sb.WriteString(fmt.Sprintf("<body class=\"%s-theme\">\n", theme))
	sb.WriteString("    <div class=\"container\">\n")

	sb.WriteString(e.renderHeader(patients))

	sb.WriteString("        <main class=\"records\">\n")
	if len(patients) == 0 {
		sb.WriteString("            <p class=\"empty\">No patients recorded.</p>\n")
	} else {
		sb.WriteString(e.renderSummary(patients))
		for i, p := range patients {
			sb.WriteString(e.renderPatient(i+1, p))
		}
	}
	sb.WriteString("        </main>\n")

	if e.options.IncludeMetadata {
		sb.WriteString("        <footer class=\"footer\">\n")
		sb.WriteString(fmt.Sprintf("            <p>Exported from <strong>medrec</strong> on %s</p>\n",
			exported.Format("January 2, 2006 at 3:04 PM")))
		sb.WriteString("        </footer>\n")
	}

	sb.WriteString("    </div>\n")
	sb.WriteString(e.getScript())
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (e *HTMLExporter) MimeType() string {
	return "text/html"
}

// =============================================================================
// RENDERING FUNCTIONS
// =============================================================================

func (e *HTMLExporter) renderHeader(patients []*model.Patient) string {
	var sb strings.Builder

	sb.WriteString("        <header class=\"header\">\n")
	sb.WriteString("            <h1>Patient records</h1>\n")
	sb.WriteString("            <div class=\"metadata\">\n")
	if e.options.IncludeMetadata {
		sb.WriteString(fmt.Sprintf("                <span class=\"meta-item\"><strong>Patients:</strong> %d</span>\n", len(patients)))
		sb.WriteString(fmt.Sprintf("                <span class=\"meta-item\"><strong>Medicine usages:</strong> %d</span>\n", usageCount(patients)))
		if e.options.Source != "" {
			sb.WriteString(fmt.Sprintf("                <span class=\"meta-item\"><strong>Source:</strong> %s</span>\n", html.EscapeString(e.options.Source)))
		}
	}
	sb.WriteString("                <button class=\"theme-toggle\" onclick=\"toggleTheme()\" title=\"Toggle theme\">[Theme]</button>\n")
	sb.WriteString("            </div>\n")
	sb.WriteString("        </header>\n")

	return sb.String()
}

func (e *HTMLExporter) renderSummary(patients []*model.Patient) string {
	var sb strings.Builder

	sb.WriteString("            <table class=\"summary\">\n")
	sb.WriteString("                <thead><tr><th>#</th><th>NRIC</th><th>Name</th><th>Phone</th><th>Email</th></tr></thead>\n")
	sb.WriteString("                <tbody>\n")
	for i, p := range patients {
		sb.WriteString(fmt.Sprintf("                    <tr><td>%d</td><td><a href=\"#%s\">%s</a></td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			i+1,
			html.EscapeString(p.Nric.String()),
			html.EscapeString(p.Nric.String()),
			html.EscapeString(string(p.Name)),
			html.EscapeString(string(p.Phone)),
			html.EscapeString(string(p.Email))))
	}
	sb.WriteString("                </tbody>\n")
	sb.WriteString("            </table>\n")

	return sb.String()
}

func (e *HTMLExporter) renderPatient(n int, p *model.Patient) string {
	var sb strings.Builder
	r := p.Report

	sb.WriteString(fmt.Sprintf("            <section class=\"patient\" id=\"%s\">\n", html.EscapeString(p.Nric.String())))
	sb.WriteString(fmt.Sprintf("                <h2><span class=\"index\">%d</span> %s <span class=\"nric\">%s</span></h2>\n",
		n, html.EscapeString(string(p.Name)), html.EscapeString(p.Nric.String())))
	sb.WriteString("                <dl class=\"contact\">\n")
	writeTerm(&sb, "Phone", string(p.Phone))
	writeTerm(&sb, "Email", string(p.Email))
	writeTerm(&sb, "Address", string(p.Address))
	sb.WriteString("                </dl>\n")

	sb.WriteString("                <h3>Medical report</h3>\n")
	if r.IsEmpty() {
		sb.WriteString("                <p class=\"empty\">No medical report recorded.</p>\n")
	} else {
		sb.WriteString("                <dl class=\"report\">\n")
		writeTerm(&sb, "Allergy", r.Allergy)
		writeTerm(&sb, "Illness", r.Illness)
		writeTerm(&sb, "Surgery", r.Surgery)
		writeTerm(&sb, "Immunization", r.Immunization)
		sb.WriteString("                </dl>\n")
	}

	sb.WriteString("                <h3>Medicine usages</h3>\n")
	usages := p.MedicineUsages()
	if len(usages) == 0 {
		sb.WriteString("                <p class=\"empty\">None.</p>\n")
	} else {
		sb.WriteString("                <table class=\"usages\">\n")
		sb.WriteString("                    <thead><tr><th>Medicine</th><th>Dosage</th><th>Period</th></tr></thead>\n")
		sb.WriteString("                    <tbody>\n")
		for _, u := range usages {
			sb.WriteString(fmt.Sprintf("                        <tr><td>%s</td><td>%s</td><td>%s</td></tr>\n",
				html.EscapeString(u.Name), html.EscapeString(u.Dosage), formatPeriod(u)))
		}
		sb.WriteString("                    </tbody>\n")
		sb.WriteString("                </table>\n")
	}

	sb.WriteString("            </section>\n")
	return sb.String()
}

func writeTerm(sb *strings.Builder, term, value string) {
	sb.WriteString(fmt.Sprintf("                    <dt>%s</dt><dd>%s</dd>\n", term, html.EscapeString(value)))
}

// =============================================================================
// EMBEDDED CSS
// =============================================================================

func (e *HTMLExporter) getCSS() string {
	return `    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        :root {
            --font-sans: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            --font-mono: "SF Mono", "Monaco", "Inconsolata", "Fira Code", "Source Code Pro", monospace;
        }

        .dark-theme {
            --bg-primary: #1a1b26;
            --bg-secondary: #24283b;
            --bg-tertiary: #414868;
            --text-primary: #c0caf5;
            --text-secondary: #a9b1d6;
            --text-muted: #565f89;
            --border-color: #414868;
            --accent-cyan: #7dcfff;
            --accent-purple: #bb9af7;
        }

        .light-theme {
            --bg-primary: #ffffff;
            --bg-secondary: #f7f8fa;
            --bg-tertiary: #e1e4e8;
            --text-primary: #24292e;
            --text-secondary: #586069;
            --text-muted: #6a737d;
            --border-color: #e1e4e8;
            --accent-cyan: #0366d6;
            --accent-purple: #6f42c1;
        }

        body {
            font-family: var(--font-sans);
            font-size: 16px;
            line-height: 1.6;
            color: var(--text-primary);
            background: var(--bg-primary);
            padding: 20px;
        }

        .container {
            max-width: 960px;
            margin: 0 auto;
            background: var(--bg-secondary);
            border-radius: 12px;
            overflow: hidden;
        }

        .header {
            padding: 32px;
            background: var(--bg-tertiary);
            border-bottom: 2px solid var(--border-color);
        }

        .header h1 {
            font-size: 28px;
            margin-bottom: 16px;
        }

        .metadata {
            display: flex;
            flex-wrap: wrap;
            gap: 16px;
            font-size: 14px;
            color: var(--text-secondary);
            align-items: center;
        }

        .theme-toggle {
            margin-left: auto;
            background: transparent;
            color: var(--text-secondary);
            border: 1px solid var(--border-color);
            border-radius: 6px;
            padding: 4px 10px;
            cursor: pointer;
        }

        .records {
            padding: 24px 32px;
        }

        table {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 24px;
            font-size: 14px;
        }

        th, td {
            text-align: left;
            padding: 6px 10px;
            border-bottom: 1px solid var(--border-color);
        }

        th {
            color: var(--text-muted);
            font-weight: 600;
        }

        a {
            color: var(--accent-cyan);
        }

        .patient {
            padding: 20px 0;
            border-top: 1px solid var(--border-color);
        }

        .patient h2 {
            font-size: 20px;
            margin-bottom: 8px;
        }

        .patient h3 {
            font-size: 15px;
            color: var(--accent-purple);
            margin: 12px 0 6px;
        }

        .index, .nric {
            font-family: var(--font-mono);
            color: var(--text-muted);
            font-size: 14px;
        }

        dl {
            display: grid;
            grid-template-columns: max-content 1fr;
            gap: 2px 16px;
            font-size: 14px;
        }

        dt {
            color: var(--text-secondary);
        }

        .empty {
            color: var(--text-muted);
            font-style: italic;
        }

        .footer {
            padding: 16px 32px;
            font-size: 13px;
            color: var(--text-muted);
            border-top: 1px solid var(--border-color);
        }
    </style>
`
}

// =============================================================================
// EMBEDDED JAVASCRIPT
// =============================================================================

// getScript returns the embedded JavaScript for theme toggling.
func (e *HTMLExporter) getScript() string {
	return `    <script>
        function toggleTheme() {
            const body = document.body;
            if (body.classList.contains('dark-theme')) {
                body.classList.remove('dark-theme');
                body.classList.add('light-theme');
                localStorage.setItem('theme', 'light');
            } else {
                body.classList.remove('light-theme');
                body.classList.add('dark-theme');
                localStorage.setItem('theme', 'dark');
            }
        }

        document.addEventListener('DOMContentLoaded', function() {
            const savedTheme = localStorage.getItem('theme');
            if (savedTheme) {
                document.body.classList.remove('dark-theme', 'light-theme');
                document.body.classList.add(savedTheme + '-theme');
            }
        });
    </script>
`
}

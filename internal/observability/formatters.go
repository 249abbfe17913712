// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/cv-forge/internal/document"
	"github.com/jonathan/cv-forge/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// ThemeEntry is one row in a theme catalog listing.
type ThemeEntry struct {
	Name        string
	Description string
}

// PrintThemeTable outputs one theme catalog (fonts or colors) as a box.
func (p *Printer) PrintThemeTable(title string, entries []ThemeEntry) {
	if len(entries) == 0 {
		return
	}

	width := 0
	for _, e := range entries {
		if len(e.Name) > width {
			width = len(e.Name)
		}
	}

	var sb strings.Builder
	for i, e := range entries {
		sb.WriteString(fmt.Sprintf("%-*s  %s", width, e.Name, e.Description))
		if i < len(entries)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(title, sb.String())
}

// PrintDocumentSummary outputs a parsed document's effective metadata.
func (p *Printer) PrintDocumentSummary(path string, doc *document.Document) {
	if doc == nil {
		return
	}

	kind := "CV"
	if doc.Meta.Recipient != nil || doc.Meta.Subject != "" {
		kind = "Cover letter"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:     %s\n", path))
	sb.WriteString(fmt.Sprintf("Type:     %s\n", kind))
	sb.WriteString(fmt.Sprintf("Name:     %s\n", doc.Meta.Name))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", doc.Meta.Email))
	sb.WriteString(fmt.Sprintf("Fonts:    %s\n", doc.Meta.FontTheme))
	sb.WriteString(fmt.Sprintf("Colors:   %s\n", doc.Meta.ColorTheme))
	sb.WriteString(fmt.Sprintf("Columns:  %d\n", doc.Meta.Layout.ColumnCount()))
	sb.WriteString(fmt.Sprintf("Blocks:   %d", len(doc.Content)))

	p.printBox("DOCUMENT", sb.String())
}

// PrintTailoringSummary outputs what the AI produced for one tailoring run.
func (p *Printer) PrintTailoringSummary(cv *types.TailoredCV) {
	if cv == nil {
		return
	}

	var sb strings.Builder

	summary := cv.ProfessionalSummary
	if len(summary) > 50 {
		summary = summary[:47] + "..."
	}
	sb.WriteString(fmt.Sprintf("Summary:  %s\n\n", summary))

	if len(cv.Experiences) > 0 {
		sb.WriteString(fmt.Sprintf("Experience (%d):\n", len(cv.Experiences)))
		count := min(len(cv.Experiences), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := cv.Experiences[i]
			sb.WriteString(fmt.Sprintf("  • %s at %s (%.2f)\n", exp.Title, exp.Company, exp.RelevanceScore))
		}
		if len(cv.Experiences) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(cv.Experiences)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(cv.Skills) > 0 {
		skills := strings.Join(cv.Skills, ", ")
		if len(skills) > 45 {
			skills = skills[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("Skills:   %s\n", skills))
	}
	sb.WriteString(fmt.Sprintf("Keywords: %d for ATS", len(cv.Keywords)))

	p.printBox("TAILORED CV", sb.String())
}

// PrintSuggestions outputs the AI's improvement suggestions.
func (p *Printer) PrintSuggestions(suggestions []string) {
	if len(suggestions) == 0 {
		return
	}

	var sb strings.Builder
	for i, s := range suggestions {
		if len(s) > 52 {
			s = s[:49] + "..."
		}
		sb.WriteString(fmt.Sprintf("• %s", s))
		if i < len(suggestions)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("AI SUGGESTIONS", sb.String())
}

// ArtifactRow is one rendered artifact in a build report.
type ArtifactRow struct {
	Format   string
	Path     string
	Duration time.Duration
}

// PrintRenderReport outputs one row per rendered artifact.
func (p *Printer) PrintRenderReport(rows []ArtifactRow) {
	if len(rows) == 0 {
		return
	}

	var sb strings.Builder
	for i, row := range rows {
		path := row.Path
		if len(path) > 38 {
			path = "..." + path[len(path)-35:]
		}
		sb.WriteString(fmt.Sprintf("✓ %-4s  %s  (%s)", row.Format, path, row.Duration.Round(time.Millisecond)))
		if i < len(rows)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("RENDERED ARTIFACTS", sb.String())
}

// PrintCheckResult outputs validation findings, or a pass banner when
// there are none.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintCheckResult(problems []string) {
	if len(problems) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ DOCUMENT OK")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d problems:\n\n", len(problems)))
	for i, problem := range problems {
		if len(problem) > 52 {
			problem = problem[:49] + "..."
		}
		sb.WriteString(fmt.Sprintf("⚠ %s", problem))
		if i < len(problems)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("PROBLEMS", sb.String())
}

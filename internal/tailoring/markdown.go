package tailoring

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/jonathan/cv-forge/internal/document"
	"github.com/jonathan/cv-forge/internal/types"
)

// GenerateMarkdown renders a tailored CV back to a complete markdown file:
// the source document's identity and theme fields as frontmatter, then the
// regenerated content sections. sourcePath and jobPath are recorded as
// frontmatter comment lines when set.
func GenerateMarkdown(meta document.Metadata, cv *types.TailoredCV, sourcePath, jobPath string) (string, error) {
	var b strings.Builder

	frontmatter, err := marshalFrontmatter(meta)
	if err != nil {
		return "", fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	b.WriteString("---\n")
	b.Write(frontmatter)
	b.WriteString("\n# AI-Tailored CV\n")
	if sourcePath != "" {
		fmt.Fprintf(&b, "# Original: %s\n", sourcePath)
	}
	if jobPath != "" {
		fmt.Fprintf(&b, "# Job: %s\n", jobPath)
	}
	b.WriteString("---\n\n")

	b.WriteString("## Professional Summary\n\n")
	b.WriteString(cv.ProfessionalSummary)
	b.WriteString("\n\n")

	b.WriteString("## Experience\n\n")
	for _, exp := range cv.Experiences {
		fmt.Fprintf(&b, "### %s at %s\n", exp.Title, exp.Company)
		fmt.Fprintf(&b, "*%s*\n\n", exp.Duration)
		for _, highlight := range exp.Highlights {
			fmt.Fprintf(&b, "- %s\n", highlight)
		}
		fmt.Fprintf(&b, "\n<!-- Relevance Score: %.2f -->\n\n", exp.RelevanceScore)
	}

	b.WriteString("## Skills\n\n")
	b.WriteString(strings.Join(cv.Skills, ", "))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "<!-- ATS Keywords: %s -->\n\n", strings.Join(cv.Keywords, ", "))

	if len(cv.Suggestions) > 0 {
		b.WriteString("<!-- AI Suggestions:\n")
		for _, suggestion := range cv.Suggestions {
			fmt.Fprintf(&b, "- %s\n", suggestion)
		}
		b.WriteString("-->\n")
	}

	return b.String(), nil
}

// marshalFrontmatter emits the identity and theme fields of the source
// metadata in a fixed order, skipping empty values. Layout, override and
// letter fields are not persisted; they live only on the in-memory
// document.
func marshalFrontmatter(meta document.Metadata) ([]byte, error) {
	fields := yaml.MapSlice{}
	add := func(key, value string) {
		if value != "" {
			fields = append(fields, yaml.MapItem{Key: key, Value: value})
		}
	}

	add("name", meta.Name)
	add("email", meta.Email)
	add("phone", meta.Phone)
	add("location", meta.Location)
	add("linkedin", meta.LinkedIn)
	add("github", meta.GitHub)
	add("website", meta.Website)
	add("font_theme", meta.FontTheme)
	add("color_theme", meta.ColorTheme)

	return yaml.Marshal(fields)
}

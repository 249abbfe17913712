package tailoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-forge/internal/document"
	"github.com/jonathan/cv-forge/internal/types"
)

func sampleCV() *types.TailoredCV {
	return &types.TailoredCV{
		ProfessionalSummary: "Senior engineer with eight years building Go services.",
		Experiences: []types.TailoredExperience{
			{
				Title:          "Platform Lead",
				Company:        "Initech",
				Duration:       "2020 - Present",
				Highlights:     []string{"Led the migration to Go", "Cut deploy time by 80%"},
				RelevanceScore: 0.9,
			},
			{
				Title:          "Junior Developer",
				Company:        "Initrode",
				Duration:       "2016 - 2018",
				Highlights:     []string{"Maintained billing jobs"},
				RelevanceScore: 0.3,
			},
		},
		Skills:      []string{"Go", "Kubernetes", "PostgreSQL"},
		Keywords:    []string{"go", "kubernetes"},
		Suggestions: []string{"Quantify the migration impact"},
	}
}

func sampleMeta() document.Metadata {
	return document.Metadata{
		Name:       "Jane Doe",
		Email:      "jane@example.com",
		Phone:      "+1 555 0100",
		Location:   "Boston, MA",
		LinkedIn:   "jane-doe",
		GitHub:     "janedoe",
		FontTheme:  "sharp",
		ColorTheme: "modern",
	}
}

func TestGenerateMarkdown_Sections(t *testing.T) {
	md, err := GenerateMarkdown(sampleMeta(), sampleCV(), "cv.md", "job.pdf")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(md, "---\n"))
	assert.Contains(t, md, "# AI-Tailored CV")
	assert.Contains(t, md, "# Original: cv.md")
	assert.Contains(t, md, "# Job: job.pdf")

	assert.Contains(t, md, "## Professional Summary\n\nSenior engineer with eight years building Go services.")
	assert.Contains(t, md, "### Platform Lead at Initech\n*2020 - Present*\n\n- Led the migration to Go\n- Cut deploy time by 80%")
	assert.Contains(t, md, "<!-- Relevance Score: 0.90 -->")
	assert.Contains(t, md, "<!-- Relevance Score: 0.30 -->")
	assert.Contains(t, md, "## Skills\n\nGo, Kubernetes, PostgreSQL")
	assert.Contains(t, md, "<!-- ATS Keywords: go, kubernetes -->")
	assert.Contains(t, md, "<!-- AI Suggestions:\n- Quantify the migration impact\n-->")
}

func TestGenerateMarkdown_OmitsEmptyFields(t *testing.T) {
	meta := sampleMeta()
	meta.Phone = ""
	meta.Location = ""

	cv := sampleCV()
	cv.Suggestions = nil

	md, err := GenerateMarkdown(meta, cv, "", "")
	require.NoError(t, err)

	assert.NotContains(t, md, "phone:")
	assert.NotContains(t, md, "location:")
	assert.NotContains(t, md, "# Original:")
	assert.NotContains(t, md, "# Job:")
	assert.NotContains(t, md, "AI Suggestions")
}

func TestGenerateMarkdown_RoundTripsThroughParser(t *testing.T) {
	md, err := GenerateMarkdown(sampleMeta(), sampleCV(), "cv.md", "job.pdf")
	require.NoError(t, err)

	doc, err := document.Parse([]byte(md))
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", doc.Meta.Name)
	assert.Equal(t, "jane@example.com", doc.Meta.Email)
	assert.Equal(t, "+1 555 0100", doc.Meta.Phone)
	assert.Equal(t, "Boston, MA", doc.Meta.Location)
	assert.Equal(t, "sharp", doc.Meta.FontTheme)
	assert.Equal(t, "modern", doc.Meta.ColorTheme)
	assert.NotEmpty(t, doc.Content)
}

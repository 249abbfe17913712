package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTailoredCV_DecodesAIResponse(t *testing.T) {
	payload := `{
		"professional_summary": "Backend engineer with 8 years of Go experience.",
		"experiences": [
			{
				"title": "Senior Engineer",
				"company": "Acme Corp",
				"duration": "2020 - Present",
				"highlights": ["Cut p99 latency by 40%", "Led a team of 5"],
				"relevance_score": 0.92
			}
		],
		"skills": ["Go", "PostgreSQL"],
		"keywords": ["distributed systems", "kubernetes"],
		"suggestions": ["Add certifications section"]
	}`

	var cv TailoredCV
	require.NoError(t, json.Unmarshal([]byte(payload), &cv))

	assert.Equal(t, "Backend engineer with 8 years of Go experience.", cv.ProfessionalSummary)
	require.Len(t, cv.Experiences, 1)
	assert.Equal(t, "Senior Engineer", cv.Experiences[0].Title)
	assert.Equal(t, "Acme Corp", cv.Experiences[0].Company)
	assert.Equal(t, "2020 - Present", cv.Experiences[0].Duration)
	assert.Len(t, cv.Experiences[0].Highlights, 2)
	assert.InDelta(t, 0.92, cv.Experiences[0].RelevanceScore, 0.0001)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, cv.Skills)
	assert.Equal(t, []string{"distributed systems", "kubernetes"}, cv.Keywords)
	assert.Equal(t, []string{"Add certifications section"}, cv.Suggestions)
}

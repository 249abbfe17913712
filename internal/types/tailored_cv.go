// Package types provides type definitions for structured data exchanged
// with the AI tailoring service.
//
//nolint:revive // types is a standard Go package name pattern
package types

// TailoredCV is the structured response returned by the AI for one
// CV/job-description pair. Field names follow the JSON schema the response
// is validated against.
type TailoredCV struct {
	ProfessionalSummary string               `json:"professional_summary"`
	Experiences         []TailoredExperience `json:"experiences"`
	Skills              []string             `json:"skills"`
	Keywords            []string             `json:"keywords"`
	Suggestions         []string             `json:"suggestions"`
}

// TailoredExperience is one work experience rewritten for the target job
type TailoredExperience struct {
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Duration       string   `json:"duration"` // e.g. "2020 - Present"
	Highlights     []string `json:"highlights"`
	RelevanceScore float64  `json:"relevance_score"` // 0 to 1, higher is a closer match
}

// Package tailoring rewrites CV content against a job description through
// an AI service. The result is a new document carrying the source metadata
// verbatim, which re-enters the normal style-resolution and render
// pipeline; the source document is never modified.
package tailoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/cv-forge/internal/document"
	"github.com/jonathan/cv-forge/internal/llm"
	"github.com/jonathan/cv-forge/internal/prompts"
	"github.com/jonathan/cv-forge/internal/schemas"
	"github.com/jonathan/cv-forge/internal/types"
)

// DefaultTimeout bounds the AI round-trip when the caller's context has no
// deadline of its own.
const DefaultTimeout = 2 * time.Minute

// Options configure a Tailorer.
type Options struct {
	// Tier selects the model tier used for the rewrite. Empty means
	// llm.TierAdvanced.
	Tier llm.ModelTier

	// SourcePath and JobPath are recorded as comment lines in the
	// generated frontmatter when set.
	SourcePath string
	JobPath    string

	// Verbose enables diagnostic logging to the standard logger.
	Verbose bool
}

// Result is one successful tailoring run.
type Result struct {
	// Document carries the regenerated content with the source metadata
	// preserved verbatim.
	Document *document.Document

	// Markdown is the complete generated file, frontmatter plus content
	// sections, as written to disk by the CLI.
	Markdown string

	// CV is the decoded response payload, including the suggestions that
	// do not appear in the document body.
	CV *types.TailoredCV
}

// Tailorer rewrites documents through an LLM client.
type Tailorer struct {
	client  llm.Client
	opts    Options
	backoff time.Duration
}

// New wraps an LLM client in a Tailorer.
func New(client llm.Client, opts Options) *Tailorer {
	if opts.Tier == "" {
		opts.Tier = llm.TierAdvanced
	}
	return &Tailorer{client: client, opts: opts, backoff: initialBackoff}
}

// Tailor sends the document body and the job description to the AI service
// and builds a new Document from the structured response. Transient API
// failures are retried with bounded backoff; a response that fails the
// TailoredCV contract fails immediately with ResponseInvalidError and is
// never retried.
func (t *Tailorer) Tailor(ctx context.Context, doc *document.Document, jobText string) (*Result, error) {
	if strings.TrimSpace(jobText) == "" {
		return nil, errors.New("job description text is empty")
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}

	runID := uuid.New().String()
	if t.opts.Verbose {
		log.Printf("[tailor] run %s: rewriting %q with model %s", runID, doc.Meta.Name, t.client.GetModel(t.opts.Tier))
	}

	prompt := buildTailorPrompt(doc.Body, jobText)

	start := time.Now()
	responseText, err := generateWithRetry(ctx, t.backoff, func() (string, error) {
		return t.client.GenerateJSON(ctx, prompt, t.opts.Tier)
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &TimeoutError{Elapsed: time.Since(start)}
		}
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, &APICallError{Message: "failed to generate tailored content", Cause: err}
	}

	jsonContent := llm.CleanJSONBlock(responseText)

	if err := schemas.ValidateTailoredCV(jsonContent); err != nil {
		var ve *schemas.ValidationError
		if errors.As(err, &ve) {
			return nil, &ResponseInvalidError{
				Reason:     "response does not match the TailoredCV schema",
				Violations: ve.Errors,
			}
		}
		return nil, err
	}

	var cv types.TailoredCV
	if err := json.Unmarshal([]byte(jsonContent), &cv); err != nil {
		return nil, &ResponseInvalidError{Reason: fmt.Sprintf("failed to decode response: %v", err)}
	}

	postProcess(&cv)

	markdown, err := GenerateMarkdown(doc.Meta, &cv, t.opts.SourcePath, t.opts.JobPath)
	if err != nil {
		return nil, err
	}

	parsed, err := document.Parse([]byte(markdown))
	if err != nil {
		return nil, fmt.Errorf("regenerated markdown failed to parse: %w", err)
	}

	if t.opts.Verbose {
		log.Printf("[tailor] run %s: done in %s (%d experiences, %d skills, %d suggestions)",
			runID, time.Since(start).Round(time.Millisecond), len(cv.Experiences), len(cv.Skills), len(cv.Suggestions))
	}

	return &Result{
		Document: doc.WithContent(parsed.Body, parsed.Content),
		Markdown: markdown,
		CV:       &cv,
	}, nil
}

// buildTailorPrompt assembles the system and user prompts for one rewrite.
// The response schema is embedded in the prompt text so the model sees the
// exact contract its JSON output is validated against.
func buildTailorPrompt(cvContent, jobText string) string {
	system := prompts.MustGet("tailoring.json", "system")
	user := prompts.Format(prompts.MustGet("tailoring.json", "tailor-cv"), map[string]string{
		"CVContent":      cvContent,
		"JobDescription": jobText,
		"Schema":         schemas.TailoredCVSchema(),
	})
	return system + "\n\n" + user
}

// postProcess normalizes the decoded payload: experiences sorted by
// descending relevance and keywords lowercased, trimmed and deduplicated.
// The sort is stable so entries the model scored equally keep its order.
func postProcess(cv *types.TailoredCV) {
	sort.SliceStable(cv.Experiences, func(i, j int) bool {
		return cv.Experiences[i].RelevanceScore > cv.Experiences[j].RelevanceScore
	})

	normalized := make([]string, 0, len(cv.Keywords))
	seen := make(map[string]bool)
	for _, keyword := range cv.Keywords {
		k := strings.ToLower(strings.TrimSpace(keyword))
		if k != "" && !seen[k] {
			normalized = append(normalized, k)
			seen[k] = true
		}
	}
	cv.Keywords = normalized
}

package tailoring

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-forge/internal/document"
	"github.com/jonathan/cv-forge/internal/llm"
)

const sourceCV = `---
name: Jane Doe
email: jane@example.com
phone: "+1 555 0100"
location: Boston, MA
github: janedoe
font_theme: sharp
color_theme: modern
---

# Experience

## Acme Corp

### Senior Engineer

Shipped the billing pipeline.
`

const jobText = "We need a platform lead with Go and Kubernetes experience."

const validResponse = `{
  "professional_summary": "Senior engineer with eight years building Go services.",
  "experiences": [
    {
      "title": "Junior Developer",
      "company": "Initrode",
      "duration": "2016 - 2018",
      "highlights": ["Maintained billing jobs"],
      "relevance_score": 0.3
    },
    {
      "title": "Platform Lead",
      "company": "Initech",
      "duration": "2020 - Present",
      "highlights": ["Led the migration to Go", "Cut deploy time by 80%"],
      "relevance_score": 0.9
    }
  ],
  "skills": ["Go", "Kubernetes", "PostgreSQL"],
  "keywords": ["Go", "go", " Kubernetes "],
  "suggestions": ["Quantify the migration impact"]
}`

// fakeClient scripts GenerateJSON behavior for adapter tests.
type fakeClient struct {
	generate   func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	calls      int
	lastPrompt string
}

var _ llm.Client = (*fakeClient)(nil)

func (f *fakeClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	return f.generate(ctx, prompt, tier)
}

func (f *fakeClient) GetModel(tier llm.ModelTier) string { return "fake-model" }

func (f *fakeClient) Close() error { return nil }

func respondWith(response string) *fakeClient {
	return &fakeClient{
		generate: func(context.Context, string, llm.ModelTier) (string, error) {
			return response, nil
		},
	}
}

func parseSource(t *testing.T) *document.Document {
	t.Helper()
	doc, err := document.Parse([]byte(sourceCV))
	require.NoError(t, err)
	return doc
}

func newTestTailorer(client llm.Client, opts Options) *Tailorer {
	tailorer := New(client, opts)
	tailorer.backoff = time.Millisecond
	return tailorer
}

func TestTailor_PreservesMetadata(t *testing.T) {
	doc := parseSource(t)
	tailorer := newTestTailorer(respondWith(validResponse), Options{})

	res, err := tailorer.Tailor(context.Background(), doc, jobText)
	require.NoError(t, err)

	assert.Equal(t, doc.Meta, res.Document.Meta)
	assert.NotEqual(t, doc.Body, res.Document.Body)
	assert.Contains(t, res.Document.Body, "## Professional Summary")
	assert.NotEmpty(t, res.Document.Content)

	// The source document is untouched
	assert.Contains(t, doc.Body, "Shipped the billing pipeline.")
}

func TestTailor_OrdersExperiencesByRelevance(t *testing.T) {
	doc := parseSource(t)
	tailorer := newTestTailorer(respondWith(validResponse), Options{})

	res, err := tailorer.Tailor(context.Background(), doc, jobText)
	require.NoError(t, err)

	require.Len(t, res.CV.Experiences, 2)
	assert.Equal(t, "Initech", res.CV.Experiences[0].Company)
	assert.Equal(t, "Initrode", res.CV.Experiences[1].Company)

	lead := strings.Index(res.Markdown, "### Platform Lead at Initech")
	junior := strings.Index(res.Markdown, "### Junior Developer at Initrode")
	require.GreaterOrEqual(t, lead, 0)
	require.GreaterOrEqual(t, junior, 0)
	assert.Less(t, lead, junior)
}

func TestTailor_NormalizesKeywords(t *testing.T) {
	doc := parseSource(t)
	tailorer := newTestTailorer(respondWith(validResponse), Options{})

	res, err := tailorer.Tailor(context.Background(), doc, jobText)
	require.NoError(t, err)

	assert.Equal(t, []string{"go", "kubernetes"}, res.CV.Keywords)
	assert.Contains(t, res.Markdown, "<!-- ATS Keywords: go, kubernetes -->")
}

func TestTailor_AcceptsFencedResponse(t *testing.T) {
	doc := parseSource(t)
	tailorer := newTestTailorer(respondWith("```json\n"+validResponse+"\n```"), Options{})

	res, err := tailorer.Tailor(context.Background(), doc, jobText)
	require.NoError(t, err)
	assert.Equal(t, "Senior engineer with eight years building Go services.", res.CV.ProfessionalSummary)
}

func TestTailor_SchemaViolationNotRetried(t *testing.T) {
	invalid := strings.Replace(validResponse, `"skills": ["Go", "Kubernetes", "PostgreSQL"],`, "", 1)
	client := respondWith(invalid)
	tailorer := newTestTailorer(client, Options{})

	doc := parseSource(t)
	_, err := tailorer.Tailor(context.Background(), doc, jobText)

	var rie *ResponseInvalidError
	require.ErrorAs(t, err, &rie)
	require.NotEmpty(t, rie.Violations)
	assert.Contains(t, rie.Error(), "skills")
	assert.Equal(t, 1, client.calls)

	// The source document is untouched
	assert.Contains(t, doc.Body, "Shipped the billing pipeline.")
}

func TestTailor_MalformedResponseNotRetried(t *testing.T) {
	client := respondWith(`{"professional_summary": `)
	tailorer := newTestTailorer(client, Options{})

	_, err := tailorer.Tailor(context.Background(), parseSource(t), jobText)

	var rie *ResponseInvalidError
	require.ErrorAs(t, err, &rie)
	assert.Equal(t, 1, client.calls)
}

func TestTailor_RetriesTransientFailures(t *testing.T) {
	attempts := 0
	client := &fakeClient{}
	client.generate = func(context.Context, string, llm.ModelTier) (string, error) {
		attempts++
		if attempts < 3 {
			return "", errors.New("connection reset")
		}
		return validResponse, nil
	}
	tailorer := newTestTailorer(client, Options{})

	res, err := tailorer.Tailor(context.Background(), parseSource(t), jobText)
	require.NoError(t, err)
	assert.Equal(t, 3, client.calls)
	assert.NotNil(t, res.Document)
}

func TestTailor_APICallErrorAfterRetriesExhausted(t *testing.T) {
	errBoom := errors.New("connection reset")
	client := &fakeClient{
		generate: func(context.Context, string, llm.ModelTier) (string, error) {
			return "", errBoom
		},
	}
	tailorer := newTestTailorer(client, Options{})

	_, err := tailorer.Tailor(context.Background(), parseSource(t), jobText)

	var ace *APICallError
	require.ErrorAs(t, err, &ace)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, maxAttempts, client.calls)
}

func TestTailor_TimeoutError(t *testing.T) {
	client := &fakeClient{
		generate: func(ctx context.Context, _ string, _ llm.ModelTier) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
	tailorer := newTestTailorer(client, Options{})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := tailorer.Tailor(ctx, parseSource(t), jobText)

	var te *TimeoutError
	require.ErrorAs(t, err, &te)
	assert.Greater(t, te.Elapsed, time.Duration(0))
	assert.Equal(t, 1, client.calls)
}

func TestTailor_AppliesDefaultTimeout(t *testing.T) {
	sawDeadline := false
	client := &fakeClient{
		generate: func(ctx context.Context, _ string, _ llm.ModelTier) (string, error) {
			_, sawDeadline = ctx.Deadline()
			return validResponse, nil
		},
	}
	tailorer := newTestTailorer(client, Options{})

	_, err := tailorer.Tailor(context.Background(), parseSource(t), jobText)
	require.NoError(t, err)
	assert.True(t, sawDeadline)
}

func TestTailor_EmptyJobText(t *testing.T) {
	tailorer := newTestTailorer(respondWith(validResponse), Options{})

	_, err := tailorer.Tailor(context.Background(), parseSource(t), "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job description")
}

func TestTailor_PromptCarriesDocumentAndContract(t *testing.T) {
	client := respondWith(validResponse)
	tailorer := newTestTailorer(client, Options{})

	_, err := tailorer.Tailor(context.Background(), parseSource(t), jobText)
	require.NoError(t, err)

	assert.Contains(t, client.lastPrompt, "HR professional")
	assert.Contains(t, client.lastPrompt, "CURRENT CV:")
	assert.Contains(t, client.lastPrompt, "Shipped the billing pipeline.")
	assert.Contains(t, client.lastPrompt, jobText)
	assert.Contains(t, client.lastPrompt, `"professional_summary"`)
}

func TestTailor_RecordsSourcePaths(t *testing.T) {
	tailorer := newTestTailorer(respondWith(validResponse), Options{
		SourcePath: "cv.md",
		JobPath:    "postings/job.pdf",
	})

	res, err := tailorer.Tailor(context.Background(), parseSource(t), jobText)
	require.NoError(t, err)

	assert.Contains(t, res.Markdown, "# Original: cv.md")
	assert.Contains(t, res.Markdown, "# Job: postings/job.pdf")
}

func TestTailor_DefaultsToAdvancedTier(t *testing.T) {
	var seenTier llm.ModelTier
	client := &fakeClient{
		generate: func(_ context.Context, _ string, tier llm.ModelTier) (string, error) {
			seenTier = tier
			return validResponse, nil
		},
	}
	tailorer := newTestTailorer(client, Options{})

	_, err := tailorer.Tailor(context.Background(), parseSource(t), jobText)
	require.NoError(t, err)
	assert.Equal(t, llm.TierAdvanced, seenTier)
}

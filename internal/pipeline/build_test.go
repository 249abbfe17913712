package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-forge/internal/render"
	"github.com/jonathan/cv-forge/internal/themes"
)

const sampleDoc = `---
name: Jane Doe
email: jane@example.com
---

# Jane Doe

## Experience

Senior engineer building platform tooling.

- Led the migration to Go
`

func writeSampleDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cv.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestBuild_SingleFormat(t *testing.T) {
	input := writeSampleDoc(t, sampleDoc)
	outDir := t.TempDir()

	result, err := Build(context.Background(), BuildOptions{
		InputPath: input,
		Formats:   []string{"html"},
		OutputDir: outDir,
	})
	require.NoError(t, err)

	require.Len(t, result.Artifacts, 1)
	artifact := result.Artifacts[0]
	assert.Equal(t, render.FormatHTML, artifact.Format)
	assert.Equal(t, filepath.Join(outDir, "cv.html"), artifact.Path)

	data, err := os.ReadFile(artifact.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Jane Doe")
}

func TestBuild_MultipleFormats(t *testing.T) {
	input := writeSampleDoc(t, sampleDoc)
	outDir := t.TempDir()

	result, err := Build(context.Background(), BuildOptions{
		InputPath: input,
		Formats:   []string{"html", "docx"},
		OutputDir: outDir,
	})
	require.NoError(t, err)

	require.Len(t, result.Artifacts, 2)
	assert.Equal(t, render.FormatHTML, result.Artifacts[0].Format)
	assert.Equal(t, render.FormatDOCX, result.Artifacts[1].Format)

	for _, artifact := range result.Artifacts {
		info, err := os.Stat(artifact.Path)
		require.NoError(t, err, "artifact %s", artifact.Path)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestBuild_DeduplicatesFormats(t *testing.T) {
	input := writeSampleDoc(t, sampleDoc)

	result, err := Build(context.Background(), BuildOptions{
		InputPath: input,
		Formats:   []string{"html", "HTML", ".html"},
		OutputDir: t.TempDir(),
	})
	require.NoError(t, err)

	assert.Len(t, result.Artifacts, 1)
}

func TestBuild_InvalidFormat(t *testing.T) {
	input := writeSampleDoc(t, sampleDoc)

	_, err := Build(context.Background(), BuildOptions{
		InputPath: input,
		Formats:   []string{"gif"},
	})

	var invalidErr *render.InvalidFormatError
	require.ErrorAs(t, err, &invalidErr)
}

func TestBuild_ParseError(t *testing.T) {
	input := writeSampleDoc(t, "no frontmatter here")

	_, err := Build(context.Background(), BuildOptions{
		InputPath: input,
		Formats:   []string{"html"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestBuild_MissingInput(t *testing.T) {
	_, err := Build(context.Background(), BuildOptions{
		InputPath: "/nonexistent/cv.md",
		Formats:   []string{"html"},
	})

	assert.Error(t, err)
}

func TestBuild_OverrideErrorsSurface(t *testing.T) {
	input := writeSampleDoc(t, `---
name: Jane Doe
email: jane@example.com
color_overrides:
  primary: "not-a-color"
---

# Jane Doe
`)

	_, err := Build(context.Background(), BuildOptions{
		InputPath: input,
		Formats:   []string{"html"},
	})

	var overrideErrs *themes.OverrideErrors
	require.ErrorAs(t, err, &overrideErrs)
}

func TestBuild_EmitsProgressEvents(t *testing.T) {
	input := writeSampleDoc(t, sampleDoc)

	var events []ProgressEvent
	_, err := Build(context.Background(), BuildOptions{
		InputPath: input,
		Formats:   []string{"html"},
		OutputDir: t.TempDir(),
		OnProgress: func(event ProgressEvent) {
			events = append(events, event)
		},
	})
	require.NoError(t, err)

	require.Len(t, events, 3)
	assert.Equal(t, StepParse, events[0].Step)
	assert.Equal(t, StepResolve, events[1].Step)
	assert.Equal(t, StepRender, events[2].Step)
	for _, event := range events {
		assert.NotEmpty(t, event.RunID)
		assert.NotEmpty(t, event.Message)
	}
}

func TestBuild_CanceledContext(t *testing.T) {
	input := writeSampleDoc(t, sampleDoc)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Build(ctx, BuildOptions{
		InputPath: input,
		Formats:   []string{"html"},
		OutputDir: t.TempDir(),
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuild_CreatesNestedOutputDir(t *testing.T) {
	input := writeSampleDoc(t, sampleDoc)
	outDir := filepath.Join(t.TempDir(), "nested", "out")

	result, err := Build(context.Background(), BuildOptions{
		InputPath: input,
		Formats:   []string{"html"},
		OutputDir: outDir,
	})
	require.NoError(t, err)

	_, err = os.Stat(result.Artifacts[0].Path)
	assert.NoError(t, err)
}

func TestParseFormats(t *testing.T) {
	formats, err := parseFormats([]string{"pdf", "docx", "html"})
	require.NoError(t, err)

	assert.Equal(t, []render.Format{render.FormatPDF, render.FormatDOCX, render.FormatHTML}, formats)
}

func TestParseFormats_Unknown(t *testing.T) {
	_, err := parseFormats([]string{"pdf", "gif"})
	assert.Error(t, err)
}

// Package pipeline orchestrates parse, style resolution, and rendering
// across output formats for one document.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-forge/internal/document"
	"github.com/jonathan/cv-forge/internal/render"
	"github.com/jonathan/cv-forge/internal/themes"
	"github.com/jonathan/cv-forge/internal/typst"
)

// Step names reported through ProgressEvent.
const (
	StepParse   = "parse"
	StepResolve = "resolve"
	StepRender  = "render"
)

// ProgressEvent represents a progress update during a build
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
}

// ProgressCallback is called when build progress occurs
type ProgressCallback func(event ProgressEvent)

// BuildOptions holds configuration for one build run.
type BuildOptions struct {
	// InputPath is the markdown document to build.
	InputPath string
	// Formats are the requested output formats; empty means pdf.
	Formats []string
	// OutputDir is where artifacts land; empty means the current directory.
	OutputDir string

	// TypstPath overrides PATH lookup of the typst binary.
	TypstPath string
	// Template is optional Typst source prepended to the generated markup.
	Template string

	OnProgress ProgressCallback
}

// Artifact is one rendered output file.
type Artifact struct {
	Format   render.Format
	Path     string
	Duration time.Duration
}

// Result carries everything a build produced.
type Result struct {
	RunID     string
	Document  *document.Document
	Style     *themes.Style
	Artifacts []Artifact
}

// Build parses the input document, resolves its style once, and renders
// every requested format concurrently. The first render failure cancels
// the remaining renders; completed artifacts are not rolled back.
func Build(ctx context.Context, opts BuildOptions) (*Result, error) {
	names := opts.Formats
	if len(names) == 0 {
		names = []string{string(render.FormatPDF)}
	}
	formats, err := parseFormats(names)
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()

	doc, err := document.ParseFile(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", opts.InputPath, err)
	}
	emit(opts, StepParse, fmt.Sprintf("parsed %s (%d blocks)", opts.InputPath, len(doc.Content)), runID)

	style, err := doc.ResolveStyle()
	if err != nil {
		return nil, err
	}
	emit(opts, StepResolve, fmt.Sprintf("resolved style (fonts: %s, colors: %s)",
		doc.Meta.FontTheme, doc.Meta.ColorTheme), runID)

	engine := render.NewEngine(render.Options{
		Typst:    typst.New(opts.TypstPath),
		Template: opts.Template,
	})

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = "."
	}
	stem := strings.TrimSuffix(filepath.Base(opts.InputPath), filepath.Ext(opts.InputPath))

	artifacts := make([]Artifact, len(formats))
	g, gCtx := errgroup.WithContext(ctx)
	for i, format := range formats {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			outPath := filepath.Join(outDir, stem+"."+string(format))
			start := time.Now()
			if err := engine.Render(gCtx, doc, style, format, outPath); err != nil {
				return err
			}
			artifacts[i] = Artifact{Format: format, Path: outPath, Duration: time.Since(start)}
			emit(opts, StepRender, fmt.Sprintf("rendered %s", outPath), runID)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Result{
		RunID:     runID,
		Document:  doc,
		Style:     style,
		Artifacts: artifacts,
	}, nil
}

// parseFormats normalizes the requested formats, dropping duplicates
// while keeping the caller's order.
func parseFormats(names []string) ([]render.Format, error) {
	seen := make(map[render.Format]bool, len(names))
	formats := make([]render.Format, 0, len(names))
	for _, name := range names {
		format, err := render.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		if seen[format] {
			continue
		}
		seen[format] = true
		formats = append(formats, format)
	}
	return formats, nil
}

// emit calls the progress callback if configured
func emit(opts BuildOptions, step, message, runID string) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Step: step, Message: message, RunID: runID})
	}
}

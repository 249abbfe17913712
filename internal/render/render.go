// Package render turns a parsed document and a resolved style into output
// artifacts. One renderer exists per supported format; the dispatcher writes
// every artifact through an atomic sink so a failed render never leaves a
// partial file behind.
package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/cv-forge/internal/document"
	"github.com/jonathan/cv-forge/internal/themes"
	"github.com/jonathan/cv-forge/internal/typst"
)

// Format identifies a supported output format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatHTML Format = "html"
)

// FormatNames returns the supported format names in display order.
func FormatNames() []string {
	return []string{string(FormatPDF), string(FormatDOCX), string(FormatHTML)}
}

// ParseFormat normalizes a user-supplied format name. Leading dots and case
// differences are tolerated so ".PDF" and "pdf" mean the same thing.
func ParseFormat(s string) (Format, error) {
	name := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".")
	switch Format(name) {
	case FormatPDF, FormatDOCX, FormatHTML:
		return Format(name), nil
	}
	return "", &InvalidFormatError{Format: s}
}

// Renderer produces the artifact bytes for one output format.
type Renderer interface {
	Render(ctx context.Context, doc *document.Document, style *themes.Style) ([]byte, error)
}

// Options configures the engine's renderers.
type Options struct {
	// Typst is the gateway used for PDF typesetting. A PATH-default engine
	// is constructed when nil.
	Typst *typst.Engine
	// Template is optional Typst source prepended to generated PDF markup.
	Template string
}

// Engine dispatches render requests to the format renderers.
type Engine struct {
	renderers map[Format]Renderer
}

// NewEngine builds an Engine with the standard pdf, docx and html renderers.
func NewEngine(opts Options) *Engine {
	typEngine := opts.Typst
	if typEngine == nil {
		typEngine = typst.New("")
	}
	return &Engine{renderers: map[Format]Renderer{
		FormatPDF:  &PDFRenderer{Engine: typEngine, Template: opts.Template},
		FormatDOCX: &DOCXRenderer{},
		FormatHTML: &HTMLRenderer{},
	}}
}

// Render produces the artifact for format and writes it to outPath. An
// unsupported format fails before any filesystem access.
func (e *Engine) Render(ctx context.Context, doc *document.Document, style *themes.Style, format Format, outPath string) error {
	r, ok := e.renderers[format]
	if !ok {
		return &InvalidFormatError{Format: string(format)}
	}
	data, err := r.Render(ctx, doc, style)
	if err != nil {
		return &RenderError{Format: format, Cause: err}
	}
	if err := writeAtomic(outPath, data); err != nil {
		return &RenderError{Format: format, Cause: err}
	}
	return nil
}

// writeAtomic stages data in a hidden temp file next to path and renames it
// into place, so readers only ever observe complete artifacts.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary output file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temporary output file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move output file into place: %w", err)
	}
	return nil
}

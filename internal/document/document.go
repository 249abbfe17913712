// Package document holds the parsed, validated representation of one input
// file: frontmatter metadata plus the ordered block content derived from
// the markdown body. Documents are treated as read-only after construction;
// operations that change content build a new Document instead of mutating.
package document

import (
	"strings"

	"github.com/jonathan/cv-forge/internal/themes"
)

// Document is one parsed input. Meta and Content are consumed read-only by
// the style resolver and the renderers. Body keeps the raw markdown the
// blocks were derived from, which tailoring and the preview server need.
type Document struct {
	Meta    Metadata
	Body    string
	Content []Block
}

// New validates metadata, applies defaults, and constructs a Document.
// Validation runs once here; downstream consumers can rely on required
// fields being present and theme names resolving.
func New(meta Metadata, body string, content []Block) (*Document, error) {
	meta.Name = strings.TrimSpace(meta.Name)
	meta.Email = strings.TrimSpace(meta.Email)
	if meta.FontTheme == "" {
		meta.FontTheme = themes.DefaultTheme
	}
	if meta.ColorTheme == "" {
		meta.ColorTheme = themes.DefaultTheme
	}
	if err := meta.validate(); err != nil {
		return nil, err
	}
	return &Document{Meta: meta, Body: body, Content: content}, nil
}

// WithContent returns a new Document carrying the given body and blocks
// while preserving metadata verbatim.
func (d *Document) WithContent(body string, content []Block) *Document {
	return &Document{Meta: d.Meta, Body: body, Content: content}
}

// ResolveStyle resolves the document's theme selection and overrides into
// a render-ready style.
func (d *Document) ResolveStyle() (*themes.Style, error) {
	return themes.Resolve(d.Meta.FontTheme, d.Meta.ColorTheme, d.Meta.FontOverrides, d.Meta.ColorOverrides)
}

// Package ingestion turns job description sources into clean plain text
// for the tailoring flow. Sources are local files (plain text, markdown,
// PDF) or job posting URLs.
package ingestion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// binaryExtensions are document formats the ingester recognizes but has
// no reader for.
var binaryExtensions = map[string]bool{
	".doc":   true,
	".docx":  true,
	".odt":   true,
	".rtf":   true,
	".pages": true,
}

// FromFile reads one job description file. PDFs go through text layer
// extraction; everything else is read as UTF-8 text.
func FromFile(ctx context.Context, path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".pdf" {
		return fromPDF(ctx, path)
	}
	if binaryExtensions[ext] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedSource, ext)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !utf8.Valid(content) {
		return "", fmt.Errorf("%w: %s is not UTF-8 text", ErrUnsupportedSource, path)
	}

	cleaned := CleanText(string(content))
	if cleaned == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyDocument, path)
	}
	return cleaned, nil
}

package ingestion

import (
	"context"
	"fmt"

	"github.com/tsawler/tabula"
)

// fromPDF extracts the text layer of a PDF job description. Headers and
// footers repeated on every page are excluded before cleaning.
func fromPDF(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text, _, err := tabula.Open(path).ExcludeHeadersAndFooters().Text()
	if err != nil {
		return "", fmt.Errorf("failed to extract text from %s: %w", path, err)
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", fmt.Errorf("%w: no text content found in %s", ErrEmptyDocument, path)
	}
	return cleaned, nil
}

package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jonathan/cv-forge/internal/fetch"
)

// FromURL fetches a job posting page and extracts its readable text.
// Platform-specific selectors narrow the extraction to the posting body.
// When useBrowser is true, a headless browser renders the page if the
// static fetch is blocked or yields too little content.
func FromURL(ctx context.Context, urlStr string, useBrowser, verbose bool) (string, error) {
	platform := fetch.DetectPlatform(urlStr)
	if verbose {
		log.Printf("[ingest] fetching %s (platform: %s)", urlStr, platform)
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	usedBrowser := false
	var html string

	result, err := fetch.URL(ctx, urlStr, nil)
	switch {
	case err == nil:
		html = result.HTML
	case useBrowser && errors.Is(err, fetch.ErrBlocked):
		if verbose {
			log.Printf("[ingest] static fetch blocked, rendering with browser")
		}
		html, err = fetch.WithBrowser(ctx, urlStr, fetch.DefaultTimeout, verbose)
		if err != nil {
			return "", err
		}
		usedBrowser = true
	default:
		return "", err
	}

	text, err := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", fmt.Errorf("content extraction failed: %w", err)
	}
	if verbose {
		log.Printf("[ingest] extracted %d chars", len(text))
	}

	if useBrowser && !usedBrowser && fetch.ShouldUseBrowser(text) {
		if verbose {
			log.Printf("[ingest] content too short (%d chars < %d), rendering with browser",
				len(text), fetch.MinContentLength)
		}
		browserHTML, browserErr := fetch.WithBrowser(ctx, urlStr, fetch.DefaultTimeout, verbose)
		if browserErr != nil {
			if verbose {
				log.Printf("[ingest] browser rendering failed: %v, keeping static content", browserErr)
			}
		} else if rendered, exErr := fetch.ExtractMainText(browserHTML, contentSelectors, noiseSelectors...); exErr == nil && len(rendered) > len(text) {
			text = rendered
		}
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyDocument, urlStr)
	}
	if verbose {
		log.Printf("[ingest] cleaned text: %d chars", len(cleaned))
	}
	return cleaned, nil
}

package ingestion

import (
	"regexp"
	"strings"
)

var (
	spaceRuns          = regexp.MustCompile(`[ \t]+`)
	excessiveBlankRuns = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes raw job description text for downstream prompts:
// line endings become LF, zero-width characters are dropped, runs of
// spaces collapse, and runs of blank lines shrink to at most one.
// Markdown structure (headings, bullets, indentation) is preserved.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = dropInvisible(content)

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = excessiveBlankRuns.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine normalizes one line. Headings keep their markers, bullets
// keep their markers and indentation, everything else keeps its
// indentation with internal whitespace collapsed.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	indent := strings.Repeat(" ", len(line)-len(trimmed))

	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}
	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") || strings.HasPrefix(trimmed, "• ") {
		return indent + trimmed
	}

	return indent + spaceRuns.ReplaceAllString(trimmed, " ")
}

// dropInvisible removes zero-width characters that PDF extractors and
// job boards embed in text.
func dropInvisible(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '​', '‌', '‍', '﻿', '­':
			return -1
		}
		return r
	}, s)
}

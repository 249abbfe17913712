// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// CleanJSONBlock extracts the JSON payload from an LLM response.
// Models often wrap JSON in ```json ... ``` fences or surround it with
// conversational text even when instructed not to; this strips both.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	// Handle ```json ... ``` blocks
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	// Handle generic ``` ... ``` blocks
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip potential language identifier on first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	// Tolerate preamble text before the payload
	if !strings.HasPrefix(text, "{") && !strings.HasPrefix(text, "[") {
		objStart := strings.Index(text, "{")
		arrStart := strings.Index(text, "[")
		start := objStart
		if start < 0 || (arrStart >= 0 && arrStart < start) {
			start = arrStart
		}
		if start < 0 {
			return text
		}
		text = text[start:]
	}

	// Cut trailing chatter after the first complete payload
	if extracted := extractJSONObject(text); extracted != "" {
		return extracted
	}
	if extracted := extractJSONArray(text); extracted != "" {
		return extracted
	}
	return text
}

// extractJSONObject returns the first complete JSON object at the start of
// s, or "" when s does not begin with one.
func extractJSONObject(s string) string {
	return extractDelimited(s, '{', '}')
}

// extractJSONArray returns the first complete JSON array at the start of
// s, or "" when s does not begin with one.
func extractJSONArray(s string) string {
	return extractDelimited(s, '[', ']')
}

// extractDelimited scans for the close delimiter matching the opening one,
// tracking string literals so delimiters inside strings are ignored.
func extractDelimited(s string, open, close byte) string {
	if len(s) == 0 || s[0] != open {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// Delimiters inside string literals do not count
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}

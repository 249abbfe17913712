// Package render turns a parsed document and a resolved style into output
// artifacts.
package render

import "strings"

// EscapeTypst escapes characters Typst markup treats specially in text
// Special characters: \ # @ $ * _ ` [ ] < >
func EscapeTypst(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) * 2) // Pre-allocate space for potential escaping

	for _, r := range text {
		switch r {
		case '\\':
			result.WriteString(`\\`)
		case '#':
			result.WriteString(`\#`)
		case '@':
			result.WriteString(`\@`)
		case '$':
			result.WriteString(`\$`)
		case '*':
			result.WriteString(`\*`)
		case '_':
			result.WriteString(`\_`)
		case '`':
			result.WriteString("\\`")
		case '[':
			result.WriteString(`\[`)
		case ']':
			result.WriteString(`\]`)
		case '<':
			result.WriteString(`\<`)
		case '>':
			result.WriteString(`\>`)
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// escapeTypstString escapes a value for use inside a Typst string literal.
func escapeTypstString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

package themes

import (
	"fmt"
	"strings"
)

// UnknownThemeError reports a preset name that is not in the catalog. The
// Available list is included in the message so users can self-correct.
type UnknownThemeError struct {
	Kind      string // "font" or "color"
	Name      string
	Available []string
}

func (e *UnknownThemeError) Error() string {
	return fmt.Sprintf("unknown %s theme %q. Available themes: %s", e.Kind, e.Name, strings.Join(e.Available, ", "))
}

// InvalidOverrideError reports one bad leaf value in a style override. Path
// names the leaf the way it is spelled in frontmatter (e.g. colors.primary).
type InvalidOverrideError struct {
	Path   string
	Reason string
}

func (e *InvalidOverrideError) Error() string {
	return fmt.Sprintf("invalid override %s: %s", e.Path, e.Reason)
}

// OverrideErrors collects every invalid override leaf found during one
// resolve pass, so a single run reports the complete diagnostic.
type OverrideErrors struct {
	Errors []InvalidOverrideError
}

func (e *OverrideErrors) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d invalid style override(s):\n", len(e.Errors)))
	for i, oe := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, oe.Path, oe.Reason))
	}
	return sb.String()
}

// Package themes holds the built-in font and color presets and resolves
// them, together with optional user overrides, into the fully populated
// style consumed by renderers.
//
// The catalog is compiled in and read-only after package initialization, so
// lookups are safe for unsynchronized concurrent use.
package themes

import "sort"

// DefaultTheme is the preset used when a document names no theme.
const DefaultTheme = "modern"

// Style pairs a resolved font theme with a resolved color theme. Every
// field is populated; a partial Style never reaches a renderer.
type Style struct {
	Fonts  FontTheme
	Colors ColorTheme
}

// Resolve merges the named presets with optional sparse overrides into a
// Style. For each leaf the override value wins when present, otherwise the
// preset value stands. Unknown preset names fail immediately with
// UnknownThemeError. Invalid override leaves are collected across the whole
// walk and returned together as OverrideErrors; on any such error the Style
// is nil, never partially valid.
func Resolve(fontName, colorName string, fonts *FontOverrides, colors *ColorOverrides) (*Style, error) {
	ft, err := Font(fontName)
	if err != nil {
		return nil, err
	}
	ct, err := Color(colorName)
	if err != nil {
		return nil, err
	}

	style := &Style{Fonts: ft, Colors: ct}

	var errs []InvalidOverrideError
	if fonts != nil {
		errs = append(errs, fonts.apply(&style.Fonts)...)
	}
	if colors != nil {
		errs = append(errs, colors.apply(&style.Colors)...)
	}
	if len(errs) > 0 {
		return nil, &OverrideErrors{Errors: errs}
	}
	return style, nil
}

func presetNames[V any](presets map[string]V) []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

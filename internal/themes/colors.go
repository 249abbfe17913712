package themes

// ColorTheme is a fully populated color preset: eight named slots, each a
// hex color value.
type ColorTheme struct {
	Primary    string
	Secondary  string
	Accent     string
	Text       string
	Muted      string
	Background string
	Surface    string
	Border     string
}

var colorPresets = map[string]ColorTheme{
	"classic": {
		Primary:    "#2C3E50", // navy
		Secondary:  "#34495E",
		Accent:     "#8B0000", // burgundy
		Text:       "#2C2C2C",
		Muted:      "#7F7F7F",
		Background: "#FAFAFA",
		Surface:    "#F0F0F0",
		Border:     "#D0D0D0",
	},
	"modern": {
		Primary:    "#0066CC", // electric blue
		Secondary:  "#00A8A8", // teal
		Accent:     "#FF6B35",
		Text:       "#333333",
		Muted:      "#666666",
		Background: "#FFFFFF",
		Surface:    "#F3F4F6",
		Border:     "#E5E7EB",
	},
	"sharp": {
		Primary:    "#6B46C1", // deep purple
		Secondary:  "#EC4899", // pink
		Accent:     "#84CC16", // lime
		Text:       "#1A1A1A",
		Muted:      "#6B7280",
		Background: "#F8FAFC",
		Surface:    "#F1F5F9",
		Border:     "#E2E8F0",
	},
}

var colorDescriptions = map[string]string{
	"classic": "Navy and burgundy (traditional)",
	"modern":  "Blue and teal (tech)",
	"sharp":   "Purple and pink (creative)",
}

// Color returns the color preset registered under name.
func Color(name string) (ColorTheme, error) {
	preset, ok := colorPresets[name]
	if !ok {
		return ColorTheme{}, &UnknownThemeError{Kind: "color", Name: name, Available: ColorNames()}
	}
	return preset, nil
}

// ColorNames returns the valid color preset names in sorted order.
func ColorNames() []string {
	return presetNames(colorPresets)
}

// ColorDescription returns a one-line description of a color preset for
// listings. Unknown names yield an empty string.
func ColorDescription(name string) string {
	return colorDescriptions[name]
}

// Heading colors are derived, not stored: top-level and third-level
// headings use the text color, second-level headings use the primary.

// H1Color returns the color applied to top-level headings.
func (c ColorTheme) H1Color() string { return c.Text }

// H2Color returns the color applied to section headings.
func (c ColorTheme) H2Color() string { return c.Primary }

// H3Color returns the color applied to subsection headings.
func (c ColorTheme) H3Color() string { return c.Text }

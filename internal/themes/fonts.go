package themes

// Shared size scale. Every preset uses the same five steps; presets differ
// in families, weights, and letter spacing.
const (
	sizeName       = "28pt"
	sizeSection    = "16pt"
	sizeSubsection = "14pt"
	sizeNormal     = "11pt"
	sizeSmall      = "10pt"
)

// FontTheme is a fully populated font preset. LetterSpacing is empty when
// the preset does not adjust tracking.
type FontTheme struct {
	HeaderFamily   string
	BodyFamily     string
	WeightRegular  int
	WeightBold     int
	SizeName       string
	SizeSection    string
	SizeSubsection string
	SizeNormal     string
	SizeSmall      string
	LineHeight     float64
	LetterSpacing  string
}

var fontPresets = map[string]FontTheme{
	"classic": {
		HeaderFamily:   "Georgia",
		BodyFamily:     "Times New Roman",
		WeightRegular:  400,
		WeightBold:     700,
		SizeName:       sizeName,
		SizeSection:    sizeSection,
		SizeSubsection: sizeSubsection,
		SizeNormal:     sizeNormal,
		SizeSmall:      sizeSmall,
		LineHeight:     1.5,
	},
	"modern": {
		HeaderFamily:   "Inter",
		BodyFamily:     "Open Sans",
		WeightRegular:  400,
		WeightBold:     600,
		SizeName:       sizeName,
		SizeSection:    sizeSection,
		SizeSubsection: sizeSubsection,
		SizeNormal:     sizeNormal,
		SizeSmall:      sizeSmall,
		LineHeight:     1.5,
		LetterSpacing:  "-0.02em",
	},
	"sharp": {
		HeaderFamily:   "Montserrat",
		BodyFamily:     "Roboto",
		WeightRegular:  400,
		WeightBold:     700,
		SizeName:       sizeName,
		SizeSection:    sizeSection,
		SizeSubsection: sizeSubsection,
		SizeNormal:     sizeNormal,
		SizeSmall:      sizeSmall,
		LineHeight:     1.5,
		LetterSpacing:  "-0.03em",
	},
}

var fontDescriptions = map[string]string{
	"classic": "Traditional serif fonts (Georgia/Times)",
	"modern":  "Clean sans-serif (Inter/Open Sans)",
	"sharp":   "Bold geometric (Montserrat/Roboto)",
}

// Font returns the font preset registered under name.
func Font(name string) (FontTheme, error) {
	preset, ok := fontPresets[name]
	if !ok {
		return FontTheme{}, &UnknownThemeError{Kind: "font", Name: name, Available: FontNames()}
	}
	return preset, nil
}

// FontNames returns the valid font preset names in sorted order.
func FontNames() []string {
	return presetNames(fontPresets)
}

// FontDescription returns a one-line description of a font preset for
// listings. Unknown names yield an empty string.
func FontDescription(name string) string {
	return fontDescriptions[name]
}

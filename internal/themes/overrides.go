package themes

import (
	"fmt"
	"regexp"
	"strings"
)

// FontOverrides is a sparse override of FontTheme. Nil leaves fall through
// to the preset; a set leaf replaces the preset value after validation.
type FontOverrides struct {
	HeaderFamily   *string  `yaml:"header_family"`
	BodyFamily     *string  `yaml:"body_family"`
	WeightRegular  *int     `yaml:"weight_regular"`
	WeightBold     *int     `yaml:"weight_bold"`
	SizeName       *string  `yaml:"size_name"`
	SizeSection    *string  `yaml:"size_section"`
	SizeSubsection *string  `yaml:"size_subsection"`
	SizeNormal     *string  `yaml:"size_normal"`
	SizeSmall      *string  `yaml:"size_small"`
	LineHeight     *float64 `yaml:"line_height"`
	LetterSpacing  *string  `yaml:"letter_spacing"`
}

// ColorOverrides is a sparse override of ColorTheme.
type ColorOverrides struct {
	Primary    *string `yaml:"primary"`
	Secondary  *string `yaml:"secondary"`
	Accent     *string `yaml:"accent"`
	Text       *string `yaml:"text"`
	Muted      *string `yaml:"muted"`
	Background *string `yaml:"background"`
	Surface    *string `yaml:"surface"`
	Border     *string `yaml:"border"`
}

var (
	hexColorRe  = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	dimensionRe = regexp.MustCompile(`^[0-9]+(?:\.[0-9]+)?(?:pt|px|em)$`)
	spacingRe   = regexp.MustCompile(`^-?[0-9]+(?:\.[0-9]+)?(?:pt|px|em)$`)
)

func checkFamily(v string) string {
	if strings.TrimSpace(v) == "" {
		return "font family must not be empty"
	}
	return ""
}

func checkSize(v string) string {
	if !dimensionRe.MatchString(v) {
		return fmt.Sprintf("%q is not a size (expected a number with pt, px or em unit, e.g. 11pt)", v)
	}
	return ""
}

func checkSpacing(v string) string {
	if !spacingRe.MatchString(v) {
		return fmt.Sprintf("%q is not a letter spacing (expected an optionally signed number with pt, px or em unit, e.g. -0.02em)", v)
	}
	return ""
}

func checkColor(v string) string {
	if !hexColorRe.MatchString(v) {
		return fmt.Sprintf("%q is not a hex color (expected #RGB or #RRGGBB)", v)
	}
	return ""
}

// apply copies every set leaf onto dst. Leaves are validated independently
// so one bad value does not hide the rest.
func (o *FontOverrides) apply(dst *FontTheme) []InvalidOverrideError {
	var errs []InvalidOverrideError

	leaves := []struct {
		path  string
		src   *string
		dst   *string
		check func(string) string
	}{
		{"fonts.header_family", o.HeaderFamily, &dst.HeaderFamily, checkFamily},
		{"fonts.body_family", o.BodyFamily, &dst.BodyFamily, checkFamily},
		{"fonts.size_name", o.SizeName, &dst.SizeName, checkSize},
		{"fonts.size_section", o.SizeSection, &dst.SizeSection, checkSize},
		{"fonts.size_subsection", o.SizeSubsection, &dst.SizeSubsection, checkSize},
		{"fonts.size_normal", o.SizeNormal, &dst.SizeNormal, checkSize},
		{"fonts.size_small", o.SizeSmall, &dst.SizeSmall, checkSize},
		{"fonts.letter_spacing", o.LetterSpacing, &dst.LetterSpacing, checkSpacing},
	}
	for _, leaf := range leaves {
		if leaf.src == nil {
			continue
		}
		if reason := leaf.check(*leaf.src); reason != "" {
			errs = append(errs, InvalidOverrideError{Path: leaf.path, Reason: reason})
			continue
		}
		*leaf.dst = *leaf.src
	}

	weights := []struct {
		path string
		src  *int
		dst  *int
	}{
		{"fonts.weight_regular", o.WeightRegular, &dst.WeightRegular},
		{"fonts.weight_bold", o.WeightBold, &dst.WeightBold},
	}
	for _, w := range weights {
		if w.src == nil {
			continue
		}
		if *w.src < 100 || *w.src > 900 {
			errs = append(errs, InvalidOverrideError{Path: w.path, Reason: fmt.Sprintf("weight %d out of range (100-900)", *w.src)})
			continue
		}
		*w.dst = *w.src
	}

	if o.LineHeight != nil {
		if *o.LineHeight < 0.5 || *o.LineHeight > 3.0 {
			errs = append(errs, InvalidOverrideError{Path: "fonts.line_height", Reason: fmt.Sprintf("line height %.2f out of range (0.5-3.0)", *o.LineHeight)})
		} else {
			dst.LineHeight = *o.LineHeight
		}
	}

	return errs
}

func (o *ColorOverrides) apply(dst *ColorTheme) []InvalidOverrideError {
	slots := []struct {
		path string
		src  *string
		dst  *string
	}{
		{"colors.primary", o.Primary, &dst.Primary},
		{"colors.secondary", o.Secondary, &dst.Secondary},
		{"colors.accent", o.Accent, &dst.Accent},
		{"colors.text", o.Text, &dst.Text},
		{"colors.muted", o.Muted, &dst.Muted},
		{"colors.background", o.Background, &dst.Background},
		{"colors.surface", o.Surface, &dst.Surface},
		{"colors.border", o.Border, &dst.Border},
	}

	var errs []InvalidOverrideError
	for _, s := range slots {
		if s.src == nil {
			continue
		}
		if reason := checkColor(*s.src); reason != "" {
			errs = append(errs, InvalidOverrideError{Path: s.path, Reason: reason})
			continue
		}
		*s.dst = *s.src
	}
	return errs
}

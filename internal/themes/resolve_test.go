package themes

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string   { return &s }
func intPtr(i int) *int         { return &i }
func f64Ptr(f float64) *float64 { return &f }

func TestResolve_RoundTripIdentity(t *testing.T) {
	for _, fontName := range FontNames() {
		for _, colorName := range ColorNames() {
			style, err := Resolve(fontName, colorName, nil, nil)
			require.NoError(t, err)
			require.NotNil(t, style)

			wantFont, err := Font(fontName)
			require.NoError(t, err)
			wantColor, err := Color(colorName)
			require.NoError(t, err)

			assert.Equal(t, wantFont, style.Fonts, "font preset %s", fontName)
			assert.Equal(t, wantColor, style.Colors, "color preset %s", colorName)
		}
	}
}

func TestResolve_PrimaryColorOverride(t *testing.T) {
	style, err := Resolve("modern", "modern", nil, &ColorOverrides{Primary: strPtr("#1E40AF")})
	require.NoError(t, err)

	assert.Equal(t, "#1E40AF", style.Colors.Primary)

	// Everything else stays at the modern preset values.
	modern, err := Color("modern")
	require.NoError(t, err)
	assert.Equal(t, modern.Secondary, style.Colors.Secondary)
	assert.Equal(t, modern.Accent, style.Colors.Accent)
	assert.Equal(t, modern.Text, style.Colors.Text)
	assert.Equal(t, modern.Muted, style.Colors.Muted)
	assert.Equal(t, modern.Background, style.Colors.Background)
	assert.Equal(t, modern.Surface, style.Colors.Surface)
	assert.Equal(t, modern.Border, style.Colors.Border)

	modernFont, err := Font("modern")
	require.NoError(t, err)
	assert.Equal(t, modernFont, style.Fonts)
}

func TestResolve_SparseLeavesFallThrough(t *testing.T) {
	style, err := Resolve("classic", "sharp",
		&FontOverrides{BodyFamily: strPtr("Palatino"), SizeSmall: strPtr("9pt")},
		&ColorOverrides{Border: strPtr("#ABCDEF")})
	require.NoError(t, err)

	assert.Equal(t, "Palatino", style.Fonts.BodyFamily)
	assert.Equal(t, "9pt", style.Fonts.SizeSmall)
	assert.Equal(t, "#ABCDEF", style.Colors.Border)

	classic, _ := Font("classic")
	assert.Equal(t, classic.HeaderFamily, style.Fonts.HeaderFamily)
	assert.Equal(t, classic.WeightRegular, style.Fonts.WeightRegular)
	assert.Equal(t, classic.WeightBold, style.Fonts.WeightBold)
	assert.Equal(t, classic.SizeName, style.Fonts.SizeName)
	assert.Equal(t, classic.SizeNormal, style.Fonts.SizeNormal)
	assert.Equal(t, classic.LineHeight, style.Fonts.LineHeight)
	assert.Equal(t, classic.LetterSpacing, style.Fonts.LetterSpacing)

	sharp, _ := Color("sharp")
	assert.Equal(t, sharp.Primary, style.Colors.Primary)
	assert.Equal(t, sharp.Secondary, style.Colors.Secondary)
	assert.Equal(t, sharp.Accent, style.Colors.Accent)
	assert.Equal(t, sharp.Text, style.Colors.Text)
	assert.Equal(t, sharp.Muted, style.Colors.Muted)
	assert.Equal(t, sharp.Background, style.Colors.Background)
	assert.Equal(t, sharp.Surface, style.Colors.Surface)
}

func TestResolve_UnknownFontTheme(t *testing.T) {
	style, err := Resolve("doesnotexist", "modern", nil, nil)
	require.Error(t, err)
	assert.Nil(t, style)

	var unknownErr *UnknownThemeError
	require.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, "font", unknownErr.Kind)
	assert.Equal(t, "doesnotexist", unknownErr.Name)
	assert.Equal(t, []string{"classic", "modern", "sharp"}, unknownErr.Available)
	assert.Contains(t, err.Error(), "classic, modern, sharp")
}

func TestResolve_UnknownColorTheme(t *testing.T) {
	style, err := Resolve("modern", "neon", nil, nil)
	require.Error(t, err)
	assert.Nil(t, style)

	var unknownErr *UnknownThemeError
	require.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, "color", unknownErr.Kind)
	assert.Equal(t, "neon", unknownErr.Name)
}

func TestResolve_CollectsAllInvalidLeaves(t *testing.T) {
	style, err := Resolve("modern", "modern",
		&FontOverrides{
			WeightBold: intPtr(9000),
			SizeNormal: strPtr("eleven"),
		},
		&ColorOverrides{
			Primary: strPtr("blue"),
		})
	require.Error(t, err)
	assert.Nil(t, style)

	var overrideErrs *OverrideErrors
	require.True(t, errors.As(err, &overrideErrs))
	require.Len(t, overrideErrs.Errors, 3)

	paths := make([]string, 0, len(overrideErrs.Errors))
	for _, oe := range overrideErrs.Errors {
		paths = append(paths, oe.Path)
	}
	assert.Contains(t, paths, "fonts.weight_bold")
	assert.Contains(t, paths, "fonts.size_normal")
	assert.Contains(t, paths, "colors.primary")
}

func TestResolve_InvalidLeafYieldsNoStyle(t *testing.T) {
	// A valid sibling leaf does not rescue the resolution.
	style, err := Resolve("modern", "modern",
		&FontOverrides{BodyFamily: strPtr("Lato")},
		&ColorOverrides{Accent: strPtr("not-a-color")})
	require.Error(t, err)
	assert.Nil(t, style)
}

func TestResolve_DoesNotMutateCatalog(t *testing.T) {
	before, err := Color("modern")
	require.NoError(t, err)

	_, err = Resolve("modern", "modern", nil, &ColorOverrides{Primary: strPtr("#000000")})
	require.NoError(t, err)

	after, err := Color("modern")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestResolve_WeightBounds(t *testing.T) {
	style, err := Resolve("modern", "modern",
		&FontOverrides{WeightRegular: intPtr(100), WeightBold: intPtr(900)}, nil)
	require.NoError(t, err)
	assert.Equal(t, 100, style.Fonts.WeightRegular)
	assert.Equal(t, 900, style.Fonts.WeightBold)

	_, err = Resolve("modern", "modern", &FontOverrides{WeightRegular: intPtr(50)}, nil)
	require.Error(t, err)
}

func TestResolve_LineHeightBounds(t *testing.T) {
	style, err := Resolve("sharp", "sharp", &FontOverrides{LineHeight: f64Ptr(2.0)}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2.0, style.Fonts.LineHeight)

	_, err = Resolve("sharp", "sharp", &FontOverrides{LineHeight: f64Ptr(0.1)}, nil)
	require.Error(t, err)
}

func TestResolve_NegativeLetterSpacing(t *testing.T) {
	style, err := Resolve("classic", "classic", &FontOverrides{LetterSpacing: strPtr("-0.05em")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "-0.05em", style.Fonts.LetterSpacing)
}

func TestResolve_ShortHexColor(t *testing.T) {
	style, err := Resolve("modern", "modern", nil, &ColorOverrides{Muted: strPtr("#ccc")})
	require.NoError(t, err)
	assert.Equal(t, "#ccc", style.Colors.Muted)
}

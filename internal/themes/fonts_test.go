package themes

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFont_Classic(t *testing.T) {
	theme, err := Font("classic")
	require.NoError(t, err)
	assert.Equal(t, "Georgia", theme.HeaderFamily)
	assert.Equal(t, "Times New Roman", theme.BodyFamily)
	assert.Equal(t, 700, theme.WeightBold)
	assert.Empty(t, theme.LetterSpacing)
}

func TestFont_Modern(t *testing.T) {
	theme, err := Font("modern")
	require.NoError(t, err)
	assert.Equal(t, "Inter", theme.HeaderFamily)
	assert.Equal(t, "Open Sans", theme.BodyFamily)
	assert.Equal(t, 600, theme.WeightBold)
	assert.Equal(t, "-0.02em", theme.LetterSpacing)
}

func TestFont_Sharp(t *testing.T) {
	theme, err := Font("sharp")
	require.NoError(t, err)
	assert.Equal(t, "Montserrat", theme.HeaderFamily)
	assert.Equal(t, "Roboto", theme.BodyFamily)
	assert.Equal(t, "-0.03em", theme.LetterSpacing)
}

func TestFont_SharedSizeScale(t *testing.T) {
	for _, name := range FontNames() {
		theme, err := Font(name)
		require.NoError(t, err)
		assert.Equal(t, "28pt", theme.SizeName, name)
		assert.Equal(t, "16pt", theme.SizeSection, name)
		assert.Equal(t, "14pt", theme.SizeSubsection, name)
		assert.Equal(t, "11pt", theme.SizeNormal, name)
		assert.Equal(t, "10pt", theme.SizeSmall, name)
		assert.Equal(t, 1.5, theme.LineHeight, name)
	}
}

func TestFont_Unknown(t *testing.T) {
	_, err := Font("nonexistent")
	require.Error(t, err)

	var unknownErr *UnknownThemeError
	require.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, "font", unknownErr.Kind)
	assert.Contains(t, err.Error(), `unknown font theme "nonexistent"`)
}

func TestFontNames_Sorted(t *testing.T) {
	names := FontNames()
	assert.Equal(t, []string{"classic", "modern", "sharp"}, names)
	assert.True(t, sort.StringsAreSorted(names))
}

func TestFontDescription_KnownAndUnknown(t *testing.T) {
	assert.Equal(t, "Clean sans-serif (Inter/Open Sans)", FontDescription("modern"))
	assert.Empty(t, FontDescription("nope"))
}

func TestDefaultTheme_IsInCatalog(t *testing.T) {
	_, err := Font(DefaultTheme)
	assert.NoError(t, err)
	_, err = Color(DefaultTheme)
	assert.NoError(t, err)
}

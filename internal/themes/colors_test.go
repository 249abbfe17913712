package themes

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColor_Presets(t *testing.T) {
	tests := []struct {
		name    string
		primary string
		accent  string
	}{
		{"classic", "#2C3E50", "#8B0000"},
		{"modern", "#0066CC", "#FF6B35"},
		{"sharp", "#6B46C1", "#84CC16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme, err := Color(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.primary, theme.Primary)
			assert.Equal(t, tt.accent, theme.Accent)
			assert.NotEmpty(t, theme.Secondary)
			assert.NotEmpty(t, theme.Text)
			assert.NotEmpty(t, theme.Muted)
			assert.NotEmpty(t, theme.Background)
			assert.NotEmpty(t, theme.Surface)
			assert.NotEmpty(t, theme.Border)
		})
	}
}

func TestColor_Unknown(t *testing.T) {
	_, err := Color("pastel")
	require.Error(t, err)

	var unknownErr *UnknownThemeError
	require.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, []string{"classic", "modern", "sharp"}, unknownErr.Available)
}

func TestColorNames_Sorted(t *testing.T) {
	assert.Equal(t, []string{"classic", "modern", "sharp"}, ColorNames())
}

func TestColorTheme_HeadingColors(t *testing.T) {
	theme, err := Color("classic")
	require.NoError(t, err)
	assert.Equal(t, theme.Text, theme.H1Color())
	assert.Equal(t, theme.Primary, theme.H2Color())
	assert.Equal(t, theme.Text, theme.H3Color())
}

func TestColorDescription_KnownAndUnknown(t *testing.T) {
	assert.Equal(t, "Navy and burgundy (traditional)", ColorDescription("classic"))
	assert.Empty(t, ColorDescription("nope"))
}

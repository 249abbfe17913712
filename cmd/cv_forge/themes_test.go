package main

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemesCommand_ListsBothCatalogs(t *testing.T) {
	binaryPath := getBinaryPath(t)

	output, err := exec.Command(binaryPath, "themes").CombinedOutput()
	require.NoError(t, err)

	out := string(output)
	assert.Contains(t, out, "FONT THEMES")
	assert.Contains(t, out, "COLOR THEMES")
	for _, name := range []string{"classic", "modern", "sharp"} {
		assert.Contains(t, out, name)
	}
}

func TestThemesCommand_FontsOnly(t *testing.T) {
	binaryPath := getBinaryPath(t)

	output, err := exec.Command(binaryPath, "themes", "--fonts").CombinedOutput()
	require.NoError(t, err)

	assert.Contains(t, string(output), "FONT THEMES")
	assert.NotContains(t, string(output), "COLOR THEMES")
}

func TestThemesCommand_ColorsOnly(t *testing.T) {
	binaryPath := getBinaryPath(t)

	output, err := exec.Command(binaryPath, "themes", "--colors").CombinedOutput()
	require.NoError(t, err)

	assert.Contains(t, string(output), "COLOR THEMES")
	assert.NotContains(t, string(output), "FONT THEMES")
}

// Package typst locates and invokes the external Typst CLI used for PDF
// typesetting.
package typst

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultsToPathBinary(t *testing.T) {
	engine := New("")
	assert.Equal(t, DefaultBinary, engine.Binary)
}

func TestNew_KeepsExplicitBinary(t *testing.T) {
	engine := New("/opt/typst/bin/typst")
	assert.Equal(t, "/opt/typst/bin/typst", engine.Binary)
}

func TestInstalled_FalseForMissingBinary(t *testing.T) {
	engine := New("cv-forge-missing-typst-binary")
	assert.False(t, engine.Installed())
}

func TestCompile_MissingBinary(t *testing.T) {
	engine := New("cv-forge-missing-typst-binary")
	_, _, err := engine.Compile(context.Background(), []byte("hello"))
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Message, "typst not found in PATH")
	assert.Contains(t, ce.Message, "https://github.com/typst/typst/releases")
	assert.True(t, errors.Is(err, exec.ErrNotFound))
}

func TestVersion_MissingBinary(t *testing.T) {
	engine := New("cv-forge-missing-typst-binary")
	_, err := engine.Version(context.Background())

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Message, "failed to query typst version")
}

func TestCompileError_Format(t *testing.T) {
	withCause := &CompileError{Message: "typst compilation failed", Cause: errors.New("exit status 1")}
	assert.Equal(t, "typst: typst compilation failed: exit status 1", withCause.Error())

	bare := &CompileError{Message: "typst compilation timed out"}
	assert.Equal(t, "typst: typst compilation timed out", bare.Error())
}

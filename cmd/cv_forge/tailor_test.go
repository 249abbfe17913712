package main

import (
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

// withoutAPIKey masks GEMINI_API_KEY so the key check is deterministic
// regardless of the developer's environment.
func withoutAPIKey(cmd *exec.Cmd) {
	cmd.Env = append(os.Environ(), "GEMINI_API_KEY=")
}

func TestTailorCommand_RequiresJobSource(t *testing.T) {
	binaryPath := getBinaryPath(t)
	cvPath := writeTestCV(t)

	cmd := exec.Command(binaryPath, "tailor", cvPath)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "either --job or --job-url must be provided")
}

func TestTailorCommand_JobSourcesMutuallyExclusive(t *testing.T) {
	binaryPath := getBinaryPath(t)
	cvPath := writeTestCV(t)

	cmd := exec.Command(binaryPath, "tailor", cvPath, "--job", "job.txt", "--job-url", "https://example.com/job")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "mutually exclusive")
}

func TestTailorCommand_InvalidModelTier(t *testing.T) {
	binaryPath := getBinaryPath(t)
	cvPath := writeTestCV(t)

	cmd := exec.Command(binaryPath, "tailor", cvPath, "--job", "job.txt", "--model", "turbo")
	withoutAPIKey(cmd)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "unknown model tier")
}

func TestTailorCommand_RequiresAPIKey(t *testing.T) {
	binaryPath := getBinaryPath(t)
	cvPath := writeTestCV(t)

	cmd := exec.Command(binaryPath, "tailor", cvPath, "--job", "job.txt")
	withoutAPIKey(cmd)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "GEMINI_API_KEY")
}

// Package typst locates and invokes the external Typst CLI used for PDF
// typesetting.
package typst

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	// CompileTimeout is the maximum time to wait for a typesetting run when
	// the caller's context carries no deadline.
	CompileTimeout = 30 * time.Second

	// DefaultBinary is the executable probed on PATH when no explicit path
	// is configured.
	DefaultBinary = "typst"
)

// Engine runs the Typst CLI.
type Engine struct {
	// Binary is the typst executable name or path.
	Binary string
	// FontDir is an optional directory of bundled fonts, passed via
	// --font-path when it exists.
	FontDir string
}

// New returns an Engine for the given binary, falling back to the PATH
// default when empty.
func New(binary string) *Engine {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Engine{Binary: binary}
}

// Installed reports whether the typst executable can be located.
func (e *Engine) Installed() bool {
	_, err := exec.LookPath(e.binary())
	return err == nil
}

// Version returns the typst CLI version string.
func (e *Engine) Version(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, e.binary(), "--version").Output()
	if err != nil {
		return "", &CompileError{Message: "failed to query typst version", Cause: err}
	}
	return strings.TrimSpace(string(out)), nil
}

// Compile typesets source into a PDF and returns its bytes together with
// the combined engine log output. The source is staged in a temporary
// working directory that is removed when the run finishes.
func (e *Engine) Compile(ctx context.Context, source []byte) (pdf []byte, logOutput string, err error) {
	binary := e.binary()
	if _, err := exec.LookPath(binary); err != nil {
		return nil, "", &CompileError{
			Message: "typst not found in PATH. Please install Typst (https://github.com/typst/typst/releases)",
			Cause:   err,
		}
	}

	workDir, err := os.MkdirTemp("", "typst-compile-*")
	if err != nil {
		return nil, "", &CompileError{
			Message: "failed to create temporary working directory",
			Cause:   err,
		}
	}
	defer os.RemoveAll(workDir)

	inPath := filepath.Join(workDir, "in.typ")
	outPath := filepath.Join(workDir, "out.pdf")
	if err := os.WriteFile(inPath, source, 0644); err != nil {
		return nil, "", &CompileError{
			Message: "failed to write typst source to working directory",
			Cause:   err,
		}
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, CompileTimeout)
		defer cancel()
	}

	args := []string{"compile", inPath, outPath}
	if e.FontDir != "" {
		if _, statErr := os.Stat(e.FontDir); statErr == nil {
			args = append(args, "--font-path", e.FontDir)
		}
	}
	cmd := exec.CommandContext(ctx, binary, args...)

	// Capture both stdout and stderr
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	logOutput = stdout.String() + stderr.String()

	if ctx.Err() == context.DeadlineExceeded {
		return nil, logOutput, &CompileError{
			Message:   "typst compilation timed out",
			LogOutput: logOutput,
			Cause:     ctx.Err(),
		}
	}
	if runErr != nil {
		return nil, logOutput, &CompileError{
			Message:   "typst compilation failed",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}

	pdf, err = os.ReadFile(outPath)
	if err != nil {
		return nil, logOutput, &CompileError{
			Message:   "typst compilation produced no PDF",
			LogOutput: logOutput,
			Cause:     err,
		}
	}
	return pdf, logOutput, nil
}

func (e *Engine) binary() string {
	if e.Binary == "" {
		return DefaultBinary
	}
	return e.Binary
}

package main

import (
	"fmt"
	"os/exec"
	"runtime"
)

// openArgs returns the platform launcher invocation for a file or URL.
func openArgs(goos, target string) []string {
	switch goos {
	case "darwin":
		return []string{"open", target}
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler", target}
	default:
		return []string{"xdg-open", target}
	}
}

// openFile launches the platform opener without waiting for the viewer to
// exit.
func openFile(target string) error {
	args := openArgs(runtime.GOOS, target)
	cmd := exec.Command(args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", target, err)
	}
	return cmd.Process.Release()
}

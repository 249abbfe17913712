// Package main provides the cv_forge command line interface.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/cv-forge/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "cv_forge",
	Short: "Markdown-to-CV typesetting with themes and AI tailoring",
	Long:  "cv_forge renders markdown CVs and cover letters to PDF, DOCX, and HTML with themeable styling, previews them live in the browser, and can tailor a CV against a job posting using AI.",
}

func main() {
	log.SetFlags(0)

	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads and validates the config file, explicit path or default
// location. Callers apply their flag overrides on the result and then merge
// defaults, so flags win over config and config wins over defaults.
func loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return *cfg, nil
}

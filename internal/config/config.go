// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jonathan/cv-forge/internal/llm"
	"github.com/jonathan/cv-forge/internal/themes"
)

// Config is the optional CLI configuration loaded from a JSON file.
// All fields are optional; CLI flags win over values loaded here, and
// values loaded here win over built-in defaults.
type Config struct {
	// Output
	OutputDir string `json:"output_dir,omitempty"` // Directory for rendered artifacts
	AutoOpen  bool   `json:"auto_open,omitempty"`  // Open artifacts after rendering

	// Typesetting
	TypstPath string `json:"typst_path,omitempty"` // Path to the typst binary (default: found on PATH)

	// Theme defaults
	DefaultFontTheme  string `json:"default_font_theme,omitempty"`  // Font theme when frontmatter names none
	DefaultColorTheme string `json:"default_color_theme,omitempty"` // Color theme when frontmatter names none

	// Tailoring
	Model string `json:"model,omitempty"` // Model tier: lite, standard, advanced

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Defaults returns the built-in configuration values.
func Defaults() Config {
	return Config{
		OutputDir:         ".",
		DefaultFontTheme:  themes.DefaultTheme,
		DefaultColorTheme: themes.DefaultTheme,
		Model:             string(llm.TierAdvanced),
	}
}

// DefaultPath returns the default config file location
// (~/.config/cv-forge/config.json on Linux), or "" when no user config
// directory can be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "cv-forge", "config.json")
}

// Load reads configuration from a JSON file. An empty path means the
// default location, where a missing file is not an error and yields an
// empty config. An explicitly requested file must exist and parse.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return &Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration names real themes, a real
// model tier, and an existing typst binary when one is given.
func (c *Config) Validate() error {
	if c.DefaultFontTheme != "" {
		if _, err := themes.Font(c.DefaultFontTheme); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	if c.DefaultColorTheme != "" {
		if _, err := themes.Color(c.DefaultColorTheme); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	if c.Model != "" {
		if _, err := llm.ParseTier(c.Model); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	if c.TypstPath != "" {
		if _, err := os.Stat(c.TypstPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: typst binary not found: %s", c.TypstPath)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Bool fields are not merged: unset is indistinguishable from
// false, so flags always win for those.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.TypstPath == "" {
		result.TypstPath = defaults.TypstPath
	}
	if result.DefaultFontTheme == "" {
		result.DefaultFontTheme = defaults.DefaultFontTheme
	}
	if result.DefaultColorTheme == "" {
		result.DefaultColorTheme = defaults.DefaultColorTheme
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}

	return result
}

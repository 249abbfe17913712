// Package prompts provides a loader for externalized LLM prompt templates.
// Prompts are stored as JSON files and embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// The embedded files are immutable, so the whole catalog is parsed once on
// first access.
var (
	loadOnce sync.Once
	catalog  map[string]map[string]string
	loadErr  error
)

// Get retrieves a prompt by filename and key.
// The filename should not include a path (e.g. "tailoring.json").
// Returns an error if the file or key is not found.
func Get(filename, key string) (string, error) {
	if err := load(); err != nil {
		return "", err
	}

	prompts, exists := catalog[filename]
	if !exists {
		return "", fmt.Errorf("prompt file %q not found", filename)
	}
	prompt, exists := prompts[key]
	if !exists {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet retrieves a prompt by filename and key, panicking if not found.
// Use this for prompts that are required at initialization time.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format replaces template placeholders in the form {{.Key}} with values
// from data. Placeholders without a matching key are left untouched.
func Format(template string, data map[string]string) string {
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// load parses every embedded prompt file into the catalog.
func load() error {
	loadOnce.Do(func() {
		catalog = make(map[string]map[string]string)

		entries, err := promptFiles.ReadDir(".")
		if err != nil {
			loadErr = fmt.Errorf("failed to read embedded prompts: %w", err)
			return
		}
		for _, entry := range entries {
			data, err := promptFiles.ReadFile(entry.Name())
			if err != nil {
				loadErr = fmt.Errorf("failed to read prompt file %s: %w", entry.Name(), err)
				return
			}
			var prompts map[string]string
			if err := json.Unmarshal(data, &prompts); err != nil {
				loadErr = fmt.Errorf("failed to parse prompt file %s: %w", entry.Name(), err)
				return
			}
			catalog[entry.Name()] = prompts
		}
	})
	return loadErr
}

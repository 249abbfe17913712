// Package scaffold writes starter documents for new CVs and cover letters
// from templates embedded at compile time.
package scaffold

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed templates/*.md
var templates embed.FS

// Kinds lists the document kinds that can be scaffolded, sorted by name.
func Kinds() []string {
	entries, err := templates.ReadDir("templates")
	if err != nil {
		return nil
	}
	kinds := make([]string, 0, len(entries))
	for _, entry := range entries {
		kinds = append(kinds, strings.TrimSuffix(entry.Name(), ".md"))
	}
	sort.Strings(kinds)
	return kinds
}

// Create writes the starter document of the given kind to path, with the
// frontmatter theme defaults replaced when fontTheme or colorTheme is
// non-empty. It refuses to overwrite an existing file.
func Create(kind, path, fontTheme, colorTheme string) error {
	data, err := templates.ReadFile("templates/" + kind + ".md")
	if err != nil {
		return fmt.Errorf("unknown document kind %q (want one of: %s)", kind, strings.Join(Kinds(), ", "))
	}
	data = withThemes(data, fontTheme, colorTheme)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%s already exists, refusing to overwrite", path)
		}
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// withThemes rewrites the template's theme lines. The templates ship with
// both slots set to "modern", so a plain replace is enough.
func withThemes(data []byte, fontTheme, colorTheme string) []byte {
	if fontTheme != "" {
		data = bytes.Replace(data, []byte("font_theme: modern"), []byte("font_theme: "+fontTheme), 1)
	}
	if colorTheme != "" {
		data = bytes.Replace(data, []byte("color_theme: modern"), []byte("color_theme: "+colorTheme), 1)
	}
	return data
}

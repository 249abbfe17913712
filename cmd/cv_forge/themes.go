package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-forge/internal/observability"
	"github.com/jonathan/cv-forge/internal/themes"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available font and color themes",
	Long:  "Print the font and color theme catalogs with their descriptions. Select themes per document via font_theme and color_theme in the frontmatter.",
	RunE:  runThemes,
}

var (
	themesFonts  bool
	themesColors bool
)

func init() {
	themesCmd.Flags().BoolVar(&themesFonts, "fonts", false, "Show only font themes")
	themesCmd.Flags().BoolVar(&themesColors, "colors", false, "Show only color themes")

	rootCmd.AddCommand(themesCmd)
}

func runThemes(_ *cobra.Command, _ []string) error {
	printer := observability.NewPrinter(os.Stdout)

	if themesFonts || !themesColors {
		entries := make([]observability.ThemeEntry, 0, len(themes.FontNames()))
		for _, name := range themes.FontNames() {
			entries = append(entries, observability.ThemeEntry{
				Name:        name,
				Description: themes.FontDescription(name),
			})
		}
		printer.PrintThemeTable("FONT THEMES", entries)
	}

	if themesColors || !themesFonts {
		entries := make([]observability.ThemeEntry, 0, len(themes.ColorNames()))
		for _, name := range themes.ColorNames() {
			entries = append(entries, observability.ThemeEntry{
				Name:        name,
				Description: themes.ColorDescription(name),
			})
		}
		printer.PrintThemeTable("COLOR THEMES", entries)
	}
	return nil
}

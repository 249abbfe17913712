package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-forge/internal/config"
	"github.com/jonathan/cv-forge/internal/scaffold"
	"github.com/jonathan/cv-forge/internal/themes"
)

var newCmd = &cobra.Command{
	Use:   "new [kind] [path]",
	Short: "Create a starter document",
	Long:  "Write a starter document of the given kind (" + strings.Join(scaffold.Kinds(), " or ") + ") to path, defaulting to <kind>.md in the current directory. Existing files are never overwritten.",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runNew,
}

var (
	newFontTheme  string
	newColorTheme string
	newConfig     string
)

func init() {
	newCmd.Flags().StringVar(&newFontTheme, "font-theme", "", "Font theme for the starter frontmatter (default: config default_font_theme, else modern)")
	newCmd.Flags().StringVar(&newColorTheme, "color-theme", "", "Color theme for the starter frontmatter (default: config default_color_theme, else modern)")
	newCmd.Flags().StringVar(&newConfig, "config", "", "Path to config.json (default: ~/.config/cv-forge/config.json)")

	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(newConfig)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("font-theme") {
		cfg.DefaultFontTheme = newFontTheme
	}
	if cmd.Flags().Changed("color-theme") {
		cfg.DefaultColorTheme = newColorTheme
	}
	merged := cfg.MergeWithDefaults(config.Defaults())

	if _, err := themes.Font(merged.DefaultFontTheme); err != nil {
		return err
	}
	if _, err := themes.Color(merged.DefaultColorTheme); err != nil {
		return err
	}

	kind := args[0]
	path := kind + ".md"
	if len(args) == 2 {
		path = args[1]
	}

	if err := scaffold.Create(kind, path, merged.DefaultFontTheme, merged.DefaultColorTheme); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Created %s\n", path)
	fmt.Fprintf(os.Stdout, "Edit it, then render with: cv_forge build %s\n", path)
	return nil
}

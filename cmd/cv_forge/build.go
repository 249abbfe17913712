package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-forge/internal/config"
	"github.com/jonathan/cv-forge/internal/observability"
	"github.com/jonathan/cv-forge/internal/pipeline"
)

var buildCmd = &cobra.Command{
	Use:   "build [file.md]",
	Short: "Render a document to PDF, DOCX, or HTML",
	Long:  "Parse a markdown document, resolve its themes, and render it to one or more output formats. Formats render concurrently; PDF requires the typst binary.",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuild,
}

var (
	buildFormats  string
	buildOutput   string
	buildTemplate string
	buildTypst    string
	buildConfig   string
	buildOpen     bool
	buildVerbose  bool
)

func init() {
	buildCmd.Flags().StringVarP(&buildFormats, "format", "f", "pdf", "Comma-separated output formats: pdf, docx, html")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Output directory (default: config output_dir, else current directory)")
	buildCmd.Flags().StringVarP(&buildTemplate, "template", "t", "", "Path to a Typst snippet prepended to the generated source")
	buildCmd.Flags().StringVar(&buildTypst, "typst", "", "Path to the typst binary (default: config typst_path, else PATH lookup)")
	buildCmd.Flags().StringVar(&buildConfig, "config", "", "Path to config.json (default: ~/.config/cv-forge/config.json)")
	buildCmd.Flags().BoolVar(&buildOpen, "open", false, "Open the first artifact when done")
	buildCmd.Flags().BoolVarP(&buildVerbose, "verbose", "v", false, "Print progress for each pipeline step")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(buildConfig)
	if err != nil {
		return err
	}

	// Flags win over config values
	if cmd.Flags().Changed("output") {
		cfg.OutputDir = buildOutput
	}
	if cmd.Flags().Changed("typst") {
		cfg.TypstPath = buildTypst
	}
	if cmd.Flags().Changed("open") {
		cfg.AutoOpen = buildOpen
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = buildVerbose
	}
	merged := cfg.MergeWithDefaults(config.Defaults())

	var template string
	if buildTemplate != "" {
		content, err := os.ReadFile(buildTemplate)
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", buildTemplate, err)
		}
		template = string(content)
	}

	opts := pipeline.BuildOptions{
		InputPath: args[0],
		Formats:   splitFormats(buildFormats),
		OutputDir: merged.OutputDir,
		TypstPath: merged.TypstPath,
		Template:  template,
	}
	if merged.Verbose {
		opts.OnProgress = func(event pipeline.ProgressEvent) {
			log.Printf("[build] %s: %s", event.Step, event.Message)
		}
	}

	result, err := pipeline.Build(ctx, opts)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintRenderReport(artifactRows(result.Artifacts))

	if merged.AutoOpen && len(result.Artifacts) > 0 {
		if err := openFile(result.Artifacts[0].Path); err != nil {
			log.Printf("[build] %v", err)
		}
	}
	return nil
}

// splitFormats turns a comma-separated flag value into format names,
// dropping empty entries.
func splitFormats(s string) []string {
	parts := strings.Split(s, ",")
	formats := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			formats = append(formats, trimmed)
		}
	}
	return formats
}

func artifactRows(artifacts []pipeline.Artifact) []observability.ArtifactRow {
	rows := make([]observability.ArtifactRow, len(artifacts))
	for i, artifact := range artifacts {
		rows[i] = observability.ArtifactRow{
			Format:   string(artifact.Format),
			Path:     artifact.Path,
			Duration: artifact.Duration,
		}
	}
	return rows
}

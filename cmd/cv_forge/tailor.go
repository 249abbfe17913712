package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-forge/internal/config"
	"github.com/jonathan/cv-forge/internal/document"
	"github.com/jonathan/cv-forge/internal/ingestion"
	"github.com/jonathan/cv-forge/internal/llm"
	"github.com/jonathan/cv-forge/internal/observability"
	"github.com/jonathan/cv-forge/internal/pipeline"
	"github.com/jonathan/cv-forge/internal/tailoring"
)

var tailorCmd = &cobra.Command{
	Use:   "tailor [file.md]",
	Short: "Rewrite a CV against a job description with AI",
	Long:  "Ingest a job description from a file or URL, rewrite the CV content against it, and write the result next to the source as <stem>_tailored.md. Requires GEMINI_API_KEY.",
	Args:  cobra.ExactArgs(1),
	RunE:  runTailor,
}

var (
	tailorJob     string
	tailorJobURL  string
	tailorModel   string
	tailorBrowser bool
	tailorFormats string
	tailorOutput  string
	tailorTypst   string
	tailorConfig  string
	tailorVerbose bool
)

func init() {
	tailorCmd.Flags().StringVarP(&tailorJob, "job", "j", "", "Path to a job description file (.txt, .md, or .pdf)")
	tailorCmd.Flags().StringVar(&tailorJobURL, "job-url", "", "URL of a job posting (mutually exclusive with --job)")
	tailorCmd.Flags().StringVarP(&tailorModel, "model", "m", "", "Model tier: lite, standard, or advanced (default: config model, else advanced)")
	tailorCmd.Flags().BoolVar(&tailorBrowser, "browser", false, "Use a headless browser for script-rendered job pages (requires Chrome)")
	tailorCmd.Flags().StringVarP(&tailorFormats, "format", "f", "", "Also render the tailored document to these formats (comma-separated)")
	tailorCmd.Flags().StringVarP(&tailorOutput, "output", "o", "", "Output directory (default: config output_dir, else current directory)")
	tailorCmd.Flags().StringVar(&tailorTypst, "typst", "", "Path to the typst binary, used with --format pdf")
	tailorCmd.Flags().StringVar(&tailorConfig, "config", "", "Path to config.json (default: ~/.config/cv-forge/config.json)")
	tailorCmd.Flags().BoolVarP(&tailorVerbose, "verbose", "v", false, "Print diagnostic output")

	rootCmd.AddCommand(tailorCmd)
}

func runTailor(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if tailorJob == "" && tailorJobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided")
	}
	if tailorJob != "" && tailorJobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	cfg, err := loadConfig(tailorConfig)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = tailorModel
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputDir = tailorOutput
	}
	if cmd.Flags().Changed("typst") {
		cfg.TypstPath = tailorTypst
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = tailorVerbose
	}
	merged := cfg.MergeWithDefaults(config.Defaults())

	tier, err := llm.ParseTier(merged.Model)
	if err != nil {
		return err
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required (set it or add it to .env)")
	}

	doc, err := document.ParseFile(args[0])
	if err != nil {
		return err
	}

	var jobText string
	var jobRef string
	if tailorJob != "" {
		jobRef = tailorJob
		jobText, err = ingestion.FromFile(ctx, tailorJob)
	} else {
		jobRef = tailorJobURL
		jobText, err = ingestion.FromURL(ctx, tailorJobURL, tailorBrowser, merged.Verbose)
	}
	if err != nil {
		return fmt.Errorf("failed to ingest job description: %w", err)
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	tailorer := tailoring.New(client, tailoring.Options{
		Tier:       tier,
		SourcePath: args[0],
		JobPath:    jobRef,
		Verbose:    merged.Verbose,
	})

	result, err := tailorer.Tailor(ctx, doc, jobText)
	if err != nil {
		return err
	}

	outDir := merged.OutputDir
	if outDir != "." {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	stem := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	outPath := filepath.Join(outDir, stem+"_tailored.md")
	if err := os.WriteFile(outPath, []byte(result.Markdown), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintTailoringSummary(result.CV)
	printer.PrintSuggestions(result.CV.Suggestions)
	fmt.Fprintf(os.Stdout, "Tailored document: %s\n", outPath)

	if tailorFormats != "" {
		buildResult, err := pipeline.Build(ctx, pipeline.BuildOptions{
			InputPath: outPath,
			Formats:   splitFormats(tailorFormats),
			OutputDir: merged.OutputDir,
			TypstPath: merged.TypstPath,
		})
		if err != nil {
			return err
		}
		printer.PrintRenderReport(artifactRows(buildResult.Artifacts))

		if merged.AutoOpen && len(buildResult.Artifacts) > 0 {
			if err := openFile(buildResult.Artifacts[0].Path); err != nil {
				log.Printf("[tailor] %v", err)
			}
		}
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-forge/internal/config"
	"github.com/jonathan/cv-forge/internal/document"
	"github.com/jonathan/cv-forge/internal/observability"
	"github.com/jonathan/cv-forge/internal/typst"
)

var checkCmd = &cobra.Command{
	Use:   "check [file.md]",
	Short: "Validate a document and the typesetting toolchain",
	Long:  "Parse the document, resolve its themes, and probe for the typst binary. Exits non-zero when any problem is found.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

var (
	checkTypst  string
	checkConfig string
)

func init() {
	checkCmd.Flags().StringVar(&checkTypst, "typst", "", "Path to the typst binary (default: config typst_path, else PATH lookup)")
	checkCmd.Flags().StringVar(&checkConfig, "config", "", "Path to config.json (default: ~/.config/cv-forge/config.json)")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(checkConfig)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("typst") {
		cfg.TypstPath = checkTypst
	}
	merged := cfg.MergeWithDefaults(config.Defaults())

	printer := observability.NewPrinter(os.Stdout)
	var problems []string

	doc, err := document.ParseFile(args[0])
	if err != nil {
		problems = append(problems, err.Error())
	} else {
		printer.PrintDocumentSummary(args[0], doc)
		if _, err := doc.ResolveStyle(); err != nil {
			problems = append(problems, err.Error())
		}
	}

	engine := typst.New(merged.TypstPath)
	if engine.Installed() {
		if version, err := engine.Version(ctx); err == nil {
			fmt.Fprintf(os.Stdout, "typst: %s\n", version)
		}
	} else {
		problems = append(problems, "typst binary not found; PDF output unavailable (https://github.com/typst/typst/releases)")
	}

	printer.PrintCheckResult(problems)
	if len(problems) > 0 {
		return fmt.Errorf("document check failed")
	}
	return nil
}

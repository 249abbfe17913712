package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-forge/internal/config"
	"github.com/jonathan/cv-forge/internal/preview"
)

var serveCmd = &cobra.Command{
	Use:   "serve [file.md]",
	Short: "Preview a document in the browser with live reload",
	Long:  "Serve an HTML preview of the document on localhost and reload the browser whenever the file changes. Render errors appear as an overlay on the page.",
	Args:  cobra.ExactArgs(1),
	RunE:  runServe,
}

var (
	servePort    int
	serveOpen    bool
	serveConfig  string
	serveVerbose bool
)

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "Port to listen on (0 picks a free port)")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "Open the preview in the browser")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to config.json (default: ~/.config/cv-forge/config.json)")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Log every reload")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(serveConfig)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("open") {
		cfg.AutoOpen = serveOpen
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = serveVerbose
	}
	merged := cfg.MergeWithDefaults(config.Defaults())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := preview.New(args[0], preview.Options{
		Port:    servePort,
		Verbose: merged.Verbose,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(ctx) }()

	// Wait for the listener so the printed URL carries the bound port.
	for srv.URL() == "" {
		select {
		case err := <-errCh:
			return err
		case <-time.After(10 * time.Millisecond):
		}
	}

	fmt.Fprintf(os.Stdout, "Previewing %s at %s (Ctrl+C to stop)\n", args[0], srv.URL())
	if merged.AutoOpen {
		if err := openFile(srv.URL()); err != nil {
			log.Printf("[serve] %v", err)
		}
	}
	return <-errCh
}

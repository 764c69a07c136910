package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio/internal/snapshot"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [url]",
	Short: "Print a running portfolio page to PDF with headless Chrome",
	Long: "Loads the page in headless Chrome and saves it as a PDF named after the page title. " +
		"Defaults to the local server on the configured port.",
	Args: cobra.MaximumNArgs(1),
	RunE: runSnapshot,
}

var (
	snapshotOutDir    string
	snapshotTimeout   time.Duration
	snapshotWaitFor   string
	snapshotLandscape bool
)

func init() {
	snapshotCmd.Flags().StringVarP(&snapshotOutDir, "out", "o", "", "Directory to write the PDF to")
	snapshotCmd.Flags().DurationVar(&snapshotTimeout, "timeout", snapshot.DefaultTimeout, "Maximum time to load and print the page")
	snapshotCmd.Flags().StringVar(&snapshotWaitFor, "wait-for", "body", "CSS selector that must be visible before printing")
	snapshotCmd.Flags().BoolVar(&snapshotLandscape, "landscape", false, "Print in landscape orientation")

	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(os.Getenv)
	if err != nil {
		return err
	}
	flagString(cmd, "out", snapshotOutDir, &cfg.OutputDir)

	target := fmt.Sprintf("http://localhost:%d/", cfg.Port)
	if len(args) == 1 {
		target = args[0]
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	res, err := snapshot.PrintPage(ctx, target, snapshot.Options{
		Timeout:   snapshotTimeout,
		WaitFor:   snapshotWaitFor,
		Landscape: snapshotLandscape,
		Verbose:   cfg.Verbose,
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(cfg.OutputDir, snapshot.FileName(res.Title))
	if err := os.WriteFile(path, res.PDF, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes) from %s\n", path, len(res.PDF), res.URL)
	return nil
}

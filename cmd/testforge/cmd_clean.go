package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"testforge/internal/analyzer"
)

// cleanCmd removes previously generated scaffolds
var cleanCmd = &cobra.Command{
	Use:   "clean [path]",
	Short: "Delete the scaffolds the current sources would generate",
	Long: `Re-scans the source tree, computes every scaffold path the configured
categories would produce, and deletes the ones that exist. Files other
than the expected scaffolds are never touched, so hand-written tests
sharing the output root are safe.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClean,
}

func init() {
	registerRunFlags(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	applyFlags(cmd, args)
	// Plan only; the run computes paths without writing.
	opts, err := buildOptions(true)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	report, err := analyzer.New(opts, logger).Run(ctx)
	if err != nil {
		return fmt.Errorf("clean scan failed: %w", err)
	}

	removed := 0
	for _, path := range report.Written {
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("failed to delete %s: %w", path, err)
		}
		logger.Debug("removed scaffold", zap.String("path", path))
		removed++
	}
	fmt.Printf("Removed %d of %d expected scaffolds\n", removed, len(report.Written))
	return nil
}

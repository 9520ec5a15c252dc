package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"testforge/internal/analyzer"
	"testforge/internal/generate"
	"testforge/internal/naming"
)

var (
	flagOut         string
	flagCategory    string
	flagNaming      string
	flagInclude     []string
	flagExclude     []string
	flagConcurrency int
	flagDryRun      bool
)

// generateCmd runs one batch generation pass
var generateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Generate test scaffolds for a Java source tree",
	Long: `Scans the source tree (argument, config, or ./src/main/java), models
every stereotyped class, and writes scaffolds under the output root,
one <Class>Test.java per class.

Example:
  testforge generate ./src/main/java --out ./src/test/java --naming snake`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	registerRunFlags(generateCmd)
	generateCmd.Flags().IntVar(&flagConcurrency, "concurrency", 0, "Parallel scan workers (0 = auto)")
	generateCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Plan output paths without writing files")
}

// registerRunFlags adds the flags shared by every command that maps
// sources to scaffold paths.
func registerRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagOut, "out", "o", "", "Output root for generated scaffolds")
	cmd.Flags().StringVar(&flagCategory, "category", "", "Scaffold category: unit, integration, or all")
	cmd.Flags().StringVar(&flagNaming, "naming", "", "Test naming convention: camel, snake, or given-when-then")
	cmd.Flags().StringSliceVar(&flagInclude, "include", nil, "Qualified-name patterns to include (repeatable)")
	cmd.Flags().StringSliceVar(&flagExclude, "exclude", nil, "Qualified-name patterns to exclude (repeatable)")
}

// applyFlags lays command-line overrides over the loaded config.
func applyFlags(cmd *cobra.Command, args []string) {
	if len(args) > 0 {
		cfg.Source = args[0]
	}
	f := cmd.Flags()
	if f.Changed("out") {
		cfg.Output = flagOut
	}
	if f.Changed("category") {
		cfg.Category = flagCategory
	}
	if f.Changed("naming") {
		cfg.Naming = flagNaming
	}
	if f.Changed("include") {
		cfg.Include = flagInclude
	}
	if f.Changed("exclude") {
		cfg.Exclude = flagExclude
	}
	if f.Changed("concurrency") {
		cfg.Concurrency = flagConcurrency
	}
}

// buildOptions validates the effective config and maps it onto
// analyzer options.
func buildOptions(dryRun bool) (analyzer.Options, error) {
	if err := cfg.Validate(); err != nil {
		return analyzer.Options{}, err
	}
	style, err := naming.ParseStyle(cfg.Naming)
	if err != nil {
		return analyzer.Options{}, err
	}
	category, err := generate.ParseCategory(cfg.Category)
	if err != nil {
		return analyzer.Options{}, err
	}
	return analyzer.Options{
		Roots:              []string{cfg.Source},
		OutputRoot:         cfg.Output,
		Includes:           cfg.Include,
		Excludes:           cfg.Exclude,
		Style:              style,
		Category:           category,
		Concurrency:        cfg.Concurrency,
		DryRun:             dryRun,
		DisableDirCreation: !cfg.CreateDirs,
	}, nil
}

// signalContext returns a context cancelled by SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}

func runGenerate(cmd *cobra.Command, args []string) error {
	applyFlags(cmd, args)
	opts, err := buildOptions(flagDryRun)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	report, err := analyzer.New(opts, logger).Run(ctx)
	if err != nil {
		return fmt.Errorf("generation run failed: %w", err)
	}

	printReport(report, flagDryRun)
	if !report.Success() {
		return fmt.Errorf("generation completed with %d failures", len(report.Failures))
	}
	return nil
}

func printReport(report *analyzer.Report, dryRun bool) {
	verb := "written"
	if dryRun {
		verb = "planned"
	}
	fmt.Printf("Scanned %d sources in %s: %d scaffolds %s, %d skipped\n",
		report.Scanned, report.Duration.Round(time.Millisecond),
		report.Generated, verb, report.Skipped)
	for _, path := range report.Written {
		fmt.Printf("  %s\n", path)
	}
	for _, d := range report.Diagnostics {
		fmt.Printf("Warning: %s: %s\n", d.Path, d.Message)
	}
	for _, f := range report.Failures {
		fmt.Printf("Failed: %s (%s): %s\n", f.QualifiedName, f.Path, f.Message)
	}
}

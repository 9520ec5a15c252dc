package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"testforge/internal/analyzer"
	"testforge/internal/watch"
)

// watchCmd regenerates scaffolds whenever sources change
var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Watch a source tree and regenerate scaffolds on change",
	Long: `Runs one full generation pass, then watches the source tree and
regenerates after changes settle. Edits arriving in a burst trigger a
single run. Stop with Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	registerRunFlags(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	applyFlags(cmd, args)
	opts, err := buildOptions(false)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := analyzer.New(opts, logger)

	// One full pass before settling into watch mode.
	report, err := a.Run(ctx)
	if err != nil {
		return fmt.Errorf("initial run failed: %w", err)
	}
	printReport(report, false)

	w, err := watch.New(a, []string{cfg.Source},
		watch.WithDebounce(cfg.GetDebounce()),
		watch.WithLogger(logger),
		watch.WithIgnoredDir(cfg.Output))
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	fmt.Printf("Watching %s (Ctrl-C to stop)\n", cfg.Source)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	signal.Stop(sigCh)

	stats := w.GetStats()
	fmt.Printf("\nSaw %d events, triggered %d runs\n", stats.EventsSeen, stats.RunsTriggered)
	return nil
}

// Package analyzer orchestrates a generation run. It walks the source
// roots for Java files, scans them concurrently, filters the resulting
// models, and drives scaffold generation, collecting every per-file
// outcome into a Report.
package analyzer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"testforge/internal/generate"
	"testforge/internal/naming"
	"testforge/internal/parser"
	"testforge/internal/render"
)

// Options configures a run.
type Options struct {
	// Roots are the directories walked for .java sources.
	Roots []string
	// OutputRoot receives the generated scaffold tree.
	OutputRoot string
	// Includes and Excludes filter classes by qualified name.
	Includes []string
	Excludes []string
	// Style selects the test naming strategy.
	Style naming.Style
	// Category selects the scaffold kinds to produce.
	Category generate.Category
	// Concurrency bounds the parallel file workers. Zero picks a
	// default from the CPU count.
	Concurrency int
	// DryRun plans output paths without writing files.
	DryRun bool
	// DisableDirCreation makes writes fail instead of creating
	// missing output directories.
	DisableDirCreation bool
}

// Failure records a class that could not be generated.
type Failure struct {
	Path          string
	QualifiedName string
	Message       string
}

// Diagnostic records a source file that could not be scanned.
type Diagnostic struct {
	Path    string
	Message string
}

// Report is the outcome of one run.
type Report struct {
	RunID       string
	Started     time.Time
	Duration    time.Duration
	Scanned     int
	Generated   int
	Skipped     int
	Written     []string
	Failures    []Failure
	Diagnostics []Diagnostic
}

// Success reports whether every scaffold that should have been
// generated was. Unscannable sources are diagnostics, not failures.
func (r *Report) Success() bool {
	return len(r.Failures) == 0
}

// Analyzer runs scans and generation over a source tree.
type Analyzer struct {
	opts Options
	log  *zap.Logger
}

// New creates an Analyzer. A nil logger disables logging.
func New(opts Options, log *zap.Logger) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Style == "" {
		opts.Style = naming.StyleCamel
	}
	if opts.Category == "" {
		opts.Category = generate.CategoryUnit
	}
	return &Analyzer{opts: opts, log: log}
}

// Run walks the roots, scans every Java source, and generates
// scaffolds for the classes that qualify. Per-file problems are
// recorded in the report; only setup errors abort the run.
func (a *Analyzer) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:   uuid.NewString(),
		Started: time.Now(),
	}

	filter, err := NewFilter(a.opts.Includes, a.opts.Excludes)
	if err != nil {
		return nil, err
	}
	strategy, err := naming.ForStyle(a.opts.Style)
	if err != nil {
		return nil, err
	}
	loader, err := render.NewLoader()
	if err != nil {
		return nil, err
	}
	engine := render.NewEngine(loader)
	var writerOpts []render.WriterOption
	if a.opts.DryRun {
		writerOpts = append(writerOpts, render.WithDryRun())
	}
	if a.opts.DisableDirCreation {
		writerOpts = append(writerOpts, render.WithoutDirCreation())
	}
	writer := render.NewWriter(a.opts.OutputRoot, writerOpts...)
	gen := generate.NewGenerator(engine, writer, strategy,
		generate.WithCategory(a.opts.Category),
		generate.WithLogger(a.log))

	files, err := a.collectFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to collect sources: %w", err)
	}
	a.log.Info("starting run",
		zap.String("run_id", report.RunID),
		zap.Int("files", len(files)),
		zap.String("output", a.opts.OutputRoot))

	var mu sync.Mutex // protects report
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency())
	for _, path := range files {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			// Tree-sitter parsers are single-threaded; each worker
			// gets its own.
			scanner := parser.NewScanner(parser.WithLogger(a.log))
			cls, scanErr := scanner.ScanFile(ctx, path)
			if scanErr != nil {
				a.log.Warn("skipping unscannable source",
					zap.String("path", path), zap.Error(scanErr))
				mu.Lock()
				report.Scanned++
				report.Diagnostics = append(report.Diagnostics, Diagnostic{
					Path:    path,
					Message: scanErr.Error(),
				})
				mu.Unlock()
				return nil
			}
			if cls == nil || !filter.Match(cls.QualifiedName) {
				mu.Lock()
				report.Scanned++
				report.Skipped++
				mu.Unlock()
				return nil
			}

			paths, genErr := gen.Generate(cls)
			mu.Lock()
			defer mu.Unlock()
			report.Scanned++
			if genErr != nil {
				report.Failures = append(report.Failures, Failure{
					Path:          path,
					QualifiedName: cls.QualifiedName,
					Message:       genErr.Error(),
				})
				return nil
			}
			if len(paths) == 0 {
				report.Skipped++
				return nil
			}
			report.Generated += len(paths)
			report.Written = append(report.Written, paths...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}

	sort.Strings(report.Written)
	sort.Slice(report.Diagnostics, func(i, j int) bool {
		return report.Diagnostics[i].Path < report.Diagnostics[j].Path
	})
	sort.Slice(report.Failures, func(i, j int) bool {
		return report.Failures[i].Path < report.Failures[j].Path
	})
	report.Duration = time.Since(report.Started)

	a.log.Info("run complete",
		zap.String("run_id", report.RunID),
		zap.Int("scanned", report.Scanned),
		zap.Int("generated", report.Generated),
		zap.Int("skipped", report.Skipped),
		zap.Int("diagnostics", len(report.Diagnostics)),
		zap.Int("failures", len(report.Failures)),
		zap.Duration("elapsed", report.Duration))
	return report, nil
}

// concurrency resolves the worker limit, clamping the CPU-derived
// default to [2, 8].
func (a *Analyzer) concurrency() int {
	if a.opts.Concurrency > 0 {
		return a.opts.Concurrency
	}
	n := runtime.NumCPU()
	if n < 2 {
		n = 2
	}
	if n > 8 {
		n = 8
	}
	return n
}

// collectFiles walks every root for Java sources, skipping hidden
// directories, the output root, and files that already look like
// tests.
func (a *Analyzer) collectFiles() ([]string, error) {
	outputRoot, err := filepath.Abs(a.opts.OutputRoot)
	if err != nil {
		outputRoot = a.opts.OutputRoot
	}

	var files []string
	for _, root := range a.opts.Roots {
		walkErr := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				if path != root && strings.HasPrefix(info.Name(), ".") {
					return filepath.SkipDir
				}
				if abs, absErr := filepath.Abs(path); absErr == nil && abs == outputRoot {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != ".java" {
				return nil
			}
			base := filepath.Base(path)
			if strings.HasSuffix(base, "Test.java") || strings.HasSuffix(base, "Tests.java") {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, walkErr)
		}
	}
	sort.Strings(files)
	return files, nil
}

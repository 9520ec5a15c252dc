// Package watch regenerates scaffolds when Java sources change. It
// wraps fsnotify with a per-path debounce so a burst of editor saves
// collapses into a single regeneration run.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"testforge/internal/analyzer"
)

// Runner is the regeneration hook the watcher fires after changes
// settle. *analyzer.Analyzer satisfies it.
type Runner interface {
	Run(ctx context.Context) (*analyzer.Report, error)
}

// Stats tracks watcher activity.
type Stats struct {
	EventsSeen    int
	FilesCreated  int
	FilesModified int
	FilesDeleted  int
	RunsTriggered int
	RunFailures   int
	Errors        int
	LastEventTime time.Time
	LastEventPath string
}

// Watcher monitors source roots and reruns generation when Java files
// change.
type Watcher struct {
	mu          sync.RWMutex
	watcher     *fsnotify.Watcher
	runner      Runner
	roots       []string
	ignored     []string
	debounceMap map[string]time.Time
	debounceDur time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
	log         *zap.Logger

	stats Stats
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long a changed path must stay quiet before a
// run triggers.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounceDur = d
		}
	}
}

// WithLogger sets the watcher's logger.
func WithLogger(log *zap.Logger) Option {
	return func(w *Watcher) {
		if log != nil {
			w.log = log
		}
	}
}

// WithIgnoredDir excludes a directory subtree from change detection,
// typically the output root.
func WithIgnoredDir(dir string) Option {
	return func(w *Watcher) {
		w.ignored = append(w.ignored, filepath.Clean(dir))
	}
}

// New creates a watcher over the given source roots.
func New(runner Runner, roots []string, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		watcher:     fsw,
		runner:      runner,
		roots:       roots,
		debounceMap: make(map[string]time.Time),
		debounceDur: 500 * time.Millisecond,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start begins watching. It is non-blocking; the event loop runs in a
// goroutine until Stop or context cancellation.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	for _, root := range w.roots {
		w.addRecursive(root)
	}
	w.log.Info("watching for source changes",
		zap.Strings("roots", w.roots),
		zap.Duration("debounce", w.debounceDur))

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to drain.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.log.Warn("failed to close watcher", zap.Error(err))
	}
}

// IsWatching reports whether the event loop is active.
func (w *Watcher) IsWatching() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// GetStats returns a copy of the current statistics.
func (w *Watcher) GetStats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}

// addRecursive watches dir and every non-hidden directory below it.
// New subdirectories are added as their create events arrive.
func (w *Watcher) addRecursive(dir string) {
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(info.Name(), ".") {
			return filepath.SkipDir
		}
		if w.isIgnored(path) {
			return filepath.SkipDir
		}
		if addErr := w.watcher.Add(path); addErr != nil {
			w.log.Warn("failed to watch directory",
				zap.String("path", path), zap.Error(addErr))
		}
		return nil
	})
	if err != nil {
		w.log.Warn("failed to walk watch root", zap.String("root", dir), zap.Error(err))
	}
}

func (w *Watcher) isIgnored(path string) bool {
	clean := filepath.Clean(path)
	for _, dir := range w.ignored {
		if clean == dir || strings.HasPrefix(clean, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("watch context cancelled")
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()
		case <-ticker.C:
			w.processSettled(ctx)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.addRecursive(event.Name)
			return
		}
	}
	if !strings.HasSuffix(event.Name, ".java") || w.isIgnored(event.Name) {
		return
	}
	base := filepath.Base(event.Name)
	if strings.HasSuffix(base, "Test.java") || strings.HasSuffix(base, "Tests.java") {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.stats.EventsSeen++
	w.stats.LastEventTime = time.Now()
	w.stats.LastEventPath = event.Name
	switch {
	case event.Op&fsnotify.Create != 0:
		w.stats.FilesCreated++
	case event.Op&fsnotify.Write != 0:
		w.stats.FilesModified++
	case event.Op&fsnotify.Remove != 0, event.Op&fsnotify.Rename != 0:
		w.stats.FilesDeleted++
	default:
		return
	}
	w.debounceMap[event.Name] = time.Now()
}

// processSettled triggers one run for every batch of paths that has
// stayed quiet past the debounce window.
func (w *Watcher) processSettled(ctx context.Context) {
	w.mu.Lock()
	now := time.Now()
	settled := 0
	for path, eventTime := range w.debounceMap {
		if now.Sub(eventTime) >= w.debounceDur {
			delete(w.debounceMap, path)
			settled++
		}
	}
	if settled > 0 {
		w.stats.RunsTriggered++
	}
	w.mu.Unlock()
	if settled == 0 {
		return
	}

	w.log.Info("source changes settled, regenerating", zap.Int("files", settled))
	report, err := w.runner.Run(ctx)
	if err != nil {
		w.log.Error("regeneration failed", zap.Error(err))
		w.mu.Lock()
		w.stats.RunFailures++
		w.mu.Unlock()
		return
	}
	w.log.Info("regeneration complete",
		zap.Int("generated", report.Generated),
		zap.Int("skipped", report.Skipped),
		zap.Int("diagnostics", len(report.Diagnostics)))
}

package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Writer places rendered scaffolds under an output root, one directory
// per Java package segment. Writes truncate any previous version so
// repeated runs converge on identical output.
type Writer struct {
	root       string
	createDirs bool
	dryRun     bool
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithoutDirCreation disables automatic directory creation; writing
// into a package directory that does not exist then fails.
func WithoutDirCreation() WriterOption {
	return func(w *Writer) { w.createDirs = false }
}

// WithDryRun computes output paths without touching the filesystem.
func WithDryRun() WriterOption {
	return func(w *Writer) { w.dryRun = true }
}

// NewWriter creates a writer rooted at root.
func NewWriter(root string, opts ...WriterOption) *Writer {
	w := &Writer{root: root, createDirs: true}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Root returns the output root.
func (w *Writer) Root() string {
	return w.root
}

// PathFor maps a package name and file name to the output path:
// ("com.example.service", "UserServiceTest.java") becomes
// <root>/com/example/service/UserServiceTest.java. The default package
// maps to the root itself.
func (w *Writer) PathFor(pkg, fileName string) string {
	parts := []string{w.root}
	if pkg != "" {
		parts = append(parts, strings.Split(pkg, ".")...)
	}
	parts = append(parts, fileName)
	return filepath.Join(parts...)
}

// Write stores content at the path for pkg and fileName, creating
// package directories as needed, and returns the path written.
// MkdirAll tolerates directories created concurrently by other
// workers.
func (w *Writer) Write(pkg, fileName, content string) (string, error) {
	path := w.PathFor(pkg, fileName)
	if w.dryRun {
		return path, nil
	}
	if w.createDirs {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory for %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// Exists reports whether output is already present for pkg and
// fileName.
func (w *Writer) Exists(pkg, fileName string) bool {
	_, err := os.Stat(w.PathFor(pkg, fileName))
	return err == nil
}

// Delete removes previously written output. Output that was never
// written is not an error.
func (w *Writer) Delete(pkg, fileName string) error {
	path := w.PathFor(pkg, fileName)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}

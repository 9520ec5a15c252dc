// Package render turns class models into test scaffold files. Template
// text is baked into the binary with go:embed, rendered through
// text/template, and written under an output root that mirrors the
// Java package layout.
package render

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// embeddedTemplates contains all scaffold templates baked into the
// binary. The templates directory is a subdirectory of this package.
//
//go:embed templates
var embeddedTemplates embed.FS

// templateCacheSize bounds the loaded-template cache.
const templateCacheSize = 64

// Loader reads template text by name from the embedded filesystem and
// caches what it has read.
type Loader struct {
	cache *lru.Cache[string, string]
}

// NewLoader creates a template loader with an empty cache.
func NewLoader() (*Loader, error) {
	cache, err := lru.New[string, string](templateCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create template cache: %w", err)
	}
	return &Loader{cache: cache}, nil
}

// Load returns the text of the named template, reading it at most once
// until the cache is cleared. The name is bare, without directory or
// extension: "service_test".
func (l *Loader) Load(name string) (string, error) {
	if text, ok := l.cache.Get(name); ok {
		return text, nil
	}
	data, err := embeddedTemplates.ReadFile("templates/" + name + ".tmpl")
	if err != nil {
		return "", fmt.Errorf("failed to load template %q: %w", name, err)
	}
	text := string(data)
	l.cache.Add(name, text)
	return text, nil
}

// Cached reports whether the named template is currently cached.
func (l *Loader) Cached(name string) bool {
	return l.cache.Contains(name)
}

// Clear drops every cached template; the next Load re-reads.
func (l *Loader) Clear() {
	l.cache.Purge()
}

// Names lists the available template names in sorted order.
func (l *Loader) Names() ([]string, error) {
	entries, err := fs.ReadDir(embeddedTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".tmpl") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".tmpl"))
	}
	sort.Strings(names)
	return names, nil
}

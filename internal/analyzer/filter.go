package analyzer

import (
	"fmt"
	"regexp"
	"strings"
)

// Filter selects classes by qualified name. Patterns are glob-like:
// '*' matches any run of characters, everything else is literal.
// "com.example.service.*" matches a package subtree, "*ServiceImpl"
// matches a name suffix.
type Filter struct {
	includes []*regexp.Regexp
	excludes []*regexp.Regexp
}

// NewFilter compiles include and exclude patterns. No include patterns
// means everything is included.
func NewFilter(includes, excludes []string) (*Filter, error) {
	f := &Filter{}
	for _, pattern := range includes {
		re, err := compileGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
		f.includes = append(f.includes, re)
	}
	for _, pattern := range excludes {
		re, err := compileGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		f.excludes = append(f.excludes, re)
	}
	return f, nil
}

// Match reports whether a qualified class name passes the filter.
// Exclusion always wins over inclusion.
func (f *Filter) Match(qualifiedName string) bool {
	for _, re := range f.excludes {
		if re.MatchString(qualifiedName) {
			return false
		}
	}
	if len(f.includes) == 0 {
		return true
	}
	for _, re := range f.includes {
		if re.MatchString(qualifiedName) {
			return true
		}
	}
	return false
}

func compileGlob(pattern string) (*regexp.Regexp, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("empty pattern")
	}
	escaped := regexp.QuoteMeta(pattern)
	escaped = strings.ReplaceAll(escaped, `\*`, ".*")
	return regexp.Compile("^" + escaped + "$")
}

package render

import (
	"fmt"
	"strings"
	"text/template"
)

// Engine executes named templates against scaffold data. Rendering is
// strict: a template that references data the caller did not supply
// fails rather than emitting a hole in the output.
type Engine struct {
	loader *Loader
}

// NewEngine creates an engine over the given loader.
func NewEngine(loader *Loader) *Engine {
	return &Engine{loader: loader}
}

// templateFuncs is available to every template.
var templateFuncs = template.FuncMap{
	"upperFirst": upperFirst,
	"lowerFirst": lowerFirst,
	"join":       strings.Join,
}

// Render executes the named template with data and returns the output
// text. Errors carry the template name.
func (e *Engine) Render(name string, data any) (string, error) {
	text, err := e.loader.Load(name)
	if err != nil {
		return "", err
	}
	tmpl, err := template.New(name).Funcs(templateFuncs).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %q: %w", name, err)
	}
	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %q: %w", name, err)
	}
	return buf.String(), nil
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

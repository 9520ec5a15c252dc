// Package generate turns class models into rendered test scaffolds.
// It decides which templates apply to a class, assembles the template
// data, names the test methods through a naming strategy, and hands
// the output to the writer.
package generate

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"testforge/internal/model"
	"testforge/internal/naming"
	"testforge/internal/render"
)

// Category selects which scaffold kinds a run produces.
type Category string

const (
	CategoryUnit        Category = "unit"
	CategoryIntegration Category = "integration"
	CategoryAll         Category = "all"
)

// ParseCategory normalizes a category argument.
func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case CategoryUnit, CategoryIntegration, CategoryAll:
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q (valid: unit, integration, all)", s)
}

// Test class name suffixes.
const (
	unitSuffix        = "Test"
	integrationSuffix = "IntegrationTest"
)

// unitTemplates maps each scaffolded role to its unit template. Roles
// absent from the map, "other" included, produce no output.
var unitTemplates = map[model.Role]string{
	model.RoleBusinessService: "service_test",
	model.RoleRequestHandler:  "controller_test",
	model.RoleDataAccess:      "repository_test",
	model.RoleComponent:       "component_test",
	model.RoleConfiguration:   "configuration_test",
}

const integrationTemplate = "integration_test"

// Generator renders test scaffolds for scanned classes.
type Generator struct {
	engine   *render.Engine
	writer   *render.Writer
	strategy naming.Strategy
	category Category
	log      *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithCategory selects the scaffold kinds to produce. The default is
// unit only.
func WithCategory(c Category) Option {
	return func(g *Generator) { g.category = c }
}

// WithLogger sets the generator's logger.
func WithLogger(log *zap.Logger) Option {
	return func(g *Generator) {
		if log != nil {
			g.log = log
		}
	}
}

// NewGenerator creates a generator over the given render pipeline and
// naming strategy.
func NewGenerator(engine *render.Engine, writer *render.Writer, strategy naming.Strategy, opts ...Option) *Generator {
	g := &Generator{
		engine:   engine,
		writer:   writer,
		strategy: strategy,
		category: CategoryUnit,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate renders every applicable scaffold for the class and returns
// the paths written. A class whose role has no template produces
// nothing and no error.
func (g *Generator) Generate(cls *model.Class) ([]string, error) {
	if cls == nil {
		return nil, fmt.Errorf("cannot generate from a nil class")
	}
	tmpl, ok := unitTemplates[cls.Role]
	if !ok {
		g.log.Debug("class role not scaffolded",
			zap.String("class", cls.QualifiedName),
			zap.String("role", string(cls.Role)))
		return nil, nil
	}

	var written []string
	if g.category == CategoryUnit || g.category == CategoryAll {
		path, err := g.renderOne(cls, tmpl, unitSuffix)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	if g.category == CategoryIntegration || g.category == CategoryAll {
		path, err := g.renderOne(cls, integrationTemplate, integrationSuffix)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func (g *Generator) renderOne(cls *model.Class, tmplName, suffix string) (string, error) {
	data, err := g.scaffoldData(cls, suffix)
	if err != nil {
		return "", err
	}
	out, err := g.engine.Render(tmplName, data)
	if err != nil {
		return "", fmt.Errorf("failed to render scaffold for %s: %w", cls.QualifiedName, err)
	}
	path, err := g.writer.Write(cls.Package, data.TestClassName+".java", out)
	if err != nil {
		return "", err
	}
	g.log.Info("wrote scaffold",
		zap.String("class", cls.QualifiedName),
		zap.String("template", tmplName),
		zap.String("path", path))
	return path, nil
}

// scaffoldData is the template contract shared by all scaffolds.
type scaffoldData struct {
	Package         string
	ClassName       string
	TestClassName   string
	InstanceName    string
	HasDependencies bool
	Dependencies    []dependencyData
	Methods         []methodData
}

type dependencyData struct {
	Type string
	Name string
}

type methodData struct {
	Name        string
	TestName    string
	DisplayName string
	Failures    []failureData
}

type failureData struct {
	TestName  string
	Exception string
	Method    string
}

func (g *Generator) scaffoldData(cls *model.Class, suffix string) (scaffoldData, error) {
	data := scaffoldData{
		Package:       cls.Package,
		ClassName:     cls.Name,
		TestClassName: cls.Name + suffix,
		InstanceName:  lowerFirst(cls.Name),
	}
	for _, dep := range cls.Dependencies {
		data.Dependencies = append(data.Dependencies, dependencyData{
			Type: dep,
			Name: fieldNameFor(cls, dep),
		})
	}
	data.HasDependencies = len(data.Dependencies) > 0

	// Overloads collapse into one stub per method name.
	used := make(map[string]bool)
	for _, m := range cls.Methods {
		if !eligible(m) {
			continue
		}
		testName, err := g.strategy.Name(m.Name)
		if err != nil {
			return data, fmt.Errorf("failed to name test for %s.%s: %w", cls.Name, m.Name, err)
		}
		if used[testName] {
			g.log.Debug("skipping duplicate test name",
				zap.String("class", cls.Name),
				zap.String("method", m.Name))
			continue
		}
		used[testName] = true

		md := methodData{
			Name:        m.Name,
			TestName:    testName,
			DisplayName: m.Name + " behaves as expected",
		}
		for _, exc := range failureCandidates(m) {
			failName, err := g.strategy.NameForOutcome(m.Name, failureScenario(exc), "throws")
			if err != nil {
				return data, fmt.Errorf("failed to name failure test for %s.%s: %w", cls.Name, m.Name, err)
			}
			if used[failName] {
				continue
			}
			used[failName] = true
			md.Failures = append(md.Failures, failureData{
				TestName:  failName,
				Exception: exc,
				Method:    m.Name,
			})
		}
		data.Methods = append(data.Methods, md)
	}
	return data, nil
}

// eligible reports whether a method deserves its own scaffold stub.
// Accessors and non-public surface are skipped.
func eligible(m model.Method) bool {
	if m.Visibility != model.AccessPublic || m.Static {
		return false
	}
	return !m.IsGetter() && !m.IsSetter()
}

// failureCandidates merges declared and inferred exception types. The
// scanner already keeps the two lists disjoint.
func failureCandidates(m model.Method) []string {
	out := make([]string, 0, len(m.Throws)+len(m.PossibleFailures))
	out = append(out, m.Throws...)
	out = append(out, m.PossibleFailures...)
	return out
}

// failureScenario derives the scenario words for a failure test from
// the exception name: IllegalArgumentException -> IllegalArgument.
func failureScenario(exception string) string {
	simple := exception
	if idx := strings.LastIndex(simple, "."); idx >= 0 {
		simple = simple[idx+1:]
	}
	for _, suffix := range []string{"Exception", "Error"} {
		if trimmed := strings.TrimSuffix(simple, suffix); trimmed != "" && trimmed != simple {
			return trimmed
		}
	}
	if simple == "" {
		return "Failure"
	}
	return simple
}

// fieldNameFor picks the mock field name for a dependency: the
// matching field's name when one exists, otherwise the lower-cased
// simple type name.
func fieldNameFor(cls *model.Class, depType string) string {
	if f, ok := cls.FieldByType(depType); ok {
		return f.Name
	}
	simple := depType
	if idx := strings.LastIndex(simple, "."); idx >= 0 {
		simple = simple[idx+1:]
	}
	if idx := strings.Index(simple, "<"); idx >= 0 {
		simple = simple[:idx]
	}
	return lowerFirst(simple)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

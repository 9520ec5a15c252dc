// Package parser reads Java source and assembles structural class
// models. It wraps a tree-sitter parser and tolerates broken input:
// a file with no scannable declaration yields no model, and syntax
// errors surface as a single diagnostic per file.
package parser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
	"go.uber.org/zap"

	"testforge/internal/classify"
	"testforge/internal/model"
)

// Scanner parses Java compilation units into class models. A Scanner
// owns one tree-sitter parser and is not safe for concurrent use;
// create one per goroutine.
type Scanner struct {
	parser   *sitter.Parser
	resolver TypeResolver
	log      *zap.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the scanner's logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Scanner) {
		if log != nil {
			s.log = log
		}
	}
}

// WithResolver overrides the per-file import resolver with an external
// symbol source.
func WithResolver(r TypeResolver) Option {
	return func(s *Scanner) {
		s.resolver = r
	}
}

// NewScanner creates a Scanner for Java source.
func NewScanner(opts ...Option) *Scanner {
	p := sitter.NewParser()
	p.SetLanguage(java.GetLanguage())
	s := &Scanner{
		parser: p,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScanFile reads and scans one Java source file.
func (s *Scanner) ScanFile(ctx context.Context, path string) (*model.Class, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return s.ScanSource(ctx, path, content)
}

// ScanSource scans Java source text and returns the model of its
// primary declaration. A unit with no class or interface declaration
// returns (nil, nil); a unit that cannot be parsed at all returns an
// error.
func (s *Scanner) ScanSource(ctx context.Context, path string, content []byte) (*model.Class, error) {
	start := time.Now()
	tree, err := s.parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	decl := primaryDeclaration(root, content, path)
	if decl == nil {
		if root.HasError() {
			return nil, fmt.Errorf("failed to parse %s: source contains syntax errors", path)
		}
		s.log.Debug("no class or interface declaration", zap.String("path", path))
		return nil, nil
	}

	resolver := s.resolver
	if resolver == nil {
		resolver = newImportResolver(root, content)
	}
	e := &extractor{
		content:  content,
		path:     path,
		pkg:      packageOf(root, content),
		resolver: resolver,
	}
	cm, err := e.buildClass(decl)
	if err != nil {
		return nil, fmt.Errorf("failed to model %s: %w", path, err)
	}
	s.log.Debug("scanned declaration",
		zap.String("class", cm.QualifiedName),
		zap.String("role", string(cm.Role)),
		zap.Int("fields", len(cm.Fields)),
		zap.Int("methods", len(cm.Methods)),
		zap.Duration("elapsed", time.Since(start)))
	return cm, nil
}

// primaryDeclaration picks the declaration a file is about: the
// top-level class or interface whose name matches the file name, or
// failing that the first one found anywhere in the unit.
func primaryDeclaration(root *sitter.Node, content []byte, path string) *sitter.Node {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if !isDeclaration(child) {
			continue
		}
		if declarationName(child, content) == base {
			return child
		}
	}
	return firstDeclaration(root)
}

func isDeclaration(n *sitter.Node) bool {
	return n.Type() == "class_declaration" || n.Type() == "interface_declaration"
}

func firstDeclaration(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if isDeclaration(child) {
			return child
		}
		if found := firstDeclaration(child); found != nil {
			return found
		}
	}
	return nil
}

func declarationName(decl *sitter.Node, content []byte) string {
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		child := decl.NamedChild(i)
		if child.Type() == "identifier" {
			return child.Content(content)
		}
	}
	return ""
}

// packageOf returns the unit's package name, or "" for the default
// package.
func packageOf(root *sitter.Node, content []byte) string {
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child.Type() != "package_declaration" {
			continue
		}
		for j := 0; j < int(child.NamedChildCount()); j++ {
			name := child.NamedChild(j)
			if name.Type() == "scoped_identifier" || name.Type() == "identifier" {
				return name.Content(content)
			}
		}
	}
	return ""
}

// extractor walks one parsed compilation unit and assembles the model.
// It carries the per-file resolution context so the node helpers stay
// small.
type extractor struct {
	content  []byte
	path     string
	pkg      string
	resolver TypeResolver
}

func (e *extractor) text(n *sitter.Node) string {
	return n.Content(e.content)
}

// resolveType qualifies a type node's base name. Already-qualified
// names win, then the resolver; an unresolved name stays simple.
func (e *extractor) resolveType(n *sitter.Node) string {
	base := baseTypeName(n, e.content)
	if base == "" || strings.Contains(base, ".") {
		return base
	}
	if e.resolver != nil {
		if qualified, ok := e.resolver.ResolveQualifiedName(base); ok {
			return qualified
		}
	}
	return base
}

// typeList collects the type names under a super_interfaces,
// extends_interfaces, or throws node.
func (e *extractor) typeList(node *sitter.Node) []string {
	var out []string
	var collect func(n *sitter.Node)
	collect = func(n *sitter.Node) {
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			if child.Type() == "type_list" {
				collect(child)
				continue
			}
			if typeNodeKinds[child.Type()] {
				out = append(out, e.text(child))
			}
		}
	}
	collect(node)
	return out
}

func (e *extractor) buildClass(decl *sitter.Node) (*model.Class, error) {
	isInterface := decl.Type() == "interface_declaration"
	var name, superClass string
	var interfaces []string
	var body *sitter.Node
	mods := modifierInfo{visibility: model.AccessPackage}

	for i := 0; i < int(decl.NamedChildCount()); i++ {
		child := decl.NamedChild(i)
		switch child.Type() {
		case "identifier":
			name = e.text(child)
		case "modifiers":
			mods = e.modifiers(child, model.AccessPackage)
		case "superclass":
			if t := firstTypeChild(child); t != nil {
				superClass = e.text(t)
			}
		case "super_interfaces", "extends_interfaces":
			interfaces = append(interfaces, e.typeList(child)...)
		case "class_body", "interface_body":
			body = child
		}
	}
	if name == "" {
		return nil, fmt.Errorf("declaration has no name")
	}
	qualified := name
	if e.pkg != "" {
		qualified = e.pkg + "." + name
	}

	var fields []model.Field
	var methods []model.Method
	var ctors [][]model.Parameter
	if body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			child := body.NamedChild(i)
			switch child.Type() {
			case "field_declaration", "constant_declaration":
				fields = append(fields, e.fields(child)...)
			case "method_declaration":
				methods = append(methods, e.method(child))
			case "constructor_declaration":
				ctors = append(ctors, e.constructorParams(child))
			}
		}
	}
	applyConstructorInjection(fields, ctors)

	b := model.NewBuilder(name, qualified).
		Package(e.pkg).
		SourcePath(e.path).
		Role(classify.RoleFor(mods.annotations)).
		Interface(isInterface).
		Abstract(mods.abstract).
		SuperClass(superClass)
	for _, ann := range mods.annotations {
		b.AddAnnotation(ann)
	}
	for _, iface := range interfaces {
		b.AddInterface(iface)
	}
	for _, f := range fields {
		b.AddField(f)
	}
	for _, m := range methods {
		b.AddMethod(m)
	}
	for _, dep := range dependencyTypes(fields, ctors) {
		b.AddDependency(dep)
	}
	return b.Build()
}

// fields converts one field_declaration node, which may declare several
// variables of the same type.
func (e *extractor) fields(node *sitter.Node) []model.Field {
	mods := modifierInfo{visibility: model.AccessPrivate}
	var typeNode *sitter.Node
	var out []model.Field
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "modifiers":
			mods = e.modifiers(child, model.AccessPrivate)
		case "variable_declarator":
			name := firstNamedOfType(child, "identifier")
			if name == nil || typeNode == nil {
				continue
			}
			out = append(out, model.Field{
				Name:         e.text(name),
				Type:         e.text(typeNode),
				ResolvedType: e.resolveType(typeNode),
				Annotations:  mods.annotations,
				Injected:     hasMarker(mods.annotations, diMarkers),
				Visibility:   mods.visibility,
				Final:        mods.final,
			})
		default:
			if typeNodeKinds[child.Type()] {
				typeNode = child
			}
		}
	}
	return out
}

func (e *extractor) constructorParams(node *sitter.Node) []model.Parameter {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "formal_parameters" {
			return e.parameters(child)
		}
	}
	return nil
}

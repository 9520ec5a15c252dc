package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"testforge/internal/model"
)

// method converts a method_declaration node into the model form.
func (e *extractor) method(node *sitter.Node) model.Method {
	m := model.Method{Visibility: model.AccessPublic}
	var body *sitter.Node
	mods := modifierInfo{visibility: model.AccessPublic}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "modifiers":
			mods = e.modifiers(child, model.AccessPublic)
		case "identifier":
			m.Name = e.text(child)
		case "formal_parameters":
			m.Parameters = e.parameters(child)
		case "throws":
			m.Throws = e.typeList(child)
		case "block":
			body = child
		default:
			if typeNodeKinds[child.Type()] {
				m.ReturnType = e.text(child)
				m.ResolvedReturn = e.resolveType(child)
			}
		}
	}
	m.Annotations = mods.annotations
	m.Visibility = mods.visibility
	m.Static = mods.static
	m.Abstract = mods.abstract || body == nil
	m.HasValidation = hasMarker(m.Annotations, validationMarkers)
	if !m.HasValidation {
		for _, p := range m.Parameters {
			if p.Required {
				m.HasValidation = true
				break
			}
		}
	}
	if body != nil {
		m.PossibleFailures = e.inferFailures(body, m.Throws)
	}
	return m
}

// parameters converts a formal_parameters node. Varargs keep the
// ellipsis on the type so callers can tell them apart.
func (e *extractor) parameters(node *sitter.Node) []model.Parameter {
	var params []model.Parameter
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != "formal_parameter" && child.Type() != "spread_parameter" {
			continue
		}
		p := model.Parameter{}
		var typeNode *sitter.Node
		for j := 0; j < int(child.NamedChildCount()); j++ {
			part := child.NamedChild(j)
			switch part.Type() {
			case "modifiers":
				p.Annotations = e.modifiers(part, "").annotations
			case "marker_annotation", "annotation":
				p.Annotations = append(p.Annotations, e.annotation(part))
			case "identifier":
				p.Name = e.text(part)
			case "variable_declarator":
				if name := firstNamedOfType(part, "identifier"); name != nil {
					p.Name = e.text(name)
				}
			default:
				if typeNodeKinds[part.Type()] {
					typeNode = part
				}
			}
		}
		if typeNode != nil {
			p.Type = e.text(typeNode)
			p.ResolvedType = e.resolveType(typeNode)
			p.GenericType = genericArgs(typeNode, e.content)
			if child.Type() == "spread_parameter" {
				p.Type += "..."
			}
		}
		p.Required = hasMarker(p.Annotations, validationMarkers)
		params = append(params, p)
	}
	return params
}

// inferFailures scans a method body for exception types the method can
// raise beyond its declared throws clause. Two signals count: the type
// of any throw-new expression, and any constructed type whose name ends
// in Exception or Error.
func (e *extractor) inferFailures(body *sitter.Node, declared []string) []string {
	seen := make(map[string]bool, len(declared))
	for _, t := range declared {
		seen[simpleName(t)] = true
	}
	var failures []string
	add := func(name string) {
		simple := simpleName(name)
		if simple == "" || seen[simple] {
			return
		}
		seen[simple] = true
		failures = append(failures, name)
	}

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch n.Type() {
		case "throw_statement":
			if obj := firstNamedOfType(n, "object_creation_expression"); obj != nil {
				if name := creationTypeName(obj, e.content); name != "" {
					add(name)
				}
			}
		case "object_creation_expression":
			name := creationTypeName(n, e.content)
			if strings.HasSuffix(name, "Exception") || strings.HasSuffix(name, "Error") {
				add(name)
			}
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(body)
	return failures
}

// creationTypeName returns the constructed type of a new expression.
func creationTypeName(n *sitter.Node, content []byte) string {
	if child := firstTypeChild(n); child != nil {
		return baseTypeName(child, content)
	}
	return ""
}

// firstNamedOfType returns the first named child with the given type.
func firstNamedOfType(n *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == nodeType {
			return child
		}
	}
	return nil
}

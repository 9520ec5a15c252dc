package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// typeNodeKinds lists the tree-sitter node types that represent a Java
// type reference.
var typeNodeKinds = map[string]bool{
	"type_identifier":        true,
	"scoped_type_identifier": true,
	"generic_type":           true,
	"array_type":             true,
	"void_type":              true,
	"integral_type":          true,
	"floating_point_type":    true,
	"boolean_type":           true,
}

// firstTypeChild returns the first named child that is a type node.
func firstTypeChild(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if typeNodeKinds[child.Type()] {
			return child
		}
	}
	return nil
}

// baseTypeName strips generics and array dimensions down to the
// resolvable base identifier: List<User> -> List, User[] -> User.
func baseTypeName(n *sitter.Node, content []byte) string {
	switch n.Type() {
	case "generic_type", "array_type":
		if child := firstTypeChild(n); child != nil {
			return baseTypeName(child, content)
		}
	}
	return n.Content(content)
}

// genericArgs returns the type-argument text of a generic type without
// the angle brackets: List<User> -> "User".
func genericArgs(n *sitter.Node, content []byte) string {
	if n.Type() != "generic_type" {
		return ""
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "type_arguments" {
			args := child.Content(content)
			args = strings.TrimPrefix(args, "<")
			args = strings.TrimSuffix(args, ">")
			return strings.TrimSpace(args)
		}
	}
	return ""
}

// simpleName returns the segment after the last dot.
func simpleName(name string) string {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return name[idx+1:]
	}
	return name
}

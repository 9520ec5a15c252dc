// Package model defines the structural records produced by scanning a
// Java type declaration: the class itself, its fields, methods,
// parameters and annotations. Models are pure trees, with nothing
// shared between two Class values, and are treated as immutable once built
// (see Builder).
package model

import "strings"

// Role is the architectural role assigned to a scanned declaration.
type Role string

const (
	RoleRequestHandler  Role = "request-handler"
	RoleBusinessService Role = "business-service"
	RoleDataAccess      Role = "data-access"
	RoleComponent       Role = "component"
	RoleConfiguration   Role = "configuration"
	RoleOther           Role = "other"
)

// AccessLevel is the declared visibility of a Java member.
type AccessLevel string

const (
	AccessPublic    AccessLevel = "public"
	AccessProtected AccessLevel = "protected"
	AccessPrivate   AccessLevel = "private"
	AccessPackage   AccessLevel = "package"
)

// Annotation is one normalized annotation occurrence. QualifiedName is
// resolved best-effort: an import match, a known-marker lookup, or the
// simple name itself when nothing better is available. Attribute values
// are kept verbatim as written in the source (string literals retain
// their quotes); the single-value form is stored under the key "value".
type Annotation struct {
	Name          string
	QualifiedName string
	Attributes    map[string]string
}

// Parameter is one method parameter in declaration order.
type Parameter struct {
	Name         string
	Type         string
	ResolvedType string
	// GenericType holds the type-argument text when the declared type is
	// generic, e.g. "User" for List<User>.
	GenericType string
	Annotations []Annotation
	// Required is derived from validation annotations on the parameter.
	Required bool
}

// Method is the structural record of one method declaration.
type Method struct {
	Name           string
	ReturnType     string
	ResolvedReturn string
	Parameters     []Parameter
	Annotations    []Annotation
	// Throws lists the declared throws-clause entries verbatim, in
	// declaration order.
	Throws []string
	// PossibleFailures lists additional exception types inferred from a
	// best-effort scan of the method body. Heuristic only; false
	// negatives are expected.
	PossibleFailures []string
	HasValidation    bool
	Visibility       AccessLevel
	Static           bool
	Abstract         bool
}

// IsGetter reports whether the method follows the JavaBean getter
// convention: a get/is prefix, no parameters and a non-void return.
func (m Method) IsGetter() bool {
	if len(m.Parameters) != 0 || m.ReturnType == "" || m.ReturnType == "void" {
		return false
	}
	return hasCamelPrefix(m.Name, "get") || hasCamelPrefix(m.Name, "is")
}

// IsSetter reports whether the method follows the JavaBean setter
// convention: a set prefix, exactly one parameter and a void return.
func (m Method) IsSetter() bool {
	if len(m.Parameters) != 1 || m.ReturnType != "void" {
		return false
	}
	return hasCamelPrefix(m.Name, "set")
}

// hasCamelPrefix reports whether name starts with prefix followed by an
// upper-case letter, so "getter" does not count as a get accessor.
func hasCamelPrefix(name, prefix string) bool {
	if !strings.HasPrefix(name, prefix) || len(name) == len(prefix) {
		return false
	}
	rest := name[len(prefix):]
	return rest[0] >= 'A' && rest[0] <= 'Z'
}

// Field is the structural record of one field declaration.
type Field struct {
	Name         string
	Type         string
	ResolvedType string
	Annotations  []Annotation
	// Injected marks framework-managed dependencies, detected by a DI
	// marker annotation or by the single-constructor convention.
	Injected   bool
	Visibility AccessLevel
	Final      bool
}

// Class is the structural model of one analyzed type declaration.
type Class struct {
	Name          string
	QualifiedName string
	Package       string
	Role          Role
	Annotations   []Annotation
	Fields        []Field
	Methods       []Method
	// Dependencies lists distinct dependency type names (injected field
	// types and constructor parameter types) in first-appearance order.
	Dependencies []string
	Interfaces   []string
	SuperClass   string
	SourcePath   string
	IsInterface  bool
	IsAbstract   bool
}

// FieldByType returns the first field declared with the given type, if
// any.
func (c *Class) FieldByType(typeName string) (Field, bool) {
	for _, f := range c.Fields {
		if f.Type == typeName {
			return f, true
		}
	}
	return Field{}, false
}

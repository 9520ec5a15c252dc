package model

import (
	"fmt"
	"strings"
)

// Builder accumulates the pieces of a Class incrementally and produces
// the finished model in a single Build step. Build validates the
// required names, defaults the role, and copies every list so the
// finished Class shares nothing with the builder or its callers.
type Builder struct {
	class Class
}

// NewBuilder starts a Class with its simple and qualified names.
func NewBuilder(name, qualifiedName string) *Builder {
	return &Builder{class: Class{Name: name, QualifiedName: qualifiedName}}
}

// Package sets the declaring package name.
func (b *Builder) Package(pkg string) *Builder {
	b.class.Package = pkg
	return b
}

// Role sets the architectural role.
func (b *Builder) Role(r Role) *Builder {
	b.class.Role = r
	return b
}

// SourcePath records the file the declaration was scanned from.
func (b *Builder) SourcePath(path string) *Builder {
	b.class.SourcePath = path
	return b
}

// SuperClass sets the extended superclass name.
func (b *Builder) SuperClass(name string) *Builder {
	b.class.SuperClass = name
	return b
}

// AddInterface appends an implemented interface name.
func (b *Builder) AddInterface(name string) *Builder {
	b.class.Interfaces = append(b.class.Interfaces, name)
	return b
}

// AddAnnotation appends a declaration-level annotation.
func (b *Builder) AddAnnotation(a Annotation) *Builder {
	b.class.Annotations = append(b.class.Annotations, a)
	return b
}

// AddField appends a field in declaration order.
func (b *Builder) AddField(f Field) *Builder {
	b.class.Fields = append(b.class.Fields, f)
	return b
}

// AddMethod appends a method in declaration order.
func (b *Builder) AddMethod(m Method) *Builder {
	b.class.Methods = append(b.class.Methods, m)
	return b
}

// AddDependency appends a dependency type name, keeping the list
// distinct with first-appearance order.
func (b *Builder) AddDependency(typeName string) *Builder {
	for _, dep := range b.class.Dependencies {
		if dep == typeName {
			return b
		}
	}
	b.class.Dependencies = append(b.class.Dependencies, typeName)
	return b
}

// Interface marks the declaration as an interface.
func (b *Builder) Interface(isInterface bool) *Builder {
	b.class.IsInterface = isInterface
	return b
}

// Abstract marks the declaration as abstract.
func (b *Builder) Abstract(isAbstract bool) *Builder {
	b.class.IsAbstract = isAbstract
	return b
}

// Build validates and finalizes the model. The returned Class owns
// defensive copies of every list; further builder mutation does not
// affect it.
func (b *Builder) Build() (*Class, error) {
	if strings.TrimSpace(b.class.Name) == "" {
		return nil, fmt.Errorf("class name must not be blank")
	}
	if strings.TrimSpace(b.class.QualifiedName) == "" {
		return nil, fmt.Errorf("qualified name must not be blank for %s", b.class.Name)
	}

	out := b.class
	if out.Role == "" {
		out.Role = RoleOther
	}
	out.Annotations = cloneAnnotations(b.class.Annotations)
	out.Fields = cloneFields(b.class.Fields)
	out.Methods = cloneMethods(b.class.Methods)
	out.Dependencies = cloneStrings(b.class.Dependencies)
	out.Interfaces = cloneStrings(b.class.Interfaces)
	return &out, nil
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneAnnotations(in []Annotation) []Annotation {
	out := make([]Annotation, len(in))
	for i, a := range in {
		attrs := make(map[string]string, len(a.Attributes))
		for k, v := range a.Attributes {
			attrs[k] = v
		}
		a.Attributes = attrs
		out[i] = a
	}
	return out
}

func cloneFields(in []Field) []Field {
	out := make([]Field, len(in))
	for i, f := range in {
		f.Annotations = cloneAnnotations(f.Annotations)
		out[i] = f
	}
	return out
}

func cloneParameters(in []Parameter) []Parameter {
	out := make([]Parameter, len(in))
	for i, p := range in {
		p.Annotations = cloneAnnotations(p.Annotations)
		out[i] = p
	}
	return out
}

func cloneMethods(in []Method) []Method {
	out := make([]Method, len(in))
	for i, m := range in {
		m.Parameters = cloneParameters(m.Parameters)
		m.Annotations = cloneAnnotations(m.Annotations)
		m.Throws = cloneStrings(m.Throws)
		m.PossibleFailures = cloneStrings(m.PossibleFailures)
		out[i] = m
	}
	return out
}

package parser

import (
	"testforge/internal/model"
)

// diMarkers are the annotations that mark a field as injected.
var diMarkers = []string{"Autowired", "Inject", "Resource"}

// applyConstructorInjection marks fields whose type appears among the
// parameters of the class's sole constructor. The convention only
// applies when exactly one constructor exists; overloaded constructors
// leave annotation markers as the only signal.
func applyConstructorInjection(fields []model.Field, ctors [][]model.Parameter) {
	if len(ctors) != 1 {
		return
	}
	paramTypes := make(map[string]bool, len(ctors[0]))
	for _, p := range ctors[0] {
		paramTypes[p.Type] = true
	}
	for i := range fields {
		if paramTypes[fields[i].Type] {
			fields[i].Injected = true
		}
	}
}

// dependencyTypes returns the distinct collaborator types of a class:
// every injected field type plus every constructor parameter type, in
// order of first appearance.
func dependencyTypes(fields []model.Field, ctors [][]model.Parameter) []string {
	var deps []string
	seen := make(map[string]bool)
	add := func(t string) {
		if t == "" || seen[t] {
			return
		}
		seen[t] = true
		deps = append(deps, t)
	}
	for _, f := range fields {
		if f.Injected {
			add(f.Type)
		}
	}
	for _, ctor := range ctors {
		for _, p := range ctor {
			add(p.Type)
		}
	}
	return deps
}

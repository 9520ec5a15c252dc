package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// TypeResolver maps a simple type or annotation name to its qualified
// form. Implementations are best-effort; a miss is normal and callers
// fall back to the simple name.
type TypeResolver interface {
	ResolveQualifiedName(name string) (string, bool)
}

// NopResolver never resolves anything.
type NopResolver struct{}

func (NopResolver) ResolveQualifiedName(string) (string, bool) { return "", false }

// importResolver resolves names against a single compilation unit's
// import declarations, plus the implicit java.lang namespace. Wildcard
// and static imports carry no usable simple-name mapping and are
// skipped.
type importResolver struct {
	imports map[string]string
}

func newImportResolver(root *sitter.Node, content []byte) *importResolver {
	imports := make(map[string]string)
	for i := 0; i < int(root.NamedChildCount()); i++ {
		decl := root.NamedChild(i)
		if decl.Type() != "import_declaration" {
			continue
		}
		var name string
		skip := false
		for j := 0; j < int(decl.ChildCount()); j++ {
			child := decl.Child(j)
			switch child.Type() {
			case "static", "asterisk":
				skip = true
			case "scoped_identifier", "identifier":
				name = child.Content(content)
			}
		}
		if skip || name == "" {
			continue
		}
		imports[simpleName(name)] = name
	}
	return &importResolver{imports: imports}
}

func (r *importResolver) ResolveQualifiedName(name string) (string, bool) {
	if qualified, ok := r.imports[name]; ok {
		return qualified, true
	}
	if qualified, ok := javaLangTypes[name]; ok {
		return qualified, true
	}
	return "", false
}

// javaLangTypes covers the java.lang names that are visible without an
// import.
var javaLangTypes = map[string]string{
	"Boolean":                       "java.lang.Boolean",
	"Byte":                          "java.lang.Byte",
	"CharSequence":                  "java.lang.CharSequence",
	"Character":                     "java.lang.Character",
	"Class":                         "java.lang.Class",
	"Comparable":                    "java.lang.Comparable",
	"Double":                        "java.lang.Double",
	"Error":                         "java.lang.Error",
	"Exception":                     "java.lang.Exception",
	"Float":                         "java.lang.Float",
	"IllegalArgumentException":      "java.lang.IllegalArgumentException",
	"IllegalStateException":         "java.lang.IllegalStateException",
	"Integer":                       "java.lang.Integer",
	"Iterable":                      "java.lang.Iterable",
	"Long":                          "java.lang.Long",
	"Math":                          "java.lang.Math",
	"NullPointerException":          "java.lang.NullPointerException",
	"Number":                        "java.lang.Number",
	"Object":                        "java.lang.Object",
	"Runnable":                      "java.lang.Runnable",
	"RuntimeException":              "java.lang.RuntimeException",
	"Short":                         "java.lang.Short",
	"String":                        "java.lang.String",
	"StringBuilder":                 "java.lang.StringBuilder",
	"System":                        "java.lang.System",
	"Thread":                        "java.lang.Thread",
	"Throwable":                     "java.lang.Throwable",
	"UnsupportedOperationException": "java.lang.UnsupportedOperationException",
	"Void":                          "java.lang.Void",
}

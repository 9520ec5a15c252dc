package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"testforge/internal/model"
)

// knownAnnotations maps common framework annotation names to their
// qualified forms. The table is the fallback when neither the name as
// written nor the unit's imports settle the question; an unknown name
// simply stays simple.
var knownAnnotations = map[string]string{
	// Stereotypes.
	"Component":             "org.springframework.stereotype.Component",
	"Configuration":         "org.springframework.context.annotation.Configuration",
	"Controller":            "org.springframework.stereotype.Controller",
	"Repository":            "org.springframework.stereotype.Repository",
	"RestController":        "org.springframework.web.bind.annotation.RestController",
	"Service":               "org.springframework.stereotype.Service",
	"SpringBootApplication": "org.springframework.boot.autoconfigure.SpringBootApplication",

	// Wiring.
	"Autowired": "org.springframework.beans.factory.annotation.Autowired",
	"Bean":      "org.springframework.context.annotation.Bean",
	"Inject":    "javax.inject.Inject",
	"Lazy":      "org.springframework.context.annotation.Lazy",
	"Named":     "javax.inject.Named",
	"Primary":   "org.springframework.context.annotation.Primary",
	"Qualifier": "org.springframework.beans.factory.annotation.Qualifier",
	"Resource":  "javax.annotation.Resource",
	"Scope":     "org.springframework.context.annotation.Scope",
	"Value":     "org.springframework.beans.factory.annotation.Value",

	// Web binding.
	"DeleteMapping":  "org.springframework.web.bind.annotation.DeleteMapping",
	"GetMapping":     "org.springframework.web.bind.annotation.GetMapping",
	"PatchMapping":   "org.springframework.web.bind.annotation.PatchMapping",
	"PathVariable":   "org.springframework.web.bind.annotation.PathVariable",
	"PostMapping":    "org.springframework.web.bind.annotation.PostMapping",
	"PutMapping":     "org.springframework.web.bind.annotation.PutMapping",
	"RequestBody":    "org.springframework.web.bind.annotation.RequestBody",
	"RequestMapping": "org.springframework.web.bind.annotation.RequestMapping",
	"RequestParam":   "org.springframework.web.bind.annotation.RequestParam",
	"ResponseBody":   "org.springframework.web.bind.annotation.ResponseBody",
	"ResponseStatus": "org.springframework.web.bind.annotation.ResponseStatus",

	// Validation.
	"Email":     "javax.validation.constraints.Email",
	"Max":       "javax.validation.constraints.Max",
	"Min":       "javax.validation.constraints.Min",
	"NotBlank":  "javax.validation.constraints.NotBlank",
	"NotEmpty":  "javax.validation.constraints.NotEmpty",
	"NotNull":   "javax.validation.constraints.NotNull",
	"Pattern":   "javax.validation.constraints.Pattern",
	"Positive":  "javax.validation.constraints.Positive",
	"Size":      "javax.validation.constraints.Size",
	"Valid":     "javax.validation.Valid",
	"Validated": "org.springframework.validation.annotation.Validated",

	// Persistence.
	"Column":         "javax.persistence.Column",
	"Entity":         "javax.persistence.Entity",
	"GeneratedValue": "javax.persistence.GeneratedValue",
	"Id":             "javax.persistence.Id",
	"JoinColumn":     "javax.persistence.JoinColumn",
	"ManyToMany":     "javax.persistence.ManyToMany",
	"ManyToOne":      "javax.persistence.ManyToOne",
	"OneToMany":      "javax.persistence.OneToMany",
	"OneToOne":       "javax.persistence.OneToOne",
	"Table":          "javax.persistence.Table",
	"Transient":      "javax.persistence.Transient",

	// Behavior.
	"Async":         "org.springframework.scheduling.annotation.Async",
	"Scheduled":     "org.springframework.scheduling.annotation.Scheduled",
	"Transactional": "org.springframework.transaction.annotation.Transactional",

	// java.lang.
	"Deprecated":          "java.lang.Deprecated",
	"FunctionalInterface": "java.lang.FunctionalInterface",
	"Override":            "java.lang.Override",
	"SafeVarargs":         "java.lang.SafeVarargs",
	"SuppressWarnings":    "java.lang.SuppressWarnings",
}

// validationMarkers are the annotation names that flag a validated
// method or parameter.
var validationMarkers = []string{
	"Valid", "Validated", "NotNull", "NotBlank", "NotEmpty", "Size",
	"Min", "Max", "Email", "Pattern", "Positive", "Negative", "Digits",
	"Past", "Future",
}

// hasMarker reports whether any annotation matches one of the marker
// names, by simple name or qualified suffix.
func hasMarker(annotations []model.Annotation, markers []string) bool {
	for _, ann := range annotations {
		for _, marker := range markers {
			if ann.Name == marker || strings.HasSuffix(ann.QualifiedName, "."+marker) {
				return true
			}
		}
	}
	return false
}

// modifierInfo is the digest of one modifiers node.
type modifierInfo struct {
	visibility  model.AccessLevel
	static      bool
	abstract    bool
	final       bool
	annotations []model.Annotation
}

// modifiers digests a modifiers node. Keyword tokens are anonymous in
// the grammar, so the full child list is walked and matched by text.
func (e *extractor) modifiers(node *sitter.Node, defaultVis model.AccessLevel) modifierInfo {
	info := modifierInfo{visibility: defaultVis}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "marker_annotation", "annotation":
			info.annotations = append(info.annotations, e.annotation(child))
		default:
			switch e.text(child) {
			case "public":
				info.visibility = model.AccessPublic
			case "protected":
				info.visibility = model.AccessProtected
			case "private":
				info.visibility = model.AccessPrivate
			case "static":
				info.static = true
			case "abstract":
				info.abstract = true
			case "final":
				info.final = true
			}
		}
	}
	return info
}

// annotation converts a marker_annotation or annotation node into the
// model form. Attribute values are kept exactly as written in source;
// a lone value is stored under the "value" key.
func (e *extractor) annotation(node *sitter.Node) model.Annotation {
	var name string
	attrs := make(map[string]string)
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "identifier", "scoped_identifier":
			name = e.text(child)
		case "annotation_argument_list":
			e.annotationArgs(child, attrs)
		}
	}
	return model.Annotation{
		Name:          simpleName(name),
		QualifiedName: e.resolveAnnotationName(name),
		Attributes:    attrs,
	}
}

func (e *extractor) annotationArgs(list *sitter.Node, attrs map[string]string) {
	for i := 0; i < int(list.NamedChildCount()); i++ {
		arg := list.NamedChild(i)
		if arg.Type() == "element_value_pair" {
			key := arg.ChildByFieldName("key")
			value := arg.ChildByFieldName("value")
			if key != nil && value != nil {
				attrs[e.text(key)] = e.text(value)
			}
			continue
		}
		attrs["value"] = e.text(arg)
	}
}

// resolveAnnotationName qualifies an annotation name. Names written
// qualified win, then the resolver, then the known-annotation table,
// then the name itself.
func (e *extractor) resolveAnnotationName(name string) string {
	if name == "" || strings.Contains(name, ".") {
		return name
	}
	if e.resolver != nil {
		if qualified, ok := e.resolver.ResolveQualifiedName(name); ok {
			return qualified
		}
	}
	if qualified, ok := knownAnnotations[name]; ok {
		return qualified
	}
	return name
}

// Package classify assigns an architectural role to a scanned
// declaration from its stereotype annotations.
package classify

import (
	"strings"

	"testforge/internal/model"
)

// roleRule binds the stereotype markers for one role. Alternate marker
// names (Controller / RestController) collapse to the same role.
type roleRule struct {
	markers []string
	role    model.Role
}

// rules is the fixed priority order. A declaration carrying several
// stereotype markers gets the role of whichever rule comes first here,
// regardless of annotation order in the source.
var rules = []roleRule{
	{markers: []string{"Service"}, role: model.RoleBusinessService},
	{markers: []string{"Controller", "RestController"}, role: model.RoleRequestHandler},
	{markers: []string{"Repository"}, role: model.RoleDataAccess},
	{markers: []string{"Component"}, role: model.RoleComponent},
	{markers: []string{"Configuration"}, role: model.RoleConfiguration},
}

// RoleFor maps an annotation set to exactly one role, or RoleOther when
// no stereotype marker is present.
func RoleFor(annotations []model.Annotation) model.Role {
	for _, rule := range rules {
		for _, marker := range rule.markers {
			for _, ann := range annotations {
				if matches(ann, marker) {
					return rule.role
				}
			}
		}
	}
	return model.RoleOther
}

// matches accepts either the simple marker name or a qualified name
// ending in ".<marker>".
func matches(ann model.Annotation, marker string) bool {
	if ann.Name == marker {
		return true
	}
	return strings.HasSuffix(ann.QualifiedName, "."+marker)
}

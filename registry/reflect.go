package registry

import (
	"fmt"
	"strings"
)

// excluded attributes never show up as fields; the neuroglancer config is a
// large JSON blob stored as a string.
var excluded = map[string]bool{
	"neuroglancer_config": true,
}

// SchemaReflectionWarning reports an attribute without documentation. It is
// not fatal, the attribute is mapped without a description.
type SchemaReflectionWarning struct {
	Entity    string
	Attribute string
}

func (w SchemaReflectionWarning) Error() string {
	return fmt.Sprintf("%s.%s: no description", w.Entity, w.Attribute)
}

// Reflection is the result of inspecting an entity type.
type Reflection struct {
	Attributes []Attribute
	Warnings   []SchemaReflectionWarning
}

// Reflect returns the ordered scalar attributes of an entity type. Excluded
// and internal (underscore prefixed) attributes and relationships are
// dropped. Missing descriptions are reported as warnings.
func Reflect(et EntityType) Reflection {
	var r Reflection
	for _, a := range et.Attributes {
		if !IsScalarAttribute(a) {
			continue
		}
		if strings.TrimSpace(a.Description) == "" {
			a.Description = ""
			r.Warnings = append(r.Warnings, SchemaReflectionWarning{
				Entity:    et.Name,
				Attribute: a.Name,
			})
		}
		r.Attributes = append(r.Attributes, a)
	}
	return r
}

// Scalars is a shortcut for the attributes of Reflect.
func Scalars(et EntityType) []Attribute {
	return Reflect(et).Attributes
}

// IsScalarAttribute reports whether an attribute is part of dumps and
// record sets.
func IsScalarAttribute(a Attribute) bool {
	if excluded[a.Name] || strings.HasPrefix(a.Name, "_") || a.Name == "" {
		return false
	}
	return a.Kind.IsScalar()
}

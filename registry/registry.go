// Package registry declares the portal entity types and their attributes.
//
// The portal client libraries describe their record types through class
// annotations and docstrings. We keep an explicit table instead, so the
// mapping to metadata fields is auditable and testable without a live schema.
package registry

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
)

// Kind is the semantic type of an attribute.
type Kind int

const (
	Text Kind = iota
	Integer
	Float
	Boolean
	Date
	URL
	// Relationship marks attributes that point to other entities or
	// collections of entities. They are only used to build filters.
	Relationship
)

var kindNames = [...]string{"text", "integer", "float", "boolean", "date", "url", "relationship"}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsScalar returns true for the kinds that can appear in a dump.
func (k Kind) IsScalar() bool {
	switch k {
	case Text, Integer, Float, Boolean, Date:
		return true
	}
	return false
}

// Attribute describes a single named attribute of an entity type.
type Attribute struct {
	Name        string
	Kind        Kind
	Description string
	// GraphQL is the name of the attribute in the portal API, if it differs
	// from the lower camel case version of Name.
	GraphQL string
}

// GQLName returns the name used in portal GraphQL queries.
func (a Attribute) GQLName() string {
	if a.GraphQL != "" {
		return a.GraphQL
	}
	return strcase.ToLowerCamel(a.Name)
}

// EntityType identifies one kind of portal record.
type EntityType struct {
	// Name is the canonical lower case name, used as record set id.
	Name string
	// GQLType is the type name in the portal schema.
	GQLType string
	// RootField is the query root field, also used as file name stem.
	RootField   string
	Description string
	Attributes  []Attribute
}

// Filename returns the name of the JSON dump for this entity type.
func (et EntityType) Filename() string {
	return et.RootField + ".json"
}

// Attribute returns the attribute with the given name.
func (et EntityType) Attribute(name string) (Attribute, bool) {
	for _, a := range et.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// Lookup finds an entity type by canonical name, case insensitive.
func Lookup(name string) (EntityType, bool) {
	name = strings.ToLower(name)
	for _, et := range All {
		if et.Name == name {
			return et, true
		}
	}
	return EntityType{}, false
}

package convert

import (
	"fmt"
	"strings"

	"github.com/miku/cryokit/registry"
	"github.com/miku/cryokit/schema/croissant"
)

// kindToDataType maps attribute kinds to field data types.
var kindToDataType = map[registry.Kind]croissant.DataType{
	registry.Text:    croissant.Text,
	registry.Integer: croissant.Integer,
	registry.Float:   croissant.Float,
	registry.Boolean: croissant.Boolean,
	registry.Date:    croissant.Date,
	registry.URL:     croissant.URL,
}

// FieldID returns the id of the field for an attribute of an entity.
func FieldID(entity, attribute string) string {
	return entity + "/" + attribute
}

// DataType resolves the data type of an attribute. Storage locations are
// declared as text in the portal, we mark them as URL.
func DataType(a registry.Attribute) croissant.DataType {
	if strings.Contains(a.Name, "http") || strings.Contains(a.Name, "s3") {
		return croissant.URL
	}
	if dt, ok := kindToDataType[a.Kind]; ok {
		return dt
	}
	return croissant.Text
}

// IsReference reports whether an attribute looks like a foreign key. This is
// a naming heuristic only, it will fire on names like "valid" as well.
func IsReference(name string) bool {
	return name != "id" && strings.Contains(name, "id")
}

// AttributeToField maps an attribute of an entity type to a field, reading
// from the JSON dump named filename.
func AttributeToField(entity, filename string, a registry.Attribute) croissant.Field {
	id := FieldID(entity, a.Name)
	f := croissant.Field{
		ID:          id,
		Name:        id,
		Description: a.Description,
		DataType:    DataType(a),
		Source: &croissant.Source{
			FileObject: &croissant.Ref{ID: filename},
			Extract:    &croissant.Extract{JSONPath: fmt.Sprintf("$[*].%s", a.Name)},
		},
	}
	if IsReference(a.Name) {
		f.References = &croissant.Source{Field: &croissant.Ref{ID: a.Name}}
	}
	return f
}

// EntityFields returns the fields for all scalar attributes of an entity
// type, in declaration order.
func EntityFields(et registry.EntityType) []croissant.Field {
	var (
		attrs  = registry.Scalars(et)
		fields = make([]croissant.Field, 0, len(attrs))
	)
	for _, a := range attrs {
		fields = append(fields, AttributeToField(et.Name, et.Filename(), a))
	}
	return fields
}

// EntityToRecordSet returns the record set for an entity type, keyed by id.
func EntityToRecordSet(et registry.EntityType) croissant.RecordSet {
	return croissant.RecordSet{
		ID:          et.Name,
		Name:        et.Name,
		Description: et.Description,
		Key:         []croissant.Ref{{ID: FieldID(et.Name, "id")}},
		Fields:      EntityFields(et),
	}
}

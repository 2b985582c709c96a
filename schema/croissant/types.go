// Package croissant contains a subset of the Croissant 1.0 metadata format,
// cf. https://docs.mlcommons.org/croissant/docs/croissant-spec.html
package croissant

import (
	"fmt"
	"strings"

	"github.com/segmentio/encoding/json"
)

const ConformsTo = "http://mlcommons.org/croissant/1.0"

// Filename of a dataset manifest.
const Filename = "croissant.json"

// DataType of a field.
type DataType string

const (
	Text    DataType = "sc:Text"
	Integer DataType = "sc:Integer"
	Float   DataType = "sc:Float"
	Boolean DataType = "sc:Boolean"
	Date    DataType = "sc:Date"
	URL     DataType = "sc:URL"
)

// Ref points to another node in the graph.
type Ref struct {
	ID string `json:"@id"`
}

// Extract describes how to get a value out of a file.
type Extract struct {
	JSONPath string `json:"jsonPath,omitempty"`
}

// Source binds a field to a file, file set or another field.
type Source struct {
	FileObject *Ref     `json:"fileObject,omitempty"`
	FileSet    *Ref     `json:"fileSet,omitempty"`
	Field      *Ref     `json:"field,omitempty"`
	Extract    *Extract `json:"extract,omitempty"`
}

// Field is a column in a record set.
type Field struct {
	ID          string   `json:"@id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	DataType    DataType `json:"dataType"`
	Source      *Source  `json:"source,omitempty"`
	References  *Source  `json:"references,omitempty"`
}

func (f Field) MarshalJSON() ([]byte, error) {
	type alias Field
	return json.Marshal(struct {
		Type string `json:"@type"`
		alias
	}{"cr:Field", alias(f)})
}

// RecordSet is a logical table.
type RecordSet struct {
	ID          string  `json:"@id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Key         []Ref   `json:"key,omitempty"`
	Fields      []Field `json:"field"`
}

func (rs RecordSet) MarshalJSON() ([]byte, error) {
	type alias RecordSet
	return json.Marshal(struct {
		Type string `json:"@type"`
		alias
	}{"cr:RecordSet", alias(rs)})
}

// Field returns the field with a given id.
func (rs RecordSet) Field(id string) (Field, bool) {
	for _, f := range rs.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

// Resource is a FileObject or a FileSet.
type Resource interface {
	ResourceID() string
}

// FileObject is a single file.
type FileObject struct {
	ID             string   `json:"@id"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	ContentURL     string   `json:"contentUrl"`
	ContentSize    string   `json:"contentSize,omitempty"`
	EncodingFormat []string `json:"encodingFormat"`
	SHA256         string   `json:"sha256,omitempty"`
	SameAs         []string `json:"sameAs,omitempty"`
	ContainedIn    []Ref    `json:"containedIn,omitempty"`
}

func (fo FileObject) ResourceID() string { return fo.ID }

func (fo FileObject) MarshalJSON() ([]byte, error) {
	type alias FileObject
	return json.Marshal(struct {
		Type string `json:"@type"`
		alias
	}{"cr:FileObject", alias(fo)})
}

// FileSet is a group of files, matched by glob patterns.
type FileSet struct {
	ID             string   `json:"@id"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	EncodingFormat []string `json:"encodingFormat"`
	Includes       []string `json:"includes"`
	ContainedIn    []Ref    `json:"containedIn,omitempty"`
}

func (fs FileSet) ResourceID() string { return fs.ID }

func (fs FileSet) MarshalJSON() ([]byte, error) {
	type alias FileSet
	return json.Marshal(struct {
		Type string `json:"@type"`
		alias
	}{"cr:FileSet", alias(fs)})
}

// Person, e.g. a creator of a dataset.
type Person struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

func (p Person) MarshalJSON() ([]byte, error) {
	type alias Person
	return json.Marshal(struct {
		Type string `json:"@type"`
		alias
	}{"sc:Person", alias(p)})
}

// Metadata is the top level dataset description.
type Metadata struct {
	Name               string      `json:"name"`
	Description        string      `json:"description,omitempty"`
	Creators           []Person    `json:"creator,omitempty"`
	DateCreated        string      `json:"dateCreated,omitempty"`
	DateModified       string      `json:"dateModified,omitempty"`
	DatePublished      string      `json:"datePublished,omitempty"`
	License            []string    `json:"license,omitempty"`
	URL                string      `json:"url,omitempty"`
	DataCollectionType []string    `json:"rai:dataCollectionType,omitempty"`
	Distribution       []Resource  `json:"distribution"`
	RecordSets         []RecordSet `json:"recordSet"`
}

func (m Metadata) MarshalJSON() ([]byte, error) {
	type alias Metadata
	distribution := m.Distribution
	if distribution == nil {
		distribution = []Resource{}
	}
	recordSets := m.RecordSets
	if recordSets == nil {
		recordSets = []RecordSet{}
	}
	a := alias(m)
	a.Distribution = distribution
	a.RecordSets = recordSets
	return json.Marshal(struct {
		Context    map[string]any `json:"@context"`
		Type       string         `json:"@type"`
		ConformsTo string         `json:"conformsTo"`
		alias
	}{Context(), "sc:Dataset", ConformsTo, a})
}

// Validate checks graph level invariants: unique ids, keys and references to
// existing nodes.
func (m Metadata) Validate() error {
	var (
		problems  []string
		resources = make(map[string]bool)
		fields    = make(map[string]bool)
	)
	for _, r := range m.Distribution {
		id := r.ResourceID()
		if resources[id] {
			problems = append(problems, fmt.Sprintf("duplicate resource id: %s", id))
		}
		resources[id] = true
	}
	recordSets := make(map[string]bool)
	for _, rs := range m.RecordSets {
		if recordSets[rs.ID] {
			problems = append(problems, fmt.Sprintf("duplicate record set id: %s", rs.ID))
		}
		recordSets[rs.ID] = true
		for _, f := range rs.Fields {
			if fields[f.ID] {
				problems = append(problems, fmt.Sprintf("duplicate field id: %s", f.ID))
			}
			fields[f.ID] = true
		}
	}
	for _, rs := range m.RecordSets {
		for _, k := range rs.Key {
			if _, ok := rs.Field(k.ID); !ok {
				problems = append(problems, fmt.Sprintf("%s: key %s is not a field", rs.ID, k.ID))
			}
		}
		for _, f := range rs.Fields {
			if f.Source == nil {
				continue
			}
			if f.Source.FileObject != nil && !resources[f.Source.FileObject.ID] {
				problems = append(problems, fmt.Sprintf("%s: unknown file object %s", f.ID, f.Source.FileObject.ID))
			}
			if f.Source.FileSet != nil && !resources[f.Source.FileSet.ID] {
				problems = append(problems, fmt.Sprintf("%s: unknown file set %s", f.ID, f.Source.FileSet.ID))
			}
			if f.Source.Field != nil && !fields[f.Source.Field.ID] {
				problems = append(problems, fmt.Sprintf("%s: unknown source field %s", f.ID, f.Source.Field.ID))
			}
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid metadata: %s", strings.Join(problems, "; "))
	}
	return nil
}

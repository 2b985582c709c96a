package convert

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/miku/cryokit/registry"
	"github.com/miku/cryokit/schema/cdp"
	"github.com/miku/cryokit/schema/croissant"
)

const (
	// TomogramTypeFilename is the name of the tomogram type bridge file.
	TomogramTypeFilename = "tomogram_types.json"
	// TomogramTypeID is the id of the tomogram type record set.
	TomogramTypeID = "tomogram_type"
)

// TypeKey are the properties that make up a tomogram type. Keys compare by
// value; null values compare equal to each other and are rendered empty.
type TypeKey struct {
	DepositionID         string
	VoxelSpacing         float64
	HasVoxelSpacing      bool
	ReconstructionMethod string
	Processing           string
	ProcessingSoftware   string
}

// KeyOf extracts the type key from a tomogram record.
func KeyOf(tomogram cdp.Record) TypeKey {
	k := TypeKey{
		DepositionID:         tomogram.Text("deposition_id"),
		ReconstructionMethod: tomogram.Text("reconstruction_method"),
		Processing:           tomogram.Text("processing"),
		ProcessingSoftware:   tomogram.Text("processing_software"),
	}
	if v, ok := tomogram.Float("voxel_spacing"); ok && !math.IsNaN(v) {
		k.VoxelSpacing, k.HasVoxelSpacing = v, true
	}
	return k
}

// voxelSpacing renders the spacing with at least one decimal, 10 becomes
// "10.0" and 13.48 stays "13.48".
func (k TypeKey) voxelSpacing() string {
	if !k.HasVoxelSpacing {
		return ""
	}
	s := strconv.FormatFloat(k.VoxelSpacing, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// ID returns the synthetic group id: dataset id and the five key components
// joined by underscores.
func (k TypeKey) ID(datasetID int64) string {
	return strings.Join([]string{
		strconv.FormatInt(datasetID, 10),
		k.DepositionID,
		k.voxelSpacing(),
		k.ReconstructionMethod,
		k.Processing,
		k.ProcessingSoftware,
	}, "_")
}

// Label is a human readable name for the group, e.g. "WBP, raw at 10.0 Å
// (deposition 5)".
func (k TypeKey) Label() string {
	var parts []string
	for _, s := range []string{k.ReconstructionMethod, k.Processing, k.ProcessingSoftware} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	label := strings.Join(parts, ", ")
	if k.HasVoxelSpacing {
		label = strings.TrimSpace(fmt.Sprintf("%s at %s Å", label, k.voxelSpacing()))
	}
	if k.DepositionID != "" {
		label = strings.TrimSpace(fmt.Sprintf("%s (deposition %s)", label, k.DepositionID))
	}
	if label == "" {
		return "unknown"
	}
	return label
}

// TypeGroup is a set of tomograms sharing a type key.
type TypeGroup struct {
	ID   string
	Name string
	Key  TypeKey
	// Tomograms are the member ids, in input order.
	Tomograms []int64
}

// GroupTomograms partitions tomograms by type key. Groups are returned in
// order of first appearance. No tomograms yield no groups.
func GroupTomograms(datasetID int64, tomograms []cdp.Record) []TypeGroup {
	var (
		index  = make(map[TypeKey]int)
		groups []TypeGroup
	)
	for _, t := range tomograms {
		k := KeyOf(t)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, TypeGroup{
				ID:   k.ID(datasetID),
				Name: k.Label(),
				Key:  k,
			})
		}
		groups[i].Tomograms = append(groups[i].Tomograms, t.ID())
	}
	return groups
}

// BridgeRows returns one row per tomogram, pairing its id with the group id.
// The result is never nil.
func BridgeRows(groups []TypeGroup) []map[string]any {
	rows := make([]map[string]any, 0)
	for _, g := range groups {
		for _, id := range g.Tomograms {
			rows = append(rows, map[string]any{
				"id":          g.ID,
				"name":        g.Name,
				"tomogram_id": id,
			})
		}
	}
	return rows
}

// ForeignReferenceFields rebinds fields to read from the original field,
// under a new prefix. Fields whose new id is in exclude are dropped. The
// input is not modified.
func ForeignReferenceFields(fields []croissant.Field, prefix string, exclude []string) []croissant.Field {
	skip := make(map[string]bool)
	for _, id := range exclude {
		skip[id] = true
	}
	var result []croissant.Field
	for _, f := range fields {
		source := f.ID
		f.ID = prefix + "/" + source
		if skip[f.ID] {
			continue
		}
		f.Name = f.ID
		f.Source = &croissant.Source{Field: &croissant.Ref{ID: source}}
		result = append(result, f)
	}
	return result
}

func bridgeField(id, name, description string, dt croissant.DataType, column string) croissant.Field {
	return croissant.Field{
		ID:          id,
		Name:        name,
		Description: description,
		DataType:    dt,
		Source: &croissant.Source{
			FileObject: &croissant.Ref{ID: TomogramTypeFilename},
			Extract:    &croissant.Extract{JSONPath: "$[*]." + column},
		},
	}
}

// TomogramTypeRecordSet maps each tomogram to its type. Rows are bridge
// rows, so the group id repeats and the key is group id plus tomogram id.
// The tomogram fields are included for joining back to full tomograms.
func TomogramTypeRecordSet() croissant.RecordSet {
	var (
		groupID    = FieldID(TomogramTypeID, "id")
		tomogramID = FieldID(TomogramTypeID, "tomogram/id")
	)
	fields := []croissant.Field{
		bridgeField(groupID, "Tomogram Type ID",
			"Identifier of the tomogram type, made from dataset, deposition, voxel spacing, reconstruction method, processing and processing software",
			croissant.Text, "id"),
		bridgeField(FieldID(TomogramTypeID, "name"), "Tomogram Type Name",
			"Name of the tomogram type", croissant.Text, "name"),
		bridgeField(tomogramID, "Tomogram ID",
			"Identifier of a tomogram of this type", croissant.Integer, "tomogram_id"),
	}
	fields[2].References = &croissant.Source{Field: &croissant.Ref{ID: FieldID(registry.Tomogram.Name, "id")}}
	exclude := make([]string, 0, len(fields))
	for _, f := range fields {
		exclude = append(exclude, f.ID)
	}
	fields = append(fields, ForeignReferenceFields(EntityFields(registry.Tomogram), TomogramTypeID, exclude)...)
	return croissant.RecordSet{
		ID:          TomogramTypeID,
		Name:        "Tomogram Type",
		Description: "A recordset mapping each tomogram to its unique tomogram type within this dataset.",
		// Keys must be unique per row; a group id alone repeats once per tomogram.
		Key:         []croissant.Ref{{ID: groupID}, {ID: tomogramID}},
		Fields:      fields,
	}
}

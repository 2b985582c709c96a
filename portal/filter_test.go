package portal

import (
	"testing"

	"github.com/miku/cryokit/registry"
	"github.com/segmentio/encoding/json"
)

func TestWhereClause(t *testing.T) {
	var cases = []struct {
		about   string
		filters []Filter
		result  string
		err     bool
	}{
		{"no filters", nil, "", false},
		{"simple", []Filter{Eq("id", int64(10440))}, `{id: {_eq: 10440}}`, false},
		{"nested", []Filter{Eq("run.dataset_id", 10440)}, `{run: {datasetId: {_eq: 10440}}}`, false},
		{"deep", []Filter{Eq("tomogram_voxel_spacing.run.dataset_id", 1)},
			`{tomogramVoxelSpacing: {run: {datasetId: {_eq: 1}}}}`, false},
		{"string", []Filter{Eq("name", `TS "01"`)}, `{name: {_eq: "TS \"01\""}}`, false},
		{"number", []Filter{Eq("voxel_spacing", json.Number("10.0"))}, `{voxelSpacing: {_eq: 10.0}}`, false},
		{"conjunction sorted", []Filter{Eq("run.name", "a"), Eq("run.dataset_id", 2)},
			`{run: {datasetId: {_eq: 2}, name: {_eq: "a"}}}`, false},
		{"duplicate", []Filter{Eq("id", 1), Eq("id", 2)}, "", true},
		{"conflict", []Filter{{Path: []string{"id"}, Op: "_eq", Value: 1}, Eq("id.x", 2)}, "", true},
		{"operator then relation", []Filter{Eq("run", 1), Eq("run.dataset_id", 2)}, "", true},
		{"relation then operator", []Filter{Eq("run.dataset_id", 2), Eq("run", 1)}, "", true},
		{"range", []Filter{{Path: []string{"id"}, Op: "_gt", Value: 1}, {Path: []string{"id"}, Op: "_lt", Value: 5}},
			`{id: {_gt: 1, _lt: 5}}`, false},
		{"no path", []Filter{{Op: "_eq", Value: 1}}, "", true},
		{"no op", []Filter{{Path: []string{"id"}, Value: 1}}, "", true},
		{"bad value", []Filter{Eq("id", []int{1})}, "", true},
	}
	for _, c := range cases {
		result, err := WhereClause(c.filters)
		if c.err != (err != nil) {
			t.Errorf("[%s] got err %v, want err %v", c.about, err, c.err)
			continue
		}
		if result != c.result {
			t.Errorf("[%s] got %s, want %s", c.about, result, c.result)
		}
	}
}

func TestDatasetFiltersCoverRegistry(t *testing.T) {
	filters := DatasetFilters(10440)
	for _, et := range registry.All {
		fs, ok := filters[et.Name]
		if !ok || len(fs) == 0 {
			t.Errorf("no filter for %s", et.Name)
			continue
		}
		if _, err := WhereClause(fs); err != nil {
			t.Errorf("%s: %v", et.Name, err)
		}
	}
}

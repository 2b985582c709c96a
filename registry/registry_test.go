package registry

import (
	"strings"
	"testing"
)

func TestReflectExcludesInternalAndLargeAttributes(t *testing.T) {
	for _, et := range All {
		t.Run(et.Name, func(t *testing.T) {
			for _, a := range Scalars(et) {
				if a.Name == "neuroglancer_config" {
					t.Errorf("neuroglancer_config not excluded")
				}
				if strings.HasPrefix(a.Name, "_") {
					t.Errorf("internal attribute %s not excluded", a.Name)
				}
				if !a.Kind.IsScalar() {
					t.Errorf("%s: got kind %v, want scalar", a.Name, a.Kind)
				}
			}
		})
	}
}

func TestReflectKeepsOrder(t *testing.T) {
	et := EntityType{
		Name: "thing",
		Attributes: []Attribute{
			{Name: "id", Kind: Integer, Description: "id"},
			{Name: "_hidden", Kind: Text, Description: "internal"},
			{Name: "neuroglancer_config", Kind: Text, Description: "big"},
			{Name: "parent", Kind: Relationship},
			{Name: "name", Kind: Text},
			{Name: "created", Kind: Date, Description: "date"},
		},
	}
	r := Reflect(et)
	var got []string
	for _, a := range r.Attributes {
		got = append(got, a.Name)
	}
	want := "id,name,created"
	if strings.Join(got, ",") != want {
		t.Fatalf("got %v, want %v", got, want)
	}
	if len(r.Warnings) != 1 || r.Warnings[0].Attribute != "name" {
		t.Fatalf("got warnings %v, want one for name", r.Warnings)
	}
	if r.Attributes[1].Description != "" {
		t.Fatalf("description should be absent")
	}
}

func TestEveryEntityHasID(t *testing.T) {
	seen := make(map[string]bool)
	for _, et := range All {
		if seen[et.Name] {
			t.Errorf("duplicate entity type: %s", et.Name)
		}
		seen[et.Name] = true
		a, ok := et.Attribute("id")
		if !ok || a.Kind != Integer {
			t.Errorf("%s: missing integer id attribute", et.Name)
		}
		names := make(map[string]bool)
		for _, a := range et.Attributes {
			if names[a.Name] {
				t.Errorf("%s: duplicate attribute %s", et.Name, a.Name)
			}
			names[a.Name] = true
		}
	}
	if len(All) != 8 {
		t.Fatalf("got %d entity types, want 8", len(All))
	}
}

func TestGQLName(t *testing.T) {
	var cases = []struct {
		attr Attribute
		want string
	}{
		{Attribute{Name: "id"}, "id"},
		{Attribute{Name: "run_id"}, "runId"},
		{Attribute{Name: "https_omezarr_dir"}, "httpsOmezarrDir"},
		{Attribute{Name: "tomogram_voxel_spacing_id"}, "tomogramVoxelSpacingId"},
		{Attribute{Name: "odd", GraphQL: "oddName"}, "oddName"},
	}
	for _, c := range cases {
		if got := c.attr.GQLName(); got != c.want {
			t.Errorf("GQLName(%s): got %s, want %s", c.attr.Name, got, c.want)
		}
	}
}

func TestLookup(t *testing.T) {
	et, ok := Lookup("Tomogram")
	if !ok {
		t.Fatal("tomogram not found")
	}
	if et.Filename() != "tomograms.json" {
		t.Errorf("got %s, want tomograms.json", et.Filename())
	}
	if _, ok := Lookup("micrograph"); ok {
		t.Errorf("unexpected entity type")
	}
}

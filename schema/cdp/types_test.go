package cdp

import (
	"testing"

	"github.com/segmentio/encoding/json"
)

func TestRecordAccessors(t *testing.T) {
	r := Record{
		"id":            json.Number("42"),
		"voxel_spacing": json.Number("10.0"),
		"name":          "TS_01",
		"processing":    nil,
		"ctf_corrected": true,
	}
	if r.ID() != 42 {
		t.Errorf("got %d, want 42", r.ID())
	}
	if f, ok := r.Float("voxel_spacing"); !ok || f != 10.0 {
		t.Errorf("got %v %v, want 10.0", f, ok)
	}
	if _, ok := r.Float("processing"); ok {
		t.Errorf("null should not be numeric")
	}
	if r.Text("processing") != "" {
		t.Errorf("null should be empty")
	}
	if r.Text("ctf_corrected") != "true" {
		t.Errorf("got %s, want true", r.Text("ctf_corrected"))
	}
	if r.Text("missing") != "" {
		t.Errorf("missing should be empty")
	}
	if (Record{}).ID() != -1 {
		t.Errorf("missing id should be -1")
	}
}

func TestSortByID(t *testing.T) {
	records := []Record{
		{"id": json.Number("3")},
		{"name": "no id"},
		{"id": json.Number("1")},
		{"id": json.Number("20")},
	}
	SortByID(records)
	var got []int64
	for _, r := range records {
		got = append(got, r.ID())
	}
	want := []int64{1, 3, 20, -1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestAuthorList(t *testing.T) {
	var ds Dataset
	blob := `{"id": 10440, "authors": {"edges": [
		{"node": {"name": "B", "authorListOrder": 2}},
		{"node": {"name": "A", "orcid": "0000-0001", "authorListOrder": 1}}
	]}}`
	if err := json.Unmarshal([]byte(blob), &ds); err != nil {
		t.Fatal(err)
	}
	authors := ds.AuthorList()
	if len(authors) != 2 || authors[0].Name != "A" || authors[1].Name != "B" {
		t.Fatalf("got %v", authors)
	}
}

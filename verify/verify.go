// Package verify checks a generated manifest against the files it describes:
// checksums, extraction paths, nulls and record set keys.
package verify

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/miku/cryokit/convert"
	"github.com/miku/cryokit/dump"
	"github.com/miku/cryokit/registry"
	"github.com/miku/cryokit/schema/croissant"
	"github.com/tidwall/gjson"
)

// Problem found during verification.
type Problem struct {
	// Resource is a file, record set or field id.
	Resource string
	Message  string
}

func (p Problem) String() string {
	return p.Resource + ": " + p.Message
}

// AsError returns nil, if there are no problems.
func AsError(problems []Problem) error {
	if len(problems) == 0 {
		return nil
	}
	var errs []error
	for _, p := range problems {
		errs = append(errs, errors.New(p.String()))
	}
	return fmt.Errorf("verify: %d problem(s): %w", len(problems), errors.Join(errs...))
}

// jsonPathRe matches the extraction paths we generate, "$[*].name".
var jsonPathRe = regexp.MustCompile(`^\$\[\*\]\.([A-Za-z0-9_]+)$`)

// id returns the "@id" of a node; "@" starts a modifier in gjson paths, so
// we look it up in the object map.
func id(r gjson.Result) string {
	return r.Map()["@id"].String()
}

// Dir verifies the manifest in a dataset directory.
func Dir(dir string) ([]Problem, error) {
	b, err := os.ReadFile(filepath.Join(dir, croissant.Filename))
	if err != nil {
		return nil, err
	}
	return Manifest(b, dir), nil
}

// Manifest verifies a serialized manifest, the JSON files it points to are
// looked up in dir. Only file objects with a checksum are considered local.
func Manifest(manifest []byte, dir string) []Problem {
	if !gjson.ValidBytes(manifest) {
		return []Problem{{Resource: croissant.Filename, Message: "invalid JSON"}}
	}
	var (
		root     = gjson.ParseBytes(manifest)
		docs     = make(map[string]gjson.Result)
		problems []Problem
	)
	report := func(resource, format string, args ...any) {
		problems = append(problems, Problem{Resource: resource, Message: fmt.Sprintf(format, args...)})
	}
	root.Get("distribution").ForEach(func(_, r gjson.Result) bool {
		if r.Map()["@type"].String() != "cr:FileObject" {
			return true
		}
		sha := r.Get("sha256").String()
		if sha == "" {
			return true
		}
		name := id(r)
		doc, err := readDoc(filepath.Join(dir, name), sha)
		if err != nil {
			report(name, "%v", err)
			return true
		}
		var nulls int
		doc.ForEach(func(_, row gjson.Result) bool {
			row.ForEach(func(_, v gjson.Result) bool {
				if v.Type == gjson.Null {
					nulls++
				}
				return true
			})
			return true
		})
		if nulls > 0 {
			report(name, "%d null value(s)", nulls)
		}
		docs[name] = doc
		return true
	})
	root.Get("recordSet").ForEach(func(_, rs gjson.Result) bool {
		columns := make(map[string][]gjson.Result)
		rs.Get("field").ForEach(func(_, f gjson.Result) bool {
			fid := id(f)
			fo := f.Get("source.fileObject")
			if !fo.Exists() {
				return true
			}
			doc, ok := docs[id(fo)]
			if !ok {
				return true
			}
			jsonPath := f.Get("source.extract.jsonPath").String()
			m := jsonPathRe.FindStringSubmatch(jsonPath)
			if m == nil {
				report(fid, "unsupported extraction path %q", jsonPath)
				return true
			}
			var (
				rows   = len(doc.Array())
				values = doc.Get("#." + m[1]).Array()
			)
			if len(values) != rows {
				report(fid, "%s found in %d of %d rows", m[1], len(values), rows)
				return true
			}
			columns[fid] = values
			return true
		})
		checkKey(rs, columns, report)
		if et, ok := registry.Lookup(id(rs)); ok {
			checkAttributes(et, rs, report)
		}
		return true
	})
	return problems
}

// readDoc reads a file, compares its checksum and parses it as a JSON array.
func readDoc(path, sha string) (gjson.Result, error) {
	sum, err := dump.Checksum(path)
	if err != nil {
		return gjson.Result{}, err
	}
	if sum != sha {
		return gjson.Result{}, fmt.Errorf("checksum mismatch: got %s, want %s", sum, sha)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.ValidBytes(b) {
		return gjson.Result{}, errors.New("invalid JSON")
	}
	doc := gjson.ParseBytes(b)
	if !doc.IsArray() {
		return gjson.Result{}, errors.New("not a JSON array")
	}
	return doc, nil
}

// checkAttributes reports fields of an entity record set that do not name an
// attribute of the entity type, and scalar attributes without a field.
func checkAttributes(et registry.EntityType, rs gjson.Result, report func(string, string, ...any)) {
	seen := make(map[string]bool)
	rs.Get("field").ForEach(func(_, f gjson.Result) bool {
		var (
			fid  = id(f)
			name = strings.TrimPrefix(fid, et.Name+"/")
		)
		if a, ok := et.Attribute(name); !ok || name == fid || !registry.IsScalarAttribute(a) {
			report(fid, "not an attribute of %s", et.Name)
			return true
		}
		seen[name] = true
		return true
	})
	for _, a := range registry.Scalars(et) {
		if !seen[a.Name] {
			report(id(rs), "missing field %s", convert.FieldID(et.Name, a.Name))
		}
	}
}

// checkKey reports duplicate key values. Keys with fields not bound to a
// local file are skipped.
func checkKey(rs gjson.Result, columns map[string][]gjson.Result, report func(string, string, ...any)) {
	var keys [][]gjson.Result
	rs.Get("key").ForEach(func(_, k gjson.Result) bool {
		keys = append(keys, columns[id(k)])
		return true
	})
	if len(keys) == 0 {
		return
	}
	n := len(keys[0])
	for _, col := range keys {
		if col == nil || len(col) != n {
			return
		}
	}
	seen := make(map[string]bool)
	for i := 0; i < n; i++ {
		var parts []string
		for _, col := range keys {
			parts = append(parts, col[i].Raw)
		}
		v := strings.Join(parts, "\x00")
		if seen[v] {
			report(id(rs), "duplicate key %s", strings.Join(parts, ", "))
			continue
		}
		seen[v] = true
	}
}

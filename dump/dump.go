// Package dump writes portal tables to JSON files and describes them as
// Croissant file objects and record sets.
package dump

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/miku/cryokit/atomicfile"
	"github.com/miku/cryokit/convert"
	"github.com/miku/cryokit/portal"
	"github.com/miku/cryokit/registry"
	"github.com/miku/cryokit/schema/cdp"
	"github.com/miku/cryokit/schema/croissant"
	"github.com/segmentio/encoding/json"
	log "github.com/sirupsen/logrus"
)

// Finder fetches all records of an entity type matching a conjunction of
// filters. Implemented by portal.Client.
type Finder interface {
	Find(ctx context.Context, et registry.EntityType, filters ...portal.Filter) ([]cdp.Record, error)
}

// Normalize projects records onto the scalar attributes of the entity type,
// so every row carries the same keys. Relationship values and excluded
// attributes are dropped; null and missing values become the empty string.
// The input is not modified.
func Normalize(et registry.EntityType, records []cdp.Record) []cdp.Record {
	var (
		attrs  = registry.Scalars(et)
		result = make([]cdp.Record, 0, len(records))
	)
	for _, r := range records {
		n := make(cdp.Record, len(attrs))
		for _, a := range attrs {
			switch v := r[a.Name].(type) {
			case nil, map[string]any, []any:
				n[a.Name] = ""
			default:
				n[a.Name] = v
			}
		}
		result = append(result, n)
	}
	return result
}

// WriteJSON writes v as an indented JSON document to path, then reads the
// file back and returns the hex encoded SHA-256 of the bytes on disk.
func WriteJSON(path string, v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return "", &FilesystemError{Op: "encode", Path: path, Err: err}
	}
	if err := atomicfile.WriteFile(path, b, 0644); err != nil {
		return "", &FilesystemError{Op: "write", Path: path, Err: err}
	}
	sum, err := Checksum(path)
	if err != nil {
		return "", &FilesystemError{Op: "read", Path: path, Err: err}
	}
	return sum, nil
}

// Checksum returns the hex encoded SHA-256 of a file.
func Checksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// ContentURL joins a base URL and a file name, ignoring trailing slashes on
// the base.
func ContentURL(dataURL, name string) string {
	return strings.TrimRight(dataURL, "/") + "/" + name
}

// FileObject describes a JSON dump.
func FileObject(name, description, dataURL, sha string) croissant.FileObject {
	return croissant.FileObject{
		ID:             name,
		Name:           name,
		Description:    description,
		ContentURL:     ContentURL(dataURL, name),
		EncodingFormat: []string{convert.FormatJSON},
		SHA256:         sha,
	}
}

// Table fetches all records of an entity type matching filters, writes them
// sorted by id to {outDir}/{root field}.json and returns the file object
// along with the fetched records. Fetch errors are not retried.
func Table(ctx context.Context, f Finder, et registry.EntityType, filters []portal.Filter, outDir, dataURL string) (croissant.FileObject, []cdp.Record, error) {
	records, err := f.Find(ctx, et, filters...)
	if err != nil {
		return croissant.FileObject{}, nil, &DataAccessError{Entity: et.Name, Err: err}
	}
	cdp.SortByID(records)
	var (
		name = et.Filename()
		path = filepath.Join(outDir, name)
	)
	sha, err := WriteJSON(path, Normalize(et, records))
	if err != nil {
		return croissant.FileObject{}, nil, err
	}
	log.WithFields(log.Fields{
		"entity": et.Name,
		"count":  len(records),
		"sha256": sha,
	}).Debug("dump: wrote table")
	fo := FileObject(name, fmt.Sprintf("All %s records of this dataset.", et.Name), dataURL, sha)
	return fo, records, nil
}

// TomogramTypes groups tomograms by type and writes the bridge file.
func TomogramTypes(datasetID int64, tomograms []cdp.Record, outDir, dataURL string) (croissant.FileObject, croissant.RecordSet, error) {
	var (
		groups = convert.GroupTomograms(datasetID, tomograms)
		path   = filepath.Join(outDir, convert.TomogramTypeFilename)
	)
	sha, err := WriteJSON(path, convert.BridgeRows(groups))
	if err != nil {
		return croissant.FileObject{}, croissant.RecordSet{}, err
	}
	log.WithFields(log.Fields{
		"dataset":   datasetID,
		"groups":    len(groups),
		"tomograms": len(tomograms),
	}).Debug("dump: wrote tomogram types")
	fo := FileObject(convert.TomogramTypeFilename,
		"Tomograms with unique tomogram types within this dataset.", dataURL, sha)
	return fo, convert.TomogramTypeRecordSet(), nil
}

// Result of dumping a dataset.
type Result struct {
	Files      []croissant.FileObject
	RecordSets []croissant.RecordSet
	// Records are the fetched records, keyed by entity type name.
	Records map[string][]cdp.Record
}

// Distribution returns the files as resources.
func (r *Result) Distribution() []croissant.Resource {
	result := make([]croissant.Resource, 0, len(r.Files))
	for _, f := range r.Files {
		result = append(result, f)
	}
	return result
}

// Portal dumps all entity types of a dataset into outDir, followed by the
// tomogram type bridge. Any failure aborts the dataset and is reported as a
// *DatasetError naming the failing entity type.
func Portal(ctx context.Context, f Finder, datasetID int64, outDir, dataURL string) (*Result, error) {
	outDir = strings.TrimRight(outDir, "/")
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, &DatasetError{
			DatasetID: datasetID,
			Err:       &FilesystemError{Op: "mkdir", Path: outDir, Err: err},
		}
	}
	var (
		filters = portal.DatasetFilters(datasetID)
		result  = &Result{Records: make(map[string][]cdp.Record)}
	)
	for _, et := range registry.All {
		if err := ctx.Err(); err != nil {
			return nil, &DatasetError{DatasetID: datasetID, Entity: et.Name, Err: err}
		}
		for _, w := range registry.Reflect(et).Warnings {
			log.WithField("dataset", datasetID).Debugf("dump: %v", w)
		}
		fo, records, err := Table(ctx, f, et, filters[et.Name], outDir, dataURL)
		if err != nil {
			return nil, &DatasetError{DatasetID: datasetID, Entity: et.Name, Err: err}
		}
		result.Files = append(result.Files, fo)
		result.RecordSets = append(result.RecordSets, convert.EntityToRecordSet(et))
		result.Records[et.Name] = records
	}
	fo, rs, err := TomogramTypes(datasetID, result.Records[registry.Tomogram.Name], outDir, dataURL)
	if err != nil {
		return nil, &DatasetError{DatasetID: datasetID, Entity: convert.TomogramTypeID, Err: err}
	}
	result.Files = append(result.Files, fo)
	result.RecordSets = append(result.RecordSets, rs)
	return result, nil
}

package convert

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/miku/cryokit/schema/cdp"
	"github.com/miku/cryokit/schema/croissant"
)

// PublicBucket is the S3 location of the public portal data.
const PublicBucket = "s3://cryoet-data-portal-public/"

// Encoding formats of binary artifacts.
const (
	FormatOMEZarr = "image/OME-Zarr"
	FormatMRC     = "image/MRC"
	FormatJSON    = "application/json"
)

// bucketPath strips the public bucket prefix from an S3 location.
func bucketPath(s string) string {
	return strings.TrimPrefix(s, PublicBucket)
}

// contentSize renders a file size in bytes, empty if unknown.
func contentSize(r cdp.Record, key string) string {
	v, ok := r.Float(key)
	if !ok {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + " B"
}

func prefixGlob(ds *cdp.Dataset, pattern string) string {
	prefix := ds.HTTPSPrefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix + pattern
}

// TomogramFileSetID returns the id of the tomogram file set of a format,
// "ome-zarr" or "mrc".
func TomogramFileSetID(datasetID int64, format string) string {
	return fmt.Sprintf("%d-tomograms-%s", datasetID, format)
}

// TiltSeriesFileSetID is like TomogramFileSetID, for tilt series.
func TiltSeriesFileSetID(datasetID int64, format string) string {
	return fmt.Sprintf("%d-tiltseries-%s", datasetID, format)
}

// AlignmentFileSetID returns the id of the alignment metadata file set.
func AlignmentFileSetID(datasetID int64) string {
	return fmt.Sprintf("%d-alignments", datasetID)
}

// TomogramFileSets returns the file sets matching all tomograms of a
// dataset, one for OME-Zarr and one for MRC.
func TomogramFileSets(ds *cdp.Dataset) []croissant.FileSet {
	return []croissant.FileSet{
		{
			ID:             TomogramFileSetID(ds.ID, "ome-zarr"),
			Name:           TomogramFileSetID(ds.ID, "ome-zarr"),
			Description:    "Tomograms in OME-Zarr format",
			EncodingFormat: []string{FormatOMEZarr},
			Includes:       []string{prefixGlob(ds, "*/Reconstructions/VoxelSpacing*/Tomograms/*/*.zarr")},
		},
		{
			ID:             TomogramFileSetID(ds.ID, "mrc"),
			Name:           TomogramFileSetID(ds.ID, "mrc"),
			Description:    "Tomograms in MRC format",
			EncodingFormat: []string{FormatMRC},
			Includes:       []string{prefixGlob(ds, "*/Reconstructions/VoxelSpacing*/Tomograms/*/*.mrc")},
		},
	}
}

// TiltSeriesFileSets returns the tilt series file sets of a dataset.
func TiltSeriesFileSets(ds *cdp.Dataset) []croissant.FileSet {
	return []croissant.FileSet{
		{
			ID:             TiltSeriesFileSetID(ds.ID, "ome-zarr"),
			Name:           TiltSeriesFileSetID(ds.ID, "ome-zarr"),
			Description:    "Tiltseries in OME-Zarr format",
			EncodingFormat: []string{FormatOMEZarr},
			Includes:       []string{prefixGlob(ds, "*/Reconstructions/VoxelSpacing*/TiltSeries/*/*.zarr")},
		},
		{
			ID:             TiltSeriesFileSetID(ds.ID, "mrc"),
			Name:           TiltSeriesFileSetID(ds.ID, "mrc"),
			Description:    "Tiltseries in MRC format",
			EncodingFormat: []string{FormatMRC},
			Includes:       []string{prefixGlob(ds, "*/Reconstructions/VoxelSpacing*/TiltSeries/*/*.mrc")},
		},
	}
}

// AlignmentFileSets returns the file set of alignment metadata files.
func AlignmentFileSets(ds *cdp.Dataset) []croissant.FileSet {
	return []croissant.FileSet{
		{
			ID:             AlignmentFileSetID(ds.ID),
			Name:           AlignmentFileSetID(ds.ID),
			Description:    "Alignments",
			EncodingFormat: []string{FormatJSON},
			Includes:       []string{prefixGlob(ds, "*/Alignments/*/alignment_metadata.json")},
		},
	}
}

// pair links two representations of the same data; either may be missing,
// in which case no sameAs is set.
func pair(a, b *croissant.FileObject) []croissant.FileObject {
	var result []croissant.FileObject
	if a != nil && b != nil {
		a.SameAs = []string{b.ID}
		b.SameAs = []string{a.ID}
	}
	for _, fo := range []*croissant.FileObject{a, b} {
		if fo != nil {
			result = append(result, *fo)
		}
	}
	return result
}

// TomogramFiles returns the OME-Zarr and MRC file objects of a tomogram,
// identified by their path within the public bucket. Representations
// without a location are skipped.
func TomogramFiles(ds *cdp.Dataset, tomogram cdp.Record) []croissant.FileObject {
	var zarr, mrc *croissant.FileObject
	if s := tomogram.Text("s3_omezarr_dir"); s != "" {
		zarr = &croissant.FileObject{
			ID:             bucketPath(s),
			Name:           bucketPath(s),
			Description:    fmt.Sprintf("Tomogram %d in OME-Zarr format", tomogram.ID()),
			ContentURL:     tomogram.Text("https_omezarr_dir"),
			ContentSize:    contentSize(tomogram, "file_size_omezarr"),
			EncodingFormat: []string{FormatOMEZarr},
			ContainedIn:    []croissant.Ref{{ID: TomogramFileSetID(ds.ID, "ome-zarr")}},
		}
	}
	if s := tomogram.Text("s3_mrc_file"); s != "" {
		mrc = &croissant.FileObject{
			ID:             bucketPath(s),
			Name:           bucketPath(s),
			Description:    fmt.Sprintf("Tomogram %d in MRC format", tomogram.ID()),
			ContentURL:     tomogram.Text("https_mrc_file"),
			ContentSize:    contentSize(tomogram, "file_size_mrc"),
			EncodingFormat: []string{FormatMRC},
			ContainedIn:    []croissant.Ref{{ID: TomogramFileSetID(ds.ID, "mrc")}},
		}
	}
	return pair(zarr, mrc)
}

// TiltSeriesFiles returns the OME-Zarr and MRC file objects of a tilt
// series. Ids combine run and tilt series id, since several tilt series
// may share a file name.
func TiltSeriesFiles(ds *cdp.Dataset, ts cdp.Record) []croissant.FileObject {
	var (
		zarr, mrc *croissant.FileObject
		prefix    = fmt.Sprintf("%s-%d", ts.Text("run_id"), ts.ID())
	)
	if s := ts.Text("s3_omezarr_dir"); s != "" {
		zarr = &croissant.FileObject{
			ID:             prefix + "-ome-zarr",
			Name:           bucketPath(s),
			Description:    fmt.Sprintf("Tilt series %d in OME-Zarr format", ts.ID()),
			ContentURL:     ts.Text("https_omezarr_dir"),
			ContentSize:    contentSize(ts, "file_size_omezarr"),
			EncodingFormat: []string{FormatOMEZarr},
			ContainedIn:    []croissant.Ref{{ID: TiltSeriesFileSetID(ds.ID, "ome-zarr")}},
		}
	}
	if s := ts.Text("s3_mrc_file"); s != "" {
		mrc = &croissant.FileObject{
			ID:             prefix + "-mrc",
			Name:           bucketPath(s),
			Description:    fmt.Sprintf("Tilt series %d in MRC format", ts.ID()),
			ContentURL:     ts.Text("https_mrc_file"),
			ContentSize:    contentSize(ts, "file_size_mrc"),
			EncodingFormat: []string{FormatMRC},
			ContainedIn:    []croissant.Ref{{ID: TiltSeriesFileSetID(ds.ID, "mrc")}},
		}
	}
	return pair(zarr, mrc)
}

// AlignmentFiles returns the metadata file object of an alignment, if it
// has one.
func AlignmentFiles(ds *cdp.Dataset, alignment cdp.Record) []croissant.FileObject {
	s := alignment.Text("s3_alignment_metadata")
	if s == "" {
		return nil
	}
	return []croissant.FileObject{{
		ID:             bucketPath(s),
		Name:           bucketPath(s),
		Description:    fmt.Sprintf("Tomographic alignment metadata for run %s.", alignment.Text("run_id")),
		ContentURL:     alignment.Text("https_alignment_metadata"),
		EncodingFormat: []string{FormatJSON},
		ContainedIn:    []croissant.Ref{{ID: AlignmentFileSetID(ds.ID)}},
	}}
}

// BinaryResources returns file sets and file objects for the binary data of
// a dataset: tomograms, tilt series and alignment metadata. File objects
// with an id seen before are dropped.
func BinaryResources(ds *cdp.Dataset, tomograms, tiltseries, alignments []cdp.Record) []croissant.Resource {
	var (
		result []croissant.Resource
		seen   = make(map[string]bool)
	)
	addSets := func(sets []croissant.FileSet) {
		for _, fs := range sets {
			result = append(result, fs)
		}
	}
	addObjects := func(objs []croissant.FileObject) {
		for _, fo := range objs {
			if seen[fo.ID] {
				continue
			}
			seen[fo.ID] = true
			result = append(result, fo)
		}
	}
	addSets(TomogramFileSets(ds))
	addSets(TiltSeriesFileSets(ds))
	addSets(AlignmentFileSets(ds))
	for _, t := range tomograms {
		addObjects(TomogramFiles(ds, t))
	}
	for _, t := range tiltseries {
		addObjects(TiltSeriesFiles(ds, t))
	}
	for _, a := range alignments {
		addObjects(AlignmentFiles(ds, a))
	}
	return result
}

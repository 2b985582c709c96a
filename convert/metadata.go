package convert

import (
	"fmt"

	"github.com/miku/cryokit/dateutil"
	"github.com/miku/cryokit/schema/cdp"
	"github.com/miku/cryokit/schema/croissant"
)

const (
	// License of all portal data.
	License = "https://creativecommons.org/public-domain/cc0/"
	// DatasetURLPrefix is the canonical location of a dataset page.
	DatasetURLPrefix = "https://cryoetdataportal.czscience.com/datasets/"
)

// DataCollectionTypes of cryo electron tomography data.
var DataCollectionTypes = []string{
	"Physical data collection",
	"Direct measurement",
	"Experiments",
	"Others",
}

// AuthorsToCreators turns authors into persons, in author list order. Authors
// with an ORCID get a link to their profile.
func AuthorsToCreators(authors []cdp.Author) []croissant.Person {
	var persons []croissant.Person
	for _, a := range authors {
		p := croissant.Person{Name: a.Name}
		if a.ORCID != "" {
			p.URL = "https://orcid.org/" + a.ORCID
		}
		persons = append(persons, p)
	}
	return persons
}

// DatasetMetadata assembles the manifest of a dataset from its descriptive
// metadata, the distribution and the record sets.
func DatasetMetadata(ds *cdp.Dataset, distribution []croissant.Resource, recordSets []croissant.RecordSet) (*croissant.Metadata, error) {
	var (
		dates = make(map[string]string)
		err   error
	)
	for k, v := range map[string]string{
		"deposition_date":    ds.DepositionDate,
		"release_date":       ds.ReleaseDate,
		"last_modified_date": ds.LastModifiedDate,
	} {
		if dates[k], err = dateutil.Day(v); err != nil {
			return nil, fmt.Errorf("dataset %d: %s: %w", ds.ID, k, err)
		}
	}
	return &croissant.Metadata{
		Name:               ds.Title,
		Description:        ds.Description,
		Creators:           AuthorsToCreators(ds.AuthorList()),
		DateCreated:        dates["deposition_date"],
		DateModified:       dates["last_modified_date"],
		DatePublished:      dates["release_date"],
		License:            []string{License},
		URL:                fmt.Sprintf("%s%d", DatasetURLPrefix, ds.ID),
		DataCollectionType: DataCollectionTypes,
		Distribution:       distribution,
		RecordSets:         recordSets,
	}, nil
}

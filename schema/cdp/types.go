// Package cdp contains types returned by the CryoET Data Portal GraphQL API,
// https://graphql.cryoetdataportal.cziscience.com/v1/graphql
package cdp

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/segmentio/encoding/json"
)

// Dataset with the fields needed for dataset level metadata.
type Dataset struct {
	ID               int64  `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	DepositionDate   string `json:"depositionDate"`
	ReleaseDate      string `json:"releaseDate"`
	LastModifiedDate string `json:"lastModifiedDate"`
	S3Prefix         string `json:"s3Prefix"`
	HTTPSPrefix      string `json:"httpsPrefix"`
	Authors          struct {
		Edges []struct {
			Node Author `json:"node"`
		} `json:"edges"`
	} `json:"authors"`
}

// AuthorList returns the authors, in author list order.
func (ds *Dataset) AuthorList() []Author {
	var authors []Author
	for _, e := range ds.Authors.Edges {
		authors = append(authors, e.Node)
	}
	sort.SliceStable(authors, func(i, j int) bool {
		return authors[i].AuthorListOrder < authors[j].AuthorListOrder
	})
	return authors
}

// Author of a dataset.
type Author struct {
	Name            string `json:"name"`
	ORCID           string `json:"orcid"`
	AuthorListOrder int64  `json:"authorListOrder"`
	PrimaryAuthor   bool   `json:"primaryAuthorStatus"`
	Corresponding   bool   `json:"correspondingAuthorStatus"`
}

// Record is a single row of a portal table, keyed by snake case attribute
// name. Numbers are kept as json.Number.
type Record map[string]any

// ID returns the numeric id of the record, or -1 if there is none.
func (r Record) ID() int64 {
	v, ok := r["id"]
	if !ok {
		return -1
	}
	switch t := v.(type) {
	case json.Number:
		i, err := t.Int64()
		if err != nil {
			return -1
		}
		return i
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case string:
		i, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return -1
		}
		return i
	}
	return -1
}

// Text returns the textual representation of a value; null and missing
// values are empty.
func (r Record) Text(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Float returns a numeric value and whether it was present and numeric.
func (r Record) Float(key string) (float64, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, false
	}
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case float64:
		return t, true
	case int64:
		return float64(t), true
	case int:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	}
	return 0, false
}

// SortByID sorts records by numeric id, records without id go last.
func SortByID(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].ID(), records[j].ID()
		switch {
		case a < 0:
			return false
		case b < 0:
			return true
		}
		return a < b
	})
}

// Package portal talks to the CryoET Data Portal GraphQL API.
package portal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/miku/cryokit"
	"github.com/miku/cryokit/registry"
	"github.com/miku/cryokit/schema/cdp"
	"github.com/segmentio/encoding/json"
	"github.com/sethgrid/pester"
	log "github.com/sirupsen/logrus"
)

// DefaultEndpoint of the public portal API.
const DefaultEndpoint = "https://graphql.cryoetdataportal.cziscience.com/v1/graphql"

// ErrNotFound is returned, if a requested dataset does not exist.
var ErrNotFound = errors.New("portal: not found")

// Doer abstracts https://pkg.go.dev/net/http#Client.Do.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client queries the portal. The zero value is not usable, use NewClient or
// set at least Endpoint and Doer.
type Client struct {
	Endpoint  string
	Doer      Doer
	UserAgent string
	// PageSize limits the number of records per request; zero means all
	// records in a single request.
	PageSize int
	// Cache is optional.
	Cache Cache
}

// NewClient returns a client with a retrying HTTP transport.
func NewClient(endpoint string, timeout time.Duration, maxRetries int) *Client {
	hc := pester.New()
	hc.Timeout = timeout
	hc.MaxRetries = maxRetries
	hc.Backoff = pester.ExponentialBackoff
	hc.RetryOnHTTP429 = true
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		Endpoint:  endpoint,
		Doer:      hc,
		UserAgent: fmt.Sprintf("%s/%s", cryokit.AppName, cryokit.Version),
	}
}

// HTTPError is returned for responses with status code 400 or above.
type HTTPError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("portal: HTTP %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// GraphQLError collects the error messages of a GraphQL response.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "portal: graphql: " + strings.Join(e.Messages, "; ")
}

// response is the generic GraphQL response envelope.
type response struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// selection returns the selection set for the scalar attributes of an entity
// type, aliasing API names to snake case, e.g. "run_id: runId".
func selection(et registry.EntityType) string {
	var parts []string
	for _, a := range registry.Scalars(et) {
		gql := a.GQLName()
		if gql == a.Name {
			parts = append(parts, gql)
		} else {
			parts = append(parts, a.Name+": "+gql)
		}
	}
	return strings.Join(parts, " ")
}

// FindQuery returns the query for all records of a type matching filters.
// A positive limit adds pagination arguments, pages are ordered by id.
func FindQuery(et registry.EntityType, filters []Filter, limit, offset int) (string, error) {
	where, err := WhereClause(filters)
	if err != nil {
		return "", err
	}
	var args []string
	if where != "" {
		args = append(args, "where: "+where)
	}
	if limit > 0 {
		args = append(args, "orderBy: {id: asc}")
		args = append(args, fmt.Sprintf("limitOffset: {limit: %d, offset: %d}", limit, offset))
	}
	var sb strings.Builder
	sb.WriteString("query { ")
	sb.WriteString(et.RootField)
	if len(args) > 0 {
		sb.WriteString("(")
		sb.WriteString(strings.Join(args, ", "))
		sb.WriteString(")")
	}
	sb.WriteString(" { ")
	sb.WriteString(selection(et))
	sb.WriteString(" } }")
	return sb.String(), nil
}

// Find returns all records of a type matching the filters, ordered by id.
// Values keep their JSON types, numbers are json.Number.
func (c *Client) Find(ctx context.Context, et registry.EntityType, filters ...Filter) ([]cdp.Record, error) {
	var (
		result = make([]cdp.Record, 0)
		offset int
	)
	for {
		q, err := FindQuery(et, filters, c.PageSize, offset)
		if err != nil {
			return nil, err
		}
		var page []cdp.Record
		if err := c.query(ctx, q, et.RootField, &page); err != nil {
			return nil, fmt.Errorf("find %s: %w", et.Name, err)
		}
		result = append(result, page...)
		if c.PageSize <= 0 || len(page) < c.PageSize {
			break
		}
		offset += len(page)
	}
	log.WithFields(log.Fields{
		"entity":  et.Name,
		"filters": len(filters),
		"count":   len(result),
	}).Debug("portal: find")
	cdp.SortByID(result)
	return result, nil
}

const datasetSelection = `id title description depositionDate releaseDate lastModifiedDate s3Prefix httpsPrefix authors { edges { node { name orcid authorListOrder primaryAuthorStatus correspondingAuthorStatus } } }`

// Dataset fetches dataset level information, including authors.
func (c *Client) Dataset(ctx context.Context, id int64) (*cdp.Dataset, error) {
	where, err := WhereClause([]Filter{Eq("id", id)})
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf("query { datasets(where: %s) { %s } }", where, datasetSelection)
	var datasets []cdp.Dataset
	if err := c.query(ctx, q, "datasets", &datasets); err != nil {
		return nil, fmt.Errorf("dataset %d: %w", id, err)
	}
	if len(datasets) == 0 {
		return nil, fmt.Errorf("dataset %d: %w", id, ErrNotFound)
	}
	return &datasets[0], nil
}

// DatasetIDs returns the ids of all public datasets, in ascending order.
func (c *Client) DatasetIDs(ctx context.Context) ([]int64, error) {
	records, err := c.Find(ctx, registry.EntityType{
		Name:       "dataset",
		RootField:  "datasets",
		Attributes: []registry.Attribute{{Name: "id", Kind: registry.Integer}},
	})
	if err != nil {
		return nil, err
	}
	var ids []int64
	for _, r := range records {
		if id := r.ID(); id >= 0 {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// query runs a GraphQL query and decodes the value of the root field into
// v. Successful responses are cached, if a cache is configured.
func (c *Client) query(ctx context.Context, q, root string, v any) error {
	key := c.Endpoint + "\n" + q
	var (
		body []byte
		err  error
		hit  bool
	)
	if c.Cache != nil {
		if body, err = c.Cache.Get(key); err == nil {
			hit = true
		} else if !errors.Is(err, ErrCacheMiss) {
			log.Warnf("portal: cache: %v", err)
		}
	}
	if !hit {
		if body, err = c.post(ctx, q); err != nil {
			return err
		}
	}
	var resp response
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&resp); err != nil {
		return fmt.Errorf("portal: decode response: %w", err)
	}
	if len(resp.Errors) > 0 {
		var msgs []string
		for _, e := range resp.Errors {
			msgs = append(msgs, e.Message)
		}
		return &GraphQLError{Messages: msgs}
	}
	raw, ok := resp.Data[root]
	if !ok {
		return fmt.Errorf("portal: response misses field %q", root)
	}
	dec = json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("portal: decode %s: %w", root, err)
	}
	if c.Cache != nil && !hit {
		if err := c.Cache.Set(key, body); err != nil {
			log.Warnf("portal: cache: %v", err)
		}
	}
	return nil
}

// post sends a query and returns the raw response body.
func (c *Client) post(ctx context.Context, q string) ([]byte, error) {
	payload, err := json.Marshal(map[string]string{"query": q})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	started := time.Now()
	resp, err := c.Doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("portal: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("portal: read body: %w", err)
	}
	log.WithFields(log.Fields{
		"status":  resp.StatusCode,
		"bytes":   len(body),
		"elapsed": time.Since(started).Round(time.Millisecond),
	}).Debug("portal: post")
	if resp.StatusCode >= 400 {
		snippet := string(body)
		if len(snippet) > 256 {
			snippet = snippet[:256]
		}
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: c.Endpoint, Body: snippet}
	}
	return body, nil
}

package portal

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/miku/cryokit/registry"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/require"
)

// graphqlServer answers every request with body and records the last query.
func graphqlServer(t *testing.T, status int, body string, lastQuery *string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Query string `json:"query"`
		}
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(b, &payload))
		if lastQuery != nil {
			*lastQuery = payload.Query
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func testClient(url string) *Client {
	return &Client{Endpoint: url, Doer: http.DefaultClient, UserAgent: "test"}
}

func TestFindQuery(t *testing.T) {
	et := registry.EntityType{
		Name:      "tomogram",
		RootField: "tomograms",
		Attributes: []registry.Attribute{
			{Name: "id", Kind: registry.Integer},
			{Name: "run_id", Kind: registry.Integer},
			{Name: "neuroglancer_config", Kind: registry.Text},
			{Name: "run", Kind: registry.Relationship},
		},
	}
	q, err := FindQuery(et, []Filter{Eq("run.dataset_id", 10440)}, 0, 0)
	require.NoError(t, err)
	require.Equal(t, `query { tomograms(where: {run: {datasetId: {_eq: 10440}}}) { id run_id: runId } }`, q)

	q, err = FindQuery(et, nil, 50, 100)
	require.NoError(t, err)
	require.Equal(t, `query { tomograms(orderBy: {id: asc}, limitOffset: {limit: 50, offset: 100}) { id run_id: runId } }`, q)
}

func TestFind(t *testing.T) {
	var query string
	body := `{"data": {"tomograms": [
		{"id": 3, "voxel_spacing": 10.0, "processing": null},
		{"id": 1, "voxel_spacing": 13.48, "processing": "raw"}
	]}}`
	ts := graphqlServer(t, 200, body, &query)
	records, err := testClient(ts.URL).Find(context.Background(), registry.Tomogram, DatasetFilters(10440)["tomogram"]...)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, int64(1), records[0].ID())
	require.Equal(t, json.Number("10.0"), records[1]["voxel_spacing"])
	require.Nil(t, records[1]["processing"])
	require.Contains(t, query, "tomograms(where: {run: {datasetId: {_eq: 10440}}})")
	require.NotContains(t, query, "neuroglancer")
}

func TestFindEmpty(t *testing.T) {
	ts := graphqlServer(t, 200, `{"data": {"annotations": []}}`, nil)
	records, err := testClient(ts.URL).Find(context.Background(), registry.Annotation)
	require.NoError(t, err)
	require.NotNil(t, records)
	require.Len(t, records, 0)
}

func TestFindPaged(t *testing.T) {
	var (
		calls   int32
		mu      sync.Mutex
		queries []string
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		var body struct {
			Query string `json:"query"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		mu.Lock()
		queries = append(queries, body.Query)
		mu.Unlock()
		switch n {
		case 1:
			io.WriteString(w, `{"data": {"runs": [{"id": 2}, {"id": 1}]}}`)
		default:
			io.WriteString(w, `{"data": {"runs": [{"id": 5}]}}`)
		}
	}))
	defer ts.Close()
	c := testClient(ts.URL)
	c.PageSize = 2
	records, err := c.Find(context.Background(), registry.Run)
	require.NoError(t, err)
	require.Equal(t, int32(2), atomic.LoadInt32(&calls))
	var ids []int64
	for _, r := range records {
		ids = append(ids, r.ID())
	}
	require.Equal(t, []int64{1, 2, 5}, ids)
	require.Len(t, queries, 2)
	require.Contains(t, queries[0], "orderBy: {id: asc}, limitOffset: {limit: 2, offset: 0}")
	require.Contains(t, queries[1], "orderBy: {id: asc}, limitOffset: {limit: 2, offset: 2}")
}

func TestFindErrors(t *testing.T) {
	t.Run("graphql", func(t *testing.T) {
		ts := graphqlServer(t, 200, `{"errors": [{"message": "field 'x' not found"}]}`, nil)
		_, err := testClient(ts.URL).Find(context.Background(), registry.Run)
		var gerr *GraphQLError
		require.True(t, errors.As(err, &gerr))
		require.Equal(t, []string{"field 'x' not found"}, gerr.Messages)
	})
	t.Run("http", func(t *testing.T) {
		ts := graphqlServer(t, 503, `unavailable`, nil)
		_, err := testClient(ts.URL).Find(context.Background(), registry.Run)
		var herr *HTTPError
		require.True(t, errors.As(err, &herr))
		require.Equal(t, 503, herr.StatusCode)
	})
	t.Run("transport", func(t *testing.T) {
		ts := graphqlServer(t, 200, `{}`, nil)
		ts.Close()
		_, err := testClient(ts.URL).Find(context.Background(), registry.Run)
		require.Error(t, err)
	})
	t.Run("garbage", func(t *testing.T) {
		ts := graphqlServer(t, 200, `<html>`, nil)
		_, err := testClient(ts.URL).Find(context.Background(), registry.Run)
		require.Error(t, err)
	})
}

func TestDataset(t *testing.T) {
	body := `{"data": {"datasets": [{"id": 10440, "title": "T", "releaseDate": "2024-01-02",
		"authors": {"edges": [{"node": {"name": "A", "orcid": "0000-0001", "authorListOrder": 1}}]}}]}}`
	var query string
	ts := graphqlServer(t, 200, body, &query)
	ds, err := testClient(ts.URL).Dataset(context.Background(), 10440)
	require.NoError(t, err)
	require.Equal(t, int64(10440), ds.ID)
	require.Equal(t, "T", ds.Title)
	require.Len(t, ds.AuthorList(), 1)
	require.Contains(t, query, "datasets(where: {id: {_eq: 10440}})")

	ts = graphqlServer(t, 200, `{"data": {"datasets": []}}`, nil)
	_, err = testClient(ts.URL).Dataset(context.Background(), 1)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestDatasetIDs(t *testing.T) {
	var query string
	ts := graphqlServer(t, 200, `{"data": {"datasets": [{"id": 10441}, {"id": 10000}]}}`, &query)
	ids, err := testClient(ts.URL).DatasetIDs(context.Background())
	require.NoError(t, err)
	require.Equal(t, []int64{10000, 10441}, ids)
	require.Equal(t, "query { datasets { id } }", query)
}

func TestClientCache(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		io.WriteString(w, `{"data": {"runs": [{"id": 1, "name": "TS_01"}]}}`)
	}))
	defer ts.Close()
	c := testClient(ts.URL)
	c.Cache = &FileCache{Dir: t.TempDir(), TTL: time.Hour}
	for i := 0; i < 3; i++ {
		records, err := c.Find(context.Background(), registry.Run)
		require.NoError(t, err)
		require.Equal(t, "TS_01", records[0].Text("name"))
	}
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFileCacheExpiry(t *testing.T) {
	c := &FileCache{Dir: t.TempDir(), TTL: time.Nanosecond}
	require.NoError(t, c.Set("k", []byte("v")))
	time.Sleep(time.Millisecond)
	_, err := c.Get("k")
	require.ErrorIs(t, err, ErrCacheMiss)

	c.TTL = 0
	v, err := c.Get("k")
	require.NoError(t, err)
	require.Equal(t, "v", string(v))

	_, err = c.Get("missing")
	require.ErrorIs(t, err, ErrCacheMiss)
	require.False(t, strings.Contains(c.path("k"), "k.json"))
}

package search

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"eventmatch/internal/config"
	"eventmatch/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serverRequester sends the client's requests through the test server's TLS client.
type serverRequester struct {
	client *http.Client
}

func (s serverRequester) Request(req *http.Request) (*http.Response, error) {
	return s.client.Do(req)
}

func newTestIndex(server *httptest.Server, adminKey string) *HostedIndex {
	return newHostedIndex(config.SearchConfig{
		AppID:     "APP",
		SearchKey: "search-key",
		AdminKey:  adminKey,
		Index:     "events",
		Host:      server.URL,
		Timeout:   2 * time.Second,
	}, serverRequester{client: server.Client()})
}

func decodeBody(t *testing.T, r *http.Request, v any) {
	t.Helper()
	var body io.Reader = r.Body
	if r.Header.Get("Content-Encoding") == "gzip" {
		zr, err := gzip.NewReader(r.Body)
		require.NoError(t, err)
		defer zr.Close()
		body = zr
	}
	require.NoError(t, json.NewDecoder(body).Decode(v))
}

func TestHostedSearchSendsQueryAndDecodesHits(t *testing.T) {
	seed := events.SampleEvents()
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/1/indexes/events/query", r.URL.Path)
		assert.Equal(t, "APP", r.Header.Get("X-Algolia-Application-Id"))
		assert.Equal(t, "search-key", r.Header.Get("X-Algolia-API-Key"))

		var body struct {
			Params string `json:"params"`
		}
		decodeBody(t, r, &body)
		params, err := url.ParseQuery(body.Params)
		require.NoError(t, err)
		assert.Equal(t, "jazz", params.Get("query"))
		assert.Equal(t, `category:music AND city:"Mumbai"`, params.Get("filters"))
		assert.Equal(t, "20", params.Get("hitsPerPage"))

		json.NewEncoder(w).Encode(map[string]any{
			"hits":   []Record{FromEvent(seed[0])},
			"nbHits": 1,
		})
	}))
	defer server.Close()

	hits, err := newTestIndex(server, "").Search(context.Background(), Query{
		Text:    "jazz",
		Filters: Filters{Category: "music", City: "Mumbai"},
	})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, seed[0].ID, hits[0].ID)
	assert.Equal(t, seed[0].Price, hits[0].Price)
	assert.True(t, seed[0].Date.Equal(hits[0].Date))
	require.NotNil(t, hits[0].Location.Lat)
	assert.Equal(t, *seed[0].Location.Lat, *hits[0].Location.Lat)
}

func TestHostedSearchReportsHTTPErrors(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"Invalid API key","status":403}`))
	}))
	defer server.Close()

	_, err := newTestIndex(server, "").Search(context.Background(), Query{Text: "x"})
	require.Error(t, err)
}

func TestHostedAdminCalls(t *testing.T) {
	var gotSettings map[string]any
	var gotBatch struct {
		Requests []struct {
			Action string `json:"action"`
			Body   Record `json:"body"`
		} `json:"requests"`
	}
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "admin-key", r.Header.Get("X-Algolia-API-Key"))
		switch r.URL.Path {
		case "/1/indexes/events/settings":
			assert.Equal(t, http.MethodPut, r.Method)
			decodeBody(t, r, &gotSettings)
			w.Write([]byte(`{"taskID":1,"updatedAt":"2026-01-01T00:00:00Z"}`))
		case "/1/indexes/events/batch":
			assert.Equal(t, http.MethodPost, r.Method)
			decodeBody(t, r, &gotBatch)
			ids := make([]string, 0, len(gotBatch.Requests))
			for _, op := range gotBatch.Requests {
				ids = append(ids, op.Body.ObjectID)
			}
			json.NewEncoder(w).Encode(map[string]any{"taskID": 2, "objectIDs": ids})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	idx := newTestIndex(server, "admin-key")
	ctx := context.Background()

	require.NoError(t, idx.SetSettings(ctx, DefaultSettings))
	assert.Equal(t, []any{"desc(featured)", "desc(rating)", "asc(date)"}, gotSettings["customRanking"])
	assert.Contains(t, gotSettings["attributesForFaceting"], "filterOnly(city)")
	assert.Contains(t, gotSettings["searchableAttributes"], "title")

	seed := events.SampleEvents()
	objectIDs, err := idx.SaveObjects(ctx, seed)
	require.NoError(t, err)
	assert.Len(t, objectIDs, len(seed))
	require.Len(t, gotBatch.Requests, len(seed))
	assert.Equal(t, seed[0].ID, gotBatch.Requests[0].Body.ObjectID)
	assert.Equal(t, "Mumbai", gotBatch.Requests[0].Body.City)
}

func TestHostedAdminRequiresKey(t *testing.T) {
	idx := NewHostedIndex(config.SearchConfig{AppID: "APP", SearchKey: "k", Index: "events"})
	assert.Nil(t, idx.Admin)
	assert.ErrorIs(t, idx.SetSettings(context.Background(), DefaultSettings), ErrNoAdminKey)
	_, err := idx.SaveObjects(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoAdminKey)
}

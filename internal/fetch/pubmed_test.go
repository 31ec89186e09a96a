// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/get-papers-list/pkg/types"
)

const sampleSearchJSON = `{
  "header": {"type": "esearch", "version": "0.3"},
  "esearchresult": {
    "count": "1532",
    "retmax": "3",
    "retstart": "0",
    "idlist": ["39000003", "39000001", "39000002"]
  }
}`

const sampleSummaryJSON = `{
  "header": {"type": "esummary", "version": "0.3"},
  "result": {
    "uids": ["39000001", "39000002", "39000003"],
    "39000001": {
      "uid": "39000001",
      "title": "Kinase inhibitors in oncology",
      "sortpubdate": "2024/05/01 00:00",
      "elocationid": "doi: 10.1000/abc.1",
      "authors": [
        {"name": "Doe J", "affiliation": "Acme Pharma Inc", "email": "jane@acme.com"},
        {"name": "Smith J", "affiliation": "Department of Biology, State University", "email": "john@state.edu"}
      ]
    },
    "39000002": {
      "uid": "39000002",
      "title": "A paper with sparse metadata",
      "authors": []
    },
    "39000003": {
      "uid": "39000003",
      "title": "Contract research outcomes",
      "sortpubdate": "2023/01/15 00:00",
      "elocationid": "",
      "authors": [
        {"name": "Roe R", "authtype": "Author", "clusterid": ""},
        {"affiliation": "Freelance", "email": "anon@example.com"},
        {"name": "Muster M", "affiliation": "Bayer GmbH"}
      ]
    }
  }
}`

// eutilsServer serves esearch and esummary from canned bodies and records
// the query string of each request.
type eutilsServer struct {
	*httptest.Server

	mu        sync.Mutex
	requests  map[string][]url.Values
	searchSC  int
	summarySC int
}

func newEutilsServer(t *testing.T, searchBody, summaryBody string) *eutilsServer {
	t.Helper()
	s := &eutilsServer{
		requests:  map[string][]url.Values{},
		searchSC:  http.StatusOK,
		summarySC: http.StatusOK,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/esearch.fcgi", func(w http.ResponseWriter, r *http.Request) {
		s.record(searchPath, r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(s.searchSC)
		fmt.Fprint(w, searchBody)
	})
	mux.HandleFunc("/esummary.fcgi", func(w http.ResponseWriter, r *http.Request) {
		s.record(summaryPath, r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(s.summarySC)
		fmt.Fprint(w, summaryBody)
	})
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func (s *eutilsServer) record(path string, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[path] = append(s.requests[path], r.URL.Query())
}

func (s *eutilsServer) calls(path string) []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[path]
}

func testClient(s *eutilsServer, logger *zap.Logger) *Client {
	cfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "test/0.1"},
		BaseURL:    s.URL,
	}
	return NewClient(s.Client(), cfg, logger)
}

func TestFetchPapers(t *testing.T) {
	srv := newEutilsServer(t, sampleSearchJSON, sampleSummaryJSON)
	c := testClient(srv, nil)

	papers, err := c.FetchPapers(context.Background(), "kinase inhibitor")
	require.NoError(t, err)
	require.Len(t, papers, 3)

	// Search order, not summary order.
	assert.Equal(t, "39000003", papers[0].PubmedID)
	assert.Equal(t, "39000001", papers[1].PubmedID)
	assert.Equal(t, "39000002", papers[2].PubmedID)

	p := papers[1]
	assert.Equal(t, "Kinase inhibitors in oncology", p.Title)
	assert.Equal(t, "2024/05/01 00:00", p.PublicationDate)
	assert.Equal(t, "Doe J", p.NonAcademicAuthors)
	assert.Equal(t, "acme pharma inc", p.CompanyAffiliations)
	assert.Equal(t, "doi: 10.1000/abc.1", p.CorrespondingAuthorEmail)

	sparse := papers[2]
	assert.Equal(t, types.UnknownValue, sparse.PublicationDate)
	assert.Equal(t, types.UnknownValue, sparse.CorrespondingAuthorEmail)
	assert.Empty(t, sparse.NonAcademicAuthors)
	assert.Empty(t, sparse.CompanyAffiliations)

	mixed := papers[0]
	assert.Equal(t, "Unknown; Muster M", mixed.NonAcademicAuthors)
	assert.Equal(t, "freelance; bayer gmbh", mixed.CompanyAffiliations)
	// Present but empty stays empty.
	assert.Equal(t, "", mixed.CorrespondingAuthorEmail)
}

func TestFetchPapersRequestParameters(t *testing.T) {
	srv := newEutilsServer(t, sampleSearchJSON, sampleSummaryJSON)
	c := NewClient(srv.Client(), types.FetchConfig{
		BaseURL: srv.URL + "/",
		Tool:    "get-papers-list",
		Email:   "dev@example.com",
	}, nil)

	_, err := c.FetchPapers(context.Background(), "crispr AND cas9")
	require.NoError(t, err)

	searches := srv.calls(searchPath)
	require.Len(t, searches, 1)
	q := searches[0]
	assert.Equal(t, "pubmed", q.Get("db"))
	assert.Equal(t, "crispr AND cas9", q.Get("term"))
	assert.Equal(t, "json", q.Get("retmode"))
	assert.Equal(t, "10", q.Get("retmax"))
	assert.Equal(t, "get-papers-list", q.Get("tool"))
	assert.Equal(t, "dev@example.com", q.Get("email"))

	summaries := srv.calls(summaryPath)
	require.Len(t, summaries, 1)
	q = summaries[0]
	assert.Equal(t, "pubmed", q.Get("db"))
	assert.Equal(t, "39000003,39000001,39000002", q.Get("id"))
	assert.Equal(t, "json", q.Get("retmode"))
	assert.Empty(t, q.Get("retmax"))
}

func TestFetchPapersNoHits(t *testing.T) {
	srv := newEutilsServer(t, `{"esearchresult": {"count": "0", "idlist": []}}`, sampleSummaryJSON)
	c := testClient(srv, nil)

	papers, err := c.FetchPapers(context.Background(), "zzzz")
	require.NoError(t, err)
	assert.NotNil(t, papers)
	assert.Empty(t, papers)
	assert.Empty(t, srv.calls(summaryPath), "summary endpoint must not be called without ids")
}

func TestFetchPapersErrors(t *testing.T) {
	tests := []struct {
		name        string
		searchBody  string
		summaryBody string
		searchSC    int
		summarySC   int
		wantOp      string
		wantMsg     string
	}{
		{
			name:       "search HTTP error",
			searchBody: `{"error": "bad"}`,
			searchSC:   http.StatusInternalServerError,
			wantOp:     OpSearch,
			wantMsg:    "HTTP 500",
		},
		{
			name:       "search malformed JSON",
			searchBody: `<html>`,
			wantOp:     OpSearch,
			wantMsg:    "decoding JSON",
		},
		{
			name:       "search missing esearchresult",
			searchBody: `{"header": {}}`,
			wantOp:     OpSearch,
			wantMsg:    "no esearchresult",
		},
		{
			name:       "search error field",
			searchBody: `{"error": "API rate limit exceeded"}`,
			wantOp:     OpSearch,
			wantMsg:    "API rate limit exceeded",
		},
		{
			name:       "search missing idlist",
			searchBody: `{"esearchresult": {"ERROR": "Invalid query"}}`,
			wantOp:     OpSearch,
			wantMsg:    "no idlist",
		},
		{
			name:        "summary HTTP error",
			searchBody:  sampleSearchJSON,
			summaryBody: `{}`,
			summarySC:   http.StatusBadGateway,
			wantOp:      OpSummary,
			wantMsg:     "HTTP 502",
		},
		{
			name:        "summary missing result",
			searchBody:  sampleSearchJSON,
			summaryBody: `{"header": {}}`,
			wantOp:      OpSummary,
			wantMsg:     "no result",
		},
		{
			name:        "summary missing an id",
			searchBody:  sampleSearchJSON,
			summaryBody: `{"result": {"uids": ["39000001"], "39000001": {"title": "only one"}}}`,
			wantOp:      OpSummary,
			wantMsg:     "no summary returned for id 39000003",
		},
		{
			name:        "summary without title",
			searchBody:  `{"esearchresult": {"idlist": ["1"]}}`,
			summaryBody: `{"result": {"uids": ["1"], "1": {"uid": "1", "authors": []}}}`,
			wantOp:      OpSummary,
			wantMsg:     "has no title",
		},
		{
			name:        "summary block of wrong shape",
			searchBody:  `{"esearchresult": {"idlist": ["1"]}}`,
			summaryBody: `{"result": {"uids": ["1"], "1": "not an object"}}`,
			wantOp:      OpSummary,
			wantMsg:     "parsing summary for id 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newEutilsServer(t, tt.searchBody, tt.summaryBody)
			if tt.searchSC != 0 {
				srv.searchSC = tt.searchSC
			}
			if tt.summarySC != 0 {
				srv.summarySC = tt.summarySC
			}
			c := testClient(srv, nil)

			papers, err := c.FetchPapers(context.Background(), "q")
			require.Error(t, err)
			assert.Nil(t, papers, "no partial results on failure")

			var fe *FetchError
			require.True(t, errors.As(err, &fe), "error should be a *FetchError, got %T", err)
			assert.Equal(t, tt.wantOp, fe.Op)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestFetchPapersNetworkFailure(t *testing.T) {
	srv := newEutilsServer(t, sampleSearchJSON, sampleSummaryJSON)
	c := testClient(srv, nil)
	srv.Close()

	_, err := c.FetchPapers(context.Background(), "q")
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, OpSearch, fe.Op)
}

func TestFetchPapersDebugLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	srv := newEutilsServer(t, sampleSearchJSON, sampleSummaryJSON)
	c := testClient(srv, zap.New(core))

	_, err := c.FetchPapers(context.Background(), "kinase")
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("fetching papers").Len())
	found := logs.FilterMessage("found paper IDs").All()
	require.Len(t, found, 1)
	assert.Equal(t, []interface{}{"39000003", "39000001", "39000002"}, found[0].ContextMap()["ids"])
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(nil, types.FetchConfig{}, nil)
	assert.Equal(t, DefaultBaseURL, c.cfg.BaseURL)
	assert.Equal(t, DefaultDatabase, c.cfg.Database)
	assert.Equal(t, defaultTimeout, c.http.Timeout)
	assert.NotNil(t, c.logger)
}

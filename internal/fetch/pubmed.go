// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves PubMed records in two steps: an esearch call that
// returns up to MaxResults identifiers, then a single batched esummary call
// for their metadata. Each summary's author list is run through the
// affiliation classifier to build a types.PaperRecord.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/get-papers-list/internal/classify"
	"github.com/pdiddy/get-papers-list/internal/httputil"
	"github.com/pdiddy/get-papers-list/pkg/types"
)

// DefaultBaseURL is the NCBI E-utilities root. Tests point the client at an
// httptest server through FetchConfig.BaseURL.
const DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

const (
	// MaxResults caps the search step. There is no pagination beyond it.
	MaxResults = 10

	// DefaultDatabase is the Entrez database queried when none is configured.
	DefaultDatabase = "pubmed"

	defaultTimeout = 30 * time.Second

	searchPath  = "esearch.fcgi"
	summaryPath = "esummary.fcgi"
)

// Client talks to the E-utilities search and summary endpoints.
type Client struct {
	http   *http.Client
	cfg    types.FetchConfig
	logger *zap.Logger
}

// NewClient returns a Client for cfg. A nil httpClient gets one with
// cfg.Timeout; a nil logger is replaced with a no-op logger.
func NewClient(httpClient *http.Client, cfg types.FetchConfig, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{http: httpClient, cfg: cfg, logger: logger}
}

// FetchPapers runs the search and summary steps for query and returns one
// record per identifier, in search order. Any failure aborts the whole fetch
// with a *FetchError and no records. A search with no hits returns an empty
// slice without calling the summary endpoint.
func (c *Client) FetchPapers(ctx context.Context, query string) ([]types.PaperRecord, error) {
	c.logger.Debug("fetching papers", zap.String("query", query))

	ids, err := c.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("found paper IDs", zap.Strings("ids", ids))

	if len(ids) == 0 {
		return []types.PaperRecord{}, nil
	}

	summaries, err := c.Summaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	papers := make([]types.PaperRecord, 0, len(ids))
	for _, id := range ids {
		s, ok := summaries[id]
		if !ok {
			return nil, summaryErr(fmt.Errorf("no summary returned for id %s", id))
		}
		if s.Title == nil {
			return nil, summaryErr(fmt.Errorf("summary for id %s has no title", id))
		}
		papers = append(papers, buildRecord(id, s))
	}

	c.logger.Debug("assembled records", zap.Int("count", len(papers)))
	return papers, nil
}

// Search submits query to esearch with retmax fixed at MaxResults and
// returns the identifier list in the order the API ranked it.
func (c *Client) Search(ctx context.Context, query string) ([]string, error) {
	params := c.baseParams()
	params.Set("term", query)
	params.Set("retmax", strconv.Itoa(MaxResults))

	var resp esearchResponse
	if err := httputil.GetJSON(ctx, c.http, c.endpoint(searchPath, params), c.cfg.UserAgent, &resp); err != nil {
		return nil, searchErr(err)
	}
	if resp.ESearchResult == nil {
		if resp.Error != "" {
			return nil, searchErr(fmt.Errorf("esearch error: %s", resp.Error))
		}
		return nil, searchErr(errors.New("response has no esearchresult"))
	}
	if resp.ESearchResult.IDList == nil {
		return nil, searchErr(errors.New("response has no idlist"))
	}
	return resp.ESearchResult.IDList, nil
}

// Summaries fetches the summary blocks for ids in one request and returns
// them keyed by identifier.
func (c *Client) Summaries(ctx context.Context, ids []string) (map[string]Summary, error) {
	params := c.baseParams()
	params.Set("id", strings.Join(ids, ","))

	var resp esummaryResponse
	if err := httputil.GetJSON(ctx, c.http, c.endpoint(summaryPath, params), c.cfg.UserAgent, &resp); err != nil {
		return nil, summaryErr(err)
	}
	if resp.Result == nil {
		if resp.Error != "" {
			return nil, summaryErr(fmt.Errorf("esummary error: %s", resp.Error))
		}
		return nil, summaryErr(errors.New("response has no result"))
	}

	out := make(map[string]Summary, len(ids))
	for key, raw := range resp.Result {
		// "uids" lists the keys; every other entry is a summary block.
		if key == "uids" {
			continue
		}
		var s Summary
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, summaryErr(fmt.Errorf("parsing summary for id %s: %w", key, err))
		}
		out[key] = s
	}
	return out, nil
}

func (c *Client) baseParams() url.Values {
	params := url.Values{
		"db":      {c.cfg.Database},
		"retmode": {"json"},
	}
	if c.cfg.Tool != "" {
		params.Set("tool", c.cfg.Tool)
	}
	if c.cfg.Email != "" {
		params.Set("email", c.cfg.Email)
	}
	return params
}

func (c *Client) endpoint(path string, params url.Values) string {
	return c.cfg.BaseURL + "/" + path + "?" + params.Encode()
}

// buildRecord assembles a PaperRecord from a summary block. The
// CorrespondingAuthorEmail column takes the elocationid value.
func buildRecord(id string, s Summary) types.PaperRecord {
	names, affiliations := classify.NonAcademic(s.Authors)
	return types.PaperRecord{
		PubmedID:                 id,
		Title:                    *s.Title,
		PublicationDate:          valueOrUnknown(s.SortPubDate),
		NonAcademicAuthors:       strings.Join(names, types.ListSeparator),
		CompanyAffiliations:      strings.Join(affiliations, types.ListSeparator),
		CorrespondingAuthorEmail: valueOrUnknown(s.ELocationID),
	}
}

func valueOrUnknown(s *string) string {
	if s == nil {
		return types.UnknownValue
	}
	return *s
}

// Summary is the subset of an esummary document this tool reads. Pointer
// fields distinguish an absent key from an empty value.
type Summary struct {
	UID         string         `json:"uid"`
	Title       *string        `json:"title"`
	SortPubDate *string        `json:"sortpubdate"`
	ELocationID *string        `json:"elocationid"`
	Authors     []types.Author `json:"authors"`
}

// E-utilities JSON structures.
type esearchResponse struct {
	ESearchResult *esearchResult `json:"esearchresult"`
	Error         string         `json:"error"`
}

type esearchResult struct {
	Count  string   `json:"count"`
	RetMax string   `json:"retmax"`
	IDList []string `json:"idlist"`
}

type esummaryResponse struct {
	Result map[string]json.RawMessage `json:"result"`
	Error  string                     `json:"error"`
}

package openalex

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/trangdata/askalex/core"
)

const (
	defaultBaseURL = "https://api.openalex.org"

	// maxPerPage is the largest page the works API serves.
	maxPerPage     = 100
	defaultPerPage = 100
)

// Client queries the OpenAlex scholarly-works API.
type Client struct {
	baseURL string
	mailto  string
	client  *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithMailto sets the contact address sent with each request, which puts
// the client in OpenAlex's polite pool.
func WithMailto(addr string) Option {
	return func(c *Client) {
		c.mailto = addr
	}
}

// WithHTTPClient overrides the default HTTP client, e.g. to change the
// timeout or route through a proxy.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// NewClient creates an OpenAlex client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  slog.Default().With("component", "openalex"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// work mirrors the fields of an OpenAlex works record that we consume.
// Abstracts arrive in inverted-index form, not as plain text.
type work struct {
	ID                    string           `json:"id"`
	Title                 string           `json:"title"`
	DOI                   string           `json:"doi"`
	AbstractInvertedIndex map[string][]int `json:"abstract_inverted_index"`
}

type worksResponse struct {
	Results []work `json:"results"`
}

// FindDocuments searches work abstracts for the given "+"-joined keywords
// and returns up to perPage candidate documents. When a query matches
// nothing, the last keyword term is dropped and the search retried, until
// either results are found or no terms remain. An exhausted query is a
// no-results outcome, not an error: the returned collection is nil.
//
// Transport and HTTP failures propagate; there is no retry beyond the
// keyword relaxation loop.
func (c *Client) FindDocuments(ctx context.Context, keywords string, perPage int) (core.Collection, error) {
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	terms := strings.TrimSpace(keywords)
	for terms != "" {
		docs, err := c.search(ctx, terms, perPage)
		if err != nil {
			return nil, err
		}
		if len(docs) > 0 {
			return docs, nil
		}

		i := strings.LastIndex(terms, "+")
		if i < 0 {
			break
		}
		c.logger.Debug("no results, relaxing query", "keywords", terms)
		terms = terms[:i]
	}

	c.logger.Info("no matching documents", "keywords", keywords)
	return nil, nil
}

func (c *Client) search(ctx context.Context, terms string, perPage int) (core.Collection, error) {
	q := url.Values{}
	q.Set("filter", "abstract.search:"+terms)
	q.Set("per-page", strconv.Itoa(perPage))
	if c.mailto != "" {
		q.Set("mailto", c.mailto)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/works?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openalex http %d", resp.StatusCode)
	}

	var response worksResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, err
	}

	var docs core.Collection
	for _, w := range response.Results {
		abstract := DecodeInvertedAbstract(w.AbstractInvertedIndex)
		if w.Title == "" || abstract == "" {
			continue
		}
		u := w.DOI
		if u == "" {
			u = w.ID
		}
		docs = docs.AddUnique(core.NewDocument(w.Title, ShortenAbstract(abstract), u))
	}

	c.logger.Debug("works search", "keywords", terms, "results", len(docs))
	return docs, nil
}

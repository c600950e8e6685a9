// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataon queries the DataON research-dataset catalog.
package dataon

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/kisti-mcp/internal/httputil"
	"github.com/pdiddy/kisti-mcp/internal/provider"
	"github.com/pdiddy/kisti-mcp/internal/secrets"
	"github.com/pdiddy/kisti-mcp/pkg/types"
)

// Credentials are the two DataON keys. Search uses ResearchKey and the detail
// lookup uses MetadataKey; the provider is disabled unless both are set.
type Credentials struct {
	ResearchKey string `env:"DataON_ResearchData_API_KEY"`
	MetadataKey string `env:"DataON_ResearchDataMetadata_API_KEY"`
}

const (
	datasetPath     = "/rest/api/search/dataset/"
	defaultPageSize = 10
)

// Query is a dataset search.
type Query struct {
	Text       string
	From       int
	MaxResults int

	// SortField and SortDirection are sent only when set.
	SortField     string
	SortDirection string
}

// ResultSet is a parsed dataset search.
type ResultSet struct {
	Total   int
	Records []Dataset
}

// API is the client contract the service depends on.
type API interface {
	provider.Authenticator
	Search(ctx context.Context, q Query) (*ResultSet, error)
	Details(ctx context.Context, svcID string) (*Dataset, error)
}

// Client talks to the DataON REST API. Keys travel as a query parameter.
type Client struct {
	BaseURL     string
	HTTP        types.HTTPConfig
	Credentials Credentials
}

// NewClient returns a client for baseURL. An empty baseURL selects production.
func NewClient(baseURL string, httpCfg types.HTTPConfig, creds Credentials) *Client {
	if baseURL == "" {
		baseURL = types.DefaultDataONBaseURL
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: httpCfg, Credentials: creds}
}

// GetToken verifies credentials. DataON has no token exchange.
func (c *Client) GetToken(context.Context) error { return c.Ready() }

// Ready fails with ServiceUnavailable unless both keys are set.
func (c *Client) Ready() error {
	if missing := secrets.Missing(c.Credentials); len(missing) > 0 {
		return provider.Unavailable(provider.DataON, missing...)
	}
	return nil
}

// Search lists datasets matching q.
func (c *Client) Search(ctx context.Context, q Query) (*ResultSet, error) {
	if err := c.GetToken(ctx); err != nil {
		return nil, err
	}

	params := url.Values{
		"key":   {c.Credentials.ResearchKey},
		"query": {q.Text},
		"from":  {strconv.Itoa(max(q.From, 0))},
		"size":  {strconv.Itoa(provider.PageSize(q.MaxResults, defaultPageSize))},
	}
	if q.SortField != "" {
		params.Set("sortCon", q.SortField)
	}
	if q.SortDirection != "" {
		params.Set("sortArr", q.SortDirection)
	}

	body, err := c.get(ctx, c.BaseURL+datasetPath, params)
	if err != nil {
		return nil, err
	}
	return parseSearch(body)
}

// Details fetches the metadata record for svcID.
func (c *Client) Details(ctx context.Context, svcID string) (*Dataset, error) {
	if err := c.GetToken(ctx); err != nil {
		return nil, err
	}
	target := c.BaseURL + datasetPath + url.PathEscape(svcID)
	body, err := c.get(ctx, target, url.Values{"key": {c.Credentials.MetadataKey}})
	if err != nil {
		return nil, err
	}
	return parseDetail(body)
}

func (c *Client) get(ctx context.Context, target string, params url.Values) ([]byte, error) {
	resp, err := httputil.Get(ctx, c.HTTP, target, params)
	if err != nil {
		return nil, provider.Transport(provider.DataON, err)
	}
	if !resp.OK() {
		zerolog.Ctx(ctx).Debug().Int("status", resp.StatusCode).Msg("dataon request rejected")
		return nil, provider.HTTPStatus(provider.DataON, resp.StatusCode, resp.Body)
	}
	return resp.Body, nil
}

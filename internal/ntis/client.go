// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ntis queries the NTIS national R&D registry: project search,
// classification recommendation, content recommendation and related-content
// lookup by project id.
package ntis

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

// Credentials are the secrets NTIS requires.
type Credentials struct {
	APIKey string `env:"NTIS_API_KEY"`
}

const (
	projectPath     = "/rndopen/openApi/public_project"
	classifyPath    = "/rndopen/openApi/rcmncls"
	recommendPath   = "/rndopen/openApi/public_recommend"
	connectionPath  = "/rndopen/openApi/ConnectionContent"
	defaultPageSize = 10
)

// Query is one of the request shapes NTIS accepts. Each variant carries only
// the fields its endpoint reads.
type Query interface {
	request() (path string, params url.Values, kind Kind)
}

// ProjectQuery searches the project registry by keyword.
type ProjectQuery struct {
	Text       string
	MaxResults int
}

func (q ProjectQuery) request() (string, url.Values, Kind) {
	return projectPath, listParams("project", q.Text, q.MaxResults), KindProject
}

// RecommendationQuery asks for content recommended for a keyword.
type RecommendationQuery struct {
	Text       string
	MaxResults int
}

func (q RecommendationQuery) request() (string, url.Values, Kind) {
	return recommendPath, listParams("recommend", q.Text, q.MaxResults), KindRecommendation
}

func listParams(collection, text string, maxResults int) url.Values {
	return url.Values{
		"userId":        {""},
		"collection":    {collection},
		"SRWR":          {text},
		"searchFd":      {""},
		"addQuery":      {""},
		"searchRnkn":    {""},
		"startPosition": {"1"},
		"displayCnt":    {strconv.Itoa(provider.PageSize(maxResults, defaultPageSize))},
	}
}

// ClassificationQuery recommends classification codes for a single abstract.
type ClassificationQuery struct {
	Abstract string
	Scheme   Scheme
}

func (q ClassificationQuery) request() (string, url.Values, Kind) {
	return classifyPath, url.Values{
		"collection": {q.Scheme.collection(false)},
		"rqstDes":    {q.Abstract},
	}, q.Scheme.kind()
}

// DetailedClassificationQuery recommends classification codes from the five
// itemised proposal fields.
type DetailedClassificationQuery struct {
	Goal            string
	Content         string
	Effect          string
	KoreanKeywords  string
	EnglishKeywords string
	Scheme          Scheme
}

// Text joins the five fields the way their combined length is measured.
func (q DetailedClassificationQuery) Text() string {
	return strings.TrimSpace(strings.Join([]string{q.Goal, q.Content, q.Effect, q.KoreanKeywords, q.EnglishKeywords}, " "))
}

// Empty reports whether none of the five fields is set.
func (q DetailedClassificationQuery) Empty() bool {
	return q.Goal == "" && q.Content == "" && q.Effect == "" && q.KoreanKeywords == "" && q.EnglishKeywords == ""
}

func (q DetailedClassificationQuery) request() (string, url.Values, Kind) {
	return classifyPath, url.Values{
		"collection":       {q.Scheme.collection(true)},
		"rschGoalAbstract": {q.Goal},
		"rschAbstract":     {q.Content},
		"expEfctAbstract":  {q.Effect},
		"korKywd":          {q.KoreanKeywords},
		"engKywd":          {q.EnglishKeywords},
	}, q.Scheme.kind()
}

// RelatedContentQuery lists content of one collection linked to a project.
type RelatedContentQuery struct {
	ProjectID  string
	Collection Collection
}

func (q RelatedContentQuery) request() (string, url.Values, Kind) {
	return connectionPath, url.Values{
		"pjtId":      {q.ProjectID},
		"collection": {string(q.Collection)},
	}, q.Collection.kind()
}

// ResultSet is a parsed NTIS response. Only the slice matching Kind is set.
type ResultSet struct {
	Kind            Kind
	Total           int
	Projects        []Project
	Classifications []Classification
	Related         []RelatedContent

	// Source identifies the project a related-content response is about.
	Source RelatedSource
}

// API is the client contract the service depends on.
type API interface {
	provider.Authenticator
	Search(ctx context.Context, q Query) (*ResultSet, error)
}

// Client talks to the NTIS open API. Every request carries the approval key.
type Client struct {
	BaseURL     string
	HTTP        types.HTTPConfig
	Credentials Credentials
}

// NewClient returns a client for baseURL. An empty baseURL selects production.
func NewClient(baseURL string, httpCfg types.HTTPConfig, creds Credentials) *Client {
	if baseURL == "" {
		baseURL = types.DefaultNTISBaseURL
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: httpCfg, Credentials: creds}
}

// GetToken only verifies credentials; NTIS has no session token.
func (c *Client) GetToken(context.Context) error { return c.Ready() }

// Ready fails with ServiceUnavailable when the approval key is unset.
func (c *Client) Ready() error {
	if missing := secrets.Missing(c.Credentials); len(missing) > 0 {
		return provider.Unavailable(provider.NTIS, missing...)
	}
	return nil
}

// Search sends q and parses the response according to its kind.
func (c *Client) Search(ctx context.Context, q Query) (*ResultSet, error) {
	if err := c.GetToken(ctx); err != nil {
		return nil, err
	}

	path, params, kind := q.request()
	params.Set("apprvKey", c.Credentials.APIKey)

	resp, err := httputil.Get(ctx, c.HTTP, c.BaseURL+path, params)
	if err != nil {
		return nil, provider.Transport(provider.NTIS, err)
	}
	if !resp.OK() {
		return nil, provider.HTTPStatus(provider.NTIS, resp.StatusCode, resp.Body)
	}

	var rs *ResultSet
	switch {
	case kind.related():
		rs, err = parseRelated(resp.Body)
	case kind.classification():
		rs, err = parseClassifications(resp.Body)
	default:
		rs, err = parseProjects(resp.Body)
	}
	if err != nil {
		if provider.KindOf(err) == provider.KindParse {
			zerolog.Ctx(ctx).Warn().Err(err).Str("kind", string(kind)).Msg("ntis response did not parse")
		}
		return nil, err
	}
	rs.Kind = kind
	return rs, nil
}

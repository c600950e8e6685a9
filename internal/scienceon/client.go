// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scienceon searches KISTI ScienceON for articles, patents and
// reports through its token-authenticated XML gateway.
package scienceon

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"github.com/pdiddy/kisti-mcp/internal/cipher"
	"github.com/pdiddy/kisti-mcp/internal/httputil"
	"github.com/pdiddy/kisti-mcp/internal/provider"
	"github.com/pdiddy/kisti-mcp/internal/secrets"
	"github.com/pdiddy/kisti-mcp/pkg/types"
)

// Credentials are the secrets the gateway requires.
type Credentials struct {
	APIKey     string `env:"SCIENCEON_API_KEY"`
	ClientID   string `env:"SCIENCEON_CLIENT_ID"`
	MACAddress string `env:"SCIENCEON_MAC_ADDRESS"`
}

// Kind is the gateway target a request addresses.
type Kind string

const (
	KindArticle Kind = "ARTI"
	KindPatent  Kind = "PATENT"
	KindReport  Kind = "REPORT"
)

// Label returns the Korean noun used in messages for k.
func (k Kind) Label() string {
	switch k {
	case KindArticle:
		return "논문"
	case KindPatent:
		return "특허"
	case KindReport:
		return "보고서"
	}
	return string(k)
}

// Query is a keyword search against one target.
type Query struct {
	Kind       Kind
	Text       string
	MaxResults int
}

// ResultSet is a parsed gateway response.
type ResultSet struct {
	Total   int
	Records []Record
}

// API is the client contract the service depends on.
type API interface {
	provider.Authenticator
	Search(ctx context.Context, q Query) (*ResultSet, error)
	Details(ctx context.Context, kind Kind, cn string) (*ResultSet, error)
	Citations(ctx context.Context, cn string) (*ResultSet, error)
}

// Client talks to the ScienceON gateway. Each operation is a single request.
type Client struct {
	BaseURL     string
	HTTP        types.HTTPConfig
	Credentials Credentials

	// Now supplies the timestamp sealed into token requests.
	Now func() time.Time

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

// NewClient returns a client for baseURL. An empty baseURL selects production.
func NewClient(baseURL string, httpCfg types.HTTPConfig, creds Credentials) *Client {
	if baseURL == "" {
		baseURL = types.DefaultScienceONBaseURL
	}
	return &Client{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		HTTP:        httpCfg,
		Credentials: creds,
		Now:         time.Now,
	}
}

// Ready fails with ServiceUnavailable, naming the unset variables, when any
// credential is missing.
func (c *Client) Ready() error {
	if missing := secrets.Missing(c.Credentials); len(missing) > 0 {
		return provider.Unavailable(provider.ScienceON, missing...)
	}
	return nil
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// GetToken exchanges the encrypted account payload for an access token.
func (c *Client) GetToken(ctx context.Context) error {
	if err := c.Ready(); err != nil {
		return err
	}

	payload, err := cipher.TokenPayload(c.Now(), c.Credentials.MACAddress)
	if err != nil {
		return provider.AuthFailed(provider.ScienceON, err)
	}
	accounts, err := cipher.Encrypt(payload, c.Credentials.APIKey)
	if err != nil {
		return provider.AuthFailed(provider.ScienceON, err)
	}

	// accounts is already query-escaped and must not be encoded again.
	target := c.BaseURL + "/tokenrequest.do?client_id=" + url.QueryEscape(c.Credentials.ClientID) + "&accounts=" + accounts
	resp, err := httputil.GetURL(ctx, c.HTTP, target)
	if err != nil {
		return provider.AuthFailed(provider.ScienceON, err)
	}
	if !resp.OK() {
		return provider.AuthFailed(provider.ScienceON, errors.Newf("token endpoint returned status %d", resp.StatusCode))
	}

	var tok tokenResponse
	if err := json.Unmarshal(resp.Body, &tok); err != nil {
		zerolog.Ctx(ctx).Warn().Str("body", provider.Snippet(string(resp.Body), 200)).Msg("unreadable token response")
		return provider.AuthFailed(provider.ScienceON, errors.Wrap(err, "parsing token response"))
	}
	if tok.AccessToken == "" {
		return provider.AuthFailed(provider.ScienceON, errors.New("token response carried no access_token"))
	}

	c.mu.Lock()
	c.accessToken = tok.AccessToken
	c.refreshToken = tok.RefreshToken
	c.mu.Unlock()

	zerolog.Ctx(ctx).Debug().Msg("scienceon token acquired")
	return nil
}

func (c *Client) tokens() (access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken, c.refreshToken
}

// Search runs a keyword search.
func (c *Client) Search(ctx context.Context, q Query) (*ResultSet, error) {
	query, err := searchQuery(q.Text)
	if err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("action", "search")
	params.Set("target", string(q.Kind))
	params.Set("searchQuery", query)
	params.Set("curPage", "1")
	params.Set("rowCount", strconv.Itoa(provider.PageSize(q.MaxResults, 10)))
	return c.call(ctx, params)
}

// Details fetches the full record for cn.
func (c *Client) Details(ctx context.Context, kind Kind, cn string) (*ResultSet, error) {
	params := url.Values{}
	params.Set("action", "browse")
	params.Set("target", string(kind))
	params.Set("cn", cn)
	return c.call(ctx, params)
}

// Citations lists the patents citing or cited by cn.
func (c *Client) Citations(ctx context.Context, cn string) (*ResultSet, error) {
	params := url.Values{}
	params.Set("action", "citation")
	params.Set("target", string(KindPatent))
	params.Set("cn", cn)
	return c.call(ctx, params)
}

func (c *Client) call(ctx context.Context, params url.Values) (*ResultSet, error) {
	if err := c.Ready(); err != nil {
		return nil, err
	}
	tok, _ := c.tokens()
	if tok == "" {
		return nil, provider.AuthFailed(provider.ScienceON, errors.New("no access token; call GetToken first"))
	}
	params.Set("client_id", c.Credentials.ClientID)
	params.Set("token", tok)
	params.Set("version", "1.0")

	resp, err := httputil.Get(ctx, c.HTTP, c.BaseURL+"/openapicall.do", params)
	if err != nil {
		return nil, provider.Transport(provider.ScienceON, err)
	}
	if !resp.OK() {
		return nil, provider.HTTPStatus(provider.ScienceON, resp.StatusCode, resp.Body)
	}

	rs, err := parseResponse(resp.Body)
	if err != nil {
		if provider.KindOf(err) == provider.KindParse {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("scienceon response did not parse")
		}
		return nil, err
	}
	return rs, nil
}

// searchQuery encodes {"BI": text} with non-ASCII characters kept literal.
func searchQuery(text string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(map[string]string{"BI": text}); err != nil {
		return "", errors.Wrap(err, "encoding search query")
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

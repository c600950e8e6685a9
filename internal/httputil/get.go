// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP helper shared by the provider clients.
package httputil

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"github.com/pdiddy/kisti-mcp/pkg/types"
)

// DefaultTimeout applies when the configuration leaves the timeout unset.
const DefaultTimeout = 30 * time.Second

// maxBodyBytes caps how much of a response is read into memory.
const maxBodyBytes = 32 << 20

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the status is 200.
func (r *Response) OK() bool { return r.StatusCode == http.StatusOK }

// Get issues a single GET for rawURL with params appended to its query. Each
// call builds its own client and transport, so no connection outlives the
// request. Transport failures and timeouts are returned as errors; any HTTP
// status is returned in the Response for the caller to judge.
func Get(ctx context.Context, cfg types.HTTPConfig, rawURL string, params url.Values) (*Response, error) {
	target := rawURL
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	return GetURL(ctx, cfg, target)
}

// GetURL is Get for a URL whose query string is already encoded.
func GetURL(ctx context.Context, cfg types.HTTPConfig, target string) (*Response, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	transport := &http.Transport{
		Proxy:             http.ProxyFromEnvironment,
		DisableKeepAlives: true,
	}
	defer transport.CloseIdleConnections()
	client := &http.Client{Timeout: timeout, Transport: transport}

	log := zerolog.Ctx(ctx)
	log.Debug().Str("host", req.URL.Host).Str("path", req.URL.Path).Msg("http get")

	resp, err := client.Do(req)
	if err != nil {
		// The url.Error text carries the query string, which holds credentials.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, errors.Wrapf(err, "requesting %s%s", req.URL.Host, req.URL.Path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.Wrap(err, "reading response body")
	}
	log.Debug().Int("status", resp.StatusCode).Int("bytes", len(body)).Msg("http response")

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

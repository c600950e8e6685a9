// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/kisti-mcp/pkg/types"
)

func TestGet_ReturnsBodyAndStatus(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "v", r.URL.Query().Get("k"))
		assert.Equal(t, "kisti-mcp/test", r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<ok/>"))
	}))
	defer ts.Close()

	cfg := types.HTTPConfig{Timeout: time.Second, UserAgent: "kisti-mcp/test"}
	resp, err := Get(context.Background(), cfg, ts.URL, url.Values{"k": {"v"}})
	require.NoError(t, err)

	assert.True(t, resp.OK())
	assert.Equal(t, "<ok/>", string(resp.Body))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGet_NonOKIsNotAnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("down"))
	}))
	defer ts.Close()

	resp, err := Get(context.Background(), types.HTTPConfig{}, ts.URL, nil)
	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "down", string(resp.Body))
}

func TestGet_Timeout(t *testing.T) {
	done := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
		}
	}))
	defer ts.Close()
	defer close(done)

	_, err := Get(context.Background(), types.HTTPConfig{Timeout: 20 * time.Millisecond}, ts.URL, nil)
	assert.Error(t, err)
}

func TestGet_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Get(ctx, types.HTTPConfig{}, ts.URL, nil)
	assert.Error(t, err)
}

func TestGet_ErrorOmitsQuery(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	target := ts.URL
	ts.Close()

	_, err := Get(context.Background(), types.HTTPConfig{Timeout: time.Second}, target+"/path", url.Values{"key": {"s3cret"}})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "s3cret")
	assert.Contains(t, err.Error(), "/path")
}

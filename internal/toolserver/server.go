// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package toolserver exposes the provider services as MCP tools. Every tool
// answers with a single text block; failures are flagged with IsError.
package toolserver

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/pdiddy/kisti-mcp/internal/dataon"
	"github.com/pdiddy/kisti-mcp/internal/ntis"
	"github.com/pdiddy/kisti-mcp/internal/provider"
	"github.com/pdiddy/kisti-mcp/internal/scienceon"
)

// Name is the implementation name announced to MCP clients.
const Name = "kisti-mcp"

// ErrUnknownTool is returned by Call for a name no tool is registered under.
var ErrUnknownTool = errors.New("unknown tool")

// Deps are the services the tools delegate to. Services over disabled
// clients are still required; they answer with an unavailability message.
type Deps struct {
	ScienceON *scienceon.Service
	NTIS      *ntis.Service
	DataON    *dataon.Service

	Logger  zerolog.Logger
	Version string

	// MaxResults replaces an omitted max_results. Zero means 10.
	MaxResults int
}

// ToolInfo describes a registered tool.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type handler func(ctx context.Context, args json.RawMessage) (string, error)

// Server holds the MCP server and a direct dispatch table over the same
// handlers.
type Server struct {
	mcp      *mcp.Server
	log      zerolog.Logger
	tools    []ToolInfo
	handlers map[string]handler
}

// New registers every tool.
func New(d Deps) *Server {
	version := d.Version
	if version == "" {
		version = "dev"
	}
	s := &Server{
		mcp:      mcp.NewServer(&mcp.Implementation{Name: Name, Version: version}, nil),
		log:      d.Logger,
		handlers: make(map[string]handler),
	}
	registerScienceON(s, d.ScienceON, d.MaxResults)
	registerNTIS(s, d.NTIS, d.MaxResults)
	registerDataON(s, d.DataON, d.MaxResults)
	return s
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcp.Server { return s.mcp }

// Serve runs the server over stdio until the client disconnects or ctx ends.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Info().Int("tools", len(s.tools)).Msg("serving on stdio")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// Tools lists the registered tools sorted by name.
func (s *Server) Tools() []ToolInfo {
	out := append([]ToolInfo(nil), s.tools...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Call runs the named tool with JSON-encoded arguments and returns its text.
// An error means the call never reached the tool; provider failures come back
// as text.
func (s *Server) Call(ctx context.Context, name string, args json.RawMessage) (string, error) {
	h, ok := s.handlers[name]
	if !ok {
		return "", errors.Wrapf(ErrUnknownTool, "%q", name)
	}
	return h(ctx, args)
}

// addTool registers run under name with both the MCP server and the dispatch
// table. Each invocation gets its own call id on a child logger.
func addTool[In any](s *Server, name, description string, run func(ctx context.Context, in In) string) {
	invoke := func(ctx context.Context, in In) string {
		log := s.log.With().Str("tool", name).Str("call_id", uuid.NewString()).Logger()
		ctx = log.WithContext(ctx)

		start := time.Now()
		log.Debug().Msg("tool call started")
		text := run(ctx, in)
		ev := log.Info()
		if provider.IsFailure(text) {
			ev = log.Warn()
		}
		ev.Dur("elapsed", time.Since(start)).Int("bytes", len(text)).Bool("failed", provider.IsFailure(text)).Msg("tool call finished")
		return text
	}

	mcp.AddTool(s.mcp, &mcp.Tool{Name: name, Description: description},
		func(ctx context.Context, _ *mcp.CallToolRequest, in In) (*mcp.CallToolResult, any, error) {
			text := invoke(ctx, in)
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: text}},
				IsError: provider.IsFailure(text),
			}, nil, nil
		})

	s.tools = append(s.tools, ToolInfo{Name: name, Description: description})
	s.handlers[name] = func(ctx context.Context, args json.RawMessage) (string, error) {
		var in In
		if len(bytes.TrimSpace(args)) > 0 {
			if err := json.Unmarshal(args, &in); err != nil {
				return "", errors.Wrapf(err, "decoding arguments for %s", name)
			}
		}
		return invoke(ctx, in), nil
	}
}

func orDefault(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/rs/zerolog"

	"github.com/pdiddy/kisti-mcp/internal/dataon"
	"github.com/pdiddy/kisti-mcp/internal/ntis"
	"github.com/pdiddy/kisti-mcp/internal/provider"
	"github.com/pdiddy/kisti-mcp/internal/scienceon"
	"github.com/pdiddy/kisti-mcp/internal/secrets"
	"github.com/pdiddy/kisti-mcp/internal/toolserver"
	"github.com/pdiddy/kisti-mcp/pkg/types"
)

// newServer resolves credentials and wires every provider into a tool server.
// A provider with missing credentials is logged and left disabled.
func newServer(c types.Config, log zerolog.Logger) (*toolserver.Server, error) {
	loader := secrets.NewLoader(c.EnvFile)
	loader.Logger = log

	var (
		scienceonCreds scienceon.Credentials
		ntisCreds      ntis.Credentials
		dataonCreds    dataon.Credentials
	)
	for _, dst := range []any{&scienceonCreds, &ntisCreds, &dataonCreds} {
		if err := loader.Bind(dst); err != nil {
			return nil, err
		}
	}

	for name, creds := range map[string]any{
		provider.ScienceON: scienceonCreds,
		provider.NTIS:      ntisCreds,
		provider.DataON:    dataonCreds,
	} {
		if missing := secrets.Missing(creds); len(missing) > 0 {
			log.Warn().Str("provider", name).Strs("missing", missing).Msg("credentials incomplete, provider disabled")
		} else {
			log.Debug().Str("provider", name).Msg("credentials loaded")
		}
	}

	return toolserver.New(toolserver.Deps{
		ScienceON:  scienceon.NewService(scienceon.NewClient(c.ScienceON.BaseURL, c.HTTP, scienceonCreds)),
		NTIS:       ntis.NewService(ntis.NewClient(c.NTIS.BaseURL, c.HTTP, ntisCreds)),
		DataON:     dataon.NewService(dataon.NewClient(c.DataON.BaseURL, c.HTTP, dataonCreds)),
		Logger:     log,
		Version:    version,
		MaxResults: c.MaxResults,
	}), nil
}

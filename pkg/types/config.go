// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds configuration shared between the CLI and the provider packages.
package types

import "time"

// Production endpoints for the three KISTI platforms.
const (
	DefaultScienceONBaseURL = "https://apigateway.kisti.re.kr"
	DefaultNTISBaseURL      = "https://www.ntis.go.kr"
	DefaultDataONBaseURL    = "https://dataon.kisti.re.kr"
)

// HTTPConfig holds shared HTTP settings used by every provider client.
type HTTPConfig struct {
	// Timeout bounds a single request, connection through body read.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "kisti-mcp/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ProviderConfig holds the per-platform endpoint override.
type ProviderConfig struct {
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
}

// LogConfig controls the stderr logger.
type LogConfig struct {
	// Level is a zerolog level name (debug, info, warn, error).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Console switches from JSON lines to the human-readable console writer.
	Console bool `json:"console" yaml:"console" mapstructure:"console"`
}

// Config is the full runtime configuration read from kisti-mcp.yaml and
// KISTI_MCP_* environment variables. Credentials are not part of it; they
// are resolved separately from the process environment and the env file.
type Config struct {
	HTTP HTTPConfig `json:"http" yaml:"http" mapstructure:"http"`
	Log  LogConfig  `json:"log" yaml:"log" mapstructure:"log"`

	// EnvFile is the dotenv-style file consulted when a credential is not
	// set in the process environment (default ".env").
	EnvFile string `json:"env_file" yaml:"env_file" mapstructure:"env_file"`

	// MaxResults is the default page size for tools that take max_results.
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	ScienceON ProviderConfig `json:"scienceon" yaml:"scienceon" mapstructure:"scienceon"`
	NTIS      ProviderConfig `json:"ntis" yaml:"ntis" mapstructure:"ntis"`
	DataON    ProviderConfig `json:"dataon" yaml:"dataon" mapstructure:"dataon"`
}

// DefaultConfig returns the configuration used when no file or override is present.
func DefaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "kisti-mcp/dev",
		},
		Log:        LogConfig{Level: "info"},
		EnvFile:    ".env",
		MaxResults: 10,
		ScienceON:  ProviderConfig{BaseURL: DefaultScienceONBaseURL},
		NTIS:       ProviderConfig{BaseURL: DefaultNTISBaseURL},
		DataON:     ProviderConfig{BaseURL: DefaultDataONBaseURL},
	}
}

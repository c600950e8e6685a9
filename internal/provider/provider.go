// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider holds what the ScienceON, NTIS and DataON packages share:
// the authentication contract, the error taxonomy every failure is mapped
// into, and the text helpers the formatters build on.
package provider

import "context"

// Provider names as they appear in user-facing messages.
const (
	ScienceON = "ScienceON"
	NTIS      = "NTIS"
	DataON    = "DataON"
)

// Authenticator is implemented by every provider client. Ready reports a
// ServiceUnavailable error without touching the network when credentials are
// incomplete. Providers that need no session token implement GetToken as Ready.
type Authenticator interface {
	Ready() error
	GetToken(ctx context.Context) error
}

// MaxPageSize is the largest page any provider accepts.
const MaxPageSize = 100

// PageSize clamps a requested result count to [1, MaxPageSize], substituting
// def for non-positive values.
func PageSize(n, def int) int {
	if n <= 0 {
		n = def
	}
	if n > MaxPageSize {
		n = MaxPageSize
	}
	if n <= 0 {
		n = 1
	}
	return n
}

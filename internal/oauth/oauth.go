// Package oauth defines the uniform surface the three provider
// integrations expose to the login orchestration.
package oauth

import (
	"context"
	"fmt"

	"github.com/easysocial/easysocial-server/internal/models"
)

// Adapter is implemented once per provider. AuthCodeURL is pure string
// construction; the other two each perform a single upstream HTTP call.
type Adapter interface {
	// AuthCodeURL builds the authorization-redirect URL embedding the
	// client id, redirect URI, state, and provider-specific parameters.
	AuthCodeURL(state string) string

	// ExchangeCode trades the authorization code for an access token.
	ExchangeCode(ctx context.Context, code string) (string, error)

	// FetchIdentity calls the provider's user-info endpoint and maps the
	// response onto the normalized identity shape.
	FetchIdentity(ctx context.Context, accessToken string) (*models.Identity, error)
}

// Stages of an upstream exchange, for error reporting.
const (
	StageExchange = "exchange"
	StageIdentity = "identity"
)

// UpstreamError wraps a failed third-party call: network error, non-2xx
// response, or a response missing a required field.
type UpstreamError struct {
	Provider models.Provider
	Stage    string
	Status   int
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s failed with status %d: %v", e.Provider, e.Stage, e.Status, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Provider, e.Stage, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

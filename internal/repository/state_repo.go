package repository

import (
	"context"
	"fmt"

	"github.com/easysocial/easysocial-server/internal/models"
)

// StateRepository holds short-lived OAuth state tokens. A token maps to
// the provider that issued it and disappears after the configured TTL.
type StateRepository interface {
	// Issue generates a fresh random state token bound to provider.
	Issue(ctx context.Context, provider models.Provider) (string, error)

	// Consume atomically deletes the token and returns true iff it
	// exists, is unexpired, and was issued for the same provider. A
	// provider mismatch leaves the entry untouched so a replay against
	// the wrong provider cannot invalidate an in-flight login.
	Consume(ctx context.Context, token string, provider models.Provider) (bool, error)
}

var ErrStateNotFound = fmt.Errorf("oauth state not found or expired")

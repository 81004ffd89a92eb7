package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/easysocial/easysocial-server/internal/models"
)

// TokenGenerator signs credentials for authenticated users.
type TokenGenerator interface {
	GenerateToken(user *models.User) (string, error)
}

// UserReconciler resolves a provider identity to a local user, creating
// one on first login.
type UserReconciler interface {
	Reconcile(ctx context.Context, identity *models.Identity) (*models.User, error)
}

// OAuthFlow drives a login attempt end to end.
type OAuthFlow interface {
	// LoginURL issues a fresh state token and returns the provider's
	// authorization URL to redirect the client to.
	LoginURL(ctx context.Context, provider models.Provider) (string, error)

	// HandleCallback validates the returned state, completes the token
	// exchange and identity fetch, reconciles the user, and returns a
	// signed credential. An invalid state yields ErrInvalidState before
	// any upstream call is made.
	HandleCallback(ctx context.Context, provider models.Provider, state, code string) (string, error)
}

// ProfileManager owns the profile CRUD and search semantics.
type ProfileManager interface {
	Create(ctx context.Context, ownerID, username string) (*models.Profile, error)
	Update(ctx context.Context, ownerID string, req models.UpdateProfileRequest) (*models.Profile, error)
	Delete(ctx context.Context, ownerID string) error
	GetByOwner(ctx context.Context, ownerID string) (*models.Profile, error)
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByUsername(ctx context.Context, username string) (*models.Profile, error)
	Search(ctx context.Context, query string) ([]*models.Profile, error)
}

// ErrInvalidState collapses every state rejection (unknown, expired, or
// provider-mismatched) into one error so the response cannot leak which
// case occurred.
var ErrInvalidState = errors.New("oauth state is invalid")

// ErrUsernameTooLong rejects usernames over the column limit before any
// database round trip.
var ErrUsernameTooLong = fmt.Errorf("username exceeds %d characters", models.MaxUsernameLength)

// ConflictError reports which profile attribute collided on create or
// update.
type ConflictError struct {
	// Field is "profile" when the owner already has one, "username"
	// when the name is taken.
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on %s", e.Field)
}

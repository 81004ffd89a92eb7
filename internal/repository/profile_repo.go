package repository

import (
	"context"
	"fmt"

	"github.com/easysocial/easysocial-server/internal/models"
)

// ProfileUpdate carries a partial profile mutation. Nil fields are not
// written.
type ProfileUpdate struct {
	Username    *string
	DisplayName *string
	Bio         *string
}

// ProfileRepository defines operations over user profiles.
type ProfileRepository interface {
	// Create inserts a profile. It returns ErrProfileExists when the
	// owner already has one and ErrUsernameTaken when the username is
	// claimed by another profile.
	Create(ctx context.Context, profile *models.Profile) (*models.Profile, error)

	// GetByOwner returns the profile owned by the given user id, or
	// ErrProfileNotFound.
	GetByOwner(ctx context.Context, ownerID string) (*models.Profile, error)

	// GetByID returns the profile with the given id, or ErrProfileNotFound.
	GetByID(ctx context.Context, id string) (*models.Profile, error)

	// GetByUsername returns the profile with the given username
	// (case-sensitive exact match), or ErrProfileNotFound.
	GetByUsername(ctx context.Context, username string) (*models.Profile, error)

	// UpdateByOwner applies a partial update to the owner's profile and
	// returns the updated row. It returns ErrProfileNotFound if the owner
	// has no profile and ErrUsernameTaken on a username collision.
	UpdateByOwner(ctx context.Context, ownerID string, update ProfileUpdate) (*models.Profile, error)

	// DeleteByOwner removes the owner's profile. It returns
	// ErrProfileNotFound if there was nothing to delete.
	DeleteByOwner(ctx context.Context, ownerID string) error

	// SearchByUsername returns up to limit profiles whose username
	// contains the query substring.
	SearchByUsername(ctx context.Context, query string, limit int) ([]*models.Profile, error)

	// UsernameExists reports whether any profile holds the username.
	UsernameExists(ctx context.Context, username string) (bool, error)
}

var ErrProfileNotFound = fmt.Errorf("profile not found")
var ErrProfileExists = fmt.Errorf("profile already exists for this user")
var ErrUsernameTaken = fmt.Errorf("username already taken")

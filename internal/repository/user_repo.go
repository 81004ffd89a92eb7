package repository

import (
	"context"
	"fmt"

	"github.com/easysocial/easysocial-server/internal/models"
)

// UserRepository defines operations for storing/retrieving login identities.
type UserRepository interface {
	// GetByEmailAndProvider looks a user up by the (email, provider)
	// de-duplication key. It returns ErrUserNotFound on a miss.
	GetByEmailAndProvider(ctx context.Context, email string, provider models.Provider) (*models.User, error)

	// Create inserts a new user and returns it with its generated id.
	// It returns ErrUserExists if the (email, provider) pair is already
	// taken by a concurrent first login.
	Create(ctx context.Context, email string, provider models.Provider) (*models.User, error)

	// GetByID returns the user with the given id, or ErrUserNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)
}

var ErrUserNotFound = fmt.Errorf("user not found")
var ErrUserExists = fmt.Errorf("user already exists")

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/easysocial/easysocial-server/internal/models"
	"github.com/easysocial/easysocial-server/internal/repository"
)

var _ UserReconciler = (*UserService)(nil)

// UserService reconciles provider identities against the user table.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Reconcile looks a user up by (email, provider) and creates one on
// first login. Existing users are returned unchanged; no field refresh
// happens on later logins. When two first logins race, the unique index
// rejects the second insert and the winner's row is re-read.
func (s *UserService) Reconcile(ctx context.Context, identity *models.Identity) (*models.User, error) {
	user, err := s.userRepo.GetByEmailAndProvider(ctx, identity.Email, identity.Provider)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}

	created, err := s.userRepo.Create(ctx, identity.Email, identity.Provider)
	if errors.Is(err, repository.ErrUserExists) {
		log.Info().
			Str("provider", identity.Provider.String()).
			Msg("Concurrent first login detected, reusing existing user")
		return s.userRepo.GetByEmailAndProvider(ctx, identity.Email, identity.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("user creation failed: %w", err)
	}

	log.Info().
		Str("userId", created.ID).
		Str("provider", identity.Provider.String()).
		Msg("Created user on first login")
	return created, nil
}

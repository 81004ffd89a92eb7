package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/easysocial/easysocial-server/internal/models"
	"github.com/easysocial/easysocial-server/internal/repository"
)

var _ ProfileManager = (*ProfileService)(nil)

// searchLimit caps username search results.
const searchLimit = 12

// ProfileService owns profile creation, partial updates, deletion, and
// search.
type ProfileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// Create makes the owner's profile. First writer wins: an existing
// profile for the owner conflicts on "profile", a taken username on
// "username". The new profile starts with the username as display name
// and a stock bio.
func (s *ProfileService) Create(ctx context.Context, ownerID, username string) (*models.Profile, error) {
	if len(username) > models.MaxUsernameLength {
		return nil, ErrUsernameTooLong
	}

	if _, err := s.profileRepo.GetByOwner(ctx, ownerID); err == nil {
		return nil, &ConflictError{Field: "profile"}
	} else if !errors.Is(err, repository.ErrProfileNotFound) {
		return nil, fmt.Errorf("profile lookup failed: %w", err)
	}

	taken, err := s.profileRepo.UsernameExists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("username check failed: %w", err)
	}
	if taken {
		return nil, &ConflictError{Field: "username"}
	}

	created, err := s.profileRepo.Create(ctx, &models.Profile{
		Owner:       ownerID,
		Username:    username,
		DisplayName: username,
		Bio:         fmt.Sprintf("A profile for %s", username),
	})
	if err != nil {
		// The check-then-insert window is closed by the DB constraints.
		switch {
		case errors.Is(err, repository.ErrProfileExists):
			return nil, &ConflictError{Field: "profile"}
		case errors.Is(err, repository.ErrUsernameTaken):
			return nil, &ConflictError{Field: "username"}
		}
		return nil, err
	}

	log.Info().Str("profileId", created.ID).Str("username", created.Username).Msg("Profile created")
	return created, nil
}

// Update applies a partial update to the owner's profile. Changing the
// username re-checks global uniqueness; keeping the current value is
// not a conflict.
func (s *ProfileService) Update(ctx context.Context, ownerID string, req models.UpdateProfileRequest) (*models.Profile, error) {
	current, err := s.profileRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && *req.Username != current.Username {
		if len(*req.Username) > models.MaxUsernameLength {
			return nil, ErrUsernameTooLong
		}
		taken, err := s.profileRepo.UsernameExists(ctx, *req.Username)
		if err != nil {
			return nil, fmt.Errorf("username check failed: %w", err)
		}
		if taken {
			return nil, &ConflictError{Field: "username"}
		}
	}

	updated, err := s.profileRepo.UpdateByOwner(ctx, ownerID, repository.ProfileUpdate{
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, &ConflictError{Field: "username"}
		}
		return nil, err
	}
	return updated, nil
}

func (s *ProfileService) Delete(ctx context.Context, ownerID string) error {
	return s.profileRepo.DeleteByOwner(ctx, ownerID)
}

func (s *ProfileService) GetByOwner(ctx context.Context, ownerID string) (*models.Profile, error) {
	return s.profileRepo.GetByOwner(ctx, ownerID)
}

func (s *ProfileService) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	return s.profileRepo.GetByID(ctx, id)
}

func (s *ProfileService) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	return s.profileRepo.GetByUsername(ctx, username)
}

// Search returns up to 12 profiles whose username contains the query.
func (s *ProfileService) Search(ctx context.Context, query string) ([]*models.Profile, error) {
	return s.profileRepo.SearchByUsername(ctx, query, searchLimit)
}

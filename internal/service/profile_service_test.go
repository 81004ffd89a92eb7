package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/easysocial/easysocial-server/internal/mocks"
	"github.com/easysocial/easysocial-server/internal/models"
	"github.com/easysocial/easysocial-server/internal/repository"
)

const testOwnerID = "4f6cfe84-11a4-4fb1-b2a0-0c3c8f209d2b"

func TestProfileCreate_Success(t *testing.T) {
	mockRepo := new(mocks.MockProfileRepository)
	svc := NewProfileService(mockRepo)

	mockRepo.On("GetByOwner", mock.Anything, testOwnerID).
		Return(nil, repository.ErrProfileNotFound).Once()
	mockRepo.On("UsernameExists", mock.Anything, "octocat").Return(false, nil).Once()
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Profile) bool {
		return p.Owner == testOwnerID &&
			p.Username == "octocat" &&
			p.DisplayName == "octocat" &&
			p.Bio == "A profile for octocat"
	})).Return(&models.Profile{
		ID:          "profile-1",
		Owner:       testOwnerID,
		Username:    "octocat",
		DisplayName: "octocat",
		Bio:         "A profile for octocat",
	}, nil).Once()

	profile, err := svc.Create(context.Background(), testOwnerID, "octocat")
	require.NoError(t, err)
	assert.Equal(t, "octocat", profile.Username)
	mockRepo.AssertExpectations(t)
}

func TestProfileCreate_OwnerConflict(t *testing.T) {
	mockRepo := new(mocks.MockProfileRepository)
	svc := NewProfileService(mockRepo)

	mockRepo.On("GetByOwner", mock.Anything, testOwnerID).
		Return(&models.Profile{ID: "profile-1", Owner: testOwnerID}, nil).Once()

	_, err := svc.Create(context.Background(), testOwnerID, "octocat")
	require.Error(t, err)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "profile", conflict.Field)

	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProfileCreate_UsernameConflict(t *testing.T) {
	mockRepo := new(mocks.MockProfileRepository)
	svc := NewProfileService(mockRepo)

	mockRepo.On("GetByOwner", mock.Anything, testOwnerID).
		Return(nil, repository.ErrProfileNotFound).Once()
	mockRepo.On("UsernameExists", mock.Anything, "octocat").Return(true, nil).Once()

	_, err := svc.Create(context.Background(), testOwnerID, "octocat")
	require.Error(t, err)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "username", conflict.Field)

	// No row may be written when the username is taken.
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProfileCreate_UsernameTooLong(t *testing.T) {
	mockRepo := new(mocks.MockProfileRepository)
	svc := NewProfileService(mockRepo)

	_, err := svc.Create(context.Background(), testOwnerID, strings.Repeat("x", 25))
	assert.ErrorIs(t, err, ErrUsernameTooLong)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProfileUpdate_SameUsernameIsNotAConflict(t *testing.T) {
	mockRepo := new(mocks.MockProfileRepository)
	svc := NewProfileService(mockRepo)

	current := &models.Profile{ID: "profile-1", Owner: testOwnerID, Username: "octocat"}
	username := "octocat"
	bio := "updated bio"

	mockRepo.On("GetByOwner", mock.Anything, testOwnerID).Return(current, nil).Once()
	mockRepo.On("UpdateByOwner", mock.Anything, testOwnerID, mock.Anything).
		Return(&models.Profile{ID: "profile-1", Owner: testOwnerID, Username: "octocat", Bio: bio}, nil).Once()

	updated, err := svc.Update(context.Background(), testOwnerID, models.UpdateProfileRequest{
		Username: &username,
		Bio:      &bio,
	})
	require.NoError(t, err)
	assert.Equal(t, "octocat", updated.Username)

	// Keeping the current username must not trigger the global check.
	mockRepo.AssertNotCalled(t, "UsernameExists", mock.Anything, mock.Anything)
}

func TestProfileUpdate_NewUsernameConflict(t *testing.T) {
	mockRepo := new(mocks.MockProfileRepository)
	svc := NewProfileService(mockRepo)

	current := &models.Profile{ID: "profile-1", Owner: testOwnerID, Username: "octocat"}
	username := "taken"

	mockRepo.On("GetByOwner", mock.Anything, testOwnerID).Return(current, nil).Once()
	mockRepo.On("UsernameExists", mock.Anything, "taken").Return(true, nil).Once()

	_, err := svc.Update(context.Background(), testOwnerID, models.UpdateProfileRequest{Username: &username})
	require.Error(t, err)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "username", conflict.Field)
	mockRepo.AssertNotCalled(t, "UpdateByOwner", mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileUpdate_NotFound(t *testing.T) {
	mockRepo := new(mocks.MockProfileRepository)
	svc := NewProfileService(mockRepo)

	mockRepo.On("GetByOwner", mock.Anything, testOwnerID).
		Return(nil, repository.ErrProfileNotFound).Once()

	_, err := svc.Update(context.Background(), testOwnerID, models.UpdateProfileRequest{})
	assert.ErrorIs(t, err, repository.ErrProfileNotFound)
}

func TestProfileSearch_CapsResults(t *testing.T) {
	mockRepo := new(mocks.MockProfileRepository)
	svc := NewProfileService(mockRepo)

	capped := make([]*models.Profile, searchLimit)
	for i := range capped {
		capped[i] = &models.Profile{ID: "profile", Username: "octo"}
	}
	mockRepo.On("SearchByUsername", mock.Anything, "octo", searchLimit).Return(capped, nil).Once()

	results, err := svc.Search(context.Background(), "octo")
	require.NoError(t, err)
	assert.Len(t, results, 12)
	mockRepo.AssertExpectations(t)
}

func TestProfileSearch_NoMatches(t *testing.T) {
	mockRepo := new(mocks.MockProfileRepository)
	svc := NewProfileService(mockRepo)

	mockRepo.On("SearchByUsername", mock.Anything, "nobody", searchLimit).
		Return([]*models.Profile{}, nil).Once()

	results, err := svc.Search(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, results)
}

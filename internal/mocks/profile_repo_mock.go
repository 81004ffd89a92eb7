package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/easysocial/easysocial-server/internal/models"
	"github.com/easysocial/easysocial-server/internal/repository"
)

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	args := m.Called(ctx, profile)
	if p := args.Get(0); p != nil {
		return p.(*models.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileRepository) GetByOwner(ctx context.Context, ownerID string) (*models.Profile, error) {
	args := m.Called(ctx, ownerID)
	if p := args.Get(0); p != nil {
		return p.(*models.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*models.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileRepository) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	args := m.Called(ctx, username)
	if p := args.Get(0); p != nil {
		return p.(*models.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileRepository) UpdateByOwner(ctx context.Context, ownerID string, update repository.ProfileUpdate) (*models.Profile, error) {
	args := m.Called(ctx, ownerID, update)
	if p := args.Get(0); p != nil {
		return p.(*models.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}

func (m *MockProfileRepository) SearchByUsername(ctx context.Context, query string, limit int) ([]*models.Profile, error) {
	args := m.Called(ctx, query, limit)
	if p := args.Get(0); p != nil {
		return p.([]*models.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

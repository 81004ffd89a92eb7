package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/easysocial/easysocial-server/internal/models"
)

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Create(ctx context.Context, ownerID, username string) (*models.Profile, error) {
	args := m.Called(ctx, ownerID, username)
	if p := args.Get(0); p != nil {
		return p.(*models.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileService) Update(ctx context.Context, ownerID string, req models.UpdateProfileRequest) (*models.Profile, error) {
	args := m.Called(ctx, ownerID, req)
	if p := args.Get(0); p != nil {
		return p.(*models.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileService) Delete(ctx context.Context, ownerID string) error {
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}

func (m *MockProfileService) GetByOwner(ctx context.Context, ownerID string) (*models.Profile, error) {
	args := m.Called(ctx, ownerID)
	if p := args.Get(0); p != nil {
		return p.(*models.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileService) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*models.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileService) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	args := m.Called(ctx, username)
	if p := args.Get(0); p != nil {
		return p.(*models.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileService) Search(ctx context.Context, query string) ([]*models.Profile, error) {
	args := m.Called(ctx, query)
	if p := args.Get(0); p != nil {
		return p.([]*models.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

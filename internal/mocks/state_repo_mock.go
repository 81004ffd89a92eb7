package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/easysocial/easysocial-server/internal/models"
)

type MockStateRepository struct {
	mock.Mock
}

func (m *MockStateRepository) Issue(ctx context.Context, provider models.Provider) (string, error) {
	args := m.Called(ctx, provider)
	return args.String(0), args.Error(1)
}

func (m *MockStateRepository) Consume(ctx context.Context, token string, provider models.Provider) (bool, error) {
	args := m.Called(ctx, token, provider)
	return args.Bool(0), args.Error(1)
}

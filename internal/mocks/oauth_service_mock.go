package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/easysocial/easysocial-server/internal/models"
)

type MockOAuthService struct {
	mock.Mock
}

func (m *MockOAuthService) LoginURL(ctx context.Context, provider models.Provider) (string, error) {
	args := m.Called(ctx, provider)
	return args.String(0), args.Error(1)
}

func (m *MockOAuthService) HandleCallback(ctx context.Context, provider models.Provider, state, code string) (string, error) {
	args := m.Called(ctx, provider, state, code)
	return args.String(0), args.Error(1)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/easysocial/easysocial-server/internal/models"
)

type MockAdapter struct {
	mock.Mock
}

func (m *MockAdapter) AuthCodeURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockAdapter) ExchangeCode(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

func (m *MockAdapter) FetchIdentity(ctx context.Context, accessToken string) (*models.Identity, error) {
	args := m.Called(ctx, accessToken)
	if id := args.Get(0); id != nil {
		return id.(*models.Identity), args.Error(1)
	}
	return nil, args.Error(1)
}

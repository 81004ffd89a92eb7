package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/easysocial/easysocial-server/internal/models"
)

type MockUserReconciler struct {
	mock.Mock
}

func (m *MockUserReconciler) Reconcile(ctx context.Context, identity *models.Identity) (*models.User, error) {
	args := m.Called(ctx, identity)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

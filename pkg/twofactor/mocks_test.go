package twofactor

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockStorage is a mock implementation of Storage.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) StoreChallenge(ctx context.Context, userID uuid.UUID, ch Challenge) error {
	args := m.Called(ctx, userID, ch)
	return args.Error(0)
}

func (m *MockStorage) GetChallenge(ctx context.Context, userID uuid.UUID) (*Challenge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Challenge), args.Error(1)
}

func (m *MockStorage) ClearChallenge(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

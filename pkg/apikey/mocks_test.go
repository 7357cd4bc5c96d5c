package apikey

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockStorage is a mock implementation of Storage.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateKey(ctx context.Context, key *Key) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStorage) GetKeyByID(ctx context.Context, id uuid.UUID) (*Key, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Key), args.Error(1)
}

func (m *MockStorage) GetKeyByHash(ctx context.Context, hash string) (*Key, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Key), args.Error(1)
}

func (m *MockStorage) ListKeysByUser(ctx context.Context, userID uuid.UUID) ([]Key, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Key), args.Error(1)
}

func (m *MockStorage) CountActiveKeys(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockStorage) SetKeyActive(ctx context.Context, id uuid.UUID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockStorage) TouchKey(ctx context.Context, id uuid.UUID, usedAt time.Time) error {
	args := m.Called(ctx, id, usedAt)
	return args.Error(0)
}

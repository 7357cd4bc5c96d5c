package invoice

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a mock implementation of Storage.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) GetInvoiceByNumber(ctx context.Context, number string) (*Record, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Record), args.Error(1)
}

func (m *MockStorage) VerificationKeyExists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"haccp/internal/domain"
)

// MockMyMarketRepo is a mock implementation of port.MyMarketRepository.
type MockMyMarketRepo struct {
	mock.Mock
}

func (m *MockMyMarketRepo) Get(ctx context.Context, tenantID uuid.UUID, staffID uuid.UUID) (*domain.MyMarket, error) {
	args := m.Called(ctx, tenantID, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MyMarket), args.Error(1)
}

func (m *MockMyMarketRepo) Set(ctx context.Context, myMarket *domain.MyMarket) error {
	args := m.Called(ctx, myMarket)
	return args.Error(0)
}

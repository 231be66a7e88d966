package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"haccp/internal/domain"
)

// MockMarketRepo is a mock implementation of port.MarketRepository.
type MockMarketRepo struct {
	mock.Mock
}

func (m *MockMarketRepo) Create(ctx context.Context, market *domain.Market) error {
	args := m.Called(ctx, market)
	return args.Error(0)
}

func (m *MockMarketRepo) GetByID(ctx context.Context, tenantID uuid.UUID, marketID uuid.UUID) (*domain.Market, error) {
	args := m.Called(ctx, tenantID, marketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Market), args.Error(1)
}

func (m *MockMarketRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]domain.Market, error) {
	args := m.Called(ctx, tenantID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Market), args.Error(1)
}

func (m *MockMarketRepo) Update(ctx context.Context, market *domain.Market) error {
	args := m.Called(ctx, market)
	return args.Error(0)
}

func (m *MockMarketRepo) Delete(ctx context.Context, tenantID uuid.UUID, marketID uuid.UUID) error {
	args := m.Called(ctx, tenantID, marketID)
	return args.Error(0)
}

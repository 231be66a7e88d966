package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"haccp/internal/domain"
	"haccp/internal/service"
)

// MockMarketService is a mock implementation of service.MarketService.
type MockMarketService struct {
	mock.Mock
}

func (m *MockMarketService) Create(ctx context.Context, tenantID uuid.UUID, input service.CreateMarketInput) (*domain.Market, error) {
	args := m.Called(ctx, tenantID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Market), args.Error(1)
}

func (m *MockMarketService) GetByID(ctx context.Context, tenantID uuid.UUID, marketID uuid.UUID) (*domain.Market, error) {
	args := m.Called(ctx, tenantID, marketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Market), args.Error(1)
}

func (m *MockMarketService) List(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]domain.Market, error) {
	args := m.Called(ctx, tenantID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Market), args.Error(1)
}

func (m *MockMarketService) ListSelectable(ctx context.Context, tenantID uuid.UUID, staffID uuid.UUID) ([]domain.Market, error) {
	args := m.Called(ctx, tenantID, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Market), args.Error(1)
}

func (m *MockMarketService) CheckSelectable(ctx context.Context, tenantID uuid.UUID, staffID uuid.UUID, marketID uuid.UUID) (*domain.Market, error) {
	args := m.Called(ctx, tenantID, staffID, marketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Market), args.Error(1)
}

func (m *MockMarketService) Update(ctx context.Context, tenantID uuid.UUID, marketID uuid.UUID, input service.UpdateMarketInput) (*domain.Market, error) {
	args := m.Called(ctx, tenantID, marketID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Market), args.Error(1)
}

func (m *MockMarketService) Delete(ctx context.Context, tenantID uuid.UUID, marketID uuid.UUID) error {
	args := m.Called(ctx, tenantID, marketID)
	return args.Error(0)
}

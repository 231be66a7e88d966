package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"haccp/internal/domain"
)

// MockRbacRepo is a mock implementation of port.RbacRepository.
type MockRbacRepo struct {
	mock.Mock
}

func (m *MockRbacRepo) Create(ctx context.Context, a *domain.RbacAssignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockRbacRepo) GetByID(ctx context.Context, tenantID uuid.UUID, id uuid.UUID) (*domain.RbacAssignment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RbacAssignment), args.Error(1)
}

func (m *MockRbacRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.RbacAssignment, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RbacAssignment), args.Error(1)
}

func (m *MockRbacRepo) ListByStaff(ctx context.Context, tenantID uuid.UUID, staffID uuid.UUID) ([]domain.RbacAssignment, error) {
	args := m.Called(ctx, tenantID, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RbacAssignment), args.Error(1)
}

func (m *MockRbacRepo) Delete(ctx context.Context, tenantID uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

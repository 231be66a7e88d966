package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"haccp/internal/domain"
	"haccp/internal/port"
)

// MockStaffRepo is a mock implementation of port.StaffRepository.
type MockStaffRepo struct {
	mock.Mock
}

func (m *MockStaffRepo) Create(ctx context.Context, staff *domain.StaffProfile) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *MockStaffRepo) GetByID(ctx context.Context, tenantID uuid.UUID, staffID uuid.UUID) (*domain.StaffProfile, error) {
	args := m.Called(ctx, tenantID, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffProfile), args.Error(1)
}

func (m *MockStaffRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.StaffFilter) ([]domain.StaffProfile, int, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.StaffProfile), args.Int(1), args.Error(2)
}

func (m *MockStaffRepo) ListActiveByInitials(ctx context.Context, tenantID uuid.UUID, initials string) ([]domain.StaffProfile, error) {
	args := m.Called(ctx, tenantID, initials)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StaffProfile), args.Error(1)
}

func (m *MockStaffRepo) ListSignatureCandidates(ctx context.Context, tenantID uuid.UUID, marketID uuid.UUID, initials string) ([]domain.StaffProfile, error) {
	args := m.Called(ctx, tenantID, marketID, initials)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StaffProfile), args.Error(1)
}

func (m *MockStaffRepo) ListMarketAdmins(ctx context.Context, tenantID uuid.UUID, marketID uuid.UUID) ([]domain.StaffProfile, error) {
	args := m.Called(ctx, tenantID, marketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StaffProfile), args.Error(1)
}

func (m *MockStaffRepo) Update(ctx context.Context, staff *domain.StaffProfile) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *MockStaffRepo) UpdatePIN(ctx context.Context, tenantID uuid.UUID, staffID uuid.UUID, pinHash string) error {
	args := m.Called(ctx, tenantID, staffID, pinHash)
	return args.Error(0)
}

func (m *MockStaffRepo) Delete(ctx context.Context, tenantID uuid.UUID, staffID uuid.UUID) error {
	args := m.Called(ctx, tenantID, staffID)
	return args.Error(0)
}

package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"haccp/internal/domain"
	"haccp/internal/service"
)

// MockStaffService is a mock implementation of service.StaffService.
type MockStaffService struct {
	mock.Mock
}

func (m *MockStaffService) Create(ctx context.Context, actor domain.Actor, input service.CreateStaffInput) (*domain.StaffProfile, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffProfile), args.Error(1)
}

func (m *MockStaffService) GetByID(ctx context.Context, actor domain.Actor, staffID uuid.UUID) (*domain.StaffProfile, error) {
	args := m.Called(ctx, actor, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffProfile), args.Error(1)
}

func (m *MockStaffService) List(ctx context.Context, actor domain.Actor, input service.ListStaffInput) ([]domain.StaffProfile, int, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.StaffProfile), args.Int(1), args.Error(2)
}

func (m *MockStaffService) Update(ctx context.Context, actor domain.Actor, staffID uuid.UUID, input service.UpdateStaffInput) (*domain.StaffProfile, error) {
	args := m.Called(ctx, actor, staffID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffProfile), args.Error(1)
}

func (m *MockStaffService) ResetPIN(ctx context.Context, actor domain.Actor, staffID uuid.UUID, pin string) error {
	args := m.Called(ctx, actor, staffID, pin)
	return args.Error(0)
}

func (m *MockStaffService) ChangeOwnPIN(ctx context.Context, actor domain.Actor, currentPIN string, newPIN string) error {
	args := m.Called(ctx, actor, currentPIN, newPIN)
	return args.Error(0)
}

func (m *MockStaffService) Delete(ctx context.Context, actor domain.Actor, staffID uuid.UUID) error {
	args := m.Called(ctx, actor, staffID)
	return args.Error(0)
}

func (m *MockStaffService) VerifySignature(ctx context.Context, tenantID uuid.UUID, marketID uuid.UUID, initials string, pin string) (*domain.StaffProfile, error) {
	args := m.Called(ctx, tenantID, marketID, initials, pin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffProfile), args.Error(1)
}

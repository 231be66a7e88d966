package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"haccp/internal/domain"
	"haccp/internal/service"
)

// MockRbacService is a mock implementation of service.RbacService.
type MockRbacService struct {
	mock.Mock
}

func (m *MockRbacService) EffectiveRole(ctx context.Context, tenantID uuid.UUID, staffID uuid.UUID, marketID uuid.UUID) (domain.Role, error) {
	args := m.Called(ctx, tenantID, staffID, marketID)
	return args.Get(0).(domain.Role), args.Error(1)
}

func (m *MockRbacService) CoversMarket(ctx context.Context, tenantID uuid.UUID, staffID uuid.UUID, marketID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, staffID, marketID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRbacService) AuthorizeScope(ctx context.Context, actor domain.Actor, scope *uuid.UUID) error {
	args := m.Called(ctx, actor, scope)
	return args.Error(0)
}

func (m *MockRbacService) List(ctx context.Context, tenantID uuid.UUID) ([]domain.RbacAssignment, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RbacAssignment), args.Error(1)
}

func (m *MockRbacService) ListByStaff(ctx context.Context, tenantID uuid.UUID, staffID uuid.UUID) ([]domain.RbacAssignment, error) {
	args := m.Called(ctx, tenantID, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RbacAssignment), args.Error(1)
}

func (m *MockRbacService) Grant(ctx context.Context, actor domain.Actor, input service.GrantRoleInput) (*domain.RbacAssignment, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RbacAssignment), args.Error(1)
}

func (m *MockRbacService) Revoke(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID) error {
	args := m.Called(ctx, actor, assignmentID)
	return args.Error(0)
}

package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"haccp/internal/domain"
	"haccp/internal/port"
)

// MockFormDefinitionRepo is a mock implementation of port.FormDefinitionRepository.
type MockFormDefinitionRepo struct {
	mock.Mock
}

func (m *MockFormDefinitionRepo) Create(ctx context.Context, def *domain.FormDefinition) error {
	args := m.Called(ctx, def)
	return args.Error(0)
}

func (m *MockFormDefinitionRepo) GetByID(ctx context.Context, tenantID uuid.UUID, id uuid.UUID) (*domain.FormDefinition, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FormDefinition), args.Error(1)
}

func (m *MockFormDefinitionRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.FormDefinitionFilter) ([]domain.FormDefinition, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FormDefinition), args.Error(1)
}

func (m *MockFormDefinitionRepo) Update(ctx context.Context, def *domain.FormDefinition) error {
	args := m.Called(ctx, def)
	return args.Error(0)
}

func (m *MockFormDefinitionRepo) Delete(ctx context.Context, tenantID uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"haccp/internal/domain"
	"haccp/internal/service"
)

// MockFormDefinitionService is a mock implementation of service.FormDefinitionService.
type MockFormDefinitionService struct {
	mock.Mock
}

func (m *MockFormDefinitionService) Create(ctx context.Context, actor domain.Actor, input service.CreateFormDefinitionInput) (*domain.FormDefinition, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FormDefinition), args.Error(1)
}

func (m *MockFormDefinitionService) GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.FormDefinition, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FormDefinition), args.Error(1)
}

func (m *MockFormDefinitionService) GetVisible(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.FormDefinition, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FormDefinition), args.Error(1)
}

func (m *MockFormDefinitionService) List(ctx context.Context, actor domain.Actor, input service.ListFormsInput) ([]domain.FormDefinition, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FormDefinition), args.Error(1)
}

func (m *MockFormDefinitionService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input service.UpdateFormDefinitionInput) (*domain.FormDefinition, error) {
	args := m.Called(ctx, actor, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FormDefinition), args.Error(1)
}

func (m *MockFormDefinitionService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

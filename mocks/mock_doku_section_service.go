package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"haccp/internal/domain"
	"haccp/internal/service"
)

// MockDokuSectionService is a mock implementation of service.DokuSectionService.
type MockDokuSectionService struct {
	mock.Mock
}

func (m *MockDokuSectionService) Create(ctx context.Context, actor domain.Actor, input service.CreateDokuSectionInput) (*domain.DokuSection, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DokuSection), args.Error(1)
}

func (m *MockDokuSectionService) GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.DokuSection, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DokuSection), args.Error(1)
}

func (m *MockDokuSectionService) ListVisible(ctx context.Context, actor domain.Actor) ([]domain.DokuSection, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DokuSection), args.Error(1)
}

func (m *MockDokuSectionService) ListAll(ctx context.Context, actor domain.Actor) ([]domain.DokuSection, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DokuSection), args.Error(1)
}

func (m *MockDokuSectionService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input service.UpdateDokuSectionInput) (*domain.DokuSection, error) {
	args := m.Called(ctx, actor, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DokuSection), args.Error(1)
}

func (m *MockDokuSectionService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"haccp/internal/domain"
	"haccp/internal/port"
)

// MockDokuSectionRepo is a mock implementation of port.DokuSectionRepository.
type MockDokuSectionRepo struct {
	mock.Mock
}

func (m *MockDokuSectionRepo) Create(ctx context.Context, s *domain.DokuSection) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockDokuSectionRepo) GetByID(ctx context.Context, tenantID uuid.UUID, id uuid.UUID) (*domain.DokuSection, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DokuSection), args.Error(1)
}

func (m *MockDokuSectionRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.DokuSectionFilter) ([]domain.DokuSection, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DokuSection), args.Error(1)
}

func (m *MockDokuSectionRepo) Update(ctx context.Context, s *domain.DokuSection) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockDokuSectionRepo) Delete(ctx context.Context, tenantID uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

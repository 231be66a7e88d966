package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"haccp/internal/domain"
)

// MockFormEntryRepo is a mock implementation of port.FormEntryRepository.
type MockFormEntryRepo struct {
	mock.Mock
}

func (m *MockFormEntryRepo) CreateSigned(ctx context.Context, inst *domain.FormInstance, entry *domain.FormEntry, required int) error {
	args := m.Called(ctx, inst, entry, required)
	return args.Error(0)
}

func (m *MockFormEntryRepo) GetByID(ctx context.Context, tenantID uuid.UUID, entryID uuid.UUID) (*domain.FormEntry, error) {
	args := m.Called(ctx, tenantID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FormEntry), args.Error(1)
}

func (m *MockFormEntryRepo) GetInMarket(ctx context.Context, tenantID uuid.UUID, marketID uuid.UUID, entryID uuid.UUID) (*domain.FormEntry, error) {
	args := m.Called(ctx, tenantID, marketID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FormEntry), args.Error(1)
}

func (m *MockFormEntryRepo) ListByInstance(ctx context.Context, tenantID uuid.UUID, instanceID uuid.UUID) ([]domain.FormEntry, error) {
	args := m.Called(ctx, tenantID, instanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FormEntry), args.Error(1)
}

func (m *MockFormEntryRepo) ListInRange(ctx context.Context, tenantID uuid.UUID, marketID uuid.UUID, from time.Time, to time.Time) ([]domain.EntryRow, error) {
	args := m.Called(ctx, tenantID, marketID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntryRow), args.Error(1)
}

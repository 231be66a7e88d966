package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"haccp/internal/domain"
)

// MockFormInstanceRepo is a mock implementation of port.FormInstanceRepository.
type MockFormInstanceRepo struct {
	mock.Mock
}

func (m *MockFormInstanceRepo) GetByRef(ctx context.Context, tenantID uuid.UUID, formID uuid.UUID, marketID uuid.UUID, periodRef string) (*domain.FormInstance, error) {
	args := m.Called(ctx, tenantID, formID, marketID, periodRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FormInstance), args.Error(1)
}

func (m *MockFormInstanceRepo) ListStatusInRange(ctx context.Context, tenantID uuid.UUID, marketID uuid.UUID, from time.Time, to time.Time) ([]domain.InstanceStatusRow, error) {
	args := m.Called(ctx, tenantID, marketID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InstanceStatusRow), args.Error(1)
}

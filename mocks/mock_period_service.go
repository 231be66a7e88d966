package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"haccp/internal/service"
)

// MockPeriodService is a mock implementation of service.PeriodService.
type MockPeriodService struct {
	mock.Mock
}

func (m *MockPeriodService) Resolve(ctx context.Context, tenantID uuid.UUID, q service.PeriodQuery) (*service.PeriodView, error) {
	args := m.Called(ctx, tenantID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PeriodView), args.Error(1)
}

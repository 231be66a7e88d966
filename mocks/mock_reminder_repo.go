package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"haccp/internal/domain"
)

// MockReminderRepo is a mock implementation of port.ReminderRepository.
type MockReminderRepo struct {
	mock.Mock
}

func (m *MockReminderRepo) MarkSent(ctx context.Context, check domain.MissedCheck) (bool, error) {
	args := m.Called(ctx, check)
	return args.Bool(0), args.Error(1)
}

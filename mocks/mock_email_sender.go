package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"haccp/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendMissedChecksDigest(ctx context.Context, to port.Recipient, digest port.MissedChecksDigest) error {
	args := m.Called(ctx, to, digest)
	return args.Error(0)
}

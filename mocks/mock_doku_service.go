package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"haccp/internal/domain"
	"haccp/internal/service"
)

// MockDokuService is a mock implementation of service.DokuService.
type MockDokuService struct {
	mock.Mock
}

func (m *MockDokuService) Overview(ctx context.Context, actor domain.Actor, q service.DokuQuery) (*service.DokuOverview, error) {
	args := m.Called(ctx, actor, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DokuOverview), args.Error(1)
}

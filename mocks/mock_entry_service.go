package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"haccp/internal/domain"
	"haccp/internal/service"
)

// MockEntryService is a mock implementation of service.EntryService.
type MockEntryService struct {
	mock.Mock
}

func (m *MockEntryService) Submit(ctx context.Context, actor domain.Actor, formID uuid.UUID, input service.SubmitEntryInput) (*service.SubmitResult, error) {
	args := m.Called(ctx, actor, formID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SubmitResult), args.Error(1)
}

func (m *MockEntryService) GetInstance(ctx context.Context, actor domain.Actor, formID uuid.UUID, ref string) (*service.InstanceView, error) {
	args := m.Called(ctx, actor, formID, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.InstanceView), args.Error(1)
}

func (m *MockEntryService) Calendar(ctx context.Context, actor domain.Actor, formID uuid.UUID, month string) (*service.CalendarView, error) {
	args := m.Called(ctx, actor, formID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CalendarView), args.Error(1)
}

func (m *MockEntryService) GetEntry(ctx context.Context, actor domain.Actor, entryID uuid.UUID) (*domain.FormEntry, error) {
	args := m.Called(ctx, actor, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FormEntry), args.Error(1)
}

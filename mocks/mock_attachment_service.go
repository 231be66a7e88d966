package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"haccp/internal/domain"
	"haccp/internal/service"
)

// MockAttachmentService is a mock implementation of service.AttachmentService.
type MockAttachmentService struct {
	mock.Mock
}

func (m *MockAttachmentService) Upload(ctx context.Context, actor domain.Actor, input service.AttachmentUploadInput) (*domain.EntryAttachment, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EntryAttachment), args.Error(1)
}

func (m *MockAttachmentService) ListByEntry(ctx context.Context, actor domain.Actor, entryID uuid.UUID) ([]domain.EntryAttachment, error) {
	args := m.Called(ctx, actor, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntryAttachment), args.Error(1)
}

func (m *MockAttachmentService) GetDownloadURL(ctx context.Context, actor domain.Actor, attachmentID uuid.UUID) (string, error) {
	args := m.Called(ctx, actor, attachmentID)
	return args.String(0), args.Error(1)
}

func (m *MockAttachmentService) Delete(ctx context.Context, actor domain.Actor, attachmentID uuid.UUID) error {
	args := m.Called(ctx, actor, attachmentID)
	return args.Error(0)
}

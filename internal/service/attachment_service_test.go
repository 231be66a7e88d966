package service_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"haccp/internal/config"
	"haccp/internal/domain"
	"haccp/internal/port"
	"haccp/internal/service"
	"haccp/mocks"
)

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")

type attachmentFixture struct {
	repo      *mocks.MockAttachmentRepo
	entryRepo *mocks.MockFormEntryRepo
	storage   *mocks.MockObjectStorage
	svc       service.AttachmentService
	actor     domain.Actor
	entry     *domain.FormEntry
}

func newAttachmentFixture() *attachmentFixture {
	f := &attachmentFixture{
		repo:      new(mocks.MockAttachmentRepo),
		entryRepo: new(mocks.MockFormEntryRepo),
		storage:   new(mocks.MockObjectStorage),
	}
	f.actor = domain.Actor{TenantID: uuid.New(), StaffID: uuid.New(), MarketID: uuid.New(), Role: domain.RoleStaff}
	f.entry = &domain.FormEntry{ID: uuid.New(), TenantID: f.actor.TenantID}
	f.svc = service.NewAttachmentService(f.repo, f.entryRepo, f.storage, &config.S3Config{
		Bucket:        "haccp-test",
		MaxFileSizeMB: 1,
		PresignExpiry: 300,
	})
	return f
}

func (f *attachmentFixture) expectEntry(ctx context.Context) {
	f.entryRepo.On("GetInMarket", ctx, f.actor.TenantID, f.actor.MarketID, f.entry.ID).Return(f.entry, nil)
}

func TestAttachmentService_Upload(t *testing.T) {
	f := newAttachmentFixture()
	ctx := context.Background()
	f.expectEntry(ctx)
	f.repo.On("Create", ctx, mock.MatchedBy(func(a *domain.EntryAttachment) bool {
		return a.FileType == domain.FileTypePDF && a.Status == domain.FileStatusPending && a.FormEntryID == f.entry.ID
	})).Return(nil)
	f.storage.On("Upload", ctx, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "haccp-test" && in.ContentType == "application/pdf" &&
			in.Metadata["entry-id"] == f.entry.ID.String()
	})).Return(&port.UploadOutput{Location: "s3://haccp-test/x"}, nil)
	f.repo.On("UpdateStatus", ctx, f.actor.TenantID, mock.Anything, domain.FileStatusUploaded).Return(nil)

	att, err := f.svc.Upload(ctx, f.actor, service.AttachmentUploadInput{
		EntryID:  f.entry.ID,
		FileName: "../Lieferschein.PDF",
		Size:     int64(len(pdfBytes)),
		File:     bytes.NewReader(pdfBytes),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.FileStatusUploaded, att.Status)
	assert.Equal(t, "Lieferschein.PDF", att.FileName)
	assert.Contains(t, att.S3Key, f.entry.ID.String())
	f.storage.AssertExpectations(t)
}

func TestAttachmentService_Upload_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		body    []byte
		size    int64
		wantErr error
	}{
		{"unknown extension", "notes.txt", []byte("hello"), 5, domain.ErrUnsupportedFileType},
		{"content does not match extension", "scan.png", pdfBytes, int64(len(pdfBytes)), domain.ErrUnsupportedFileType},
		{"too large", "scan.pdf", pdfBytes, 2 * 1024 * 1024, domain.ErrFileTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAttachmentFixture()
			ctx := context.Background()
			f.expectEntry(ctx)

			_, err := f.svc.Upload(ctx, f.actor, service.AttachmentUploadInput{
				EntryID:  f.entry.ID,
				FileName: tt.file,
				Size:     tt.size,
				File:     bytes.NewReader(tt.body),
			})

			assert.ErrorIs(t, err, tt.wantErr)
			f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestAttachmentService_Upload_StorageFailure(t *testing.T) {
	f := newAttachmentFixture()
	ctx := context.Background()
	f.expectEntry(ctx)
	f.repo.On("Create", ctx, mock.Anything).Return(nil)
	f.storage.On("Upload", ctx, mock.Anything).Return(nil, assert.AnError)
	f.repo.On("UpdateStatus", ctx, f.actor.TenantID, mock.Anything, domain.FileStatusFailed).Return(nil)

	_, err := f.svc.Upload(ctx, f.actor, service.AttachmentUploadInput{
		EntryID:  f.entry.ID,
		FileName: "scan.pdf",
		Size:     int64(len(pdfBytes)),
		File:     bytes.NewReader(pdfBytes),
	})

	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	f.repo.AssertExpectations(t)
}

func TestAttachmentService_Upload_EntryOfOtherMarket(t *testing.T) {
	f := newAttachmentFixture()
	ctx := context.Background()
	f.entryRepo.On("GetInMarket", ctx, f.actor.TenantID, f.actor.MarketID, f.entry.ID).Return(nil, domain.ErrNotFound)

	_, err := f.svc.Upload(ctx, f.actor, service.AttachmentUploadInput{EntryID: f.entry.ID, FileName: "scan.pdf"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAttachmentService_GetDownloadURL(t *testing.T) {
	f := newAttachmentFixture()
	ctx := context.Background()
	att := &domain.EntryAttachment{
		ID: uuid.New(), FormEntryID: f.entry.ID, FileName: "scan.pdf",
		S3Bucket: "haccp-test", S3Key: "k", Status: domain.FileStatusUploaded,
	}
	f.repo.On("GetByID", ctx, f.actor.TenantID, att.ID).Return(att, nil)
	f.expectEntry(ctx)
	f.storage.On("GetPresignedURL", ctx, "haccp-test", "k", "scan.pdf", int64(300)).Return("https://signed", nil)

	url, err := f.svc.GetDownloadURL(ctx, f.actor, att.ID)

	require.NoError(t, err)
	assert.Equal(t, "https://signed", url)
}

func TestAttachmentService_GetDownloadURL_Pending(t *testing.T) {
	f := newAttachmentFixture()
	ctx := context.Background()
	att := &domain.EntryAttachment{ID: uuid.New(), FormEntryID: f.entry.ID, Status: domain.FileStatusPending}
	f.repo.On("GetByID", ctx, f.actor.TenantID, att.ID).Return(att, nil)
	f.expectEntry(ctx)

	_, err := f.svc.GetDownloadURL(ctx, f.actor, att.ID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.storage.AssertNotCalled(t, "GetPresignedURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAttachmentService_Delete(t *testing.T) {
	f := newAttachmentFixture()
	ctx := context.Background()
	att := &domain.EntryAttachment{ID: uuid.New(), FormEntryID: f.entry.ID, S3Bucket: "haccp-test", S3Key: "k", Status: domain.FileStatusUploaded}
	f.repo.On("GetByID", ctx, f.actor.TenantID, att.ID).Return(att, nil)
	f.expectEntry(ctx)
	f.storage.On("Delete", ctx, "haccp-test", "k").Return(nil)
	f.repo.On("Delete", ctx, f.actor.TenantID, att.ID).Return(nil)

	require.NoError(t, f.svc.Delete(ctx, f.actor, att.ID))
	f.storage.AssertExpectations(t)
	f.repo.AssertExpectations(t)
}

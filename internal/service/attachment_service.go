package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"haccp/internal/config"
	"haccp/internal/domain"
	"haccp/internal/port"
)

// AttachmentUploadInput is the DTO for attaching a file to an entry.
type AttachmentUploadInput struct {
	EntryID  uuid.UUID
	FileName string
	Size     int64
	File     io.ReadSeeker
}

// AttachmentService defines the entry attachment contract.
type AttachmentService interface {
	Upload(ctx context.Context, actor domain.Actor, input AttachmentUploadInput) (*domain.EntryAttachment, error)
	ListByEntry(ctx context.Context, actor domain.Actor, entryID uuid.UUID) ([]domain.EntryAttachment, error)
	GetDownloadURL(ctx context.Context, actor domain.Actor, attachmentID uuid.UUID) (string, error)
	Delete(ctx context.Context, actor domain.Actor, attachmentID uuid.UUID) error
}

type attachmentService struct {
	repo      port.AttachmentRepository
	entryRepo port.FormEntryRepository
	storage   port.ObjectStorage
	cfg       *config.S3Config
}

// NewAttachmentService creates a new AttachmentService implementation.
func NewAttachmentService(
	repo port.AttachmentRepository,
	entryRepo port.FormEntryRepository,
	storage port.ObjectStorage,
	cfg *config.S3Config,
) AttachmentService {
	return &attachmentService{
		repo:      repo,
		entryRepo: entryRepo,
		storage:   storage,
		cfg:       cfg,
	}
}

func (s *attachmentService) Upload(ctx context.Context, actor domain.Actor, input AttachmentUploadInput) (*domain.EntryAttachment, error) {
	entry, err := s.entryRepo.GetInMarket(ctx, actor.TenantID, actor.MarketID, input.EntryID)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.FileName), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Sniff the first 512 bytes; the extension alone is not trusted.
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	detected, valid := domain.AllowedContentTypes[http.DetectContentType(buf[:n])]
	if !valid || detected != fileType {
		return nil, domain.ErrUnsupportedFileType
	}
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	id := uuid.New()
	att := &domain.EntryAttachment{
		ID:          id,
		TenantID:    actor.TenantID,
		FormEntryID: entry.ID,
		FileName:    filepath.Base(input.FileName),
		FileType:    fileType,
		ContentType: domain.AllowedFileTypes[fileType],
		FileSize:    input.Size,
		S3Bucket:    s.cfg.Bucket,
		S3Key:       fmt.Sprintf("tenants/%s/entries/%s/%s.%s", actor.TenantID, entry.ID, id, fileType),
		Status:      domain.FileStatusPending,
		UploadedBy:  actor.StaffID,
	}

	if err := s.repo.Create(ctx, att); err != nil {
		return nil, fmt.Errorf("creating attachment metadata: %w", err)
	}

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      att.S3Bucket,
		Key:         att.S3Key,
		Body:        input.File,
		ContentType: att.ContentType,
		Size:        att.FileSize,
		FileName:    att.FileName,
		Metadata: map[string]string{
			"tenant-id": actor.TenantID.String(),
			"entry-id":  entry.ID.String(),
		},
	})
	if err != nil {
		zap.L().Error("attachment upload failed",
			zap.String("attachment_id", id.String()), zap.Error(err))
		_ = s.repo.UpdateStatus(ctx, att.TenantID, att.ID, domain.FileStatusFailed)
		return nil, domain.ErrUploadFailed
	}

	if err := s.repo.UpdateStatus(ctx, att.TenantID, att.ID, domain.FileStatusUploaded); err != nil {
		return nil, fmt.Errorf("updating attachment status: %w", err)
	}
	att.Status = domain.FileStatusUploaded
	return att, nil
}

func (s *attachmentService) ListByEntry(ctx context.Context, actor domain.Actor, entryID uuid.UUID) ([]domain.EntryAttachment, error) {
	if _, err := s.entryRepo.GetInMarket(ctx, actor.TenantID, actor.MarketID, entryID); err != nil {
		return nil, err
	}
	return s.repo.ListByEntry(ctx, actor.TenantID, entryID)
}

func (s *attachmentService) GetDownloadURL(ctx context.Context, actor domain.Actor, attachmentID uuid.UUID) (string, error) {
	att, err := s.repo.GetByID(ctx, actor.TenantID, attachmentID)
	if err != nil {
		return "", err
	}
	if _, err := s.entryRepo.GetInMarket(ctx, actor.TenantID, actor.MarketID, att.FormEntryID); err != nil {
		return "", err
	}
	if att.Status != domain.FileStatusUploaded {
		return "", domain.ErrNotFound
	}
	return s.storage.GetPresignedURL(ctx, att.S3Bucket, att.S3Key, att.FileName, s.cfg.PresignExpiry)
}

func (s *attachmentService) Delete(ctx context.Context, actor domain.Actor, attachmentID uuid.UUID) error {
	att, err := s.repo.GetByID(ctx, actor.TenantID, attachmentID)
	if err != nil {
		return err
	}
	if _, err := s.entryRepo.GetInMarket(ctx, actor.TenantID, actor.MarketID, att.FormEntryID); err != nil {
		return err
	}
	if att.Status == domain.FileStatusUploaded {
		if err := s.storage.Delete(ctx, att.S3Bucket, att.S3Key); err != nil {
			zap.L().Error("attachment delete failed",
				zap.String("attachment_id", att.ID.String()), zap.Error(err))
			return fmt.Errorf("deleting from storage: %w", err)
		}
	}
	return s.repo.Delete(ctx, actor.TenantID, attachmentID)
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"haccp/internal/domain"
	"haccp/internal/port"
)

type attachmentRepo struct {
	db *sqlx.DB
}

// NewAttachmentRepo creates a new PostgreSQL-backed AttachmentRepository.
func NewAttachmentRepo(db *sqlx.DB) port.AttachmentRepository {
	return &attachmentRepo{db: db}
}

func (r *attachmentRepo) Create(ctx context.Context, a *domain.EntryAttachment) error {
	a.CreatedAt = time.Now().UTC()

	query := `INSERT INTO entry_attachments (id, tenant_id, form_entry_id, file_name, file_type,
		content_type, file_size, s3_bucket, s3_key, status, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.TenantID, a.FormEntryID, a.FileName, a.FileType, a.ContentType, a.FileSize,
		a.S3Bucket, a.S3Key, a.Status, a.UploadedBy, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("attachmentRepo.Create: %w", err)
	}
	return nil
}

func (r *attachmentRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.EntryAttachment, error) {
	var a domain.EntryAttachment
	err := r.db.GetContext(ctx, &a,
		"SELECT * FROM entry_attachments WHERE id = $1 AND tenant_id = $2", id, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("attachmentRepo.GetByID: %w", err)
	}
	return &a, nil
}

func (r *attachmentRepo) ListByEntry(ctx context.Context, tenantID, entryID uuid.UUID) ([]domain.EntryAttachment, error) {
	var out []domain.EntryAttachment
	err := r.db.SelectContext(ctx, &out,
		`SELECT * FROM entry_attachments WHERE tenant_id = $1 AND form_entry_id = $2
		 ORDER BY created_at`,
		tenantID, entryID)
	if err != nil {
		return nil, fmt.Errorf("attachmentRepo.ListByEntry: %w", err)
	}
	return out, nil
}

func (r *attachmentRepo) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status domain.FileStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE entry_attachments SET status = $1 WHERE id = $2 AND tenant_id = $3",
		status, id, tenantID)
	if err != nil {
		return fmt.Errorf("attachmentRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *attachmentRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM entry_attachments WHERE id = $1 AND tenant_id = $2", id, tenantID)
	if err != nil {
		return fmt.Errorf("attachmentRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

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

type formEntryRepo struct {
	db *sqlx.DB
}

// NewFormEntryRepo creates a new PostgreSQL-backed FormEntryRepository.
func NewFormEntryRepo(db *sqlx.DB) port.FormEntryRepository {
	return &formEntryRepo{db: db}
}

func (r *formEntryRepo) CreateSigned(ctx context.Context, inst *domain.FormInstance, entry *domain.FormEntry, required int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("formEntryRepo.CreateSigned begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	now := time.Now().UTC()

	// The no-op update makes RETURNING yield the existing row on conflict.
	err = tx.GetContext(ctx, inst,
		`INSERT INTO form_instances (id, tenant_id, form_definition_id, market_id, period_ref,
			period_start, period_end, status, entry_count, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, $9, $9)
		 ON CONFLICT ON CONSTRAINT form_instances_period_key
		 DO UPDATE SET updated_at = EXCLUDED.updated_at
		 RETURNING *`,
		uuid.New(), inst.TenantID, inst.FormDefinitionID, inst.MarketID, inst.PeriodRef,
		inst.PeriodStart, inst.PeriodEnd, domain.InstanceOpen, now)
	if err != nil {
		return fmt.Errorf("formEntryRepo.CreateSigned instance: %w", err)
	}

	entry.ID = uuid.New()
	entry.TenantID = inst.TenantID
	entry.FormInstanceID = inst.ID
	entry.CreatedAt = now
	if entry.SignedAt.IsZero() {
		entry.SignedAt = now
	}
	if len(entry.Data) == 0 {
		entry.Data = []byte("{}")
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO form_entries (id, tenant_id, form_instance_id, entry_date, data, deviation,
			corrective_action, signed_by, signer_initials, signed_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		entry.ID, entry.TenantID, entry.FormInstanceID, entry.EntryDate, string(entry.Data),
		entry.Deviation, entry.CorrectiveAction, entry.SignedBy, entry.SignerInitials,
		entry.SignedAt, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("formEntryRepo.CreateSigned entry: %w", err)
	}

	err = tx.GetContext(ctx, inst,
		`UPDATE form_instances SET
			entry_count = entry_count + 1,
			status = CASE WHEN entry_count + 1 >= $2 THEN 'COMPLETED' ELSE status END,
			completed_at = CASE WHEN completed_at IS NULL AND entry_count + 1 >= $2 THEN $3 ELSE completed_at END,
			updated_at = $3
		 WHERE id = $1
		 RETURNING *`,
		inst.ID, required, now)
	if err != nil {
		return fmt.Errorf("formEntryRepo.CreateSigned complete: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("formEntryRepo.CreateSigned commit: %w", err)
	}
	return nil
}

func (r *formEntryRepo) GetByID(ctx context.Context, tenantID, entryID uuid.UUID) (*domain.FormEntry, error) {
	var entry domain.FormEntry
	err := r.db.GetContext(ctx, &entry,
		"SELECT * FROM form_entries WHERE id = $1 AND tenant_id = $2", entryID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("formEntryRepo.GetByID: %w", err)
	}
	return &entry, nil
}

func (r *formEntryRepo) GetInMarket(ctx context.Context, tenantID, marketID, entryID uuid.UUID) (*domain.FormEntry, error) {
	var entry domain.FormEntry
	err := r.db.GetContext(ctx, &entry,
		`SELECT e.* FROM form_entries e
		 JOIN form_instances i ON i.id = e.form_instance_id
		 WHERE e.id = $1 AND e.tenant_id = $2 AND i.market_id = $3`,
		entryID, tenantID, marketID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("formEntryRepo.GetInMarket: %w", err)
	}
	return &entry, nil
}

func (r *formEntryRepo) ListByInstance(ctx context.Context, tenantID, instanceID uuid.UUID) ([]domain.FormEntry, error) {
	var entries []domain.FormEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM form_entries WHERE tenant_id = $1 AND form_instance_id = $2
		 ORDER BY entry_date, signed_at`,
		tenantID, instanceID)
	if err != nil {
		return nil, fmt.Errorf("formEntryRepo.ListByInstance: %w", err)
	}
	return entries, nil
}

func (r *formEntryRepo) ListInRange(ctx context.Context, tenantID, marketID uuid.UUID, from, to time.Time) ([]domain.EntryRow, error) {
	var rows []domain.EntryRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT e.*, i.form_definition_id, i.period_ref
		 FROM form_entries e
		 JOIN form_instances i ON i.id = e.form_instance_id
		 WHERE e.tenant_id = $1 AND i.market_id = $2 AND e.entry_date >= $3 AND e.entry_date < $4
		 ORDER BY e.entry_date, e.signed_at`,
		tenantID, marketID, from, to)
	if err != nil {
		return nil, fmt.Errorf("formEntryRepo.ListInRange: %w", err)
	}
	return rows, nil
}

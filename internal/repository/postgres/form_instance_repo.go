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

type formInstanceRepo struct {
	db *sqlx.DB
}

// NewFormInstanceRepo creates a new PostgreSQL-backed FormInstanceRepository.
func NewFormInstanceRepo(db *sqlx.DB) port.FormInstanceRepository {
	return &formInstanceRepo{db: db}
}

func (r *formInstanceRepo) GetByRef(ctx context.Context, tenantID, formID, marketID uuid.UUID, periodRef string) (*domain.FormInstance, error) {
	var inst domain.FormInstance
	err := r.db.GetContext(ctx, &inst,
		`SELECT * FROM form_instances
		 WHERE tenant_id = $1 AND form_definition_id = $2 AND market_id = $3 AND period_ref = $4`,
		tenantID, formID, marketID, periodRef)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("formInstanceRepo.GetByRef: %w", err)
	}
	return &inst, nil
}

func (r *formInstanceRepo) ListStatusInRange(ctx context.Context, tenantID, marketID uuid.UUID, from, to time.Time) ([]domain.InstanceStatusRow, error) {
	var rows []domain.InstanceStatusRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT form_definition_id, period_ref, status, entry_count FROM form_instances
		 WHERE tenant_id = $1 AND market_id = $2 AND period_start < $4 AND period_end > $3`,
		tenantID, marketID, from, to)
	if err != nil {
		return nil, fmt.Errorf("formInstanceRepo.ListStatusInRange: %w", err)
	}
	return rows, nil
}

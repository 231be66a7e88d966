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

type dokuSectionRepo struct {
	db *sqlx.DB
}

// NewDokuSectionRepo creates a new PostgreSQL-backed DokuSectionRepository.
func NewDokuSectionRepo(db *sqlx.DB) port.DokuSectionRepository {
	return &dokuSectionRepo{db: db}
}

func (r *dokuSectionRepo) Create(ctx context.Context, s *domain.DokuSection) error {
	s.ID = uuid.New()
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now

	query := `INSERT INTO doku_sections (id, tenant_id, market_id, key, title, description,
		sort_order, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.TenantID, s.MarketID, s.Key, s.Title, s.Description,
		s.SortOrder, s.IsActive, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "doku_sections_key_unique") {
			return domain.ErrDuplicateKey
		}
		return fmt.Errorf("dokuSectionRepo.Create: %w", err)
	}
	return nil
}

func (r *dokuSectionRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.DokuSection, error) {
	var s domain.DokuSection
	err := r.db.GetContext(ctx, &s,
		"SELECT * FROM doku_sections WHERE id = $1 AND tenant_id = $2", id, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("dokuSectionRepo.GetByID: %w", err)
	}
	return &s, nil
}

func (r *dokuSectionRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.DokuSectionFilter) ([]domain.DokuSection, error) {
	var out []domain.DokuSection
	err := r.db.SelectContext(ctx, &out,
		`SELECT * FROM doku_sections
		 WHERE tenant_id = $1
		   AND ($2::uuid IS NULL OR market_id IS NULL OR market_id = $2)
		   AND (NOT $3 OR is_active)
		 ORDER BY sort_order, title`,
		tenantID, filter.VisibleIn, filter.ActiveOnly)
	if err != nil {
		return nil, fmt.Errorf("dokuSectionRepo.List: %w", err)
	}
	return out, nil
}

func (r *dokuSectionRepo) Update(ctx context.Context, s *domain.DokuSection) error {
	s.UpdatedAt = time.Now().UTC()
	query := `UPDATE doku_sections SET market_id = $1, key = $2, title = $3, description = $4,
		sort_order = $5, is_active = $6, updated_at = $7
		WHERE id = $8 AND tenant_id = $9`
	result, err := r.db.ExecContext(ctx, query,
		s.MarketID, s.Key, s.Title, s.Description, s.SortOrder, s.IsActive, s.UpdatedAt, s.ID, s.TenantID)
	if err != nil {
		if isUniqueViolation(err, "doku_sections_key_unique") {
			return domain.ErrDuplicateKey
		}
		return fmt.Errorf("dokuSectionRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *dokuSectionRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM doku_sections WHERE id = $1 AND tenant_id = $2", id, tenantID)
	if err != nil {
		return fmt.Errorf("dokuSectionRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

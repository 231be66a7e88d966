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

type formDefinitionRepo struct {
	db *sqlx.DB
}

// NewFormDefinitionRepo creates a new PostgreSQL-backed FormDefinitionRepository.
func NewFormDefinitionRepo(db *sqlx.DB) port.FormDefinitionRepository {
	return &formDefinitionRepo{db: db}
}

func (r *formDefinitionRepo) Create(ctx context.Context, def *domain.FormDefinition) error {
	def.ID = uuid.New()
	now := time.Now().UTC()
	def.CreatedAt = now
	def.UpdatedAt = now
	if len(def.Fields) == 0 {
		def.Fields = []byte("[]")
	}

	query := `INSERT INTO form_definitions (id, tenant_id, market_id, section_id, key, label, description,
		category, periodicity, required_entries, fields, sort_order, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.db.ExecContext(ctx, query,
		def.ID, def.TenantID, def.MarketID, def.SectionID, def.Key, def.Label, def.Description,
		def.Category, def.Periodicity, def.RequiredEntries, string(def.Fields), def.SortOrder,
		def.IsActive, def.CreatedAt, def.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "form_definitions_key_unique") {
			return domain.ErrDuplicateKey
		}
		return fmt.Errorf("formDefinitionRepo.Create: %w", err)
	}
	return nil
}

func (r *formDefinitionRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.FormDefinition, error) {
	var def domain.FormDefinition
	err := r.db.GetContext(ctx, &def,
		"SELECT * FROM form_definitions WHERE id = $1 AND tenant_id = $2", id, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("formDefinitionRepo.GetByID: %w", err)
	}
	return &def, nil
}

func (r *formDefinitionRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.FormDefinitionFilter) ([]domain.FormDefinition, error) {
	var out []domain.FormDefinition
	err := r.db.SelectContext(ctx, &out,
		`SELECT * FROM form_definitions
		 WHERE tenant_id = $1
		   AND ($2::uuid IS NULL OR market_id IS NULL OR market_id = $2)
		   AND ($3::uuid IS NULL OR section_id = $3)
		   AND ($4 = '' OR category = $4)
		   AND (NOT $5 OR is_active)
		 ORDER BY sort_order, label`,
		tenantID, filter.VisibleIn, filter.SectionID, string(filter.Category), filter.ActiveOnly)
	if err != nil {
		return nil, fmt.Errorf("formDefinitionRepo.List: %w", err)
	}
	return out, nil
}

func (r *formDefinitionRepo) Update(ctx context.Context, def *domain.FormDefinition) error {
	def.UpdatedAt = time.Now().UTC()
	if len(def.Fields) == 0 {
		def.Fields = []byte("[]")
	}
	query := `UPDATE form_definitions SET market_id = $1, section_id = $2, key = $3, label = $4,
		description = $5, category = $6, periodicity = $7, required_entries = $8, fields = $9,
		sort_order = $10, is_active = $11, updated_at = $12
		WHERE id = $13 AND tenant_id = $14`
	result, err := r.db.ExecContext(ctx, query,
		def.MarketID, def.SectionID, def.Key, def.Label, def.Description, def.Category,
		def.Periodicity, def.RequiredEntries, string(def.Fields), def.SortOrder, def.IsActive,
		def.UpdatedAt, def.ID, def.TenantID)
	if err != nil {
		if isUniqueViolation(err, "form_definitions_key_unique") {
			return domain.ErrDuplicateKey
		}
		return fmt.Errorf("formDefinitionRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *formDefinitionRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM form_definitions WHERE id = $1 AND tenant_id = $2", id, tenantID)
	return deleteResult(result, err, domain.ErrFormReferenced, "formDefinitionRepo.Delete")
}

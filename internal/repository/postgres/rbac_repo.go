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

type rbacRepo struct {
	db *sqlx.DB
}

// NewRbacRepo creates a new PostgreSQL-backed RbacRepository.
func NewRbacRepo(db *sqlx.DB) port.RbacRepository {
	return &rbacRepo{db: db}
}

func (r *rbacRepo) Create(ctx context.Context, a *domain.RbacAssignment) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now().UTC()

	query := `INSERT INTO rbac_assignments (id, tenant_id, staff_id, role, market_id, granted_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.TenantID, a.StaffID, a.Role, a.MarketID, a.GrantedBy, a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "rbac_assignments_unique_key") {
			return domain.ErrDuplicateAssignment
		}
		return fmt.Errorf("rbacRepo.Create: %w", err)
	}
	return nil
}

func (r *rbacRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.RbacAssignment, error) {
	var a domain.RbacAssignment
	err := r.db.GetContext(ctx, &a,
		"SELECT * FROM rbac_assignments WHERE id = $1 AND tenant_id = $2", id, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("rbacRepo.GetByID: %w", err)
	}
	return &a, nil
}

func (r *rbacRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.RbacAssignment, error) {
	var out []domain.RbacAssignment
	err := r.db.SelectContext(ctx, &out,
		"SELECT * FROM rbac_assignments WHERE tenant_id = $1 ORDER BY created_at", tenantID)
	if err != nil {
		return nil, fmt.Errorf("rbacRepo.ListByTenant: %w", err)
	}
	return out, nil
}

func (r *rbacRepo) ListByStaff(ctx context.Context, tenantID, staffID uuid.UUID) ([]domain.RbacAssignment, error) {
	var out []domain.RbacAssignment
	err := r.db.SelectContext(ctx, &out,
		"SELECT * FROM rbac_assignments WHERE tenant_id = $1 AND staff_id = $2 ORDER BY created_at",
		tenantID, staffID)
	if err != nil {
		return nil, fmt.Errorf("rbacRepo.ListByStaff: %w", err)
	}
	return out, nil
}

func (r *rbacRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM rbac_assignments WHERE id = $1 AND tenant_id = $2", id, tenantID)
	if err != nil {
		return fmt.Errorf("rbacRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

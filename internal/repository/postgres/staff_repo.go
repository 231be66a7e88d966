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

type staffRepo struct {
	db *sqlx.DB
}

// NewStaffRepo creates a new PostgreSQL-backed StaffRepository.
func NewStaffRepo(db *sqlx.DB) port.StaffRepository {
	return &staffRepo{db: db}
}

func (r *staffRepo) Create(ctx context.Context, staff *domain.StaffProfile) error {
	staff.ID = uuid.New()
	now := time.Now().UTC()
	staff.CreatedAt = now
	staff.UpdatedAt = now
	staff.PinChangedAt = now

	query := `INSERT INTO staff_profiles (id, tenant_id, market_id, first_name, last_name, initials,
		pin_hash, email, is_active, pin_changed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		staff.ID, staff.TenantID, staff.MarketID, staff.FirstName, staff.LastName, staff.Initials,
		staff.PinHash, staff.Email, staff.IsActive, staff.PinChangedAt, staff.CreatedAt, staff.UpdatedAt)
	if err != nil {
		return fmt.Errorf("staffRepo.Create: %w", err)
	}
	return nil
}

func (r *staffRepo) GetByID(ctx context.Context, tenantID, staffID uuid.UUID) (*domain.StaffProfile, error) {
	var staff domain.StaffProfile
	err := r.db.GetContext(ctx, &staff,
		"SELECT * FROM staff_profiles WHERE id = $1 AND tenant_id = $2", staffID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("staffRepo.GetByID: %w", err)
	}
	return &staff, nil
}

func (r *staffRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.StaffFilter) ([]domain.StaffProfile, int, error) {
	where := `WHERE tenant_id = $1 AND ($2::uuid IS NULL OR market_id IS NULL OR market_id = $2)
		AND (NOT $3 OR is_active)`

	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM staff_profiles "+where, tenantID, filter.MarketID, filter.ActiveOnly)
	if err != nil {
		return nil, 0, fmt.Errorf("staffRepo.List count: %w", err)
	}

	var staff []domain.StaffProfile
	err = r.db.SelectContext(ctx, &staff,
		"SELECT * FROM staff_profiles "+where+" ORDER BY last_name, first_name LIMIT $4 OFFSET $5",
		tenantID, filter.MarketID, filter.ActiveOnly, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("staffRepo.List: %w", err)
	}
	return staff, total, nil
}

func (r *staffRepo) ListActiveByInitials(ctx context.Context, tenantID uuid.UUID, initials string) ([]domain.StaffProfile, error) {
	var staff []domain.StaffProfile
	err := r.db.SelectContext(ctx, &staff,
		`SELECT * FROM staff_profiles WHERE tenant_id = $1 AND initials = $2 AND is_active`,
		tenantID, initials)
	if err != nil {
		return nil, fmt.Errorf("staffRepo.ListActiveByInitials: %w", err)
	}
	return staff, nil
}

func (r *staffRepo) ListSignatureCandidates(ctx context.Context, tenantID, marketID uuid.UUID, initials string) ([]domain.StaffProfile, error) {
	var staff []domain.StaffProfile
	err := r.db.SelectContext(ctx, &staff,
		`SELECT * FROM staff_profiles
		 WHERE tenant_id = $1 AND initials = $3 AND is_active
		   AND (market_id IS NULL OR market_id = $2)`,
		tenantID, marketID, initials)
	if err != nil {
		return nil, fmt.Errorf("staffRepo.ListSignatureCandidates: %w", err)
	}
	return staff, nil
}

func (r *staffRepo) ListMarketAdmins(ctx context.Context, tenantID, marketID uuid.UUID) ([]domain.StaffProfile, error) {
	var staff []domain.StaffProfile
	err := r.db.SelectContext(ctx, &staff,
		`SELECT DISTINCT s.* FROM staff_profiles s
		 JOIN rbac_assignments a ON a.staff_id = s.id AND a.tenant_id = s.tenant_id
		 WHERE s.tenant_id = $1 AND s.is_active AND s.email IS NOT NULL AND s.email <> ''
		   AND (a.role = 'SUPERADMIN' OR (a.role = 'ADMIN' AND (a.market_id IS NULL OR a.market_id = $2)))`,
		tenantID, marketID)
	if err != nil {
		return nil, fmt.Errorf("staffRepo.ListMarketAdmins: %w", err)
	}
	return staff, nil
}

func (r *staffRepo) Update(ctx context.Context, staff *domain.StaffProfile) error {
	staff.UpdatedAt = time.Now().UTC()
	query := `UPDATE staff_profiles SET market_id = $1, first_name = $2, last_name = $3, initials = $4,
		email = $5, is_active = $6, updated_at = $7
		WHERE id = $8 AND tenant_id = $9`
	result, err := r.db.ExecContext(ctx, query,
		staff.MarketID, staff.FirstName, staff.LastName, staff.Initials,
		staff.Email, staff.IsActive, staff.UpdatedAt, staff.ID, staff.TenantID)
	if err != nil {
		return fmt.Errorf("staffRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *staffRepo) UpdatePIN(ctx context.Context, tenantID, staffID uuid.UUID, pinHash string) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE staff_profiles SET pin_hash = $1, pin_changed_at = $2, updated_at = $2
		 WHERE id = $3 AND tenant_id = $4`,
		pinHash, now, staffID, tenantID)
	if err != nil {
		return fmt.Errorf("staffRepo.UpdatePIN: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *staffRepo) Delete(ctx context.Context, tenantID, staffID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM staff_profiles WHERE id = $1 AND tenant_id = $2", staffID, tenantID)
	return deleteResult(result, err, domain.ErrStaffReferenced, "staffRepo.Delete")
}

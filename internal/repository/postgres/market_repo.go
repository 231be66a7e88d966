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

type marketRepo struct {
	db *sqlx.DB
}

// NewMarketRepo creates a new PostgreSQL-backed MarketRepository.
func NewMarketRepo(db *sqlx.DB) port.MarketRepository {
	return &marketRepo{db: db}
}

func (r *marketRepo) Create(ctx context.Context, market *domain.Market) error {
	market.ID = uuid.New()
	now := time.Now().UTC()
	market.CreatedAt = now
	market.UpdatedAt = now

	query := `INSERT INTO markets (id, tenant_id, name, code, address, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		market.ID, market.TenantID, market.Name, market.Code, market.Address,
		market.IsActive, market.CreatedAt, market.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "markets_tenant_code_key") {
			return domain.ErrDuplicateMarketCode
		}
		return fmt.Errorf("marketRepo.Create: %w", err)
	}
	return nil
}

func (r *marketRepo) GetByID(ctx context.Context, tenantID, marketID uuid.UUID) (*domain.Market, error) {
	var market domain.Market
	err := r.db.GetContext(ctx, &market,
		"SELECT * FROM markets WHERE id = $1 AND tenant_id = $2", marketID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("marketRepo.GetByID: %w", err)
	}
	return &market, nil
}

func (r *marketRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]domain.Market, error) {
	var markets []domain.Market
	err := r.db.SelectContext(ctx, &markets,
		`SELECT * FROM markets WHERE tenant_id = $1 AND (NOT $2 OR is_active)
		 ORDER BY name`, tenantID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("marketRepo.ListByTenant: %w", err)
	}
	return markets, nil
}

func (r *marketRepo) Update(ctx context.Context, market *domain.Market) error {
	market.UpdatedAt = time.Now().UTC()
	query := `UPDATE markets SET name = $1, code = $2, address = $3, is_active = $4, updated_at = $5
		WHERE id = $6 AND tenant_id = $7`
	result, err := r.db.ExecContext(ctx, query,
		market.Name, market.Code, market.Address, market.IsActive, market.UpdatedAt, market.ID, market.TenantID)
	if err != nil {
		if isUniqueViolation(err, "markets_tenant_code_key") {
			return domain.ErrDuplicateMarketCode
		}
		return fmt.Errorf("marketRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *marketRepo) Delete(ctx context.Context, tenantID, marketID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM markets WHERE id = $1 AND tenant_id = $2", marketID, tenantID)
	return deleteResult(result, err, domain.ErrMarketReferenced, "marketRepo.Delete")
}

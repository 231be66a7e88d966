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

type myMarketRepo struct {
	db *sqlx.DB
}

// NewMyMarketRepo creates a new PostgreSQL-backed MyMarketRepository.
func NewMyMarketRepo(db *sqlx.DB) port.MyMarketRepository {
	return &myMarketRepo{db: db}
}

func (r *myMarketRepo) Get(ctx context.Context, tenantID, staffID uuid.UUID) (*domain.MyMarket, error) {
	var m domain.MyMarket
	err := r.db.GetContext(ctx, &m,
		"SELECT * FROM my_markets WHERE staff_id = $1 AND tenant_id = $2", staffID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("myMarketRepo.Get: %w", err)
	}
	return &m, nil
}

func (r *myMarketRepo) Set(ctx context.Context, m *domain.MyMarket) error {
	m.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO my_markets (staff_id, tenant_id, market_id, updated_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (staff_id) DO UPDATE SET market_id = EXCLUDED.market_id, updated_at = EXCLUDED.updated_at`,
		m.StaffID, m.TenantID, m.MarketID, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("myMarketRepo.Set: %w", err)
	}
	return nil
}

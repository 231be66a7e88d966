package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"haccp/internal/domain"
	"haccp/internal/port"
)

type reminderRepo struct {
	db *sqlx.DB
}

// NewReminderRepo creates a new PostgreSQL-backed ReminderRepository.
func NewReminderRepo(db *sqlx.DB) port.ReminderRepository {
	return &reminderRepo{db: db}
}

func (r *reminderRepo) MarkSent(ctx context.Context, check domain.MissedCheck) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO reminder_log (tenant_id, market_id, form_definition_id, period_ref, sent_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT DO NOTHING`,
		check.TenantID, check.MarketID, check.FormID, check.PeriodRef, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("reminderRepo.MarkSent: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

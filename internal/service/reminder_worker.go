package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"haccp/internal/domain"
	"haccp/internal/period"
	"haccp/internal/port"
)

// ReminderConfig holds settings for the reminder worker.
type ReminderConfig struct {
	PollInterval time.Duration
	Concurrency  int
}

// ReminderWorker periodically reports forms whose previous period was not
// completed to the admins of each market.
type ReminderWorker struct {
	tenantRepo   port.TenantRepository
	marketRepo   port.MarketRepository
	formRepo     port.FormDefinitionRepository
	instanceRepo port.FormInstanceRepository
	staffRepo    port.StaffRepository
	reminderRepo port.ReminderRepository
	sender       port.EmailSender
	cfg          ReminderConfig
	fallbackLoc  *time.Location
}

// NewReminderWorker creates a new ReminderWorker.
func NewReminderWorker(
	tenantRepo port.TenantRepository,
	marketRepo port.MarketRepository,
	formRepo port.FormDefinitionRepository,
	instanceRepo port.FormInstanceRepository,
	staffRepo port.StaffRepository,
	reminderRepo port.ReminderRepository,
	sender port.EmailSender,
	cfg ReminderConfig,
	fallbackLoc *time.Location,
) *ReminderWorker {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &ReminderWorker{
		tenantRepo:   tenantRepo,
		marketRepo:   marketRepo,
		formRepo:     formRepo,
		instanceRepo: instanceRepo,
		staffRepo:    staffRepo,
		reminderRepo: reminderRepo,
		sender:       sender,
		cfg:          cfg,
		fallbackLoc:  fallbackLoc,
	}
}

// Start runs the polling loop until ctx is canceled. A sweep in progress is
// finished before Start returns.
func (w *ReminderWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	log := zap.L().Named("reminders")
	log.Info("reminder worker started",
		zap.Duration("poll", w.cfg.PollInterval), zap.Int("concurrency", w.cfg.Concurrency))

	for {
		select {
		case <-ctx.Done():
			log.Info("reminder worker stopped")
			return
		case <-ticker.C:
			if err := w.RunOnce(ctx); err != nil && ctx.Err() == nil {
				log.Error("reminder sweep failed", zap.Error(err))
			}
		}
	}
}

// RunOnce checks every active market of every active tenant once. A tenant
// whose markets cannot be listed is skipped and its error returned after the
// remaining checks finish.
func (w *ReminderWorker) RunOnce(ctx context.Context) error {
	tenants, err := w.tenantRepo.ListActive(ctx)
	if err != nil {
		return err
	}

	var g errgroup.Group
	g.SetLimit(w.cfg.Concurrency)

	var listErr error
	for i := range tenants {
		tenant := tenants[i]
		markets, err := w.marketRepo.ListByTenant(ctx, tenant.ID, true)
		if err != nil {
			if listErr == nil {
				listErr = fmt.Errorf("listing markets of %s: %w", tenant.Slug, err)
			}
			continue
		}
		today := period.Today(w.location(tenant.Timezone), time.Now())
		for j := range markets {
			market := markets[j]
			g.Go(func() error {
				if err := w.checkMarket(ctx, &tenant, &market, today); err != nil {
					// One failing market must not stop the sweep.
					zap.L().Named("reminders").Error("market check failed",
						zap.String("tenant", tenant.Slug),
						zap.String("market", market.Code),
						zap.Error(err))
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return listErr
}

func (w *ReminderWorker) location(tz string) *time.Location {
	if loc, err := time.LoadLocation(tz); err == nil && tz != "" {
		return loc
	}
	if w.fallbackLoc != nil {
		return w.fallbackLoc
	}
	return time.UTC
}

// MissedChecks returns the visible active forms of market whose period before
// today's is not done.
func (w *ReminderWorker) MissedChecks(ctx context.Context, tenantID uuid.UUID, market *domain.Market, today time.Time) ([]domain.MissedCheck, error) {
	marketID := market.ID
	forms, err := w.formRepo.List(ctx, tenantID, port.FormDefinitionFilter{VisibleIn: &marketID, ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	if len(forms) == 0 {
		return nil, nil
	}

	prev := make([]period.Period, len(forms))
	from, to := today, today
	for i := range forms {
		prev[i] = period.Of(forms[i].Periodicity, today).Prev()
		if prev[i].Start.Before(from) {
			from = prev[i].Start
		}
	}

	rows, err := w.instanceRepo.ListStatusInRange(ctx, tenantID, marketID, from, to)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.FormDefinitionID.String()+"/"+r.PeriodRef] = r.EntryCount
	}

	var missed []domain.MissedCheck
	for i := range forms {
		f := &forms[i]
		// Forms created after the period ended had nothing to document.
		if !f.CreatedAt.Before(prev[i].End) {
			continue
		}
		if counts[f.ID.String()+"/"+prev[i].Ref] >= f.RequiredEntries {
			continue
		}
		missed = append(missed, domain.MissedCheck{
			TenantID:  tenantID,
			MarketID:  marketID,
			FormID:    f.ID,
			FormLabel: f.Label,
			PeriodRef: prev[i].Ref,
			Label:     prev[i].Label(),
		})
	}
	return missed, nil
}

func (w *ReminderWorker) checkMarket(ctx context.Context, tenant *domain.Tenant, market *domain.Market, today time.Time) error {
	missed, err := w.MissedChecks(ctx, tenant.ID, market, today)
	if err != nil {
		return err
	}

	var fresh []domain.MissedCheck
	for _, m := range missed {
		isNew, err := w.reminderRepo.MarkSent(ctx, m)
		if err != nil {
			return err
		}
		if isNew {
			fresh = append(fresh, m)
		}
	}
	if len(fresh) == 0 {
		return nil
	}

	admins, err := w.staffRepo.ListMarketAdmins(ctx, tenant.ID, market.ID)
	if err != nil {
		return err
	}
	digest := port.MissedChecksDigest{
		TenantName: tenant.Name,
		MarketName: market.Name,
		Checks:     fresh,
	}
	for i := range admins {
		a := &admins[i]
		if a.Email == nil {
			continue
		}
		to := port.Recipient{Email: *a.Email, Name: a.FullName()}
		if err := w.sender.SendMissedChecksDigest(ctx, to, digest); err != nil {
			zap.L().Named("reminders").Warn("digest delivery failed",
				zap.String("market", market.Code), zap.String("to", to.Email), zap.Error(err))
		}
	}
	zap.L().Named("reminders").Info("missed checks reported",
		zap.String("tenant", tenant.Slug),
		zap.String("market", market.Code),
		zap.Int("checks", len(fresh)),
		zap.Int("recipients", len(admins)))
	return nil
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"haccp/internal/config"
	"haccp/internal/domain"
	"haccp/internal/period"
	"haccp/internal/port"
)

// SubmitEntryInput is the DTO for signing a new form entry.
type SubmitEntryInput struct {
	EntryDate        string          `json:"entry_date" example:"2025-11-03"`
	Data             json.RawMessage `json:"data" swaggertype:"object"`
	CorrectiveAction string          `json:"corrective_action"`
	Initials         string          `json:"initials" binding:"required"`
	PIN              string          `json:"pin" binding:"required"`
}

// SubmitResult is the outcome of a signed entry.
type SubmitResult struct {
	Entry      *domain.FormEntry    `json:"entry"`
	Instance   *domain.FormInstance `json:"instance"`
	Period     period.Period        `json:"period"`
	Deviations []string             `json:"deviations"`
}

// InstanceView is one period of a form with its entries.
type InstanceView struct {
	Form     *domain.FormDefinition `json:"form"`
	Period   period.Period          `json:"period"`
	Label    string                 `json:"label"`
	Instance *domain.FormInstance   `json:"instance"`
	Entries  []domain.FormEntry     `json:"entries"`
	Done     bool                   `json:"done"`
}

// CalendarDay is one cell of a form's month grid.
type CalendarDay struct {
	Date       string `json:"date"`
	PeriodRef  string `json:"period_ref"`
	EntryCount int    `json:"entry_count"`
	Required   int    `json:"required"`
	Done       bool   `json:"done"`
	Future     bool   `json:"future"`
	Today      bool   `json:"today"`
}

// CalendarView is a form's month grid.
type CalendarView struct {
	Form  *domain.FormDefinition `json:"form"`
	Month period.Period          `json:"month"`
	Label string                 `json:"label"`
	Prev  string                 `json:"prev"`
	Next  string                 `json:"next"`
	Days  []CalendarDay          `json:"days"`
}

// EntryService defines the contract for signing and reading form entries.
type EntryService interface {
	Submit(ctx context.Context, actor domain.Actor, formID uuid.UUID, input SubmitEntryInput) (*SubmitResult, error)
	GetInstance(ctx context.Context, actor domain.Actor, formID uuid.UUID, ref string) (*InstanceView, error)
	Calendar(ctx context.Context, actor domain.Actor, formID uuid.UUID, month string) (*CalendarView, error)
	// GetEntry returns an entry of the actor's market.
	GetEntry(ctx context.Context, actor domain.Actor, entryID uuid.UUID) (*domain.FormEntry, error)
}

type entryService struct {
	formRepo     port.FormDefinitionRepository
	instanceRepo port.FormInstanceRepository
	entryRepo    port.FormEntryRepository
	tenantRepo   port.TenantRepository
	staff        StaffService
	cfg          config.EntriesConfig
	fallbackLoc  *time.Location
}

// NewEntryService creates a new EntryService implementation.
func NewEntryService(
	formRepo port.FormDefinitionRepository,
	instanceRepo port.FormInstanceRepository,
	entryRepo port.FormEntryRepository,
	tenantRepo port.TenantRepository,
	staff StaffService,
	cfg config.EntriesConfig,
	fallbackLoc *time.Location,
) EntryService {
	return &entryService{
		formRepo:     formRepo,
		instanceRepo: instanceRepo,
		entryRepo:    entryRepo,
		tenantRepo:   tenantRepo,
		staff:        staff,
		cfg:          cfg,
		fallbackLoc:  fallbackLoc,
	}
}

func (s *entryService) Submit(ctx context.Context, actor domain.Actor, formID uuid.UUID, input SubmitEntryInput) (*SubmitResult, error) {
	form, err := visibleForm(ctx, s.formRepo, actor, formID)
	if err != nil {
		return nil, err
	}
	if !form.IsActive {
		return nil, domain.ErrFormInactive
	}

	loc, err := tenantLocation(ctx, s.tenantRepo, actor.TenantID, s.fallbackLoc)
	if err != nil {
		return nil, err
	}
	today := period.Today(loc, time.Now())
	entryDate, err := s.entryDate(input.EntryDate, today)
	if err != nil {
		return nil, err
	}

	defs, err := domain.ParseFields(form.Fields)
	if err != nil {
		return nil, fmt.Errorf("entry.Submit: form %s: %w", form.ID, err)
	}
	data := input.Data
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}
	check, err := domain.ValidateEntryData(defs, data)
	if err != nil {
		return nil, err
	}
	corrective := strings.TrimSpace(input.CorrectiveAction)
	deviation := len(check.Deviations) > 0
	if deviation && corrective == "" {
		return nil, domain.ErrCorrectiveActionNeeded
	}

	signer, err := s.staff.VerifySignature(ctx, actor.TenantID, actor.MarketID, input.Initials, input.PIN)
	if err != nil {
		return nil, err
	}

	pd := period.Of(form.Periodicity, entryDate)
	inst := &domain.FormInstance{
		TenantID:         actor.TenantID,
		FormDefinitionID: form.ID,
		MarketID:         actor.MarketID,
		PeriodRef:        pd.Ref,
		PeriodStart:      pd.Start,
		PeriodEnd:        pd.End,
	}
	entry := &domain.FormEntry{
		EntryDate:        entryDate,
		Data:             data,
		Deviation:        deviation,
		CorrectiveAction: corrective,
		SignedBy:         signer.ID,
		SignerInitials:   signer.Initials,
		SignedAt:         time.Now().UTC(),
	}
	if err := s.entryRepo.CreateSigned(ctx, inst, entry, form.RequiredEntries); err != nil {
		return nil, err
	}

	zap.L().Info("entry signed",
		zap.String("tenant_id", actor.TenantID.String()),
		zap.String("market_id", actor.MarketID.String()),
		zap.String("form", form.Key),
		zap.String("period_ref", pd.Ref),
		zap.String("signer", signer.Initials),
		zap.Bool("deviation", deviation),
		zap.String("status", string(inst.Status)),
	)

	return &SubmitResult{
		Entry:      entry,
		Instance:   inst,
		Period:     pd,
		Deviations: check.Deviations,
	}, nil
}

// entryDate parses the requested date, defaulting to today, and enforces the
// backdating window.
func (s *entryService) entryDate(raw string, today time.Time) (time.Time, error) {
	if raw == "" {
		return today, nil
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, domain.ErrInvalidDate
	}
	if d.After(today) {
		return time.Time{}, domain.ErrFutureEntry
	}
	if s.cfg.MaxBackdateDays > 0 && d.Before(today.AddDate(0, 0, -s.cfg.MaxBackdateDays)) {
		return time.Time{}, domain.ErrEntryTooOld
	}
	return d, nil
}

func (s *entryService) GetInstance(ctx context.Context, actor domain.Actor, formID uuid.UUID, ref string) (*InstanceView, error) {
	form, err := visibleForm(ctx, s.formRepo, actor, formID)
	if err != nil {
		return nil, err
	}

	var pd period.Period
	if ref == "" || ref == "current" {
		loc, err := tenantLocation(ctx, s.tenantRepo, actor.TenantID, s.fallbackLoc)
		if err != nil {
			return nil, err
		}
		pd = period.Of(form.Periodicity, period.Today(loc, time.Now()))
	} else {
		pd, err = period.Parse(form.Periodicity, ref)
		if err != nil {
			return nil, domain.ErrInvalidPeriodRef
		}
	}

	view := &InstanceView{
		Form:    form,
		Period:  pd,
		Label:   pd.Label(),
		Entries: []domain.FormEntry{},
	}

	inst, err := s.instanceRepo.GetByRef(ctx, actor.TenantID, form.ID, actor.MarketID, pd.Ref)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		view.Instance = &domain.FormInstance{
			TenantID:         actor.TenantID,
			FormDefinitionID: form.ID,
			MarketID:         actor.MarketID,
			PeriodRef:        pd.Ref,
			PeriodStart:      pd.Start,
			PeriodEnd:        pd.End,
			Status:           domain.InstanceOpen,
		}
		return view, nil
	case err != nil:
		return nil, err
	}

	entries, err := s.entryRepo.ListByInstance(ctx, actor.TenantID, inst.ID)
	if err != nil {
		return nil, err
	}
	view.Instance = inst
	if entries != nil {
		view.Entries = entries
	}
	view.Done = inst.EntryCount >= form.RequiredEntries
	return view, nil
}

func (s *entryService) Calendar(ctx context.Context, actor domain.Actor, formID uuid.UUID, month string) (*CalendarView, error) {
	form, err := visibleForm(ctx, s.formRepo, actor, formID)
	if err != nil {
		return nil, err
	}
	loc, err := tenantLocation(ctx, s.tenantRepo, actor.TenantID, s.fallbackLoc)
	if err != nil {
		return nil, err
	}
	today := period.Today(loc, time.Now())

	var m period.Period
	if month == "" {
		m = period.Of(period.Monthly, today)
	} else {
		m, err = period.Parse(period.Monthly, month)
		if err != nil {
			return nil, domain.ErrInvalidPeriodRef
		}
	}

	rows, err := s.instanceRepo.ListStatusInRange(ctx, actor.TenantID, actor.MarketID, m.Start, m.End)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, r := range rows {
		if r.FormDefinitionID == form.ID {
			counts[r.PeriodRef] = r.EntryCount
		}
	}

	days := m.Days()
	view := &CalendarView{
		Form:  form,
		Month: m,
		Label: m.Label(),
		Prev:  m.Prev().Ref,
		Next:  m.Next().Ref,
		Days:  make([]CalendarDay, 0, len(days)),
	}
	for _, d := range days {
		ref := period.Ref(form.Periodicity, d)
		n := counts[ref]
		view.Days = append(view.Days, CalendarDay{
			Date:       d.Format("2006-01-02"),
			PeriodRef:  ref,
			EntryCount: n,
			Required:   form.RequiredEntries,
			Done:       n >= form.RequiredEntries,
			Future:     d.After(today),
			Today:      d.Equal(today),
		})
	}
	return view, nil
}

func (s *entryService) GetEntry(ctx context.Context, actor domain.Actor, entryID uuid.UUID) (*domain.FormEntry, error) {
	return s.entryRepo.GetInMarket(ctx, actor.TenantID, actor.MarketID, entryID)
}

// visibleForm loads a definition and applies the global-or-market rule.
func visibleForm(ctx context.Context, repo port.FormDefinitionRepository, actor domain.Actor, id uuid.UUID) (*domain.FormDefinition, error) {
	form, err := repo.GetByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	if !domain.VisibleIn(form.MarketID, actor.MarketID) {
		return nil, domain.ErrNotFound
	}
	return form, nil
}

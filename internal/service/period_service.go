package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"haccp/internal/domain"
	"haccp/internal/period"
	"haccp/internal/port"
)

// PeriodQuery selects a period either by reference or by a date inside it.
// With neither set, the period containing today (tenant timezone) is used.
type PeriodQuery struct {
	Periodicity string
	Date        string
	Ref         string
}

// PeriodView describes a period together with its neighbours.
type PeriodView struct {
	Periodicity period.Periodicity `json:"periodicity"`
	Ref         string             `json:"ref"`
	Label       string             `json:"label"`
	Start       string             `json:"start"`
	LastDay     string             `json:"last_day"`
	Prev        string             `json:"prev"`
	Next        string             `json:"next"`
	Current     bool               `json:"current"`
}

// PeriodService resolves period references for navigation.
type PeriodService interface {
	Resolve(ctx context.Context, tenantID uuid.UUID, q PeriodQuery) (*PeriodView, error)
}

type periodService struct {
	tenantRepo  port.TenantRepository
	fallbackLoc *time.Location
}

// NewPeriodService creates a new PeriodService.
func NewPeriodService(tenantRepo port.TenantRepository, fallbackLoc *time.Location) PeriodService {
	return &periodService{tenantRepo: tenantRepo, fallbackLoc: fallbackLoc}
}

func (s *periodService) Resolve(ctx context.Context, tenantID uuid.UUID, q PeriodQuery) (*PeriodView, error) {
	loc, err := tenantLocation(ctx, s.tenantRepo, tenantID, s.fallbackLoc)
	if err != nil {
		return nil, err
	}
	today := period.Today(loc, time.Now())

	var pd period.Period
	switch {
	case q.Ref != "" && q.Periodicity == "":
		pd, err = period.Detect(q.Ref)
		if err != nil {
			return nil, domain.ErrInvalidPeriodRef
		}
	default:
		p := period.Monthly
		if q.Periodicity != "" {
			p, err = period.ParsePeriodicity(q.Periodicity)
			if err != nil {
				return nil, domain.ErrInvalidPeriodicity
			}
		}
		switch {
		case q.Ref != "":
			pd, err = period.Parse(p, q.Ref)
			if err != nil {
				return nil, domain.ErrInvalidPeriodRef
			}
		case q.Date != "":
			d, err := time.Parse("2006-01-02", q.Date)
			if err != nil {
				return nil, domain.ErrInvalidDate
			}
			pd = period.Of(p, d)
		default:
			pd = period.Of(p, today)
		}
	}

	return &PeriodView{
		Periodicity: pd.Periodicity,
		Ref:         pd.Ref,
		Label:       pd.Label(),
		Start:       pd.Start.Format("2006-01-02"),
		LastDay:     pd.LastDay().Format("2006-01-02"),
		Prev:        pd.Prev().Ref,
		Next:        pd.Next().Ref,
		Current:     pd.Contains(today),
	}, nil
}

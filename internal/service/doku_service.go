package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"haccp/internal/domain"
	"haccp/internal/period"
	"haccp/internal/port"
)

// OtherSectionKey identifies the synthetic section holding forms without one.
const OtherSectionKey = "sonstiges"

const otherSectionTitle = "Sonstiges"

// DokuQuery selects the Dokumentation view.
type DokuQuery struct {
	View           string
	Ref            string
	SectionID      *uuid.UUID
	IncludeEntries bool
}

// DokuSlot is one period of a form inside the view period.
type DokuSlot struct {
	Ref        string             `json:"ref"`
	Label      string             `json:"label"`
	Start      time.Time          `json:"start"`
	LastDay    time.Time          `json:"last_day"`
	EntryCount int                `json:"entry_count"`
	Required   int                `json:"required"`
	Done       bool               `json:"done"`
	Future     bool               `json:"future"`
	Entries    []domain.FormEntry `json:"entries,omitempty"`
}

// DokuForm is a form with its slots. Total counts slots that have started.
type DokuForm struct {
	ID          uuid.UUID           `json:"id"`
	Key         string              `json:"key"`
	Label       string              `json:"label"`
	Category    domain.FormCategory `json:"category"`
	Periodicity domain.Periodicity  `json:"periodicity"`
	Slots       []DokuSlot          `json:"slots"`
	Done        int                 `json:"done"`
	Total       int                 `json:"total"`
}

// DokuSectionView groups forms under a section.
type DokuSectionView struct {
	ID    *uuid.UUID `json:"id"`
	Key   string     `json:"key"`
	Title string     `json:"title"`
	Forms []DokuForm `json:"forms"`
	Done  int        `json:"done"`
	Total int        `json:"total"`
}

// DokuOverview is the aggregated Dokumentation for one view period.
type DokuOverview struct {
	View     period.Period     `json:"view"`
	Label    string            `json:"label"`
	Prev     string            `json:"prev"`
	Next     string            `json:"next"`
	Sections []DokuSectionView `json:"sections"`
	Done     int               `json:"done"`
	Total    int               `json:"total"`
}

// DokuRow is one slot flattened for exports.
type DokuRow struct {
	Section     string
	FormKey     string
	FormLabel   string
	Category    domain.FormCategory
	Periodicity domain.Periodicity
	PeriodRef   string
	PeriodLabel string
	Start       time.Time
	LastDay     time.Time
	EntryCount  int
	Required    int
	Done        bool
	Future      bool
}

// Rows flattens the overview into one row per slot.
func (o *DokuOverview) Rows() []DokuRow {
	var rows []DokuRow
	for i := range o.Sections {
		rows = append(rows, o.Sections[i].Rows()...)
	}
	return rows
}

// Rows flattens one section into one row per slot.
func (sec *DokuSectionView) Rows() []DokuRow {
	var rows []DokuRow
	for _, f := range sec.Forms {
		for _, sl := range f.Slots {
			rows = append(rows, DokuRow{
				Section:     sec.Title,
				FormKey:     f.Key,
				FormLabel:   f.Label,
				Category:    f.Category,
				Periodicity: f.Periodicity,
				PeriodRef:   sl.Ref,
				PeriodLabel: sl.Label,
				Start:       sl.Start,
				LastDay:     sl.LastDay,
				EntryCount:  sl.EntryCount,
				Required:    sl.Required,
				Done:        sl.Done,
				Future:      sl.Future,
			})
		}
	}
	return rows
}

// DokuService aggregates entries for the read-only Dokumentation area.
type DokuService interface {
	Overview(ctx context.Context, actor domain.Actor, q DokuQuery) (*DokuOverview, error)
}

type dokuService struct {
	sectionRepo  port.DokuSectionRepository
	formRepo     port.FormDefinitionRepository
	instanceRepo port.FormInstanceRepository
	entryRepo    port.FormEntryRepository
	tenantRepo   port.TenantRepository
	fallbackLoc  *time.Location
}

// NewDokuService creates a new DokuService implementation.
func NewDokuService(
	sectionRepo port.DokuSectionRepository,
	formRepo port.FormDefinitionRepository,
	instanceRepo port.FormInstanceRepository,
	entryRepo port.FormEntryRepository,
	tenantRepo port.TenantRepository,
	fallbackLoc *time.Location,
) DokuService {
	return &dokuService{
		sectionRepo:  sectionRepo,
		formRepo:     formRepo,
		instanceRepo: instanceRepo,
		entryRepo:    entryRepo,
		tenantRepo:   tenantRepo,
		fallbackLoc:  fallbackLoc,
	}
}

func (s *dokuService) Overview(ctx context.Context, actor domain.Actor, q DokuQuery) (*DokuOverview, error) {
	loc, err := tenantLocation(ctx, s.tenantRepo, actor.TenantID, s.fallbackLoc)
	if err != nil {
		return nil, err
	}
	today := period.Today(loc, time.Now())

	view, err := resolveView(q.View, q.Ref, today)
	if err != nil {
		return nil, err
	}

	marketID := actor.MarketID
	sections, err := s.sectionRepo.List(ctx, actor.TenantID, port.DokuSectionFilter{VisibleIn: &marketID, ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	if q.SectionID != nil {
		sections = filterSection(sections, *q.SectionID)
		if len(sections) == 0 {
			return nil, domain.ErrNotFound
		}
	}
	forms, err := s.formRepo.List(ctx, actor.TenantID, port.FormDefinitionFilter{
		VisibleIn:  &marketID,
		SectionID:  q.SectionID,
		ActiveOnly: true,
	})
	if err != nil {
		return nil, err
	}
	forms = formsInSections(forms, sections)

	// Slots of coarser forms extend past the view; query their full span.
	slotsByForm := make(map[uuid.UUID][]period.Period, len(forms))
	from, to := view.Start, view.End
	for i := range forms {
		slots := period.Overlapping(forms[i].Periodicity, view.Start, view.End)
		slotsByForm[forms[i].ID] = slots
		for _, sl := range slots {
			if sl.Start.Before(from) {
				from = sl.Start
			}
			if sl.End.After(to) {
				to = sl.End
			}
		}
	}

	counts := make(map[uuid.UUID]map[string]int)
	statuses, err := s.instanceRepo.ListStatusInRange(ctx, actor.TenantID, marketID, from, to)
	if err != nil {
		return nil, err
	}
	for _, r := range statuses {
		if counts[r.FormDefinitionID] == nil {
			counts[r.FormDefinitionID] = make(map[string]int)
		}
		counts[r.FormDefinitionID][r.PeriodRef] = r.EntryCount
	}

	entries := make(map[uuid.UUID]map[string][]domain.FormEntry)
	if q.IncludeEntries {
		rows, err := s.entryRepo.ListInRange(ctx, actor.TenantID, marketID, from, to)
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			if entries[r.FormDefinitionID] == nil {
				entries[r.FormDefinitionID] = make(map[string][]domain.FormEntry)
			}
			entries[r.FormDefinitionID][r.PeriodRef] = append(entries[r.FormDefinitionID][r.PeriodRef], r.FormEntry)
		}
	}

	out := &DokuOverview{
		View:     view,
		Label:    view.Label(),
		Prev:     view.Prev().Ref,
		Next:     view.Next().Ref,
		Sections: make([]DokuSectionView, 0, len(sections)+1),
	}
	index := make(map[uuid.UUID]int, len(sections))
	for i := range sections {
		id := sections[i].ID
		index[id] = len(out.Sections)
		out.Sections = append(out.Sections, DokuSectionView{
			ID:    &id,
			Key:   sections[i].Key,
			Title: sections[i].Title,
			Forms: []DokuForm{},
		})
	}
	other := DokuSectionView{Key: OtherSectionKey, Title: otherSectionTitle, Forms: []DokuForm{}}

	for i := range forms {
		f := &forms[i]
		df := DokuForm{
			ID:          f.ID,
			Key:         f.Key,
			Label:       f.Label,
			Category:    f.Category,
			Periodicity: f.Periodicity,
			Slots:       make([]DokuSlot, 0, len(slotsByForm[f.ID])),
		}
		for _, sl := range slotsByForm[f.ID] {
			n := counts[f.ID][sl.Ref]
			slot := DokuSlot{
				Ref:        sl.Ref,
				Label:      sl.Label(),
				Start:      sl.Start,
				LastDay:    sl.LastDay(),
				EntryCount: n,
				Required:   f.RequiredEntries,
				Done:       n >= f.RequiredEntries,
				Future:     sl.Start.After(today),
			}
			if q.IncludeEntries {
				slot.Entries = entries[f.ID][sl.Ref]
			}
			if !slot.Future {
				df.Total++
				if slot.Done {
					df.Done++
				}
			}
			df.Slots = append(df.Slots, slot)
		}

		target := &other
		if f.SectionID != nil {
			target = &out.Sections[index[*f.SectionID]]
		}
		target.Forms = append(target.Forms, df)
		target.Done += df.Done
		target.Total += df.Total
	}
	if len(other.Forms) > 0 {
		out.Sections = append(out.Sections, other)
	}
	for _, sec := range out.Sections {
		out.Done += sec.Done
		out.Total += sec.Total
	}
	return out, nil
}

// resolveView parses the view periodicity and reference, defaulting to the
// current month.
func resolveView(view, ref string, today time.Time) (period.Period, error) {
	p := period.Monthly
	if view != "" {
		parsed, err := period.ParsePeriodicity(view)
		if err != nil {
			return period.Period{}, domain.ErrInvalidPeriodicity
		}
		p = parsed
	}
	if ref == "" || ref == "current" {
		return period.Of(p, today), nil
	}
	pd, err := period.Parse(p, ref)
	if err != nil {
		return period.Period{}, domain.ErrInvalidPeriodRef
	}
	return pd, nil
}

// formsInSections drops forms filed under a section that is inactive or not
// visible; they are hidden together with their section.
func formsInSections(forms []domain.FormDefinition, sections []domain.DokuSection) []domain.FormDefinition {
	shown := make(map[uuid.UUID]bool, len(sections))
	for i := range sections {
		shown[sections[i].ID] = true
	}
	out := forms[:0]
	for i := range forms {
		if forms[i].SectionID == nil || shown[*forms[i].SectionID] {
			out = append(out, forms[i])
		}
	}
	return out
}

func filterSection(sections []domain.DokuSection, id uuid.UUID) []domain.DokuSection {
	for i := range sections {
		if sections[i].ID == id {
			return sections[i : i+1]
		}
	}
	return nil
}

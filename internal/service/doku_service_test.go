package service_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"haccp/internal/domain"
	"haccp/internal/period"
	"haccp/internal/port"
	"haccp/internal/service"
	"haccp/mocks"
)

type dokuFixture struct {
	sectionRepo  *mocks.MockDokuSectionRepo
	formRepo     *mocks.MockFormDefinitionRepo
	instanceRepo *mocks.MockFormInstanceRepo
	entryRepo    *mocks.MockFormEntryRepo
	tenantRepo   *mocks.MockTenantRepo
	svc          service.DokuService
	tenant       *domain.Tenant
	actor        domain.Actor
}

func newDokuFixture() *dokuFixture {
	f := &dokuFixture{
		sectionRepo:  new(mocks.MockDokuSectionRepo),
		formRepo:     new(mocks.MockFormDefinitionRepo),
		instanceRepo: new(mocks.MockFormInstanceRepo),
		entryRepo:    new(mocks.MockFormEntryRepo),
		tenantRepo:   new(mocks.MockTenantRepo),
		tenant:       activeTenant(),
	}
	f.actor = domain.Actor{TenantID: f.tenant.ID, StaffID: uuid.New(), MarketID: uuid.New(), Role: domain.RoleStaff}
	f.svc = service.NewDokuService(f.sectionRepo, f.formRepo, f.instanceRepo, f.entryRepo, f.tenantRepo, time.UTC)
	f.tenantRepo.On("GetByID", mock.Anything, f.tenant.ID).Return(f.tenant, nil)
	return f
}

func (f *dokuFixture) visibleFilter() interface{} {
	return mock.MatchedBy(func(filter port.DokuSectionFilter) bool {
		return filter.ActiveOnly && filter.VisibleIn != nil && *filter.VisibleIn == f.actor.MarketID
	})
}

func TestDokuService_Overview_GroupsAndCounts(t *testing.T) {
	f := newDokuFixture()
	ctx := context.Background()
	cooling := domain.DokuSection{ID: uuid.New(), Key: "kuehlung", Title: "Kühlung", IsActive: true}
	daily := domain.FormDefinition{
		ID: uuid.New(), SectionID: &cooling.ID, Key: "kuehlschrank", Label: "Kühlschrank",
		Category: domain.CategoryTemperature, Periodicity: period.Daily, RequiredEntries: 1, IsActive: true,
	}
	weekly := domain.FormDefinition{
		ID: uuid.New(), Key: "reinigung", Label: "Reinigung",
		Category: domain.CategoryCleaning, Periodicity: period.Weekly, RequiredEntries: 2, IsActive: true,
	}

	f.sectionRepo.On("List", ctx, f.tenant.ID, f.visibleFilter()).Return([]domain.DokuSection{cooling}, nil)
	f.formRepo.On("List", ctx, f.tenant.ID, mock.MatchedBy(func(filter port.FormDefinitionFilter) bool {
		return filter.ActiveOnly && filter.SectionID == nil && *filter.VisibleIn == f.actor.MarketID
	})).Return([]domain.FormDefinition{daily, weekly}, nil)
	// February 2020 starts on a Saturday: weekly slots reach back to Monday 27 January.
	f.instanceRepo.On("ListStatusInRange", ctx, f.tenant.ID, f.actor.MarketID,
		period.Date(2020, 1, 27), period.Date(2020, 3, 2),
	).Return([]domain.InstanceStatusRow{
		{FormDefinitionID: daily.ID, PeriodRef: "2020-02-03", EntryCount: 1},
		{FormDefinitionID: weekly.ID, PeriodRef: "2020-W05", EntryCount: 2},
		{FormDefinitionID: weekly.ID, PeriodRef: "2020-W06", EntryCount: 1},
	}, nil)

	out, err := f.svc.Overview(ctx, f.actor, service.DokuQuery{View: "MONTHLY", Ref: "2020-02"})

	require.NoError(t, err)
	assert.Equal(t, "Februar 2020", out.Label)
	assert.Equal(t, "2020-01", out.Prev)
	assert.Equal(t, "2020-03", out.Next)
	require.Len(t, out.Sections, 2)

	sec := out.Sections[0]
	assert.Equal(t, "Kühlung", sec.Title)
	require.Len(t, sec.Forms, 1)
	assert.Len(t, sec.Forms[0].Slots, 29)
	assert.Equal(t, 1, sec.Forms[0].Done)
	assert.Equal(t, 29, sec.Forms[0].Total)
	assert.Equal(t, period.Date(2020, 2, 1), sec.Forms[0].Slots[0].LastDay)

	other := out.Sections[1]
	assert.Equal(t, service.OtherSectionKey, other.Key)
	assert.Nil(t, other.ID)
	require.Len(t, other.Forms, 1)
	slots := other.Forms[0].Slots
	require.Len(t, slots, 5)
	assert.Equal(t, "2020-W05", slots[0].Ref)
	assert.True(t, slots[0].Done)
	assert.False(t, slots[1].Done)
	assert.Equal(t, 1, slots[1].EntryCount)
	assert.Equal(t, period.Date(2020, 3, 1), slots[4].LastDay)

	assert.Equal(t, 2, out.Done)
	assert.Equal(t, 34, out.Total)
	f.entryRepo.AssertNotCalled(t, "ListInRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDokuService_Overview_FutureSlotsNotCounted(t *testing.T) {
	f := newDokuFixture()
	ctx := context.Background()
	monthly := domain.FormDefinition{ID: uuid.New(), Key: "schulung", Label: "Schulung", Periodicity: period.Monthly, RequiredEntries: 1, IsActive: true}
	nextYear := strconv.Itoa(time.Now().Year() + 1)

	f.sectionRepo.On("List", ctx, f.tenant.ID, mock.Anything).Return([]domain.DokuSection{}, nil)
	f.formRepo.On("List", ctx, f.tenant.ID, mock.Anything).Return([]domain.FormDefinition{monthly}, nil)
	f.instanceRepo.On("ListStatusInRange", ctx, f.tenant.ID, f.actor.MarketID, mock.Anything, mock.Anything).
		Return([]domain.InstanceStatusRow{}, nil)

	out, err := f.svc.Overview(ctx, f.actor, service.DokuQuery{View: "YEARLY", Ref: nextYear})

	require.NoError(t, err)
	require.Len(t, out.Sections, 1)
	form := out.Sections[0].Forms[0]
	assert.Len(t, form.Slots, 12)
	for _, sl := range form.Slots {
		assert.True(t, sl.Future)
	}
	assert.Equal(t, 0, out.Total)
	assert.Equal(t, 0, out.Done)
}

func TestDokuService_Overview_IncludeEntries(t *testing.T) {
	f := newDokuFixture()
	ctx := context.Background()
	form := domain.FormDefinition{ID: uuid.New(), Key: "wareneingang", Periodicity: period.Daily, RequiredEntries: 1, IsActive: true}
	from, to := period.Date(2024, 3, 4), period.Date(2024, 3, 5)
	entry := domain.EntryRow{
		FormEntry:        domain.FormEntry{ID: uuid.New(), SignerInitials: "AB"},
		FormDefinitionID: form.ID,
		PeriodRef:        "2024-03-04",
	}

	f.sectionRepo.On("List", ctx, f.tenant.ID, mock.Anything).Return([]domain.DokuSection{}, nil)
	f.formRepo.On("List", ctx, f.tenant.ID, mock.Anything).Return([]domain.FormDefinition{form}, nil)
	f.instanceRepo.On("ListStatusInRange", ctx, f.tenant.ID, f.actor.MarketID, from, to).
		Return([]domain.InstanceStatusRow{{FormDefinitionID: form.ID, PeriodRef: "2024-03-04", EntryCount: 1}}, nil)
	f.entryRepo.On("ListInRange", ctx, f.tenant.ID, f.actor.MarketID, from, to).Return([]domain.EntryRow{entry}, nil)

	out, err := f.svc.Overview(ctx, f.actor, service.DokuQuery{View: "DAILY", Ref: "2024-03-04", IncludeEntries: true})

	require.NoError(t, err)
	slot := out.Sections[0].Forms[0].Slots[0]
	assert.True(t, slot.Done)
	require.Len(t, slot.Entries, 1)
	assert.Equal(t, "AB", slot.Entries[0].SignerInitials)
}

func TestDokuService_Overview_HiddenSectionHidesForms(t *testing.T) {
	f := newDokuFixture()
	ctx := context.Background()
	// Section filed under but not returned: inactive or not visible in this market.
	hidden := uuid.New()
	inHidden := domain.FormDefinition{ID: uuid.New(), SectionID: &hidden, Key: "fritteuse", Periodicity: period.Daily, RequiredEntries: 1, IsActive: true}
	loose := domain.FormDefinition{ID: uuid.New(), Key: "schulung", Periodicity: period.Daily, RequiredEntries: 1, IsActive: true}
	day := period.Date(2024, 3, 4)

	f.sectionRepo.On("List", ctx, f.tenant.ID, f.visibleFilter()).Return([]domain.DokuSection{}, nil)
	f.formRepo.On("List", ctx, f.tenant.ID, mock.Anything).Return([]domain.FormDefinition{inHidden, loose}, nil)
	f.instanceRepo.On("ListStatusInRange", ctx, f.tenant.ID, f.actor.MarketID, day, day.AddDate(0, 0, 1)).
		Return([]domain.InstanceStatusRow{{FormDefinitionID: inHidden.ID, PeriodRef: "2024-03-04", EntryCount: 1}}, nil)

	out, err := f.svc.Overview(ctx, f.actor, service.DokuQuery{View: "DAILY", Ref: "2024-03-04"})

	require.NoError(t, err)
	require.Len(t, out.Sections, 1)
	other := out.Sections[0]
	assert.Equal(t, service.OtherSectionKey, other.Key)
	require.Len(t, other.Forms, 1)
	assert.Equal(t, "schulung", other.Forms[0].Key)
	assert.Equal(t, 1, out.Total)
	assert.Equal(t, 0, out.Done)
}

func TestDokuService_Overview_UnknownSection(t *testing.T) {
	f := newDokuFixture()
	ctx := context.Background()
	missing := uuid.New()
	f.sectionRepo.On("List", ctx, f.tenant.ID, mock.Anything).
		Return([]domain.DokuSection{{ID: uuid.New(), Key: "kuehlung"}}, nil)

	_, err := f.svc.Overview(ctx, f.actor, service.DokuQuery{SectionID: &missing})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.formRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestDokuService_Overview_InvalidQuery(t *testing.T) {
	tests := []struct {
		name    string
		q       service.DokuQuery
		wantErr error
	}{
		{"bad periodicity", service.DokuQuery{View: "HOURLY"}, domain.ErrInvalidPeriodicity},
		{"bad ref", service.DokuQuery{View: "WEEKLY", Ref: "2024-13"}, domain.ErrInvalidPeriodRef},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDokuFixture()
			_, err := f.svc.Overview(context.Background(), f.actor, tt.q)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDokuOverview_Rows(t *testing.T) {
	o := &service.DokuOverview{Sections: []service.DokuSectionView{
		{Title: "A", Forms: []service.DokuForm{{Key: "f1", Slots: []service.DokuSlot{{Ref: "1"}, {Ref: "2"}}}}},
		{Title: "B", Forms: []service.DokuForm{{Key: "f2", Slots: []service.DokuSlot{{Ref: "3"}}}}},
	}}

	rows := o.Rows()

	require.Len(t, rows, 3)
	assert.Equal(t, "A", rows[1].Section)
	assert.Equal(t, "f2", rows[2].FormKey)
}

func TestDokuSectionView_RowsStayInSection(t *testing.T) {
	o := &service.DokuOverview{Sections: []service.DokuSectionView{
		{Key: "a", Title: "Kühlung", Forms: []service.DokuForm{{Key: "f1", Slots: []service.DokuSlot{{Ref: "1"}}}}},
		{Key: "b", Title: "Kühlung", Forms: []service.DokuForm{{Key: "f2", Slots: []service.DokuSlot{{Ref: "2"}}}}},
	}}

	first := o.Sections[0].Rows()
	second := o.Sections[1].Rows()

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, "f1", first[0].FormKey)
	assert.Equal(t, "f2", second[0].FormKey)
	assert.Len(t, o.Rows(), 2)
}

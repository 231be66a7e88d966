package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"haccp/internal/config"
	"haccp/internal/domain"
	"haccp/internal/period"
	"haccp/internal/service"
	"haccp/mocks"
)

const fridgeFields = `[{"name":"temp","label":"Temperatur","type":"number","required":true,"max":7,"unit":"°C"}]`

type entryFixture struct {
	formRepo     *mocks.MockFormDefinitionRepo
	instanceRepo *mocks.MockFormInstanceRepo
	entryRepo    *mocks.MockFormEntryRepo
	tenantRepo   *mocks.MockTenantRepo
	staff        *mocks.MockStaffService
	svc          service.EntryService

	tenant *domain.Tenant
	actor  domain.Actor
	form   *domain.FormDefinition
	signer *domain.StaffProfile
	today  time.Time
}

func newEntryFixture(t *testing.T) *entryFixture {
	t.Helper()
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	f := &entryFixture{
		formRepo:     new(mocks.MockFormDefinitionRepo),
		instanceRepo: new(mocks.MockFormInstanceRepo),
		entryRepo:    new(mocks.MockFormEntryRepo),
		tenantRepo:   new(mocks.MockTenantRepo),
		staff:        new(mocks.MockStaffService),
		tenant:       activeTenant(),
		today:        period.Today(berlin, time.Now()),
	}
	f.actor = domain.Actor{TenantID: f.tenant.ID, StaffID: uuid.New(), MarketID: uuid.New(), Role: domain.RoleStaff}
	f.form = &domain.FormDefinition{
		ID:              uuid.New(),
		TenantID:        f.tenant.ID,
		Key:             "kuehlschrank",
		Label:           "Kühlschrank",
		Category:        domain.CategoryTemperature,
		Periodicity:     period.Daily,
		RequiredEntries: 1,
		Fields:          json.RawMessage(fridgeFields),
		IsActive:        true,
	}
	f.signer = &domain.StaffProfile{ID: uuid.New(), TenantID: f.tenant.ID, Initials: "AB", IsActive: true}
	f.svc = service.NewEntryService(f.formRepo, f.instanceRepo, f.entryRepo, f.tenantRepo, f.staff,
		config.EntriesConfig{MaxBackdateDays: 7}, time.UTC)
	return f
}

func (f *entryFixture) expectFormAndTenant(ctx context.Context) {
	f.formRepo.On("GetByID", ctx, f.tenant.ID, f.form.ID).Return(f.form, nil)
	f.tenantRepo.On("GetByID", ctx, f.tenant.ID).Return(f.tenant, nil)
}

func TestEntryService_Submit_Success(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()
	f.expectFormAndTenant(ctx)
	f.staff.On("VerifySignature", ctx, f.tenant.ID, f.actor.MarketID, "ab", "1234").Return(f.signer, nil)
	f.entryRepo.On("CreateSigned", ctx,
		mock.MatchedBy(func(inst *domain.FormInstance) bool {
			return inst.FormDefinitionID == f.form.ID &&
				inst.MarketID == f.actor.MarketID &&
				inst.PeriodRef == f.today.Format("2006-01-02")
		}),
		mock.MatchedBy(func(e *domain.FormEntry) bool {
			return e.SignedBy == f.signer.ID && e.SignerInitials == "AB" && !e.Deviation
		}),
		1,
	).Return(nil)

	res, err := f.svc.Submit(ctx, f.actor, f.form.ID, service.SubmitEntryInput{
		Data:     json.RawMessage(`{"temp": 4.5}`),
		Initials: "ab",
		PIN:      "1234",
	})

	require.NoError(t, err)
	assert.Equal(t, f.today, res.Entry.EntryDate)
	assert.Empty(t, res.Deviations)
	assert.Equal(t, period.Daily, res.Period.Periodicity)
	f.entryRepo.AssertExpectations(t)
}

func TestEntryService_Submit_DeviationNeedsCorrectiveAction(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()
	f.expectFormAndTenant(ctx)

	_, err := f.svc.Submit(ctx, f.actor, f.form.ID, service.SubmitEntryInput{
		Data:     json.RawMessage(`{"temp": 9}`),
		Initials: "AB",
		PIN:      "1234",
	})

	assert.ErrorIs(t, err, domain.ErrCorrectiveActionNeeded)
	f.staff.AssertNotCalled(t, "VerifySignature", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.entryRepo.AssertNotCalled(t, "CreateSigned", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEntryService_Submit_DeviationWithCorrectiveAction(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()
	f.expectFormAndTenant(ctx)
	f.staff.On("VerifySignature", ctx, f.tenant.ID, f.actor.MarketID, "AB", "1234").Return(f.signer, nil)
	f.entryRepo.On("CreateSigned", ctx, mock.Anything,
		mock.MatchedBy(func(e *domain.FormEntry) bool {
			return e.Deviation && e.CorrectiveAction == "Ware umgelagert"
		}), 1).Return(nil)

	res, err := f.svc.Submit(ctx, f.actor, f.form.ID, service.SubmitEntryInput{
		Data:             json.RawMessage(`{"temp": 9}`),
		CorrectiveAction: "  Ware umgelagert ",
		Initials:         "AB",
		PIN:              "1234",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"temp"}, res.Deviations)
}

func TestEntryService_Submit_InvalidSignature(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()
	f.expectFormAndTenant(ctx)
	f.staff.On("VerifySignature", ctx, f.tenant.ID, f.actor.MarketID, "AB", "0000").Return(nil, domain.ErrInvalidSignature)

	_, err := f.svc.Submit(ctx, f.actor, f.form.ID, service.SubmitEntryInput{
		Data:     json.RawMessage(`{"temp": 3}`),
		Initials: "AB",
		PIN:      "0000",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidSignature)
	f.entryRepo.AssertNotCalled(t, "CreateSigned", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEntryService_Submit_DateWindow(t *testing.T) {
	tests := []struct {
		name    string
		offset  int
		wantErr error
	}{
		{"future", 1, domain.ErrFutureEntry},
		{"too old", -8, domain.ErrEntryTooOld},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEntryFixture(t)
			ctx := context.Background()
			f.expectFormAndTenant(ctx)

			_, err := f.svc.Submit(ctx, f.actor, f.form.ID, service.SubmitEntryInput{
				EntryDate: f.today.AddDate(0, 0, tt.offset).Format("2006-01-02"),
				Data:      json.RawMessage(`{"temp": 3}`),
				Initials:  "AB",
				PIN:       "1234",
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEntryService_Submit_BackdatedWithinWindow(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()
	f.expectFormAndTenant(ctx)
	day := f.today.AddDate(0, 0, -3)
	f.staff.On("VerifySignature", ctx, f.tenant.ID, f.actor.MarketID, "AB", "1234").Return(f.signer, nil)
	f.entryRepo.On("CreateSigned", ctx,
		mock.MatchedBy(func(inst *domain.FormInstance) bool { return inst.PeriodRef == day.Format("2006-01-02") }),
		mock.Anything, 1).Return(nil)

	res, err := f.svc.Submit(ctx, f.actor, f.form.ID, service.SubmitEntryInput{
		EntryDate: day.Format("2006-01-02"),
		Data:      json.RawMessage(`{"temp": 3}`),
		Initials:  "AB",
		PIN:       "1234",
	})

	require.NoError(t, err)
	assert.Equal(t, day, res.Entry.EntryDate)
}

func TestEntryService_Submit_FormOfOtherMarket(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()
	other := uuid.New()
	f.form.MarketID = &other
	f.formRepo.On("GetByID", ctx, f.tenant.ID, f.form.ID).Return(f.form, nil)

	_, err := f.svc.Submit(ctx, f.actor, f.form.ID, service.SubmitEntryInput{Initials: "AB", PIN: "1234"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEntryService_Submit_InactiveForm(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()
	f.form.IsActive = false
	f.formRepo.On("GetByID", ctx, f.tenant.ID, f.form.ID).Return(f.form, nil)

	_, err := f.svc.Submit(ctx, f.actor, f.form.ID, service.SubmitEntryInput{Initials: "AB", PIN: "1234"})

	assert.ErrorIs(t, err, domain.ErrFormInactive)
}

func TestEntryService_Submit_InvalidData(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()
	f.expectFormAndTenant(ctx)

	_, err := f.svc.Submit(ctx, f.actor, f.form.ID, service.SubmitEntryInput{
		Data:     json.RawMessage(`{"temp": "kalt"}`),
		Initials: "AB",
		PIN:      "1234",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidEntryData)
}

func TestEntryService_GetInstance_NotStarted(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()
	f.formRepo.On("GetByID", ctx, f.tenant.ID, f.form.ID).Return(f.form, nil)
	f.instanceRepo.On("GetByRef", ctx, f.tenant.ID, f.form.ID, f.actor.MarketID, "2025-11-03").Return(nil, domain.ErrNotFound)

	view, err := f.svc.GetInstance(ctx, f.actor, f.form.ID, "2025-11-03")

	require.NoError(t, err)
	assert.False(t, view.Done)
	assert.Empty(t, view.Entries)
	assert.Equal(t, domain.InstanceOpen, view.Instance.Status)
	assert.Equal(t, "2025-11-03", view.Instance.PeriodRef)
	f.entryRepo.AssertNotCalled(t, "ListByInstance", mock.Anything, mock.Anything, mock.Anything)
}

func TestEntryService_GetInstance_WithEntries(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()
	inst := &domain.FormInstance{ID: uuid.New(), FormDefinitionID: f.form.ID, PeriodRef: "2025-11-03", EntryCount: 1}
	entries := []domain.FormEntry{{ID: uuid.New(), FormInstanceID: inst.ID, SignerInitials: "AB"}}
	f.formRepo.On("GetByID", ctx, f.tenant.ID, f.form.ID).Return(f.form, nil)
	f.instanceRepo.On("GetByRef", ctx, f.tenant.ID, f.form.ID, f.actor.MarketID, "2025-11-03").Return(inst, nil)
	f.entryRepo.On("ListByInstance", ctx, f.tenant.ID, inst.ID).Return(entries, nil)

	view, err := f.svc.GetInstance(ctx, f.actor, f.form.ID, "2025-11-03")

	require.NoError(t, err)
	assert.True(t, view.Done)
	assert.Len(t, view.Entries, 1)
}

func TestEntryService_GetInstance_BadRef(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()
	f.formRepo.On("GetByID", ctx, f.tenant.ID, f.form.ID).Return(f.form, nil)

	_, err := f.svc.GetInstance(ctx, f.actor, f.form.ID, "2025-W10")

	assert.ErrorIs(t, err, domain.ErrInvalidPeriodRef)
}

func TestEntryService_Calendar(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()
	f.expectFormAndTenant(ctx)
	from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	f.instanceRepo.On("ListStatusInRange", ctx, f.tenant.ID, f.actor.MarketID, from, to).Return([]domain.InstanceStatusRow{
		{FormDefinitionID: f.form.ID, PeriodRef: "2025-02-10", EntryCount: 1},
		{FormDefinitionID: uuid.New(), PeriodRef: "2025-02-11", EntryCount: 3},
	}, nil)

	view, err := f.svc.Calendar(ctx, f.actor, f.form.ID, "2025-02")

	require.NoError(t, err)
	require.Len(t, view.Days, 28)
	assert.Equal(t, "2025-01", view.Prev)
	assert.Equal(t, "2025-03", view.Next)
	assert.True(t, view.Days[9].Done)
	assert.Equal(t, 1, view.Days[9].EntryCount)
	assert.False(t, view.Days[10].Done)
	assert.Equal(t, 0, view.Days[10].EntryCount)
}

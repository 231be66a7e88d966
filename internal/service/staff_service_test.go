package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"haccp/internal/domain"
	"haccp/internal/port"
	"haccp/internal/service"
	"haccp/mocks"
)

type staffFixture struct {
	repo       *mocks.MockStaffRepo
	marketRepo *mocks.MockMarketRepo
	rbac       *mocks.MockRbacService
	svc        service.StaffService
	actor      domain.Actor
}

func newStaffFixture() *staffFixture {
	f := &staffFixture{
		repo:       new(mocks.MockStaffRepo),
		marketRepo: new(mocks.MockMarketRepo),
		rbac:       new(mocks.MockRbacService),
	}
	f.actor = domain.Actor{TenantID: uuid.New(), StaffID: uuid.New(), MarketID: uuid.New(), Role: domain.RoleAdmin}
	f.svc = service.NewStaffService(f.repo, f.marketRepo, f.rbac)
	return f
}

func TestStaffService_Create(t *testing.T) {
	f := newStaffFixture()
	ctx := context.Background()
	market := f.actor.MarketID
	email := " Anna@Example.com "
	other := domain.StaffProfile{ID: uuid.New(), Initials: "AB", MarketID: &market, PinHash: mustHash(t, "5555"), IsActive: true}

	f.rbac.On("AuthorizeScope", ctx, f.actor, &market).Return(nil)
	f.marketRepo.On("GetByID", ctx, f.actor.TenantID, market).Return(&domain.Market{ID: market}, nil)
	f.repo.On("ListActiveByInitials", ctx, f.actor.TenantID, "AB").Return([]domain.StaffProfile{other}, nil)
	f.repo.On("Create", ctx, mock.MatchedBy(func(s *domain.StaffProfile) bool {
		return s.Initials == "AB" && s.IsActive && s.PinHash != "" && s.PinHash != "1234"
	})).Return(nil)

	staff, err := f.svc.Create(ctx, f.actor, service.CreateStaffInput{
		FirstName: "Anna",
		LastName:  "Berg",
		Initials:  " ab ",
		PIN:       "1234",
		MarketID:  &market,
		Email:     &email,
	})

	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", *staff.Email)
	assert.Equal(t, "Anna Berg", staff.FullName())
	f.repo.AssertExpectations(t)
}

func TestStaffService_Create_DuplicateSignature(t *testing.T) {
	f := newStaffFixture()
	ctx := context.Background()
	market := f.actor.MarketID
	// A tenant-wide profile overlaps every market.
	existing := domain.StaffProfile{ID: uuid.New(), Initials: "AB", PinHash: mustHash(t, "1234"), IsActive: true}

	f.rbac.On("AuthorizeScope", ctx, f.actor, &market).Return(nil)
	f.marketRepo.On("GetByID", ctx, f.actor.TenantID, market).Return(&domain.Market{ID: market}, nil)
	f.repo.On("ListActiveByInitials", ctx, f.actor.TenantID, "AB").Return([]domain.StaffProfile{existing}, nil)

	_, err := f.svc.Create(ctx, f.actor, service.CreateStaffInput{FirstName: "Anna", Initials: "AB", PIN: "1234", MarketID: &market})

	assert.ErrorIs(t, err, domain.ErrDuplicateSignature)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestStaffService_Create_SameSignatureDisjointMarkets(t *testing.T) {
	f := newStaffFixture()
	ctx := context.Background()
	market := f.actor.MarketID
	elsewhere := uuid.New()
	existing := domain.StaffProfile{ID: uuid.New(), Initials: "AB", MarketID: &elsewhere, PinHash: mustHash(t, "1234"), IsActive: true}

	f.rbac.On("AuthorizeScope", ctx, f.actor, &market).Return(nil)
	f.marketRepo.On("GetByID", ctx, f.actor.TenantID, market).Return(&domain.Market{ID: market}, nil)
	f.repo.On("ListActiveByInitials", ctx, f.actor.TenantID, "AB").Return([]domain.StaffProfile{existing}, nil)
	f.repo.On("Create", ctx, mock.Anything).Return(nil)

	_, err := f.svc.Create(ctx, f.actor, service.CreateStaffInput{FirstName: "Anna", Initials: "AB", PIN: "1234", MarketID: &market})

	assert.NoError(t, err)
}

func TestStaffService_Create_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		input   service.CreateStaffInput
		wantErr error
	}{
		{"short pin", service.CreateStaffInput{FirstName: "A", Initials: "AB", PIN: "12"}, domain.ErrInvalidPIN},
		{"letters in pin", service.CreateStaffInput{FirstName: "A", Initials: "AB", PIN: "12ab"}, domain.ErrInvalidPIN},
		{"bad initials", service.CreateStaffInput{FirstName: "A", Initials: "A", PIN: "1234"}, domain.ErrInvalidInitials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newStaffFixture()
			_, err := f.svc.Create(context.Background(), f.actor, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestStaffService_Create_OutOfScope(t *testing.T) {
	f := newStaffFixture()
	ctx := context.Background()
	f.rbac.On("AuthorizeScope", ctx, f.actor, (*uuid.UUID)(nil)).Return(domain.ErrForbidden)

	_, err := f.svc.Create(ctx, f.actor, service.CreateStaffInput{FirstName: "Anna", Initials: "AB", PIN: "1234"})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestStaffService_List_ScopedToMarket(t *testing.T) {
	f := newStaffFixture()
	ctx := context.Background()
	f.repo.On("List", ctx, f.actor.TenantID, mock.MatchedBy(func(filter port.StaffFilter) bool {
		return filter.MarketID != nil && *filter.MarketID == f.actor.MarketID && filter.Limit == 20
	})).Return([]domain.StaffProfile{}, 0, nil)

	_, total, err := f.svc.List(ctx, f.actor, service.ListStaffInput{Limit: 20})

	require.NoError(t, err)
	assert.Zero(t, total)
	f.repo.AssertExpectations(t)
}

func TestStaffService_Update_InitialsNeedPIN(t *testing.T) {
	f := newStaffFixture()
	ctx := context.Background()
	staff := &domain.StaffProfile{ID: uuid.New(), TenantID: f.actor.TenantID, Initials: "AB", IsActive: true}
	newInitials := "CD"
	f.repo.On("GetByID", ctx, f.actor.TenantID, staff.ID).Return(staff, nil)
	f.rbac.On("AuthorizeScope", ctx, f.actor, (*uuid.UUID)(nil)).Return(nil)

	_, err := f.svc.Update(ctx, f.actor, staff.ID, service.UpdateStaffInput{Initials: &newInitials})

	assert.ErrorIs(t, err, domain.ErrInvalidPIN)
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestStaffService_Update_RenameOnly(t *testing.T) {
	f := newStaffFixture()
	ctx := context.Background()
	staff := &domain.StaffProfile{ID: uuid.New(), TenantID: f.actor.TenantID, FirstName: "Anna", Initials: "AB", IsActive: true}
	name := " Anne "
	f.repo.On("GetByID", ctx, f.actor.TenantID, staff.ID).Return(staff, nil)
	f.rbac.On("AuthorizeScope", ctx, f.actor, (*uuid.UUID)(nil)).Return(nil)
	f.repo.On("Update", ctx, mock.Anything).Return(nil)

	updated, err := f.svc.Update(ctx, f.actor, staff.ID, service.UpdateStaffInput{FirstName: &name})

	require.NoError(t, err)
	assert.Equal(t, "Anne", updated.FirstName)
	f.repo.AssertNotCalled(t, "UpdatePIN", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStaffService_ChangeOwnPIN(t *testing.T) {
	f := newStaffFixture()
	ctx := context.Background()
	me := &domain.StaffProfile{ID: f.actor.StaffID, TenantID: f.actor.TenantID, Initials: "AB", PinHash: mustHash(t, "1234"), IsActive: true}
	f.repo.On("GetByID", ctx, f.actor.TenantID, f.actor.StaffID).Return(me, nil)

	t.Run("wrong current PIN", func(t *testing.T) {
		err := f.svc.ChangeOwnPIN(ctx, f.actor, "9999", "4321")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("success", func(t *testing.T) {
		f.repo.On("ListActiveByInitials", ctx, f.actor.TenantID, "AB").Return([]domain.StaffProfile{*me}, nil)
		f.repo.On("UpdatePIN", ctx, f.actor.TenantID, me.ID, mock.AnythingOfType("string")).Return(nil)

		require.NoError(t, f.svc.ChangeOwnPIN(ctx, f.actor, "1234", "4321"))
		f.repo.AssertCalled(t, "UpdatePIN", ctx, f.actor.TenantID, me.ID, mock.AnythingOfType("string"))
	})
}

func TestStaffService_Delete_Self(t *testing.T) {
	f := newStaffFixture()

	err := f.svc.Delete(context.Background(), f.actor, f.actor.StaffID)

	assert.ErrorIs(t, err, domain.ErrForbidden)
	f.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestStaffService_VerifySignature(t *testing.T) {
	f := newStaffFixture()
	ctx := context.Background()
	signer := domain.StaffProfile{ID: uuid.New(), Initials: "AB", PinHash: mustHash(t, "1234"), IsActive: true}
	f.repo.On("ListSignatureCandidates", ctx, f.actor.TenantID, f.actor.MarketID, "AB").Return([]domain.StaffProfile{signer}, nil)

	got, err := f.svc.VerifySignature(ctx, f.actor.TenantID, f.actor.MarketID, "ab", "1234")
	require.NoError(t, err)
	assert.Equal(t, signer.ID, got.ID)

	_, err = f.svc.VerifySignature(ctx, f.actor.TenantID, f.actor.MarketID, "AB", "4321")
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)

	_, err = f.svc.VerifySignature(ctx, f.actor.TenantID, f.actor.MarketID, "AB", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)
}

func TestStaffService_ResetPIN_DuplicateSignature(t *testing.T) {
	f := newStaffFixture()
	ctx := context.Background()
	market := f.actor.MarketID
	target := &domain.StaffProfile{ID: uuid.New(), TenantID: f.actor.TenantID, MarketID: &market, Initials: "AB", PinHash: mustHash(t, "9999"), IsActive: true}
	colleague := domain.StaffProfile{ID: uuid.New(), TenantID: f.actor.TenantID, MarketID: &market, Initials: "AB", PinHash: mustHash(t, "1234"), IsActive: true}

	f.repo.On("GetByID", ctx, f.actor.TenantID, target.ID).Return(target, nil)
	f.rbac.On("AuthorizeScope", ctx, f.actor, &market).Return(nil)
	f.repo.On("ListActiveByInitials", ctx, f.actor.TenantID, "AB").Return([]domain.StaffProfile{*target, colleague}, nil)

	err := f.svc.ResetPIN(ctx, f.actor, target.ID, "1234")

	assert.ErrorIs(t, err, domain.ErrDuplicateSignature)
	f.repo.AssertNotCalled(t, "UpdatePIN", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStaffService_ResetPIN(t *testing.T) {
	f := newStaffFixture()
	ctx := context.Background()
	market := f.actor.MarketID
	target := &domain.StaffProfile{ID: uuid.New(), TenantID: f.actor.TenantID, MarketID: &market, Initials: "AB", PinHash: mustHash(t, "9999"), IsActive: true}

	f.repo.On("GetByID", ctx, f.actor.TenantID, target.ID).Return(target, nil)
	f.rbac.On("AuthorizeScope", ctx, f.actor, &market).Return(nil)
	f.repo.On("ListActiveByInitials", ctx, f.actor.TenantID, "AB").Return([]domain.StaffProfile{*target}, nil)
	f.repo.On("UpdatePIN", ctx, f.actor.TenantID, target.ID, mock.MatchedBy(func(hash string) bool {
		return hash != "" && hash != "4711"
	})).Return(nil)

	require.NoError(t, f.svc.ResetPIN(ctx, f.actor, target.ID, "4711"))
	f.repo.AssertExpectations(t)
}

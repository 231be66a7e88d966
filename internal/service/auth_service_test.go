package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"haccp/internal/config"
	"haccp/internal/domain"
	"haccp/internal/service"
	"haccp/mocks"
)

type authFixture struct {
	tenantRepo   *mocks.MockTenantRepo
	staffRepo    *mocks.MockStaffRepo
	myMarketRepo *mocks.MockMyMarketRepo
	markets      *mocks.MockMarketService
	rbac         *mocks.MockRbacService
	svc          service.AuthService
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret-key-for-unit-tests-only",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "haccp-test",
	}
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		tenantRepo:   new(mocks.MockTenantRepo),
		staffRepo:    new(mocks.MockStaffRepo),
		myMarketRepo: new(mocks.MockMyMarketRepo),
		markets:      new(mocks.MockMarketService),
		rbac:         new(mocks.MockRbacService),
	}
	f.svc = service.NewAuthService(f.tenantRepo, f.staffRepo, f.myMarketRepo, f.markets, f.rbac, testJWTConfig())
	return f
}

func mustHash(t *testing.T, pin string) string {
	t.Helper()
	hash, err := service.HashPIN(pin)
	require.NoError(t, err)
	return hash
}

func activeTenant() *domain.Tenant {
	return &domain.Tenant{
		ID:       uuid.New(),
		Name:     "Frischmarkt GmbH",
		Slug:     "frischmarkt",
		Timezone: "Europe/Berlin",
		IsActive: true,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	tenant := activeTenant()
	market := &domain.Market{ID: uuid.New(), TenantID: tenant.ID, Name: "Mitte", Code: "M1", IsActive: true}
	staff := domain.StaffProfile{
		ID:       uuid.New(),
		TenantID: tenant.ID,
		MarketID: &market.ID,
		Initials: "AB",
		PinHash:  mustHash(t, "1234"),
		IsActive: true,
	}

	f.tenantRepo.On("GetBySlug", ctx, "frischmarkt").Return(tenant, nil)
	f.staffRepo.On("ListActiveByInitials", ctx, tenant.ID, "AB").Return([]domain.StaffProfile{staff}, nil)
	f.myMarketRepo.On("Get", ctx, tenant.ID, staff.ID).Return(nil, domain.ErrNotFound)
	f.markets.On("CheckSelectable", ctx, tenant.ID, staff.ID, market.ID).Return(market, nil)
	f.myMarketRepo.On("Set", ctx, mock.MatchedBy(func(m *domain.MyMarket) bool {
		return m.StaffID == staff.ID && m.MarketID == market.ID
	})).Return(nil)
	f.rbac.On("EffectiveRole", ctx, tenant.ID, staff.ID, market.ID).Return(domain.RoleAdmin, nil)

	pair, err := f.svc.Login(ctx, service.LoginInput{TenantSlug: " Frischmarkt ", Initials: "ab", PIN: "1234"})

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, market.ID, pair.MarketID)
	assert.Equal(t, domain.RoleAdmin, pair.Role)

	claims, err := f.svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, claims.TenantID)
	assert.Equal(t, staff.ID, claims.StaffID)
	assert.Equal(t, market.ID, claims.MarketID)
	assert.Equal(t, "AB", claims.Initials)

	f.myMarketRepo.AssertExpectations(t)
	f.rbac.AssertExpectations(t)
}

func TestAuthService_Login_WrongPIN(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	tenant := activeTenant()
	staff := domain.StaffProfile{ID: uuid.New(), TenantID: tenant.ID, Initials: "AB", PinHash: mustHash(t, "1234"), IsActive: true}

	f.tenantRepo.On("GetBySlug", ctx, "frischmarkt").Return(tenant, nil)
	f.staffRepo.On("ListActiveByInitials", ctx, tenant.ID, "AB").Return([]domain.StaffProfile{staff}, nil)

	pair, err := f.svc.Login(ctx, service.LoginInput{TenantSlug: "frischmarkt", Initials: "AB", PIN: "9999"})

	assert.Nil(t, pair)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	f.myMarketRepo.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
}

func TestAuthService_Login_UnknownTenant(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.tenantRepo.On("GetBySlug", ctx, "nope").Return(nil, domain.ErrNotFound)

	_, err := f.svc.Login(ctx, service.LoginInput{TenantSlug: "nope", Initials: "AB", PIN: "1234"})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveTenant(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	tenant := activeTenant()
	tenant.IsActive = false
	f.tenantRepo.On("GetBySlug", ctx, "frischmarkt").Return(tenant, nil)

	_, err := f.svc.Login(ctx, service.LoginInput{TenantSlug: "frischmarkt", Initials: "AB", PIN: "1234"})

	assert.ErrorIs(t, err, domain.ErrTenantInactive)
	f.staffRepo.AssertNotCalled(t, "ListActiveByInitials", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_Login_MalformedPIN(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	tenant := activeTenant()
	f.tenantRepo.On("GetBySlug", ctx, "frischmarkt").Return(tenant, nil)

	_, err := f.svc.Login(ctx, service.LoginInput{TenantSlug: "frischmarkt", Initials: "AB", PIN: "12"})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_AmbiguousSignatureNeedsMarket(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	tenant := activeTenant()
	hash := mustHash(t, "1234")
	m1, m2 := uuid.New(), uuid.New()
	candidates := []domain.StaffProfile{
		{ID: uuid.New(), TenantID: tenant.ID, MarketID: &m1, Initials: "AB", PinHash: hash, IsActive: true},
		{ID: uuid.New(), TenantID: tenant.ID, MarketID: &m2, Initials: "AB", PinHash: hash, IsActive: true},
	}

	f.tenantRepo.On("GetBySlug", ctx, "frischmarkt").Return(tenant, nil)
	f.staffRepo.On("ListActiveByInitials", ctx, tenant.ID, "AB").Return(candidates, nil)

	_, err := f.svc.Login(ctx, service.LoginInput{TenantSlug: "frischmarkt", Initials: "AB", PIN: "1234"})

	assert.ErrorIs(t, err, domain.ErrMarketRequired)
}

func TestAuthService_Login_WithMarketCoveredByAssignment(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	tenant := activeTenant()
	home := uuid.New()
	assigned := &domain.Market{ID: uuid.New(), TenantID: tenant.ID, Code: "M2", IsActive: true}
	staff := domain.StaffProfile{ID: uuid.New(), TenantID: tenant.ID, MarketID: &home, Initials: "AB", PinHash: mustHash(t, "1234"), IsActive: true}

	f.tenantRepo.On("GetBySlug", ctx, "frischmarkt").Return(tenant, nil)
	f.staffRepo.On("ListActiveByInitials", ctx, tenant.ID, "AB").Return([]domain.StaffProfile{staff}, nil)
	f.markets.On("CheckSelectable", ctx, tenant.ID, staff.ID, assigned.ID).Return(assigned, nil)
	f.myMarketRepo.On("Set", ctx, mock.MatchedBy(func(m *domain.MyMarket) bool { return m.MarketID == assigned.ID })).Return(nil)
	f.rbac.On("EffectiveRole", ctx, tenant.ID, staff.ID, assigned.ID).Return(domain.RoleAdmin, nil)

	pair, err := f.svc.Login(ctx, service.LoginInput{TenantSlug: "frischmarkt", Initials: "AB", PIN: "1234", MarketID: &assigned.ID})

	require.NoError(t, err)
	assert.Equal(t, assigned.ID, pair.MarketID)
	assert.Equal(t, domain.RoleAdmin, pair.Role)
	f.myMarketRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_Login_WithMarketPicksSelectableMatch(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	tenant := activeTenant()
	hash := mustHash(t, "1234")
	m1 := &domain.Market{ID: uuid.New(), TenantID: tenant.ID, IsActive: true}
	m2 := uuid.New()
	inM1 := domain.StaffProfile{ID: uuid.New(), TenantID: tenant.ID, MarketID: &m1.ID, Initials: "AB", PinHash: hash, IsActive: true}
	inM2 := domain.StaffProfile{ID: uuid.New(), TenantID: tenant.ID, MarketID: &m2, Initials: "AB", PinHash: hash, IsActive: true}

	f.tenantRepo.On("GetBySlug", ctx, "frischmarkt").Return(tenant, nil)
	f.staffRepo.On("ListActiveByInitials", ctx, tenant.ID, "AB").Return([]domain.StaffProfile{inM1, inM2}, nil)
	f.markets.On("CheckSelectable", ctx, tenant.ID, inM1.ID, m1.ID).Return(m1, nil)
	f.markets.On("CheckSelectable", ctx, tenant.ID, inM2.ID, m1.ID).Return(nil, domain.ErrMarketNotAccessible)
	f.myMarketRepo.On("Set", ctx, mock.Anything).Return(nil)
	f.rbac.On("EffectiveRole", ctx, tenant.ID, inM1.ID, m1.ID).Return(domain.RoleStaff, nil)

	pair, err := f.svc.Login(ctx, service.LoginInput{TenantSlug: "frischmarkt", Initials: "AB", PIN: "1234", MarketID: &m1.ID})

	require.NoError(t, err)
	claims, err := f.svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, inM1.ID, claims.StaffID)
}

func TestAuthService_Login_WithMarketNotSelectable(t *testing.T) {
	tests := []struct {
		name     string
		checkErr error
		wantErr  error
	}{
		{"foreign market", domain.ErrMarketNotAccessible, domain.ErrMarketNotAccessible},
		{"inactive market", domain.ErrMarketInactive, domain.ErrMarketInactive},
		{"unknown market", domain.ErrNotFound, domain.ErrMarketNotAccessible},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture()
			ctx := context.Background()
			tenant := activeTenant()
			target := uuid.New()
			staff := domain.StaffProfile{ID: uuid.New(), TenantID: tenant.ID, Initials: "AB", PinHash: mustHash(t, "1234"), IsActive: true}

			f.tenantRepo.On("GetBySlug", ctx, "frischmarkt").Return(tenant, nil)
			f.staffRepo.On("ListActiveByInitials", ctx, tenant.ID, "AB").Return([]domain.StaffProfile{staff}, nil)
			f.markets.On("CheckSelectable", ctx, tenant.ID, staff.ID, target).Return(nil, tt.checkErr)

			_, err := f.svc.Login(ctx, service.LoginInput{TenantSlug: "frischmarkt", Initials: "AB", PIN: "1234", MarketID: &target})

			assert.ErrorIs(t, err, tt.wantErr)
			f.myMarketRepo.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
		})
	}
}

func TestAuthService_Login_FallsBackToFirstSelectable(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	tenant := activeTenant()
	staff := domain.StaffProfile{ID: uuid.New(), TenantID: tenant.ID, Initials: "AB", PinHash: mustHash(t, "1234"), IsActive: true}
	first := domain.Market{ID: uuid.New(), TenantID: tenant.ID, Code: "A", IsActive: true}
	second := domain.Market{ID: uuid.New(), TenantID: tenant.ID, Code: "B", IsActive: true}

	f.tenantRepo.On("GetBySlug", ctx, "frischmarkt").Return(tenant, nil)
	f.staffRepo.On("ListActiveByInitials", ctx, tenant.ID, "AB").Return([]domain.StaffProfile{staff}, nil)
	f.myMarketRepo.On("Get", ctx, tenant.ID, staff.ID).Return(nil, domain.ErrNotFound)
	f.markets.On("ListSelectable", ctx, tenant.ID, staff.ID).Return([]domain.Market{first, second}, nil)
	f.myMarketRepo.On("Set", ctx, mock.Anything).Return(nil)
	f.rbac.On("EffectiveRole", ctx, tenant.ID, staff.ID, first.ID).Return(domain.RoleStaff, nil)

	pair, err := f.svc.Login(ctx, service.LoginInput{TenantSlug: "frischmarkt", Initials: "AB", PIN: "1234"})

	require.NoError(t, err)
	assert.Equal(t, first.ID, pair.MarketID)
}

func TestAuthService_Login_NoSelectableMarket(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	tenant := activeTenant()
	staff := domain.StaffProfile{ID: uuid.New(), TenantID: tenant.ID, Initials: "AB", PinHash: mustHash(t, "1234"), IsActive: true}

	f.tenantRepo.On("GetBySlug", ctx, "frischmarkt").Return(tenant, nil)
	f.staffRepo.On("ListActiveByInitials", ctx, tenant.ID, "AB").Return([]domain.StaffProfile{staff}, nil)
	f.myMarketRepo.On("Get", ctx, tenant.ID, staff.ID).Return(nil, domain.ErrNotFound)
	f.markets.On("ListSelectable", ctx, tenant.ID, staff.ID).Return([]domain.Market{}, nil)

	_, err := f.svc.Login(ctx, service.LoginInput{TenantSlug: "frischmarkt", Initials: "AB", PIN: "1234"})

	assert.ErrorIs(t, err, domain.ErrMarketRequired)
}

func TestAuthService_RefreshToken(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	tenant := activeTenant()
	market := &domain.Market{ID: uuid.New(), TenantID: tenant.ID, IsActive: true}
	staff := &domain.StaffProfile{ID: uuid.New(), TenantID: tenant.ID, Initials: "CD", PinHash: mustHash(t, "4321"), IsActive: true}

	f.tenantRepo.On("GetBySlug", ctx, "frischmarkt").Return(tenant, nil)
	f.staffRepo.On("ListActiveByInitials", ctx, tenant.ID, "CD").Return([]domain.StaffProfile{*staff}, nil)
	f.myMarketRepo.On("Get", ctx, tenant.ID, staff.ID).Return(&domain.MyMarket{StaffID: staff.ID, TenantID: tenant.ID, MarketID: market.ID}, nil)
	f.markets.On("CheckSelectable", ctx, tenant.ID, staff.ID, market.ID).Return(market, nil)
	f.myMarketRepo.On("Set", ctx, mock.Anything).Return(nil)
	f.rbac.On("EffectiveRole", ctx, tenant.ID, staff.ID, market.ID).Return(domain.RoleStaff, nil)
	f.tenantRepo.On("GetByID", ctx, tenant.ID).Return(tenant, nil)
	f.staffRepo.On("GetByID", ctx, tenant.ID, staff.ID).Return(staff, nil)

	pair, err := f.svc.Login(ctx, service.LoginInput{TenantSlug: "frischmarkt", Initials: "CD", PIN: "4321"})
	require.NoError(t, err)

	refreshed, err := f.svc.RefreshToken(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, market.ID, refreshed.MarketID)
	assert.NotEmpty(t, refreshed.AccessToken)

	// Access tokens cannot refresh and refresh tokens cannot authenticate.
	_, err = f.svc.RefreshToken(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = f.svc.ValidateToken(pair.RefreshToken)
	assert.Error(t, err)
}

func TestAuthService_RefreshToken_InactiveStaff(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	tenant := activeTenant()
	market := &domain.Market{ID: uuid.New(), TenantID: tenant.ID, IsActive: true}
	staff := &domain.StaffProfile{ID: uuid.New(), TenantID: tenant.ID, Initials: "CD", PinHash: mustHash(t, "4321"), IsActive: true}

	f.tenantRepo.On("GetBySlug", ctx, "frischmarkt").Return(tenant, nil)
	f.staffRepo.On("ListActiveByInitials", ctx, tenant.ID, "CD").Return([]domain.StaffProfile{*staff}, nil)
	f.myMarketRepo.On("Get", ctx, tenant.ID, staff.ID).Return(nil, domain.ErrNotFound)
	f.markets.On("ListSelectable", ctx, tenant.ID, staff.ID).Return([]domain.Market{*market}, nil)
	f.myMarketRepo.On("Set", ctx, mock.Anything).Return(nil)
	f.rbac.On("EffectiveRole", ctx, tenant.ID, staff.ID, market.ID).Return(domain.RoleStaff, nil)

	pair, err := f.svc.Login(ctx, service.LoginInput{TenantSlug: "frischmarkt", Initials: "CD", PIN: "4321"})
	require.NoError(t, err)

	inactive := *staff
	inactive.IsActive = false
	f.tenantRepo.On("GetByID", ctx, tenant.ID).Return(tenant, nil)
	f.staffRepo.On("GetByID", ctx, tenant.ID, staff.ID).Return(&inactive, nil)

	_, err = f.svc.RefreshToken(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrStaffInactive)
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	f := newAuthFixture()
	_, err := f.svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestAuthService_SwitchMarket(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	tenant := activeTenant()
	staff := &domain.StaffProfile{ID: uuid.New(), TenantID: tenant.ID, Initials: "AB", IsActive: true}
	target := &domain.Market{ID: uuid.New(), TenantID: tenant.ID, IsActive: true}
	actor := domain.Actor{TenantID: tenant.ID, StaffID: staff.ID, MarketID: uuid.New(), Role: domain.RoleStaff}

	f.staffRepo.On("GetByID", ctx, tenant.ID, staff.ID).Return(staff, nil)
	f.markets.On("CheckSelectable", ctx, tenant.ID, staff.ID, target.ID).Return(target, nil)
	f.myMarketRepo.On("Set", ctx, mock.MatchedBy(func(m *domain.MyMarket) bool { return m.MarketID == target.ID })).Return(nil)
	f.rbac.On("EffectiveRole", ctx, tenant.ID, staff.ID, target.ID).Return(domain.RoleAdmin, nil)

	pair, err := f.svc.SwitchMarket(ctx, actor, target.ID)

	require.NoError(t, err)
	assert.Equal(t, target.ID, pair.MarketID)
	assert.Equal(t, domain.RoleAdmin, pair.Role)
}

func TestAuthService_SwitchMarket_NotAccessible(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	tenant := activeTenant()
	staff := &domain.StaffProfile{ID: uuid.New(), TenantID: tenant.ID, IsActive: true}
	target := uuid.New()
	actor := domain.Actor{TenantID: tenant.ID, StaffID: staff.ID}

	f.staffRepo.On("GetByID", ctx, tenant.ID, staff.ID).Return(staff, nil)
	f.markets.On("CheckSelectable", ctx, tenant.ID, staff.ID, target).Return(nil, domain.ErrMarketNotAccessible)

	_, err := f.svc.SwitchMarket(ctx, actor, target)

	assert.ErrorIs(t, err, domain.ErrMarketNotAccessible)
	f.myMarketRepo.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
}

func TestAuthService_RefreshToken_InactiveTenant(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	tenant := activeTenant()
	market := &domain.Market{ID: uuid.New(), TenantID: tenant.ID, IsActive: true}
	staff := domain.StaffProfile{ID: uuid.New(), TenantID: tenant.ID, MarketID: &market.ID, Initials: "CD", PinHash: mustHash(t, "4321"), IsActive: true}

	f.tenantRepo.On("GetBySlug", ctx, "frischmarkt").Return(tenant, nil)
	f.staffRepo.On("ListActiveByInitials", ctx, tenant.ID, "CD").Return([]domain.StaffProfile{staff}, nil)
	f.markets.On("CheckSelectable", ctx, tenant.ID, staff.ID, market.ID).Return(market, nil)
	f.myMarketRepo.On("Set", ctx, mock.Anything).Return(nil)
	f.rbac.On("EffectiveRole", ctx, tenant.ID, staff.ID, market.ID).Return(domain.RoleStaff, nil)

	pair, err := f.svc.Login(ctx, service.LoginInput{TenantSlug: "frischmarkt", Initials: "CD", PIN: "4321", MarketID: &market.ID})
	require.NoError(t, err)

	deactivated := *tenant
	deactivated.IsActive = false
	f.tenantRepo.On("GetByID", ctx, tenant.ID).Return(&deactivated, nil)

	_, err = f.svc.RefreshToken(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTenantInactive)
	f.staffRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_SwitchMarket_InactiveStaff(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	tenant := activeTenant()
	staff := &domain.StaffProfile{ID: uuid.New(), TenantID: tenant.ID, IsActive: false}
	actor := domain.Actor{TenantID: tenant.ID, StaffID: staff.ID}

	f.staffRepo.On("GetByID", ctx, tenant.ID, staff.ID).Return(staff, nil)

	_, err := f.svc.SwitchMarket(ctx, actor, uuid.New())

	assert.ErrorIs(t, err, domain.ErrStaffInactive)
	f.markets.AssertNotCalled(t, "CheckSelectable", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

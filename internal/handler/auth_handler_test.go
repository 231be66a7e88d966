package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"haccp/internal/domain"
	"haccp/internal/handler"
	"haccp/internal/service"
	"haccp/mocks"
)

func newAuthHandler() (*handler.AuthHandler, *mocks.MockAuthService, *mocks.MockMarketService) {
	authSvc := new(mocks.MockAuthService)
	marketSvc := new(mocks.MockMarketService)
	return handler.NewAuthHandler(authSvc, marketSvc), authSvc, marketSvc
}

func TestAuthHandler_Login_Success(t *testing.T) {
	h, authSvc, _ := newAuthHandler()
	pair := &service.TokenPair{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(15 * time.Minute),
		MarketID:     uuid.New(),
		Role:         domain.RoleStaff,
	}
	authSvc.On("Login", mock.Anything, mock.MatchedBy(func(in service.LoginInput) bool {
		return in.TenantSlug == "frischmarkt" && in.Initials == "AB" && in.PIN == "1234"
	})).Return(pair, nil)

	c, w := newContext(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"tenant_slug": "frischmarkt",
		"initials":    "AB",
		"pin":         "1234",
	})
	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "access", data["access_token"])
	authSvc.AssertExpectations(t)
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h, authSvc, _ := newAuthHandler()

	c, w := newContext(http.MethodPost, "/api/v1/auth/login", map[string]string{"tenant_slug": "frischmarkt"})
	h.Login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode(t, w).Error.Code)
	authSvc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestAuthHandler_Login_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"market required", domain.ErrMarketRequired, http.StatusConflict, "MARKET_REQUIRED"},
		{"tenant inactive", domain.ErrTenantInactive, http.StatusForbidden, "TENANT_INACTIVE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, authSvc, _ := newAuthHandler()
			authSvc.On("Login", mock.Anything, mock.Anything).Return(nil, tt.err)

			c, w := newContext(http.MethodPost, "/api/v1/auth/login", map[string]string{
				"tenant_slug": "frischmarkt", "initials": "AB", "pin": "1234",
			})
			h.Login(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decode(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestAuthHandler_RefreshToken_Unauthorized(t *testing.T) {
	h, authSvc, _ := newAuthHandler()
	authSvc.On("RefreshToken", mock.Anything, "stale").Return(nil, domain.ErrUnauthorized)

	c, w := newContext(http.MethodPost, "/api/v1/auth/refresh", map[string]string{"refresh_token": "stale"})
	h.RefreshToken(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Me_NoAuthContext(t *testing.T) {
	h, authSvc, _ := newAuthHandler()

	c, w := newContext(http.MethodGet, "/api/v1/me", nil)
	h.Me(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	authSvc.AssertNotCalled(t, "Me", mock.Anything, mock.Anything)
}

func TestAuthHandler_Markets(t *testing.T) {
	h, _, marketSvc := newAuthHandler()
	actor := testActor(domain.RoleStaff)
	marketSvc.On("ListSelectable", mock.Anything, actor.TenantID, actor.StaffID).
		Return([]domain.Market{{ID: actor.MarketID, Name: "Mitte"}}, nil)

	c, w := newContext(http.MethodGet, "/api/v1/me/markets", nil)
	setActor(c, actor)
	h.Markets(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w).Data, 1)
}

func TestAuthHandler_SwitchMarket(t *testing.T) {
	h, authSvc, _ := newAuthHandler()
	actor := testActor(domain.RoleStaff)
	target := uuid.New()
	authSvc.On("SwitchMarket", mock.Anything, actor, target).
		Return(&service.TokenPair{AccessToken: "a", MarketID: target}, nil)

	c, w := newContext(http.MethodPut, "/api/v1/me/market", map[string]string{"market_id": target.String()})
	setActor(c, actor)
	h.SwitchMarket(c)

	assert.Equal(t, http.StatusOK, w.Code)
	authSvc.AssertExpectations(t)
}

func TestAuthHandler_SwitchMarket_NotAccessible(t *testing.T) {
	h, authSvc, _ := newAuthHandler()
	actor := testActor(domain.RoleStaff)
	authSvc.On("SwitchMarket", mock.Anything, actor, mock.Anything).Return(nil, domain.ErrMarketNotAccessible)

	c, w := newContext(http.MethodPut, "/api/v1/me/market", map[string]string{"market_id": uuid.NewString()})
	setActor(c, actor)
	h.SwitchMarket(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "MARKET_NOT_ACCESSIBLE", decode(t, w).Error.Code)
}

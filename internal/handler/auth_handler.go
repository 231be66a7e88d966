package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"haccp/internal/service"
)

// AuthHandler handles authentication and session endpoints.
type AuthHandler struct {
	authService service.AuthService
	markets     service.MarketService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, markets service.MarketService) *AuthHandler {
	return &AuthHandler{authService: authService, markets: markets}
}

// Login handles POST /api/v1/auth/login
// @Summary Log in with initials and PIN
// @Description Authenticate a staff member of a tenant and select a market
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} Response{data=service.TokenPair} "Token pair"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Invalid credentials"
// @Failure 403 {object} ErrorResponseBody "Tenant, staff or market inactive"
// @Failure 409 {object} ErrorResponseBody "Market required"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input service.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	tokenPair, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tokenPair)
}

// RefreshToken handles POST /api/v1/auth/refresh
// @Summary Refresh tokens
// @Description Exchange a refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} Response{data=service.TokenPair} "Token pair"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Invalid refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var input service.RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	tokenPair, err := h.authService.RefreshToken(c.Request.Context(), input.RefreshToken)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tokenPair)
}

// Me handles GET /api/v1/me
// @Summary Current session
// @Description Staff profile, tenant, selected market, effective role and selectable markets
// @Tags me
// @Produce json
// @Success 200 {object} Response{data=service.MeResult} "Session details"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	me, err := h.authService.Me(c.Request.Context(), actor)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, me)
}

// Markets handles GET /api/v1/me/markets
// @Summary Selectable markets
// @Tags me
// @Produce json
// @Success 200 {object} Response{data=[]domain.Market} "Markets"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /me/markets [get]
func (h *AuthHandler) Markets(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	markets, err := h.markets.ListSelectable(c.Request.Context(), actor.TenantID, actor.StaffID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, markets)
}

// SwitchMarket handles PUT /api/v1/me/market
// @Summary Switch the selected market
// @Description Persists the selection and re-issues tokens for the new market
// @Tags me
// @Accept json
// @Produce json
// @Param request body SwitchMarketRequest true "Market"
// @Success 200 {object} Response{data=service.TokenPair} "Token pair"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 403 {object} ErrorResponseBody "Market not accessible or inactive"
// @Security BearerAuth
// @Router /me/market [put]
func (h *AuthHandler) SwitchMarket(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var input service.SwitchMarketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	tokenPair, err := h.authService.SwitchMarket(c.Request.Context(), actor, input.MarketID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tokenPair)
}

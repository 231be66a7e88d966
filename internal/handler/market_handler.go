package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"haccp/internal/service"
)

// MarketHandler handles market administration endpoints.
type MarketHandler struct {
	marketService service.MarketService
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(marketService service.MarketService) *MarketHandler {
	return &MarketHandler{marketService: marketService}
}

// Create handles POST /api/v1/admin/markets
// @Summary Create a market
// @Tags markets
// @Accept json
// @Produce json
// @Param request body CreateMarketRequest true "Market details"
// @Success 201 {object} Response{data=domain.Market} "Market created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 403 {object} ErrorResponseBody "Forbidden - superadmin only"
// @Failure 409 {object} ErrorResponseBody "Code already exists"
// @Security BearerAuth
// @Router /admin/markets [post]
func (h *MarketHandler) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var input service.CreateMarketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	market, err := h.marketService.Create(c.Request.Context(), actor.TenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, market)
}

// List handles GET /api/v1/admin/markets
// @Summary List markets
// @Tags markets
// @Produce json
// @Param active query bool false "Only active markets"
// @Success 200 {object} Response{data=[]domain.Market} "Markets"
// @Failure 403 {object} ErrorResponseBody "Forbidden"
// @Security BearerAuth
// @Router /admin/markets [get]
func (h *MarketHandler) List(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	markets, err := h.marketService.List(c.Request.Context(), actor.TenantID, queryBool(c, "active"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, markets)
}

// GetByID handles GET /api/v1/admin/markets/:id
// @Summary Get market by ID
// @Tags markets
// @Produce json
// @Param id path string true "Market ID (UUID)"
// @Success 200 {object} Response{data=domain.Market} "Market details"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Market not found"
// @Security BearerAuth
// @Router /admin/markets/{id} [get]
func (h *MarketHandler) GetByID(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "market")
	if !ok {
		return
	}

	market, err := h.marketService.GetByID(c.Request.Context(), actor.TenantID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, market)
}

// Update handles PUT /api/v1/admin/markets/:id
// @Summary Update a market
// @Tags markets
// @Accept json
// @Produce json
// @Param id path string true "Market ID (UUID)"
// @Param request body UpdateMarketRequest true "Fields to update"
// @Success 200 {object} Response{data=domain.Market} "Market updated"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Market not found"
// @Failure 409 {object} ErrorResponseBody "Code already exists"
// @Security BearerAuth
// @Router /admin/markets/{id} [put]
func (h *MarketHandler) Update(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "market")
	if !ok {
		return
	}

	var input service.UpdateMarketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	market, err := h.marketService.Update(c.Request.Context(), actor.TenantID, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, market)
}

// Delete handles DELETE /api/v1/admin/markets/:id
// @Summary Delete a market
// @Tags markets
// @Produce json
// @Param id path string true "Market ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Market deleted"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Market not found"
// @Failure 409 {object} ErrorResponseBody "Market has staff or documentation"
// @Security BearerAuth
// @Router /admin/markets/{id} [delete]
func (h *MarketHandler) Delete(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "market")
	if !ok {
		return
	}
	if id == actor.MarketID {
		RespondError(c, http.StatusBadRequest, "MARKET_SELECTED", "cannot delete the currently selected market")
		return
	}

	if err := h.marketService.Delete(c.Request.Context(), actor.TenantID, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "market deleted"})
}

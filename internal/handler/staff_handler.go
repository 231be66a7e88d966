package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"haccp/internal/service"
)

// StaffHandler handles staff administration and own-PIN endpoints.
type StaffHandler struct {
	staffService service.StaffService
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(staffService service.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

// ResetPINRequest is the body of an admin PIN reset.
type ResetPINRequest struct {
	PIN string `json:"pin" binding:"required" example:"4711"`
}

// ChangePINRequest is the body of a PIN change by the staff member.
type ChangePINRequest struct {
	CurrentPIN string `json:"current_pin" binding:"required" example:"4711"`
	NewPIN     string `json:"new_pin" binding:"required" example:"0815"`
}

// Create handles POST /api/v1/admin/staff
// @Summary Create a staff profile
// @Tags staff
// @Accept json
// @Produce json
// @Param request body service.CreateStaffInput true "Staff details"
// @Success 201 {object} Response{data=domain.StaffProfile} "Staff created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 403 {object} ErrorResponseBody "Forbidden"
// @Failure 409 {object} ErrorResponseBody "Duplicate signature"
// @Security BearerAuth
// @Router /admin/staff [post]
func (h *StaffHandler) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var input service.CreateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	staff, err := h.staffService.Create(c.Request.Context(), actor, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, staff)
}

// List handles GET /api/v1/admin/staff
// @Summary List staff profiles
// @Tags staff
// @Produce json
// @Param market_id query string false "Filter by market (UUID)"
// @Param active query bool false "Only active profiles"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.StaffProfile,meta=PagMeta} "Staff profiles"
// @Failure 403 {object} ErrorResponseBody "Forbidden"
// @Security BearerAuth
// @Router /admin/staff [get]
func (h *StaffHandler) List(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	marketID, ok := parseOptionalUUIDQuery(c, "market_id")
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	staff, total, err := h.staffService.List(c.Request.Context(), actor, service.ListStaffInput{
		MarketID:   marketID,
		ActiveOnly: queryBool(c, "active"),
		Offset:     offset,
		Limit:      limit,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, staff, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/admin/staff/:id
// @Summary Get a staff profile
// @Tags staff
// @Produce json
// @Param id path string true "Staff ID (UUID)"
// @Success 200 {object} Response{data=domain.StaffProfile} "Staff profile"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Staff not found"
// @Security BearerAuth
// @Router /admin/staff/{id} [get]
func (h *StaffHandler) GetByID(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "staff")
	if !ok {
		return
	}

	staff, err := h.staffService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, staff)
}

// Update handles PUT /api/v1/admin/staff/:id
// @Summary Update a staff profile
// @Description Changing initials or scope, or reactivating, requires the current PIN
// @Tags staff
// @Accept json
// @Produce json
// @Param id path string true "Staff ID (UUID)"
// @Param request body service.UpdateStaffInput true "Fields to update"
// @Success 200 {object} Response{data=domain.StaffProfile} "Staff updated"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Staff not found"
// @Failure 409 {object} ErrorResponseBody "Duplicate signature"
// @Security BearerAuth
// @Router /admin/staff/{id} [put]
func (h *StaffHandler) Update(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "staff")
	if !ok {
		return
	}

	var input service.UpdateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	staff, err := h.staffService.Update(c.Request.Context(), actor, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, staff)
}

// ResetPIN handles PUT /api/v1/admin/staff/:id/pin
// @Summary Reset a staff member's PIN
// @Tags staff
// @Accept json
// @Produce json
// @Param id path string true "Staff ID (UUID)"
// @Param request body ResetPINRequest true "New PIN"
// @Success 200 {object} Response{data=MessageResponse} "PIN reset"
// @Failure 400 {object} ErrorResponseBody "Invalid PIN"
// @Failure 409 {object} ErrorResponseBody "Duplicate signature"
// @Security BearerAuth
// @Router /admin/staff/{id}/pin [put]
func (h *StaffHandler) ResetPIN(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "staff")
	if !ok {
		return
	}

	var input ResetPINRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.staffService.ResetPIN(c.Request.Context(), actor, id, input.PIN); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "PIN reset"})
}

// Delete handles DELETE /api/v1/admin/staff/:id
// @Summary Delete a staff profile
// @Description Profiles that signed entries cannot be deleted; deactivate them instead
// @Tags staff
// @Produce json
// @Param id path string true "Staff ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Staff deleted"
// @Failure 404 {object} ErrorResponseBody "Staff not found"
// @Failure 409 {object} ErrorResponseBody "Staff referenced by entries"
// @Security BearerAuth
// @Router /admin/staff/{id} [delete]
func (h *StaffHandler) Delete(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "staff")
	if !ok {
		return
	}

	if err := h.staffService.Delete(c.Request.Context(), actor, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "staff deleted"})
}

// ChangeOwnPIN handles PUT /api/v1/me/pin
// @Summary Change own PIN
// @Tags me
// @Accept json
// @Produce json
// @Param request body ChangePINRequest true "Current and new PIN"
// @Success 200 {object} Response{data=MessageResponse} "PIN changed"
// @Failure 400 {object} ErrorResponseBody "Invalid PIN"
// @Failure 401 {object} ErrorResponseBody "Current PIN wrong"
// @Failure 409 {object} ErrorResponseBody "Duplicate signature"
// @Security BearerAuth
// @Router /me/pin [put]
func (h *StaffHandler) ChangeOwnPIN(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var input ChangePINRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.staffService.ChangeOwnPIN(c.Request.Context(), actor, input.CurrentPIN, input.NewPIN); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "PIN changed"})
}

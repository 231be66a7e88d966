package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"haccp/internal/service"
)

// EntryHandler handles entry submission, instance and calendar endpoints.
type EntryHandler struct {
	entryService service.EntryService
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryService service.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// Submit handles POST /api/v1/forms/:id/entries
// @Summary Submit a signed entry
// @Description Validates the data against the form fields, verifies the initials/PIN signature and records the entry in the period of entry_date (default today).
// @Tags entries
// @Accept json
// @Produce json
// @Param id path string true "Form ID (UUID)"
// @Param request body service.SubmitEntryInput true "Entry"
// @Success 201 {object} Response{data=service.SubmitResult} "Entry recorded"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Invalid signature"
// @Failure 404 {object} ErrorResponseBody "Form not found"
// @Failure 422 {object} ErrorResponseBody "Corrective action required"
// @Security BearerAuth
// @Router /forms/{id}/entries [post]
func (h *EntryHandler) Submit(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	formID, ok := parseIDParam(c, "id", "form")
	if !ok {
		return
	}

	var input service.SubmitEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.entryService.Submit(c.Request.Context(), actor, formID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// GetInstance handles GET /api/v1/forms/:id/instances/:ref
// @Summary Get the instance of a period
// @Description Status and entries of the period; "current" selects the period containing today
// @Tags entries
// @Produce json
// @Param id path string true "Form ID (UUID)"
// @Param ref path string true "Period reference or current"
// @Success 200 {object} Response{data=service.InstanceView} "Instance"
// @Failure 400 {object} ErrorResponseBody "Invalid period reference"
// @Failure 404 {object} ErrorResponseBody "Form not found"
// @Security BearerAuth
// @Router /forms/{id}/instances/{ref} [get]
func (h *EntryHandler) GetInstance(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	formID, ok := parseIDParam(c, "id", "form")
	if !ok {
		return
	}

	view, err := h.entryService.GetInstance(c.Request.Context(), actor, formID, c.Param("ref"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// Calendar handles GET /api/v1/forms/:id/calendar
// @Summary Month calendar of a form
// @Tags entries
// @Produce json
// @Param id path string true "Form ID (UUID)"
// @Param month query string false "Month (YYYY-MM), default current"
// @Success 200 {object} Response{data=service.CalendarView} "Calendar"
// @Failure 400 {object} ErrorResponseBody "Invalid month"
// @Failure 404 {object} ErrorResponseBody "Form not found"
// @Security BearerAuth
// @Router /forms/{id}/calendar [get]
func (h *EntryHandler) Calendar(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	formID, ok := parseIDParam(c, "id", "form")
	if !ok {
		return
	}

	view, err := h.entryService.Calendar(c.Request.Context(), actor, formID, c.Query("month"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// GetEntry handles GET /api/v1/entries/:id
// @Summary Get an entry
// @Tags entries
// @Produce json
// @Param id path string true "Entry ID (UUID)"
// @Success 200 {object} Response{data=domain.FormEntry} "Entry"
// @Failure 404 {object} ErrorResponseBody "Entry not found"
// @Security BearerAuth
// @Router /entries/{id} [get]
func (h *EntryHandler) GetEntry(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "entry")
	if !ok {
		return
	}

	entry, err := h.entryService.GetEntry(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, entry)
}

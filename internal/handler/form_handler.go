package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"haccp/internal/domain"
	"haccp/internal/service"
)

// FormHandler handles form definition endpoints.
type FormHandler struct {
	formService service.FormDefinitionService
}

// NewFormHandler creates a new FormHandler.
func NewFormHandler(formService service.FormDefinitionService) *FormHandler {
	return &FormHandler{formService: formService}
}

// ListVisible handles GET /api/v1/forms
// @Summary List visible forms
// @Description Active form definitions visible in the selected market
// @Tags forms
// @Produce json
// @Param section_id query string false "Filter by section (UUID)"
// @Param category query string false "Filter by category"
// @Success 200 {object} Response{data=[]domain.FormDefinition} "Forms"
// @Security BearerAuth
// @Router /forms [get]
func (h *FormHandler) ListVisible(c *gin.Context) {
	h.list(c, false)
}

// ListAll handles GET /api/v1/admin/forms
// @Summary List all form definitions
// @Description Every definition of the tenant including inactive ones (admin)
// @Tags forms
// @Produce json
// @Param section_id query string false "Filter by section (UUID)"
// @Param category query string false "Filter by category"
// @Success 200 {object} Response{data=[]domain.FormDefinition} "Forms"
// @Security BearerAuth
// @Router /admin/forms [get]
func (h *FormHandler) ListAll(c *gin.Context) {
	h.list(c, true)
}

func (h *FormHandler) list(c *gin.Context, all bool) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	sectionID, ok := parseOptionalUUIDQuery(c, "section_id")
	if !ok {
		return
	}

	forms, err := h.formService.List(c.Request.Context(), actor, service.ListFormsInput{
		SectionID: sectionID,
		Category:  domain.FormCategory(c.Query("category")),
		All:       all,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, forms)
}

// GetVisible handles GET /api/v1/forms/:id
// @Summary Get a visible form
// @Tags forms
// @Produce json
// @Param id path string true "Form ID (UUID)"
// @Success 200 {object} Response{data=domain.FormDefinition} "Form"
// @Failure 404 {object} ErrorResponseBody "Form not found"
// @Security BearerAuth
// @Router /forms/{id} [get]
func (h *FormHandler) GetVisible(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "form")
	if !ok {
		return
	}

	form, err := h.formService.GetVisible(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, form)
}

// Create handles POST /api/v1/admin/forms
// @Summary Create a form definition
// @Tags forms
// @Accept json
// @Produce json
// @Param request body service.CreateFormDefinitionInput true "Form definition"
// @Success 201 {object} Response{data=domain.FormDefinition} "Form created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 403 {object} ErrorResponseBody "Forbidden"
// @Failure 409 {object} ErrorResponseBody "Key already exists"
// @Security BearerAuth
// @Router /admin/forms [post]
func (h *FormHandler) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var input service.CreateFormDefinitionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	form, err := h.formService.Create(c.Request.Context(), actor, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, form)
}

// GetByID handles GET /api/v1/admin/forms/:id
// @Summary Get a form definition
// @Tags forms
// @Produce json
// @Param id path string true "Form ID (UUID)"
// @Success 200 {object} Response{data=domain.FormDefinition} "Form"
// @Failure 404 {object} ErrorResponseBody "Form not found"
// @Security BearerAuth
// @Router /admin/forms/{id} [get]
func (h *FormHandler) GetByID(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "form")
	if !ok {
		return
	}

	form, err := h.formService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, form)
}

// Update handles PUT /api/v1/admin/forms/:id
// @Summary Update a form definition
// @Tags forms
// @Accept json
// @Produce json
// @Param id path string true "Form ID (UUID)"
// @Param request body service.UpdateFormDefinitionInput true "Fields to update"
// @Success 200 {object} Response{data=domain.FormDefinition} "Form updated"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Form not found"
// @Security BearerAuth
// @Router /admin/forms/{id} [put]
func (h *FormHandler) Update(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "form")
	if !ok {
		return
	}

	var input service.UpdateFormDefinitionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	form, err := h.formService.Update(c.Request.Context(), actor, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, form)
}

// Delete handles DELETE /api/v1/admin/forms/:id
// @Summary Delete a form definition
// @Tags forms
// @Produce json
// @Param id path string true "Form ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Form deleted"
// @Failure 404 {object} ErrorResponseBody "Form not found"
// @Failure 409 {object} ErrorResponseBody "Form has documentation"
// @Security BearerAuth
// @Router /admin/forms/{id} [delete]
func (h *FormHandler) Delete(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "form")
	if !ok {
		return
	}

	if err := h.formService.Delete(c.Request.Context(), actor, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "form deleted"})
}

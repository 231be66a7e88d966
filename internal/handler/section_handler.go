package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"haccp/internal/service"
)

// SectionHandler handles documentation section endpoints.
type SectionHandler struct {
	sectionService service.DokuSectionService
}

// NewSectionHandler creates a new SectionHandler.
func NewSectionHandler(sectionService service.DokuSectionService) *SectionHandler {
	return &SectionHandler{sectionService: sectionService}
}

// ListVisible handles GET /api/v1/doku/sections
// @Summary List visible documentation sections
// @Tags doku
// @Produce json
// @Success 200 {object} Response{data=[]domain.DokuSection} "Sections"
// @Security BearerAuth
// @Router /doku/sections [get]
func (h *SectionHandler) ListVisible(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	sections, err := h.sectionService.ListVisible(c.Request.Context(), actor)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, sections)
}

// ListAll handles GET /api/v1/admin/doku-sections
// @Summary List all documentation sections
// @Tags doku
// @Produce json
// @Success 200 {object} Response{data=[]domain.DokuSection} "Sections"
// @Security BearerAuth
// @Router /admin/doku-sections [get]
func (h *SectionHandler) ListAll(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	sections, err := h.sectionService.ListAll(c.Request.Context(), actor)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, sections)
}

// Create handles POST /api/v1/admin/doku-sections
// @Summary Create a documentation section
// @Tags doku
// @Accept json
// @Produce json
// @Param request body service.CreateDokuSectionInput true "Section"
// @Success 201 {object} Response{data=domain.DokuSection} "Section created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 409 {object} ErrorResponseBody "Key already exists"
// @Security BearerAuth
// @Router /admin/doku-sections [post]
func (h *SectionHandler) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var input service.CreateDokuSectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	section, err := h.sectionService.Create(c.Request.Context(), actor, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, section)
}

// GetByID handles GET /api/v1/admin/doku-sections/:id
// @Summary Get a documentation section
// @Tags doku
// @Produce json
// @Param id path string true "Section ID (UUID)"
// @Success 200 {object} Response{data=domain.DokuSection} "Section"
// @Failure 404 {object} ErrorResponseBody "Section not found"
// @Security BearerAuth
// @Router /admin/doku-sections/{id} [get]
func (h *SectionHandler) GetByID(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "section")
	if !ok {
		return
	}

	section, err := h.sectionService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, section)
}

// Update handles PUT /api/v1/admin/doku-sections/:id
// @Summary Update a documentation section
// @Tags doku
// @Accept json
// @Produce json
// @Param id path string true "Section ID (UUID)"
// @Param request body service.UpdateDokuSectionInput true "Fields to update"
// @Success 200 {object} Response{data=domain.DokuSection} "Section updated"
// @Failure 404 {object} ErrorResponseBody "Section not found"
// @Security BearerAuth
// @Router /admin/doku-sections/{id} [put]
func (h *SectionHandler) Update(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "section")
	if !ok {
		return
	}

	var input service.UpdateDokuSectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	section, err := h.sectionService.Update(c.Request.Context(), actor, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, section)
}

// Delete handles DELETE /api/v1/admin/doku-sections/:id
// @Summary Delete a documentation section
// @Description Forms of the section fall back to the "Sonstiges" group
// @Tags doku
// @Produce json
// @Param id path string true "Section ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Section deleted"
// @Failure 404 {object} ErrorResponseBody "Section not found"
// @Security BearerAuth
// @Router /admin/doku-sections/{id} [delete]
func (h *SectionHandler) Delete(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "section")
	if !ok {
		return
	}

	if err := h.sectionService.Delete(c.Request.Context(), actor, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "section deleted"})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"haccp/internal/domain"
	"haccp/internal/service"
)

// RbacHandler handles role assignment endpoints.
type RbacHandler struct {
	rbacService service.RbacService
}

// NewRbacHandler creates a new RbacHandler.
func NewRbacHandler(rbacService service.RbacService) *RbacHandler {
	return &RbacHandler{rbacService: rbacService}
}

// List handles GET /api/v1/admin/rbac
// @Summary List role assignments
// @Tags rbac
// @Produce json
// @Param staff_id query string false "Filter by staff (UUID)"
// @Success 200 {object} Response{data=[]domain.RbacAssignment} "Assignments"
// @Failure 403 {object} ErrorResponseBody "Forbidden - superadmin only"
// @Security BearerAuth
// @Router /admin/rbac [get]
func (h *RbacHandler) List(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	staffID, ok := parseOptionalUUIDQuery(c, "staff_id")
	if !ok {
		return
	}

	var (
		list []domain.RbacAssignment
		err  error
	)
	if staffID != nil {
		list, err = h.rbacService.ListByStaff(c.Request.Context(), actor.TenantID, *staffID)
	} else {
		list, err = h.rbacService.List(c.Request.Context(), actor.TenantID)
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, list)
}

// Grant handles POST /api/v1/admin/rbac
// @Summary Grant a role
// @Tags rbac
// @Accept json
// @Produce json
// @Param request body service.GrantRoleInput true "Assignment"
// @Success 201 {object} Response{data=domain.RbacAssignment} "Assignment created"
// @Failure 400 {object} ErrorResponseBody "Invalid role"
// @Failure 409 {object} ErrorResponseBody "Duplicate assignment"
// @Security BearerAuth
// @Router /admin/rbac [post]
func (h *RbacHandler) Grant(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var input service.GrantRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	assignment, err := h.rbacService.Grant(c.Request.Context(), actor, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, assignment)
}

// Revoke handles DELETE /api/v1/admin/rbac/:id
// @Summary Revoke a role assignment
// @Tags rbac
// @Produce json
// @Param id path string true "Assignment ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Assignment revoked"
// @Failure 400 {object} ErrorResponseBody "Cannot revoke own superadmin"
// @Failure 404 {object} ErrorResponseBody "Assignment not found"
// @Security BearerAuth
// @Router /admin/rbac/{id} [delete]
func (h *RbacHandler) Revoke(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "assignment")
	if !ok {
		return
	}

	if err := h.rbacService.Revoke(c.Request.Context(), actor, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "assignment revoked"})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"haccp/internal/service"
)

// AttachmentHandler handles entry attachment endpoints.
type AttachmentHandler struct {
	attachmentService service.AttachmentService
}

// NewAttachmentHandler creates a new AttachmentHandler.
func NewAttachmentHandler(attachmentService service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// Upload handles POST /api/v1/entries/:id/attachments
// @Summary Attach a file to an entry
// @Tags attachments
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Entry ID (UUID)"
// @Param file formData file true "File to upload (pdf, jpg, png)"
// @Success 201 {object} Response{data=domain.EntryAttachment} "Attachment stored"
// @Failure 400 {object} ErrorResponseBody "Missing or unsupported file"
// @Failure 404 {object} ErrorResponseBody "Entry not found"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Security BearerAuth
// @Router /entries/{id}/attachments [post]
func (h *AttachmentHandler) Upload(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	entryID, ok := parseIDParam(c, "id", "entry")
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file is required")
		return
	}

	file, err := header.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FILE", "could not read uploaded file")
		return
	}
	defer file.Close()

	attachment, err := h.attachmentService.Upload(c.Request.Context(), actor, service.AttachmentUploadInput{
		EntryID:  entryID,
		FileName: header.Filename,
		Size:     header.Size,
		File:     file,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, attachment)
}

// ListByEntry handles GET /api/v1/entries/:id/attachments
// @Summary List attachments of an entry
// @Tags attachments
// @Produce json
// @Param id path string true "Entry ID (UUID)"
// @Success 200 {object} Response{data=[]domain.EntryAttachment} "Attachments"
// @Failure 404 {object} ErrorResponseBody "Entry not found"
// @Security BearerAuth
// @Router /entries/{id}/attachments [get]
func (h *AttachmentHandler) ListByEntry(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	entryID, ok := parseIDParam(c, "id", "entry")
	if !ok {
		return
	}

	attachments, err := h.attachmentService.ListByEntry(c.Request.Context(), actor, entryID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, attachments)
}

// DownloadURL handles GET /api/v1/attachments/:id/url
// @Summary Presigned download URL
// @Tags attachments
// @Produce json
// @Param id path string true "Attachment ID (UUID)"
// @Success 200 {object} Response{data=DownloadURLResponse} "URL"
// @Failure 404 {object} ErrorResponseBody "Attachment not found"
// @Security BearerAuth
// @Router /attachments/{id}/url [get]
func (h *AttachmentHandler) DownloadURL(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "attachment")
	if !ok {
		return
	}

	url, err := h.attachmentService.GetDownloadURL(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, DownloadURLResponse{URL: url})
}

// Delete handles DELETE /api/v1/admin/attachments/:id
// @Summary Delete an attachment
// @Tags attachments
// @Produce json
// @Param id path string true "Attachment ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Attachment deleted"
// @Failure 404 {object} ErrorResponseBody "Attachment not found"
// @Security BearerAuth
// @Router /admin/attachments/{id} [delete]
func (h *AttachmentHandler) Delete(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "attachment")
	if !ok {
		return
	}

	if err := h.attachmentService.Delete(c.Request.Context(), actor, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "attachment deleted"})
}

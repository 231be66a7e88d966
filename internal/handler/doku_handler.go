package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"haccp/internal/domain"
	"haccp/internal/export"
	"haccp/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DokuHandler handles the Dokumentation overview and its exports.
type DokuHandler struct {
	dokuService   service.DokuService
	marketService service.MarketService
}

// NewDokuHandler creates a new DokuHandler.
func NewDokuHandler(dokuService service.DokuService, marketService service.MarketService) *DokuHandler {
	return &DokuHandler{dokuService: dokuService, marketService: marketService}
}

// Overview handles GET /api/v1/doku
// @Summary Dokumentation overview
// @Description Visible sections and forms with their slots for the view period
// @Tags doku
// @Produce json
// @Param view query string false "View periodicity" default(MONTHLY)
// @Param ref query string false "Period reference of the view, default current"
// @Param section_id query string false "Restrict to one section (UUID)"
// @Param include_entries query bool false "Embed entries per slot"
// @Success 200 {object} Response{data=service.DokuOverview} "Overview"
// @Failure 400 {object} ErrorResponseBody "Invalid view or reference"
// @Security BearerAuth
// @Router /doku [get]
func (h *DokuHandler) Overview(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	q, ok := dokuQuery(c)
	if !ok {
		return
	}

	overview, err := h.dokuService.Overview(c.Request.Context(), actor, q)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, overview)
}

// ExportCSV handles GET /api/v1/doku/export.csv
// @Summary Export Dokumentation as CSV
// @Description One row per slot, semicolon separated, UTF-8 with BOM
// @Tags doku
// @Produce text/csv
// @Param view query string false "View periodicity" default(MONTHLY)
// @Param ref query string false "Period reference of the view, default current"
// @Param section_id query string false "Restrict to one section (UUID)"
// @Success 200 {file} file "CSV file"
// @Failure 400 {object} ErrorResponseBody "Invalid view or reference"
// @Security BearerAuth
// @Router /doku/export.csv [get]
func (h *DokuHandler) ExportCSV(c *gin.Context) {
	h.export(c, "csv", "text/csv; charset=utf-8", export.WriteCSV)
}

// ExportXLSX handles GET /api/v1/doku/export.xlsx
// @Summary Export Dokumentation as XLSX
// @Description One sheet per section, one row per slot
// @Tags doku
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param view query string false "View periodicity" default(MONTHLY)
// @Param ref query string false "Period reference of the view, default current"
// @Param section_id query string false "Restrict to one section (UUID)"
// @Success 200 {file} file "XLSX file"
// @Failure 400 {object} ErrorResponseBody "Invalid view or reference"
// @Security BearerAuth
// @Router /doku/export.xlsx [get]
func (h *DokuHandler) ExportXLSX(c *gin.Context) {
	h.export(c, "xlsx", xlsxContentType, export.WriteXLSX)
}

func (h *DokuHandler) export(c *gin.Context, ext, contentType string, render func(io.Writer, *service.DokuOverview) error) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	q, ok := dokuQuery(c)
	if !ok {
		return
	}
	q.IncludeEntries = false

	overview, err := h.dokuService.Overview(c.Request.Context(), actor, q)
	if err != nil {
		HandleError(c, err)
		return
	}
	market, err := h.marketService.GetByID(c.Request.Context(), actor.TenantID, actor.MarketID)
	if err != nil {
		HandleError(c, err)
		return
	}

	// Render into memory first so a failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := render(&buf, overview); err != nil {
		HandleError(c, fmt.Errorf("doku export %s: %w", ext, err))
		return
	}

	filename := export.BuildFilename(market.Name, overview.View.Ref, ext)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func dokuQuery(c *gin.Context) (service.DokuQuery, bool) {
	sectionID, ok := parseOptionalUUIDQuery(c, "section_id")
	if !ok {
		return service.DokuQuery{}, false
	}
	return service.DokuQuery{
		View:           c.Query("view"),
		Ref:            c.Query("ref"),
		SectionID:      sectionID,
		IncludeEntries: queryBool(c, "include_entries"),
	}, true
}

// PeriodHandler serves the period navigation helper.
type PeriodHandler struct {
	periodService service.PeriodService
}

// NewPeriodHandler creates a new PeriodHandler.
func NewPeriodHandler(periodService service.PeriodService) *PeriodHandler {
	return &PeriodHandler{periodService: periodService}
}

// Resolve handles GET /api/v1/periods
// @Summary Resolve a period reference
// @Description Returns ref, label, bounds and neighbours of the period selected by ref or date
// @Tags periods
// @Produce json
// @Param periodicity query string false "Periodicity (inferred from ref when omitted)"
// @Param date query string false "Date inside the period (YYYY-MM-DD)"
// @Param ref query string false "Period reference"
// @Success 200 {object} Response{data=service.PeriodView} "Period"
// @Failure 400 {object} ErrorResponseBody "Invalid periodicity, date or reference"
// @Security BearerAuth
// @Router /periods [get]
func (h *PeriodHandler) Resolve(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	if c.Query("date") != "" && c.Query("ref") != "" {
		HandleError(c, domain.ErrInvalidPeriodRef)
		return
	}

	view, err := h.periodService.Resolve(c.Request.Context(), actor.TenantID, service.PeriodQuery{
		Periodicity: c.Query("periodicity"),
		Date:        c.Query("date"),
		Ref:         c.Query("ref"),
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tradebook/internal/service"
)

// ReportHandler handles profit reporting endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Profit handles GET /api/v1/reports/profit?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *ReportHandler) Profit(c *gin.Context) {
	accountID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	from, to, ok := parsePeriod(c)
	if !ok {
		return
	}

	report, err := h.reportService.Profit(c.Request.Context(), accountID, from, to)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, report)
}

// ProfitXLSX handles GET /api/v1/reports/profit/xlsx - the same report as an
// Excel download.
func (h *ReportHandler) ProfitXLSX(c *gin.Context) {
	accountID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	from, to, ok := parsePeriod(c)
	if !ok {
		return
	}

	data, filename, err := h.reportService.ProfitXLSX(c.Request.Context(), accountID, from, to)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// parsePeriod reads the from/to query parameters. The to date is exclusive at
// the day boundary after it, so a whole-month request is from=2026-08-01
// to=2026-08-31.
func parsePeriod(c *gin.Context) (from, to time.Time, ok bool) {
	const layout = "2006-01-02"

	fromRaw, toRaw := c.Query("from"), c.Query("to")
	if fromRaw == "" || toRaw == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "from and to query parameters are required")
		return time.Time{}, time.Time{}, false
	}

	from, err := time.Parse(layout, fromRaw)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid from date; use YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	to, err = time.Parse(layout, toRaw)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid to date; use YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	return from, to.AddDate(0, 0, 1), true
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradebook/internal/service"
)

// MilestoneHandler handles payment milestone endpoints.
type MilestoneHandler struct {
	milestoneService service.MilestoneService
}

// NewMilestoneHandler creates a new MilestoneHandler.
func NewMilestoneHandler(milestoneService service.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{milestoneService: milestoneService}
}

// Create handles POST /api/v1/documents/:id/milestones
func (h *MilestoneHandler) Create(c *gin.Context) {
	accountID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.MilestoneInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.milestoneService.Create(c.Request.Context(), accountID, docID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, result)
}

// ListByDocument handles GET /api/v1/documents/:id/milestones
func (h *MilestoneHandler) ListByDocument(c *gin.Context) {
	accountID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	results, err := h.milestoneService.ListByDocument(c.Request.Context(), accountID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, results)
}

// Update handles PUT /api/v1/milestones/:id
func (h *MilestoneHandler) Update(c *gin.Context) {
	accountID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	milestoneID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.MilestoneInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.milestoneService.Update(c.Request.Context(), accountID, milestoneID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// MarkInvoiced handles POST /api/v1/milestones/:id/invoice
func (h *MilestoneHandler) MarkInvoiced(c *gin.Context) {
	accountID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	milestoneID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		InvoiceID string `json:"invoice_id" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	invoiceID, ok := parseUUID(c, input.InvoiceID, "invoice_id")
	if !ok {
		return
	}

	result, err := h.milestoneService.MarkInvoiced(c.Request.Context(), accountID, milestoneID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// MarkPaid handles POST /api/v1/milestones/:id/paid
func (h *MilestoneHandler) MarkPaid(c *gin.Context) {
	accountID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	milestoneID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.milestoneService.MarkPaid(c.Request.Context(), accountID, milestoneID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Delete handles DELETE /api/v1/milestones/:id
func (h *MilestoneHandler) Delete(c *gin.Context) {
	accountID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	milestoneID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.milestoneService.Delete(c.Request.Context(), accountID, milestoneID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "milestone deleted"})
}

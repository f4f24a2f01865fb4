package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradebook/internal/service"
)

// CreditNoteHandler handles credit note endpoints.
type CreditNoteHandler struct {
	creditNoteService service.CreditNoteService
}

// NewCreditNoteHandler creates a new CreditNoteHandler.
func NewCreditNoteHandler(creditNoteService service.CreditNoteService) *CreditNoteHandler {
	return &CreditNoteHandler{creditNoteService: creditNoteService}
}

// Create handles POST /api/v1/documents/:id/credit-notes
func (h *CreditNoteHandler) Create(c *gin.Context) {
	accountID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	invoiceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.CreateCreditNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.creditNoteService.Create(c.Request.Context(), accountID, userID, invoiceID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, result)
}

// ListForInvoice handles GET /api/v1/documents/:id/credit-notes
func (h *CreditNoteHandler) ListForInvoice(c *gin.Context) {
	accountID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	invoiceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	results, err := h.creditNoteService.ListForInvoice(c.Request.Context(), accountID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, results)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradebook/internal/service"
)

// PaymentHandler handles payment recording endpoints.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Record handles POST /api/v1/documents/:id/payments
func (h *PaymentHandler) Record(c *gin.Context) {
	accountID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.RecordPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	summary, err := h.paymentService.Record(c.Request.Context(), accountID, userID, docID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, summary)
}

// Summary handles GET /api/v1/documents/:id/payments
func (h *PaymentHandler) Summary(c *gin.Context) {
	accountID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	summary, err := h.paymentService.Summary(c.Request.Context(), accountID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, summary)
}

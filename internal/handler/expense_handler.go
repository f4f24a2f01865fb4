package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradebook/internal/service"
)

// ExpenseHandler handles expense tracking endpoints.
type ExpenseHandler struct {
	expenseService service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// Create handles POST /api/v1/expenses
func (h *ExpenseHandler) Create(c *gin.Context) {
	accountID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.ExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	expense, err := h.expenseService.Create(c.Request.Context(), accountID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, expense)
}

// List handles GET /api/v1/expenses?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *ExpenseHandler) List(c *gin.Context) {
	accountID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	from, to, ok := parsePeriod(c)
	if !ok {
		return
	}

	expenses, err := h.expenseService.ListBetween(c.Request.Context(), accountID, from, to)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, expenses)
}

// Delete handles DELETE /api/v1/expenses/:id
func (h *ExpenseHandler) Delete(c *gin.Context) {
	accountID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	expenseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.expenseService.Delete(c.Request.Context(), accountID, expenseID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "expense deleted"})
}

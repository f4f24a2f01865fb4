package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradebook/internal/service"
)

// CustomerHandler handles customer CRUD endpoints.
type CustomerHandler struct {
	customerService service.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// Create handles POST /api/v1/customers
func (h *CustomerHandler) Create(c *gin.Context) {
	accountID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), accountID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, customer)
}

// Get handles GET /api/v1/customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	accountID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), accountID, customerID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, customer)
}

// List handles GET /api/v1/customers
func (h *CustomerHandler) List(c *gin.Context) {
	accountID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	customers, total, err := h.customerService.List(c.Request.Context(), accountID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, customers, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Update handles PUT /api/v1/customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	accountID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), accountID, customerID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, customer)
}

// Delete handles DELETE /api/v1/customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	accountID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), accountID, customerID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "customer deleted"})
}

package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tradebook/internal/domain"
	"tradebook/internal/service"
)

// DocumentHandler handles document lifecycle endpoints.
type DocumentHandler struct {
	documentService service.DocumentService
	exportService   service.ExportService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService, exportService service.ExportService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, exportService: exportService}
}

// Create handles POST /api/v1/documents
func (h *DocumentHandler) Create(c *gin.Context) {
	accountID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateDocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.documentService.Create(c.Request.Context(), accountID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, result)
}

// Get handles GET /api/v1/documents/:id
func (h *DocumentHandler) Get(c *gin.Context) {
	accountID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.documentService.GetByID(c.Request.Context(), accountID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// List handles GET /api/v1/documents with optional type/status/customer/job
// filters.
func (h *DocumentHandler) List(c *gin.Context) {
	accountID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	input := service.ListDocumentsInput{Offset: offset, Limit: limit}
	if v := c.Query("type"); v != "" {
		t := domain.DocumentType(v)
		input.DocumentType = &t
	}
	if v := c.Query("status"); v != "" {
		s := domain.DocumentStatus(v)
		input.Status = &s
	}
	if v := c.Query("customer_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid customer_id")
			return
		}
		input.CustomerID = &id
	}
	if v := c.Query("job_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid job_id")
			return
		}
		input.JobID = &id
	}
	if v := c.Query("credit_notes"); v != "" {
		creditNotes := v == "true"
		input.CreditNotes = &creditNotes
	}

	results, total, err := h.documentService.List(c.Request.Context(), accountID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, results, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Update handles PUT /api/v1/documents/:id
func (h *DocumentHandler) Update(c *gin.Context) {
	accountID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.UpdateDocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.documentService.Update(c.Request.Context(), accountID, docID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// UpdateStatus handles PATCH /api/v1/documents/:id/status
func (h *DocumentHandler) UpdateStatus(c *gin.Context) {
	accountID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.documentService.UpdateStatus(c.Request.Context(), accountID, docID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Convert handles POST /api/v1/documents/:id/convert
func (h *DocumentHandler) Convert(c *gin.Context) {
	accountID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.documentService.ConvertToInvoice(c.Request.Context(), accountID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Send handles POST /api/v1/documents/:id/send
func (h *DocumentHandler) Send(c *gin.Context) {
	accountID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.documentService.Send(c.Request.Context(), accountID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Delete handles DELETE /api/v1/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	accountID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), accountID, docID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "document deleted"})
}

// Shared handles GET /api/v1/share/:token - the unauthenticated customer view.
func (h *DocumentHandler) Shared(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "missing share token")
		return
	}

	result, err := h.documentService.GetByShareToken(c.Request.Context(), token)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// DownloadPDF handles GET /api/v1/documents/:id/pdf
func (h *DocumentHandler) DownloadPDF(c *gin.Context) {
	accountID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	data, filename, err := h.exportService.DocumentPDF(c.Request.Context(), accountID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// SharePDF handles POST /api/v1/documents/:id/share-pdf - uploads the rendered
// PDF and returns a presigned link.
func (h *DocumentHandler) SharePDF(c *gin.Context) {
	accountID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	url, err := h.exportService.ShareDocumentPDF(c.Request.Context(), accountID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"url": url})
}

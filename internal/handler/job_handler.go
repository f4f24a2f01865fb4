package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradebook/internal/service"
)

// JobHandler handles job CRUD endpoints.
type JobHandler struct {
	jobService service.JobService
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobService service.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// Create handles POST /api/v1/jobs
func (h *JobHandler) Create(c *gin.Context) {
	accountID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.JobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	job, err := h.jobService.Create(c.Request.Context(), accountID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, job)
}

// Get handles GET /api/v1/jobs/:id
func (h *JobHandler) Get(c *gin.Context) {
	accountID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	job, err := h.jobService.GetByID(c.Request.Context(), accountID, jobID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, job)
}

// List handles GET /api/v1/jobs
func (h *JobHandler) List(c *gin.Context) {
	accountID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	jobs, total, err := h.jobService.List(c.Request.Context(), accountID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, jobs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Update handles PUT /api/v1/jobs/:id
func (h *JobHandler) Update(c *gin.Context) {
	accountID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.JobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	job, err := h.jobService.Update(c.Request.Context(), accountID, jobID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, job)
}

// Delete handles DELETE /api/v1/jobs/:id
func (h *JobHandler) Delete(c *gin.Context) {
	accountID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.jobService.Delete(c.Request.Context(), accountID, jobID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "job deleted"})
}

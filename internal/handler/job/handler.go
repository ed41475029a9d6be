package job

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openboard/board-api/internal/model"
	"github.com/openboard/board-api/internal/service/job"
	apperrors "github.com/openboard/board-api/pkg/errors"
	"github.com/openboard/board-api/pkg/httputil"
)

type Handler struct {
	service *job.Service
}

func NewHandler(service *job.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	jobs := r.Group("/jobs")
	{
		jobs.POST("", h.Post)
		jobs.GET("", h.ListOpen)
		jobs.GET("/:id", h.Get)
	}
	r.GET("/businesses/:id/jobs", h.ListByBusiness)
}

func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	jobs := r.Group("/jobs")
	{
		jobs.GET("/pending", h.ListPending)
		jobs.POST("/:id/approve", h.Approve)
		jobs.POST("/:id/reject", h.Reject)
	}
}

func (h *Handler) Post(c *gin.Context) {
	var req model.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	businessID, err := uuid.Parse(req.BusinessID)
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid business ID", err))
		return
	}

	j := &model.Job{
		BusinessID:  businessID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		SalaryRange: req.SalaryRange,
	}

	if err := h.service.Post(c.Request.Context(), j); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, j)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid job ID", err))
		return
	}

	j, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, j)
}

func (h *Handler) ListOpen(c *gin.Context) {
	jobs, err := h.service.ListOpen(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, jobs)
}

func (h *Handler) ListPending(c *gin.Context) {
	jobs, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, jobs)
}

func (h *Handler) ListByBusiness(c *gin.Context) {
	businessID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid business ID", err))
		return
	}

	jobs, err := h.service.ListByBusiness(c.Request.Context(), businessID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, jobs)
}

func (h *Handler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid job ID", err))
		return
	}

	if err := h.service.Approve(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"status": model.JobStatusApproved})
}

func (h *Handler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid job ID", err))
		return
	}

	var req model.ModerateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	if err := h.service.Reject(c.Request.Context(), id, req.Reason); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"status": model.JobStatusRejected})
}

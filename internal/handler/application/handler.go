package application

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openboard/board-api/internal/model"
	"github.com/openboard/board-api/internal/service/application"
	apperrors "github.com/openboard/board-api/pkg/errors"
	"github.com/openboard/board-api/pkg/httputil"
)

type Handler struct {
	service *application.Service
}

func NewHandler(service *application.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	applications := r.Group("/applications")
	{
		applications.POST("", h.Submit)
		applications.GET("/:id", h.Get)
		applications.PUT("/:id/status", h.UpdateStatus)
	}
	r.GET("/jobs/:id/applications", h.ListByJob)
	r.GET("/applicants/:id/applications", h.ListByApplicant)
}

func (h *Handler) Submit(c *gin.Context) {
	var req model.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid job ID", err))
		return
	}
	applicantID, err := uuid.Parse(req.ApplicantID)
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid applicant ID", err))
		return
	}

	a := &model.Application{
		JobID:       jobID,
		ApplicantID: applicantID,
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
	}

	if err := h.service.Submit(c.Request.Context(), a); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, a)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid application ID", err))
		return
	}

	a, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, a)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid application ID", err))
		return
	}

	var req model.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), id, model.ApplicationStatus(req.Status)); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"status": req.Status})
}

func (h *Handler) ListByJob(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid job ID", err))
		return
	}

	applications, err := h.service.ListByJob(c.Request.Context(), jobID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, applications)
}

func (h *Handler) ListByApplicant(c *gin.Context) {
	applicantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid applicant ID", err))
		return
	}

	applications, err := h.service.ListByApplicant(c.Request.Context(), applicantID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, applications)
}

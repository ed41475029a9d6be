package business

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openboard/board-api/internal/model"
	"github.com/openboard/board-api/internal/service/business"
	apperrors "github.com/openboard/board-api/pkg/errors"
	"github.com/openboard/board-api/pkg/httputil"
)

type Handler struct {
	service *business.Service
}

func NewHandler(service *business.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	businesses := r.Group("/businesses")
	{
		businesses.POST("", h.Register)
		businesses.GET("/:id", h.Get)
	}
}

func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	businesses := r.Group("/businesses")
	{
		businesses.GET("/pending", h.ListPending)
		businesses.POST("/:id/approve", h.Approve)
		businesses.POST("/:id/reject", h.Reject)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req model.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid owner ID", err))
		return
	}

	b := &model.Business{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
		Location:    req.Location,
	}

	if err := h.service.Register(c.Request.Context(), b); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, b)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid business ID", err))
		return
	}

	b, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, b)
}

func (h *Handler) ListPending(c *gin.Context) {
	businesses, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, businesses)
}

func (h *Handler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid business ID", err))
		return
	}

	if err := h.service.Approve(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"status": model.BusinessStatusApproved})
}

func (h *Handler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid business ID", err))
		return
	}

	var req model.ModerateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	if err := h.service.Reject(c.Request.Context(), id, req.Reason); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"status": model.BusinessStatusRejected})
}

package notification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openboard/board-api/internal/model"
	"github.com/openboard/board-api/internal/service/notifier"
	apperrors "github.com/openboard/board-api/pkg/errors"
	"github.com/openboard/board-api/pkg/httputil"
)

type Handler struct {
	service *notifier.Service
}

func NewHandler(service *notifier.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the dispatch trigger endpoint.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/notifications/dispatch", h.Dispatch)
}

// RegisterAdminRoutes mounts catalog management and the audit log
// listing; the router gates the group with admin auth.
func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	types := r.Group("/notification-types")
	{
		types.POST("", h.CreateType)
		types.GET("", h.ListTypes)
		types.POST("/:key/templates", h.UpsertTemplate)
		types.GET("/:key/templates", h.ListTemplates)
	}
	r.GET("/notification-logs", h.ListLogs)
}

type dispatchRequest struct {
	NotificationType string            `json:"notification_type" binding:"required"`
	RecipientUserID  string            `json:"recipient_user_id" binding:"omitempty,uuid"`
	RecipientEmail   string            `json:"recipient_email" binding:"omitempty,email"`
	Context          map[string]string `json:"context"`
}

// Dispatch triggers one notification delivery. The response shape is
// part of the external contract: 200 with an optional skipped flag,
// 400 for caller errors, 404 for an unknown type key, 500 for template
// or delivery failures.
func (h *Handler) Dispatch(c *gin.Context) {
	var req dispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.RecipientUserID == "" && req.RecipientEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipient_user_id or recipient_email is required"})
		return
	}

	dispatchReq := &notifier.DispatchRequest{
		TypeKey:        req.NotificationType,
		RecipientEmail: req.RecipientEmail,
		Context:        req.Context,
	}
	if req.RecipientUserID != "" {
		userID, err := uuid.Parse(req.RecipientUserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipient_user_id"})
			return
		}
		dispatchReq.RecipientUserID = &userID
	}

	result, err := h.service.Dispatch(c.Request.Context(), dispatchReq)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			c.JSON(appErr.StatusCode(), gin.H{"error": appErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if result.Skipped {
		c.JSON(http.StatusOK, gin.H{"success": true, "skipped": true, "reason": result.Reason})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message_id": result.MessageID})
}

func (h *Handler) CreateType(c *gin.Context) {
	var req model.CreateNotificationTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	nt := &model.NotificationType{
		Key:            req.Key,
		Name:           req.Name,
		Description:    req.Description,
		Category:       model.NotificationCategory(req.Category),
		DefaultEnabled: req.DefaultEnabled,
		IsSystem:       req.IsSystem,
	}

	if err := h.service.CreateType(c.Request.Context(), nt); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, nt)
}

func (h *Handler) ListTypes(c *gin.Context) {
	types, err := h.service.ListTypes(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, types)
}

func (h *Handler) UpsertTemplate(c *gin.Context) {
	var req model.UpsertTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	tmpl := &model.NotificationTemplate{
		TemplateType: model.TemplateTier(req.TemplateType),
		Subject:      req.Subject,
		BodyHTML:     req.BodyHTML,
		BodyText:     req.BodyText,
		Variables:    req.Variables,
		IsActive:     req.IsActive,
	}

	if err := h.service.UpsertTemplate(c.Request.Context(), c.Param("key"), tmpl); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, tmpl)
}

func (h *Handler) ListTemplates(c *gin.Context) {
	templates, err := h.service.ListTemplates(c.Request.Context(), c.Param("key"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, templates)
}

func (h *Handler) ListLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	filters := &model.NotificationLogFilters{
		TypeKey:   c.Query("type"),
		Status:    model.NotificationStatus(c.Query("status")),
		Recipient: c.Query("recipient"),
		Limit:     pageSize,
		Offset:    (page - 1) * pageSize,
	}

	logs, total, err := h.service.ListLogs(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithPagination(c, logs, page, pageSize, total)
}

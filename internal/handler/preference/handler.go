package preference

import (
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

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users/:id/notification-preferences")
	{
		users.GET("", h.ListPreferences)
		users.PUT("/:type_key", h.UpdatePreference)
	}
}

// ListPreferences returns the full type catalog merged with the user's
// stored toggles.
func (h *Handler) ListPreferences(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid user ID", err))
		return
	}

	views, err := h.service.ListPreferences(c.Request.Context(), userID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, views)
}

func (h *Handler) UpdatePreference(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid user ID", err))
		return
	}

	var req model.UpdatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	pref, err := h.service.UpdatePreference(c.Request.Context(), userID, c.Param("type_key"), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, pref)
}

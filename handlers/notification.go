package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"kietcollab/realtime"
	"kietcollab/services/notification"
	"kietcollab/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotificationHandler exposes the notification surface to the UI.
type NotificationHandler struct {
	Service notification.NotificationService
	Hub     *realtime.Hub
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(svc notification.NotificationService, hub *realtime.Hub) *NotificationHandler {
	return &NotificationHandler{Service: svc, Hub: hub}
}

// ListNotificationsHandler handles GET /api/notifications.
func (h *NotificationHandler) ListNotificationsHandler(c *gin.Context) {
	userID := c.GetString("userID")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "30"))
	unreadFirst := c.DefaultQuery("unreadFirst", "true") != "false"

	result, err := h.Service.ListForUser(c.Request.Context(), userID, page, pageSize, unreadFirst)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UnreadCountHandler handles GET /api/notifications/unread-count.
func (h *NotificationHandler) UnreadCountHandler(c *gin.Context) {
	userID := c.GetString("userID")

	count, err := h.Service.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkReadHandler handles PATCH /api/notifications/:id/read.
func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	updated, err := h.Service.MarkRead(c.Request.Context(), userID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// MarkAllReadHandler handles PATCH /api/notifications/read-all.
func (h *NotificationHandler) MarkAllReadHandler(c *gin.Context) {
	userID := c.GetString("userID")

	changed, err := h.Service.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}

// DeleteNotificationHandler handles DELETE /api/notifications/:id.
func (h *NotificationHandler) DeleteNotificationHandler(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	if err := h.Service.Delete(c.Request.Context(), userID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}

// BroadcastHandler handles POST /api/notifications/broadcast.
// An empty recipient list broadcasts ephemerally to everyone connected.
func (h *NotificationHandler) BroadcastHandler(c *gin.Context) {
	userID := c.GetString("userID")

	var req struct {
		Message    string   `json:"message" binding:"required"`
		Recipients []string `json:"recipients"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid broadcast request", err.Error())
		return
	}

	sent, err := h.Service.BroadcastAnnouncement(c.Request.Context(), userID, req.Message, req.Recipients)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": sent})
}

// respondServiceError maps the notification service error taxonomy onto
// HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	var validationErr notification.ValidationError
	var notFoundErr notification.NotFoundError
	var forbiddenErr notification.ForbiddenError

	switch {
	case errors.As(err, &validationErr):
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
	case errors.As(err, &notFoundErr):
		utils.JSONError(c, http.StatusNotFound, err.Error(), "")
	case errors.As(err, &forbiddenErr):
		utils.JSONError(c, http.StatusForbidden, err.Error(), "")
	default:
		utils.GetLogger().Error("Notification service error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error", "")
	}
}

package handlers

import (
	"io"
	"net/http"

	"kietcollab/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StreamHandler handles GET /api/notifications/stream. It registers a live
// channel for the authenticated user and streams notification events over
// SSE until the client disconnects.
func (h *NotificationHandler) StreamHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID := c.GetString("userID")
	if userID == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	ch := h.Hub.Register(userID)
	defer h.Hub.Unregister(ch)

	logger.Debug("live channel opened",
		zap.String("userID", userID),
		zap.Int("connections", h.Hub.ConnectionCount()))

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.Flush()

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-ch.Events():
			if !ok {
				return false
			}
			c.SSEvent(ev.Type, ev.Data)
			return true
		case <-clientGone:
			return false
		}
	})

	logger.Debug("live channel closed", zap.String("userID", userID))
}

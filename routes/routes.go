package routes

import (
	"net/http"
	"time"

	userRepo "kietcollab/database/repository/user"
	"kietcollab/handlers"
	"kietcollab/middleware"
	"kietcollab/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterNotificationRoutes registers the notification endpoints.
func RegisterNotificationRoutes(r *gin.Engine, h *handlers.NotificationHandler, users userRepo.UserRepository) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthUserMiddleware(users))
		api.GET("", h.ListNotificationsHandler)
		api.GET("/unread-count", h.UnreadCountHandler)
		api.GET("/stream", h.StreamHandler)
		api.PATCH("/read-all", h.MarkAllReadHandler)
		api.PATCH("/:id/read", h.MarkReadHandler)
		api.DELETE("/:id", h.DeleteNotificationHandler)

		// Broadcast requires the admin role on top of authentication.
		api.POST("/broadcast", middleware.AdminRoleMiddleware(users), h.BroadcastHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes configures CORS and registers all route groups.
func RegisterRoutes(r *gin.Engine, h *handlers.NotificationHandler, users userRepo.UserRepository) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterNotificationRoutes(r, h, users)
}

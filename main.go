package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kietcollab/config"
	"kietcollab/cron"
	"kietcollab/database"
	notificationRepo "kietcollab/database/repository/notification"
	userRepoPkg "kietcollab/database/repository/user"
	"kietcollab/handlers"
	"kietcollab/middleware"
	"kietcollab/realtime"
	"kietcollab/routes"
	"kietcollab/services/notification"
	"kietcollab/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	notifRepo := notificationRepo.NewMongoNotificationRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// Presence hub: one per process, passed explicitly to whoever needs it.
	hub := realtime.NewHub()

	// Queue client for async announcement fan-out.
	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisBroadcastQueueDB,
	})
	defer queueClient.Close()

	notificationService, err := notification.NewDefaultNotificationService(notifRepo, userRepo, hub, queueClient)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	cron.InitAnnouncementWorker(notificationService)

	notificationHandler := handlers.NewNotificationHandler(notificationService, hub)

	// Register routes.
	routes.RegisterRoutes(router, notificationHandler, userRepo)

	utils.StartHealthMonitor(utils.GetAuthCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

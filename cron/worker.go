package cron

import (
	"context"
	"encoding/json"
	"log"

	"kietcollab/config"
	"kietcollab/models"
	"kietcollab/services/notification"

	"github.com/hibiken/asynq"
)

// InitAnnouncementWorker runs the async fan-out worker in background.
// Large announcement recipient lists are enqueued by the notification
// service and delivered here, off the request path.
func InitAnnouncementWorker(notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisBroadcastQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeAnnouncementDeliver, handleAnnouncementTask(notifSvc))

	go func() {
		log.Println("[AnnouncementWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Printf("[AnnouncementWorker] worker stopped: %v", err)
		}
	}()
}

func handleAnnouncementTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.AnnouncementPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[AnnouncementWorker] invalid payload: %v", err)
			return err
		}
		if len(p.Recipients) == 0 {
			// Ephemeral broadcasts are delivered inline, never queued.
			log.Printf("[AnnouncementWorker] skipping task with no recipients")
			return nil
		}

		ins := make([]notification.EmitInput, len(p.Recipients))
		for i, r := range p.Recipients {
			ins[i] = notification.EmitInput{
				Recipient: r,
				Sender:    p.Actor,
				Kind:      models.NotificationKindAnnouncement,
				Message:   p.Message,
			}
		}
		if _, err := notifSvc.EmitMany(ctx, ins); err != nil {
			log.Printf("[AnnouncementWorker] fan-out failed: %v", err)
			return err
		}
		return nil
	}
}

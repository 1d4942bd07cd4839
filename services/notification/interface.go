package notification

import (
	"context"
	"fmt"

	notificationRepo "kietcollab/database/repository/notification"
	userRepo "kietcollab/database/repository/user"
	"kietcollab/models"
	"kietcollab/realtime"

	"github.com/hibiken/asynq"
)

// TypeAnnouncementDeliver is the asynq task type for queued announcement
// fan-out. The worker in cron/ consumes it.
const TypeAnnouncementDeliver = "announcement:deliver"

// AnnouncementEnqueuer queues announcement fan-out tasks for the worker in
// cron/. *asynq.Client satisfies it.
type AnnouncementEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// EmitInput describes a notification to deliver. Sender and Related are
// optional; Kind defaults to "system" when empty.
type EmitInput struct {
	Recipient string                `json:"recipient"`
	Sender    string                `json:"sender,omitempty"`
	Kind      string                `json:"kind,omitempty"`
	Message   string                `json:"message"`
	Related   *models.RelatedEntity `json:"related,omitempty"`
}

// NotificationService is the surface the rest of the platform calls.
// Invite acceptance, team changes and event registration call Emit;
// the UI layer calls the list/read-state operations.
type NotificationService interface {
	// Emit durably records one notification and pushes it to the
	// recipient's live channels, if any.
	Emit(ctx context.Context, in EmitInput) (*models.Notification, error)
	// EmitMany fans one event out to an explicit recipient list.
	// Persistence is all-or-nothing; pushes are best-effort per channel.
	EmitMany(ctx context.Context, ins []EmitInput) ([]models.Notification, error)
	// BroadcastEphemeral pushes to everyone currently connected without
	// persisting anything, and returns how many channels were reached.
	BroadcastEphemeral(actor, message string) int

	ListForUser(ctx context.Context, userID string, page, pageSize int, unreadFirst bool) (*models.NotificationPage, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID, notificationID string) (*models.Notification, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, userID, notificationID string) error

	// BroadcastAnnouncement is admin-gated. With recipients it fans out
	// durable records; without it degrades to an ephemeral broadcast.
	BroadcastAnnouncement(ctx context.Context, actorID, message string, recipients []string) (int, error)
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo  notificationRepo.NotificationRepository
	Users userRepo.UserRepository
	Hub   *realtime.Hub
	// Queue, when set, carries large announcement fan-outs off the
	// request path. Nil means deliver synchronously.
	Queue AnnouncementEnqueuer
}

// NewDefaultNotificationService wires the service.
func NewDefaultNotificationService(
	repo notificationRepo.NotificationRepository,
	users userRepo.UserRepository,
	hub *realtime.Hub,
	queue AnnouncementEnqueuer,
) (*DefaultNotificationService, error) {
	if repo == nil || users == nil || hub == nil {
		return nil, fmt.Errorf("notification service initialization error: repo, users or hub is nil")
	}
	return &DefaultNotificationService{
		Repo:  repo,
		Users: users,
		Hub:   hub,
		Queue: queue,
	}, nil
}

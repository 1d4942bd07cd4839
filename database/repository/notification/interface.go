package notificationRepo

import (
	"context"
	"errors"
	"fmt"

	"kietcollab/config"
	"kietcollab/database"
	"kietcollab/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Query orderings supported by the store.
const (
	// OrderUnreadFirst sorts unread records ahead of read ones, each tier
	// newest first.
	OrderUnreadFirst = "unread-first"
	// OrderRecency sorts purely by creation time, newest first.
	OrderRecency = "recency"
)

// ErrNotFound is returned when a record does not exist or is not owned by
// the given recipient. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("notification not found")

// ErrInvalidRecord is returned when a record to be persisted is missing
// its required fields.
var ErrInvalidRecord = errors.New("notification requires a recipient and a message")

// NotificationRepository defines durable storage of per-recipient
// notification records. Every mutating operation is scoped by recipient:
// the id lookup is conjoined with a recipient-equality predicate so a
// caller can never touch another user's records.
type NotificationRepository interface {
	Create(ctx context.Context, n models.Notification) (string, error)
	// CreateMany persists all records or none of them.
	CreateMany(ctx context.Context, ns []models.Notification) ([]string, error)
	Query(ctx context.Context, recipient string, page, pageSize int, order string) ([]models.Notification, int64, error)
	CountUnread(ctx context.Context, recipient string) (int64, error)
	// SetRead marks the record read and returns it; marking an already-read
	// record again is a no-op success.
	SetRead(ctx context.Context, id, recipient string) (*models.Notification, error)
	SetAllRead(ctx context.Context, recipient string) (int64, error)
	Delete(ctx context.Context, id, recipient string) error
}

type mongoNotificationRepo struct {
	coll *mongo.Collection
}

// NewMongoNotificationRepo returns a NotificationRepository backed by MongoDB.
func NewMongoNotificationRepo() NotificationRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &mongoNotificationRepo{
		coll: db.Collection("notifications"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create notification indexes: %v\n", err)
	}
	return repo
}

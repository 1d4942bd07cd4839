package notificationRepo

import (
	"context"
	"fmt"
	"time"

	"kietcollab/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new notification record and returns its ID.
func (r *mongoNotificationRepo) Create(ctx context.Context, n models.Notification) (string, error) {
	if n.Recipient == "" || n.Message == "" {
		return "", ErrInvalidRecord
	}
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	n.Read = false

	if _, err := r.coll.InsertOne(ctx, n); err != nil {
		return "", fmt.Errorf("failed to insert notification: %w", err)
	}
	return n.ID, nil
}

// CreateMany inserts all records in one transaction. Either every record
// becomes durable or none does, so a fan-out never lands partially.
func (r *mongoNotificationRepo) CreateMany(ctx context.Context, ns []models.Notification) ([]string, error) {
	if len(ns) == 0 {
		return nil, nil
	}

	now := time.Now()
	ids := make([]string, len(ns))
	docs := make([]interface{}, len(ns))
	for i := range ns {
		if ns[i].Recipient == "" || ns[i].Message == "" {
			return nil, fmt.Errorf("notification %d: %w", i, ErrInvalidRecord)
		}
		if ns[i].ID == "" {
			ns[i].ID = uuid.New().String()
		}
		if ns[i].CreatedAt.IsZero() {
			ns[i].CreatedAt = now
		}
		ns[i].Read = false
		ids[i] = ns[i].ID
		docs[i] = ns[i]
	}

	session, err := r.coll.Database().Client().StartSession()
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return r.coll.InsertMany(sc, docs)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert notification batch: %w", err)
	}
	return ids, nil
}

// Delete removes the record iff it is owned by the recipient.
func (r *mongoNotificationRepo) Delete(ctx context.Context, id, recipient string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "recipient": recipient})
	if err != nil {
		return fmt.Errorf("failed to delete notification %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

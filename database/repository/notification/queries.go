package notificationRepo

import (
	"context"
	"fmt"

	"kietcollab/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Query returns one page of the recipient's records plus the total count
// ignoring pagination. The sort is total: ties on both keys are broken by
// the unique id so pages never skip or duplicate records.
func (r *mongoNotificationRepo) Query(ctx context.Context, recipient string, page, pageSize int, order string) ([]models.Notification, int64, error) {
	filter := bson.M{"recipient": recipient}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	var sort bson.D
	switch order {
	case OrderRecency:
		sort = bson.D{{Key: "createdAt", Value: -1}, {Key: "id", Value: -1}}
	default:
		// Unread first, each tier newest first.
		sort = bson.D{{Key: "read", Value: 1}, {Key: "createdAt", Value: -1}, {Key: "id", Value: -1}}
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, 0, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return notifications, total, nil
}

// CountUnread returns the recipient's unread count.
func (r *mongoNotificationRepo) CountUnread(ctx context.Context, recipient string) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"recipient": recipient, "read": false})
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// SetRead marks the record read iff it exists and belongs to the recipient,
// and returns the updated record. Read state only moves false -> true, so
// concurrent calls converge on the same terminal state.
func (r *mongoNotificationRepo) SetRead(ctx context.Context, id, recipient string) (*models.Notification, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var n models.Notification
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"id": id, "recipient": recipient},
		bson.M{"$set": bson.M{"read": true}},
		opts,
	).Decode(&n)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to mark notification %s read: %w", id, err)
	}
	return &n, nil
}

// SetAllRead marks every unread record for the recipient read and returns
// how many were changed.
func (r *mongoNotificationRepo) SetAllRead(ctx context.Context, recipient string) (int64, error) {
	res, err := r.coll.UpdateMany(ctx,
		bson.M{"recipient": recipient, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return res.ModifiedCount, nil
}

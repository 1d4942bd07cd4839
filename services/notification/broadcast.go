package notification

import (
	"context"
	"encoding/json"
	"errors"

	"kietcollab/models"
	"kietcollab/utils"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Fan-outs at or above this size are queued instead of delivered on the
// request path.
const asyncFanoutThreshold = 25

// BroadcastAnnouncement delivers an announcement from an admin actor.
// With an explicit recipient list every recipient gets a durable record;
// with none it degrades to an ephemeral push to whoever is connected now.
// Returns the number of records created (or channels reached).
func (s *DefaultNotificationService) BroadcastAnnouncement(ctx context.Context, actorID, message string, recipients []string) (int, error) {
	if actorID == "" {
		return 0, ValidationError{Field: "actor"}
	}
	if message == "" {
		return 0, ValidationError{Field: "message"}
	}

	actor, err := s.Users.GetByIDWithProjection(actorID, bson.M{"id": 1, "role": 1})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, ForbiddenError{ActorID: actorID}
		}
		return 0, err
	}
	if actor.Role != models.RoleAdmin {
		return 0, ForbiddenError{ActorID: actorID}
	}

	targets := dedupe(recipients)
	if len(targets) == 0 {
		return s.BroadcastEphemeral(actorID, message), nil
	}

	if s.Queue != nil && len(targets) >= asyncFanoutThreshold {
		if err := s.enqueueAnnouncement(ctx, actorID, message, targets); err == nil {
			return len(targets), nil
		}
		// Queue unavailable: fall through to synchronous delivery.
	}

	ins := make([]EmitInput, len(targets))
	for i, r := range targets {
		ins[i] = EmitInput{
			Recipient: r,
			Sender:    actorID,
			Kind:      models.NotificationKindAnnouncement,
			Message:   message,
		}
	}
	records, err := s.EmitMany(ctx, ins)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (s *DefaultNotificationService) enqueueAnnouncement(ctx context.Context, actorID, message string, recipients []string) error {
	payload, err := json.Marshal(models.AnnouncementPayload{
		Actor:      actorID,
		Message:    message,
		Recipients: recipients,
	})
	if err != nil {
		return err
	}
	_, err = s.Queue.EnqueueContext(ctx, asynq.NewTask(TypeAnnouncementDeliver, payload))
	if err != nil {
		utils.GetLogger().Warn("failed to enqueue announcement, delivering synchronously",
			zap.String("actor", actorID), zap.Error(err))
	}
	return err
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

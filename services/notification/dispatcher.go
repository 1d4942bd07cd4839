package notification

import (
	"context"
	"time"

	"kietcollab/models"
	"kietcollab/realtime"
	"kietcollab/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Emit durably records one notification and pushes it to every live
// channel of the recipient. A recipient with no live channel simply gets
// the record on their next listing; a failed push never surfaces to the
// caller once the record is persisted.
func (s *DefaultNotificationService) Emit(ctx context.Context, in EmitInput) (*models.Notification, error) {
	n, err := buildRecord(in)
	if err != nil {
		return nil, err
	}

	id, err := s.Repo.Create(ctx, *n)
	if err != nil {
		return nil, err
	}
	n.ID = id

	s.resolveSender(n)
	s.pushToRecipient(ctx, *n)
	return n, nil
}

// EmitMany fans one event out to an explicit recipient list. All records
// are persisted in one all-or-nothing batch before any push is attempted,
// so persistence and live delivery stay separate failure domains.
func (s *DefaultNotificationService) EmitMany(ctx context.Context, ins []EmitInput) ([]models.Notification, error) {
	if len(ins) == 0 {
		return nil, nil
	}

	records := make([]models.Notification, len(ins))
	for i, in := range ins {
		n, err := buildRecord(in)
		if err != nil {
			return nil, err
		}
		records[i] = *n
	}

	ids, err := s.Repo.CreateMany(ctx, records)
	if err != nil {
		return nil, err
	}

	for i := range records {
		records[i].ID = ids[i]
		s.resolveSender(&records[i])
		s.pushToRecipient(ctx, records[i])
	}
	return records, nil
}

// BroadcastEphemeral pushes a record-shaped payload to every live channel
// without persisting anything. Offline users never see it and it never
// appears in anyone's history.
func (s *DefaultNotificationService) BroadcastEphemeral(actor, message string) int {
	logger := utils.GetLogger()

	payload := models.Notification{
		ID:        uuid.New().String(),
		Sender:    actor,
		Kind:      models.NotificationKindAnnouncement,
		Message:   message,
		CreatedAt: time.Now(),
	}
	s.resolveSender(&payload)

	sent := 0
	for _, ch := range s.Hub.AllChannels() {
		ev := realtime.Event{Type: realtime.EventTypeNotification, Data: payload}
		ev.Data.Recipient = ch.UserID
		if err := ch.Push(ev); err != nil {
			logger.Debug("ephemeral broadcast push failed",
				zap.String("userID", ch.UserID), zap.Error(err))
			continue
		}
		sent++
	}
	return sent
}

// buildRecord validates an EmitInput and shapes the record to persist.
func buildRecord(in EmitInput) (*models.Notification, error) {
	if in.Recipient == "" {
		return nil, ValidationError{Field: "recipient"}
	}
	if in.Message == "" {
		return nil, ValidationError{Field: "message"}
	}
	kind := in.Kind
	if kind == "" {
		kind = models.NotificationKindSystem
	}
	return &models.Notification{
		Recipient: in.Recipient,
		Sender:    in.Sender,
		Kind:      kind,
		Message:   in.Message,
		Related:   in.Related,
		CreatedAt: time.Now(),
	}, nil
}

// resolveSender fills the display fields from the sender's profile.
// System notifications have no sender and are left as-is.
func (s *DefaultNotificationService) resolveSender(n *models.Notification) {
	if n.Sender == "" {
		return
	}
	u, err := s.Users.GetByIDWithProjection(n.Sender, bson.M{"id": 1, "name": 1, "avatarUrl": 1})
	if err != nil {
		utils.GetLogger().Debug("could not resolve sender for display",
			zap.String("sender", n.Sender), zap.Error(err))
		return
	}
	n.SenderName = u.Name
	n.SenderAvatar = u.AvatarURL
}

// pushToRecipient delivers the record to every live channel of its
// recipient. Push failures are logged and discarded; when the recipient
// has no live channel at all, an FCM push is attempted instead.
func (s *DefaultNotificationService) pushToRecipient(ctx context.Context, n models.Notification) {
	logger := utils.GetLogger()

	channels := s.Hub.ChannelsFor(n.Recipient)
	for _, ch := range channels {
		if err := ch.Push(realtime.Event{Type: realtime.EventTypeNotification, Data: n}); err != nil {
			logger.Debug("live push failed",
				zap.String("recipient", n.Recipient),
				zap.String("notificationID", n.ID),
				zap.Error(err))
		}
	}

	if len(channels) == 0 {
		s.pushFCM(ctx, n)
	}
}

// pushFCM sends a best-effort mobile push to an offline recipient.
func (s *DefaultNotificationService) pushFCM(ctx context.Context, n models.Notification) {
	if utils.FCMClient == nil {
		return
	}
	logger := utils.GetLogger()

	u, err := s.Users.GetByIDWithProjection(n.Recipient, bson.M{"id": 1, "fcmToken": 1})
	if err != nil || u.FCMToken == "" {
		return
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: fcmTitle(n.Kind),
			Body:  n.Message,
		},
		Data: map[string]string{
			"notificationId": n.ID,
			"kind":           n.Kind,
		},
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		logger.Debug("FCM push failed",
			zap.String("recipient", n.Recipient), zap.Error(err))
	}
}

func fcmTitle(kind string) string {
	switch kind {
	case models.NotificationKindInvite:
		return "New team invite"
	case models.NotificationKindTeamUpdate:
		return "Team update"
	case models.NotificationKindHackathon:
		return "Hackathon update"
	case models.NotificationKindAnnouncement:
		return "Announcement"
	default:
		return "New notification"
	}
}

package cron

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"kietcollab/models"
	"kietcollab/services/notification"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubNotificationService captures EmitMany calls. Unoverridden methods
// panic via the embedded nil interface.
type stubNotificationService struct {
	notification.NotificationService
	emitted []notification.EmitInput
	err     error
}

func (s *stubNotificationService) EmitMany(_ context.Context, ins []notification.EmitInput) ([]models.Notification, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.emitted = append(s.emitted, ins...)
	out := make([]models.Notification, len(ins))
	for i, in := range ins {
		out[i] = models.Notification{Recipient: in.Recipient, Message: in.Message}
	}
	return out, nil
}

func announcementTask(t *testing.T, p models.AnnouncementPayload) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(p)
	require.NoError(t, err)
	return asynq.NewTask(notification.TypeAnnouncementDeliver, payload)
}

func TestAnnouncementTaskFansOut(t *testing.T) {
	svc := &stubNotificationService{}
	handler := handleAnnouncementTask(svc)

	task := announcementTask(t, models.AnnouncementPayload{
		Actor:      "admin-1",
		Message:    "Hackathon registrations open",
		Recipients: []string{"student-1", "student-2"},
	})
	require.NoError(t, handler(context.Background(), task))

	require.Len(t, svc.emitted, 2)
	for i, recipient := range []string{"student-1", "student-2"} {
		assert.Equal(t, recipient, svc.emitted[i].Recipient)
		assert.Equal(t, "admin-1", svc.emitted[i].Sender)
		assert.Equal(t, models.NotificationKindAnnouncement, svc.emitted[i].Kind)
		assert.Equal(t, "Hackathon registrations open", svc.emitted[i].Message)
	}
}

func TestAnnouncementTaskSkipsEmptyRecipients(t *testing.T) {
	svc := &stubNotificationService{}
	handler := handleAnnouncementTask(svc)

	task := announcementTask(t, models.AnnouncementPayload{Actor: "admin-1", Message: "noop"})
	require.NoError(t, handler(context.Background(), task))
	assert.Empty(t, svc.emitted)
}

func TestAnnouncementTaskRejectsBadPayload(t *testing.T) {
	svc := &stubNotificationService{}
	handler := handleAnnouncementTask(svc)

	task := asynq.NewTask(notification.TypeAnnouncementDeliver, []byte("not json"))
	assert.Error(t, handler(context.Background(), task))
	assert.Empty(t, svc.emitted)
}

func TestAnnouncementTaskPropagatesDeliveryFailure(t *testing.T) {
	svc := &stubNotificationService{err: errors.New("transaction aborted")}
	handler := handleAnnouncementTask(svc)

	task := announcementTask(t, models.AnnouncementPayload{
		Actor:      "admin-1",
		Message:    "retry me",
		Recipients: []string{"student-1"},
	})
	assert.Error(t, handler(context.Background(), task), "failed fan-outs must be retried by the queue")
}

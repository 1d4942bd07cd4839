package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"kietcollab/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastRequiresAdminRole(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	ctx := context.Background()

	var fe ForbiddenError
	_, err := svc.BroadcastAnnouncement(ctx, "student-1", "hello all", nil)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "student-1", fe.ActorID)

	// An unknown actor is rejected the same way.
	_, err = svc.BroadcastAnnouncement(ctx, "ghost", "hello all", nil)
	require.ErrorAs(t, err, &fe)

	assert.Empty(t, repo.records)
}

func TestBroadcastFanOutCreatesDurableRecords(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	ctx := context.Background()

	recipients := []string{"student-1", "student-2", "student-1", ""}
	sent, err := svc.BroadcastAnnouncement(ctx, "admin-1", "Hackathon registrations open", recipients)
	require.NoError(t, err)
	assert.Equal(t, 2, sent, "duplicates and empty ids are ignored")

	for _, user := range []string{"student-1", "student-2"} {
		page, err := svc.ListForUser(ctx, user, 1, 10, true)
		require.NoError(t, err)
		require.Len(t, page.Data, 1)
		assert.Equal(t, models.NotificationKindAnnouncement, page.Data[0].Kind)
		assert.Equal(t, "admin-1", page.Data[0].Sender)
		assert.Equal(t, "Dean", page.Data[0].SenderName)
	}
	assert.Len(t, repo.records, 2)
}

func TestBroadcastEphemeralIsNotDurable(t *testing.T) {
	svc, repo, _, hub := newTestService(t)
	ctx := context.Background()

	online := hub.Register("student-1")
	// student-2 is offline at broadcast time.

	sent, err := svc.BroadcastAnnouncement(ctx, "admin-1", "Server maintenance in 5 minutes", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	select {
	case ev := <-online.Events():
		assert.Equal(t, "Server maintenance in 5 minutes", ev.Data.Message)
		assert.Equal(t, "student-1", ev.Data.Recipient)
	default:
		t.Fatal("connected user should have received the broadcast")
	}

	assert.Empty(t, repo.records, "ephemeral broadcasts persist nothing")

	for _, user := range []string{"student-1", "student-2"} {
		count, err := svc.UnreadCount(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)

		page, err := svc.ListForUser(ctx, user, 1, 10, true)
		require.NoError(t, err)
		assert.Empty(t, page.Data)
	}
}

func manyRecipients(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("student-%03d", i)
	}
	return out
}

func TestBroadcastQueuesLargeFanOut(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	queue := &fakeQueue{}
	svc.Queue = queue
	ctx := context.Background()

	recipients := manyRecipients(asyncFanoutThreshold + 5)
	sent, err := svc.BroadcastAnnouncement(ctx, "admin-1", "Semester results published", recipients)
	require.NoError(t, err)
	assert.Equal(t, len(recipients), sent)

	assert.Empty(t, repo.records, "queued fan-out defers persistence to the worker")
	require.Len(t, queue.tasks, 1)

	task := queue.tasks[0]
	assert.Equal(t, TypeAnnouncementDeliver, task.Type())

	var p models.AnnouncementPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, "admin-1", p.Actor)
	assert.Equal(t, "Semester results published", p.Message)
	assert.Len(t, p.Recipients, len(recipients))
}

func TestBroadcastSmallFanOutStaysSynchronous(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	queue := &fakeQueue{}
	svc.Queue = queue
	ctx := context.Background()

	sent, err := svc.BroadcastAnnouncement(ctx, "admin-1", "Lab slot moved", []string{"student-1", "student-2"})
	require.NoError(t, err)
	assert.Equal(t, 2, sent)

	assert.Empty(t, queue.tasks, "small fan-outs never touch the queue")
	assert.Len(t, repo.records, 2)
}

func TestBroadcastFallsBackWhenEnqueueFails(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	queue := &fakeQueue{err: errors.New("dial tcp: connection refused")}
	svc.Queue = queue
	ctx := context.Background()

	recipients := manyRecipients(asyncFanoutThreshold)
	sent, err := svc.BroadcastAnnouncement(ctx, "admin-1", "Campus closed tomorrow", recipients)
	require.NoError(t, err, "a dead queue must not lose the announcement")
	assert.Equal(t, len(recipients), sent)

	require.Len(t, repo.records, len(recipients))
	for _, r := range repo.records {
		assert.Equal(t, models.NotificationKindAnnouncement, r.Kind)
		assert.Equal(t, "admin-1", r.Sender)
	}
}

func TestBroadcastValidation(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	var ve ValidationError
	_, err := svc.BroadcastAnnouncement(ctx, "admin-1", "", nil)
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "message", ve.Field)

	_, err = svc.BroadcastAnnouncement(ctx, "", "msg", nil)
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "actor", ve.Field)
}

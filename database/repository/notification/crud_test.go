package notificationRepo

import (
	"context"
	"testing"

	"kietcollab/models"

	"github.com/stretchr/testify/assert"
)

// Validation runs before any database access, so a zero-value repo is
// enough to exercise it.

func TestCreateRejectsIncompleteRecord(t *testing.T) {
	repo := &mongoNotificationRepo{}
	ctx := context.Background()

	_, err := repo.Create(ctx, models.Notification{Message: "no recipient"})
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = repo.Create(ctx, models.Notification{Recipient: "student-1"})
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestCreateManyRejectsIncompleteRecord(t *testing.T) {
	repo := &mongoNotificationRepo{}

	_, err := repo.CreateMany(context.Background(), []models.Notification{
		{Recipient: "student-1", Message: "ok"},
		{Recipient: "", Message: "missing recipient"},
	})
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestCreateManyEmptyBatchIsNoOp(t *testing.T) {
	repo := &mongoNotificationRepo{}

	ids, err := repo.CreateMany(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, ids)
}

package notification

import (
	"context"
	"errors"

	notificationRepo "kietcollab/database/repository/notification"
	"kietcollab/models"
)

// MarkRead transitions one notification to read and returns the updated
// record. Marking an already-read record succeeds without changing it.
// Missing and not-owned records report the same NotFoundError.
func (s *DefaultNotificationService) MarkRead(ctx context.Context, userID, notificationID string) (*models.Notification, error) {
	n, err := s.Repo.SetRead(ctx, notificationID, userID)
	if err != nil {
		if errors.Is(err, notificationRepo.ErrNotFound) {
			return nil, NotFoundError{ID: notificationID}
		}
		return nil, err
	}
	s.resolveSender(n)
	return n, nil
}

// MarkAllRead marks every unread notification the user had at the moment
// of the call and returns how many changed. Records inserted while the
// call is in flight may or may not be included.
func (s *DefaultNotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, ValidationError{Field: "recipient"}
	}
	return s.Repo.SetAllRead(ctx, userID)
}

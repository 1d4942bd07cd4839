package notification

import (
	"context"
	"errors"

	notificationRepo "kietcollab/database/repository/notification"
	"kietcollab/models"
)

const (
	defaultPageSize = 30
	maxPageSize     = 50
)

// ListForUser returns one page of the user's notifications with pagination
// metadata. unreadFirst chooses the two-key ordering (unread tier first,
// each tier newest first); otherwise pure recency.
func (s *DefaultNotificationService) ListForUser(ctx context.Context, userID string, page, pageSize int, unreadFirst bool) (*models.NotificationPage, error) {
	if userID == "" {
		return nil, ValidationError{Field: "recipient"}
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	order := notificationRepo.OrderUnreadFirst
	if !unreadFirst {
		order = notificationRepo.OrderRecency
	}

	records, total, err := s.Repo.Query(ctx, userID, page, pageSize, order)
	if err != nil {
		return nil, err
	}

	for i := range records {
		s.resolveSender(&records[i])
	}

	pageCount := (total + int64(pageSize) - 1) / int64(pageSize)
	return &models.NotificationPage{
		Data: records,
		Meta: models.NotificationMeta{
			Page:      page,
			PageSize:  pageSize,
			Total:     total,
			PageCount: pageCount,
		},
	}, nil
}

// UnreadCount returns the user's current unread count.
func (s *DefaultNotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, ValidationError{Field: "recipient"}
	}
	return s.Repo.CountUnread(ctx, userID)
}

// Delete removes a notification owned by the user. A record that does not
// exist and a record owned by someone else both report NotFoundError.
func (s *DefaultNotificationService) Delete(ctx context.Context, userID, notificationID string) error {
	err := s.Repo.Delete(ctx, notificationID, userID)
	if errors.Is(err, notificationRepo.ErrNotFound) {
		return NotFoundError{ID: notificationID}
	}
	return err
}

package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/careerconnect/careerconnect-be/internal/api/domain"
	"github.com/careerconnect/careerconnect-be/internal/api/model"
)

func (s *Storage) CreateNotification(ctx context.Context, n *model.Notification) error {
	query := `
		INSERT INTO notifications (
			id, user_uid, title, message, type,
			related_job_id, related_application_id, is_read, created_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		n.ID,
		n.UserUID,
		n.Title,
		n.Message,
		n.Type,
		n.RelatedJobID,
		n.RelatedApplicationID,
		n.IsRead,
		n.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

type NotificationFilter struct {
	UserUID    string
	UnreadOnly bool
	Limit      int
	Cursor     *NotificationCursor
}

type NotificationCursor struct {
	CreatedAt time.Time
	ID        string
}

func (s *Storage) ListNotifications(ctx context.Context, filter NotificationFilter) ([]model.Notification, error) {
	query := `
		SELECT id, user_uid, title, message, type,
		       related_job_id, related_application_id, is_read, created_at
		FROM notifications
		WHERE user_uid = $1
	`
	args := []interface{}{filter.UserUID}
	argIdx := 2

	if filter.UnreadOnly {
		query += " AND is_read = FALSE"
	}

	if filter.Cursor != nil {
		query += fmt.Sprintf(" AND (created_at, id) < ($%d, $%d)", argIdx, argIdx+1)
		args = append(args, filter.Cursor.CreatedAt, filter.Cursor.ID)
		argIdx += 2
	}

	// Order by created_at DESC, id DESC for consistent pagination
	query += " ORDER BY created_at DESC, id DESC"

	// Fetch one extra to determine if there are more results
	query += fmt.Sprintf(" LIMIT $%d", argIdx)
	args = append(args, filter.Limit+1)

	var notifications []model.Notification
	if err := s.db.SelectContext(ctx, &notifications, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	return notifications, nil
}

func (s *Storage) MarkNotificationRead(ctx context.Context, notificationID, userUID string, isRead bool) error {
	query := `
		UPDATE notifications
		SET is_read = $1
		WHERE id = $2 AND user_uid = $3
	`

	res, err := s.db.ExecContext(ctx, query, isRead, notificationID, userUID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (s *Storage) MarkAllNotificationsRead(ctx context.Context, userUID string) error {
	query := `
		UPDATE notifications
		SET is_read = TRUE
		WHERE user_uid = $1 AND is_read = FALSE
	`

	if _, err := s.db.ExecContext(ctx, query, userUID); err != nil {
		return fmt.Errorf("failed to mark all notifications read: %w", err)
	}

	return nil
}

func (s *Storage) UnreadNotificationCount(ctx context.Context, userUID string) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM notifications
		WHERE user_uid = $1 AND is_read = FALSE
	`

	if err := s.db.GetContext(ctx, &count, query, userUID); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

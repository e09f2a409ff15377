package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"agoraun/internal/domain"
)

type notificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepository(db *sql.DB) domain.NotificationRepository {
	return &notificationRepository{
		DB: db,
	}
}

// Create inserts the notification and one unread join row per recipient in a
// single transaction.
func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification, userIDs []string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO notifications (type, message, sent_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, n.Type, n.Message, n.SentAt).Scan(&n.ID)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}

	for _, userID := range userIDs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO user_notifications (user_id, notification_id, read) VALUES ($1, $2, false)`,
			userID, n.ID)
		if err != nil {
			return fmt.Errorf("insert user notification: %w", err)
		}
	}

	return tx.Commit()
}

func (r *notificationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.UserNotification, error) {
	query := `
		SELECT n.id, n.type, n.message, n.sent_at, un.read
		FROM user_notifications un
		JOIN notifications n ON n.id = un.notification_id
		WHERE un.user_id = $1
		ORDER BY n.sent_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*domain.UserNotification
	for rows.Next() {
		n := &domain.Notification{}
		un := &domain.UserNotification{Notification: n}
		if err := rows.Scan(&n.ID, &n.Type, &n.Message, &n.SentAt, &un.Read); err != nil {
			return nil, err
		}
		notifications = append(notifications, un)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []*domain.UserNotification{}
	}
	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID, notificationID string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE user_notifications SET read = true WHERE user_id = $1 AND notification_id = $2`,
		userID, notificationID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

package domain

import (
	"context"
	"time"
)

// Notification represents a message fanned out to a set of users.
// swagger:model Notification
type Notification struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"sent_at"`
}

// UserNotification is a notification as seen by one recipient, with its read flag.
type UserNotification struct {
	Notification *Notification `json:"notification"`
	Read         bool          `json:"read"`
}

// NotificationRepository defines storage operations for notifications and
// their per-recipient join rows.
type NotificationRepository interface {
	// Create inserts the notification and one unread join row per recipient.
	Create(ctx context.Context, n *Notification, userIDs []string) error
	ListByUserID(ctx context.Context, userID string) ([]*UserNotification, error)
	// MarkRead flips the read flag on the (user, notification) join row.
	// Returns ErrNotFound if no row was updated.
	MarkRead(ctx context.Context, userID, notificationID string) error
}

// NotificationService defines notification fan-out and inbox operations.
type NotificationService interface {
	Send(ctx context.Context, userIDs []string, notifType, message string) (*Notification, error)
	ListMine(ctx context.Context, userID string) ([]*UserNotification, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
}

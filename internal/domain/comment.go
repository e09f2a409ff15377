package domain

import (
	"context"
	"time"
)

// Comment status values.
const (
	CommentStatusPublished = "PUBLISHED"
	CommentStatusPending   = "PENDING"
	CommentStatusRejected  = "REJECTED"
)

// Comment represents a user comment.
// swagger:model Comment
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentRepository defines storage operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	List(ctx context.Context, status string) ([]*Comment, error)
}

// CommentService defines comment operations.
type CommentService interface {
	Create(ctx context.Context, userID, message string) (*Comment, error)
	List(ctx context.Context, status string) ([]*Comment, error)
}

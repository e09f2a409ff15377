package domain

import (
	"context"
	"time"
)

// Group status values (approval workflow).
const (
	GroupStatusPending  = "PENDING"
	GroupStatusApproved = "APPROVED"
	GroupStatusRejected = "REJECTED"
)

// Group represents a student group or club
// swagger:model Group
type Group struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	ContactEmail    string    `json:"contact_email"`
	Description     string    `json:"description"`
	Status          string    `json:"status"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	CreatedBy       string    `json:"created_by,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewGroup returns a new PENDING Group. ID is typically set by the repository on create.
func NewGroup(name, category, contactEmail, description, createdBy string, createdAt time.Time) *Group {
	return &Group{
		Name:         name,
		Category:     category,
		ContactEmail: contactEmail,
		Description:  description,
		Status:       GroupStatusPending,
		CreatedBy:    createdBy,
		CreatedAt:    createdAt,
	}
}

// GroupFilter holds optional filters for listing groups.
type GroupFilter struct {
	Category   string
	Status     string
	Search     string
	Pagination PaginationParams
}

// GroupUpdate holds the mutable group fields; nil fields are left unchanged.
type GroupUpdate struct {
	Name         *string
	Category     *string
	ContactEmail *string
	Description  *string
}

// GroupRepository defines the interface for group storage
type GroupRepository interface {
	Create(ctx context.Context, group *Group) error
	GetByID(ctx context.Context, id string) (*Group, error)
	GetByName(ctx context.Context, name string) (*Group, error)
	List(ctx context.Context, filter GroupFilter) ([]*Group, error)
	Update(ctx context.Context, id string, update GroupUpdate) (*Group, error)
	SetStatus(ctx context.Context, id, status, rejectionReason string) (*Group, error)
	Delete(ctx context.Context, id string) error
}

// GroupCache caches group reads. Implementations must tolerate cache
// unavailability: a miss is never an error for the caller.
type GroupCache interface {
	Get(ctx context.Context, id string) (*Group, bool)
	Set(ctx context.Context, group *Group)
	Invalidate(ctx context.Context, id string)
}

// GroupService defines the business logic for the group lifecycle.
type GroupService interface {
	Create(ctx context.Context, group *Group, creatorID string) (*Group, error)
	GetByID(ctx context.Context, id string) (*Group, error)
	List(ctx context.Context, filter GroupFilter) ([]*Group, error)
	Update(ctx context.Context, id string, update GroupUpdate) (*Group, error)
	Approve(ctx context.Context, id string) (*Group, error)
	Reject(ctx context.Context, id, reason string) (*Group, error)
	Delete(ctx context.Context, id string) error
}

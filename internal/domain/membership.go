package domain

import (
	"context"
	"time"
)

// Membership roles within a group.
const (
	MembershipRoleAdmin  = "ADMIN"
	MembershipRoleMember = "MEMBER"
)

// Membership represents a user belonging to a group with a role.
// swagger:model Membership
type Membership struct {
	GroupID  string    `json:"group_id"`
	UserID   string    `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// GroupMember bundles a membership with the member's public profile fields.
type GroupMember struct {
	UserID   string    `json:"user_id"`
	Name     string    `json:"name"`
	LastName string    `json:"last_name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// MembershipRepository defines storage operations for the user-group relation.
type MembershipRepository interface {
	// Add inserts the join row. Returns ErrDuplicateMembership if the
	// (group, user) pair already exists.
	Add(ctx context.Context, groupID, userID, role string, joinedAt time.Time) error
	// Remove deletes the join row. Returns ErrMembershipNotFound if no row
	// was deleted.
	Remove(ctx context.Context, groupID, userID string) error
	ListByGroupID(ctx context.Context, groupID string) ([]*GroupMember, error)
	CountByUserID(ctx context.Context, userID string) (int, error)
}

// MembershipService defines group membership operations.
type MembershipService interface {
	AddMember(ctx context.Context, groupID, userID, role string) (*Membership, error)
	RemoveMember(ctx context.Context, groupID, userID string) error
	ListMembers(ctx context.Context, groupID string) ([]*GroupMember, error)
}

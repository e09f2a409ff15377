package domain

import (
	"context"
	"time"
)

// Participation status values. PENDING is the initial state; CONFIRMED and
// CANCELLED are terminal.
const (
	ParticipationStatusPending   = "PENDING"
	ParticipationStatusConfirmed = "CONFIRMED"
	ParticipationStatusCancelled = "CANCELLED"
)

// Participation represents a user's registration for an event.
// swagger:model Participation
type Participation struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	Comment   string    `json:"comment,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// NewParticipation returns a new PENDING Participation. ID is typically set by the repository on create.
func NewParticipation(eventID, userID, comment string, createdAt time.Time) *Participation {
	return &Participation{
		EventID:   eventID,
		UserID:    userID,
		Comment:   comment,
		Status:    ParticipationStatusPending,
		CreatedAt: createdAt,
	}
}

// ParticipationRepository defines storage operations for event participations.
//
// Register and UpdateStatus each run inside a single transaction that holds an
// exclusive lock on the event row, so concurrent check-then-act sequences
// against the same event are serialized.
type ParticipationRepository interface {
	// Register admits the user into the event's participant list. The
	// transaction locks the event row, rejects duplicates with
	// ErrDuplicateRegistration, rejects full events with
	// ErrCapacityExceeded (counting CONFIRMED rows only), then inserts the
	// participation and its user join row.
	Register(ctx context.Context, p *Participation) error
	GetByID(ctx context.Context, id string) (*Participation, error)
	// UpdateStatus transitions the participation, re-locking the event row.
	// When checkCapacity is true the CONFIRMED count is validated against
	// the event capacity before committing.
	UpdateStatus(ctx context.Context, id, status string, checkCapacity bool) (*Participation, error)
	ListByEventID(ctx context.Context, eventID, status string) ([]*Participation, error)
	ListByUserID(ctx context.Context, userID string) ([]*Participation, error)
}

// ParticipationWithEvent bundles a participation with its related event.
type ParticipationWithEvent struct {
	Participation *Participation `json:"participation"`
	Event         *Event         `json:"event"`
}

// ParticipationService defines the registration workflow: admitting users
// into events under capacity and uniqueness constraints, and the
// PENDING -> CONFIRMED | CANCELLED state machine.
type ParticipationService interface {
	Register(ctx context.Context, eventID, userID, comment string) (*Participation, error)
	Confirm(ctx context.Context, participationID string) (*Participation, error)
	Cancel(ctx context.Context, participationID string) (*Participation, error)
	ListByEvent(ctx context.Context, eventID, status string) ([]*Participation, error)
	ListMyParticipations(ctx context.Context, userID string) ([]*ParticipationWithEvent, error)
}

package domain

import (
	"context"
	"time"
)

// Event status values.
const (
	EventStatusScheduled  = "SCHEDULED"
	EventStatusInProgress = "IN_PROGRESS"
	EventStatusFinished   = "FINISHED"
	EventStatusCancelled  = "CANCELLED"
)

// Event represents an event organized by a group
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	GroupID     string    `json:"group_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Location    string    `json:"location"`
	Capacity    int       `json:"capacity"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewEvent returns a new SCHEDULED Event. ID is typically set by the repository on create.
func NewEvent(groupID, name, description, location string, startTime, endTime time.Time, capacity int, createdAt time.Time) *Event {
	return &Event{
		GroupID:     groupID,
		Name:        name,
		Description: description,
		StartTime:   startTime,
		EndTime:     endTime,
		Location:    location,
		Capacity:    capacity,
		Status:      EventStatusScheduled,
		CreatedAt:   createdAt,
	}
}

// EventFilter holds optional filters for listing events.
type EventFilter struct {
	GroupID    string
	Status     string
	From       *time.Time
	Pagination PaginationParams
}

// EventUpdate holds the mutable event fields; nil fields are left unchanged.
type EventUpdate struct {
	Name        *string
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
	Location    *string
	Capacity    *int
	Status      *string
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter EventFilter) ([]*Event, error)
	Update(ctx context.Context, id string, update EventUpdate) (*Event, error)
	SetStatus(ctx context.Context, id, status string) (*Event, error)
}

// EventService defines the business logic for the event lifecycle.
type EventService interface {
	Create(ctx context.Context, event *Event) (*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter EventFilter) ([]*Event, error)
	Update(ctx context.Context, id string, update EventUpdate) (*Event, error)
	// Cancel sets the event CANCELLED and notifies registered users.
	Cancel(ctx context.Context, id string) (*Event, error)
}

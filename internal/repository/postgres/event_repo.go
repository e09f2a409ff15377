package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"agoraun/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

const eventColumns = `id, group_id, name, description, start_time, end_time, location, capacity, status, created_at`

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (group_id, name, description, start_time, end_time, location, capacity, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		event.GroupID, event.Name, event.Description, event.StartTime, event.EndTime,
		event.Location, event.Capacity, event.Status, event.CreatedAt).
		Scan(&event.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return scanEvent(r.DB.QueryRowContext(ctx, query, id))
}

func scanEvent(row *sql.Row) (*domain.Event, error) {
	event := &domain.Event{}
	err := row.Scan(&event.ID, &event.GroupID, &event.Name, &event.Description,
		&event.StartTime, &event.EndTime, &event.Location, &event.Capacity,
		&event.Status, &event.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return event, nil
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE ($1 = '' OR group_id::text = $1)
		  AND ($2 = '' OR status = $2)
		  AND ($3::timestamptz IS NULL OR start_time >= $3)
		ORDER BY start_time
		LIMIT NULLIF($4, 0) OFFSET $5
	`
	rows, err := r.DB.QueryContext(ctx, query, filter.GroupID, filter.Status, filter.From,
		filter.Pagination.PageSize, filter.Pagination.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		event := &domain.Event{}
		if err := rows.Scan(&event.ID, &event.GroupID, &event.Name, &event.Description,
			&event.StartTime, &event.EndTime, &event.Location, &event.Capacity,
			&event.Status, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (r *eventRepository) Update(ctx context.Context, id string, update domain.EventUpdate) (*domain.Event, error) {
	query := `
		UPDATE events
		SET name        = COALESCE($2, name),
		    description = COALESCE($3, description),
		    start_time  = COALESCE($4, start_time),
		    end_time    = COALESCE($5, end_time),
		    location    = COALESCE($6, location),
		    capacity    = COALESCE($7, capacity),
		    status      = COALESCE($8, status)
		WHERE id = $1
		RETURNING ` + eventColumns + `
	`
	return scanEvent(r.DB.QueryRowContext(ctx, query, id,
		update.Name, update.Description, update.StartTime, update.EndTime,
		update.Location, update.Capacity, update.Status))
}

func (r *eventRepository) SetStatus(ctx context.Context, id, status string) (*domain.Event, error) {
	query := `
		UPDATE events
		SET status = $2
		WHERE id = $1
		RETURNING ` + eventColumns + `
	`
	return scanEvent(r.DB.QueryRowContext(ctx, query, id, status))
}

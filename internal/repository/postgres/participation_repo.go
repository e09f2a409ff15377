package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"agoraun/internal/domain"
)

// lockTimeout bounds how long a registration waits on the event row lock
// before giving up with domain.ErrBusy.
const lockTimeout = "3s"

// pq error code for lock_timeout expiry.
const pqLockNotAvailable = "55P03"

type participationRepository struct {
	DB *sql.DB
}

func NewParticipationRepository(db *sql.DB) domain.ParticipationRepository {
	return &participationRepository{
		DB: db,
	}
}

// Register admits a user into an event inside a single transaction. The event
// row is locked first, which serializes concurrent registrations for the same
// event: two callers racing for the last seat cannot both pass the capacity
// check. Registrations for different events proceed in parallel.
func (r *participationRepository) Register(ctx context.Context, p *domain.Participation) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%s'", lockTimeout)); err != nil {
		return fmt.Errorf("set lock timeout: %w", err)
	}

	var capacity int
	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT capacity, status FROM events WHERE id = $1 FOR UPDATE`, p.EventID).
		Scan(&capacity, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return mapLockErr(err)
	}
	if status == domain.EventStatusCancelled || status == domain.EventStatusFinished {
		return domain.ErrInvalidInput
	}

	var registered bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM participation_users pu
			JOIN participations p ON p.id = pu.participation_id
			WHERE p.event_id = $1 AND pu.user_id = $2
		)
	`, p.EventID, p.UserID).Scan(&registered)
	if err != nil {
		return fmt.Errorf("check duplicate registration: %w", err)
	}
	if registered {
		return domain.ErrDuplicateRegistration
	}

	confirmed, err := countConfirmed(ctx, tx, p.EventID)
	if err != nil {
		return err
	}
	if confirmed >= capacity {
		return domain.ErrCapacityExceeded
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO participations (event_id, comment, status, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, p.EventID, p.Comment, p.Status, p.CreatedAt).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert participation: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO participation_users (participation_id, user_id) VALUES ($1, $2)`,
		p.ID, p.UserID)
	if err != nil {
		return fmt.Errorf("insert participation user: %w", err)
	}

	return tx.Commit()
}

func (r *participationRepository) GetByID(ctx context.Context, id string) (*domain.Participation, error) {
	query := `
		SELECT p.id, p.event_id, pu.user_id, p.comment, p.status, p.created_at
		FROM participations p
		JOIN participation_users pu ON pu.participation_id = p.id
		WHERE p.id = $1
	`
	p := &domain.Participation{}
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.EventID, &p.UserID, &p.Comment, &p.Status, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// UpdateStatus transitions a participation under the same event row lock as
// Register, so status changes and registrations are serialized per event.
// CONFIRMED and CANCELLED are terminal. When checkCapacity is true the
// CONFIRMED count is re-validated against the event capacity.
func (r *participationRepository) UpdateStatus(ctx context.Context, id, status string, checkCapacity bool) (*domain.Participation, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%s'", lockTimeout)); err != nil {
		return nil, fmt.Errorf("set lock timeout: %w", err)
	}

	var eventID string
	err = tx.QueryRowContext(ctx,
		`SELECT event_id FROM participations WHERE id = $1`, id).
		Scan(&eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var capacity int
	err = tx.QueryRowContext(ctx,
		`SELECT capacity FROM events WHERE id = $1 FOR UPDATE`, eventID).
		Scan(&capacity)
	if err != nil {
		return nil, mapLockErr(err)
	}

	// Re-read under the lock; any concurrent status change for this event
	// goes through the same lock.
	p := &domain.Participation{}
	err = tx.QueryRowContext(ctx, `
		SELECT p.id, p.event_id, pu.user_id, p.comment, p.status, p.created_at
		FROM participations p
		JOIN participation_users pu ON pu.participation_id = p.id
		WHERE p.id = $1
	`, id).Scan(&p.ID, &p.EventID, &p.UserID, &p.Comment, &p.Status, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if p.Status != domain.ParticipationStatusPending &&
		!(p.Status == domain.ParticipationStatusConfirmed && status == domain.ParticipationStatusCancelled) {
		return nil, domain.ErrInvalidTransition
	}

	if checkCapacity {
		confirmed, err := countConfirmed(ctx, tx, eventID)
		if err != nil {
			return nil, err
		}
		if confirmed >= capacity {
			return nil, domain.ErrCapacityExceeded
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE participations SET status = $2 WHERE id = $1`, id, status); err != nil {
		return nil, fmt.Errorf("update participation status: %w", err)
	}
	p.Status = status

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *participationRepository) ListByEventID(ctx context.Context, eventID, status string) ([]*domain.Participation, error) {
	query := `
		SELECT p.id, p.event_id, pu.user_id, p.comment, p.status, p.created_at
		FROM participations p
		JOIN participation_users pu ON pu.participation_id = p.id
		WHERE p.event_id = $1
		  AND ($2 = '' OR p.status = $2)
		ORDER BY p.created_at
	`
	return r.queryParticipations(ctx, query, eventID, status)
}

func (r *participationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Participation, error) {
	query := `
		SELECT p.id, p.event_id, pu.user_id, p.comment, p.status, p.created_at
		FROM participations p
		JOIN participation_users pu ON pu.participation_id = p.id
		WHERE pu.user_id = $1
		ORDER BY p.created_at DESC
	`
	return r.queryParticipations(ctx, query, userID)
}

func (r *participationRepository) queryParticipations(ctx context.Context, query string, args ...any) ([]*domain.Participation, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participations []*domain.Participation
	for rows.Next() {
		p := &domain.Participation{}
		if err := rows.Scan(&p.ID, &p.EventID, &p.UserID, &p.Comment, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		participations = append(participations, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if participations == nil {
		participations = []*domain.Participation{}
	}
	return participations, nil
}

func countConfirmed(ctx context.Context, tx *sql.Tx, eventID string) (int, error) {
	var confirmed int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM participations WHERE event_id = $1 AND status = $2`,
		eventID, domain.ParticipationStatusConfirmed).
		Scan(&confirmed)
	if err != nil {
		return 0, fmt.Errorf("count confirmed participations: %w", err)
	}
	return confirmed, nil
}

func mapLockErr(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqLockNotAvailable {
		return domain.ErrBusy
	}
	return err
}

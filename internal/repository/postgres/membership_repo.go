package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"agoraun/internal/domain"
)

type membershipRepository struct {
	DB *sql.DB
}

func NewMembershipRepository(db *sql.DB) domain.MembershipRepository {
	return &membershipRepository{
		DB: db,
	}
}

func (r *membershipRepository) Add(ctx context.Context, groupID, userID, role string, joinedAt time.Time) error {
	query := `
		INSERT INTO group_members (group_id, user_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.DB.ExecContext(ctx, query, groupID, userID, role, joinedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505":
				return domain.ErrDuplicateMembership
			case "23503":
				return domain.ErrNotFound
			}
		}
		return err
	}
	return nil
}

func (r *membershipRepository) Remove(ctx context.Context, groupID, userID string) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM group_members WHERE group_id = $1 AND user_id = $2`, groupID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrMembershipNotFound
	}
	return nil
}

func (r *membershipRepository) ListByGroupID(ctx context.Context, groupID string) ([]*domain.GroupMember, error) {
	query := `
		SELECT u.id, u.name, u.last_name, u.email, gm.role, gm.joined_at
		FROM group_members gm
		JOIN users u ON u.id = gm.user_id
		WHERE gm.group_id = $1
		ORDER BY gm.joined_at
	`
	rows, err := r.DB.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*domain.GroupMember
	for rows.Next() {
		m := &domain.GroupMember{}
		if err := rows.Scan(&m.UserID, &m.Name, &m.LastName, &m.Email, &m.Role, &m.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if members == nil {
		members = []*domain.GroupMember{}
	}
	return members, nil
}

func (r *membershipRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM group_members WHERE user_id = $1`, userID).
		Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

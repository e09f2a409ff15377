package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"agoraun/internal/domain"
)

type groupRepository struct {
	DB *sql.DB
}

func NewGroupRepository(db *sql.DB) domain.GroupRepository {
	return &groupRepository{
		DB: db,
	}
}

const groupColumns = `id, name, category, contact_email, description, status, COALESCE(rejection_reason, ''), COALESCE(created_by::text, ''), created_at`

func (r *groupRepository) Create(ctx context.Context, group *domain.Group) error {
	query := `
		INSERT INTO groups (name, category, contact_email, description, status, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::uuid, $7)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		group.Name, group.Category, group.ContactEmail, group.Description,
		group.Status, group.CreatedBy, group.CreatedAt).
		Scan(&group.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrDuplicateGroupName
		}
		return err
	}
	return nil
}

func (r *groupRepository) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups WHERE id = $1`
	return r.scanGroup(r.DB.QueryRowContext(ctx, query, id))
}

func (r *groupRepository) GetByName(ctx context.Context, name string) (*domain.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups WHERE name = $1`
	return r.scanGroup(r.DB.QueryRowContext(ctx, query, name))
}

func (r *groupRepository) scanGroup(row *sql.Row) (*domain.Group, error) {
	group := &domain.Group{}
	err := row.Scan(&group.ID, &group.Name, &group.Category, &group.ContactEmail,
		&group.Description, &group.Status, &group.RejectionReason, &group.CreatedBy, &group.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return group, nil
}

func (r *groupRepository) List(ctx context.Context, filter domain.GroupFilter) ([]*domain.Group, error) {
	query := `
		SELECT ` + groupColumns + `
		FROM groups
		WHERE ($1 = '' OR category = $1)
		  AND ($2 = '' OR status = $2)
		  AND ($3 = '' OR name ILIKE '%' || $3 || '%')
		ORDER BY created_at DESC
		LIMIT NULLIF($4, 0) OFFSET $5
	`
	rows, err := r.DB.QueryContext(ctx, query, filter.Category, filter.Status, filter.Search,
		filter.Pagination.PageSize, filter.Pagination.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*domain.Group
	for rows.Next() {
		group := &domain.Group{}
		if err := rows.Scan(&group.ID, &group.Name, &group.Category, &group.ContactEmail,
			&group.Description, &group.Status, &group.RejectionReason, &group.CreatedBy, &group.CreatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []*domain.Group{}
	}
	return groups, nil
}

func (r *groupRepository) Update(ctx context.Context, id string, update domain.GroupUpdate) (*domain.Group, error) {
	query := `
		UPDATE groups
		SET name          = COALESCE($2, name),
		    category      = COALESCE($3, category),
		    contact_email = COALESCE($4, contact_email),
		    description   = COALESCE($5, description)
		WHERE id = $1
		RETURNING ` + groupColumns + `
	`
	row := r.DB.QueryRowContext(ctx, query, id,
		update.Name, update.Category, update.ContactEmail, update.Description)
	group, err := r.scanGroup(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, domain.ErrDuplicateGroupName
		}
		return nil, err
	}
	return group, nil
}

func (r *groupRepository) SetStatus(ctx context.Context, id, status, rejectionReason string) (*domain.Group, error) {
	query := `
		UPDATE groups
		SET status = $2, rejection_reason = NULLIF($3, '')
		WHERE id = $1
		RETURNING ` + groupColumns + `
	`
	return r.scanGroup(r.DB.QueryRowContext(ctx, query, id, status, rejectionReason))
}

func (r *groupRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
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

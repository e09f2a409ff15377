package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"agoraun/internal/domain"
)

type commentRepository struct {
	DB *sql.DB
}

func NewCommentRepository(db *sql.DB) domain.CommentRepository {
	return &commentRepository{
		DB: db,
	}
}

// Create inserts the comment and its author join row in one transaction.
func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO comments (message, status, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, comment.Message, comment.Status, comment.CreatedAt).Scan(&comment.ID)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO user_comments (user_id, comment_id) VALUES ($1, $2)`,
		comment.UserID, comment.ID)
	if err != nil {
		return fmt.Errorf("insert user comment: %w", err)
	}

	return tx.Commit()
}

func (r *commentRepository) List(ctx context.Context, status string) ([]*domain.Comment, error) {
	query := `
		SELECT c.id, uc.user_id, c.message, c.status, c.created_at
		FROM comments c
		JOIN user_comments uc ON uc.comment_id = c.id
		WHERE ($1 = '' OR c.status = $1)
		ORDER BY c.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		c := &domain.Comment{}
		if err := rows.Scan(&c.ID, &c.UserID, &c.Message, &c.Status, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []*domain.Comment{}
	}
	return comments, nil
}

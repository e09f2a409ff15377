package postgres

import (
	"context"
	"testing"
	"time"

	"agoraun/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestMembershipRepository_Add(t *testing.T) {
	ctx := context.Background()
	joinedAt := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO group_members \(group_id, user_id, role, joined_at\)`).
					WithArgs("group-1", "user-1", domain.MembershipRoleAdmin, joinedAt).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "duplicate membership",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO group_members`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: domain.ErrDuplicateMembership,
		},
		{
			name: "unknown group or user",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO group_members`).
					WillReturnError(&pq.Error{Code: "23503"})
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewMembershipRepository(db)
			err = repo.Add(ctx, "group-1", "user-1", domain.MembershipRoleAdmin, joinedAt)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMembershipRepository_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM group_members`).
			WithArgs("group-1", "user-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewMembershipRepository(db)
		require.NoError(t, repo.Remove(ctx, "group-1", "user-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("membership not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM group_members`).
			WithArgs("group-1", "user-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewMembershipRepository(db)
		require.ErrorIs(t, repo.Remove(ctx, "group-1", "user-1"), domain.ErrMembershipNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMembershipRepository_CountByUserID(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM group_members`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	repo := NewMembershipRepository(db)
	count, err := repo.CountByUserID(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, 3, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"agoraun/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "name", "last_name", "email", "password_hash", "salt", "status", "created_at"}

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users \(name, last_name, email, password_hash, salt, status, created_at\)`).
					WithArgs("Ana", "Rojas", "arojas@unal.edu.co", "hash", "salt", domain.UserStatusActive, createdAt).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("user-1"))
			},
			wantID: "user-1",
		},
		{
			name: "duplicate email",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: domain.ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewUserRepository(db)
			user := &domain.User{
				Name:         "Ana",
				LastName:     "Rojas",
				Email:        "arojas@unal.edu.co",
				PasswordHash: "hash",
				Salt:         "salt",
				Status:       domain.UserStatusActive,
				CreatedAt:    createdAt,
			}
			err = repo.Create(ctx, user)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.wantID, user.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, name, last_name, email, password_hash, salt, status, created_at`).
			WithArgs("arojas@unal.edu.co").
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow("user-1", "Ana", "Rojas", "arojas@unal.edu.co", "hash", "salt", domain.UserStatusActive, createdAt))

		repo := NewUserRepository(db)
		user, err := repo.GetByEmail(ctx, "arojas@unal.edu.co")
		require.NoError(t, err)
		require.Equal(t, "user-1", user.ID)
		require.Equal(t, domain.UserStatusActive, user.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, name, last_name, email, password_hash, salt, status, created_at`).
			WithArgs("missing@unal.edu.co").
			WillReturnError(sql.ErrNoRows)

		repo := NewUserRepository(db)
		_, err = repo.GetByEmail(ctx, "missing@unal.edu.co")
		require.ErrorIs(t, err, domain.ErrUserNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_List(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, last_name, email, password_hash, salt, status, created_at`).
		WithArgs(domain.UserStatusActive, "ro", 20, 0).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("user-1", "Ana", "Rojas", "arojas@unal.edu.co", "hash", "salt", domain.UserStatusActive, createdAt))

	repo := NewUserRepository(db)
	users, err := repo.List(ctx, domain.UserFilter{
		Status:     domain.UserStatusActive,
		Search:     "ro",
		Pagination: domain.PaginationParams{Page: 1, PageSize: 20},
	})
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "Rojas", users[0].LastName)
	require.NoError(t, mock.ExpectationsWereMet())
}

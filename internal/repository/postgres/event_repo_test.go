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

var eventRowColumns = []string{"id", "group_id", "name", "description", "start_time", "end_time", "location", "capacity", "status", "created_at"}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	createdAt := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events \(group_id, name, description, start_time, end_time, location, capacity, status, created_at\)`).
					WithArgs("group-1", "Torneo", "", start, end, "Auditorio", 50, domain.EventStatusScheduled, createdAt).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("event-1"))
			},
			wantID: "event-1",
		},
		{
			name: "unknown group",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
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
			repo := NewEventRepository(db)
			event := &domain.Event{
				GroupID:   "group-1",
				Name:      "Torneo",
				StartTime: start,
				EndTime:   end,
				Location:  "Auditorio",
				Capacity:  50,
				Status:    domain.EventStatusScheduled,
				CreatedAt: createdAt,
			}
			err = repo.Create(ctx, event)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.wantID, event.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_List(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	createdAt := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	from := start.Add(-24 * time.Hour)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, group_id, name, description, start_time, end_time, location, capacity, status, created_at`).
		WithArgs("group-1", domain.EventStatusScheduled, from, 20, 0).
		WillReturnRows(sqlmock.NewRows(eventRowColumns).
			AddRow("event-1", "group-1", "Torneo", "", start, end, "Auditorio", 50, domain.EventStatusScheduled, createdAt))

	repo := NewEventRepository(db)
	events, err := repo.List(ctx, domain.EventFilter{
		GroupID:    "group-1",
		Status:     domain.EventStatusScheduled,
		From:       &from,
		Pagination: domain.PaginationParams{Page: 1, PageSize: 20},
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "Torneo", events[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_SetStatus(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	createdAt := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE events`).
			WithArgs("event-1", domain.EventStatusCancelled).
			WillReturnRows(sqlmock.NewRows(eventRowColumns).
				AddRow("event-1", "group-1", "Torneo", "", start, end, "Auditorio", 50, domain.EventStatusCancelled, createdAt))

		repo := NewEventRepository(db)
		event, err := repo.SetStatus(ctx, "event-1", domain.EventStatusCancelled)
		require.NoError(t, err)
		require.Equal(t, domain.EventStatusCancelled, event.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE events`).
			WithArgs("event-missing", domain.EventStatusCancelled).
			WillReturnError(sql.ErrNoRows)

		repo := NewEventRepository(db)
		_, err = repo.SetStatus(ctx, "event-missing", domain.EventStatusCancelled)
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

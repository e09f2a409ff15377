package services

import (
	"context"
	"testing"

	"agoraun/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestNotificationService_Send(t *testing.T) {
	users := map[string]*domain.User{
		"u1": {ID: "u1", Email: "u1@unal.edu.co"},
		"u2": {ID: "u2", Email: "u2@unal.edu.co"},
	}

	tests := []struct {
		name      string
		userIDs   []string
		notifType string
		message   string
		wantErr   error
	}{
		{
			name:      "success",
			userIDs:   []string{"u1", "u2"},
			notifType: "EVENT_CANCELLED",
			message:   "El evento ha sido cancelado",
		},
		{
			name:      "no recipients",
			userIDs:   nil,
			notifType: "EVENT_CANCELLED",
			message:   "hola",
			wantErr:   domain.ErrInvalidInput,
		},
		{
			name:      "blank message",
			userIDs:   []string{"u1"},
			notifType: "EVENT_CANCELLED",
			message:   "   ",
			wantErr:   domain.ErrInvalidInput,
		},
		{
			name:      "blank type",
			userIDs:   []string{"u1"},
			notifType: "   ",
			message:   "hola",
			wantErr:   domain.ErrInvalidInput,
		},
		{
			name:      "unknown recipient",
			userIDs:   []string{"u1", "missing"},
			notifType: "EVENT_CANCELLED",
			message:   "hola",
			wantErr:   domain.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockNotificationRepository{}
			svc := NewNotificationService(repo, &mockUserRepository{users: users})

			n, err := svc.Send(context.Background(), tt.userIDs, tt.notifType, tt.message)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Empty(t, repo.created)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.notifType, n.Type)
			require.Len(t, repo.created, 1)
			require.Equal(t, tt.userIDs, repo.recipients[0])
		})
	}
}

func TestNotificationService_ListMine(t *testing.T) {
	t.Run("empty inbox is a slice", func(t *testing.T) {
		svc := NewNotificationService(&mockNotificationRepository{}, &mockUserRepository{})

		notifications, err := svc.ListMine(context.Background(), "u1")
		require.NoError(t, err)
		require.NotNil(t, notifications)
		require.Empty(t, notifications)
	})

	t.Run("returns read flags", func(t *testing.T) {
		repo := &mockNotificationRepository{listByUser: map[string][]*domain.UserNotification{
			"u1": {
				{Notification: &domain.Notification{ID: "n1", Type: "EVENT_CANCELLED"}, Read: true},
				{Notification: &domain.Notification{ID: "n2", Type: "EVENT_CANCELLED"}, Read: false},
			},
		}}
		svc := NewNotificationService(repo, &mockUserRepository{})

		notifications, err := svc.ListMine(context.Background(), "u1")
		require.NoError(t, err)
		require.Len(t, notifications, 2)
		require.True(t, notifications[0].Read)
		require.False(t, notifications[1].Read)
	})
}

func TestNotificationService_MarkRead(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc := NewNotificationService(&mockNotificationRepository{markReadErr: domain.ErrNotFound}, &mockUserRepository{})

		require.ErrorIs(t, svc.MarkRead(context.Background(), "u1", "missing"), domain.ErrNotFound)
	})

	t.Run("success", func(t *testing.T) {
		svc := NewNotificationService(&mockNotificationRepository{}, &mockUserRepository{})

		require.NoError(t, svc.MarkRead(context.Background(), "u1", "n1"))
	})
}

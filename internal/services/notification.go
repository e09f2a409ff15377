package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"agoraun/internal/domain"
)

type notificationService struct {
	notificationRepo domain.NotificationRepository
	userRepo         domain.UserRepository
}

func NewNotificationService(notificationRepo domain.NotificationRepository, userRepo domain.UserRepository) domain.NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

func (s *notificationService) Send(ctx context.Context, userIDs []string, notifType, message string) (*domain.Notification, error) {
	if len(userIDs) == 0 || strings.TrimSpace(notifType) == "" || strings.TrimSpace(message) == "" {
		return nil, domain.ErrInvalidInput
	}
	for _, userID := range userIDs {
		if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return nil, domain.ErrUserNotFound
			}
			return nil, fmt.Errorf("get user: %w", err)
		}
	}

	n := &domain.Notification{
		Type:    notifType,
		Message: message,
		SentAt:  time.Now(),
	}
	if err := s.notificationRepo.Create(ctx, n, userIDs); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	return n, nil
}

func (s *notificationService) ListMine(ctx context.Context, userID string) ([]*domain.UserNotification, error) {
	notifications, err := s.notificationRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	if notifications == nil {
		notifications = []*domain.UserNotification{}
	}
	return notifications, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	if err := s.notificationRepo.MarkRead(ctx, userID, notificationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

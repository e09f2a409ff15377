package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"agoraun/internal/domain"
)

type eventService struct {
	eventRepo           domain.EventRepository
	groupRepo           domain.GroupRepository
	participationRepo   domain.ParticipationRepository
	userRepo            domain.UserRepository
	notificationService domain.NotificationService
	emailService        domain.EmailService
	logger              *slog.Logger
}

func NewEventService(
	eventRepo domain.EventRepository,
	groupRepo domain.GroupRepository,
	participationRepo domain.ParticipationRepository,
	userRepo domain.UserRepository,
	notificationService domain.NotificationService,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.EventService {
	return &eventService{
		eventRepo:           eventRepo,
		groupRepo:           groupRepo,
		participationRepo:   participationRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
		emailService:        emailService,
		logger:              logger,
	}
}

func (s *eventService) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	if event.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !event.EndTime.After(event.StartTime) {
		return nil, domain.ErrInvalidInput
	}
	if event.Capacity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.groupRepo.GetByID(ctx, event.GroupID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get group: %w", err)
	}

	event.Status = domain.EventStatusScheduled
	event.CreatedAt = time.Now()
	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) Update(ctx context.Context, id string, update domain.EventUpdate) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	// Validate the effective values after applying the patch.
	newStart := event.StartTime
	if update.StartTime != nil {
		newStart = *update.StartTime
	}
	newEnd := event.EndTime
	if update.EndTime != nil {
		newEnd = *update.EndTime
	}
	if !newEnd.After(newStart) {
		return nil, domain.ErrInvalidInput
	}
	if update.Capacity != nil && *update.Capacity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if update.Status != nil {
		switch *update.Status {
		case domain.EventStatusScheduled, domain.EventStatusInProgress, domain.EventStatusFinished, domain.EventStatusCancelled:
		default:
			return nil, domain.ErrInvalidInput
		}
	}

	updated, err := s.eventRepo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

// Cancel sets the event CANCELLED and fans out a notification to every user
// with a non-cancelled participation. Notification failures are logged, not
// surfaced: the cancellation itself has already been committed.
func (s *eventService) Cancel(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.eventRepo.SetStatus(ctx, id, domain.EventStatusCancelled)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("cancel event: %w", err)
	}

	participations, err := s.participationRepo.ListByEventID(ctx, id, "")
	if err != nil {
		s.logger.ErrorContext(ctx, "list participations for cancelled event", "event_id", id, "err", err)
		return event, nil
	}

	var userIDs []string
	for _, p := range participations {
		if p.Status == domain.ParticipationStatusCancelled {
			continue
		}
		userIDs = append(userIDs, p.UserID)
	}
	if len(userIDs) == 0 {
		return event, nil
	}

	message := fmt.Sprintf("El evento %q ha sido cancelado", event.Name)
	if _, err := s.notificationService.Send(ctx, userIDs, "EVENT_CANCELLED", message); err != nil {
		s.logger.ErrorContext(ctx, "notify cancelled event", "event_id", id, "err", err)
	}

	if s.emailService != nil {
		groupName := ""
		if group, err := s.groupRepo.GetByID(ctx, event.GroupID); err == nil {
			groupName = group.Name
		}
		for _, userID := range userIDs {
			user, err := s.userRepo.GetByID(ctx, userID)
			if err != nil {
				continue
			}
			data := &domain.EventCancelledEmailData{
				Email:     user.Email,
				EventName: event.Name,
				GroupName: groupName,
			}
			if err := s.emailService.SendEventCancelled(ctx, data); err != nil {
				s.logger.WarnContext(ctx, "event cancelled email failed", "email", user.Email, "err", err)
			}
		}
	}

	return event, nil
}

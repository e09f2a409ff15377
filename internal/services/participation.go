package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"agoraun/internal/domain"
)

// maxParticipationComment bounds the optional comment attached at registration.
const maxParticipationComment = 100

type participationService struct {
	participationRepo domain.ParticipationRepository
	eventRepo         domain.EventRepository
	userRepo          domain.UserRepository
}

// NewParticipationService creates the registration engine service. Capacity
// and uniqueness enforcement live in the repository transaction; this layer
// validates inputs and drives the state machine.
func NewParticipationService(
	participationRepo domain.ParticipationRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
) domain.ParticipationService {
	return &participationService{
		participationRepo: participationRepo,
		eventRepo:         eventRepo,
		userRepo:          userRepo,
	}
}

// Register admits the user into the event under the capacity and uniqueness
// constraints. The repository runs the check-then-act sequence inside one
// transaction holding the event row lock, so two concurrent registrations for
// the last seat cannot both succeed.
func (s *participationService) Register(ctx context.Context, eventID, userID, comment string) (*domain.Participation, error) {
	comment = strings.TrimSpace(comment)
	if len(comment) > maxParticipationComment {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user.Status != domain.UserStatusActive {
		return nil, domain.ErrForbidden
	}

	p := domain.NewParticipation(eventID, userID, comment, time.Now())
	if err := s.participationRepo.Register(ctx, p); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound),
			errors.Is(err, domain.ErrDuplicateRegistration),
			errors.Is(err, domain.ErrCapacityExceeded),
			errors.Is(err, domain.ErrInvalidInput),
			errors.Is(err, domain.ErrBusy):
			return nil, err
		}
		return nil, fmt.Errorf("register participation: %w", err)
	}
	return p, nil
}

// Confirm transitions PENDING -> CONFIRMED. Capacity is re-validated under
// the event row lock so that confirming pending registrations can never push
// the CONFIRMED count past the event capacity.
func (s *participationService) Confirm(ctx context.Context, participationID string) (*domain.Participation, error) {
	return s.updateStatus(ctx, participationID, domain.ParticipationStatusConfirmed, true)
}

// Cancel transitions PENDING or CONFIRMED -> CANCELLED.
func (s *participationService) Cancel(ctx context.Context, participationID string) (*domain.Participation, error) {
	return s.updateStatus(ctx, participationID, domain.ParticipationStatusCancelled, false)
}

func (s *participationService) updateStatus(ctx context.Context, participationID, status string, checkCapacity bool) (*domain.Participation, error) {
	p, err := s.participationRepo.UpdateStatus(ctx, participationID, status, checkCapacity)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound),
			errors.Is(err, domain.ErrInvalidTransition),
			errors.Is(err, domain.ErrCapacityExceeded),
			errors.Is(err, domain.ErrBusy):
			return nil, err
		}
		return nil, fmt.Errorf("update participation status: %w", err)
	}
	return p, nil
}

func (s *participationService) ListByEvent(ctx context.Context, eventID, status string) ([]*domain.Participation, error) {
	switch status {
	case "", domain.ParticipationStatusPending, domain.ParticipationStatusConfirmed, domain.ParticipationStatusCancelled:
	default:
		return nil, domain.ErrInvalidInput
	}
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	participations, err := s.participationRepo.ListByEventID(ctx, eventID, status)
	if err != nil {
		return nil, fmt.Errorf("list participations: %w", err)
	}
	if participations == nil {
		participations = []*domain.Participation{}
	}
	return participations, nil
}

func (s *participationService) ListMyParticipations(ctx context.Context, userID string) ([]*domain.ParticipationWithEvent, error) {
	participations, err := s.participationRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list participations: %w", err)
	}

	// Fetch events one by one (N+1). This keeps the implementation simple; we can optimize later if needed.
	eventsByID := make(map[string]*domain.Event)
	result := []*domain.ParticipationWithEvent{}
	for _, p := range participations {
		event, ok := eventsByID[p.EventID]
		if !ok {
			event, err = s.eventRepo.GetByID(ctx, p.EventID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					continue
				}
				return nil, fmt.Errorf("get event for participation: %w", err)
			}
			eventsByID[p.EventID] = event
		}
		result = append(result, &domain.ParticipationWithEvent{
			Participation: p,
			Event:         event,
		})
	}
	return result, nil
}

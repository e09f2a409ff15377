package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agoraun/internal/domain"
)

type membershipService struct {
	membershipRepo   domain.MembershipRepository
	groupRepo        domain.GroupRepository
	userRepo         domain.UserRepository
	maxGroupsPerUser int
}

// NewMembershipService creates a MembershipService. maxGroupsPerUser caps how
// many groups a user may belong to; zero disables the cap.
func NewMembershipService(
	membershipRepo domain.MembershipRepository,
	groupRepo domain.GroupRepository,
	userRepo domain.UserRepository,
	maxGroupsPerUser int,
) domain.MembershipService {
	return &membershipService{
		membershipRepo:   membershipRepo,
		groupRepo:        groupRepo,
		userRepo:         userRepo,
		maxGroupsPerUser: maxGroupsPerUser,
	}
}

func (s *membershipService) AddMember(ctx context.Context, groupID, userID, role string) (*domain.Membership, error) {
	if role == "" {
		role = domain.MembershipRoleMember
	}
	if role != domain.MembershipRoleAdmin && role != domain.MembershipRoleMember {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if s.maxGroupsPerUser > 0 {
		count, err := s.membershipRepo.CountByUserID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("count memberships: %w", err)
		}
		if count >= s.maxGroupsPerUser {
			return nil, domain.ErrGroupLimitReached
		}
	}

	now := time.Now()
	if err := s.membershipRepo.Add(ctx, groupID, userID, role, now); err != nil {
		if errors.Is(err, domain.ErrDuplicateMembership) {
			return nil, domain.ErrDuplicateMembership
		}
		return nil, fmt.Errorf("add member: %w", err)
	}
	return &domain.Membership{
		GroupID:  groupID,
		UserID:   userID,
		Role:     role,
		JoinedAt: now,
	}, nil
}

func (s *membershipService) RemoveMember(ctx context.Context, groupID, userID string) error {
	if err := s.membershipRepo.Remove(ctx, groupID, userID); err != nil {
		if errors.Is(err, domain.ErrMembershipNotFound) {
			return domain.ErrMembershipNotFound
		}
		return fmt.Errorf("remove member: %w", err)
	}
	return nil
}

func (s *membershipService) ListMembers(ctx context.Context, groupID string) ([]*domain.GroupMember, error) {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	members, err := s.membershipRepo.ListByGroupID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	if members == nil {
		members = []*domain.GroupMember{}
	}
	return members, nil
}

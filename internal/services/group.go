package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"agoraun/internal/domain"
)

type groupService struct {
	groupRepo      domain.GroupRepository
	membershipRepo domain.MembershipRepository
	cache          domain.GroupCache
	emailDomain    string
}

// NewGroupService creates a GroupService. Group reads go through the given
// cache, which is invalidated on every write.
func NewGroupService(
	groupRepo domain.GroupRepository,
	membershipRepo domain.MembershipRepository,
	cache domain.GroupCache,
	emailDomain string,
) domain.GroupService {
	return &groupService{
		groupRepo:      groupRepo,
		membershipRepo: membershipRepo,
		cache:          cache,
		emailDomain:    emailDomain,
	}
}

// Create validates the group, stores it, and records the creator as the
// group's ADMIN member.
func (s *groupService) Create(ctx context.Context, group *domain.Group, creatorID string) (*domain.Group, error) {
	group.Name = strings.TrimSpace(group.Name)
	group.ContactEmail = strings.TrimSpace(strings.ToLower(group.ContactEmail))

	if group.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !emailRegexp.MatchString(group.ContactEmail) || !strings.HasSuffix(group.ContactEmail, s.emailDomain) {
		return nil, domain.ErrInvalidInput
	}
	if _, err := s.groupRepo.GetByName(ctx, group.Name); err == nil {
		return nil, domain.ErrDuplicateGroupName
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check group name: %w", err)
	}

	now := time.Now()
	group.Status = domain.GroupStatusPending
	group.CreatedBy = creatorID
	group.CreatedAt = now
	if err := s.groupRepo.Create(ctx, group); err != nil {
		if errors.Is(err, domain.ErrDuplicateGroupName) {
			return nil, domain.ErrDuplicateGroupName
		}
		return nil, fmt.Errorf("create group: %w", err)
	}

	if err := s.membershipRepo.Add(ctx, group.ID, creatorID, domain.MembershipRoleAdmin, now); err != nil {
		return nil, fmt.Errorf("add creator as admin: %w", err)
	}

	return group, nil
}

func (s *groupService) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	if group, ok := s.cache.Get(ctx, id); ok {
		return group, nil
	}
	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	s.cache.Set(ctx, group)
	return group, nil
}

func (s *groupService) List(ctx context.Context, filter domain.GroupFilter) ([]*domain.Group, error) {
	groups, err := s.groupRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	if groups == nil {
		groups = []*domain.Group{}
	}
	return groups, nil
}

func (s *groupService) Update(ctx context.Context, id string, update domain.GroupUpdate) (*domain.Group, error) {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if update.ContactEmail != nil {
		email := strings.TrimSpace(strings.ToLower(*update.ContactEmail))
		if !emailRegexp.MatchString(email) || !strings.HasSuffix(email, s.emailDomain) {
			return nil, domain.ErrInvalidInput
		}
		update.ContactEmail = &email
	}
	group, err := s.groupRepo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrDuplicateGroupName) {
			return nil, err
		}
		return nil, fmt.Errorf("update group: %w", err)
	}
	s.cache.Invalidate(ctx, id)
	return group, nil
}

func (s *groupService) Approve(ctx context.Context, id string) (*domain.Group, error) {
	return s.setStatus(ctx, id, domain.GroupStatusApproved, "")
}

func (s *groupService) Reject(ctx context.Context, id, reason string) (*domain.Group, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.setStatus(ctx, id, domain.GroupStatusRejected, reason)
}

func (s *groupService) setStatus(ctx context.Context, id, status, reason string) (*domain.Group, error) {
	group, err := s.groupRepo.SetStatus(ctx, id, status, reason)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("set group status: %w", err)
	}
	s.cache.Invalidate(ctx, id)
	return group, nil
}

func (s *groupService) Delete(ctx context.Context, id string) error {
	if err := s.groupRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete group: %w", err)
	}
	s.cache.Invalidate(ctx, id)
	return nil
}

package services

import (
	"context"
	"testing"

	"agoraun/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestMembershipService_AddMember(t *testing.T) {
	group := &domain.Group{ID: "g1", Name: "Club de Ajedrez", Status: domain.GroupStatusApproved}
	user := &domain.User{ID: "u1", Email: "u1@unal.edu.co", Status: domain.UserStatusActive}

	tests := []struct {
		name        string
		groups      map[string]*domain.Group
		users       map[string]*domain.User
		memberships *mockMembershipRepository
		maxGroups   int
		role        string
		wantRole    string
		wantErr     error
	}{
		{
			name:        "empty role defaults to member",
			groups:      map[string]*domain.Group{"g1": group},
			users:       map[string]*domain.User{"u1": user},
			memberships: &mockMembershipRepository{},
			maxGroups:   5,
			role:        "",
			wantRole:    domain.MembershipRoleMember,
		},
		{
			name:        "explicit admin role",
			groups:      map[string]*domain.Group{"g1": group},
			users:       map[string]*domain.User{"u1": user},
			memberships: &mockMembershipRepository{},
			maxGroups:   5,
			role:        domain.MembershipRoleAdmin,
			wantRole:    domain.MembershipRoleAdmin,
		},
		{
			name:        "unknown role",
			groups:      map[string]*domain.Group{"g1": group},
			users:       map[string]*domain.User{"u1": user},
			memberships: &mockMembershipRepository{},
			maxGroups:   5,
			role:        "OWNER",
			wantErr:     domain.ErrInvalidInput,
		},
		{
			name:        "unknown group",
			groups:      map[string]*domain.Group{},
			users:       map[string]*domain.User{"u1": user},
			memberships: &mockMembershipRepository{},
			maxGroups:   5,
			wantErr:     domain.ErrNotFound,
		},
		{
			name:        "unknown user",
			groups:      map[string]*domain.Group{"g1": group},
			users:       map[string]*domain.User{},
			memberships: &mockMembershipRepository{},
			maxGroups:   5,
			wantErr:     domain.ErrUserNotFound,
		},
		{
			name:        "group limit reached",
			groups:      map[string]*domain.Group{"g1": group},
			users:       map[string]*domain.User{"u1": user},
			memberships: &mockMembershipRepository{count: 5},
			maxGroups:   5,
			wantErr:     domain.ErrGroupLimitReached,
		},
		{
			name:        "zero max disables the limit",
			groups:      map[string]*domain.Group{"g1": group},
			users:       map[string]*domain.User{"u1": user},
			memberships: &mockMembershipRepository{count: 50},
			maxGroups:   0,
			wantRole:    domain.MembershipRoleMember,
		},
		{
			name:        "already a member",
			groups:      map[string]*domain.Group{"g1": group},
			users:       map[string]*domain.User{"u1": user},
			memberships: &mockMembershipRepository{addErr: domain.ErrDuplicateMembership},
			maxGroups:   5,
			wantErr:     domain.ErrDuplicateMembership,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewMembershipService(tt.memberships, &mockGroupRepository{groups: tt.groups}, &mockUserRepository{users: tt.users}, tt.maxGroups)

			membership, err := svc.AddMember(context.Background(), "g1", "u1", tt.role)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "g1", membership.GroupID)
			require.Equal(t, "u1", membership.UserID)
			require.Equal(t, tt.wantRole, membership.Role)
			require.Len(t, tt.memberships.added, 1)
			require.Equal(t, tt.wantRole, tt.memberships.added[0].role)
		})
	}
}

func TestMembershipService_RemoveMember(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := NewMembershipService(&mockMembershipRepository{}, &mockGroupRepository{}, &mockUserRepository{}, 5)
		require.NoError(t, svc.RemoveMember(context.Background(), "g1", "u1"))
	})

	t.Run("membership not found", func(t *testing.T) {
		svc := NewMembershipService(&mockMembershipRepository{err: domain.ErrMembershipNotFound}, &mockGroupRepository{}, &mockUserRepository{}, 5)
		require.ErrorIs(t, svc.RemoveMember(context.Background(), "g1", "u1"), domain.ErrMembershipNotFound)
	})
}

func TestMembershipService_ListMembers(t *testing.T) {
	group := &domain.Group{ID: "g1", Name: "Club de Ajedrez"}

	t.Run("unknown group", func(t *testing.T) {
		svc := NewMembershipService(&mockMembershipRepository{}, &mockGroupRepository{groups: map[string]*domain.Group{}}, &mockUserRepository{}, 5)

		_, err := svc.ListMembers(context.Background(), "missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("empty result is a slice", func(t *testing.T) {
		svc := NewMembershipService(&mockMembershipRepository{}, &mockGroupRepository{groups: map[string]*domain.Group{"g1": group}}, &mockUserRepository{}, 5)

		members, err := svc.ListMembers(context.Background(), "g1")
		require.NoError(t, err)
		require.NotNil(t, members)
		require.Empty(t, members)
	})

	t.Run("returns members with roles", func(t *testing.T) {
		memberships := &mockMembershipRepository{members: map[string][]*domain.GroupMember{
			"g1": {
				{UserID: "u1", Name: "Ana", Role: domain.MembershipRoleAdmin},
				{UserID: "u2", Name: "Luis", Role: domain.MembershipRoleMember},
			},
		}}
		svc := NewMembershipService(memberships, &mockGroupRepository{groups: map[string]*domain.Group{"g1": group}}, &mockUserRepository{}, 5)

		members, err := svc.ListMembers(context.Background(), "g1")
		require.NoError(t, err)
		require.Len(t, members, 2)
		require.Equal(t, domain.MembershipRoleAdmin, members[0].Role)
	})
}

package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"taskhive/projecthub/internal/model"
)

func TestRemoveMembership(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("non-owner member may leave", func(t *testing.T) {
		f := newFixture()
		owner, member := uuid.New(), uuid.New()
		project := f.seedProject(owner)
		m := f.seedMember(project.ID, member, model.RoleMember)

		refreshed, err := f.memberships.Remove(ctx, project.ID, m.ID, member)
		require.NoError(t, err)
		require.Nil(t, f.db.membershipByProjectAndUser(project.ID, member))
		require.Len(t, refreshed.Members, 1)
	})

	t.Run("owner cannot remove own membership", func(t *testing.T) {
		f := newFixture()
		owner := uuid.New()
		project := f.seedProject(owner)
		ownerMembership := f.db.membershipByProjectAndUser(project.ID, owner)

		_, err := f.memberships.Remove(ctx, project.ID, ownerMembership.ID, owner)
		require.ErrorIs(t, err, ErrOwnerCannotLeave)
		require.NotNil(t, f.db.membershipByProjectAndUser(project.ID, owner))
	})

	t.Run("removing a member disconnects their task assignments", func(t *testing.T) {
		f := newFixture()
		owner, member := uuid.New(), uuid.New()
		project := f.seedProject(owner)
		m := f.seedMember(project.ID, member, model.RoleMember)

		task, err := f.tasks.Create(ctx, project.ID, owner, "Ship it", "", model.PriorityHigh)
		require.NoError(t, err)
		require.NoError(t, f.tasks.Assign(ctx, project.ID, task.ID, member, owner))

		_, err = f.memberships.Remove(ctx, project.ID, m.ID, owner)
		require.NoError(t, err)

		got, err := f.tasks.Get(ctx, project.ID, task.ID, owner)
		require.NoError(t, err)
		require.Empty(t, got.Assignees)
	})

	t.Run("kicking someone else requires a manager role", func(t *testing.T) {
		f := newFixture()
		owner, memberA, memberB := uuid.New(), uuid.New(), uuid.New()
		project := f.seedProject(owner)
		f.seedMember(project.ID, memberA, model.RoleMember)
		mb := f.seedMember(project.ID, memberB, model.RoleMember)

		_, err := f.memberships.Remove(ctx, project.ID, mb.ID, memberA)
		require.ErrorIs(t, err, ErrForbidden)

		_, err = f.memberships.Remove(ctx, project.ID, mb.ID, owner)
		require.NoError(t, err)
	})

	t.Run("nobody can remove the owner membership", func(t *testing.T) {
		f := newFixture()
		owner, admin := uuid.New(), uuid.New()
		project := f.seedProject(owner)
		f.seedMember(project.ID, admin, model.RoleAdmin)
		ownerMembership := f.db.membershipByProjectAndUser(project.ID, owner)

		_, err := f.memberships.Remove(ctx, project.ID, ownerMembership.ID, admin)
		require.ErrorIs(t, err, ErrOwnerImmutable)
	})

	t.Run("membership from another project is not found", func(t *testing.T) {
		f := newFixture()
		owner := uuid.New()
		projectA := f.seedProject(owner)
		projectB := f.seedProject(owner)
		member := uuid.New()
		m := f.seedMember(projectB.ID, member, model.RoleMember)

		_, err := f.memberships.Remove(ctx, projectA.ID, m.ID, owner)
		require.ErrorIs(t, err, ErrMembershipNotFound)
	})
}

func TestChangeRole(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("owner promotes a member to admin", func(t *testing.T) {
		f := newFixture()
		owner, member := uuid.New(), uuid.New()
		project := f.seedProject(owner)
		m := f.seedMember(project.ID, member, model.RoleMember)

		updated, err := f.memberships.ChangeRole(ctx, project.ID, m.ID, model.RoleAdmin, owner)
		require.NoError(t, err)
		require.Equal(t, model.RoleAdmin, updated.Role)
		require.Equal(t, model.RoleAdmin, f.db.memberships[m.ID].Role)
	})

	t.Run("non-member is forbidden and state is unchanged", func(t *testing.T) {
		f := newFixture()
		owner, member := uuid.New(), uuid.New()
		project := f.seedProject(owner)
		m := f.seedMember(project.ID, member, model.RoleMember)

		_, err := f.memberships.ChangeRole(ctx, project.ID, m.ID, model.RoleAdmin, uuid.New())
		require.ErrorIs(t, err, ErrForbidden)
		require.Equal(t, model.RoleMember, f.db.memberships[m.ID].Role)
	})

	t.Run("owner role cannot be granted", func(t *testing.T) {
		f := newFixture()
		owner, member := uuid.New(), uuid.New()
		project := f.seedProject(owner)
		m := f.seedMember(project.ID, member, model.RoleMember)

		_, err := f.memberships.ChangeRole(ctx, project.ID, m.ID, model.RoleOwner, owner)
		require.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("owner membership cannot be reassigned", func(t *testing.T) {
		f := newFixture()
		owner, admin := uuid.New(), uuid.New()
		project := f.seedProject(owner)
		f.seedMember(project.ID, admin, model.RoleAdmin)
		ownerMembership := f.db.membershipByProjectAndUser(project.ID, owner)

		_, err := f.memberships.ChangeRole(ctx, project.ID, ownerMembership.ID, model.RoleMember, admin)
		require.ErrorIs(t, err, ErrOwnerImmutable)
	})

	t.Run("unknown membership", func(t *testing.T) {
		f := newFixture()
		owner := uuid.New()
		project := f.seedProject(owner)

		_, err := f.memberships.ChangeRole(ctx, project.ID, 404, model.RoleAdmin, owner)
		require.ErrorIs(t, err, ErrMembershipNotFound)
	})
}

func TestListMembers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newFixture()
	owner, member := uuid.New(), uuid.New()
	project := f.seedProject(owner)
	f.seedMember(project.ID, member, model.RoleMember)

	members, err := f.memberships.List(ctx, project.ID, member)
	require.NoError(t, err)
	require.Len(t, members, 2)

	_, err = f.memberships.List(ctx, project.ID, uuid.New())
	require.ErrorIs(t, err, ErrNotMember)
}

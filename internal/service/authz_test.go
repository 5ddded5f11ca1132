package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"taskhive/projecthub/internal/model"
)

func TestAuthorizer(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := newMemDB()
	memberships := &fakeMembershipRepo{db: db}
	authz := NewAuthorizer(memberships)

	owner, admin, member, outsider := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	const projectID = 1
	require.NoError(t, memberships.Create(ctx, &model.ProjectMembership{ProjectID: projectID, UserID: owner, Role: model.RoleOwner}))
	require.NoError(t, memberships.Create(ctx, &model.ProjectMembership{ProjectID: projectID, UserID: admin, Role: model.RoleAdmin}))
	require.NoError(t, memberships.Create(ctx, &model.ProjectMembership{ProjectID: projectID, UserID: member, Role: model.RoleMember}))

	t.Run("RequireMember admits any role", func(t *testing.T) {
		for _, id := range []uuid.UUID{owner, admin, member} {
			m, err := authz.RequireMember(ctx, projectID, id)
			require.NoError(t, err)
			require.Equal(t, id, m.UserID)
		}
		_, err := authz.RequireMember(ctx, projectID, outsider)
		require.ErrorIs(t, err, ErrNotMember)
	})

	t.Run("RequireManager admits owner and admin only", func(t *testing.T) {
		for _, id := range []uuid.UUID{owner, admin} {
			_, err := authz.RequireManager(ctx, projectID, id)
			require.NoError(t, err)
		}
		_, err := authz.RequireManager(ctx, projectID, member)
		require.ErrorIs(t, err, ErrForbidden)
		_, err = authz.RequireManager(ctx, projectID, outsider)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("role predicates", func(t *testing.T) {
		require.True(t, model.RoleOwner.IsOwner())
		require.True(t, model.RoleOwner.CanManage())
		require.True(t, model.RoleAdmin.CanManage())
		require.False(t, model.RoleMember.CanManage())
		require.False(t, model.MemberRole("BOGUS").Valid())
	})
}

package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhive/projecthub/internal/model"
	"taskhive/projecthub/internal/repository"
)

// Authorizer derives per-project permissions from membership records.
// Roles are always re-read from the store, never trusted from the caller.
type Authorizer struct {
	memberships repository.MembershipRepository
}

func NewAuthorizer(memberships repository.MembershipRepository) *Authorizer {
	return &Authorizer{memberships: memberships}
}

// Membership returns the caller's membership or ErrNotMember.
func (a *Authorizer) Membership(ctx context.Context, projectID uint, userID uuid.UUID) (*model.ProjectMembership, error) {
	m, err := a.memberships.GetByProjectAndUser(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotMember
		}
		return nil, err
	}
	return m, nil
}

// RequireMember ensures the user holds any role on the project.
func (a *Authorizer) RequireMember(ctx context.Context, projectID uint, userID uuid.UUID) (*model.ProjectMembership, error) {
	return a.Membership(ctx, projectID, userID)
}

// RequireManager ensures the user holds ADMIN or OWNER on the project.
// Non-members and plain members both get ErrForbidden.
func (a *Authorizer) RequireManager(ctx context.Context, projectID uint, userID uuid.UUID) (*model.ProjectMembership, error) {
	m, err := a.Membership(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, ErrNotMember) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	if !m.Role.CanManage() {
		return nil, ErrForbidden
	}
	return m, nil
}

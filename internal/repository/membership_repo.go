package repository

import (
	"context"

	"github.com/google/uuid"

	"taskhive/projecthub/internal/model"
)

type MembershipRepository interface {
	Create(ctx context.Context, membership *model.ProjectMembership) error
	GetByID(ctx context.Context, id uint) (*model.ProjectMembership, error)
	GetByProjectAndUser(ctx context.Context, projectID uint, userID uuid.UUID) (*model.ProjectMembership, error)
	ListByProject(ctx context.Context, projectID uint) ([]model.ProjectMembership, error)
	CountByProject(ctx context.Context, projectID uint) (int64, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	UpdateRole(ctx context.Context, id uint, role model.MemberRole) error
	// RemoveWithUnassign disconnects the member from every task assignment
	// in the project and deletes the membership, in one transaction.
	RemoveWithUnassign(ctx context.Context, membership *model.ProjectMembership) error
}

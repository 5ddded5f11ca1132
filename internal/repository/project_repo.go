package repository

import (
	"context"

	"github.com/google/uuid"

	"taskhive/projecthub/internal/model"
)

type ProjectRepository interface {
	// CreateWithOwner persists the project and its OWNER membership atomically.
	CreateWithOwner(ctx context.Context, project *model.Project) error
	GetByID(ctx context.Context, id uint) (*model.Project, error)
	GetByIDWithMembers(ctx context.Context, id uint) (*model.Project, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error)
	Update(ctx context.Context, project *model.Project) error
	// DeleteCascade removes the project with its memberships, tasks,
	// notes, and invites.
	DeleteCascade(ctx context.Context, id uint) error
}

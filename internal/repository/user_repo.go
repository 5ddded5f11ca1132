package repository

import (
	"context"

	"github.com/google/uuid"

	"taskhive/projecthub/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	// DeleteCascade removes the user together with their memberships,
	// task assignments, and owned projects.
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

package repository

import (
	"context"

	"github.com/google/uuid"

	"taskhive/projecthub/internal/model"
)

type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id uint) (*model.Task, error)
	ListByProject(ctx context.Context, projectID uint) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id uint) error
	AddAssignee(ctx context.Context, taskID uint, userID uuid.UUID) error
	RemoveAssignee(ctx context.Context, taskID uint, userID uuid.UUID) error
	CreateStage(ctx context.Context, stage *model.TaskStage) error
	GetStage(ctx context.Context, stageID uint) (*model.TaskStage, error)
	UpdateStage(ctx context.Context, stage *model.TaskStage) error
	DeleteStage(ctx context.Context, stageID uint) error
}

package repository

import (
	"context"

	"taskhive/projecthub/internal/model"
)

type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) error
	GetByID(ctx context.Context, id uint) (*model.Note, error)
	ListByProject(ctx context.Context, projectID uint) ([]model.Note, error)
	Delete(ctx context.Context, id uint) error
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"taskhive/projecthub/internal/model"
)

type pgNoteRepository struct {
	db *gorm.DB
}

func NewPGNoteRepository(db *gorm.DB) NoteRepository {
	return &pgNoteRepository{db: db}
}

func (r *pgNoteRepository) Create(ctx context.Context, note *model.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *pgNoteRepository) GetByID(ctx context.Context, id uint) (*model.Note, error) {
	var note model.Note
	if err := r.db.WithContext(ctx).First(&note, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *pgNoteRepository) ListByProject(ctx context.Context, projectID uint) ([]model.Note, error) {
	var notes []model.Note
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *pgNoteRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Note{}, "id = ?", id).Error
}

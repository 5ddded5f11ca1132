package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhive/projecthub/internal/model"
)

type pgTaskRepository struct {
	db *gorm.DB
}

func NewPGTaskRepository(db *gorm.DB) TaskRepository {
	return &pgTaskRepository{db: db}
}

func (r *pgTaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *pgTaskRepository) GetByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).
		Preload("Assignees").
		Preload("Stages", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *pgTaskRepository) ListByProject(ctx context.Context, projectID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Preload("Assignees").
		Preload("Stages", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *pgTaskRepository) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *pgTaskRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM task_assignees WHERE task_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&model.TaskStage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Task{}, "id = ?", id).Error
	})
}

func (r *pgTaskRepository) AddAssignee(ctx context.Context, taskID uint, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Task{ID: taskID}).
		Association("Assignees").
		Append(&model.User{ID: userID})
}

func (r *pgTaskRepository) RemoveAssignee(ctx context.Context, taskID uint, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Exec("DELETE FROM task_assignees WHERE task_id = ? AND user_id = ?", taskID, userID).
		Error
}

func (r *pgTaskRepository) CreateStage(ctx context.Context, stage *model.TaskStage) error {
	return r.db.WithContext(ctx).Create(stage).Error
}

func (r *pgTaskRepository) GetStage(ctx context.Context, stageID uint) (*model.TaskStage, error) {
	var stage model.TaskStage
	if err := r.db.WithContext(ctx).First(&stage, "id = ?", stageID).Error; err != nil {
		return nil, err
	}
	return &stage, nil
}

func (r *pgTaskRepository) UpdateStage(ctx context.Context, stage *model.TaskStage) error {
	return r.db.WithContext(ctx).Save(stage).Error
}

func (r *pgTaskRepository) DeleteStage(ctx context.Context, stageID uint) error {
	return r.db.WithContext(ctx).Delete(&model.TaskStage{}, "id = ?", stageID).Error
}

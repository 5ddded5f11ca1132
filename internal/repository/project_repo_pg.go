package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhive/projecthub/internal/model"
)

type pgProjectRepository struct {
	db *gorm.DB
}

func NewPGProjectRepository(db *gorm.DB) ProjectRepository {
	return &pgProjectRepository{db: db}
}

func (r *pgProjectRepository) CreateWithOwner(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		membership := &model.ProjectMembership{
			ProjectID: project.ID,
			UserID:    project.OwnerID,
			Role:      model.RoleOwner,
		}
		return tx.Create(membership).Error
	})
}

func (r *pgProjectRepository) GetByID(ctx context.Context, id uint) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *pgProjectRepository) GetByIDWithMembers(ctx context.Context, id uint) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).
		Preload("Members").Preload("Members.User").
		First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *pgProjectRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	var projects []model.Project
	if err := r.db.WithContext(ctx).
		Joins("JOIN project_memberships ON project_memberships.project_id = projects.id").
		Where("project_memberships.user_id = ?", userID).
		Order("projects.created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *pgProjectRepository) Update(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *pgProjectRepository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return cascadeDeleteProject(tx, id)
	})
}

// cascadeDeleteProject removes a project and everything hanging off it.
// Must run inside a transaction.
func cascadeDeleteProject(tx *gorm.DB, projectID uint) error {
	subqueries := []string{
		"DELETE FROM task_assignees WHERE task_id IN (SELECT id FROM tasks WHERE project_id = ?)",
		"DELETE FROM task_stages WHERE task_id IN (SELECT id FROM tasks WHERE project_id = ?)",
	}
	for _, q := range subqueries {
		if err := tx.Exec(q, projectID).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("project_id = ?", projectID).Delete(&model.Task{}).Error; err != nil {
		return err
	}
	if err := tx.Where("project_id = ?", projectID).Delete(&model.Note{}).Error; err != nil {
		return err
	}
	if err := tx.Where("project_id = ?", projectID).Delete(&model.Invite{}).Error; err != nil {
		return err
	}
	if err := tx.Where("project_id = ?", projectID).Delete(&model.ProjectMembership{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Project{}, "id = ?", projectID).Error
}

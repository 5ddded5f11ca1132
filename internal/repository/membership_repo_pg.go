package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhive/projecthub/internal/model"
)

type pgMembershipRepository struct {
	db *gorm.DB
}

func NewPGMembershipRepository(db *gorm.DB) MembershipRepository {
	return &pgMembershipRepository{db: db}
}

func (r *pgMembershipRepository) Create(ctx context.Context, membership *model.ProjectMembership) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

func (r *pgMembershipRepository) GetByID(ctx context.Context, id uint) (*model.ProjectMembership, error) {
	var membership model.ProjectMembership
	if err := r.db.WithContext(ctx).First(&membership, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &membership, nil
}

func (r *pgMembershipRepository) GetByProjectAndUser(ctx context.Context, projectID uint, userID uuid.UUID) (*model.ProjectMembership, error) {
	var membership model.ProjectMembership
	if err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&membership).Error; err != nil {
		return nil, err
	}
	return &membership, nil
}

func (r *pgMembershipRepository) ListByProject(ctx context.Context, projectID uint) ([]model.ProjectMembership, error) {
	var memberships []model.ProjectMembership
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *pgMembershipRepository) CountByProject(ctx context.Context, projectID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ProjectMembership{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}

func (r *pgMembershipRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ProjectMembership{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *pgMembershipRepository) UpdateRole(ctx context.Context, id uint, role model.MemberRole) error {
	return r.db.WithContext(ctx).
		Model(&model.ProjectMembership{}).
		Where("id = ?", id).
		Update("role", role).Error
}

func (r *pgMembershipRepository) RemoveWithUnassign(ctx context.Context, membership *model.ProjectMembership) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Disconnect first: the unassign is idempotent and safe to retry,
		// so a failure here never leaves an orphaned assignment.
		if err := tx.Exec(
			"DELETE FROM task_assignees WHERE user_id = ? "+
				"AND task_id IN (SELECT id FROM tasks WHERE project_id = ?)",
			membership.UserID, membership.ProjectID,
		).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ProjectMembership{}, "id = ?", membership.ID).Error
	})
}

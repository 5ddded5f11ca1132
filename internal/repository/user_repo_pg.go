package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhive/projecthub/internal/model"
)

type pgUserRepository struct {
	db *gorm.DB
}

func NewPGUserRepository(db *gorm.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *pgUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *pgUserRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *pgUserRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM task_assignees WHERE user_id = ?", id).Error; err != nil {
			return err
		}

		var owned []uint
		if err := tx.Model(&model.Project{}).Where("owner_id = ?", id).Pluck("id", &owned).Error; err != nil {
			return err
		}
		for _, projectID := range owned {
			if err := cascadeDeleteProject(tx, projectID); err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", id).Delete(&model.ProjectMembership{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, "id = ?", id).Error
	})
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"taskhive/projecthub/internal/model"
)

type pgInviteRepository struct {
	db *gorm.DB
}

func NewPGInviteRepository(db *gorm.DB) InviteRepository {
	return &pgInviteRepository{db: db}
}

func (r *pgInviteRepository) Create(ctx context.Context, invite *model.Invite) error {
	return r.db.WithContext(ctx).Create(invite).Error
}

func (r *pgInviteRepository) GetByLinkID(ctx context.Context, linkID string) (*model.Invite, error) {
	var invite model.Invite
	if err := r.db.WithContext(ctx).Where("link_id = ?", linkID).First(&invite).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *pgInviteRepository) GetByLinkIDWithProject(ctx context.Context, linkID string) (*model.Invite, error) {
	var invite model.Invite
	if err := r.db.WithContext(ctx).
		Preload("Project").
		Where("link_id = ?", linkID).
		First(&invite).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *pgInviteRepository) ListByProject(ctx context.Context, projectID uint) ([]model.Invite, error) {
	var invites []model.Invite
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&invites).Error; err != nil {
		return nil, err
	}
	return invites, nil
}

func (r *pgInviteRepository) Update(ctx context.Context, invite *model.Invite) error {
	return r.db.WithContext(ctx).Save(invite).Error
}

func (r *pgInviteRepository) Delete(ctx context.Context, linkID string) error {
	return r.db.WithContext(ctx).Where("link_id = ?", linkID).Delete(&model.Invite{}).Error
}

func (r *pgInviteRepository) Redeem(ctx context.Context, linkID string, membership *model.ProjectMembership) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Guarded increment: the row lock taken by UPDATE serializes
		// concurrent redeems, and re-checking the cap in the WHERE clause
		// means two simultaneous joins of a max_uses=1 invite cannot both
		// pass.
		res := tx.Model(&model.Invite{}).
			Where("link_id = ? AND (max_uses IS NULL OR uses < max_uses)", linkID).
			UpdateColumn("uses", gorm.Expr("uses + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInviteUnavailable
		}
		return tx.Create(membership).Error
	})
}

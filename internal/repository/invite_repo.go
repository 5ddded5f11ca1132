package repository

import (
	"context"

	"taskhive/projecthub/internal/model"
)

type InviteRepository interface {
	Create(ctx context.Context, invite *model.Invite) error
	GetByLinkID(ctx context.Context, linkID string) (*model.Invite, error)
	GetByLinkIDWithProject(ctx context.Context, linkID string) (*model.Invite, error)
	ListByProject(ctx context.Context, projectID uint) ([]model.Invite, error)
	Update(ctx context.Context, invite *model.Invite) error
	Delete(ctx context.Context, linkID string) error
	// Redeem atomically increments the use counter (guarded by the use cap)
	// and creates the membership. Returns ErrInviteUnavailable when the cap
	// is already reached and gorm.ErrDuplicatedKey when the user already
	// holds a membership.
	Redeem(ctx context.Context, linkID string, membership *model.ProjectMembership) error
}

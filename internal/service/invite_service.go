package service

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhive/projecthub/internal/config"
	"taskhive/projecthub/internal/model"
	"taskhive/projecthub/internal/repository"
)

// linkIDRetries bounds insert attempts when a generated link id collides
// with an existing one.
const linkIDRetries = 5

// InvitePreview is the public, unauthenticated view of an invite.
type InvitePreview struct {
	LinkID      string     `json:"link_id"`
	ProjectID   uint       `json:"project_id"`
	ProjectName string     `json:"project_name"`
	MaxUses     *int       `json:"max_uses,omitempty"`
	Uses        int        `json:"uses"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

type InviteService interface {
	Create(ctx context.Context, projectID uint, requesterID uuid.UUID, maxUses *int, expiresAt *time.Time) (*model.Invite, error)
	Fetch(ctx context.Context, linkID string) (*InvitePreview, error)
	List(ctx context.Context, projectID uint, requesterID uuid.UUID) ([]model.Invite, error)
	UpdateLimits(ctx context.Context, linkID string, requesterID uuid.UUID, maxUses *int, expiresAt *time.Time) (*model.Invite, error)
	Consume(ctx context.Context, linkID string, userID uuid.UUID) (uint, error)
	Delete(ctx context.Context, linkID string, requesterID uuid.UUID) error
}

type inviteService struct {
	inviteRepo     repository.InviteRepository
	membershipRepo repository.MembershipRepository
	projectRepo    repository.ProjectRepository
	stateStore     repository.StateStore
	authz          *Authorizer
	limits         config.LimitsConfig
	previewTTL     time.Duration
}

func NewInviteService(
	inviteRepo repository.InviteRepository,
	membershipRepo repository.MembershipRepository,
	projectRepo repository.ProjectRepository,
	stateStore repository.StateStore,
	authz *Authorizer,
	limits config.LimitsConfig,
	previewTTL time.Duration,
) InviteService {
	return &inviteService{
		inviteRepo:     inviteRepo,
		membershipRepo: membershipRepo,
		projectRepo:    projectRepo,
		stateStore:     stateStore,
		authz:          authz,
		limits:         limits,
		previewTTL:     previewTTL,
	}
}

func (s *inviteService) Create(ctx context.Context, projectID uint, requesterID uuid.UUID, maxUses *int, expiresAt *time.Time) (*model.Invite, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("load project: %w", err)
	}
	if _, err := s.authz.RequireManager(ctx, projectID, requesterID); err != nil {
		return nil, err
	}
	if maxUses != nil && *maxUses <= 0 {
		return nil, ErrInvalidMaxUses
	}
	if expiresAt != nil && !expiresAt.After(time.Now()) {
		return nil, ErrExpiryInPast
	}

	// The store enforces link-id uniqueness; a collision is retried with a
	// freshly generated id rather than pre-checked.
	for attempt := 0; attempt < linkIDRetries; attempt++ {
		linkID, err := generateLinkID()
		if err != nil {
			return nil, fmt.Errorf("generate link id: %w", err)
		}
		invite := &model.Invite{
			LinkID:      linkID,
			ProjectID:   projectID,
			CreatedByID: requesterID,
			MaxUses:     maxUses,
			ExpiresAt:   expiresAt,
		}
		err = s.inviteRepo.Create(ctx, invite)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create invite: %w", err)
		}
		return invite, nil
	}
	return nil, fmt.Errorf("create invite: could not allocate a unique link id")
}

func (s *inviteService) Fetch(ctx context.Context, linkID string) (*InvitePreview, error) {
	key := inviteCacheKey(linkID)
	if raw, err := s.stateStore.Get(ctx, key); err == nil && raw != nil {
		var preview InvitePreview
		if json.Unmarshal(raw, &preview) == nil {
			// Expiry is computed at read time even on a cache hit.
			if preview.ExpiresAt != nil && !time.Now().Before(*preview.ExpiresAt) {
				return nil, ErrInviteExpired
			}
			return &preview, nil
		}
	}

	invite, err := s.inviteRepo.GetByLinkIDWithProject(ctx, linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("load invite: %w", err)
	}

	preview := &InvitePreview{
		LinkID:    invite.LinkID,
		ProjectID: invite.ProjectID,
		MaxUses:   invite.MaxUses,
		Uses:      invite.Uses,
		ExpiresAt: invite.ExpiresAt,
	}
	if invite.Project != nil {
		preview.ProjectName = invite.Project.Name
	}
	if raw, err := json.Marshal(preview); err == nil {
		_ = s.stateStore.Set(ctx, key, raw, s.previewTTL)
	}

	if invite.ExpiredAt(time.Now()) {
		return nil, ErrInviteExpired
	}
	return preview, nil
}

func (s *inviteService) List(ctx context.Context, projectID uint, requesterID uuid.UUID) ([]model.Invite, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("load project: %w", err)
	}
	if _, err := s.authz.RequireManager(ctx, projectID, requesterID); err != nil {
		return nil, err
	}
	return s.inviteRepo.ListByProject(ctx, projectID)
}

func (s *inviteService) UpdateLimits(ctx context.Context, linkID string, requesterID uuid.UUID, maxUses *int, expiresAt *time.Time) (*model.Invite, error) {
	invite, err := s.inviteRepo.GetByLinkID(ctx, linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("load invite: %w", err)
	}
	// Authorization is derived from the invite's own project, not from
	// anything the caller supplied.
	if _, err := s.authz.RequireManager(ctx, invite.ProjectID, requesterID); err != nil {
		return nil, err
	}
	if maxUses == nil && expiresAt == nil {
		return nil, ErrNothingToUpdate
	}
	// An absent field means "no change", never "clear".
	if maxUses != nil {
		if *maxUses <= 0 {
			return nil, ErrInvalidMaxUses
		}
		invite.MaxUses = maxUses
	}
	if expiresAt != nil {
		invite.ExpiresAt = expiresAt
	}
	if err := s.inviteRepo.Update(ctx, invite); err != nil {
		return nil, fmt.Errorf("update invite: %w", err)
	}
	_ = s.stateStore.Delete(ctx, inviteCacheKey(linkID))
	return invite, nil
}

// Consume validates the invite and joins the user to its project. The
// membership insert and the use-count increment happen in one transaction;
// all checks run before any mutation.
func (s *inviteService) Consume(ctx context.Context, linkID string, userID uuid.UUID) (uint, error) {
	invite, err := s.inviteRepo.GetByLinkID(ctx, linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrInviteNotFound
		}
		return 0, fmt.Errorf("load invite: %w", err)
	}

	now := time.Now()
	if invite.ExpiredAt(now) {
		return 0, ErrInviteExpired
	}
	if invite.Exhausted() {
		return 0, ErrInviteExhausted
	}

	if _, err := s.membershipRepo.GetByProjectAndUser(ctx, invite.ProjectID, userID); err == nil {
		return 0, ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("check membership: %w", err)
	}

	memberCount, err := s.membershipRepo.CountByProject(ctx, invite.ProjectID)
	if err != nil {
		return 0, fmt.Errorf("count members: %w", err)
	}
	if memberCount >= int64(s.limits.MaxMembersPerProject) {
		return 0, ErrProjectFull
	}

	projectCount, err := s.membershipRepo.CountByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count memberships: %w", err)
	}
	if projectCount >= int64(s.limits.MaxProjectsPerUser) {
		return 0, ErrProjectQuotaExceeded
	}

	membership := &model.ProjectMembership{
		ProjectID: invite.ProjectID,
		UserID:    userID,
		Role:      model.RoleMember,
	}
	err = s.inviteRepo.Redeem(ctx, linkID, membership)
	switch {
	case errors.Is(err, repository.ErrInviteUnavailable):
		// Lost a race: another join hit the cap between our read and the
		// guarded increment.
		return 0, ErrInviteExhausted
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return 0, ErrAlreadyMember
	case err != nil:
		return 0, fmt.Errorf("redeem invite: %w", err)
	}

	_ = s.stateStore.Delete(ctx, inviteCacheKey(linkID))
	return invite.ProjectID, nil
}

func (s *inviteService) Delete(ctx context.Context, linkID string, requesterID uuid.UUID) error {
	invite, err := s.inviteRepo.GetByLinkID(ctx, linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInviteNotFound
		}
		return fmt.Errorf("load invite: %w", err)
	}
	if _, err := s.authz.RequireManager(ctx, invite.ProjectID, requesterID); err != nil {
		return err
	}
	if err := s.inviteRepo.Delete(ctx, linkID); err != nil {
		return fmt.Errorf("delete invite: %w", err)
	}
	_ = s.stateStore.Delete(ctx, inviteCacheKey(linkID))
	return nil
}

func inviteCacheKey(linkID string) string {
	return "invite:preview:" + linkID
}

// generateLinkID draws LinkIDLength characters uniformly from the
// alphanumeric alphabet.
func generateLinkID() (string, error) {
	alphabetLen := big.NewInt(int64(len(model.LinkIDAlphabet)))
	b := make([]byte, model.LinkIDLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", err
		}
		b[i] = model.LinkIDAlphabet[n.Int64()]
	}
	return string(b), nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhive/projecthub/internal/model"
	"taskhive/projecthub/internal/repository"
)

type MembershipService interface {
	List(ctx context.Context, projectID uint, requesterID uuid.UUID) ([]model.ProjectMembership, error)
	// Remove deletes a membership, disconnecting the removed user from all
	// task assignments in the project. Returns the refreshed project view.
	Remove(ctx context.Context, projectID, membershipID uint, requesterID uuid.UUID) (*model.Project, error)
	ChangeRole(ctx context.Context, projectID, membershipID uint, newRole model.MemberRole, requesterID uuid.UUID) (*model.ProjectMembership, error)
}

type membershipService struct {
	membershipRepo repository.MembershipRepository
	projectRepo    repository.ProjectRepository
	authz          *Authorizer
}

func NewMembershipService(
	membershipRepo repository.MembershipRepository,
	projectRepo repository.ProjectRepository,
	authz *Authorizer,
) MembershipService {
	return &membershipService{
		membershipRepo: membershipRepo,
		projectRepo:    projectRepo,
		authz:          authz,
	}
}

func (s *membershipService) List(ctx context.Context, projectID uint, requesterID uuid.UUID) ([]model.ProjectMembership, error) {
	if _, err := s.authz.RequireMember(ctx, projectID, requesterID); err != nil {
		return nil, err
	}
	return s.membershipRepo.ListByProject(ctx, projectID)
}

func (s *membershipService) Remove(ctx context.Context, projectID, membershipID uint, requesterID uuid.UUID) (*model.Project, error) {
	membership, err := s.loadMembership(ctx, projectID, membershipID)
	if err != nil {
		return nil, err
	}

	if membership.UserID == requesterID {
		// Self-removal: permitted for everyone but the owner, who must
		// transfer ownership or delete the project instead.
		if membership.Role.IsOwner() {
			return nil, ErrOwnerCannotLeave
		}
	} else {
		if _, err := s.authz.RequireManager(ctx, projectID, requesterID); err != nil {
			return nil, err
		}
		if membership.Role.IsOwner() {
			return nil, ErrOwnerImmutable
		}
	}

	if err := s.membershipRepo.RemoveWithUnassign(ctx, membership); err != nil {
		return nil, fmt.Errorf("remove membership: %w", err)
	}
	return s.projectRepo.GetByIDWithMembers(ctx, projectID)
}

func (s *membershipService) ChangeRole(ctx context.Context, projectID, membershipID uint, newRole model.MemberRole, requesterID uuid.UUID) (*model.ProjectMembership, error) {
	// OWNER can be neither granted nor revoked here, which keeps the
	// single-owner invariant intact.
	if newRole != model.RoleAdmin && newRole != model.RoleMember {
		return nil, ErrInvalidRole
	}

	membership, err := s.loadMembership(ctx, projectID, membershipID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authz.RequireManager(ctx, projectID, requesterID); err != nil {
		return nil, err
	}
	if membership.Role.IsOwner() {
		return nil, ErrOwnerImmutable
	}

	if err := s.membershipRepo.UpdateRole(ctx, membership.ID, newRole); err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	membership.Role = newRole
	return membership, nil
}

func (s *membershipService) loadMembership(ctx context.Context, projectID, membershipID uint) (*model.ProjectMembership, error) {
	membership, err := s.membershipRepo.GetByID(ctx, membershipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, fmt.Errorf("load membership: %w", err)
	}
	if membership.ProjectID != projectID {
		return nil, ErrMembershipNotFound
	}
	return membership, nil
}

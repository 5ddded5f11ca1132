package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhive/projecthub/internal/config"
	"taskhive/projecthub/internal/model"
	"taskhive/projecthub/internal/repository"
)

type ProjectService interface {
	Create(ctx context.Context, ownerID uuid.UUID, name, description string) (*model.Project, error)
	Get(ctx context.Context, projectID uint, requesterID uuid.UUID) (*model.Project, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]model.Project, error)
	Update(ctx context.Context, projectID uint, requesterID uuid.UUID, name, description *string) (*model.Project, error)
	Delete(ctx context.Context, projectID uint, requesterID uuid.UUID) error
}

type projectService struct {
	projectRepo    repository.ProjectRepository
	membershipRepo repository.MembershipRepository
	authz          *Authorizer
	limits         config.LimitsConfig
}

func NewProjectService(
	projectRepo repository.ProjectRepository,
	membershipRepo repository.MembershipRepository,
	authz *Authorizer,
	limits config.LimitsConfig,
) ProjectService {
	return &projectService{
		projectRepo:    projectRepo,
		membershipRepo: membershipRepo,
		authz:          authz,
		limits:         limits,
	}
}

func (s *projectService) Create(ctx context.Context, ownerID uuid.UUID, name, description string) (*model.Project, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if len(name) > model.ProjectNameMaxLen {
		return nil, ErrNameTooLong
	}
	if len(description) > model.ProjectDescriptionMaxLen {
		return nil, ErrDescriptionTooLong
	}

	count, err := s.membershipRepo.CountByUser(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("count memberships: %w", err)
	}
	if count >= int64(s.limits.MaxProjectsPerUser) {
		return nil, ErrProjectQuotaExceeded
	}

	project := &model.Project{
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
	}
	if err := s.projectRepo.CreateWithOwner(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

func (s *projectService) Get(ctx context.Context, projectID uint, requesterID uuid.UUID) (*model.Project, error) {
	project, err := s.projectRepo.GetByIDWithMembers(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("load project: %w", err)
	}
	if _, err := s.authz.RequireMember(ctx, projectID, requesterID); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) ListMine(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	return s.projectRepo.ListByUser(ctx, userID)
}

func (s *projectService) Update(ctx context.Context, projectID uint, requesterID uuid.UUID, name, description *string) (*model.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("load project: %w", err)
	}
	if _, err := s.authz.RequireManager(ctx, projectID, requesterID); err != nil {
		return nil, err
	}
	if name == nil && description == nil {
		return nil, ErrNothingToUpdate
	}
	if name != nil {
		if *name == "" {
			return nil, ErrNameRequired
		}
		if len(*name) > model.ProjectNameMaxLen {
			return nil, ErrNameTooLong
		}
		project.Name = *name
	}
	if description != nil {
		if len(*description) > model.ProjectDescriptionMaxLen {
			return nil, ErrDescriptionTooLong
		}
		project.Description = *description
	}
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, projectID uint, requesterID uuid.UUID) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("load project: %w", err)
	}
	if project.OwnerID != requesterID {
		return ErrForbidden
	}
	return s.projectRepo.DeleteCascade(ctx, projectID)
}

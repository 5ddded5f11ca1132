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

type TaskService interface {
	Create(ctx context.Context, projectID uint, requesterID uuid.UUID, title, description string, priority model.TaskPriority) (*model.Task, error)
	Get(ctx context.Context, projectID, taskID uint, requesterID uuid.UUID) (*model.Task, error)
	List(ctx context.Context, projectID uint, requesterID uuid.UUID) ([]model.Task, error)
	Update(ctx context.Context, projectID, taskID uint, requesterID uuid.UUID, title, description *string, priority *model.TaskPriority) (*model.Task, error)
	Delete(ctx context.Context, projectID, taskID uint, requesterID uuid.UUID) error
	Assign(ctx context.Context, projectID, taskID uint, assigneeID, requesterID uuid.UUID) error
	Unassign(ctx context.Context, projectID, taskID uint, assigneeID, requesterID uuid.UUID) error
	AddStage(ctx context.Context, projectID, taskID uint, requesterID uuid.UUID, title string, position int) (*model.TaskStage, error)
	SetStageDone(ctx context.Context, projectID, taskID, stageID uint, requesterID uuid.UUID, done bool) (*model.TaskStage, error)
	DeleteStage(ctx context.Context, projectID, taskID, stageID uint, requesterID uuid.UUID) error
}

type taskService struct {
	taskRepo repository.TaskRepository
	authz    *Authorizer
}

func NewTaskService(taskRepo repository.TaskRepository, authz *Authorizer) TaskService {
	return &taskService{taskRepo: taskRepo, authz: authz}
}

func (s *taskService) Create(ctx context.Context, projectID uint, requesterID uuid.UUID, title, description string, priority model.TaskPriority) (*model.Task, error) {
	if _, err := s.authz.RequireMember(ctx, projectID, requesterID); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, ErrTitleRequired
	}
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}

	task := &model.Task{
		ProjectID:   projectID,
		Title:       title,
		Description: description,
		Priority:    priority,
		CreatedByID: requesterID,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

func (s *taskService) Get(ctx context.Context, projectID, taskID uint, requesterID uuid.UUID) (*model.Task, error) {
	if _, err := s.authz.RequireMember(ctx, projectID, requesterID); err != nil {
		return nil, err
	}
	return s.taskInProject(ctx, projectID, taskID)
}

func (s *taskService) List(ctx context.Context, projectID uint, requesterID uuid.UUID) ([]model.Task, error) {
	if _, err := s.authz.RequireMember(ctx, projectID, requesterID); err != nil {
		return nil, err
	}
	return s.taskRepo.ListByProject(ctx, projectID)
}

func (s *taskService) Update(ctx context.Context, projectID, taskID uint, requesterID uuid.UUID, title, description *string, priority *model.TaskPriority) (*model.Task, error) {
	if _, err := s.authz.RequireMember(ctx, projectID, requesterID); err != nil {
		return nil, err
	}
	task, err := s.taskInProject(ctx, projectID, taskID)
	if err != nil {
		return nil, err
	}
	if title == nil && description == nil && priority == nil {
		return nil, ErrNothingToUpdate
	}
	if title != nil {
		if *title == "" {
			return nil, ErrTitleRequired
		}
		task.Title = *title
	}
	if description != nil {
		task.Description = *description
	}
	if priority != nil {
		if !priority.Valid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = *priority
	}
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, projectID, taskID uint, requesterID uuid.UUID) error {
	membership, err := s.authz.RequireMember(ctx, projectID, requesterID)
	if err != nil {
		return err
	}
	task, err := s.taskInProject(ctx, projectID, taskID)
	if err != nil {
		return err
	}
	// Plain members may only delete their own tasks.
	if task.CreatedByID != requesterID && !membership.Role.CanManage() {
		return ErrForbidden
	}
	return s.taskRepo.Delete(ctx, taskID)
}

func (s *taskService) Assign(ctx context.Context, projectID, taskID uint, assigneeID, requesterID uuid.UUID) error {
	if _, err := s.authz.RequireMember(ctx, projectID, requesterID); err != nil {
		return err
	}
	if _, err := s.taskInProject(ctx, projectID, taskID); err != nil {
		return err
	}
	if _, err := s.authz.Membership(ctx, projectID, assigneeID); err != nil {
		if errors.Is(err, ErrNotMember) {
			return ErrAssigneeNotMember
		}
		return err
	}
	err := s.taskRepo.AddAssignee(ctx, taskID, assigneeID)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Already assigned; assignment is idempotent.
		return nil
	}
	return err
}

func (s *taskService) Unassign(ctx context.Context, projectID, taskID uint, assigneeID, requesterID uuid.UUID) error {
	if _, err := s.authz.RequireMember(ctx, projectID, requesterID); err != nil {
		return err
	}
	if _, err := s.taskInProject(ctx, projectID, taskID); err != nil {
		return err
	}
	return s.taskRepo.RemoveAssignee(ctx, taskID, assigneeID)
}

func (s *taskService) AddStage(ctx context.Context, projectID, taskID uint, requesterID uuid.UUID, title string, position int) (*model.TaskStage, error) {
	if _, err := s.authz.RequireMember(ctx, projectID, requesterID); err != nil {
		return nil, err
	}
	if _, err := s.taskInProject(ctx, projectID, taskID); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, ErrTitleRequired
	}
	stage := &model.TaskStage{
		TaskID:   taskID,
		Title:    title,
		Position: position,
	}
	if err := s.taskRepo.CreateStage(ctx, stage); err != nil {
		return nil, fmt.Errorf("create stage: %w", err)
	}
	return stage, nil
}

func (s *taskService) SetStageDone(ctx context.Context, projectID, taskID, stageID uint, requesterID uuid.UUID, done bool) (*model.TaskStage, error) {
	if _, err := s.authz.RequireMember(ctx, projectID, requesterID); err != nil {
		return nil, err
	}
	stage, err := s.stageInTask(ctx, projectID, taskID, stageID)
	if err != nil {
		return nil, err
	}
	stage.Done = done
	if err := s.taskRepo.UpdateStage(ctx, stage); err != nil {
		return nil, fmt.Errorf("update stage: %w", err)
	}
	return stage, nil
}

func (s *taskService) DeleteStage(ctx context.Context, projectID, taskID, stageID uint, requesterID uuid.UUID) error {
	if _, err := s.authz.RequireMember(ctx, projectID, requesterID); err != nil {
		return err
	}
	if _, err := s.stageInTask(ctx, projectID, taskID, stageID); err != nil {
		return err
	}
	return s.taskRepo.DeleteStage(ctx, stageID)
}

func (s *taskService) taskInProject(ctx context.Context, projectID, taskID uint) (*model.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("load task: %w", err)
	}
	if task.ProjectID != projectID {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

func (s *taskService) stageInTask(ctx context.Context, projectID, taskID, stageID uint) (*model.TaskStage, error) {
	if _, err := s.taskInProject(ctx, projectID, taskID); err != nil {
		return nil, err
	}
	stage, err := s.taskRepo.GetStage(ctx, stageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStageNotFound
		}
		return nil, fmt.Errorf("load stage: %w", err)
	}
	if stage.TaskID != taskID {
		return nil, ErrStageNotFound
	}
	return stage, nil
}

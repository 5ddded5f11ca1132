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

type UserService interface {
	Get(ctx context.Context, userID uuid.UUID) (*model.User, error)
	UpdateName(ctx context.Context, userID uuid.UUID, name string) (*model.User, error)
	// Delete removes the account, its memberships (with task
	// unassignment), and any projects it owns.
	Delete(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Get(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateName(ctx context.Context, userID uuid.UUID, name string) (*model.User, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if len(name) > 100 {
		return nil, ErrNameTooLong
	}
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Name = name
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.DeleteCascade(ctx, userID)
}

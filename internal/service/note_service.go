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

type NoteService interface {
	Create(ctx context.Context, projectID uint, authorID uuid.UUID, body string) (*model.Note, error)
	List(ctx context.Context, projectID uint, requesterID uuid.UUID) ([]model.Note, error)
	Delete(ctx context.Context, projectID, noteID uint, requesterID uuid.UUID) error
}

type noteService struct {
	noteRepo repository.NoteRepository
	authz    *Authorizer
}

func NewNoteService(noteRepo repository.NoteRepository, authz *Authorizer) NoteService {
	return &noteService{noteRepo: noteRepo, authz: authz}
}

func (s *noteService) Create(ctx context.Context, projectID uint, authorID uuid.UUID, body string) (*model.Note, error) {
	if _, err := s.authz.RequireMember(ctx, projectID, authorID); err != nil {
		return nil, err
	}
	if body == "" {
		return nil, ErrEmptyBody
	}
	note := &model.Note{
		ProjectID: projectID,
		AuthorID:  authorID,
		Body:      body,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

func (s *noteService) List(ctx context.Context, projectID uint, requesterID uuid.UUID) ([]model.Note, error) {
	if _, err := s.authz.RequireMember(ctx, projectID, requesterID); err != nil {
		return nil, err
	}
	return s.noteRepo.ListByProject(ctx, projectID)
}

func (s *noteService) Delete(ctx context.Context, projectID, noteID uint, requesterID uuid.UUID) error {
	membership, err := s.authz.RequireMember(ctx, projectID, requesterID)
	if err != nil {
		return err
	}
	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("load note: %w", err)
	}
	if note.ProjectID != projectID {
		return ErrNoteNotFound
	}
	if note.AuthorID != requesterID && !membership.Role.CanManage() {
		return ErrForbidden
	}
	return s.noteRepo.Delete(ctx, noteID)
}

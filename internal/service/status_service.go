package service

import (
	"context"
	"errors"
	"strings"

	"taskboard/internal/access"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/google/uuid"
)

const (
	maxStatusNameLength        = 50
	maxStatusDescriptionLength = 200
)

// StatusPatch carries the optional fields of a status update; nil means
// leave unchanged.
type StatusPatch struct {
	Name        *string
	Description *string
}

type StatusService struct {
	statuses *repository.StatusRepository
	tasks    *repository.TaskRepository
	boards   *repository.BoardRepository
	engine   *access.Engine
}

func NewStatusService(
	statuses *repository.StatusRepository,
	tasks *repository.TaskRepository,
	boards *repository.BoardRepository,
	engine *access.Engine,
) *StatusService {
	return &StatusService{
		statuses: statuses,
		tasks:    tasks,
		boards:   boards,
		engine:   engine,
	}
}

func (s *StatusService) List(ctx context.Context, boardID string, requesterID *uuid.UUID) ([]model.Status, error) {
	if _, err := resolveAndAuthorize(ctx, s.boards, s.engine, boardID, requesterID, access.ReadBoard); err != nil {
		return nil, err
	}
	return s.statuses.GetByBoard(ctx, boardID)
}

func (s *StatusService) Get(ctx context.Context, boardID string, statusID int, requesterID *uuid.UUID) (*model.Status, error) {
	if _, err := resolveAndAuthorize(ctx, s.boards, s.engine, boardID, requesterID, access.ReadBoard); err != nil {
		return nil, err
	}
	status, err := s.statuses.GetByID(ctx, boardID, statusID)
	if err != nil {
		if errors.Is(err, repository.ErrStatusNotFound) {
			return nil, notFound("Status not found in this board")
		}
		return nil, err
	}
	return status, nil
}

func (s *StatusService) Create(ctx context.Context, boardID string, requesterID *uuid.UUID, name, description string) (*model.Status, error) {
	if _, err := resolveAndAuthorize(ctx, s.boards, s.engine, boardID, requesterID, access.WriteBoard); err != nil {
		return nil, err
	}

	if err := s.validateName(ctx, boardID, name); err != nil {
		return nil, err
	}
	if len(description) > maxStatusDescriptionLength {
		return nil, invalidArgument("Description size must be between 0 and 200")
	}

	status := &model.Status{
		BoardID:     boardID,
		Name:        name,
		Description: description,
	}
	if err := s.statuses.Create(ctx, status); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, conflict("Status name must be unique within the board")
		}
		return nil, err
	}
	return status, nil
}

func (s *StatusService) Update(ctx context.Context, boardID string, statusID int, requesterID *uuid.UUID, patch StatusPatch) (*model.Status, error) {
	if _, err := resolveAndAuthorize(ctx, s.boards, s.engine, boardID, requesterID, access.WriteBoard); err != nil {
		return nil, err
	}

	status, err := s.statuses.GetByID(ctx, boardID, statusID)
	if err != nil {
		if errors.Is(err, repository.ErrStatusNotFound) {
			return nil, notFound("Status not found in this board")
		}
		return nil, err
	}

	if patch.Description != nil {
		if len(*patch.Description) > maxStatusDescriptionLength {
			return nil, invalidArgument("Description size must be between 0 and 200")
		}
		status.Description = *patch.Description
	}

	// Uniqueness is only re-checked when the name actually changes.
	if patch.Name != nil && *patch.Name != status.Name {
		if err := s.validateName(ctx, boardID, *patch.Name); err != nil {
			return nil, err
		}
		status.Name = *patch.Name
	}

	if err := s.statuses.Update(ctx, status); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, conflict("Status name must be unique within the board")
		}
		return nil, err
	}
	return status, nil
}

// Delete removes a status that no task references. Sentinel statuses are
// never deletable; statuses still in use require the transfer variant.
func (s *StatusService) Delete(ctx context.Context, boardID string, statusID int, requesterID *uuid.UUID) error {
	if _, err := resolveAndAuthorize(ctx, s.boards, s.engine, boardID, requesterID, access.WriteBoard); err != nil {
		return err
	}

	status, err := s.statuses.GetByID(ctx, boardID, statusID)
	if err != nil {
		if errors.Is(err, repository.ErrStatusNotFound) {
			return notFound("Status not found in this board")
		}
		return err
	}

	if status.IsSentinel() {
		return invalidArgument("Cannot delete 'No Status' or 'Done' status")
	}

	used, err := s.tasks.ExistsByStatus(ctx, status.ID)
	if err != nil {
		return err
	}
	if used {
		return inUse("Cannot delete status as it is currently in use")
	}

	return s.statuses.Delete(ctx, status)
}

// DeleteAndTransfer re-points every task on statusID to newStatusID and then
// deletes statusID, atomically.
func (s *StatusService) DeleteAndTransfer(ctx context.Context, boardID string, statusID, newStatusID int, requesterID *uuid.UUID) error {
	if _, err := resolveAndAuthorize(ctx, s.boards, s.engine, boardID, requesterID, access.WriteBoard); err != nil {
		return err
	}

	status, err := s.statuses.GetByID(ctx, boardID, statusID)
	if err != nil {
		if errors.Is(err, repository.ErrStatusNotFound) {
			return notFound("Status not found in this board")
		}
		return err
	}
	if _, err := s.statuses.GetByID(ctx, boardID, newStatusID); err != nil {
		if errors.Is(err, repository.ErrStatusNotFound) {
			return notFound("New status not found in this board")
		}
		return err
	}

	if statusID == newStatusID {
		return invalidArgument("Destination status must be different from current status")
	}
	if status.IsSentinel() {
		return invalidArgument("Cannot delete 'No Status' or 'Done' status")
	}

	return s.statuses.DeleteAndTransfer(ctx, boardID, statusID, newStatusID)
}

func (s *StatusService) validateName(ctx context.Context, boardID, name string) error {
	if strings.TrimSpace(name) == "" {
		return invalidArgument("Name must not be null or empty")
	}
	if len(name) > maxStatusNameLength {
		return invalidArgument("Name size must be between 1 and 50")
	}
	exists, err := s.statuses.ExistsByName(ctx, boardID, name)
	if err != nil {
		return err
	}
	if exists {
		return conflict("Status name must be unique within the board")
	}
	return nil
}

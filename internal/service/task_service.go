package service

import (
	"context"
	"errors"
	"strings"

	"taskboard/internal/access"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/storage"

	"github.com/google/uuid"
)

// TaskPatch carries the optional fields of a task update; nil means leave
// unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Assignees   *string
	StatusName  *string
}

type TaskService struct {
	tasks       *repository.TaskRepository
	statuses    *repository.StatusRepository
	boards      *repository.BoardRepository
	attachments *repository.AttachmentRepository
	engine      *access.Engine
	store       storage.BlobStore
}

func NewTaskService(
	tasks *repository.TaskRepository,
	statuses *repository.StatusRepository,
	boards *repository.BoardRepository,
	attachments *repository.AttachmentRepository,
	engine *access.Engine,
	store storage.BlobStore,
) *TaskService {
	return &TaskService{
		tasks:       tasks,
		statuses:    statuses,
		boards:      boards,
		attachments: attachments,
		engine:      engine,
		store:       store,
	}
}

// List returns the board's tasks, optionally restricted to an exact-match
// set of status names.
func (s *TaskService) List(ctx context.Context, boardID string, requesterID *uuid.UUID, filterStatuses []string) ([]model.Task, error) {
	if _, err := resolveAndAuthorize(ctx, s.boards, s.engine, boardID, requesterID, access.ReadBoard); err != nil {
		return nil, err
	}
	return s.tasks.GetByBoard(ctx, boardID, filterStatuses)
}

// Get returns a single task by id. A READ collaborator on a private board is
// answered with NotFound, never Forbidden.
func (s *TaskService) Get(ctx context.Context, boardID string, taskID int, requesterID *uuid.UUID) (*model.Task, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, notFound("Board not found")
	}

	d, err := s.engine.DecideTaskRead(ctx, board, requesterID)
	if err != nil {
		return nil, err
	}
	if d.Effect != access.Allow {
		return nil, decisionError(d)
	}

	task, err := s.tasks.GetByID(ctx, boardID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, notFound("Task not found")
		}
		return nil, err
	}
	return task, nil
}

// Create adds a task to the board. An omitted status name defaults to
// "No Status"; a given one must resolve to a status on this board.
func (s *TaskService) Create(ctx context.Context, boardID string, requesterID *uuid.UUID, title, description, assignees string, statusName *string) (*model.Task, error) {
	if _, err := resolveAndAuthorize(ctx, s.boards, s.engine, boardID, requesterID, access.WriteBoard); err != nil {
		return nil, err
	}

	if strings.TrimSpace(title) == "" {
		return nil, invalidArgument("Task title is required")
	}

	status, err := s.resolveStatus(ctx, boardID, statusName)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		BoardID:     boardID,
		StatusID:    status.ID,
		Title:       title,
		Description: description,
		Assignees:   assignees,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	task.Status = *status
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, boardID string, taskID int, requesterID *uuid.UUID, patch TaskPatch) (*model.Task, error) {
	if _, err := resolveAndAuthorize(ctx, s.boards, s.engine, boardID, requesterID, access.WriteBoard); err != nil {
		return nil, err
	}

	task, err := s.tasks.GetByID(ctx, boardID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, notFound("Task not found")
		}
		return nil, err
	}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, invalidArgument("Task title is required")
		}
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Assignees != nil {
		task.Assignees = *patch.Assignees
	}
	if patch.StatusName != nil {
		status, err := s.resolveStatus(ctx, boardID, patch.StatusName)
		if err != nil {
			return nil, err
		}
		task.StatusID = status.ID
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes the task with its attachment rows and, after the rows are
// gone, their stored blobs. A blob that fails to delete is recoverable
// garbage, never dangling metadata.
func (s *TaskService) Delete(ctx context.Context, boardID string, taskID int, requesterID *uuid.UUID) error {
	if _, err := resolveAndAuthorize(ctx, s.boards, s.engine, boardID, requesterID, access.WriteBoard); err != nil {
		return err
	}

	blobs, err := s.attachments.FileNamesByTask(ctx, taskID)
	if err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, boardID, taskID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return notFound("Task not found")
		}
		return err
	}

	for _, name := range blobs {
		_ = s.store.Delete(ctx, name)
	}
	return nil
}

// resolveStatus maps an optional status name to the board's status row,
// defaulting to the "No Status" sentinel.
func (s *TaskService) resolveStatus(ctx context.Context, boardID string, statusName *string) (*model.Status, error) {
	name := model.StatusNoStatus
	if statusName != nil {
		name = *statusName
	}
	status, err := s.statuses.FindByName(ctx, boardID, name)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return nil, invalidArgument("Status not found in this board")
	}
	return status, nil
}

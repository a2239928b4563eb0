package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"taskboard/internal/access"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/storage"

	"github.com/google/uuid"
)

type AttachmentService struct {
	attachments *repository.AttachmentRepository
	tasks       *repository.TaskRepository
	boards      *repository.BoardRepository
	engine      *access.Engine
	store       storage.BlobStore
}

func NewAttachmentService(
	attachments *repository.AttachmentRepository,
	tasks *repository.TaskRepository,
	boards *repository.BoardRepository,
	engine *access.Engine,
	store storage.BlobStore,
) *AttachmentService {
	return &AttachmentService{
		attachments: attachments,
		tasks:       tasks,
		boards:      boards,
		engine:      engine,
		store:       store,
	}
}

func (s *AttachmentService) List(ctx context.Context, boardID string, taskID int, requesterID *uuid.UUID) ([]model.Attachment, error) {
	if _, err := resolveAndAuthorize(ctx, s.boards, s.engine, boardID, requesterID, access.ReadBoard); err != nil {
		return nil, err
	}
	if _, err := s.resolveTask(ctx, boardID, taskID); err != nil {
		return nil, err
	}
	return s.attachments.GetByTask(ctx, taskID)
}

// Add validates quotas before any byte is written: at most 10 attachments
// per task and at most 20 MB of stored bytes in total. The blob is stored
// first and the metadata row second; the row insert re-checks the quota
// under a task-row lock, so a writer racing past the pre-check loses with a
// conflict. A failed row write removes the stored blob again.
func (s *AttachmentService) Add(ctx context.Context, boardID string, taskID int, requesterID *uuid.UUID, fileName string, size int64, r io.Reader) (*model.Attachment, error) {
	if _, err := resolveAndAuthorize(ctx, s.boards, s.engine, boardID, requesterID, access.WriteBoard); err != nil {
		return nil, err
	}
	task, err := s.resolveTask(ctx, boardID, taskID)
	if err != nil {
		return nil, err
	}

	if size <= 0 {
		return nil, invalidArgument("File cannot be empty")
	}
	if strings.Contains(fileName, "..") {
		return nil, invalidArgument("Filename contains invalid path sequence")
	}

	count, totalSize, err := s.attachments.CountAndSizeByTask(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	if count >= model.MaxAttachmentsPerTask {
		return nil, invalidArgument("Maximum number of attachments (10) reached")
	}
	if totalSize+size > model.MaxAttachmentBytesPerTask {
		return nil, invalidArgument("Total attachment size would exceed 20MB limit")
	}

	storedName, err := s.store.Store(ctx, r, fileName)
	if err != nil {
		return nil, internal("Could not save file: " + err.Error())
	}

	attachment := &model.Attachment{
		TaskID:   task.ID,
		FileName: storedName,
		Size:     size,
	}
	if err := s.attachments.CreateWithQuota(ctx, attachment, model.MaxAttachmentsPerTask, model.MaxAttachmentBytesPerTask); err != nil {
		// The blob is already on disk; take it back out rather than leak it.
		_ = s.store.Delete(ctx, storedName)
		switch {
		case errors.Is(err, repository.ErrAttachmentLimit):
			return nil, conflict("Maximum number of attachments (10) reached")
		case errors.Is(err, repository.ErrAttachmentSize):
			return nil, conflict("Total attachment size would exceed 20MB limit")
		}
		return nil, err
	}
	return attachment, nil
}

// Remove deletes the blob first and the metadata row second. If the blob
// delete fails the row is kept, so no metadata ever points at storage the
// operation already gave up on.
func (s *AttachmentService) Remove(ctx context.Context, boardID string, taskID, attachmentID int, requesterID *uuid.UUID) error {
	if _, err := resolveAndAuthorize(ctx, s.boards, s.engine, boardID, requesterID, access.WriteBoard); err != nil {
		return err
	}
	if _, err := s.resolveTask(ctx, boardID, taskID); err != nil {
		return err
	}

	attachment, err := s.attachments.GetByTaskAndID(ctx, taskID, attachmentID)
	if err != nil {
		if errors.Is(err, repository.ErrAttachmentNotFound) {
			return notFound("Attachment not found")
		}
		return err
	}

	if err := s.store.Delete(ctx, attachment.FileName); err != nil {
		return internal("Failed to delete file " + attachment.FileName)
	}

	if err := s.attachments.Delete(ctx, attachment.ID); err != nil {
		if errors.Is(err, repository.ErrAttachmentNotFound) {
			return notFound("Attachment not found")
		}
		return err
	}
	return nil
}

func (s *AttachmentService) resolveTask(ctx context.Context, boardID string, taskID int) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, boardID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, notFound("Task not found")
		}
		return nil, err
	}
	return task, nil
}

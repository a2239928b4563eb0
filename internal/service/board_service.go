package service

import (
	"context"
	"strings"

	"taskboard/internal/access"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/storage"

	"github.com/google/uuid"
)

const maxBoardNameLength = 120

type BoardService struct {
	boards      *repository.BoardRepository
	collabs     *repository.CollaborationRepository
	users       *repository.UserRepository
	attachments *repository.AttachmentRepository
	engine      *access.Engine
	store       storage.BlobStore
}

func NewBoardService(
	boards *repository.BoardRepository,
	collabs *repository.CollaborationRepository,
	users *repository.UserRepository,
	attachments *repository.AttachmentRepository,
	engine *access.Engine,
	store storage.BlobStore,
) *BoardService {
	return &BoardService{
		boards:      boards,
		collabs:     collabs,
		users:       users,
		attachments: attachments,
		engine:      engine,
		store:       store,
	}
}

// Create persists a new private board owned by the requester and seeds the
// four default statuses atomically.
func (s *BoardService) Create(ctx context.Context, requesterID *uuid.UUID, name string) (*model.Board, error) {
	if requesterID == nil {
		return nil, authRequired("Authentication required")
	}

	if strings.TrimSpace(name) == "" {
		return nil, invalidArgument("Board name cannot be empty")
	}
	if len(name) > maxBoardNameLength {
		return nil, invalidArgument("Board name cannot exceed 120 characters")
	}

	owner, err := s.users.GetByID(ctx, *requesterID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, notFound("User not found")
	}

	board, err := model.NewBoard(name, owner.ID)
	if err != nil {
		return nil, err
	}

	if err := s.boards.CreateWithStatuses(ctx, board); err != nil {
		return nil, err
	}

	board.Owner = *owner
	return board, nil
}

// List returns the boards visible to the requester: public boards only for
// anonymous callers, otherwise owned, public and collaborating boards
// de-duplicated.
func (s *BoardService) List(ctx context.Context, requesterID *uuid.UUID) ([]model.Board, error) {
	public, err := s.boards.GetPublic(ctx)
	if err != nil {
		return nil, err
	}
	if requesterID == nil {
		return public, nil
	}

	owned, err := s.boards.GetOwned(ctx, *requesterID)
	if err != nil {
		return nil, err
	}
	collaborating, err := s.collabs.GetBoardsForUser(ctx, *requesterID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var boards []model.Board
	for _, set := range [][]model.Board{owned, public, collaborating} {
		for _, b := range set {
			if seen[b.ID] {
				continue
			}
			seen[b.ID] = true
			boards = append(boards, b)
		}
	}
	return boards, nil
}

// Get returns the board if the requester may read it.
func (s *BoardService) Get(ctx context.Context, id string, requesterID *uuid.UUID) (*model.Board, error) {
	board, err := s.boards.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, notFound("Board not found")
	}

	d, err := s.engine.Decide(ctx, board, requesterID, access.ReadBoard)
	if err != nil {
		return nil, err
	}
	if d.Effect != access.Allow {
		return nil, decisionError(d)
	}
	return board, nil
}

// UpdateVisibility flips a board between PUBLIC and PRIVATE. Owner only; the
// permission check runs before any input validation.
func (s *BoardService) UpdateVisibility(ctx context.Context, id string, requesterID *uuid.UUID, visibility *string) (*model.Board, error) {
	board, err := s.boards.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, notFound("Board not found")
	}

	d, err := s.engine.Decide(ctx, board, requesterID, access.OwnerOnly)
	if err != nil {
		return nil, err
	}
	if d.Effect != access.Allow {
		return nil, decisionError(d)
	}

	if visibility == nil {
		return nil, invalidArgument("Visibility is required")
	}
	switch strings.ToLower(*visibility) {
	case "public":
		board.Visibility = model.VisibilityPublic
	case "private":
		board.Visibility = model.VisibilityPrivate
	default:
		return nil, invalidArgument("Invalid visibility value")
	}

	if err := s.boards.Update(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

// Delete removes the board with all of its tasks, collaborations and
// statuses in one transaction, then removes the stored attachment blobs.
// A blob that fails to delete is recoverable garbage, never dangling
// metadata.
func (s *BoardService) Delete(ctx context.Context, id string, requesterID *uuid.UUID) error {
	board, err := s.boards.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if board == nil {
		return notFound("Board not found")
	}

	d, err := s.engine.Decide(ctx, board, requesterID, access.OwnerOnly)
	if err != nil {
		return err
	}
	if d.Effect != access.Allow {
		return decisionError(d)
	}

	blobs, err := s.attachments.FileNamesByBoard(ctx, id)
	if err != nil {
		return err
	}

	if err := s.boards.DeleteCascade(ctx, id); err != nil {
		return err
	}

	for _, name := range blobs {
		_ = s.store.Delete(ctx, name)
	}
	return nil
}

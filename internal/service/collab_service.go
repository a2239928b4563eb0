package service

import (
	"context"
	"strings"

	"taskboard/internal/access"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/google/uuid"
)

type CollabService struct {
	collabs *repository.CollaborationRepository
	boards  *repository.BoardRepository
	users   *repository.UserRepository
	engine  *access.Engine
}

func NewCollabService(
	collabs *repository.CollaborationRepository,
	boards *repository.BoardRepository,
	users *repository.UserRepository,
	engine *access.Engine,
) *CollabService {
	return &CollabService{
		collabs: collabs,
		boards:  boards,
		users:   users,
		engine:  engine,
	}
}

func (s *CollabService) List(ctx context.Context, boardID string, requesterID *uuid.UUID) ([]model.Collaboration, error) {
	if _, err := resolveAndAuthorize(ctx, s.boards, s.engine, boardID, requesterID, access.ReadBoard); err != nil {
		return nil, err
	}
	return s.collabs.GetByBoard(ctx, boardID)
}

func (s *CollabService) Get(ctx context.Context, boardID string, targetUserID uuid.UUID, requesterID *uuid.UUID) (*model.Collaboration, error) {
	if _, err := resolveAndAuthorize(ctx, s.boards, s.engine, boardID, requesterID, access.ReadBoard); err != nil {
		return nil, err
	}

	collab, err := s.collabs.Get(ctx, boardID, targetUserID)
	if err != nil {
		return nil, err
	}
	if collab == nil {
		return nil, notFound("Collaborator not found")
	}
	return collab, nil
}

// Add invites a user, resolved by email, as a collaborator. Owner only; the
// permission check runs before any input validation.
func (s *CollabService) Add(ctx context.Context, boardID string, requesterID *uuid.UUID, email, accessRight *string) (*model.Collaboration, error) {
	board, err := resolveAndAuthorize(ctx, s.boards, s.engine, boardID, requesterID, access.OwnerOnly)
	if err != nil {
		return nil, err
	}

	if email == nil || accessRight == nil {
		return nil, invalidArgument("Email and access_right are required")
	}
	right := strings.ToUpper(*accessRight)
	if right != model.AccessRead && right != model.AccessWrite {
		return nil, invalidArgument("Invalid access_right value")
	}

	target, err := s.users.FindByEmail(ctx, *email)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, notFound("User not found in system")
	}

	// The owner never appears as a collaboration row on their own board.
	if target.ID == board.OwnerID {
		return nil, conflict("Cannot add yourself as a collaborator")
	}

	existing, err := s.collabs.Get(ctx, boardID, target.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, conflict("User is already a collaborator")
	}

	collab := &model.Collaboration{
		BoardID:     boardID,
		UserID:      target.ID,
		Name:        target.Name,
		Email:       target.Email,
		AccessRight: right,
		Invitation:  model.InvitationPending,
	}
	if err := s.collabs.Create(ctx, collab); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, conflict("User is already a collaborator")
		}
		return nil, err
	}
	return collab, nil
}

// Update changes a collaborator's access right. Owner only; a WRITE
// collaborator may never modify another collaborator.
func (s *CollabService) Update(ctx context.Context, boardID string, targetUserID uuid.UUID, requesterID *uuid.UUID, accessRight *string) (*model.Collaboration, error) {
	if _, err := resolveAndAuthorize(ctx, s.boards, s.engine, boardID, requesterID, access.OwnerOnly); err != nil {
		return nil, err
	}

	if accessRight == nil {
		return nil, invalidArgument("access_right is required")
	}
	right := strings.ToUpper(*accessRight)
	if right != model.AccessRead && right != model.AccessWrite {
		return nil, invalidArgument("Invalid access_right value")
	}

	collab, err := s.collabs.Get(ctx, boardID, targetUserID)
	if err != nil {
		return nil, err
	}
	if collab == nil {
		return nil, notFound("Collaborator not found")
	}

	collab.AccessRight = right
	if err := s.collabs.Update(ctx, collab); err != nil {
		return nil, err
	}
	return collab, nil
}

// Remove deletes a collaboration. Allowed for the board owner, or for a
// collaborator removing themself; every other combination is forbidden.
func (s *CollabService) Remove(ctx context.Context, boardID string, targetUserID uuid.UUID, requesterID *uuid.UUID) error {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return err
	}
	if board == nil {
		return notFound("Board not found")
	}

	if requesterID == nil {
		return authRequired("Authentication required")
	}

	if *requesterID != board.OwnerID {
		requesterCollab, err := s.collabs.Get(ctx, boardID, *requesterID)
		if err != nil {
			return err
		}
		if requesterCollab == nil {
			return forbidden("Non-collaborators cannot remove collaborators from the board")
		}
		if *requesterID != targetUserID {
			return forbidden("Collaborators can only remove themselves from the board")
		}
	}

	collab, err := s.collabs.Get(ctx, boardID, targetUserID)
	if err != nil {
		return err
	}
	if collab == nil {
		return notFound("Collaborator not found")
	}

	return s.collabs.Delete(ctx, boardID, targetUserID)
}

// Accept flips the requester's own pending invitation to accepted.
func (s *CollabService) Accept(ctx context.Context, boardID string, requesterID *uuid.UUID) (*model.Collaboration, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, notFound("Board not found")
	}

	if requesterID == nil {
		return nil, authRequired("Authentication required")
	}

	collab, err := s.collabs.Get(ctx, boardID, *requesterID)
	if err != nil {
		return nil, err
	}
	if collab == nil {
		return nil, notFound("Collaborator not found")
	}
	if collab.Invitation != model.InvitationPending {
		return nil, conflict("Invitation is not pending")
	}

	collab.Invitation = model.InvitationAccepted
	if err := s.collabs.Update(ctx, collab); err != nil {
		return nil, err
	}
	return collab, nil
}

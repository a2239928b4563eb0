// Package access centralizes every board permission decision. Lifecycle
// services never inline ownership or collaboration checks; they ask the
// engine and translate its decision.
package access

import (
	"context"

	"taskboard/internal/model"

	"github.com/google/uuid"
)

// Capability is the permission class an operation requires.
type Capability int

const (
	// ReadBoard covers board-scoped reads: board details, statuses, tasks,
	// collaborator lists.
	ReadBoard Capability = iota
	// WriteBoard covers mutations of statuses, tasks and attachments.
	WriteBoard
	// OwnerOnly covers visibility changes, board deletion and collaborator
	// management.
	OwnerOnly
)

// Effect is the outcome class of a decision.
type Effect int

const (
	Allow Effect = iota
	Deny
	NotFound
)

// Reason qualifies a Deny.
type Reason int

const (
	ReasonNone Reason = iota
	// ReasonAuthRequired: no usable identity on a request that needs one.
	// Surfaces as 403, not 401; absent and malformed credentials are treated
	// the same.
	ReasonAuthRequired
	// ReasonNotCollaborator: authenticated but no collaboration row.
	ReasonNotCollaborator
	// ReasonWriteForbidden: READ collaborator attempting a write.
	ReasonWriteForbidden
	// ReasonOwnerRequired: WRITE collaborator attempting an owner-only action.
	ReasonOwnerRequired
	// ReasonUserNotFound: the requester's own user record is missing.
	ReasonUserNotFound
)

// Decision is the engine's verdict for one request.
type Decision struct {
	Effect Effect
	Reason Reason
}

var allowed = Decision{Effect: Allow}

func deny(reason Reason) Decision {
	return Decision{Effect: Deny, Reason: reason}
}

// CollaborationLookup resolves the collaboration row for a (board, user)
// pair, nil when the user does not collaborate on the board.
type CollaborationLookup interface {
	Get(ctx context.Context, boardID string, userID uuid.UUID) (*model.Collaboration, error)
}

// UserLookup resolves a user record by id, nil when absent.
type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// Engine decides whether a requester may exercise a capability on a board.
// It performs reads only and never mutates state.
type Engine struct {
	collabs CollaborationLookup
	users   UserLookup
}

func NewEngine(collabs CollaborationLookup, users UserLookup) *Engine {
	return &Engine{collabs: collabs, users: users}
}

// Decide runs the fixed check order for a board-level operation. The board
// must already be known to exist; callers resolve it first so that a missing
// board is reported before any permission evaluation. requesterID is nil for
// anonymous requests. The returned error covers store failures only, never a
// denial.
func (e *Engine) Decide(ctx context.Context, board *model.Board, requesterID *uuid.UUID, capability Capability) (Decision, error) {
	if capability == ReadBoard && board.Visibility == model.VisibilityPublic {
		return allowed, nil
	}

	if requesterID == nil {
		return deny(ReasonAuthRequired), nil
	}

	if *requesterID == board.OwnerID {
		return allowed, nil
	}

	user, err := e.users.GetByID(ctx, *requesterID)
	if err != nil {
		return Decision{}, err
	}
	if user == nil {
		return deny(ReasonUserNotFound), nil
	}

	collab, err := e.collabs.Get(ctx, board.ID, *requesterID)
	if err != nil {
		return Decision{}, err
	}
	if collab == nil {
		return deny(ReasonNotCollaborator), nil
	}

	switch collab.AccessRight {
	case model.AccessWrite:
		if capability == OwnerOnly {
			return deny(ReasonOwnerRequired), nil
		}
		return allowed, nil
	case model.AccessRead:
		if capability == ReadBoard {
			return allowed, nil
		}
		return deny(ReasonWriteForbidden), nil
	}
	return deny(ReasonNotCollaborator), nil
}

// DecideTaskRead decides a read of a single task by id. Board-level denial
// stays a denial, but a READ collaborator on a private board is told the task
// does not exist rather than that access is forbidden; fine-grained task
// access is deliberately hidden from them.
func (e *Engine) DecideTaskRead(ctx context.Context, board *model.Board, requesterID *uuid.UUID) (Decision, error) {
	if board.Visibility == model.VisibilityPublic {
		return allowed, nil
	}

	d, err := e.Decide(ctx, board, requesterID, WriteBoard)
	if err != nil {
		return Decision{}, err
	}
	if d.Effect == Deny && d.Reason == ReasonWriteForbidden {
		return Decision{Effect: NotFound}, nil
	}
	return d, nil
}

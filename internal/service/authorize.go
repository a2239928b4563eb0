package service

import (
	"context"

	"taskboard/internal/access"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/google/uuid"
)

// resolveAndAuthorize loads a board and runs the access engine for the given
// capability. Board existence is checked first: a missing board is NotFound
// before any permission evaluation happens.
func resolveAndAuthorize(
	ctx context.Context,
	boards *repository.BoardRepository,
	engine *access.Engine,
	boardID string,
	requesterID *uuid.UUID,
	capability access.Capability,
) (*model.Board, error) {
	board, err := boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, notFound("Board not found")
	}

	d, err := engine.Decide(ctx, board, requesterID, capability)
	if err != nil {
		return nil, err
	}
	if d.Effect != access.Allow {
		return nil, decisionError(d)
	}
	return board, nil
}

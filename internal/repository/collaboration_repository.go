package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CollaborationRepository struct {
	db *gorm.DB
}

func NewCollaborationRepository(db *gorm.DB) *CollaborationRepository {
	return &CollaborationRepository{db: db}
}

// Get returns the collaboration row for a (board, user) pair, or nil if the
// user does not collaborate on the board.
func (r *CollaborationRepository) Get(ctx context.Context, boardID string, userID uuid.UUID) (*model.Collaboration, error) {
	var collab model.Collaboration
	err := r.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		First(&collab).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &collab, nil
}

func (r *CollaborationRepository) GetByBoard(ctx context.Context, boardID string) ([]model.Collaboration, error) {
	var collabs []model.Collaboration
	err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("added_at").
		Find(&collabs).Error
	return collabs, err
}

// GetBoardsForUser returns the boards the user collaborates on.
func (r *CollaborationRepository) GetBoardsForUser(ctx context.Context, userID uuid.UUID) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Joins("JOIN collaborations ON collaborations.board_id = boards.id").
		Where("collaborations.user_id = ?", userID).
		Find(&boards).Error
	return boards, err
}

// Create inserts a collaboration row. The composite primary key makes a
// concurrent duplicate insert fail with a unique violation rather than
// silently producing two rows.
func (r *CollaborationRepository) Create(ctx context.Context, collab *model.Collaboration) error {
	return r.db.WithContext(ctx).Create(collab).Error
}

func (r *CollaborationRepository) Update(ctx context.Context, collab *model.Collaboration) error {
	return r.db.WithContext(ctx).
		Model(&model.Collaboration{}).
		Where("board_id = ? AND user_id = ?", collab.BoardID, collab.UserID).
		Updates(map[string]interface{}{
			"access_right": collab.AccessRight,
			"invitation":   collab.Invitation,
		}).Error
}

func (r *CollaborationRepository) Delete(ctx context.Context, boardID string, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Delete(&model.Collaboration{}).Error
}

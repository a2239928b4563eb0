package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"gorm.io/gorm"
)

type StatusRepository struct {
	db *gorm.DB
}

func NewStatusRepository(db *gorm.DB) *StatusRepository {
	return &StatusRepository{db: db}
}

func (r *StatusRepository) Create(ctx context.Context, status *model.Status) error {
	return r.db.WithContext(ctx).Create(status).Error
}

func (r *StatusRepository) GetByBoard(ctx context.Context, boardID string) ([]model.Status, error) {
	var statuses []model.Status
	err := r.db.WithContext(ctx).Where("board_id = ?", boardID).Order("id").Find(&statuses).Error
	return statuses, err
}

// GetByID looks a status up within a board; ids are only meaningful
// board-scoped.
func (r *StatusRepository) GetByID(ctx context.Context, boardID string, statusID int) (*model.Status, error) {
	var status model.Status
	err := r.db.WithContext(ctx).Where("id = ? AND board_id = ?", statusID, boardID).First(&status).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStatusNotFound
		}
		return nil, err
	}
	return &status, nil
}

func (r *StatusRepository) FindByName(ctx context.Context, boardID, name string) (*model.Status, error) {
	var status model.Status
	err := r.db.WithContext(ctx).Where("board_id = ? AND name = ?", boardID, name).First(&status).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &status, err
}

func (r *StatusRepository) ExistsByName(ctx context.Context, boardID, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Status{}).
		Where("board_id = ? AND name = ?", boardID, name).
		Count(&count).Error
	return count > 0, err
}

func (r *StatusRepository) Update(ctx context.Context, status *model.Status) error {
	return r.db.WithContext(ctx).Save(status).Error
}

func (r *StatusRepository) Delete(ctx context.Context, status *model.Status) error {
	return r.db.WithContext(ctx).Delete(status).Error
}

// DeleteAndTransfer re-points every task referencing statusID to newStatusID
// and deletes the status, atomically: either all tasks move and the status is
// gone, or nothing changes.
func (r *StatusRepository) DeleteAndTransfer(ctx context.Context, boardID string, statusID, newStatusID int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Task{}).
			Where("board_id = ? AND status_id = ?", boardID, statusID).
			Update("status_id", newStatusID).Error; err != nil {
			return err
		}
		result := tx.Where("id = ? AND board_id = ?", statusID, boardID).Delete(&model.Status{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStatusNotFound
		}
		return nil
	})
}

package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"gorm.io/gorm"
)

var (
	ErrTaskNotFound = errors.New("task not found")
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create adds a new task to the database
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByID retrieves a task within a board by its ID
func (r *TaskRepository) GetByID(ctx context.Context, boardID string, taskID int) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).Preload("Status").Where("id = ? AND board_id = ?", taskID, boardID).First(&task)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// GetByBoard retrieves all tasks for a board, optionally restricted to the
// given status names.
func (r *TaskRepository) GetByBoard(ctx context.Context, boardID string, statusNames []string) ([]model.Task, error) {
	var tasks []model.Task
	query := r.db.WithContext(ctx).Preload("Status").Where("tasks.board_id = ?", boardID)
	if len(statusNames) > 0 {
		query = query.
			Joins("JOIN statuses ON statuses.id = tasks.status_id").
			Where("statuses.name IN ?", statusNames)
	}
	result := query.Order("tasks.created_at").Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// ExistsByStatus reports whether any task still references the status
func (r *TaskRepository) ExistsByStatus(ctx context.Context, statusID int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).Where("status_id = ?", statusID).Count(&count).Error
	return count > 0, err
}

// Update updates an existing task
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	result := r.db.WithContext(ctx).Save(task)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Delete removes a task and its attachment rows
func (r *TaskRepository) Delete(ctx context.Context, boardID string, taskID int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&model.Attachment{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ? AND board_id = ?", taskID, boardID).Delete(&model.Task{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTaskNotFound
		}
		return nil
	})
}

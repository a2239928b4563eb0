package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"gorm.io/gorm"
)

var (
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrAttachmentLimit    = errors.New("attachment count limit reached")
	ErrAttachmentSize     = errors.New("attachment size limit exceeded")
)

type AttachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

// CreateWithQuota inserts the attachment row only while the task stays within
// the count and byte quotas. The task row is locked first, so concurrent
// inserts on the same task serialize and the loser re-counts against the
// winner's committed row.
func (r *AttachmentRepository) CreateWithQuota(ctx context.Context, attachment *model.Attachment, maxCount, maxBytes int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lockedID int
		if err := tx.Raw("SELECT id FROM tasks WHERE id = ? FOR UPDATE", attachment.TaskID).Scan(&lockedID).Error; err != nil {
			return err
		}
		count, total, err := countAndSize(tx, attachment.TaskID)
		if err != nil {
			return err
		}
		if count >= maxCount {
			return ErrAttachmentLimit
		}
		if total+attachment.Size > maxBytes {
			return ErrAttachmentSize
		}
		return tx.Create(attachment).Error
	})
}

func (r *AttachmentRepository) GetByTask(ctx context.Context, taskID int) ([]model.Attachment, error) {
	var attachments []model.Attachment
	err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Order("id").Find(&attachments).Error
	return attachments, err
}

// GetByTaskAndID returns the attachment only if it belongs to the task.
func (r *AttachmentRepository) GetByTaskAndID(ctx context.Context, taskID, attachmentID int) (*model.Attachment, error) {
	var attachment model.Attachment
	err := r.db.WithContext(ctx).
		Where("id = ? AND task_id = ?", attachmentID, taskID).
		First(&attachment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttachmentNotFound
		}
		return nil, err
	}
	return &attachment, nil
}

// CountAndSizeByTask returns the number of attachments on a task and their
// total stored size, for quota checks.
func (r *AttachmentRepository) CountAndSizeByTask(ctx context.Context, taskID int) (int64, int64, error) {
	return countAndSize(r.db.WithContext(ctx), taskID)
}

func countAndSize(db *gorm.DB, taskID int) (int64, int64, error) {
	var count int64
	if err := db.Model(&model.Attachment{}).
		Where("task_id = ?", taskID).
		Count(&count).Error; err != nil {
		return 0, 0, err
	}
	var total struct {
		Total int64
	}
	if err := db.Model(&model.Attachment{}).
		Select("COALESCE(SUM(size), 0) AS total").
		Where("task_id = ?", taskID).
		Scan(&total).Error; err != nil {
		return 0, 0, err
	}
	return count, total.Total, nil
}

// FileNamesByTask returns the stored blob names of a task's attachments.
func (r *AttachmentRepository) FileNamesByTask(ctx context.Context, taskID int) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&model.Attachment{}).
		Where("task_id = ?", taskID).
		Pluck("file_name", &names).Error
	return names, err
}

// FileNamesByBoard returns the stored blob names of every attachment on the
// board's tasks.
func (r *AttachmentRepository) FileNamesByBoard(ctx context.Context, boardID string) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&model.Attachment{}).
		Joins("JOIN tasks ON tasks.id = attachments.task_id").
		Where("tasks.board_id = ?", boardID).
		Pluck("attachments.file_name", &names).Error
	return names, err
}

func (r *AttachmentRepository) Delete(ctx context.Context, attachmentID int) error {
	result := r.db.WithContext(ctx).Delete(&model.Attachment{}, "id = ?", attachmentID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAttachmentNotFound
	}
	return nil
}

package model

import (
	"time"
)

// Per-task attachment quotas, checked before the quota-violating write.
const (
	MaxAttachmentsPerTask     = 10
	MaxAttachmentBytesPerTask = 20 * 1024 * 1024
)

type Attachment struct {
	ID         int       `gorm:"primaryKey;autoIncrement"`
	TaskID     int       `gorm:"not null;index"`
	FileName   string    `gorm:"not null"`
	Size       int64     `gorm:"not null"`
	UploadedAt time.Time `gorm:"autoCreateTime"`

	Task Task `gorm:"foreignKey:TaskID"`
}

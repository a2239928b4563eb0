package model

import (
	"time"
)

type Task struct {
	ID          int    `gorm:"primaryKey;autoIncrement"`
	BoardID     string `gorm:"not null;index"`
	StatusID    int    `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	Assignees   string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Board  Board  `gorm:"foreignKey:BoardID"`
	Status Status `gorm:"foreignKey:StatusID"`
}

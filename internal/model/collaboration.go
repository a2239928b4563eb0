package model

import (
	"time"

	"github.com/google/uuid"
)

// Collaboration grants a user READ or WRITE access to a board they do not own.
// Exactly one row may exist per (board, user) pair.
type Collaboration struct {
	BoardID     string    `gorm:"primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null"`
	Email       string    `gorm:"not null"`
	AccessRight string    `gorm:"not null;check:access_right IN ('READ', 'WRITE')"`
	Invitation  string    `gorm:"not null;default:'ACCEPTED';check:invitation IN ('PENDING', 'ACCEPTED', 'DECLINED')"`
	AddedAt     time.Time `gorm:"autoCreateTime"`

	Board Board `gorm:"foreignKey:BoardID"`
	User  User  `gorm:"foreignKey:UserID"`
}

// Collaborator access rights
const (
	AccessRead  = "READ"  // can view the board and its tasks
	AccessWrite = "WRITE" // can edit statuses and tasks
)

// Invitation states
const (
	InvitationPending  = "PENDING"
	InvitationAccepted = "ACCEPTED"
	InvitationDeclined = "DECLINED"
)

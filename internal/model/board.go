package model

import (
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Board visibility values
const (
	VisibilityPrivate = "PRIVATE"
	VisibilityPublic  = "PUBLIC"
)

// BoardIDLength is the length of the generated short board code.
const BoardIDLength = 10

type Board struct {
	ID         string    `gorm:"primaryKey"`
	Name       string    `gorm:"not null"`
	OwnerID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Visibility string    `gorm:"not null;default:'PRIVATE';check:visibility IN ('PRIVATE', 'PUBLIC')"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Owner User `gorm:"foreignKey:OwnerID"`
}

// NewBoard builds a board with a generated id and private visibility.
// All fields are set here, nothing is deferred to persistence hooks.
func NewBoard(name string, ownerID uuid.UUID) (*Board, error) {
	id, err := gonanoid.New(BoardIDLength)
	if err != nil {
		return nil, err
	}
	return &Board{
		ID:         id,
		Name:       name,
		OwnerID:    ownerID,
		Visibility: VisibilityPrivate,
	}, nil
}

package model

type Status struct {
	ID          int    `gorm:"primaryKey;autoIncrement"`
	BoardID     string `gorm:"not null;index;uniqueIndex:idx_statuses_board_name,priority:1"`
	Name        string `gorm:"not null;uniqueIndex:idx_statuses_board_name,priority:2"`
	Description string

	Board Board `gorm:"foreignKey:BoardID"`
}

// Sentinel statuses that can never be deleted from a board.
const (
	StatusNoStatus = "No Status"
	StatusDone     = "Done"
)

// IsSentinel reports whether the status is one of the undeletable defaults.
func (s *Status) IsSentinel() bool {
	return s.Name == StatusNoStatus || s.Name == StatusDone
}

// DefaultStatuses returns the four statuses every new board starts with.
func DefaultStatuses(boardID string) []Status {
	return []Status{
		{BoardID: boardID, Name: StatusNoStatus, Description: "The default status"},
		{BoardID: boardID, Name: "To Do", Description: "The task is included in the project"},
		{BoardID: boardID, Name: "Doing", Description: "The task is being worked on"},
		{BoardID: boardID, Name: StatusDone, Description: "Finished"},
	}
}

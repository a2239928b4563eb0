package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Common repository errors
var (
	// ErrStatusNotFound is returned when a status is not found within a board
	ErrStatusNotFound = errors.New("status not found")
)

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation, the signal a losing concurrent writer receives.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

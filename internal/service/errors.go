package service

import (
	"errors"

	"taskboard/internal/access"
)

// Code classifies a service failure; the HTTP layer maps each code to a
// status exactly once.
type Code int

const (
	CodeInternal Code = iota
	CodeInvalidArgument
	CodeAuthRequired
	CodeForbidden
	CodeNotFound
	CodeConflict
	CodeInUse
)

// Error is a terminal, caller-facing failure. None of these are retried.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func invalidArgument(message string) *Error { return newError(CodeInvalidArgument, message) }
func authRequired(message string) *Error    { return newError(CodeAuthRequired, message) }
func forbidden(message string) *Error       { return newError(CodeForbidden, message) }
func notFound(message string) *Error        { return newError(CodeNotFound, message) }
func conflict(message string) *Error        { return newError(CodeConflict, message) }
func inUse(message string) *Error           { return newError(CodeInUse, message) }
func internal(message string) *Error        { return newError(CodeInternal, message) }

// CodeOf extracts the failure code; anything that is not a service error is
// an internal failure.
func CodeOf(err error) Code {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return CodeInternal
}

// decisionError translates a non-allow engine decision into a service error.
func decisionError(d access.Decision) *Error {
	if d.Effect == access.NotFound {
		return notFound("Task not found")
	}
	switch d.Reason {
	case access.ReasonAuthRequired:
		return authRequired("Authentication required")
	case access.ReasonUserNotFound:
		return forbidden("User not found")
	case access.ReasonNotCollaborator:
		return forbidden("Access denied to this board")
	case access.ReasonWriteForbidden:
		return forbidden("Read-only collaborators cannot modify this board")
	case access.ReasonOwnerRequired:
		return forbidden("Only the board owner can perform this action")
	}
	return forbidden("Access denied to this board")
}

package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrNoSession        = errors.New("no active session")
	ErrNotFinished      = errors.New("run has not finished")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// SessionError represents a failure tied to one simulator session
type SessionError struct {
	SessionID string
	Reason    string
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("session %s: %s", e.SessionID, e.Reason)
}

func (e *SessionError) Is(target error) bool {
	return target == ErrInvalidOperation
}

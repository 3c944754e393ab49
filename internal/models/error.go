package models

import (
	"errors"
	"fmt"
)

var (
	ErrNetwork         = errors.New("backend unreachable")
	ErrAuth            = errors.New("invalid credentials")
	ErrValidation      = errors.New("malformed response payload")
	ErrOrderNotFound   = errors.New("order not found")
	ErrOrderNotPending = errors.New("order is not pending")
	ErrNoSession       = errors.New("no stored session")
)

// MutationError is returned when a write call ends with a non-2xx response.
type MutationError struct {
	Op         string
	StatusCode int
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("%s failed with status %d", e.Op, e.StatusCode)
}

// NewMutationError creates MutationError for operation op
func NewMutationError(op string, code int) *MutationError {
	return &MutationError{Op: op, StatusCode: code}
}

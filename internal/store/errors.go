package store

import (
	"errors"
	"fmt"
)

var (
	ErrNotAuthenticated   = errors.New("store: not authenticated")
	ErrInvalidCredentials = errors.New("store: invalid login credentials")
	ErrEmailTaken         = errors.New("store: email already registered")
	ErrWeakPassword       = errors.New("store: password should be at least 6 characters")
	ErrInvalidEmail       = errors.New("store: invalid email address")
	ErrEmptyTitle         = errors.New("store: task title is required")
	ErrForbidden          = errors.New("store: task belongs to another user")
)

// OpError records which client operation failed and on which task.
type OpError struct {
	Op     string
	TaskID string
	Err    error
}

func (e *OpError) Error() string {
	if e == nil {
		return ""
	}
	if e.TaskID != "" {
		return fmt.Sprintf("%s task %s: %v", e.Op, e.TaskID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func wrapOp(op, taskID string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, TaskID: taskID, Err: err}
}

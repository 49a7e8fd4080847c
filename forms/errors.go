package forms

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidID marks a malformed form or response identifier.
	ErrInvalidID = errors.New("invalid id")
	// ErrNotFound marks a well-formed identifier with no matching record.
	ErrNotFound = errors.New("not found")
)

// ValidationError rejects a malformed form definition or submission.
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string {
	return e.Msg
}

func validationErrorf(format string, args ...any) error {
	return ValidationError{fmt.Sprintf(format, args...)}
}

// PersistenceError wraps a storage-layer fault.
type PersistenceError struct {
	Op  string
	Err error
}

func (e PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e PersistenceError) Unwrap() error {
	return e.Err
}

func persistence(op string, err error) error {
	return PersistenceError{Op: op, Err: err}
}

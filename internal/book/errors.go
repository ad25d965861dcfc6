package book

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrNotPersisted matches every *PersistError.
	ErrNotPersisted = errors.New("collection not persisted")
)

// ValidationError rejects an input value. No mutation has been applied when it
// is returned.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// PersistError reports that the in-memory collection changed but could not be
// written. The in-memory state is still valid.
type PersistError struct {
	Op  string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s: collection not saved: %v", e.Op, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

func (e *PersistError) Is(target error) bool {
	return target == ErrNotPersisted
}

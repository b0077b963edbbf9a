package journal

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("entry not found")
	ErrInvalidEntry = errors.New("invalid entry")
)

// PersistenceError reports a failed write of the entry collection.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist entries (%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ImportFormatError reports import text that is not a JSON array of entries.
type ImportFormatError struct {
	Err error
}

func (e *ImportFormatError) Error() string {
	return fmt.Sprintf("invalid import data: %v", e.Err)
}

func (e *ImportFormatError) Unwrap() error {
	return e.Err
}

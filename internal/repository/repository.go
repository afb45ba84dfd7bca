package repository

import "errors"

var (
	// ErrNotFound means the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict means a guarded update matched no row: either the session
	// moved on concurrently or it is no longer active.
	ErrConflict = errors.New("conflicting update")
)

package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness constraint was violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrStaleRevision indicates a conditional cart write lost a race:
	// the line's revision moved since it was last read.
	ErrStaleRevision = errors.New("stale revision")
)

package ports

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	// ErrUnavailable is returned when a backing store cannot serve requests.
	ErrUnavailable = errors.New("store unavailable")
)

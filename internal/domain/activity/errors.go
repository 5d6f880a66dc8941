package activity

import "errors"

var (
	ErrNoWorker          = errors.New("activity has no worker")
	ErrInvalidDuration   = errors.New("invalid activity duration")
	ErrNoPhase           = errors.New("no current phase")
	ErrUnregisteredPhase = errors.New("phase not registered")
	ErrStalled           = errors.New("activity made no progress")
)

// IsContractViolation reports whether err comes from a concrete activity
// breaking the phase contract. Such activities must be discarded.
func IsContractViolation(err error) bool {
	return errors.Is(err, ErrNoPhase) ||
		errors.Is(err, ErrUnregisteredPhase) ||
		errors.Is(err, ErrStalled)
}

package resources

import "errors"

// Sentinel kinds for assignment errors.
var (
	// ErrInsufficientResources means fewer adjudicators or venues than pairings.
	ErrInsufficientResources = errors.New("insufficient resources")
	// ErrConflictExhausted means a pairing has no conflict-free adjudicator at all.
	ErrConflictExhausted = errors.New("no conflict-free adjudicator")
)

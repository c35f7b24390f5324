package app

import (
	"errors"
	"fmt"

	"github.com/mistergarrison/debatematcher/internal/domain/resources"
)

// Sentinel kinds for engine errors.
var (
	ErrUnknownFormat = errors.New("unknown format")
	ErrNoCompetitors = errors.New("no competitors present")
)

// Wrap annotates err with the operation that observed it.
func Wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// NewKind pairs an operation with a sentinel kind.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// failureKind maps an engine error onto the metric label for its class.
func failureKind(err error) string {
	switch {
	case errors.Is(err, resources.ErrInsufficientResources):
		return "insufficient_resources"
	case errors.Is(err, resources.ErrConflictExhausted):
		return "conflict_exhausted"
	case errors.Is(err, ErrUnknownFormat), errors.Is(err, ErrNoCompetitors):
		return "bad_input"
	default:
		return "other"
	}
}

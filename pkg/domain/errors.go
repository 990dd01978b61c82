package domain

import (
	"errors"
	"fmt"
)

// ErrAlreadyBound is returned when Initialize is called on a bound binder.
var ErrAlreadyBound = errors.New("binder already initialized")

// ErrInvalidBinding is returned when a binding list violates its invariants.
var ErrInvalidBinding = errors.New("invalid binding")

// ElementNotFoundError reports a trigger id that does not resolve to an element.
type ElementNotFoundError struct {
	TriggerID string
}

func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("element not found: %q", e.TriggerID)
}

// MissingTriggers extracts the trigger ids of every ElementNotFoundError in err,
// including those joined with errors.Join or wrapped with %w.
func MissingTriggers(err error) []string {
	if err == nil {
		return nil
	}
	var ids []string
	var walk func(error)
	walk = func(err error) {
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, e := range joined.Unwrap() {
				walk(e)
			}
			return
		}
		if nf, ok := err.(*ElementNotFoundError); ok {
			ids = append(ids, nf.TriggerID)
			return
		}
		if inner := errors.Unwrap(err); inner != nil {
			walk(inner)
		}
	}
	walk(err)
	return ids
}

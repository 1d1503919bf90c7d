package model

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("element not found")
	ErrDuplicateID = errors.New("duplicate element id")
	ErrOwnedPin    = errors.New("pin is owned by an element")
)

// LookupError reports an id that did not resolve to an element of the
// expected kind.
type LookupError struct {
	ID   int
	Want string
	Got  Kind
	// Missing is true when nothing exists under ID at all.
	Missing bool
}

func (e *LookupError) Error() string {
	if e.Missing {
		return fmt.Sprintf("%s %d not found", e.Want, e.ID)
	}
	return fmt.Sprintf("element %d is a %s, expected %s", e.ID, e.Got, e.Want)
}

func (e *LookupError) Unwrap() error {
	return ErrNotFound
}

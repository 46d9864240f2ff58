package nav

import (
	"errors"
	"fmt"
)

// Engine errors.
var (
	// ErrNoBuilders is returned when a delegate is constructed or reset
	// with an empty builder list.
	ErrNoBuilders = errors.New("nav: no page builders registered")

	// ErrCannotCloseRoot is returned by Close when the stack holds only
	// the root page. CanClose reports whether Close may be attempted.
	ErrCannotCloseRoot = errors.New("nav: cannot close the root page")

	// ErrAbandoned is reported by PendingResult.Wait when the pending
	// navigation was abandoned by a delegate reset before its page was
	// popped. Abandoned results never yield a value.
	ErrAbandoned = errors.New("nav: pending navigation abandoned")
)

// PageNotFoundError is returned when no registered builder supports a
// destination in a context that requires resolution to succeed
// (NavigateTo, Reset, delegate construction).
type PageNotFoundError struct {
	// Destination is the destination that could not be resolved.
	Destination Destination
}

func (e *PageNotFoundError) Error() string {
	return fmt.Sprintf("nav: no page builder supports %q", e.Destination.Path)
}

// PageExistsError is returned by NavigateTo when the target location is
// already present in the stack. Page names double as lookup keys for pop
// and result tracking, so duplicates are rejected.
type PageExistsError struct {
	// Name is the page name that is already on the stack.
	Name string
}

func (e *PageExistsError) Error() string {
	return fmt.Sprintf("nav: page %q is already on the stack", e.Name)
}

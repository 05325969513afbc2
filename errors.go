package promptview

import (
	"errors"
	"fmt"
)

// Structural errors. These indicate caller logic errors (misuse of the
// builder protocol or tree queries) and are never retried.
var (
	// ErrNoContext is reported when a content-mutating builder operation
	// runs with no block on the context stack.
	ErrNoContext = errors.New("no context stack")

	// ErrPivotNotFound is reported by Split when the pivot tag does not
	// occur in the list.
	ErrPivotNotFound = errors.New("pivot tag not found")
)

// StructuralError wraps a structural misuse with the operation that
// triggered it. Builder operations panic with a *StructuralError, since a
// missing context stack is a programming error, not a runtime condition.
type StructuralError struct {
	Op  string
	Err error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("promptview: %s: %v", e.Op, e.Err)
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

// ValidationError is reported when serialized input cannot be restored to
// a valid block tree, or when a tree violates a structural invariant
// (e.g. a tool block without an id). It is surfaced to the caller and
// never silently coerced.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("promptview: invalid %s: %s", e.Field, e.Msg)
	}
	return "promptview: " + e.Msg
}

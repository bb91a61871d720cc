package health

import (
	"errors"
	"fmt"
)

// ErrDegenerate is returned when a derived ratio is not finite (for example a
// zero height). Callers surface it as "no result" instead of a number.
var ErrDegenerate = errors.New("computation produced a non-finite result")

var (
	errUnknownUnit = errors.New("unknown unit")
	errNotFinite   = errors.New("value is not a number")
)

// ValidationError rejects a subject before any metric is computed. Reason is
// shown to the user as-is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

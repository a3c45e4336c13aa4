package errs

import "errors"

// Kind names an error category on the wire and in bulk reports.
type Kind string

const (
	KindNotFound        Kind = "not_found"
	KindAlreadyAssigned Kind = "already_assigned"
	KindInvalidState    Kind = "invalid_state"
	KindValidation      Kind = "validation"
	KindInternal        Kind = "internal"
)

// KindOf classifies err by the first sentinel it wraps. Joined errors are
// classified by their first matching member in the order below.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrAlreadyAssigned):
		return KindAlreadyAssigned
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindValidation
	default:
		return KindInternal
	}
}

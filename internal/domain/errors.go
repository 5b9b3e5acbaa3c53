package domain

import "errors"

// Workflow failures are tagged internally so tests and logs can tell the
// causes apart. Handlers collapse the first three into one opaque message so
// an unauthorized caller cannot learn whether a resource exists.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrWrongOwner = errors.New("resource owned by another user")
	ErrWrongState = errors.New("resource already processed")
	ErrValidation = errors.New("validation failed")
)

// IsNotFoundOrUnauthorized reports whether err belongs to the class of
// failures surfaced as "not found or already processed".
func IsNotFoundOrUnauthorized(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrWrongOwner) ||
		errors.Is(err, ErrWrongState)
}

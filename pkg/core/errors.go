package core

import "errors"

// Common errors.
var (
	// ErrExhibitionExists rejects a second exhibition for the same
	// supplier. The first one must be deleted explicitly.
	ErrExhibitionExists = errors.New("supplier already has an exhibition")
)

// ValidationError marks a rejected mutation. The store is never touched
// when one is returned; callers surface it as a user message instead of
// letting it escape the component tree.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return "validation failed: " + e.Err.Error()
	}
	return "validation failed: " + e.Reason
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Invalid builds a ValidationError with a plain reason.
func Invalid(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

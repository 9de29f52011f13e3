package errors

import "errors"

var ErrUnauthorized = errors.New("token is not authorized")
var ErrSessionExpired = errors.New("confirmation session not found or expired")
var ErrOverrideRequired = errors.New("booking has unresolved conflicts, explicit override required")
var ErrNoRecipients = errors.New("no resolvable client ids among conflicting bookings")

// ValidationError is a client-side gate failure: the request never reaches
// the core API.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

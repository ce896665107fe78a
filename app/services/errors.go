package services

// ValidationError reports a rejected field with the message the API
// returns to the caller. Any other error from this package is either the
// repository's ErrNotFound or a storage fault.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationError(message string) error {
	return &ValidationError{Message: message}
}

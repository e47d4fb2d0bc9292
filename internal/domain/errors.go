package domain

import "fmt"

// ValidationError reports caller input that can never succeed as given.
// No network call is attempted when it is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ProviderError wraps a vendor or transport failure. Error returns the
// vendor message unchanged so the UI can display it as-is.
type ProviderError struct {
	Provider Provider
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "provider request failed"
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

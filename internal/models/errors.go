package models

import "errors"

var (
	// ErrNotFound indicates that no product has the given id, including ids
	// that are not well-formed.
	ErrNotFound = errors.New("product not found")

	// ErrStore wraps connectivity and other unexpected store failures.
	ErrStore = errors.New("store failure")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

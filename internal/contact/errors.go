// Package contact validates contact form submissions, stores them and
// forwards them to the third-party form relay.
package contact

import "fmt"

// ValidationError carries the first failed rule as a user-facing sentence
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// RelayError represents a failed hand-off to the form relay
type RelayError struct {
	Message    string
	StatusCode int
	Cause      error
}

func (e *RelayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("relay error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("relay error: %s", e.Message)
}

func (e *RelayError) Unwrap() error {
	return e.Cause
}

// Package rendering turns a Profile into output documents: the PDF canvas the
// layout engine draws on, plus LaTeX and Markdown exports.
package rendering

import (
	"errors"
	"fmt"
)

// ErrCapabilityUnavailable is returned while the PDF capability is still
// loading or failed to initialize
var ErrCapabilityUnavailable = errors.New("resume generator is not ready")

// TemplateError represents an error parsing or executing a LaTeX template
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a failure while producing a document
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Detail is the short reason shown to end users
func (e *RenderError) Detail() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

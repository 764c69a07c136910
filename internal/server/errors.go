package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/portfolio/internal/contact"
	"github.com/jonathan/portfolio/internal/db"
	"github.com/jonathan/portfolio/internal/rendering"
)

// ErrProjectNotFound indicates no showcase project has the requested ID
type ErrProjectNotFound struct {
	ID int
}

func (e *ErrProjectNotFound) Error() string {
	return fmt.Sprintf("project not found: %d", e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound   *ErrProjectNotFound
		badRequest *ErrValidation
		invalid    *contact.ValidationError
		relay      *contact.RelayError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &badRequest), errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.As(err, &notFound), errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, rendering.ErrCapabilityUnavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &relay):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Package types provides type definitions for structured data used throughout the portfolio system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// Contact message delivery states
const (
	ContactPending   = "pending"
	ContactDelivered = "delivered"
	ContactFailed    = "failed"
)

// ContactMessage is a stored contact form submission
type ContactMessage struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RenderRecord is a log entry for one generated résumé artifact
type RenderRecord struct {
	ID        uuid.UUID `json:"id"`
	Format    string    `json:"format"`
	FileName  string    `json:"file_name"`
	Pages     int       `json:"pages"`
	SizeBytes int       `json:"size_bytes"`
	Source    string    `json:"source"` // "cli" or "http"
	CreatedAt time.Time `json:"created_at"`
}

// Package types provides type definitions for structured data used throughout the portfolio system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Violation represents a single constraint failure on a generated artifact
type Violation struct {
	Type             string   `json:"type"`
	Severity         string   `json:"severity"`
	Details          string   `json:"details"`
	AffectedSections []string `json:"affected_sections,omitempty"`
	PageCount        *int     `json:"page_count,omitempty"`
	MaxPages         *int     `json:"max_pages,omitempty"`
}

// Violations represents a collection of constraint failures
type Violations struct {
	Violations []Violation `json:"violations"`
}

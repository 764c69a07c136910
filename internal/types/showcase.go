// Package types provides type definitions for structured data used throughout the portfolio system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ShowcaseProject is a project card on the portfolio page and its modal details
type ShowcaseProject struct {
	ID          int           `json:"id" yaml:"id"`
	Title       string        `json:"title" yaml:"title"`
	Categories  []string      `json:"categories" yaml:"categories"`
	Tags        []string      `json:"tags" yaml:"tags"`
	Description string        `json:"description" yaml:"description"`
	Gradient    string        `json:"gradient,omitempty" yaml:"gradient,omitempty"`
	Links       []ProjectLink `json:"links,omitempty" yaml:"links,omitempty"`
}

// ProjectLink kinds
const (
	LinkLive   = "live"
	LinkGitHub = "github"
	LinkFigma  = "figma"
)

// ProjectLink is an outbound link shown in the project modal
type ProjectLink struct {
	Kind  string `json:"kind" yaml:"kind"`
	URL   string `json:"url" yaml:"url"`
	Label string `json:"label,omitempty" yaml:"-"`
}

// ShowcaseCatalog wraps the project cards (wrapper for the data file)
type ShowcaseCatalog struct {
	Projects []ShowcaseProject `json:"projects" yaml:"projects"`
}

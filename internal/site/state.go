package site

import (
	"github.com/jonathan/portfolio/internal/rendering"
	"github.com/jonathan/portfolio/internal/types"
)

// State is the explicit host state shared by request handlers.
// The per-visitor theme lives in a cookie; State only holds the default.
type State struct {
	defaultTheme Theme

	profile    *types.Profile
	catalog    *Catalog
	capability *rendering.Capability
}

// NewState wires the loaded data and the capability together
func NewState(profile *types.Profile, catalog *Catalog, capability *rendering.Capability, defaultTheme Theme) *State {
	if catalog == nil {
		catalog, _ = NewCatalog(nil)
	}
	return &State{
		defaultTheme: ParseTheme(string(defaultTheme)),
		profile:      profile,
		catalog:      catalog,
		capability:   capability,
	}
}

func (s *State) DefaultTheme() Theme {
	return s.defaultTheme
}

func (s *State) Profile() *types.Profile {
	return s.profile
}

func (s *State) Catalog() *Catalog {
	return s.catalog
}

func (s *State) Capability() *rendering.Capability {
	return s.capability
}

// ResumeReady reports whether the résumé button should be enabled
func (s *State) ResumeReady() bool {
	return s.capability == nil || s.capability.Ready()
}

package site

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonathan/portfolio/internal/types"
)

// FilterAll selects every project
const FilterAll = "all"

var linkLabels = map[string]string{
	types.LinkLive:   "View Live Site",
	types.LinkGitHub: "View on GitHub",
	types.LinkFigma:  "View Design",
}

// words kept upper- or mixed-case in category labels
var acronyms = map[string]string{
	"ai":  "AI",
	"iot": "IoT",
	"ml":  "ML",
	"ui":  "UI",
	"ux":  "UX",
	"api": "API",
}

// Catalog is the read-only set of showcase projects in display order
type Catalog struct {
	projects []types.ShowcaseProject
	byID     map[int]int
}

// NewCatalog indexes projects by ID. IDs must be unique.
func NewCatalog(projects []types.ShowcaseProject) (*Catalog, error) {
	c := &Catalog{
		projects: projects,
		byID:     make(map[int]int, len(projects)),
	}
	for i, p := range projects {
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate project id %d", p.ID)
		}
		c.byID[p.ID] = i
	}
	return c, nil
}

// All returns every project in display order
func (c *Catalog) All() []types.ShowcaseProject {
	return c.projects
}

// Filter returns the projects tagged with category; "all" or "" returns everything
func (c *Catalog) Filter(category string) []types.ShowcaseProject {
	if category == "" || category == FilterAll {
		return c.projects
	}
	var out []types.ShowcaseProject
	for _, p := range c.projects {
		for _, pc := range p.Categories {
			if pc == category {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// Lookup finds a project by ID for the detail modal
func (c *Catalog) Lookup(id int) (types.ShowcaseProject, bool) {
	i, ok := c.byID[id]
	if !ok {
		return types.ShowcaseProject{}, false
	}
	return c.projects[i], true
}

// Categories returns the distinct categories in first-seen order
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range c.projects {
		for _, pc := range p.Categories {
			if !seen[pc] {
				seen[pc] = true
				out = append(out, pc)
			}
		}
	}
	return out
}

// VisibleLinks drops placeholder links and attaches the button label
func VisibleLinks(p types.ShowcaseProject) []types.ProjectLink {
	var out []types.ProjectLink
	for _, l := range p.Links {
		if l.URL == "" || l.URL == "#" {
			continue
		}
		label, ok := linkLabels[l.Kind]
		if !ok {
			continue
		}
		l.Label = label
		out = append(out, l)
	}
	return out
}

// CategoryLabel turns a category slug like "web-dev" into "Web Dev"
func CategoryLabel(category string) string {
	if category == FilterAll {
		return "All Projects"
	}
	caser := cases.Title(language.English)
	words := strings.FieldsFunc(category, func(r rune) bool { return r == '-' || r == '_' || r == ' ' })
	for i, w := range words {
		if a, ok := acronyms[strings.ToLower(w)]; ok {
			words[i] = a
			continue
		}
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}

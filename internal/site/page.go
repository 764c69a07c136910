package site

import (
	_ "embed"
	"html/template"
	"io"
	"strings"

	"github.com/jonathan/portfolio/internal/types"
)

//go:embed templates/index.html
var indexTemplate string

var pageTemplate = template.Must(template.New("index").Parse(indexTemplate))

// FilterButton is one category button above the project grid
type FilterButton struct {
	Value  string
	Label  string
	Active bool
}

// ProjectCard is a grid entry; Category is the space-separated data attribute
type ProjectCard struct {
	ID          int
	Title       string
	Description string
	Gradient    string
	Category    string
	Tags        []string
}

// PageData is everything the index template needs
type PageData struct {
	Theme       Theme
	Profile     *types.Profile
	Filters     []FilterButton
	Projects    []ProjectCard
	ResumeReady bool
	Notice      *Notice
}

// Notice is the status line under the contact form
type Notice struct {
	Kind string // "success" or "error"
	Text string
}

// Page assembles the page for a visitor's theme and the active filter
func (s *State) Page(theme Theme, filter string) PageData {
	if filter == "" {
		filter = FilterAll
	}

	data := PageData{
		Theme:       theme,
		Profile:     s.profile,
		ResumeReady: s.ResumeReady(),
	}
	if data.Profile == nil {
		data.Profile = &types.Profile{}
	}

	for _, c := range append([]string{FilterAll}, s.catalog.Categories()...) {
		data.Filters = append(data.Filters, FilterButton{
			Value:  c,
			Label:  CategoryLabel(c),
			Active: c == filter,
		})
	}

	for _, p := range s.catalog.Filter(filter) {
		data.Projects = append(data.Projects, ProjectCard{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Gradient:    p.Gradient,
			Category:    strings.Join(p.Categories, " "),
			Tags:        p.Tags,
		})
	}

	return data
}

// RenderPage writes the single-page site
func RenderPage(w io.Writer, data PageData) error {
	return pageTemplate.Execute(w, data)
}

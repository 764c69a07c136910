package rendering

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/jonathan/portfolio/internal/types"
)

//go:embed templates/harvard.tex
var defaultTemplate string

// TemplateData is the escaped view of a Profile passed to the LaTeX template
type TemplateData struct {
	Name       string
	Contact    []string
	Location   string
	Summary    string
	Education  []EducationSection
	Experience []ExperienceSection
	Projects   []ProjectSection
	Skills     []SkillSection
}

// EducationSection is one escaped education entry
type EducationSection struct {
	Institution string
	Degree      string
	Dates       string
	Details     string
}

// ExperienceSection is one escaped role with its bullets
type ExperienceSection struct {
	Title            string
	Organization     string
	Dates            string
	Responsibilities []string
}

// ProjectSection is one escaped project
type ProjectSection struct {
	Name         string
	Description  string
	Technologies string
}

// SkillSection is one escaped skill group
type SkillSection struct {
	Category string
	Skills   []string
}

// RenderLaTeX renders the profile through a LaTeX template.
// An empty templatePath selects the embedded single-column template.
func RenderLaTeX(p *types.Profile, templatePath string) (string, error) {
	if p == nil {
		return "", &RenderError{Message: "profile is nil"}
	}

	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return "", err
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, buildTemplateData(p)); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}

	return result.String(), nil
}

// parseTemplate reads and parses a LaTeX template file, or the embedded default
func parseTemplate(templatePath string) (*template.Template, error) {
	content := defaultTemplate
	if templatePath != "" {
		raw, err := os.ReadFile(templatePath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, &TemplateError{
					Message: fmt.Sprintf("template file not found: %s", templatePath),
					Cause:   err,
				}
			}
			return nil, &TemplateError{
				Message: fmt.Sprintf("failed to read template file: %s", templatePath),
				Cause:   err,
			}
		}
		content = string(raw)
	}

	tmpl, err := template.New("resume").Funcs(template.FuncMap{
		"escape": EscapeLaTeX,
		"join":   strings.Join,
	}).Parse(content)
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}

	return tmpl, nil
}

// buildTemplateData escapes every field once so templates can print them verbatim
func buildTemplateData(p *types.Profile) *TemplateData {
	data := &TemplateData{
		Name:     EscapeLaTeX(strings.ToUpper(p.Name)),
		Location: EscapeLaTeX(p.Contact.Location),
		Summary:  EscapeLaTeX(p.Summary),
	}

	for _, part := range []string{p.Contact.Email, p.Contact.CodeHost, p.Contact.Social} {
		if part != "" {
			data.Contact = append(data.Contact, EscapeLaTeX(part))
		}
	}

	for _, e := range p.Education {
		data.Education = append(data.Education, EducationSection{
			Institution: EscapeLaTeX(e.Institution),
			Degree:      EscapeLaTeX(e.Degree),
			Dates:       EscapeLaTeX(e.Dates),
			Details:     EscapeLaTeX(e.Details),
		})
	}

	for _, e := range p.Experience {
		data.Experience = append(data.Experience, ExperienceSection{
			Title:            EscapeLaTeX(e.Title),
			Organization:     EscapeLaTeX(e.Organization),
			Dates:            EscapeLaTeX(e.Dates),
			Responsibilities: escapeAll(e.Responsibilities),
		})
	}

	for _, pr := range p.Projects {
		data.Projects = append(data.Projects, ProjectSection{
			Name:         EscapeLaTeX(pr.Name),
			Description:  EscapeLaTeX(pr.Description),
			Technologies: EscapeLaTeX(pr.Technologies),
		})
	}

	for _, g := range p.Skills {
		data.Skills = append(data.Skills, SkillSection{
			Category: EscapeLaTeX(g.Category),
			Skills:   escapeAll(g.Skills),
		})
	}

	return data
}

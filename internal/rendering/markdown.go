package rendering

import (
	"io"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/jonathan/portfolio/internal/layout"
	"github.com/jonathan/portfolio/internal/types"
)

// RenderMarkdown writes the profile as Markdown with the same section order as the PDF
func RenderMarkdown(w io.Writer, p *types.Profile) error {
	if p == nil {
		return &RenderError{Message: "profile is nil"}
	}

	md := markdown.NewMarkdown(w)

	md.H1(strings.ToUpper(p.Name))
	md.PlainText("")
	if line := joinNonEmpty(" | ", p.Contact.Email, p.Contact.CodeHost, p.Contact.Social); line != "" {
		md.PlainText(line)
		md.PlainText("")
	}
	if p.Contact.Location != "" {
		md.PlainText(p.Contact.Location)
		md.PlainText("")
	}

	if p.Summary != "" {
		md.H2(layout.TitleSummary)
		md.PlainText("")
		md.PlainText(p.Summary)
		md.PlainText("")
	}

	if len(p.Education) > 0 {
		md.H2(layout.TitleEducation)
		md.PlainText("")
		for _, e := range p.Education {
			md.H3(e.Institution)
			md.PlainText("")
			md.PlainText(joinNonEmpty(" | ", e.Degree, e.Dates))
			if e.Details != "" {
				md.PlainText("")
				md.PlainText("*" + e.Details + "*")
			}
			md.PlainText("")
		}
	}

	if len(p.Experience) > 0 {
		md.H2(layout.TitleExperience)
		md.PlainText("")
		for _, e := range p.Experience {
			md.H3(e.Title)
			md.PlainText("")
			md.PlainText(joinNonEmpty(" | ", e.Organization, e.Dates))
			md.PlainText("")
			if len(e.Responsibilities) > 0 {
				md.BulletList(e.Responsibilities...)
				md.PlainText("")
			}
		}
	}

	if len(p.Projects) > 0 {
		md.H2(layout.TitleProjects)
		md.PlainText("")
		for _, pr := range p.Projects {
			md.H3(pr.Name)
			md.PlainText("")
			if pr.Description != "" {
				md.PlainText(pr.Description)
				md.PlainText("")
			}
			if pr.Technologies != "" {
				md.PlainTextf("*Technologies: %s*", pr.Technologies)
				md.PlainText("")
			}
		}
	}

	if len(p.Skills) > 0 {
		md.H2(layout.TitleSkills)
		md.PlainText("")
		rows := make([][]string, 0, len(p.Skills))
		for _, g := range p.Skills {
			rows = append(rows, []string{g.Category, strings.Join(g.Skills, ", ")})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Category", "Skills"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*%s*", layout.Caption)

	if err := md.Build(); err != nil {
		return &RenderError{Message: "failed to write markdown", Cause: err}
	}
	return nil
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

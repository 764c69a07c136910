// Package layout places a résumé Profile onto fixed-size pages with a greedy
// cursor-and-page-break algorithm.
package layout

import (
	"strings"

	"github.com/jonathan/portfolio/internal/types"
)

// BlockKind identifies the formatting rule a placed text run came from
type BlockKind string

// Block kinds in the order they first appear on a page
const (
	KindName          BlockKind = "name"
	KindContact       BlockKind = "contact"
	KindRule          BlockKind = "rule"
	KindHeading       BlockKind = "heading"
	KindSummary       BlockKind = "summary"
	KindInstitution   BlockKind = "institution"
	KindDegree        BlockKind = "degree"
	KindDetails       BlockKind = "details"
	KindRoleTitle     BlockKind = "role_title"
	KindOrganization  BlockKind = "organization"
	KindDates         BlockKind = "dates"
	KindBullet        BlockKind = "bullet"
	KindProjectName   BlockKind = "project_name"
	KindProjectDesc   BlockKind = "project_description"
	KindTechnologies  BlockKind = "technologies"
	KindSkillCategory BlockKind = "skill_category"
	KindSkillList     BlockKind = "skill_list"
	KindCaption       BlockKind = "caption"
)

// Section titles, in render order
const (
	TitleSummary    = "PROFESSIONAL SUMMARY"
	TitleEducation  = "EDUCATION"
	TitleExperience = "PROFESSIONAL EXPERIENCE"
	TitleProjects   = "SELECTED PROJECTS"
	TitleSkills     = "TECHNICAL SKILLS"

	// Caption is pinned to Geometry.CaptionY on the final page
	Caption = "References available upon request"
)

// Font sizes per block type
const (
	sizeName    = 18
	sizeContact = 9
	sizeHeading = 11
	sizeBody    = 10
	sizeTags    = 9
	sizeCaption = 8
)

// Vertical advances and spacing
const (
	nameAdvance      = 8
	contactAdvance   = 4
	headerGap        = 6
	ruleAdvance      = 8
	ruleWidth        = 0.5
	headingAdvance   = 6
	summarySpacing   = 8
	roleAdvance      = 6 // organization line of an experience entry
	educationSpacing = 3
	listSpacing      = 3
	projectSpacing   = 2
	skillSpacing     = 3
	bulletIndent     = 2
	wrapInset        = 5
	bulletPrefix     = "• "
	contactSeparator = " | "
)

// Placement is one text run (or the rule) as it was put on the canvas
type Placement struct {
	Block int // placements of the same block share this index
	Page  int
	Kind  BlockKind
	X     float64
	Y     float64
	Text  string
}

// Result summarizes one Render call
type Result struct {
	Pages      int
	Cursor     float64 // cursor position after the last flowed block
	Placements []Placement
}

// Engine lays out profiles with a fixed Geometry. It holds no per-call state,
// so one Engine may serve concurrent Render calls on distinct canvases.
type Engine struct {
	geom Geometry
}

// New creates an Engine for the given page geometry
func New(geom Geometry) *Engine {
	return &Engine{geom: geom}
}

// Geometry returns the page geometry the engine lays out against
func (e *Engine) Geometry() Geometry {
	return e.geom
}

// Render places every section of p onto c, starting a fresh page.
// It does not validate p: empty optional fields and empty sections are skipped.
func (e *Engine) Render(c Canvas, p *types.Profile) Result {
	r := &run{c: c, g: e.geom}
	r.newPage()

	r.header(p)
	r.summary(p.Summary)
	r.education(p.Education)
	r.experience(p.Experience)
	r.projects(p.Projects)
	r.skills(p.Skills)
	r.caption()

	return Result{Pages: r.page, Cursor: r.y, Placements: r.placed}
}

// run is the state of a single Render invocation
type run struct {
	c      Canvas
	g      Geometry
	y      float64
	page   int
	block  int
	kept   bool // the next block was already measured together with the previous one
	placed []Placement
}

func (r *run) newPage() {
	r.c.AddPage()
	r.page++
	r.y = r.g.Top
}

// ensure starts a new page when a block of height h would cross the bottom boundary.
// A fresh page is never abandoned: an oversized block is placed and overflows.
func (r *run) ensure(h float64) {
	if r.kept {
		r.kept = false
		return
	}
	if r.y+h > r.g.Bottom && r.y > r.g.Top {
		r.newPage()
	}
}

func (r *run) font(style string, size float64) {
	r.c.SetFont(r.g.FontFamily, style, size)
}

func (r *run) nextBlock() {
	r.block++
}

func (r *run) place(kind BlockKind, x, y float64, text string) {
	r.c.Text(x, y, text)
	r.placed = append(r.placed, Placement{
		Block: r.block,
		Page:  r.page,
		Kind:  kind,
		X:     x,
		Y:     y,
		Text:  text,
	})
}

func (r *run) centered(kind BlockKind, y float64, text string) {
	w := r.c.StringWidth(text)
	r.place(kind, r.g.PageWidth/2-w/2, y, text)
}

func (r *run) rightAligned(kind BlockKind, text string) {
	if text == "" {
		return
	}
	w := r.c.StringWidth(text)
	r.place(kind, r.g.PageWidth-r.g.Margin-w, r.y, text)
}

func (r *run) lines(kind BlockKind, x float64, lines []string) {
	for i, line := range lines {
		r.place(kind, x, r.y+float64(i)*r.g.LineHeight, line)
	}
}

// wrapped splits text at the given font and inset from the content width
func (r *run) wrapped(text, style string, size, inset float64) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	r.font(style, size)
	return r.c.SplitText(text, r.g.ContentWidth()-inset)
}

func (r *run) linesHeight(n int) float64 {
	return float64(n) * r.g.LineHeight
}

// heading places a section title, keeping it on the same page as the
// first block that follows it (next is that block's height).
func (r *run) heading(title string, centered bool, next float64) {
	r.nextBlock()
	r.ensure(headingAdvance + next)
	r.font(StyleBold, sizeHeading)
	if centered {
		r.centered(KindHeading, r.y, title)
	} else {
		r.place(KindHeading, r.g.Margin, r.y, title)
	}
	r.y += headingAdvance
	r.kept = true
}

func (r *run) header(p *types.Profile) {
	r.nextBlock()
	r.ensure(nameAdvance)
	r.font(StyleBold, sizeName)
	r.centered(KindName, r.y, strings.ToUpper(p.Name))
	r.y += nameAdvance

	r.font(StyleNormal, sizeContact)
	if line := contactLine(p.Contact); line != "" {
		r.ensure(contactAdvance)
		r.centered(KindContact, r.y, line)
		r.y += contactAdvance
	}
	if p.Contact.Location != "" {
		r.ensure(contactAdvance)
		r.centered(KindContact, r.y, p.Contact.Location)
		r.y += contactAdvance
	}
	r.y += headerGap

	r.c.SetLineWidth(ruleWidth)
	r.c.Line(r.g.Margin, r.y, r.g.PageWidth-r.g.Margin, r.y)
	r.placed = append(r.placed, Placement{Block: r.block, Page: r.page, Kind: KindRule, X: r.g.Margin, Y: r.y})
	r.y += ruleAdvance
}

func contactLine(c types.Contact) string {
	parts := make([]string, 0, 3)
	for _, s := range []string{c.Email, c.CodeHost, c.Social} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, contactSeparator)
}

func (r *run) summary(text string) {
	lines := r.wrapped(text, StyleNormal, sizeBody, 0)
	if len(lines) == 0 {
		return
	}
	h := r.linesHeight(len(lines))

	r.heading(TitleSummary, true, h)

	// the paragraph is one block; it is never split across pages
	r.nextBlock()
	r.ensure(h)
	r.font(StyleNormal, sizeBody)
	r.lines(KindSummary, r.g.Margin, lines)
	r.y += h + summarySpacing
}

func (r *run) educationHeight(e types.EducationEntry) float64 {
	h := 2 * r.g.LineHeight
	if e.Details != "" {
		h += r.g.LineHeight
	}
	return h
}

func (r *run) education(entries []types.EducationEntry) {
	if len(entries) == 0 {
		return
	}
	r.heading(TitleEducation, false, r.educationHeight(entries[0]))

	for _, e := range entries {
		r.nextBlock()
		r.ensure(r.educationHeight(e))

		r.font(StyleBold, sizeBody)
		r.place(KindInstitution, r.g.Margin, r.y, e.Institution)
		r.font(StyleNormal, sizeBody)
		r.rightAligned(KindDates, e.Dates)
		r.y += r.g.LineHeight

		r.font(StyleItalic, sizeBody)
		r.place(KindDegree, r.g.Margin, r.y, e.Degree)
		r.y += r.g.LineHeight

		if e.Details != "" {
			r.font(StyleNormal, sizeBody)
			r.place(KindDetails, r.g.Margin, r.y, e.Details)
			r.y += r.g.LineHeight
		}
		r.y += educationSpacing
	}
}

// bulletLines wraps one responsibility with its bullet prefix
func (r *run) bulletLines(text string) []string {
	return r.wrapped(bulletPrefix+text, StyleNormal, sizeBody, wrapInset)
}

// roleHeight is the title/dates row plus the organization row
func (r *run) roleHeight() float64 {
	return r.g.LineHeight + roleAdvance
}

// roleKeep is the role header together with its first bullet
func (r *run) roleKeep(e types.ExperienceEntry) float64 {
	h := r.roleHeight()
	if len(e.Responsibilities) > 0 {
		h += r.linesHeight(len(r.bulletLines(e.Responsibilities[0])))
	}
	return h
}

func (r *run) experience(entries []types.ExperienceEntry) {
	if len(entries) == 0 {
		return
	}
	r.heading(TitleExperience, false, r.roleKeep(entries[0]))

	for _, e := range entries {
		r.nextBlock()
		r.ensure(r.roleKeep(e))

		r.font(StyleBold, sizeBody)
		r.place(KindRoleTitle, r.g.Margin, r.y, e.Title)
		r.font(StyleNormal, sizeBody)
		r.rightAligned(KindDates, e.Dates)
		r.y += r.g.LineHeight

		r.font(StyleItalic, sizeBody)
		r.place(KindOrganization, r.g.Margin, r.y, e.Organization)
		r.y += roleAdvance
		r.kept = len(e.Responsibilities) > 0

		for _, resp := range e.Responsibilities {
			lines := r.bulletLines(resp)
			if len(lines) == 0 {
				continue
			}
			h := r.linesHeight(len(lines))

			r.nextBlock()
			r.ensure(h)
			r.font(StyleNormal, sizeBody)
			r.lines(KindBullet, r.g.Margin+bulletIndent, lines)
			r.y += h
		}
		r.y += listSpacing
	}
}

func (r *run) projectHeight(p types.ProjectEntry) float64 {
	h := r.g.LineHeight + r.linesHeight(len(r.wrapped(p.Description, StyleNormal, sizeBody, wrapInset)))
	if p.Technologies != "" {
		h += r.g.LineHeight
	}
	return h
}

func (r *run) projects(entries []types.ProjectEntry) {
	if len(entries) == 0 {
		return
	}
	r.heading(TitleProjects, false, r.projectHeight(entries[0]))

	for _, p := range entries {
		desc := r.wrapped(p.Description, StyleNormal, sizeBody, wrapInset)

		r.nextBlock()
		r.ensure(r.projectHeight(p))

		r.font(StyleBold, sizeBody)
		r.place(KindProjectName, r.g.Margin, r.y, p.Name)
		r.y += r.g.LineHeight

		r.font(StyleNormal, sizeBody)
		r.lines(KindProjectDesc, r.g.Margin+bulletIndent, desc)
		r.y += r.linesHeight(len(desc))

		if p.Technologies != "" {
			r.font(StyleItalic, sizeTags)
			r.place(KindTechnologies, r.g.Margin+bulletIndent, r.y, "Technologies: "+p.Technologies)
			r.y += r.g.LineHeight
		}
		r.y += projectSpacing
	}
}

func (r *run) skillLines(g types.SkillGroup) []string {
	return r.wrapped(strings.Join(g.Skills, ", "), StyleNormal, sizeBody, wrapInset)
}

func (r *run) skillHeight(g types.SkillGroup) float64 {
	return r.g.LineHeight + r.linesHeight(len(r.skillLines(g)))
}

func (r *run) skills(groups types.SkillGroups) {
	if len(groups) == 0 {
		return
	}
	r.heading(TitleSkills, false, r.skillHeight(groups[0]))

	for _, g := range groups {
		lines := r.skillLines(g)

		r.nextBlock()
		r.ensure(r.skillHeight(g))

		r.font(StyleBold, sizeBody)
		r.place(KindSkillCategory, r.g.Margin, r.y, g.Category+":")
		r.y += r.g.LineHeight

		r.font(StyleNormal, sizeBody)
		r.lines(KindSkillList, r.g.Margin+bulletIndent, lines)
		r.y += r.linesHeight(len(lines)) + skillSpacing
	}
}

// caption is outside the flow: fixed row, final page, cursor untouched
func (r *run) caption() {
	r.nextBlock()
	r.font(StyleItalic, sizeCaption)
	r.centered(KindCaption, r.g.CaptionY, Caption)
}

package layout

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jonathan/portfolio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCanvas measures every rune as size*0.2 units and records draw calls
type fakeCanvas struct {
	size      float64
	style     string
	pages     int
	lineWidth float64
	rules     int
	texts     []string
}

func (f *fakeCanvas) SetFont(_, style string, size float64) {
	f.style = style
	f.size = size
}

func (f *fakeCanvas) StringWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * f.size * 0.2
}

func (f *fakeCanvas) SplitText(s string, width float64) []string {
	return WrapText(s, width, f.StringWidth)
}

func (f *fakeCanvas) Text(_, _ float64, s string) { f.texts = append(f.texts, s) }
func (f *fakeCanvas) SetLineWidth(w float64)      { f.lineWidth = w }
func (f *fakeCanvas) Line(_, _, _, _ float64)     { f.rules++ }
func (f *fakeCanvas) AddPage()                    { f.pages++ }

func sampleProfile() *types.Profile {
	return &types.Profile{
		Name: "Alex Rivera",
		Contact: types.Contact{
			Email:    "alex@example.com",
			CodeHost: "github.com/alexr",
			Social:   "@alexr",
			Location: "Available for Remote Work",
		},
		Summary: "Creative Designer and Full-Stack Developer with expertise in UI/UX design, web development, and IoT solutions. " +
			"Passionate about crafting beautiful digital experiences through thoughtful design and modern technology.",
		Education: []types.EducationEntry{{
			Institution: "State University",
			Degree:      "Bachelor of Science in Computer Science",
			Dates:       "2020 - 2024",
			Details:     "Focus on Software Engineering and Human-Computer Interaction",
		}},
		Experience: []types.ExperienceEntry{{
			Title:        "Full-Stack Developer & UI/UX Designer",
			Organization: "Freelance",
			Dates:        "2022 - Present",
			Responsibilities: []string{
				"Designed and developed responsive web applications using modern JavaScript frameworks",
				"Created intuitive user interfaces with focus on accessibility and user experience",
				"Collaborated with clients to translate business requirements into technical solutions",
				"Implemented full-stack solutions using Node.js, Express, and various databases",
			},
		}},
		Projects: []types.ProjectEntry{
			{Name: "Smart Purifier", Description: "AI-powered air purification system with predictive algorithms", Technologies: "Python, Arduino, IoT"},
			{Name: "Learning Management System", Description: "Full-stack web application for online learning", Technologies: "Node.js, Express"},
			{Name: "Smart Door App", Description: "Mobile interface for an IoT door system", Technologies: "Figma, Mobile"},
		},
		Skills: types.SkillGroups{
			{Category: "Programming Languages", Skills: []string{"Java", "JavaScript", "Python", "HTML/CSS"}},
			{Category: "Frameworks & Tools", Skills: []string{"Node.js", "Express", "Laravel", "Flutter"}},
			{Category: "Design & Creative", Skills: []string{"Figma", "Blender", "UI/UX Design", "3D Design"}},
			{Category: "Technical", Skills: []string{"Full-Stack Development", "Machine Learning", "IoT Development", "Responsive Design"}},
		},
	}
}

func placementsOf(res Result, kind BlockKind) []Placement {
	var out []Placement
	for _, p := range res.Placements {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}

func TestRender_SampleProfileProducesPages(t *testing.T) {
	c := &fakeCanvas{}
	res := New(DefaultGeometry()).Render(c, sampleProfile())

	assert.GreaterOrEqual(t, res.Pages, 1)
	assert.Equal(t, c.pages, res.Pages)
	assert.Equal(t, 1, c.rules)
	assert.Equal(t, ruleWidth, c.lineWidth)
	assert.Len(t, c.texts, len(res.Placements)-1) // the rule is recorded but is not text

	names := placementsOf(res, KindName)
	require.Len(t, names, 1)
	assert.Equal(t, "ALEX RIVERA", names[0].Text)
}

func TestRender_Idempotent(t *testing.T) {
	engine := New(DefaultGeometry())
	p := sampleProfile()

	first := engine.Render(&fakeCanvas{}, p)
	second := engine.Render(&fakeCanvas{}, p)

	assert.Equal(t, first, second)
}

func TestRender_DoesNotMutateProfile(t *testing.T) {
	p := sampleProfile()
	New(DefaultGeometry()).Render(&fakeCanvas{}, p)
	assert.Equal(t, sampleProfile(), p)
}

func TestRender_SectionOrder(t *testing.T) {
	res := New(DefaultGeometry()).Render(&fakeCanvas{}, sampleProfile())

	var titles []string
	for _, p := range placementsOf(res, KindHeading) {
		titles = append(titles, p.Text)
	}
	assert.Equal(t, []string{TitleSummary, TitleEducation, TitleExperience, TitleProjects, TitleSkills}, titles)
}

func TestRender_EmptySectionsAreSkipped(t *testing.T) {
	p := &types.Profile{Name: "Only Name"}
	res := New(DefaultGeometry()).Render(&fakeCanvas{}, p)

	assert.Equal(t, 1, res.Pages)
	assert.Empty(t, placementsOf(res, KindHeading))
	assert.Empty(t, placementsOf(res, KindContact))
	assert.Len(t, placementsOf(res, KindCaption), 1)
}

func TestRender_CenteredBlocks(t *testing.T) {
	geom := DefaultGeometry()
	c := &fakeCanvas{}
	res := New(geom).Render(c, sampleProfile())

	name := placementsOf(res, KindName)[0]
	width := float64(utf8.RuneCountInString(name.Text)) * sizeName * 0.2
	assert.InDelta(t, geom.PageWidth/2-width/2, name.X, 1e-9)

	summaryTitle := placementsOf(res, KindHeading)[0]
	width = float64(utf8.RuneCountInString(summaryTitle.Text)) * sizeHeading * 0.2
	assert.InDelta(t, geom.PageWidth/2-width/2, summaryTitle.X, 1e-9)

	education := placementsOf(res, KindHeading)[1]
	assert.Equal(t, geom.Margin, education.X)
}

func TestRender_DatesAreRightAligned(t *testing.T) {
	geom := DefaultGeometry()
	res := New(geom).Render(&fakeCanvas{}, sampleProfile())

	for _, d := range placementsOf(res, KindDates) {
		width := float64(utf8.RuneCountInString(d.Text)) * sizeBody * 0.2
		assert.InDelta(t, geom.PageWidth-geom.Margin, d.X+width, 1e-9)
	}
}

func TestRender_CaptionOnFinalPageAtFixedRow(t *testing.T) {
	p := sampleProfile()
	for i := 0; i < 10; i++ {
		p.Experience = append(p.Experience, p.Experience[0])
	}
	geom := DefaultGeometry()
	res := New(geom).Render(&fakeCanvas{}, p)
	require.Greater(t, res.Pages, 1)

	captions := placementsOf(res, KindCaption)
	require.Len(t, captions, 1)
	assert.Equal(t, res.Pages, captions[0].Page)
	assert.Equal(t, geom.CaptionY, captions[0].Y)
	assert.Equal(t, Caption, captions[0].Text)
}

func TestRender_PageBreakBoundary(t *testing.T) {
	base := &types.Profile{
		Name:   "Boundary Case",
		Skills: types.SkillGroups{{Category: "First", Skills: []string{"a"}}},
	}
	withExtra := *base
	withExtra.Skills = append(types.SkillGroups{}, base.Skills...)
	withExtra.Skills = append(withExtra.Skills, types.SkillGroup{Category: "Second", Skills: []string{"b"}})

	geom := DefaultGeometry()
	baseRes := New(geom).Render(&fakeCanvas{}, base)
	require.Equal(t, 1, baseRes.Pages)

	// the extra category is one label row plus one wrapped row
	required := 2 * geom.LineHeight

	exact := geom
	exact.Bottom = baseRes.Cursor + required
	res := New(exact).Render(&fakeCanvas{}, &withExtra)
	assert.Equal(t, 1, res.Pages, "block ending exactly on the boundary stays on the page")

	over := geom
	over.Bottom = baseRes.Cursor + required - 1
	res = New(over).Render(&fakeCanvas{}, &withExtra)
	assert.Equal(t, 2, res.Pages, "block one unit too tall moves to a new page")

	second := placementsOf(res, KindSkillCategory)[1]
	assert.Equal(t, 2, second.Page)
	assert.Equal(t, over.Top, second.Y)
}

func TestRender_SkillGroupsKeepInputOrder(t *testing.T) {
	p := sampleProfile()
	p.Skills = types.SkillGroups{
		{Category: "Zulu", Skills: []string{"z"}},
		{Category: "Alpha", Skills: []string{"a"}},
		{Category: "Mike", Skills: []string{"m"}},
	}
	res := New(DefaultGeometry()).Render(&fakeCanvas{}, p)

	var got []string
	for _, pl := range placementsOf(res, KindSkillCategory) {
		got = append(got, pl.Text)
	}
	assert.Equal(t, []string{"Zulu:", "Alpha:", "Mike:"}, got)
}

func TestRender_MissingEducationDetailsLeavesNoGap(t *testing.T) {
	geom := DefaultGeometry()
	p := &types.Profile{
		Name: "Edu Case",
		Education: []types.EducationEntry{
			{Institution: "First", Degree: "BSc", Dates: "2018"},
			{Institution: "Second", Degree: "MSc", Dates: "2020", Details: "Thesis"},
			{Institution: "Third", Degree: "PhD", Dates: "2024"},
		},
	}
	res := New(geom).Render(&fakeCanvas{}, p)

	inst := placementsOf(res, KindInstitution)
	require.Len(t, inst, 3)
	assert.Equal(t, 2*geom.LineHeight+educationSpacing, inst[1].Y-inst[0].Y)
	assert.Equal(t, 3*geom.LineHeight+educationSpacing, inst[2].Y-inst[1].Y)

	details := placementsOf(res, KindDetails)
	require.Len(t, details, 1)
	assert.Equal(t, "Thesis", details[0].Text)
}

func TestRender_ContactLineSkipsEmptyParts(t *testing.T) {
	p := &types.Profile{
		Name:    "Contact Case",
		Contact: types.Contact{Email: "a@b.co", Social: "@ab"},
	}
	res := New(DefaultGeometry()).Render(&fakeCanvas{}, p)

	contacts := placementsOf(res, KindContact)
	require.Len(t, contacts, 1)
	assert.Equal(t, "a@b.co | @ab", contacts[0].Text)
}

func TestRender_OversizedBlockIsPlacedAnyway(t *testing.T) {
	p := &types.Profile{
		Name: "Overflow",
		Experience: []types.ExperienceEntry{{
			Title:            "Role",
			Responsibilities: []string{strings.Repeat("word ", 2000)},
		}},
	}
	res := New(DefaultGeometry()).Render(&fakeCanvas{}, p)

	bullets := placementsOf(res, KindBullet)
	require.NotEmpty(t, bullets)
	assert.Greater(t, bullets[len(bullets)-1].Y, DefaultGeometry().PageHeight)
}

func TestRender_OversizedBlockLeavesNoBlankPage(t *testing.T) {
	geom := DefaultGeometry()
	p := &types.Profile{
		Name: "Overflow",
		Experience: []types.ExperienceEntry{{
			Title: "Role",
			Responsibilities: []string{
				"Short first bullet",
				strings.Repeat("word ", 2000),
				"After the long one",
			},
		}},
	}
	c := &fakeCanvas{}
	res := New(geom).Render(c, p)

	bullets := placementsOf(res, KindBullet)
	require.NotEmpty(t, bullets)
	huge := bullets[1]
	assert.Equal(t, geom.Top, huge.Y, "the oversized bullet starts a fresh page")

	last := bullets[len(bullets)-1]
	assert.Equal(t, "• After the long one", last.Text)
	assert.Equal(t, huge.Page+1, last.Page)
	assert.Equal(t, geom.Top, last.Y)

	flowed := map[int]bool{}
	for _, pl := range res.Placements {
		if pl.Kind != KindCaption {
			flowed[pl.Page] = true
		}
	}
	assert.Equal(t, c.pages, res.Pages)
	for page := 1; page <= res.Pages; page++ {
		assert.True(t, flowed[page], "page %d has no flowed content", page)
	}
}

// estimateHeight sums the stated line-height and spacing rules independently of the engine
func estimateHeight(g Geometry, p *types.Profile) float64 {
	c := &fakeCanvas{}
	wrapCount := func(s string, inset float64) float64 {
		c.SetFont(g.FontFamily, StyleNormal, sizeBody)
		return float64(len(c.SplitText(s, g.ContentWidth()-inset)))
	}

	h := g.Top + nameAdvance + 2*contactAdvance + headerGap + ruleAdvance
	h += headingAdvance + wrapCount(p.Summary, 0)*g.LineHeight + summarySpacing

	h += headingAdvance
	for _, e := range p.Education {
		h += 2 * g.LineHeight
		if e.Details != "" {
			h += g.LineHeight
		}
		h += educationSpacing
	}

	h += headingAdvance
	for _, e := range p.Experience {
		h += g.LineHeight + roleAdvance
		for _, b := range e.Responsibilities {
			h += wrapCount(bulletPrefix+b, wrapInset) * g.LineHeight
		}
		h += listSpacing
	}

	h += headingAdvance
	for _, pr := range p.Projects {
		h += g.LineHeight + wrapCount(pr.Description, wrapInset)*g.LineHeight + g.LineHeight + projectSpacing
	}

	h += headingAdvance
	for _, s := range p.Skills {
		h += g.LineHeight + wrapCount(strings.Join(s.Skills, ", "), wrapInset)*g.LineHeight + skillSpacing
	}
	return h - skillSpacing
}

func TestRender_EndToEndPageCount(t *testing.T) {
	geom := DefaultGeometry()
	p := sampleProfile()
	require.Len(t, p.Experience[0].Responsibilities, 4)
	require.Len(t, p.Projects, 3)
	require.Len(t, p.Skills, 4)

	res := New(geom).Render(&fakeCanvas{}, p)
	estimate := estimateHeight(geom, p)

	if estimate <= geom.Bottom {
		assert.Equal(t, 1, res.Pages)
		return
	}
	assert.Equal(t, 2, res.Pages)
	assertBreaksOnBlockBoundaries(t, res)
}

func TestRender_OverflowBreaksBetweenBullets(t *testing.T) {
	p := sampleProfile()
	for i := 0; i < 6; i++ {
		p.Experience[0].Responsibilities = append(p.Experience[0].Responsibilities, p.Experience[0].Responsibilities...)
	}
	res := New(DefaultGeometry()).Render(&fakeCanvas{}, p)

	require.Greater(t, res.Pages, 1)
	assertBreaksOnBlockBoundaries(t, res)

	// the first placement of every page after the first starts a block at the top row
	seen := map[int]bool{1: true}
	for _, pl := range res.Placements {
		if seen[pl.Page] || pl.Kind == KindCaption {
			continue
		}
		seen[pl.Page] = true
		assert.Equal(t, DefaultGeometry().Top, pl.Y)
	}
}

func assertBreaksOnBlockBoundaries(t *testing.T, res Result) {
	t.Helper()
	pageOf := map[int]int{}
	for _, pl := range res.Placements {
		if page, ok := pageOf[pl.Block]; ok {
			assert.Equal(t, page, pl.Page, "block %d (%s) split across pages", pl.Block, pl.Kind)
			continue
		}
		pageOf[pl.Block] = pl.Page
	}
}

func TestRender_HeadingKeptWithFirstEntry(t *testing.T) {
	geom := DefaultGeometry()
	base := &types.Profile{Name: "Keep"}
	baseRes := New(geom).Render(&fakeCanvas{}, base)

	p := &types.Profile{
		Name:     "Keep",
		Projects: []types.ProjectEntry{{Name: "Only", Technologies: "Go"}},
	}
	// room for the heading but not for the heading plus the project block
	tight := geom
	tight.Bottom = baseRes.Cursor + headingAdvance + geom.LineHeight
	res := New(tight).Render(&fakeCanvas{}, p)

	heading := placementsOf(res, KindHeading)[0]
	project := placementsOf(res, KindProjectName)[0]
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, project.Page, heading.Page)
}

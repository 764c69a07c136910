package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/portfolio/internal/layout"
	"github.com/jonathan/portfolio/internal/types"
)

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProfile(&types.Profile{
		Name:    "Alex Rivera",
		Contact: types.Contact{Email: "alex@example.com", Location: "Zürich"},
		Experience: []types.ExperienceEntry{
			{Title: "Developer", Responsibilities: []string{"a", "b", "c"}},
			{Title: "Intern", Responsibilities: []string{"d"}},
		},
		Skills: types.SkillGroups{
			{Category: "Languages", Skills: []string{"Go", "Python"}},
			{Category: "Tools", Skills: []string{"Docker"}},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "PROFILE")
	assert.Contains(t, output, "Alex Rivera")
	assert.Contains(t, output, "Zürich")
	assert.Contains(t, output, "2 roles, 4 bullets")
	assert.Less(t, strings.Index(output, "Languages (2)"), strings.Index(output, "Tools (1)"))
}

func TestPrintProfile_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintProfile(nil)
	assert.Empty(t, buf.String())
}

func TestPrintProfile_ManySkillGroups(t *testing.T) {
	var buf bytes.Buffer
	groups := make(types.SkillGroups, 8)
	for i := range groups {
		groups[i] = types.SkillGroup{Category: string(rune('A' + i))}
	}

	NewPrinter(&buf).PrintProfile(&types.Profile{Name: "X", Skills: groups})

	assert.Contains(t, buf.String(), "... and 3 more")
}

func TestPrintLayout(t *testing.T) {
	var buf bytes.Buffer
	res := layout.Result{
		Pages:  2,
		Cursor: 42.5,
		Placements: []layout.Placement{
			{Block: 1, Page: 1, Kind: layout.KindName, X: 80, Y: 20, Text: "ALEX RIVERA"},
			{Block: 1, Page: 1, Kind: layout.KindContact, X: 70, Y: 28, Text: "alex@example.com"},
			{Block: 2, Page: 1, Kind: layout.KindHeading, X: 20, Y: 40, Text: "EDUCATION"},
			{Block: 3, Page: 2, Kind: layout.KindBullet, X: 22, Y: 20, Text: "• A very long bullet that will be truncated"},
		},
	}

	NewPrinter(&buf).PrintLayout(res)
	output := buf.String()

	assert.Contains(t, output, "LAYOUT")
	assert.Contains(t, output, "Pages: 2   Cursor: 42.5")
	assert.Contains(t, output, "Page 1: 2 blocks")
	assert.Contains(t, output, "Page 2: 1 blocks")
	assert.Contains(t, output, "ALEX RIVERA")
	assert.Contains(t, output, "• A very long bul...")
}

func TestPrintViolations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintViolations(&types.Violations{Violations: []types.Violation{
		{Type: "page_overflow", Severity: "error", Details: "Resume has 3 pages, maximum is 2"},
		{Type: "outside_margin", Severity: "warning", Details: "bullet on page 1 starts at x=5.0, outside the margins"},
	}})
	output := buf.String()

	assert.Contains(t, output, "CONSTRAINT VIOLATIONS")
	assert.Contains(t, output, "Found 2 violations")
	assert.Contains(t, output, "page_overflow [error]")
	assert.Contains(t, output, "Resume has 3 pages, maximum is 2")
}

func TestPrintViolations_Empty(t *testing.T) {
	for _, v := range []*types.Violations{nil, {}} {
		var buf bytes.Buffer
		NewPrinter(&buf).PrintViolations(v)
		assert.Contains(t, buf.String(), "NO VIOLATIONS FOUND")
	}
}

func TestPrintFiles(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintFiles(map[string]int{"out/resume.tex": 2048, "out/resume.pdf": 4096})
	output := buf.String()

	assert.Contains(t, output, "OUTPUT FILES")
	assert.Less(t, strings.Index(output, "resume.pdf"), strings.Index(output, "resume.tex"))

	buf.Reset()
	p.PrintFiles(nil)
	assert.Empty(t, buf.String())
}

func TestPrintBox_AlignsMultibyteLines(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).printBox("TITLE", "Zürich • café\n"+strings.Repeat("é", 80))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ééééééé...", truncate(strings.Repeat("é", 20), 10))
}

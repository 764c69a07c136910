// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/portfolio/internal/layout"
	"github.com/jonathan/portfolio/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to n runes, ending in "..."
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad right-pads by runes; %-*s pads by bytes
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// PrintProfile outputs a summary of the loaded profile
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:       %s\n", profile.Name)
	if profile.Contact.Email != "" {
		fmt.Fprintf(&sb, "Email:      %s\n", profile.Contact.Email)
	}
	if profile.Contact.Location != "" {
		fmt.Fprintf(&sb, "Location:   %s\n", profile.Contact.Location)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Education:  %d\n", len(profile.Education))

	bullets := 0
	for _, e := range profile.Experience {
		bullets += len(e.Responsibilities)
	}
	fmt.Fprintf(&sb, "Experience: %d roles, %d bullets\n", len(profile.Experience), bullets)
	fmt.Fprintf(&sb, "Projects:   %d\n", len(profile.Projects))

	if len(profile.Skills) > 0 {
		sb.WriteString("\nSkills:\n")
		count := min(len(profile.Skills), maxItemsToShow)
		for _, g := range profile.Skills[:count] {
			fmt.Fprintf(&sb, "  • %s (%d)\n", g.Category, len(g.Skills))
		}
		if len(profile.Skills) > maxItemsToShow {
			fmt.Fprintf(&sb, "  ... and %d more\n", len(profile.Skills)-maxItemsToShow)
		}
	}

	p.printBox("PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLayout outputs page count, blocks per page and the first placements
func (p *Printer) PrintLayout(res layout.Result) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Pages: %d   Cursor: %.1f\n", res.Pages, res.Cursor)

	perPage := make([]map[int]bool, res.Pages+1)
	for _, pl := range res.Placements {
		if pl.Page < 1 || pl.Page > res.Pages {
			continue
		}
		if perPage[pl.Page] == nil {
			perPage[pl.Page] = make(map[int]bool)
		}
		perPage[pl.Page][pl.Block] = true
	}
	for page := 1; page <= res.Pages; page++ {
		fmt.Fprintf(&sb, "  Page %d: %d blocks\n", page, len(perPage[page]))
	}

	if len(res.Placements) > 0 {
		sb.WriteString("\nFirst placements:\n")
		count := min(len(res.Placements), maxItemsToShow)
		for _, pl := range res.Placements[:count] {
			fmt.Fprintf(&sb, "  p%d (%5.1f,%5.1f) %-12s %s\n", pl.Page, pl.X, pl.Y, pl.Kind, truncate(pl.Text, 20))
		}
		if len(res.Placements) > maxItemsToShow {
			fmt.Fprintf(&sb, "  ... and %d more\n", len(res.Placements)-maxItemsToShow)
		}
	}

	p.printBox("LAYOUT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintViolations outputs any constraint violations found.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintViolations(violations *types.Violations) {
	if violations == nil || len(violations.Violations) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %s │\n", pad("✅ NO VIOLATIONS FOUND", boxWidth-4))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d violations:\n\n", len(violations.Violations))

	for i, v := range violations.Violations {
		fmt.Fprintf(&sb, "⚠ %s [%s]\n", v.Type, v.Severity)
		fmt.Fprintf(&sb, "  %s\n", truncate(v.Details, 50))
		if i < len(violations.Violations)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("CONSTRAINT VIOLATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFiles lists written output files with their sizes
func (p *Printer) PrintFiles(files map[string]int) {
	if len(files) == 0 {
		return
	}
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		fmt.Fprintf(&sb, "%-40s %8d B\n", truncate(name, 40), files[name])
	}
	p.printBox("OUTPUT FILES", strings.TrimSuffix(sb.String(), "\n"))
}

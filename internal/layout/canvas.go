// Package layout places a résumé Profile onto fixed-size pages with a greedy
// cursor-and-page-break algorithm.
package layout

import "strings"

// Font styles understood by every Canvas
const (
	StyleNormal = ""
	StyleBold   = "B"
	StyleItalic = "I"
)

// Canvas is the page-description capability the engine draws on.
// Implementations own serialization; the engine never performs I/O.
type Canvas interface {
	SetFont(family, style string, size float64)
	// StringWidth measures s at the active font
	StringWidth(s string) float64
	// SplitText word-wraps s to width at the active font
	SplitText(s string, width float64) []string
	Text(x, y float64, s string)
	SetLineWidth(w float64)
	Line(x1, y1, x2, y2 float64)
	AddPage()
}

// WrapText greedily packs whitespace-separated words into lines no wider than width.
// A word wider than width gets a line of its own. Newlines force a break.
func WrapText(text string, width float64, measure func(string) float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}

		line := words[0]
		for _, word := range words[1:] {
			candidate := line + " " + word
			if measure(candidate) <= width {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = word
		}
		lines = append(lines, line)
	}
	return lines
}

// Package layout places a résumé Profile onto fixed-size pages with a greedy
// cursor-and-page-break algorithm.
package layout

// Geometry describes the page canvas in the canvas unit (millimetres for the PDF canvas).
type Geometry struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64 // left and right
	Top        float64 // cursor position at the top of every page
	Bottom     float64 // usable bottom boundary; a block may end exactly here
	CaptionY   float64 // absolute row of the closing caption on the final page
	LineHeight float64
	FontFamily string
}

// DefaultGeometry is portrait A4 with 20mm margins
func DefaultGeometry() Geometry {
	return Geometry{
		PageWidth:  210,
		PageHeight: 297,
		Margin:     20,
		Top:        20,
		Bottom:     280,
		CaptionY:   285,
		LineHeight: 5,
		FontFamily: "Helvetica",
	}
}

// ContentWidth is the page width minus both side margins
func (g Geometry) ContentWidth() float64 {
	return g.PageWidth - 2*g.Margin
}

package rendering

import (
	"bytes"
	"os"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/jonathan/portfolio/internal/layout"
)

// PDFOptions carries document metadata for a PDFCanvas
type PDFOptions struct {
	Title  string
	Author string
	// CreationDate pins the document timestamps; zero means "now"
	CreationDate time.Time
}

// PDFCanvas implements layout.Canvas over fpdf's core fonts.
// A PDFCanvas is single-use: build one per render. Once serialized, the
// document is closed and Bytes and Save reuse the same output.
type PDFCanvas struct {
	pdf  *fpdf.Fpdf
	data []byte
}

// NewPDFCanvas creates an empty A4 portrait document measured in millimetres.
// Automatic page breaks are disabled; the layout engine decides where pages end.
func NewPDFCanvas(opts PDFOptions) *PDFCanvas {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCreator("portfolio", true)
	pdf.SetCatalogSort(true)
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
	}
	if opts.Author != "" {
		pdf.SetAuthor(opts.Author, true)
	}
	if !opts.CreationDate.IsZero() {
		pdf.SetCreationDate(opts.CreationDate)
		pdf.SetModificationDate(opts.CreationDate)
	}

	return &PDFCanvas{pdf: pdf}
}

// encodeText converts UTF-8 to the cp1252 bytes the core fonts index by.
// Runes outside cp1252 become '?'.
func (c *PDFCanvas) encodeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if e, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteByte(e)
			continue
		}
		b.WriteByte('?')
	}
	return b.String()
}

func (c *PDFCanvas) SetFont(family, style string, size float64) {
	c.pdf.SetFont(family, style, size)
}

func (c *PDFCanvas) StringWidth(s string) float64 {
	return c.pdf.GetStringWidth(c.encodeText(s))
}

// SplitText wraps on UTF-8 words and measures the encoded form, so the result
// can be handed back to Text unchanged.
func (c *PDFCanvas) SplitText(s string, width float64) []string {
	return layout.WrapText(s, width, c.StringWidth)
}

func (c *PDFCanvas) Text(x, y float64, s string) {
	c.pdf.Text(x, y, c.encodeText(s))
}

func (c *PDFCanvas) SetLineWidth(w float64) {
	c.pdf.SetLineWidth(w)
}

func (c *PDFCanvas) Line(x1, y1, x2, y2 float64) {
	c.pdf.Line(x1, y1, x2, y2)
}

func (c *PDFCanvas) AddPage() {
	c.pdf.AddPage()
}

// PageCount returns the number of pages added so far
func (c *PDFCanvas) PageCount() int {
	return c.pdf.PageCount()
}

// Err reports the first error fpdf recorded while drawing
func (c *PDFCanvas) Err() error {
	return c.pdf.Error()
}

// Bytes serializes and closes the document
func (c *PDFCanvas) Bytes() ([]byte, error) {
	if c.data != nil {
		return c.data, nil
	}
	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, &RenderError{
			Message: "failed to serialize PDF",
			Cause:   err,
		}
	}
	c.data = buf.Bytes()
	return c.data, nil
}

// Save serializes the document if needed and writes it to path
func (c *PDFCanvas) Save(path string) error {
	data, err := c.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &RenderError{
			Message: "failed to write PDF to " + path,
			Cause:   err,
		}
	}
	return nil
}

var _ layout.Canvas = (*PDFCanvas)(nil)

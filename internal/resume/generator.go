// Package resume is the "generate and save" boundary: it checks the PDF
// capability, runs the layout engine on a fresh canvas, and turns every
// failure into one of two user-facing kinds.
package resume

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/jonathan/portfolio/internal/layout"
	"github.com/jonathan/portfolio/internal/rendering"
	"github.com/jonathan/portfolio/internal/types"
)

// User-visible notices for the two failure kinds
const (
	NoticeUnavailable = "Resume generator is loading. Please wait a moment and try again."
	noticeFailedFmt   = "Error generating resume: %s. Please try again."
)

// Artifact is a finished document ready to be saved or streamed
type Artifact struct {
	FileName string
	Data     []byte
	Pages    int
	Result   layout.Result

	doc Document
}

// Save writes the artifact into dir under its fixed file name and returns the path
func (a *Artifact) Save(dir string) (string, error) {
	path := filepath.Join(dir, a.FileName)
	if a.doc == nil {
		return "", &rendering.RenderError{Message: "artifact has no document to save"}
	}
	if err := a.doc.Save(path); err != nil {
		return "", err
	}
	return path, nil
}

// Options configures a Generator
type Options struct {
	// FileName overrides the name derived from the profile
	FileName     string
	Geometry     layout.Geometry
	CreationDate time.Time
}

// Document is a canvas that can be serialized once drawing is finished
type Document interface {
	layout.Canvas
	Err() error
	Bytes() ([]byte, error)
	Save(path string) error
}

func newPDFDocument(opts rendering.PDFOptions) Document {
	return rendering.NewPDFCanvas(opts)
}

// Generator produces PDF artifacts. It is safe for concurrent use;
// every call builds its own canvas.
type Generator struct {
	engine      *layout.Engine
	capability  *rendering.Capability
	opts        Options
	newDocument func(rendering.PDFOptions) Document
}

// NewGenerator creates a generator gated on capability. A nil capability is
// treated as always ready. A zero Geometry selects the A4 default.
func NewGenerator(capability *rendering.Capability, opts Options) *Generator {
	if opts.Geometry == (layout.Geometry{}) {
		opts.Geometry = layout.DefaultGeometry()
	}
	return &Generator{
		engine:      layout.New(opts.Geometry),
		capability:  capability,
		opts:        opts,
		newDocument: newPDFDocument,
	}
}

// Generate lays out p and serializes it.
// Errors are either rendering.ErrCapabilityUnavailable or *rendering.RenderError.
func (g *Generator) Generate(p *types.Profile) (art *Artifact, err error) {
	if g.capability != nil && !g.capability.Ready() {
		log.Printf("[RESUME] generation requested while PDF capability is %s", g.capability.State())
		return nil, rendering.ErrCapabilityUnavailable
	}
	if p == nil {
		return nil, &rendering.RenderError{Message: "profile is nil"}
	}

	defer func() {
		if r := recover(); r != nil {
			art = nil
			err = &rendering.RenderError{
				Message: "layout failed",
				Cause:   fmt.Errorf("%v", r),
			}
			log.Printf("[RESUME] %v", err)
		}
	}()

	canvas := g.newDocument(rendering.PDFOptions{
		Title:        p.Name + " - Resume",
		Author:       p.Name,
		CreationDate: g.opts.CreationDate,
	})
	res := g.engine.Render(canvas, p)
	if cerr := canvas.Err(); cerr != nil {
		err = &rendering.RenderError{Message: "failed to draw document", Cause: cerr}
		log.Printf("[RESUME] %v", err)
		return nil, err
	}

	data, err := canvas.Bytes()
	if err != nil {
		log.Printf("[RESUME] %v", err)
		return nil, err
	}

	name := g.opts.FileName
	if name == "" {
		name = FileNameFor(p.Name)
	}

	return &Artifact{
		FileName: name,
		Data:     data,
		Pages:    res.Pages,
		Result:   res,
		doc:      canvas,
	}, nil
}

// FileNameFor derives the fixed download name, e.g. "Alex_Rivera_Resume.pdf"
func FileNameFor(name string) string {
	var parts []string
	for _, field := range strings.Fields(name) {
		cleaned := strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
				return r
			}
			return -1
		}, field)
		if cleaned != "" {
			parts = append(parts, cleaned)
		}
	}
	parts = append(parts, "Resume")
	return strings.Join(parts, "_") + ".pdf"
}

// Notice returns the message shown to the user for a Generate error
func Notice(err error) string {
	if errors.Is(err, rendering.ErrCapabilityUnavailable) {
		return NoticeUnavailable
	}
	var renderErr *rendering.RenderError
	if errors.As(err, &renderErr) {
		return fmt.Sprintf(noticeFailedFmt, renderErr.Detail())
	}
	return fmt.Sprintf(noticeFailedFmt, err)
}

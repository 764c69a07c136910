package rendering

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/jonathan/portfolio/internal/layout"
)

// CapabilityState is the lifecycle of the PDF capability
type CapabilityState int32

const (
	StateLoading CapabilityState = iota
	StateReady
	StateFailed
)

func (s CapabilityState) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "loading"
	}
}

// CapabilityStatus is the JSON view served at /resume/status
type CapabilityStatus struct {
	State string `json:"state"`
	Ready bool   `json:"ready"`
	Error string `json:"error,omitempty"`
}

// Capability tracks whether PDF generation can be offered.
// Readers never block; the probe runs once.
type Capability struct {
	state atomic.Int32
	once  sync.Once
	probe func() error

	mu  sync.RWMutex
	err error
}

// NewCapability returns a capability in the loading state.
// A nil probe uses ProbePDF.
func NewCapability(probe func() error) *Capability {
	if probe == nil {
		probe = ProbePDF
	}
	return &Capability{probe: probe}
}

// Start runs the probe in the background
func (c *Capability) Start() {
	go c.Init()
}

// Init runs the probe synchronously and returns its outcome.
// Subsequent calls return the first outcome.
func (c *Capability) Init() error {
	c.once.Do(func() {
		err := c.runProbe()
		if err != nil {
			log.Printf("[RESUME] PDF capability failed to initialize: %v", err)
			c.mu.Lock()
			c.err = err
			c.mu.Unlock()
			c.state.Store(int32(StateFailed))
			return
		}
		log.Printf("[RESUME] PDF capability ready")
		c.state.Store(int32(StateReady))
	})
	return c.Err()
}

func (c *Capability) runProbe() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("probe panicked: %v", r)
		}
	}()
	return c.probe()
}

// State returns the current lifecycle state
func (c *Capability) State() CapabilityState {
	return CapabilityState(c.state.Load())
}

// Ready reports whether documents can be generated now
func (c *Capability) Ready() bool {
	return c.State() == StateReady
}

// Err returns the probe failure, if any
func (c *Capability) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Status returns a snapshot suitable for serialization
func (c *Capability) Status() CapabilityStatus {
	st := c.State()
	status := CapabilityStatus{State: st.String(), Ready: st == StateReady}
	if err := c.Err(); err != nil {
		status.Error = err.Error()
	}
	return status
}

// ProbePDF draws and serializes a one-line document to prove fpdf and its
// core font metrics are usable.
func ProbePDF() error {
	c := NewPDFCanvas(PDFOptions{})
	c.AddPage()
	c.SetFont(layout.DefaultGeometry().FontFamily, layout.StyleBold, 10)
	if c.StringWidth("probe") <= 0 {
		return fmt.Errorf("font metrics unavailable")
	}
	c.Text(10, 10, "probe")
	if err := c.Err(); err != nil {
		return err
	}
	_, err := c.Bytes()
	return err
}

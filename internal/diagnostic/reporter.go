package diagnostic

import (
	"fmt"
	"io"
	"sync"

	"github.com/orizon-lang/plc/internal/position"
)

// Reporter receives diagnostics. Report is fire-and-forget.
type Reporter interface {
	Report(d *Diagnostic)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(d *Diagnostic)

// Report calls f(d).
func (f ReporterFunc) Report(d *Diagnostic) { f(d) }

// Discard drops every diagnostic.
var Discard Reporter = ReporterFunc(func(*Diagnostic) {})

// Collector records diagnostics in the order they are reported.
type Collector struct {
	mu          sync.Mutex
	diagnostics []*Diagnostic
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Report implements Reporter.
func (c *Collector) Report(d *Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diagnostics = append(c.diagnostics, d)
}

// Diagnostics returns a copy of everything reported so far.
func (c *Collector) Diagnostics() []*Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Diagnostic, len(c.diagnostics))
	copy(out, c.diagnostics)
	return out
}

// Len returns the number of diagnostics reported so far.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.diagnostics)
}

// Count returns how many diagnostics of the given category were reported.
func (c *Collector) Count(category DiagnosticCategory) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, d := range c.diagnostics {
		if d.Category == category {
			n++
		}
	}
	return n
}

// HasErrors returns true if any error-level diagnostic was reported.
func (c *Collector) HasErrors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.diagnostics {
		if d.Level == DiagnosticError {
			return true
		}
	}
	return false
}

const (
	colorRed   = "\x1b[31m"
	colorReset = "\x1b[0m"
)

// TextSink writes one diagnostic message per line. With Color set the
// message is printed in red; with Source set an excerpt of the offending
// line follows each positioned message.
type TextSink struct {
	W      io.Writer
	Color  bool
	Source *position.SourceFile
}

// NewTextSink creates a sink writing plain messages to w.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{W: w}
}

// Report implements Reporter.
func (s *TextSink) Report(d *Diagnostic) {
	if s.Color {
		fmt.Fprintf(s.W, "%s%s%s\n", colorRed, d.Message, colorReset)
	} else {
		fmt.Fprintln(s.W, d.Message)
	}
	if s.Source != nil && d.Pos.IsValid() {
		fmt.Fprint(s.W, s.Source.Excerpt(d.Pos))
	}
}

// Replay delivers diags to r in order.
func Replay(r Reporter, diags []*Diagnostic) {
	for _, d := range diags {
		r.Report(d)
	}
}

package diag

import (
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/copperspice/doxypress-sub002/internal/logging"
)

// Sink receives diagnostics.
type Sink interface {
	Report(d Diagnostic)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(d Diagnostic)

// Report calls f(d).
func (f SinkFunc) Report(d Diagnostic) {
	f(d)
}

// Discard drops every diagnostic.
//
//nolint:gochecknoglobals // Stateless sink shared by callers that ignore diagnostics.
var Discard Sink = SinkFunc(func(Diagnostic) {})

// Collector accumulates diagnostics in report order.
// It is safe for concurrent use.
type Collector struct {
	mu    sync.Mutex
	items []Diagnostic
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Report appends d.
func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, d)
}

// Diagnostics returns a copy of the collected diagnostics.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

// Len returns the number of collected diagnostics.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Reset drops all collected diagnostics.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// LogSink forwards diagnostics to a structured logger at warn level,
// or error level for error-severity diagnostics.
type LogSink struct {
	Logger *log.Logger
}

// Report logs d.
func (s LogSink) Report(d Diagnostic) {
	logger := s.Logger
	if logger == nil {
		logger = logging.Default()
	}

	keyvals := []any{
		logging.FieldPath, d.File,
		logging.FieldLine, d.Line,
		logging.FieldCategory, string(d.Category),
	}
	if len(d.Candidates) > 0 {
		keyvals = append(keyvals, logging.FieldCandidates, d.Candidates)
	}

	if d.IsError() {
		logger.Error(d.Message, keyvals...)
		return
	}
	logger.Warn(d.Message, keyvals...)
}

// Multi fans a diagnostic out to several sinks in order.
type Multi []Sink

// Report delivers d to every non-nil sink.
func (m Multi) Report(d Diagnostic) {
	for _, s := range m {
		if s != nil {
			s.Report(d)
		}
	}
}

// Filter drops diagnostics for which keep returns false.
func Filter(next Sink, keep func(Diagnostic) bool) Sink {
	return SinkFunc(func(d Diagnostic) {
		if keep(d) {
			next.Report(d)
		}
	})
}

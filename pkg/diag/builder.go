package diag

import (
	"fmt"

	"github.com/copperspice/doxypress-sub002/pkg/config"
)

// Builder helps construct Diagnostic values.
type Builder struct {
	diag Diagnostic
}

// New starts building a warning-level diagnostic. The message is formatted
// with fmt.Sprintf when args are given.
func New(category Category, file string, line int, format string, args ...any) *Builder {
	message := format
	if len(args) > 0 {
		message = fmt.Sprintf(format, args...)
	}

	return &Builder{
		diag: Diagnostic{
			File:     file,
			Line:     line,
			Message:  message,
			Category: category,
			Severity: config.SeverityWarning,
		},
	}
}

// WithSeverity sets the severity.
func (b *Builder) WithSeverity(s config.Severity) *Builder {
	b.diag.Severity = s
	return b
}

// WithCandidates attaches the candidate list of an ambiguous name.
func (b *Builder) WithCandidates(candidates ...string) *Builder {
	b.diag.Candidates = append(b.diag.Candidates, candidates...)
	return b
}

// Build returns the constructed Diagnostic.
func (b *Builder) Build() Diagnostic {
	return b.diag
}

// Report builds the diagnostic and delivers it to sink.
func (b *Builder) Report(sink Sink) {
	if sink == nil {
		return
	}
	sink.Report(b.diag)
}

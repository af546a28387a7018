// Package diag defines the diagnostics reported while parsing comment blocks.
//
// Every problem the parser finds is non-fatal: it is delivered to a Sink as a
// Diagnostic and parsing continues with a fallback.
package diag

import (
	"fmt"
	"strings"

	"github.com/copperspice/doxypress-sub002/pkg/config"
)

// Category classifies a diagnostic.
type Category string

const (
	// CategoryGrammar is a wrong token where a specific one was required.
	CategoryGrammar Category = "grammar"
	// CategoryResolution is an anchor, link, citation or file that did not resolve.
	CategoryResolution Category = "resolution"
	// CategoryNesting is a structural nesting violation.
	CategoryNesting Category = "nesting"
	// CategoryAmbiguity is a name that resolved to more than one candidate.
	CategoryAmbiguity Category = "ambiguity"
	// CategoryInternal is a parser consistency failure.
	CategoryInternal Category = "internal"
)

// Diagnostic is a single message about a comment block.
type Diagnostic struct {
	// File is the file the comment block belongs to.
	File string `json:"file,omitempty" yaml:"file,omitempty"`

	// Line is the 1-based line the problem was found on; 0 when unknown.
	Line int `json:"line,omitempty" yaml:"line,omitempty"`

	// Message is the human-readable description of the issue.
	Message string `json:"message" yaml:"message"`

	Category Category        `json:"category" yaml:"category"`
	Severity config.Severity `json:"severity" yaml:"severity"`

	// Candidates lists the alternatives of an ambiguous name.
	Candidates []string `json:"candidates,omitempty" yaml:"candidates,omitempty"`
}

// String renders the diagnostic as "file:line: severity: message".
func (d Diagnostic) String() string {
	var sb strings.Builder

	if d.File != "" {
		sb.WriteString(d.File)
		if d.Line > 0 {
			fmt.Fprintf(&sb, ":%d", d.Line)
		}
		sb.WriteString(": ")
	}

	severity := d.Severity
	if severity == "" {
		severity = config.SeverityWarning
	}
	sb.WriteString(string(severity))
	sb.WriteString(": ")
	sb.WriteString(d.Message)

	if len(d.Candidates) > 0 {
		sb.WriteString("\nPossible candidates:\n  ")
		sb.WriteString(strings.Join(d.Candidates, "\n  "))
	}

	return sb.String()
}

// IsError reports whether the diagnostic has error severity.
func (d Diagnostic) IsError() bool {
	return d.Severity == config.SeverityError
}

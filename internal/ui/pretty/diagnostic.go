package pretty

import (
	"fmt"
	"strings"

	"github.com/copperspice/doxypress-sub002/pkg/config"
	"github.com/copperspice/doxypress-sub002/pkg/diag"
)

// FormatDiagnostic formats a single diagnostic for terminal output:
//
//	path:line  severity  message  (category)
//
// followed by the source line when sourceLine is not empty and one line
// per candidate of an ambiguous name.
func (s *Styles) FormatDiagnostic(d diag.Diagnostic, sourceLine string) string {
	var builder strings.Builder

	location := s.FilePath.Render(d.File)
	if d.Line > 0 {
		location += s.Location.Render(fmt.Sprintf(":%d", d.Line))
	}

	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(d.Severity),
		s.Message.Render(d.Message),
		s.Category.Render("("+string(d.Category)+")"),
	))

	if sourceLine != "" {
		builder.WriteString("        " + s.SourceLine.Render(strings.TrimRight(sourceLine, "\r\n")) + "\n")
	}

	for _, c := range d.Candidates {
		builder.WriteString("    " + s.Dim.Render("candidate:") + " " + s.Candidate.Render(c) + "\n")
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string. An empty severity is a
// warning.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	if sev == "" {
		sev = config.SeverityWarning
	}
	if !sev.IsValid() {
		return string(sev)
	}
	return s.ForSeverity(sev).Render(string(sev))
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case issueCount == 1:
		header += s.Dim.Render(" (1 issue)")
	case issueCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}

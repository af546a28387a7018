// Package pretty renders diagnostics, run summaries and parse trees for
// the terminal with Lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/copperspice/doxypress-sub002/pkg/config"
)

// ANSI 256 palette indexes.
const (
	colorRed    = "9"
	colorGreen  = "10"
	colorYellow = "11"
	colorBlue   = "12"
	colorCyan   = "14"
	colorGray   = "8"
	colorLight  = "7"
)

// Styles holds the renderers for diagnostics, summaries and parse trees.
// With color disabled every style renders its input unchanged.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	FilePath   lipgloss.Style
	Location   lipgloss.Style
	Category   lipgloss.Style
	Message    lipgloss.Style
	Candidate  lipgloss.Style
	SourceLine lipgloss.Style

	TreeKind       lipgloss.Style
	TreeText       lipgloss.Style
	TreeAttr       lipgloss.Style
	TreeEnumerator lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader    lipgloss.Style
	TableErrorRow  lipgloss.Style
	TableWarnRow   lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates the styles for colored or plain output.
func NewStyles(colorEnabled bool) *Styles {
	plain := lipgloss.NewStyle()
	fg := func(c string) lipgloss.Style {
		if !colorEnabled {
			return plain
		}
		return plain.Foreground(lipgloss.Color(c))
	}
	bold := func(st lipgloss.Style) lipgloss.Style {
		if !colorEnabled {
			return plain
		}
		return st.Bold(true)
	}

	return &Styles{
		Error:   bold(fg(colorRed)),
		Warning: bold(fg(colorYellow)),
		Info:    bold(fg(colorBlue)),

		FilePath:   bold(plain),
		Location:   fg(colorGray),
		Category:   fg(colorGray),
		Message:    plain,
		Candidate:  fg(colorCyan),
		SourceLine: fg(colorLight),

		TreeKind: bold(fg(colorBlue)),
		TreeText: fg(colorGreen),
		TreeAttr: fg(colorGray),
		// The margin is layout, so plain output keeps it.
		TreeEnumerator: fg(colorGray).MarginRight(1),

		SummaryTitle: bold(plain),
		SummaryValue: plain,
		Success:      bold(fg(colorGreen)),
		Failure:      bold(fg(colorRed)),

		TableHeader:    bold(fg(colorLight)),
		TableErrorRow:  fg(colorRed),
		TableWarnRow:   fg(colorYellow),
		TableSeparator: fg(colorGray),

		Dim:  fg(colorGray),
		Bold: bold(plain),
	}
}

// ForSeverity returns the style of a severity label. An empty severity is
// a warning.
func (s *Styles) ForSeverity(sev config.Severity) lipgloss.Style {
	switch sev {
	case config.SeverityError:
		return s.Error
	case config.SeverityInfo:
		return s.Info
	default:
		return s.Warning
	}
}

// IsColorEnabled determines if color should be enabled for writer.
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode config.ColorMode, writer io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/copperspice/doxypress-sub002/pkg/config"
	"github.com/copperspice/doxypress-sub002/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "5 issues (1 error, 4 warnings) in 3 files, 12 blocks parsed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	blocks := fmt.Sprintf("%d %s parsed", stats.BlocksParsed, plural(stats.BlocksParsed, "block", "blocks"))

	if stats.DiagnosticsTotal == 0 {
		return s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked, %s)",
				stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles), blocks)) + "\n"
	}

	var severityParts []string
	if n := stats.DiagnosticsBySeverity[string(config.SeverityError)]; n > 0 {
		severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d %s", n, plural(n, "error", "errors"))))
	}
	if n := stats.DiagnosticsBySeverity[string(config.SeverityWarning)]; n > 0 {
		severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d %s", n, plural(n, "warning", "warnings"))))
	}
	if n := stats.DiagnosticsBySeverity[string(config.SeverityInfo)]; n > 0 {
		severityParts = append(severityParts, s.Info.Render(fmt.Sprintf("%d info", n)))
	}

	issues := fmt.Sprintf("%d %s", stats.DiagnosticsTotal, plural(stats.DiagnosticsTotal, "issue", "issues"))
	if len(severityParts) > 0 {
		issues += " (" + strings.Join(severityParts, ", ") + ")"
	}

	parts := []string{
		issues,
		fmt.Sprintf("in %d %s", stats.FilesWithIssues, plural(stats.FilesWithIssues, wordFile, wordFiles)),
	}
	line := strings.Join(parts, " ") + ", " + blocks
	if stats.FilesErrored > 0 {
		line += ", " + s.Failure.Render(fmt.Sprintf("%d %s unreadable",
			stats.FilesErrored, plural(stats.FilesErrored, wordFile, wordFiles)))
	}
	return line + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files parsed:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")
	builder.WriteString("  Comment blocks:    " +
		s.SummaryValue.Render(strconv.Itoa(stats.BlocksParsed)) + "\n")

	if stats.FilesWithIssues > 0 {
		builder.WriteString("  Files with issues: " +
			s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files unreadable:  " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Total issues:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)) + "\n")

	errs := stats.DiagnosticsBySeverity[string(config.SeverityError)]
	warnings := stats.DiagnosticsBySeverity[string(config.SeverityWarning)]
	if errs > 0 {
		builder.WriteString("    Errors:          " + s.Error.Render(strconv.Itoa(errs)) + "\n")
	}
	if warnings > 0 {
		builder.WriteString("    Warnings:        " + s.Warning.Render(strconv.Itoa(warnings)) + "\n")
	}
	if infos := stats.DiagnosticsBySeverity[string(config.SeverityInfo)]; infos > 0 {
		builder.WriteString("    Info:            " + s.Info.Render(strconv.Itoa(infos)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case errs > 0:
		builder.WriteString(s.Failure.Render("Parse failed with errors"))
	case warnings > 0:
		builder.WriteString(s.Warning.Render("Parse completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Parse passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// Package logging wraps charmbracelet/log for the doxyparse commands.
package logging

// Structured log keys. Diagnostics logged through diag.LogSink use the
// source keys too, so command output and parser output line up.
const (
	FieldError = "error"

	// Source position.
	FieldPath       = "path"
	FieldLine       = "line"
	FieldCategory   = "category"
	FieldCandidates = "candidates"

	// Discovery and output.
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Parser setup.
	FieldSymbols  = "symbols"
	FieldJobs     = "jobs"
	FieldMarkdown = "markdown"

	// Run totals.
	FieldBlocks           = "blocks"
	FieldDuration         = "duration"
	FieldFilesParsed      = "files_parsed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldDiagnosticsTotal = "diagnostics_total"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)

package cli

import (
	"github.com/copperspice/doxypress-sub002/pkg/config"
	"github.com/copperspice/doxypress-sub002/pkg/runner"
)

// Exit codes for doxyparse.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitParseErrors indicates the parse completed but reported errors.
	ExitParseErrors = 1

	// ExitParseWarnings indicates the parse completed with warnings in strict mode.
	ExitParseWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code based on result and strict mode.
// Unreadable files count as I/O errors unless diagnostics already demand a
// failure.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	errors := result.Stats.DiagnosticsBySeverity[string(config.SeverityError)]
	warnings := result.Stats.DiagnosticsBySeverity[string(config.SeverityWarning)]

	switch {
	case errors > 0:
		return ExitParseErrors
	case strict && warnings > 0:
		return ExitParseWarnings
	case result.Stats.FilesErrored > 0:
		return ExitIOError
	default:
		return ExitSuccess
	}
}

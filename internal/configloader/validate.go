package configloader

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/copperspice/doxypress-sub002/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "parser.subpage_nesting_level").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues such as a missing example directory.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownFormats lists valid output format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText:    true,
	config.FormatJSON:    true,
	config.FormatYAML:    true,
	config.FormatTree:    true,
	config.FormatSummary: true,
}

// knownColors lists valid color mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownColors = map[config.ColorMode]bool{
	config.ColorAuto:   true,
	config.ColorAlways: true,
	config.ColorNever:  true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	addError := func(field string, value any, format string, args ...any) {
		result.Errors = append(result.Errors, ValidationError{
			Field: field, Value: value, Message: fmt.Sprintf(format, args...),
		})
	}
	addWarning := func(field string, value any, format string, args ...any) {
		result.Warnings = append(result.Warnings, ValidationError{
			Field: field, Value: value, Message: fmt.Sprintf(format, args...),
		})
	}

	if cfg.SeverityDefault != "" && !config.Severity(cfg.SeverityDefault).IsValid() {
		addError("severity_default", cfg.SeverityDefault,
			"invalid severity %q; must be one of: error, warning, info", cfg.SeverityDefault)
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		addError("format", cfg.Format,
			"invalid format %q; must be one of: text, json, yaml, summary, tree", cfg.Format)
	}

	if cfg.Color != "" && !knownColors[cfg.Color] {
		addError("color", cfg.Color, "invalid color mode %q; must be one of: auto, always, never", cfg.Color)
	}

	if cfg.Jobs < 0 {
		addError("jobs", cfg.Jobs, "jobs must be non-negative, got %d", cfg.Jobs)
	}

	if cfg.Parser.SubpageNestingLevel < 0 {
		addError("parser.subpage_nesting_level", cfg.Parser.SubpageNestingLevel,
			"nesting level must be non-negative, got %d", cfg.Parser.SubpageNestingLevel)
	}

	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			addError(fmt.Sprintf("extensions[%d]", i), ext, "extension %q must start with a dot", ext)
		}
	}

	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			addError(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern %q", pattern)
		}
	}

	if cfg.Symbols != "" && !fileExists(cfg.Symbols) {
		addWarning("symbols", cfg.Symbols, "symbol file %q does not exist", cfg.Symbols)
	}

	for i, dir := range cfg.ExamplePath {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			addWarning(fmt.Sprintf("example_path[%d]", i), dir, "example directory %q does not exist", dir)
		}
	}

	for i, path := range cfg.CiteBibFiles {
		if !fileExists(path) {
			addWarning(fmt.Sprintf("cite_bib_files[%d]", i), path, "bibliography file %q does not exist", path)
		}
	}

	return result
}

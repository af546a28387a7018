// Package reporter writes the results of a parse run in the formats the
// CLI offers.
package reporter

import (
	"context"
	"errors"
	"fmt"

	"github.com/copperspice/doxypress-sub002/pkg/config"
	"github.com/copperspice/doxypress-sub002/pkg/runner"
)

// ErrUnknownFormat is returned by New for an output format it cannot
// write.
var ErrUnknownFormat = errors.New("unknown output format")

// Reporter formats and writes parse results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of issues reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	switch opts.Format {
	case config.FormatText, "":
		return NewTextReporter(opts), nil
	case config.FormatJSON:
		return NewJSONReporter(opts), nil
	case config.FormatYAML:
		return NewYAMLReporter(opts), nil
	case config.FormatSummary:
		return NewSummaryReporter(opts), nil
	case config.FormatTree:
		return NewTreeReporter(opts), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, opts.Format)
	}
}

// countIssues returns the number of diagnostics in result.
func countIssues(result *runner.Result) int {
	if result == nil {
		return 0
	}
	var n int
	for _, f := range result.Files {
		n += len(f.Diagnostics)
	}
	return n
}

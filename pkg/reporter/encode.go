package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/copperspice/doxypress-sub002/pkg/runner"
)

// DocumentReporter writes the whole run as one machine-readable Document.
type DocumentReporter struct {
	opts   Options
	encode func(w io.Writer, doc *Document) error
}

// NewJSONReporter creates a DocumentReporter that writes JSON, indented
// unless Options.Compact is set.
func NewJSONReporter(opts Options) *DocumentReporter {
	return &DocumentReporter{opts: opts, encode: func(w io.Writer, doc *Document) error {
		enc := json.NewEncoder(w)
		if !opts.Compact {
			enc.SetIndent("", "  ")
		}
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		return nil
	}}
}

// NewYAMLReporter creates a DocumentReporter that writes YAML.
func NewYAMLReporter(opts Options) *DocumentReporter {
	return &DocumentReporter{opts: opts, encode: func(w io.Writer, doc *Document) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		return nil
	}}
}

// Report implements Reporter.
func (r *DocumentReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	doc := buildDocument(result, r.opts)

	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	if err := r.encode(bw, doc); err != nil {
		return 0, err
	}
	if err := bw.Flush(); err != nil {
		return 0, fmt.Errorf("write report: %w", err)
	}
	return doc.Summary.TotalIssues, nil
}

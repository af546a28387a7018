package reporter

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/copperspice/doxypress-sub002/internal/ui/pretty"
	"github.com/copperspice/doxypress-sub002/pkg/diag"
	"github.com/copperspice/doxypress-sub002/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer

	// lines caches the source lines of files diagnostics point into.
	lines map[string][]string
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
		lines:  make(map[string][]string),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		path := r.opts.displayPath(file.Path)

		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}
		if len(file.Diagnostics) == 0 {
			continue
		}

		if r.opts.GroupByFile {
			fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(file.Diagnostics)))
		}
		for _, d := range file.Diagnostics {
			fmt.Fprint(r.bw, r.styles.FormatDiagnostic(r.display(d), r.sourceLine(d)))
			total++
		}
		if r.opts.GroupByFile {
			fmt.Fprintln(r.bw)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

func (r *TextReporter) display(d diag.Diagnostic) diag.Diagnostic {
	d.File = r.opts.displayPath(d.File)
	return d
}

// sourceLine returns the line a diagnostic points at, or "" when source
// lines are not shown or the file cannot be read.
func (r *TextReporter) sourceLine(d diag.Diagnostic) string {
	if !r.opts.ShowSource || d.File == "" || d.Line <= 0 {
		return ""
	}
	lines, ok := r.lines[d.File]
	if !ok {
		content, err := os.ReadFile(d.File)
		if err == nil {
			lines = strings.Split(string(content), "\n")
		}
		r.lines[d.File] = lines
	}
	if d.Line > len(lines) {
		return ""
	}
	return strings.TrimSpace(lines[d.Line-1])
}

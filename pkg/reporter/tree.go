package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/copperspice/doxypress-sub002/internal/ui/pretty"
	"github.com/copperspice/doxypress-sub002/pkg/config"
	"github.com/copperspice/doxypress-sub002/pkg/docast"
	"github.com/copperspice/doxypress-sub002/pkg/runner"
)

// TreeReporter prints the parse tree of every comment block followed by
// the block's diagnostics.
type TreeReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTreeReporter creates a new tree reporter.
func NewTreeReporter(opts Options) *TreeReporter {
	return &TreeReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TreeReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	for _, file := range result.Files {
		path := r.opts.displayPath(file.Path)
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n", r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)))
			continue
		}
		for _, b := range file.Blocks {
			if b.Result == nil {
				continue
			}
			fmt.Fprintln(r.bw, r.styles.FilePath.Render(fmt.Sprintf("%s:%d", path, b.Line)))
			fmt.Fprint(r.bw, r.styles.RenderTree(b.Result.Root))
			for _, d := range b.Result.Diagnostics {
				d.File = r.opts.displayPath(d.File)
				fmt.Fprint(r.bw, r.styles.FormatDiagnostic(d, ""))
			}
			fmt.Fprintln(r.bw)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}
	return countIssues(result), nil
}

// WriteTree writes a single parse tree to w as a drawn tree (FormatTree or
// FormatText), JSON or YAML.
func WriteTree(w io.Writer, root *docast.Node, format config.OutputFormat, color config.ColorMode) error {
	switch format {
	case config.FormatTree, config.FormatText, "":
		styles := pretty.NewStyles(pretty.IsColorEnabled(color, w))
		_, err := io.WriteString(w, styles.RenderTree(root))
		return err
	case config.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(docast.Export(root)); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		return nil
	case config.FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(docast.Export(root)); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		return encoder.Close()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

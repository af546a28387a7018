package reporter

import (
	"bufio"
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/copperspice/doxypress-sub002/internal/ui/pretty"
	"github.com/copperspice/doxypress-sub002/pkg/config"
	"github.com/copperspice/doxypress-sub002/pkg/runner"
)

// Table layout constants for summary output.
const (
	tableWidth        = 90
	categoryColWidth  = 30
	fileColWidth      = 60
	numColWidth       = 7
	warnColWidth      = 9
	maxFilePathLength = 58
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// tally counts the diagnostics of one category or one file.
type tally struct {
	name     string
	issues   int
	errors   int
	warnings int
}

// SummaryReporter writes per-category and per-file tables instead of
// individual diagnostics.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	total := countIssues(result)
	if total == 0 {
		fmt.Fprintln(r.bw, r.styles.Success.Render("No issues found"))
		return 0, nil
	}

	categories, files := r.tallies(result)

	r.renderTable("Categories Summary", "Category", categoryColWidth, categories)
	fmt.Fprintln(r.bw)
	r.renderTable("Files Summary", "File", fileColWidth, files)
	fmt.Fprintln(r.bw)
	fmt.Fprint(r.bw, r.styles.Bold.Render("Total: ")+r.styles.FormatSummaryOneLine(result.Stats))

	return total, nil
}

// tallies groups the diagnostics of result by category and by file. Both
// lists are ordered by issue count, then name.
func (r *SummaryReporter) tallies(result *runner.Result) ([]tally, []tally) {
	byCategory := map[string]*tally{}
	var files []tally

	for _, file := range result.Files {
		if len(file.Diagnostics) == 0 {
			continue
		}
		ft := tally{name: r.opts.displayPath(file.Path)}
		for _, d := range file.Diagnostics {
			ct, ok := byCategory[string(d.Category)]
			if !ok {
				ct = &tally{name: string(d.Category)}
				byCategory[ct.name] = ct
			}
			for _, t := range []*tally{ct, &ft} {
				t.issues++
				switch d.Severity {
				case config.SeverityError:
					t.errors++
				case config.SeverityWarning, "":
					t.warnings++
				}
			}
		}
		files = append(files, ft)
	}

	categories := make([]tally, 0, len(byCategory))
	for _, t := range byCategory {
		categories = append(categories, *t)
	}

	byCount := func(a, b tally) int {
		if c := cmp.Compare(b.issues, a.issues); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	}
	slices.SortFunc(categories, byCount)
	slices.SortFunc(files, byCount)
	return categories, files
}

func (r *SummaryReporter) renderTable(title, column string, width int, rows []tally) {
	fmt.Fprintln(r.bw, r.styles.Bold.Render(title))
	fmt.Fprintln(r.bw, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	// Pad first, then style.
	fmt.Fprintf(r.bw, "%s %s %s %s\n",
		r.styles.TableHeader.Render(padRight(column, width)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", warnColWidth)),
	)
	fmt.Fprintln(r.bw, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, row := range rows {
		name := row.name
		if len(name) > maxFilePathLength {
			name = "…" + name[len(name)-(maxFilePathLength-1):]
		}

		padded := padRight(name, width)
		switch {
		case row.errors > 0:
			padded = r.styles.TableErrorRow.Render(padded)
		case row.warnings > 0:
			padded = r.styles.TableWarnRow.Render(padded)
		}

		fmt.Fprintf(r.bw, "%s %s %s %s\n",
			padded,
			padLeft(strconv.Itoa(row.issues), numColWidth),
			padLeft(strconv.Itoa(row.errors), numColWidth),
			padLeft(strconv.Itoa(row.warnings), warnColWidth),
		)
	}
}

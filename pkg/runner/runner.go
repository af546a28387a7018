package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/copperspice/doxypress-sub002/internal/logging"
	"github.com/copperspice/doxypress-sub002/pkg/comments"
	"github.com/copperspice/doxypress-sub002/pkg/config"
	"github.com/copperspice/doxypress-sub002/pkg/diag"
	"github.com/copperspice/doxypress-sub002/pkg/docparser"
	"github.com/copperspice/doxypress-sub002/pkg/fsutil"
)

// Runner parses the comment blocks of many files with one docparser.Parser.
type Runner struct {
	// Parser parses each comment block. It is shared by all workers.
	Parser *docparser.Parser

	// DefaultSeverity, when set, replaces the warning severity the parser
	// gives to ordinary diagnostics. Internal errors keep theirs.
	DefaultSeverity config.Severity
}

// New creates a new Runner with the given parser.
func New(parser *docparser.Parser) *Runner {
	return &Runner{Parser: parser}
}

// Run discovers files under opts.Paths and processes them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate stats.
//
// The runner:
//   - Discovers files matching the options criteria
//   - Processes files concurrently using a worker pool
//   - Aggregates results into a single Result with statistics
//   - Respects context cancellation
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	// Don't use more workers than files.
	if jobs > len(files) {
		jobs = len(files)
	}

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers may complete out of order.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker processes files from workCh and sends outcomes to outCh.
func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := r.ProcessFile(ctx, path)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// ProcessFile reads path and parses each of its comment blocks.
func (r *Runner) ProcessFile(ctx context.Context, path string) FileOutcome {
	ctx = logging.WithSource(ctx, path, 0)
	outcome := FileOutcome{Path: path}
	start := time.Now()

	content, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	outcome = r.ProcessContent(ctx, path, content)
	logging.FromContext(ctx).Debug("parsed file",
		logging.FieldBlocks, len(outcome.Blocks),
		logging.FieldDiagnosticsTotal, len(outcome.Diagnostics),
		logging.FieldDuration, time.Since(start))
	return outcome
}

// ProcessContent parses the comment blocks of content as if it were read
// from path. Extraction problems are reported as grammar diagnostics.
func (r *Runner) ProcessContent(ctx context.Context, path string, content []byte) FileOutcome {
	outcome := FileOutcome{Path: path}

	blocks, err := comments.Extract(path, content)
	if err != nil {
		line := 0
		if len(blocks) > 0 {
			line = blocks[len(blocks)-1].Line
		}
		outcome.Diagnostics = append(outcome.Diagnostics,
			diag.New(diag.CategoryGrammar, path, line, "%v", err).Build())
	}

	for _, b := range blocks {
		res, err := r.Parser.Parse(ctx, docparser.Request{File: path, Line: b.Line, Text: b.Text})
		switch {
		case errors.Is(err, docparser.ErrInternal):
			// The partial result carries the internal diagnostic.
			logging.FromContext(logging.WithSource(ctx, path, b.Line)).
				Debug("comment block aborted", logging.FieldError, err)
		case err != nil:
			outcome.Error = err
			return outcome
		}

		outcome.Blocks = append(outcome.Blocks, BlockOutcome{Line: b.Line, Result: res})
		outcome.Diagnostics = append(outcome.Diagnostics, res.Diagnostics...)
	}

	if r.DefaultSeverity != "" {
		for i := range outcome.Diagnostics {
			if outcome.Diagnostics[i].Severity == config.SeverityWarning {
				outcome.Diagnostics[i].Severity = r.DefaultSeverity
			}
		}
	}
	return outcome
}

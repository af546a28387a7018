package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/copperspice/doxypress-sub002/internal/logging"
	"github.com/copperspice/doxypress-sub002/pkg/config"
	"github.com/copperspice/doxypress-sub002/pkg/reporter"
	"github.com/copperspice/doxypress-sub002/pkg/runner"
)

// ErrIssuesFound is returned when the parse reports failures. It only
// signals the exit code; the issues have already been reported.
var ErrIssuesFound = errors.New("documentation issues found")

// ExitError carries the exit code a command wants the process to end with.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// Unwrap lets errors.Is match ErrIssuesFound.
func (e *ExitError) Unwrap() error {
	return ErrIssuesFound
}

type parseFlags struct {
	format         string
	noSource       bool
	compact        bool
	trees          bool
	followSymlinks bool
}

func newParseCommand() *cobra.Command {
	var cfg config.Config
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [paths...]",
		Short: "Parse documentation comments and report problems",
		Long:  parseLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, &cfg, flags)
		},
	}

	addParseFlags(cmd, &cfg, flags)

	return cmd
}

const parseLongDescription = `Parse the documentation comments of source and documentation files.

By default, scans the current directory for the configured extensions
(.h, .hpp, .c, .cpp, .dox, .doc, .md and .txt). Every /** */, /*! */, ///
and //! comment is parsed; documentation files are parsed whole.

Examples:
  doxyparse parse                         # Parse current directory
  doxyparse parse src/ include/           # Parse two directories
  doxyparse parse widget.h                # Parse a single file
  doxyparse parse --symbols tags.yaml     # Resolve links against a symbol file
  doxyparse parse --format json --trees   # Output diagnostics and trees as JSON
  doxyparse parse --strict                # Fail on warnings`

func runParse(cmd *cobra.Command, args []string, overrides *config.Config, flags *parseFlags) error {
	logger := logging.Default()
	start := time.Now()

	overrides.Format = config.OutputFormat(flags.format)

	sess, err := newSession(cmd, overrides)
	if err != nil {
		return err
	}
	cfg := sess.cfg

	docRunner := runner.New(sess.parser)
	docRunner.DefaultSeverity = config.Severity(cfg.SeverityDefault)

	runOpts := runner.OptionsFromConfig(cfg, sess.workDir, args...)
	runOpts.FollowSymlinks = flags.followSymlinks

	logger.Debug("starting parse run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := docRunner.Run(sess.ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("parse run failed"), err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:       cmd.OutOrStdout(),
		Format:       cfg.Format,
		Color:        cfg.Color,
		ShowSource:   !flags.noSource,
		ShowSummary:  true,
		GroupByFile:  true,
		IncludeTrees: flags.trees,
		Compact:      flags.compact,
		WorkingDir:   sess.workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(sess.ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	logger.Debug("parse run finished",
		logging.FieldFilesParsed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldDuration, time.Since(start),
	)

	if code := ExitCodeFromResult(result, cfg.Strict); code != ExitSuccess {
		return &ExitError{Code: code}
	}
	return nil
}

func addParseFlags(cmd *cobra.Command, cfg *config.Config, flags *parseFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json, yaml, summary, tree")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&cfg.Ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&cfg.Extensions, "ext", nil, "file extensions to scan (replaces the configured list)")
	cmd.Flags().StringVar(&cfg.Symbols, "symbols", "", "YAML symbol file used to resolve links and references")
	cmd.Flags().StringSliceVar(&cfg.ExamplePath, "example-path", nil, "directories searched by \\include and \\snippet")
	cmd.Flags().StringVar(&cfg.SeverityDefault, "severity", "", "severity of ordinary diagnostics: error, warning, info")
	cmd.Flags().BoolVar(&cfg.Strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&cfg.Parser.MarkdownSupport, "markdown", false, "run the Markdown pre-pass")
	cmd.Flags().BoolVar(&cfg.Parser.InternalDocs, "internal", false, "keep \\internal sections")
	cmd.Flags().BoolVar(&cfg.Parser.WarnUndocParams, "warn-undoc-params", false, "report undocumented parameters")
	cmd.Flags().BoolVar(&cfg.Parser.DetectCodeLanguage, "detect-language", false,
		"guess the language of \\code blocks")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow directory symlinks")
	cmd.Flags().BoolVar(&flags.noSource, "no-source", false, "hide source lines in text output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use minified JSON output")
	cmd.Flags().BoolVar(&flags.trees, "trees", false, "include parse trees in JSON and YAML output")
}

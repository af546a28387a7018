package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/copperspice/doxypress-sub002/internal/logging"
	"github.com/copperspice/doxypress-sub002/pkg/config"
	"github.com/copperspice/doxypress-sub002/pkg/diag"
	"github.com/copperspice/doxypress-sub002/pkg/fsutil"
	"github.com/copperspice/doxypress-sub002/pkg/reporter"
	"github.com/copperspice/doxypress-sub002/pkg/runner"
)

type treeFlags struct {
	format string
	output string
	block  int
}

func newTreeCommand() *cobra.Command {
	var cfg config.Config
	flags := &treeFlags{}

	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Print the parse tree of a file's comment blocks",
		Long: `Print the parse tree of every documentation comment in a file.

Diagnostics are logged to stderr; the tree goes to stdout or --output.

Examples:
  doxyparse tree widget.h                  # Draw all trees
  doxyparse tree widget.h --block 2        # Only the second comment block
  doxyparse tree intro.md --format json    # Trees as JSON
  doxyparse tree widget.h -o tree.yaml --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd, args[0], &cfg, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", string(config.FormatTree), "tree format: tree, json, yaml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the trees to a file instead of stdout")
	cmd.Flags().IntVar(&flags.block, "block", 0, "only print the n-th comment block (1-based, 0 = all)")
	cmd.Flags().StringVar(&cfg.Symbols, "symbols", "", "YAML symbol file used to resolve links and references")
	cmd.Flags().BoolVar(&cfg.Parser.MarkdownSupport, "markdown", false, "run the Markdown pre-pass")
	cmd.Flags().BoolVar(&cfg.Parser.InternalDocs, "internal", false, "keep \\internal sections")

	return cmd
}

func runTree(cmd *cobra.Command, path string, overrides *config.Config, flags *treeFlags) error {
	format := config.OutputFormat(flags.format)
	switch format {
	case config.FormatTree, config.FormatJSON, config.FormatYAML:
	default:
		return fmt.Errorf("invalid tree format %q; must be one of: tree, json, yaml", flags.format)
	}

	sess, err := newSession(cmd, overrides)
	if err != nil {
		return err
	}

	outcome := runner.New(sess.parser).ProcessFile(sess.ctx, path)
	if outcome.Error != nil {
		return fmt.Errorf("parse %s: %w", path, outcome.Error)
	}

	blocks := outcome.Blocks
	if flags.block != 0 {
		if flags.block < 0 || flags.block > len(blocks) {
			return fmt.Errorf("block %d out of range; %s has %d comment blocks", flags.block, path, len(blocks))
		}
		blocks = blocks[flags.block-1 : flags.block]
	}

	sink := diag.LogSink{Logger: logging.NewWithWriter(cmd.ErrOrStderr(), "info")}
	for _, d := range outcome.Diagnostics {
		sink.Report(d)
	}

	color := sess.cfg.Color
	if flags.output != "" {
		color = config.ColorNever
	}

	var buf bytes.Buffer
	for i, block := range blocks {
		if format == config.FormatTree && len(blocks) > 1 {
			if i > 0 {
				buf.WriteByte('\n')
			}
			fmt.Fprintf(&buf, "%s:%d\n", path, block.Line)
		}
		if err := reporter.WriteTree(&buf, block.Result.Root, format, color); err != nil {
			return fmt.Errorf("write tree: %w", err)
		}
	}

	if flags.output == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}

	written, err := fsutil.WriteAtomicIfChanged(sess.ctx, flags.output, buf.Bytes(), fsutil.DefaultFileMode)
	if err != nil {
		return fmt.Errorf("write %s: %w", flags.output, err)
	}
	if written {
		logging.Default().Info("wrote parse tree", logging.FieldOutput, flags.output)
	} else {
		logging.Default().Debug("parse tree unchanged", logging.FieldOutput, flags.output)
	}
	return nil
}

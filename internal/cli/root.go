// Package cli provides the Cobra command structure for doxyparse.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/copperspice/doxypress-sub002/internal/logging"
	"github.com/copperspice/doxypress-sub002/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root doxyparse command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "doxyparse",
		Short: "A parser and checker for DoxyPress documentation comments",
		Long: `doxyparse parses the documentation comments of C and C++ sources and
plain documentation files into a typed tree.

It understands the DoxyPress command set, HTML-style tags, Markdown and
autolinked names, and reports grammar, nesting and resolution problems the
way the documentation generator would, without generating any output.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if debug {
				logging.SetLevel("debug")
			}
			if _, err := config.ParseColorMode(color); err != nil {
				return fmt.Errorf("--color: %w", err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", string(config.ColorAuto),
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newTreeCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

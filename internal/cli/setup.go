package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/copperspice/doxypress-sub002/internal/configloader"
	"github.com/copperspice/doxypress-sub002/internal/logging"
	"github.com/copperspice/doxypress-sub002/pkg/config"
	"github.com/copperspice/doxypress-sub002/pkg/docparser"
	"github.com/copperspice/doxypress-sub002/pkg/resolver"
)

// session is the resolved state shared by the commands that parse.
type session struct {
	ctx     context.Context
	workDir string
	cfg     *config.Config
	parser  *docparser.Parser
}

// newSession loads the configuration with overrides applied on top and
// builds the parser and resolver it describes.
func newSession(cmd *cobra.Command, overrides *config.Config) (*session, error) {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}
	if cmd.Flags().Changed("color") {
		color, err := cmd.Flags().GetString("color")
		if err != nil {
			return nil, fmt.Errorf("get color flag: %w", err)
		}
		overrides.Color = config.ColorMode(color)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    overrides,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	parser, err := buildParser(cfg)
	if err != nil {
		return nil, err
	}

	logger.Debug("configuration loaded",
		logging.FieldSymbols, cfg.Symbols,
		logging.FieldMarkdown, cfg.Parser.MarkdownSupport,
		logging.FieldJobs, cfg.Jobs,
	)

	return &session{ctx: ctx, workDir: workDir, cfg: cfg, parser: parser}, nil
}

// buildParser creates the resolver described by cfg and a parser using it.
// Example directories back \include and \snippet; the symbol file supplies
// entities, sections and pages.
func buildParser(cfg *config.Config) (*docparser.Parser, error) {
	res := resolver.NewMemory(cfg.ExamplePath...)
	if cfg.Symbols != "" {
		if err := res.LoadYAMLFile(cfg.Symbols); err != nil {
			return nil, fmt.Errorf("load symbols: %w", err)
		}
	}

	return docparser.New(cfg.Parser, res, docparser.WithCiteBibFiles(len(cfg.CiteBibFiles))), nil
}

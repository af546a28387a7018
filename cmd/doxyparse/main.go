// Package main is the entry point for the doxyparse CLI.
package main

import (
	"errors"
	"os"

	"github.com/copperspice/doxypress-sub002/internal/cli"
	"github.com/copperspice/doxypress-sub002/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// Issues were already reported; only the exit code is left to set.
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		logging.Default().Error("command failed", logging.FieldError, err)
		return cli.ExitParseErrors
	}

	return cli.ExitSuccess
}

// Package runner parses the documentation comments of many files
// concurrently.
package runner

import "github.com/copperspice/doxypress-sub002/pkg/config"

// Options selects the files of a run and how many are parsed at once.
type Options struct {
	// Paths are files or directories; none means the working directory.
	// A file named explicitly is parsed whatever its extension.
	Paths []string

	// WorkingDir resolves relative Paths and anchors the globs. Empty
	// means the process working directory.
	WorkingDir string

	// Extensions (lowercase, with the dot) select the files found by
	// walking a directory. Empty means config.DefaultExtensions().
	Extensions []string

	// IncludeGlobs, when set, restrict walked files to those matching one
	// of the doublestar patterns.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files and whole directories.
	ExcludeGlobs []string

	FollowSymlinks bool

	// Jobs bounds the worker pool; 0 or less means runtime.NumCPU().
	Jobs int
}

// OptionsFromConfig returns the options for parsing paths under workDir
// with the file selection and job count of cfg.
func OptionsFromConfig(cfg *config.Config, workDir string, paths ...string) Options {
	opts := Options{Paths: paths, WorkingDir: workDir}
	if cfg != nil {
		opts.Extensions = cfg.Extensions
		opts.ExcludeGlobs = cfg.Ignore
		opts.Jobs = cfg.Jobs
	}
	return opts
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) paths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

package configloader

import (
	"fmt"
	"os"

	"github.com/copperspice/doxypress-sub002/pkg/config"
)

// overlayFile returns a copy of base with the keys present in the YAML file
// at path applied on top. Keys absent from the file keep base's value, so a
// file may turn a boolean off.
func overlayFile(base *config.Config, path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return base.Overlay(content)
}

// merge applies the set fields of override (typically built from CLI flags)
// on top of base:
//   - Scalars: override overwrites base if non-zero
//   - Booleans: only true overrides, flags cannot unset a file setting
//   - Ignore: override's patterns are appended
//   - Other slices: override replaces base if non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.SeverityDefault != "" {
		result.SeverityDefault = override.SeverityDefault
	}
	if override.Symbols != "" {
		result.Symbols = override.Symbols
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Strict {
		result.Strict = true
	}

	if override.Parser.MarkdownSupport {
		result.Parser.MarkdownSupport = true
	}
	if override.Parser.InternalDocs {
		result.Parser.InternalDocs = true
	}
	if override.Parser.WarnUndocParams {
		result.Parser.WarnUndocParams = true
	}
	if override.Parser.DetectCodeLanguage {
		result.Parser.DetectCodeLanguage = true
	}

	result.Ignore = append(result.Ignore, override.Ignore...)
	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.ExamplePath != nil {
		result.ExamplePath = override.ExamplePath
	}
	if override.CiteBibFiles != nil {
		result.CiteBibFiles = override.CiteBibFiles
	}

	return result
}

package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/copperspice/doxypress-sub002/pkg/config"
)

// envVarPrefix is the prefix for all doxyparse environment variables.
const envVarPrefix = "DOXYPARSE_"

// envVar describes one supported environment variable.
type envVar struct {
	description string
	apply       func(cfg *config.Config, value string) error
}

func boolVar(description string, field func(*config.Config) *bool) envVar {
	return envVar{description: description, apply: func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		*field(cfg) = b
		return nil
	}}
}

func intVar(description string, field func(*config.Config) *int) envVar {
	return envVar{description: description, apply: func(cfg *config.Config, value string) error {
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		*field(cfg) = i
		return nil
	}}
}

func stringVar(description string, set func(*config.Config, string)) envVar {
	return envVar{description: description, apply: func(cfg *config.Config, value string) error {
		set(cfg, value)
		return nil
	}}
}

func sliceVar(description string, field func(*config.Config) *[]string) envVar {
	return envVar{description: description, apply: func(cfg *config.Config, value string) error {
		*field(cfg) = parseSliceValue(value)
		return nil
	}}
}

// envVars maps variable names without the prefix to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = map[string]envVar{
	"AUTOLINK_SUPPORT": boolVar("Link words that resolve to documented entities: true or false",
		func(c *config.Config) *bool { return &c.Parser.AutolinkSupport }),
	"MARKDOWN_SUPPORT": boolVar("Run the Markdown pre-pass: true or false",
		func(c *config.Config) *bool { return &c.Parser.MarkdownSupport }),
	"WARN_DOC_ERROR": boolVar("Report grammar and nesting problems: true or false",
		func(c *config.Config) *bool { return &c.Parser.WarnDocError }),
	"WARN_UNDOC_PARAMS": boolVar("Report undocumented parameters: true or false",
		func(c *config.Config) *bool { return &c.Parser.WarnUndocParams }),
	"INTERNAL_DOCS": boolVar("Keep \\internal sections: true or false",
		func(c *config.Config) *bool { return &c.Parser.InternalDocs }),
	"DETECT_CODE_LANGUAGE": boolVar("Guess the language of \\code blocks: true or false",
		func(c *config.Config) *bool { return &c.Parser.DetectCodeLanguage }),
	"SUBPAGE_NESTING_LEVEL": intVar("Section level offset for nested pages",
		func(c *config.Config) *int { return &c.Parser.SubpageNestingLevel }),
	"SEVERITY_DEFAULT": stringVar("Default severity: error, warning, or info",
		func(c *config.Config, v string) { c.SeverityDefault = v }),
	"SYMBOLS": stringVar("Path of the YAML symbol file",
		func(c *config.Config, v string) { c.Symbols = v }),
	"FORMAT": stringVar("Output format: text, json, yaml, summary, or tree",
		func(c *config.Config, v string) { c.Format = config.OutputFormat(strings.ToLower(v)) }),
	"COLOR": stringVar("Color mode: auto, always, or never",
		func(c *config.Config, v string) { c.Color = config.ColorMode(strings.ToLower(v)) }),
	"JOBS": intVar("Number of parallel workers (0 = auto)",
		func(c *config.Config) *int { return &c.Jobs }),
	"STRICT": boolVar("Fail on warnings: true or false",
		func(c *config.Config) *bool { return &c.Strict }),
	"IGNORE": sliceVar("Comma-separated list of ignore patterns",
		func(c *config.Config) *[]string { return &c.Ignore }),
	"EXTENSIONS": sliceVar("Comma-separated list of scanned file extensions",
		func(c *config.Config) *[]string { return &c.Extensions }),
	"EXAMPLE_PATH": sliceVar("Comma-separated list of example directories",
		func(c *config.Config) *[]string { return &c.ExamplePath }),
	"CITE_BIB_FILES": sliceVar("Comma-separated list of bibliography files",
		func(c *config.Config) *[]string { return &c.CiteBibFiles }),
}

// LoadFromEnv applies DOXYPARSE_* environment variable overrides to cfg.
// Variables are applied in name order so errors are reported
// deterministically.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	names := make([]string, 0, len(envVars))
	for name := range envVars {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		value := os.Getenv(envVarPrefix + name)
		if value == "" {
			continue
		}
		if err := envVars[name].apply(cfg, value); err != nil {
			return fmt.Errorf("%s%s: %w", envVarPrefix, name, err)
		}
	}
	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns every supported environment variable with its
// description.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envVars))
	for name, v := range envVars {
		out[envVarPrefix+name] = v.description
	}
	return out
}

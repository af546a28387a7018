// Package config defines core configuration types for doxyparse.
// These types are pure data structures with no dependency on the loader that fills them.
package config

// Severity represents the severity level of a parser diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid returns true if the severity is one of the known levels.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// OutputFormat specifies the output format for parse results.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatTree    OutputFormat = "tree"
	FormatYAML    OutputFormat = "yaml"
	FormatSummary OutputFormat = "summary"
)

// ColorMode controls colored terminal output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// DefaultSubpageNestingLevel is the section level at which the nesting offset starts.
const DefaultSubpageNestingLevel = 0

// ParserConfig holds the options consulted while parsing a comment block.
type ParserConfig struct {
	// AutolinkSupport turns linked words into references when they resolve.
	AutolinkSupport bool `mapstructure:"autolink_support" yaml:"autolink_support"`

	// MarkdownSupport runs the Markdown pre-pass before lexing.
	MarkdownSupport bool `mapstructure:"markdown_support" yaml:"markdown_support"`

	// SubpageNestingLevel offsets the level at which section commands may nest.
	SubpageNestingLevel int `mapstructure:"subpage_nesting_level" yaml:"subpage_nesting_level"`

	// WarnDocError enables grammar and nesting diagnostics.
	WarnDocError bool `mapstructure:"warn_doc_error" yaml:"warn_doc_error"`

	// WarnUndocParams reports members whose parameters are not all documented.
	WarnUndocParams bool `mapstructure:"warn_undoc_params" yaml:"warn_undoc_params"`

	// InternalDocs keeps \internal sections visible.
	InternalDocs bool `mapstructure:"internal_docs" yaml:"internal_docs"`

	// DetectCodeLanguage guesses the language of \code blocks without an {.ext}.
	DetectCodeLanguage bool `mapstructure:"detect_code_language" yaml:"detect_code_language"`
}

// Config is the root configuration structure for doxyparse.
type Config struct {
	// Parser holds the markup parser options.
	Parser ParserConfig `mapstructure:"parser" yaml:"parser"`

	// SeverityDefault is the severity given to diagnostics that don't carry one.
	SeverityDefault string `mapstructure:"severity_default" yaml:"severity_default"`

	// Symbols is the path of a YAML symbol file loaded into the resolver.
	Symbols string `mapstructure:"symbols" yaml:"symbols,omitempty"`

	// CiteBibFiles lists the bibliography files whose keys \cite accepts.
	CiteBibFiles []string `mapstructure:"cite_bib_files" yaml:"cite_bib_files,omitempty"`

	// ExamplePath lists directories searched by \include and \snippet.
	ExamplePath []string `mapstructure:"example_path" yaml:"example_path,omitempty"`

	// Extensions lists the file extensions scanned for comment blocks.
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// Strict makes warnings count as failures for the exit code.
	Strict bool `mapstructure:"-" yaml:"-"`

	// Color controls colored output.
	Color ColorMode `mapstructure:"-" yaml:"-"`
}

// DefaultExtensions are the file extensions scanned when none are configured.
func DefaultExtensions() []string {
	return []string{".doc", ".dox", ".txt", ".md", ".h", ".hpp", ".cpp", ".c"}
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Parser: ParserConfig{
			AutolinkSupport:     true,
			MarkdownSupport:     false,
			SubpageNestingLevel: DefaultSubpageNestingLevel,
			WarnDocError:        true,
			WarnUndocParams:     false,
			InternalDocs:        false,
			DetectCodeLanguage:  false,
		},
		SeverityDefault: string(SeverityWarning),
		Extensions:      DefaultExtensions(),
		Ignore:          nil,
		Format:          FormatText,
		Jobs:            0, // 0 means use GOMAXPROCS
		Color:           ColorAuto,
	}
}

package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every option with its default value.
	// If false, generates a minimal commented template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}
	if opts.Full {
		return generateFullTemplate()
	}
	return generateMinimalTemplate(), nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

parser:
  # Turn words such as Foo::bar or func() into links when they resolve
  autolink_support: true

  # Convert Markdown emphasis, code spans and headings before parsing
  # markdown_support: false

  # Level at which \section commands may start nesting
  # subpage_nesting_level: 0

  # Report grammar and nesting problems in comment blocks
  warn_doc_error: true

  # Report members whose parameters are not all documented
  # warn_undoc_params: false

  # Keep \internal sections visible
  # internal_docs: false

  # Guess the language of \code blocks that carry no {.ext}
  # detect_code_language: false

# Default severity for diagnostics: error, warning, or info
# severity_default: warning

# YAML file with symbols, sections and files known to the resolver
# symbols: doxyparse-symbols.yml

# Directories searched by \include and \snippet
# example_path:
#   - examples

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
`)

	return buf.Bytes()
}

// generateFullTemplate writes the defaults of every option.
func generateFullTemplate() ([]byte, error) {
	cfg := NewConfig()
	cfg.Ignore = []string{"vendor/**", ".git/**"}
	cfg.ExamplePath = []string{}
	cfg.CiteBibFiles = []string{}

	return cfg.ToYAMLWithHeader(DefaultTemplateHeader())
}

// templateToJSON renders the default configuration as JSON.
func templateToJSON() ([]byte, error) {
	cfg := NewConfig()

	// Round-trip through YAML so JSON keys follow the yaml tags.
	yamlBytes, err := cfg.ToYAML()
	if err != nil {
		return nil, err
	}

	var generic map[string]any
	if err := yaml.Unmarshal(yamlBytes, &generic); err != nil {
		return nil, fmt.Errorf("decode template: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(generic, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# doxyparse configuration
# See: https://github.com/copperspice/doxypress`
}

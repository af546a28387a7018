package config

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

const yamlIndent = 2

func encodeYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// ToYAML encodes the file-backed fields of c. A nil config encodes to nil.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	return encodeYAML(c)
}

// ToYAMLWithHeader is ToYAML preceded by header and a blank line.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	body, err := c.ToYAML()
	if err != nil || header == "" {
		return body, err
	}
	return append([]byte(strings.TrimRight(header, "\n")+"\n\n"), body...), nil
}

// FromYAML decodes data over the NewConfig defaults.
func FromYAML(data []byte) (*Config, error) {
	return NewConfig().Overlay(data)
}

// Overlay returns a copy of c with the keys present in data applied. Keys
// absent from data keep c's values, so a later layer can turn a boolean
// off. An overlay that clears the extension list restores the defaults.
func (c *Config) Overlay(data []byte) (*Config, error) {
	out := c.Clone()
	if out == nil {
		out = NewConfig()
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if len(out.Extensions) == 0 {
		out.Extensions = DefaultExtensions()
	}
	return out, nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	out.CiteBibFiles = slices.Clone(c.CiteBibFiles)
	out.ExamplePath = slices.Clone(c.ExamplePath)
	out.Extensions = slices.Clone(c.Extensions)
	out.Ignore = slices.Clone(c.Ignore)
	return &out
}

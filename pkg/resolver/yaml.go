package resolver

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// document is the layout of a YAML symbol file.
type document struct {
	Entities  []Entity          `yaml:"entities"`
	Sections  []Section         `yaml:"sections"`
	Files     []File            `yaml:"files"`
	XRefs     []XRefItem        `yaml:"xrefs"`
	Citations map[string]string `yaml:"citations"`
	Formulas  map[int]string    `yaml:"formulas"`
}

// LoadYAML adds the contents of a YAML symbol file to m.
// Unknown keys are rejected.
func (m *Memory) LoadYAML(r io.Reader) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var doc document
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode symbols: %w", err)
	}

	for i, e := range doc.Entities {
		if e.Name == "" {
			return fmt.Errorf("entity %d: missing name", i)
		}
		if e.Kind == "" {
			e.Kind = KindMember
		}
		m.AddEntity(e)
	}
	for i, s := range doc.Sections {
		if s.Label == "" {
			return fmt.Errorf("section %d: missing label", i)
		}
		if s.Kind == "" {
			s.Kind = SectionSection
		}
		m.AddSection(s)
	}
	for i, f := range doc.Files {
		if f.Name == "" {
			return fmt.Errorf("file %d: missing name", i)
		}
		m.AddFile(f)
	}
	for _, x := range doc.XRefs {
		m.AddXRefItem(x)
	}
	for key, label := range doc.Citations {
		m.AddCitation(key, label)
	}
	for id, text := range doc.Formulas {
		m.AddFormula(id, text)
	}

	return nil
}

// LoadYAMLFile reads a YAML symbol file from disk into m.
func (m *Memory) LoadYAMLFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open symbols: %w", err)
	}
	defer f.Close()

	if err := m.LoadYAML(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

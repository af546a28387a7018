package reporter

import (
	"github.com/copperspice/doxypress-sub002/pkg/config"
	"github.com/copperspice/doxypress-sub002/pkg/diag"
	"github.com/copperspice/doxypress-sub002/pkg/docast"
	"github.com/copperspice/doxypress-sub002/pkg/runner"
)

// documentVersion is the schema version of JSON and YAML output.
const documentVersion = "1.0.0"

// Document is the structure written by the JSON and YAML reporters.
type Document struct {
	Version string         `json:"version" yaml:"version"`
	Files   []FileDocument `json:"files" yaml:"files"`
	Summary Summary        `json:"summary" yaml:"summary"`
}

// FileDocument is one file of a Document.
type FileDocument struct {
	Path        string            `json:"path" yaml:"path"`
	Error       string            `json:"error,omitempty" yaml:"error,omitempty"`
	Blocks      []BlockDocument   `json:"blocks,omitempty" yaml:"blocks,omitempty"`
	Diagnostics []diag.Diagnostic `json:"diagnostics" yaml:"diagnostics"`
}

// BlockDocument is one comment block of a file.
type BlockDocument struct {
	Line     int              `json:"line" yaml:"line"`
	Sections []string         `json:"sections,omitempty" yaml:"sections,omitempty"`
	Tree     *docast.Exported `json:"tree,omitempty" yaml:"tree,omitempty"`
}

// Summary contains aggregate statistics.
type Summary struct {
	FilesChecked    int            `json:"filesChecked" yaml:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues" yaml:"filesWithIssues"`
	FilesErrored    int            `json:"filesErrored" yaml:"filesErrored"`
	BlocksParsed    int            `json:"blocksParsed" yaml:"blocksParsed"`
	TotalIssues     int            `json:"totalIssues" yaml:"totalIssues"`
	BySeverity      map[string]int `json:"bySeverity" yaml:"bySeverity"`
	ByCategory      map[string]int `json:"byCategory" yaml:"byCategory"`
}

// buildDocument converts a run result. Blocks are listed only when they
// define sections or when trees are requested.
func buildDocument(result *runner.Result, opts Options) *Document {
	doc := &Document{
		Version: documentVersion,
		Files:   make([]FileDocument, 0),
		Summary: Summary{
			BySeverity: make(map[string]int),
			ByCategory: make(map[string]int),
		},
	}
	if result == nil {
		return doc
	}

	doc.Files = make([]FileDocument, 0, len(result.Files))
	for _, file := range result.Files {
		fd := FileDocument{
			Path:        opts.displayPath(file.Path),
			Diagnostics: make([]diag.Diagnostic, 0, len(file.Diagnostics)),
		}

		if file.Error != nil {
			fd.Error = file.Error.Error()
			doc.Summary.FilesErrored++
		}

		for _, b := range file.Blocks {
			bd := BlockDocument{Line: b.Line}
			if b.Result != nil {
				for _, s := range b.Result.Sections {
					bd.Sections = append(bd.Sections, s.Label)
				}
				if opts.IncludeTrees {
					bd.Tree = docast.Export(b.Result.Root)
				}
			}
			if bd.Tree != nil || len(bd.Sections) > 0 {
				fd.Blocks = append(fd.Blocks, bd)
			}
		}
		doc.Summary.BlocksParsed += len(file.Blocks)

		for _, d := range file.Diagnostics {
			d.File = opts.displayPath(d.File)
			fd.Diagnostics = append(fd.Diagnostics, d)

			severity := string(d.Severity)
			if severity == "" {
				severity = string(config.SeverityWarning)
			}
			doc.Summary.BySeverity[severity]++
			doc.Summary.ByCategory[string(d.Category)]++
		}
		doc.Summary.TotalIssues += len(fd.Diagnostics)
		if len(fd.Diagnostics) > 0 {
			doc.Summary.FilesWithIssues++
		}

		doc.Files = append(doc.Files, fd)
		doc.Summary.FilesChecked++
	}

	return doc
}

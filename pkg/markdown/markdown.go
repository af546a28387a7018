// Package markdown rewrites the Markdown inside a comment block into the
// command and tag form the comment lexer understands.
//
// Only inline emphasis, strong emphasis, strikethrough, code spans, inline
// links and ATX headings are rewritten. Everything else, including lists
// and indented code, is left for the comment parser, which has its own
// rules for them. Raw blocks such as \code or \f$ formulas are never
// touched.
package markdown

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/copperspice/doxypress-sub002/pkg/doctoken"
)

// Preprocessor rewrites Markdown. It is safe for concurrent use.
type Preprocessor struct {
	md goldmark.Markdown
}

// New creates a Preprocessor.
func New() *Preprocessor {
	return &Preprocessor{
		md: goldmark.New(goldmark.WithExtensions(extension.Strikethrough)),
	}
}

// edit replaces src[start:end] with repl.
type edit struct {
	start, end int
	repl       string
}

// Preprocess returns comment with its Markdown rewritten.
func (p *Preprocessor) Preprocess(comment string) string {
	src := []byte(comment)
	doc := p.md.Parser().Parse(text.NewReader(src), parser.WithContext(parser.NewContext()))

	raw := doctoken.RawRegions(comment)

	var edits []edit
	// add keeps the edits of one construct only when none of them touches
	// a raw block, so no opening tag is left without its closing one.
	add := func(group []edit) {
		for _, e := range group {
			for _, r := range raw {
				if r.Overlaps(e.start, e.end) {
					return
				}
			}
		}
		edits = append(edits, group...)
	}

	//nolint:errcheck // the walker never returns an error
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			add(headingEdits(src, node))
		case *ast.Emphasis:
			tag := "em"
			if node.Level == 2 {
				tag = "b"
			}
			add(delimitedEdits(src, node, node.Level, tag))
		case *east.Strikethrough:
			add(delimitedEdits(src, node, 2, "del"))
		case *ast.CodeSpan:
			add(codeSpanEdits(src, node))
			return ast.WalkSkipChildren, nil
		case *ast.Link:
			add(linkEdits(src, node))
		}
		return ast.WalkContinue, nil
	})

	return apply(comment, edits)
}

// Preprocess rewrites comment with a default Preprocessor.
func Preprocess(comment string) string {
	return New().Preprocess(comment)
}

// textBounds returns the first and last byte of the text below n.
func textBounds(n ast.Node) (start, stop int, ok bool) {
	start, stop = -1, -1
	//nolint:errcheck // the walker never returns an error
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		t, isText := c.(*ast.Text)
		if !entering || !isText {
			return ast.WalkContinue, nil
		}
		if start < 0 {
			start = t.Segment.Start
		}
		stop = t.Segment.Stop
		return ast.WalkContinue, nil
	})
	return start, stop, start >= 0 && stop >= start
}

func isRun(src []byte, start, end int, chars string) bool {
	if start < 0 || end > len(src) || start >= end {
		return false
	}
	for _, c := range src[start:end] {
		if !strings.ContainsRune(chars, rune(c)) {
			return false
		}
	}
	return true
}

// delimitedEdits replaces the width-byte delimiters around n with <tag>
// and </tag>.
func delimitedEdits(src []byte, n ast.Node, width int, tag string) []edit {
	start, stop, ok := textBounds(n)
	if !ok || !isRun(src, start-width, start, "*_~") || !isRun(src, stop, stop+width, "*_~") {
		return nil
	}
	return []edit{
		{start - width, start, "<" + tag + ">"},
		{stop, stop + width, "</" + tag + ">"},
	}
}

func codeSpanEdits(src []byte, n *ast.CodeSpan) []edit {
	start, stop, ok := textBounds(n)
	if !ok {
		return nil
	}
	open := start
	for open > 0 && src[open-1] == ' ' && start-open < 1 {
		open--
	}
	ticks := open
	for ticks > 0 && src[ticks-1] == '`' {
		ticks--
	}
	width := open - ticks
	if width == 0 {
		return nil
	}

	closeStart := stop
	if closeStart < len(src) && src[closeStart] == ' ' && open < start {
		closeStart++
	}
	if !isRun(src, closeStart, closeStart+width, "`") {
		return nil
	}
	return []edit{
		{ticks, start, "<tt>"},
		{stop, closeStart + width, "</tt>"},
	}
}

// linkEdits rewrites [text](dest "title") as <a href="dest">text</a>.
func linkEdits(src []byte, n *ast.Link) []edit {
	start, stop, ok := textBounds(n)
	if !ok || start == 0 || src[start-1] != '[' {
		return nil
	}
	if stop+1 >= len(src) || src[stop] != ']' || src[stop+1] != '(' {
		return nil
	}
	end := strings.IndexByte(string(src[stop:]), ')')
	if end < 0 {
		return nil
	}
	return []edit{
		{start - 1, start, fmt.Sprintf("<a href=%q>", string(n.Destination))},
		{stop, stop + end + 1, "</a>"},
	}
}

// headingEdits rewrites "## Title" as <h2>Title</h2>. Setext headings are
// left alone.
func headingEdits(src []byte, n *ast.Heading) []edit {
	lines := n.Lines()
	if lines.Len() == 0 {
		return nil
	}
	seg := lines.At(0)
	lineStart := strings.LastIndexByte(string(src[:seg.Start]), '\n') + 1
	prefix := string(src[lineStart:seg.Start])
	if !strings.Contains(prefix, "#") {
		return nil
	}
	end := seg.Stop
	for end > seg.Start && (src[end-1] == '\n' || src[end-1] == '\r') {
		end--
	}
	return []edit{
		{lineStart, seg.Start, fmt.Sprintf("<h%d>", n.Level)},
		{end, end, fmt.Sprintf("</h%d>", n.Level)},
	}
}

// apply performs edits on s. Edits that overlap an earlier one are
// dropped.
func apply(s string, edits []edit) string {
	if len(edits) == 0 {
		return s
	}
	slices.SortStableFunc(edits, func(a, b edit) int {
		return a.start - b.start
	})

	var sb strings.Builder
	pos := 0
	for _, e := range edits {
		if e.start < pos {
			continue
		}
		sb.WriteString(s[pos:e.start])
		sb.WriteString(e.repl)
		pos = e.end
	}
	sb.WriteString(s[pos:])
	return sb.String()
}

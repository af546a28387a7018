// Package docparser turns the token stream of a documentation comment into
// a docast tree.
//
// The parser is a recursive-descent parser. Every node parser consumes
// tokens until something it cannot handle arrives and returns a Code that
// tells its caller why it stopped; the token that caused the stop stays in
// the parser's current-token slot so the caller can act on it.
//
// Problems with the input are never fatal. They are reported to a diag.Sink
// and parsing continues with a fallback. Only an inconsistency in the
// parser's own bookkeeping stops a parse, as an *InternalError.
package docparser

import (
	"context"
	"errors"
	"fmt"

	"github.com/copperspice/doxypress-sub002/pkg/config"
	"github.com/copperspice/doxypress-sub002/pkg/diag"
	"github.com/copperspice/doxypress-sub002/pkg/docast"
	"github.com/copperspice/doxypress-sub002/pkg/doctoken"
	"github.com/copperspice/doxypress-sub002/pkg/langdetect"
	"github.com/copperspice/doxypress-sub002/pkg/markdown"
	"github.com/copperspice/doxypress-sub002/pkg/resolver"
)

// Parser parses comment blocks. It holds configuration only, so one Parser
// may be used by many goroutines.
type Parser struct {
	cfg        config.ParserConfig
	res        resolver.Resolver
	sink       diag.Sink
	bibFiles   int
	newSource  func(text string) doctoken.Source
	detectLang func(code string) string
	markdown   *markdown.Preprocessor
}

// Option configures a Parser.
type Option func(*Parser)

// WithSink forwards every diagnostic to sink in addition to the Result.
func WithSink(sink diag.Sink) Option {
	return func(p *Parser) {
		p.sink = sink
	}
}

// WithCiteBibFiles sets the number of configured bibliography files. \cite
// is reported as unusable when there are none.
func WithCiteBibFiles(n int) Option {
	return func(p *Parser) {
		p.bibFiles = n
	}
}

// WithSourceFactory replaces the token source used for every text the
// parser reads. The default is doctoken.NewLexer.
func WithSourceFactory(fn func(text string) doctoken.Source) Option {
	return func(p *Parser) {
		p.newSource = fn
	}
}

// WithLanguageDetector replaces the function that guesses the extension of
// a \code block without an explicit one.
func WithLanguageDetector(fn func(code string) string) Option {
	return func(p *Parser) {
		p.detectLang = fn
	}
}

// New creates a Parser that resolves names with res.
func New(cfg config.ParserConfig, res resolver.Resolver, opts ...Option) *Parser {
	p := &Parser{
		cfg:        cfg,
		res:        res,
		newSource:  func(text string) doctoken.Source { return doctoken.NewLexer(text) },
		detectLang: langdetect.Extension,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.cfg.MarkdownSupport {
		p.markdown = markdown.New()
	}
	return p
}

// Request describes one comment block.
type Request struct {
	// File is the file the comment belongs to; it is used in diagnostics
	// and node positions.
	File string

	// Line is the line of File the comment starts on.
	Line int

	// Text is the comment text without comment delimiters.
	Text string

	// Context is the scope names are resolved in, e.g. "ns::Class".
	Context string

	// Member is the documented member, if any. Its parameter list is used
	// to validate \param names.
	Member *resolver.Entity

	// IsExample marks the comment of an example file named ExampleName.
	IsExample   bool
	ExampleName string
}

// Result is the outcome of a parse.
type Result struct {
	// Root is the parsed tree, a NodeRoot for Parse and a NodeText for
	// ParseText.
	Root *docast.Node

	// Sections lists the labels resolved or defined by the comment, in the
	// order they were first seen.
	Sections []resolver.Section

	Diagnostics []diag.Diagnostic
}

// Parse parses a full comment block.
func (p *Parser) Parse(ctx context.Context, req Request) (*Result, error) {
	return p.run(ctx, req, docast.NodeRoot, func(st *parser, root *docast.Node) {
		text := req.Text
		if p.markdown != nil {
			text = p.markdown.Preprocess(text)
		}
		text = st.expandCopyDoc(text)

		st.src = p.newSource(text)
		st.parseRoot(root)
		st.checkUndocumentedParams()
	})
}

// ParseText parses a plain text such as a title: words, whitespace,
// symbols and escape commands only.
func (p *Parser) ParseText(ctx context.Context, file, text string) (*Result, error) {
	req := Request{File: file, Text: text}
	return p.run(ctx, req, docast.NodeText, func(st *parser, root *docast.Node) {
		st.src = p.newSource(text)
		st.parseText(root)
	})
}

func (p *Parser) run(ctx context.Context, req Request, kind docast.NodeKind, parse func(*parser, *docast.Node)) (res *Result, err error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", req.File, err)
	}

	collector := diag.NewCollector()
	st := p.newState(ctx, req, collector)
	root := docast.NewNode(kind)
	root.Pos = docast.Pos{File: req.File, Line: max(req.Line, 1)}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		var ie *InternalError
		e, ok := r.(error)
		if !ok || !errors.As(e, &ie) {
			panic(r)
		}
		diag.New(diag.CategoryInternal, ie.File, ie.Line, "%s", ie.Message).
			WithSeverity(config.SeverityError).
			Report(st.sink)
		res = &Result{Root: root, Sections: st.sections, Diagnostics: collector.Diagnostics()}
		err = fmt.Errorf("parse %s: %w", req.File, ie)
	}()

	parse(st, root)

	res = &Result{Root: root, Sections: st.sections, Diagnostics: collector.Diagnostics()}
	if err := ctx.Err(); err != nil {
		return res, fmt.Errorf("parse %s: %w", req.File, err)
	}
	return res, nil
}

func (p *Parser) newState(ctx context.Context, req Request, collector *diag.Collector) *parser {
	var sink diag.Sink = collector
	if p.sink != nil {
		sink = diag.SinkFunc(func(d diag.Diagnostic) {
			collector.Report(d)
			p.sink.Report(d)
		})
	}

	st := &parser{
		ctx:         ctx,
		cfg:         p.cfg,
		res:         p.res,
		sink:        sink,
		newSource:   p.newSource,
		detectLang:  p.detectLang,
		bibFiles:    p.bibFiles,
		sectionSeen: map[string]bool{},
		xrefCount:   map[string]int{},
	}
	st.file = req.File
	st.lineOffset = max(req.Line-1, 0)
	st.context = req.Context
	st.scope = req.Context
	st.member = req.Member
	st.isExample = req.IsExample
	st.exampleName = req.ExampleName
	st.paramsFound = map[string]int{}
	return st
}

package docparser

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/copperspice/doxypress-sub002/pkg/config"
	"github.com/copperspice/doxypress-sub002/pkg/diag"
	"github.com/copperspice/doxypress-sub002/pkg/docast"
	"github.com/copperspice/doxypress-sub002/pkg/doctoken"
	"github.com/copperspice/doxypress-sub002/pkg/resolver"
)

// styleEntry is an open style span.
type styleEntry struct {
	style    docast.Style
	position int
	tagName  string
	attribs  doctoken.Attrs
}

// includeCursor is the file walked by \line, \skip, \skipline and \until.
type includeCursor struct {
	name      string
	text      string
	offset    int
	line      int
	useLineNo bool
}

// frame is the parser state that is saved before parsing the text of a
// different entity and restored afterwards.
type frame struct {
	scope   string
	context string
	member  *resolver.Entity

	inSeeBlock     bool
	xmlComment     bool
	insideHTMLLink bool

	nodes         []*docast.Node
	styles        []styleEntry
	initialStyles []styleEntry

	file       string
	lineOffset int

	hasParamCommand  bool
	hasReturnCommand bool
	paramsFound      map[string]int

	isExample   bool
	exampleName string

	include includeCursor

	src doctoken.Source
	tok doctoken.Token

	// pendingSect is the simple section command a nested paragraph
	// handed back with CodeSimpleSec.
	pendingSect doctoken.Token

	// sectionID is the label read by the last section command.
	sectionID string
}

// savedFrame is one entry of the context stack.
type savedFrame struct {
	frame frame
}

// parser is the state of one Parse call.
type parser struct {
	frame

	ctx  context.Context
	cfg  config.ParserConfig
	res  resolver.Resolver
	sink diag.Sink

	newSource  func(text string) doctoken.Source
	detectLang func(code string) string
	bibFiles   int

	saved []savedFrame

	// copyStack holds the entities whose documentation is being copied. It
	// is shared by the textual pre-pass and the structural copy.
	copyStack []string

	sections    []resolver.Section
	sectionSeen map[string]bool

	// xrefCount numbers the items of each cross-reference list in document
	// order.
	xrefCount map[string]int
}

// push saves the current state. Parameter bookkeeping is only saved when
// saveParamInfo is set; otherwise pop restores it as empty.
func (p *parser) push(saveParamInfo bool) {
	f := p.frame
	f.nodes = slices.Clone(p.nodes)
	f.styles = slices.Clone(p.styles)
	f.initialStyles = slices.Clone(p.initialStyles)
	if saveParamInfo {
		f.paramsFound = maps.Clone(p.paramsFound)
	} else {
		f.hasParamCommand = false
		f.hasReturnCommand = false
		f.paramsFound = nil
	}
	p.saved = append(p.saved, savedFrame{frame: f})
}

// pop restores the state saved by the matching push. With keepParamInfo
// the parameter bookkeeping of the nested parse survives.
func (p *parser) pop(keepParamInfo bool) {
	if len(p.saved) == 0 {
		p.internalf("context stack underflow")
	}
	f := p.saved[len(p.saved)-1].frame
	p.saved = p.saved[:len(p.saved)-1]

	if keepParamInfo {
		f.hasParamCommand = p.hasParamCommand
		f.hasReturnCommand = p.hasReturnCommand
		f.paramsFound = p.paramsFound
	}
	if f.paramsFound == nil {
		f.paramsFound = map[string]int{}
	}
	p.frame = f
}

// nested runs fn between push and pop.
func (p *parser) nested(saveParamInfo, keepParamInfo bool, fn func()) {
	p.push(saveParamInfo)
	defer p.pop(keepParamInfo)
	fn()
}

// next reads the next token into p.tok and returns its kind.
func (p *parser) next() doctoken.Kind {
	p.tok = p.src.Next()
	return p.tok.Kind
}

func (p *parser) setMode(m doctoken.Mode) {
	p.src.SetMode(m)
}

func (p *parser) setInsidePre(inside bool) {
	if t, ok := p.src.(doctoken.PreTracker); ok {
		t.SetInsidePre(inside)
	}
}

func (p *parser) line() int {
	if p.src == nil {
		return p.lineOffset
	}
	return p.src.Line() + p.lineOffset
}

// warn reports a diagnostic at the current position. Like every document
// diagnostic it is suppressed when WarnDocError is off.
func (p *parser) warn(cat diag.Category, format string, args ...any) {
	if !p.cfg.WarnDocError {
		return
	}
	diag.New(cat, p.file, p.line(), format, args...).Report(p.sink)
}

func (p *parser) warnAmbiguous(candidates []string, format string, args ...any) {
	if !p.cfg.WarnDocError {
		return
	}
	diag.New(diag.CategoryAmbiguity, p.file, p.line(), format, args...).
		WithCandidates(candidates...).
		Report(p.sink)
}

func (p *parser) grammarf(format string, args ...any) {
	p.warn(diag.CategoryGrammar, format, args...)
}

func (p *parser) resolutionf(format string, args ...any) {
	p.warn(diag.CategoryResolution, format, args...)
}

func (p *parser) nestingf(format string, args ...any) {
	p.warn(diag.CategoryNesting, format, args...)
}

// internalf aborts the parse with an InternalError.
func (p *parser) internalf(format string, args ...any) {
	panic(&InternalError{File: p.file, Line: p.line(), Message: fmt.Sprintf(format, args...)})
}

// Ancestor stack.

func (p *parser) pushNode(n *docast.Node) {
	p.nodes = append(p.nodes, n)
}

func (p *parser) popNode(n *docast.Node) {
	if len(p.nodes) == 0 {
		p.internalf("node stack underflow popping %s", n.Kind)
	}
	top := p.nodes[len(p.nodes)-1]
	if top != n {
		p.internalf("node stack mismatch: popping %s, top is %s", n.Kind, top.Kind)
	}
	p.nodes = p.nodes[:len(p.nodes)-1]
}

// Node construction.

func (p *parser) newNode(kind docast.NodeKind) *docast.Node {
	n := docast.NewNode(kind)
	n.Pos = docast.Pos{File: p.file, Line: p.line()}
	return n
}

func (p *parser) newPara() *docast.Node {
	n := p.newNode(docast.NodePara)
	n.Para = &docast.ParaAttrs{}
	return n
}

func (p *parser) add(parent, n *docast.Node) *docast.Node {
	docast.AppendChild(parent, n)
	return n
}

func (p *parser) addLeaf(parent *docast.Node, kind docast.NodeKind, text string) *docast.Node {
	n := p.newNode(kind)
	n.Text = text
	return p.add(parent, n)
}

func (p *parser) addWord(parent *docast.Node, text string) {
	p.addLeaf(parent, docast.NodeWord, text)
}

// addWhiteSpace appends a whitespace run. Consecutive runs outside <pre>
// are merged into one node.
func (p *parser) addWhiteSpace(parent *docast.Node, chars string) {
	if chars == "" {
		chars = " "
	}
	if last := parent.LastChild; last != nil && last.Kind == docast.NodeWhiteSpace && !p.insidePre() {
		last.Text += chars
		return
	}
	p.addLeaf(parent, docast.NodeWhiteSpace, chars)
}

func (p *parser) addSymbol(parent *docast.Node, entity, text string) {
	n := p.addLeaf(parent, docast.NodeSymbol, text)
	n.Symbol = &docast.SymbolAttrs{Name: entity}
}

func (p *parser) addStyleMarker(parent *docast.Node, style docast.Style, enable bool, tagName string, attribs doctoken.Attrs) {
	n := p.newNode(docast.NodeStyleChange)
	n.Style = &docast.StyleAttrs{Style: style, Enable: enable, Position: len(p.nodes), TagName: tagName}
	n.Attribs = attribs
	p.add(parent, n)
}

// Ancestor queries walk the parent links of the tree under construction.

func ancestor(n *docast.Node, match func(*docast.Node) bool) *docast.Node {
	for ; n != nil; n = n.Parent {
		if match(n) {
			return n
		}
	}
	return nil
}

func ancestorOfKind(n *docast.Node, kinds ...docast.NodeKind) *docast.Node {
	return ancestor(n, func(a *docast.Node) bool {
		return slices.Contains(kinds, a.Kind)
	})
}

func insideLI(n *docast.Node) bool {
	return ancestorOfKind(n, docast.NodeHtmlListItem) != nil
}

func insideList(n *docast.Node, ordered bool) bool {
	return ancestor(n, func(a *docast.Node) bool {
		return a.Kind == docast.NodeHtmlList && a.List != nil && a.List.Ordered == ordered
	}) != nil
}

func insideTable(n *docast.Node) bool {
	return ancestorOfKind(n, docast.NodeHtmlTable) != nil
}

// insidePre reports whether a <pre> span is open.
func (p *parser) insidePre() bool {
	return p.styleOpen(docast.StylePreformatted)
}

func (p *parser) styleOpen(style docast.Style) bool {
	for _, s := range p.styles {
		if s.style == style {
			return true
		}
	}
	return false
}

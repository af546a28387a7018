package docparser

import (
	"strings"
	"unicode"

	"github.com/copperspice/doxypress-sub002/pkg/docast"
	"github.com/copperspice/doxypress-sub002/pkg/doctoken"
)

// handleInclude parses \include, \snippet and their variants. The text of
// \includedoc and \snippetdoc is parsed as documentation in place.
func (p *parser) handleInclude(par *docast.Node, typ docast.IncludeType) {
	cmd := p.tok.Name
	block := false
	for _, opt := range strings.Split(p.tok.Options, ",") {
		switch strings.TrimSpace(opt) {
		case "lineno":
			switch typ {
			case docast.IncludePlain:
				typ = docast.IncludeWithLines
			case docast.IncludeSnippet:
				typ = docast.IncludeSnippetWithLines
			case docast.IncludeDontInclude:
				typ = docast.IncludeDontIncWithLines
			}
		case "doc":
			switch typ {
			case docast.IncludePlain:
				typ = docast.IncludeDoc
			case docast.IncludeSnippet:
				typ = docast.IncludeSnippetDoc
			}
		case "block":
			block = true
		}
	}

	if p.next() != doctoken.Whitespace {
		p.grammarf("Expected whitespace after \\%s command", cmd)
		return
	}

	p.setMode(doctoken.ModeFile)
	k := p.next()
	p.setMode(doctoken.ModePara)
	switch k {
	case doctoken.Word:
	case doctoken.EOF:
		p.grammarf("Unexpected end of comment block while parsing the argument of command %s", cmd)
		return
	default:
		p.grammarf("Unexpected token %s as the argument of %s", p.tok, cmd)
		return
	}
	name := p.tok.Name

	var blockID string
	if isSnippet(typ) {
		if name == "this" {
			name = p.file
		}
		p.setMode(doctoken.ModeSnippet)
		k := p.next()
		p.setMode(doctoken.ModePara)
		if k != doctoken.Word {
			p.grammarf("Expected block identifier, found token %s instead while parsing the %s command", p.tok, cmd)
			return
		}
		blockID = "[" + p.tok.Name + "]"
	}

	if typ == docast.IncludeDoc || typ == docast.IncludeSnippetDoc {
		p.includeDoc(par, name, blockID, typ == docast.IncludeSnippetDoc)
		return
	}

	n := p.newNode(docast.NodeInclude)
	n.Include = &docast.IncludeAttrs{
		Type:        typ,
		File:        name,
		BlockID:     blockID,
		Context:     p.context,
		IsExample:   p.isExample,
		ExampleFile: p.exampleName,
		Block:       block,
	}
	p.add(par, n)

	text := p.readTextFile(name)
	switch typ {
	case docast.IncludePlain, docast.IncludeWithLines,
		docast.IncludeDontInclude, docast.IncludeDontIncWithLines:
		p.include = includeCursor{
			name:      name,
			text:      text,
			useLineNo: typ == docast.IncludeWithLines || typ == docast.IncludeDontIncWithLines,
		}
		n.Include.ShowLineNo = p.include.useLineNo
		if typ == docast.IncludePlain || typ == docast.IncludeWithLines {
			n.Text = text
		}
	case docast.IncludeSnippet, docast.IncludeSnippetWithLines:
		if count := strings.Count(text, blockID); text != "" && count != 2 {
			p.grammarf("Block marked with %s for \\snippet should appear twice in file %s, found it %d times",
				blockID, name, count)
		}
		n.Text = extractBlock(text, blockID)
		n.Include.Line = lineBlock(text, blockID)
		n.Include.ShowLineNo = typ == docast.IncludeSnippetWithLines
	default:
		n.Text = text
	}
}

func isSnippet(typ docast.IncludeType) bool {
	return typ == docast.IncludeSnippet || typ == docast.IncludeSnippetWithLines || typ == docast.IncludeSnippetDoc
}

// includeDoc parses a file, or one snippet of it, as documentation.
func (p *parser) includeDoc(par *docast.Node, name, blockID string, snippet bool) {
	text := p.readTextFile(name)
	line := 1
	if snippet {
		line = lineBlock(text, blockID)
		text = extractBlock(text, blockID)
	}

	p.nested(false, false, func() {
		p.file = name
		p.lineOffset = line - 1
		p.parseDocInto(par, text)
	})
}

// readTextFile returns the content of an example or include file, or ""
// after a diagnostic.
func (p *parser) readTextFile(name string) string {
	path := p.findFile(name, "Included file")
	if path == "" {
		return ""
	}
	text, err := p.res.ReadFile(path)
	if err != nil {
		p.resolutionf("Unable to read included file %s: %v", name, err)
		return ""
	}
	return text
}

// extractBlock returns the lines between the two occurrences of marker.
func extractBlock(text, marker string) string {
	if marker == "" {
		return text
	}
	first := strings.Index(text, marker)
	if first < 0 {
		return ""
	}
	start := first + len(marker)
	if nl := strings.IndexByte(text[start:], '\n'); nl >= 0 {
		start += nl + 1
	} else {
		return ""
	}

	second := strings.Index(text[start:], marker)
	if second < 0 {
		return text[start:]
	}
	end := start + second
	if nl := strings.LastIndexByte(text[start:end], '\n'); nl >= 0 {
		end = start + nl + 1
	} else {
		end = start
	}
	return text[start:end]
}

// lineBlock returns the 1-based line number of the first line after
// marker, or 1 when the marker is absent.
func lineBlock(text, marker string) int {
	i := strings.Index(text, marker)
	if marker == "" || i < 0 {
		return 1
	}
	return strings.Count(text[:i], "\n") + 2
}

// handleIncludeOperator parses \line, \skip, \skipline and \until, which
// walk the file of the last \include or \dontinclude.
func (p *parser) handleIncludeOperator(par *docast.Node, typ docast.IncludeType) {
	cmd := p.tok.Name
	if p.next() != doctoken.Whitespace {
		p.grammarf("Expected whitespace after \\%s command", cmd)
		return
	}

	p.setMode(doctoken.ModePattern)
	k := p.next()
	p.setMode(doctoken.ModePara)
	switch k {
	case doctoken.Word:
	case doctoken.EOF:
		p.grammarf("Unexpected end of comment block while parsing the argument of command %s", cmd)
		return
	default:
		p.grammarf("Unexpected token %s as the argument of %s", p.tok, cmd)
		return
	}

	op := p.newNode(docast.NodeIncOperator)
	op.Include = &docast.IncludeAttrs{
		Type:        typ,
		Pattern:     p.tok.Name,
		Context:     p.context,
		IsExample:   p.isExample,
		ExampleFile: p.exampleName,
		Last:        true,
	}

	// An operator starts a new run unless it directly follows another
	// one, possibly separated by whitespace.
	last, prev := par.LastChild, (*docast.Node)(nil)
	if last != nil {
		prev = last.Prev
	}
	switch {
	case last != nil && last.Kind == docast.NodeIncOperator:
		last.Include.Last = false
	case last != nil && last.Kind == docast.NodeWhiteSpace && prev != nil && prev.Kind == docast.NodeIncOperator:
		prev.Include.Last = false
	default:
		op.Include.First = true
	}
	p.add(par, op)

	if p.include.name == "" {
		p.grammarf("No previous '\\include' or '\\dontinclude' command for '\\%s' present", cmd)
	}
	op.Include.File = p.include.name
	op.Include.ShowLineNo = p.include.useLineNo
	op.Text, op.Include.Line = p.include.apply(typ, op.Include.Pattern)
}

// nextLine advances to the end of the next non-blank line and returns its
// bounds. The cursor is left on the line's newline.
func (c *includeCursor) nextLine() (start, end int) {
	start = c.offset
	nonEmpty := false
	i := c.offset
	for ; i < len(c.text); i++ {
		ch := c.text[i]
		if ch == '\n' {
			c.line++
			if nonEmpty {
				break
			}
			start = i + 1
		} else if !unicode.IsSpace(rune(ch)) {
			nonEmpty = true
		}
	}
	c.offset = i
	return start, i
}

func (c *includeCursor) skipNewline() {
	if c.offset < len(c.text) {
		c.offset++
	}
}

// apply runs one include operator and returns the selected text and the
// line it starts on.
func (c *includeCursor) apply(typ docast.IncludeType, pattern string) (string, int) {
	lineNo := c.line
	var text string
	line := 0

	switch typ {
	case docast.IncludeOpLine:
		start, end := c.nextLine()
		if strings.Contains(c.text[start:end], pattern) {
			text, line = c.text[start:end], lineNo
		}
		c.skipNewline()

	case docast.IncludeOpSkipLine:
		for c.offset < len(c.text) {
			start, end := c.nextLine()
			if strings.Contains(c.text[start:end], pattern) {
				text, line = c.text[start:end], lineNo
				break
			}
			c.skipNewline()
		}
		c.skipNewline()

	case docast.IncludeOpSkip:
		for c.offset < len(c.text) {
			start, end := c.nextLine()
			if strings.Contains(c.text[start:end], pattern) {
				break
			}
			c.skipNewline()
		}
		c.skipNewline()

	case docast.IncludeOpUntil:
		begin := c.offset
		for c.offset < len(c.text) {
			_, end := c.nextLine()
			if strings.Contains(c.text[begin:end], pattern) && strings.Contains(lastLine(c.text[begin:end]), pattern) {
				text, line = c.text[begin:end], lineNo
				break
			}
			c.skipNewline()
		}
		c.skipNewline()
	}
	return text, line
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}

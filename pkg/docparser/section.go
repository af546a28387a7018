package docparser

import (
	"strings"

	"github.com/copperspice/doxypress-sub002/pkg/docast"
	"github.com/copperspice/doxypress-sub002/pkg/doctoken"
)

var sectionLevelNames = [...]string{"page", "section", "subsection", "subsubsection", "paragraph", "subparagraph"}

func sectionLevelName(level int) string {
	if level >= 0 && level < len(sectionLevelNames) {
		return sectionLevelNames[level]
	}
	return "section"
}

// handleSection reads the label of \section and friends into sectionID and
// skips the title, which the resolver already knows.
func (p *parser) handleSection() {
	cmd := p.tok.Name
	p.sectionID = ""

	if p.next() != doctoken.Whitespace {
		p.grammarf("Expected whitespace after \\%s command", cmd)
		return
	}
	switch p.next() {
	case doctoken.Word, doctoken.LinkedWord:
	case doctoken.EOF:
		p.grammarf("Unexpected end of comment block while parsing the argument of command %s", cmd)
		return
	default:
		p.grammarf("Unexpected token %s as the argument of %s", p.tok, cmd)
		return
	}
	p.sectionID = p.tok.Name

	p.setMode(doctoken.ModeSkipTitle)
	p.next()
	p.setMode(doctoken.ModePara)
}

// addSection appends a section for the label in sectionID to parent.
func (p *parser) addSection(parent *docast.Node, level int) *docast.Node {
	s := p.newNode(docast.NodeSection)
	s.Section = &docast.SectionAttrs{ID: p.sectionID, Level: min(level, 5)}
	p.add(parent, s)

	if s.Section.ID == "" {
		return s
	}
	sec, ok := p.res.Section(s.Section.ID)
	if !ok {
		return s
	}
	s.Section.File = sec.File
	s.Section.Anchor = sec.Label
	s.Section.Title = sec.Title
	if s.Section.Title == "" {
		s.Section.Title = sec.Label
	}
	p.recordSection(sec)
	return s
}

// sectionBody parses the paragraphs of a section or the root up to EOF, a
// section boundary or \endinternal. An \internal block opens at
// internalLevel.
func (p *parser) sectionBody(container *docast.Node, internalLevel int) Code {
	var first, last *docast.Node
	for {
		par := p.newPara()
		p.add(container, par)
		code := p.parsePara(par, false)
		if par.HasChildren() {
			if first == nil {
				first = par
				par.Para.First = true
			}
			last = par
		} else {
			docast.RemoveChild(container, par)
		}

		if code == CodeListItem {
			p.grammarf("Invalid list item found")
		}
		if code == CodeInternal {
			code = p.parseInternal(p.addInternal(container, internalLevel), internalLevel)
			if code == CodeEndInternal {
				code = CodeOK
			}
		}

		if code == CodeEOF || code == CodeEndInternal || code.isSectionBoundary() {
			if last != nil {
				last.Para.Last = true
			}
			return code
		}
	}
}

// parseSection parses the paragraphs of s and then the sections nested
// below it. A boundary that does not nest below s is returned.
func (p *parser) parseSection(s *docast.Node) Code {
	p.pushNode(s)
	defer p.popNode(s)

	level := s.Section.Level
	nest := p.cfg.SubpageNestingLevel
	code := p.sectionBody(s, level+1)

	for {
		switch {
		case code == CodeSubsection && level <= nest+1:
			for code == CodeSubsection {
				code = p.parseSection(p.addSection(s, 2+nest))
			}
			return code

		case code == CodeSubsubsection && level <= nest+2:
			if level <= nest+1 && !strings.HasPrefix(p.sectionID, "autotoc_md") {
				p.nestingf("Unexpected subsubsection command found inside %s", sectionLevelName(level))
			}
			for code == CodeSubsubsection {
				code = p.parseSection(p.addSection(s, 3+nest))
			}
			if code != CodeSubsection || level >= nest+2 {
				return code
			}

		case code == CodeParagraph && level <= min(5, nest+3):
			if level <= nest+2 && !strings.HasPrefix(p.sectionID, "autotoc_md") {
				p.nestingf("Unexpected paragraph command found inside %s", sectionLevelName(level))
			}
			for code == CodeParagraph {
				code = p.parseSection(p.addSection(s, 4+nest))
			}
			if (code != CodeSubsection && code != CodeSubsubsection) || level >= nest+3 {
				return code
			}

		default:
			return code
		}
	}
}

func (p *parser) addInternal(parent *docast.Node, level int) *docast.Node {
	in := p.newNode(docast.NodeInternal)
	in.Section = &docast.SectionAttrs{Level: level, Hidden: !p.cfg.InternalDocs}
	return p.add(parent, in)
}

// parseInternal parses an \internal block: paragraphs, then sections of
// the given level.
func (p *parser) parseInternal(in *docast.Node, level int) Code {
	p.pushNode(in)
	defer p.popNode(in)

	var first, last *docast.Node
	var code Code
	for {
		par := p.newPara()
		p.add(in, par)
		code = p.parsePara(par, false)
		if par.HasChildren() {
			if first == nil {
				first = par
				par.Para.First = true
			}
			last = par
		} else {
			docast.RemoveChild(in, par)
		}

		switch code {
		case CodeListItem:
			p.grammarf("Invalid list item found")
		case CodeInternal:
			p.nestingf("An \\internal command was found inside internal section")
		}
		if code == CodeEOF || code == CodeEndInternal || code.isSectionBoundary() {
			break
		}
	}
	if last != nil {
		last.Para.Last = true
	}

	nest := p.cfg.SubpageNestingLevel
	for code.isSectionBoundary() && code.sectionLevel() == level {
		code = p.parseSection(p.addSection(in, level+nest))
	}
	return code
}

var outsideSection = map[Code]string{
	CodeSubsection:    "Found subsection command outside of section context",
	CodeSubsubsection: "Found subsubsection command outside of subsection context",
	CodeParagraph:     "Found paragraph command outside of subsubsection context",
}

// parseRoot parses a whole comment: paragraphs up to the first \section,
// then level 1 sections.
func (p *parser) parseRoot(root *docast.Node) {
	p.pushNode(root)
	defer p.popNode(root)
	p.setMode(doctoken.ModePara)

	var first, last *docast.Node
	var code Code
	for {
		p.next()

		if p.tok.Kind == doctoken.HTMLTag && doctoken.LookupTag(p.tok.Name) == doctoken.TagDiv {
			if p.tok.EndTag {
				p.addStyleMarker(root, docast.StyleDiv, false, p.tok.Name, nil)
			} else {
				p.addStyleMarker(root, docast.StyleDiv, true, p.tok.Name, p.tok.Attribs)
			}
			continue
		}

		par := p.newPara()
		p.add(root, par)
		code = p.parsePara(par, true)
		if par.HasChildren() {
			if first == nil {
				first = par
				par.Para.First = true
			}
			last = par
			if code == CodeEndDiv {
				p.addStyleMarker(root, docast.StyleDiv, false, "div", nil)
			}
		} else {
			docast.RemoveChild(root, par)
		}

		if code == CodeListItem {
			p.grammarf("Invalid list item found")
		} else if msg, ok := outsideSection[code]; ok {
			p.nestingf("%s", msg)
		}

		if code == CodeInternal {
			code = p.parseInternal(p.addInternal(root, 1), 1)
		}
		if code == CodeEOF || code == CodeSection {
			break
		}
	}
	if last != nil {
		last.Para.Last = true
	}

	nest := p.cfg.SubpageNestingLevel
	for code == CodeSection {
		if p.ctx.Err() != nil {
			return
		}
		if _, ok := p.res.Section(p.sectionID); !ok {
			p.resolutionf("Invalid section id '%s', ignoring section", p.sectionID)
			break
		}
		code = p.parseSection(p.addSection(root, 1+nest))
	}

	p.reportUnclosedStyles()
}

// parseText parses plain text: words, whitespace, symbols and escape
// commands.
func (p *parser) parseText(text *docast.Node) {
	p.pushNode(text)
	defer p.popNode(text)
	p.setMode(doctoken.ModeTitle)
	defer p.setMode(doctoken.ModePara)

	for p.next() != doctoken.EOF {
		switch p.tok.Kind {
		case doctoken.Word, doctoken.LinkedWord:
			p.addWord(text, p.tok.Name)
		case doctoken.Whitespace:
			p.addWhiteSpace(text, p.tok.Chars)
		case doctoken.Symbol:
			s, ok := docast.LookupSymbol(p.tok.Name)
			if !ok {
				p.grammarf("Unsupported symbol %s found", p.tok.Name)
				break
			}
			p.addSymbol(text, p.tok.Name, s)
		case doctoken.CommandAt, doctoken.CommandBS:
			cmd := doctoken.LookupCommand(p.tok.Name)
			if !cmd.IsEscape() {
				p.grammarf("Unexpected command '%s' found", p.tok.Name)
				break
			}
			p.addEscape(text, cmd)
		default:
			p.grammarf("Unexpected token %s", p.tok)
		}
	}

	p.reportUnclosedStyles()
}

package docparser

import (
	"github.com/copperspice/doxypress-sub002/pkg/docast"
	"github.com/copperspice/doxypress-sub002/pkg/doctoken"
)

// noLeadingSpace lists the block kinds after which whitespace is dropped.
var noLeadingSpace = map[docast.NodeKind]bool{
	docast.NodeHtmlDescList:   true,
	docast.NodeHtmlTable:      true,
	docast.NodeHtmlList:       true,
	docast.NodeSimpleSect:     true,
	docast.NodeAutoList:       true,
	docast.NodeSimpleList:     true,
	docast.NodeHtmlHeader:     true,
	docast.NodeHtmlBlockQuote: true,
	docast.NodeParamSect:      true,
	docast.NodeXRefItem:       true,
}

// parsePara fills par until a token ends the paragraph and returns the
// reason. When primed is set, p.tok already holds the first token.
func (p *parser) parsePara(par *docast.Node, primed bool) Code {
	p.pushNode(par)
	defer p.popNode(par)

	p.reopenInitialStyles(par)
	code := p.paraLoop(par, primed)
	p.flushPendingStyles(par)
	return code
}

func (p *parser) paraLoop(par *docast.Node, primed bool) Code {
	for {
		if !primed {
			p.next()
		}
		primed = false

		code := p.paraToken(par)
		for code == CodeRedispatch {
			code = p.paraToken(par)
		}
		if code != CodeOK {
			return code
		}
	}
}

// paraToken handles p.tok inside a paragraph.
func (p *parser) paraToken(par *docast.Node) Code {
	switch p.tok.Kind {
	case doctoken.EOF:
		return CodeEOF

	case doctoken.Word:
		p.addWord(par, p.tok.Name)

	case doctoken.LinkedWord:
		p.handleLinkedWord(par, p.tok.Name, false)

	case doctoken.URL:
		p.addURL(par, p.tok)

	case doctoken.Whitespace:
		last, ok := par.LastChildKind()
		if p.insidePre() || (ok && !noLeadingSpace[last]) {
			p.addWhiteSpace(par, p.tok.Chars)
		}

	case doctoken.ListItem:
		return p.paraListItem(par)

	case doctoken.EndList:
		return p.paraEndList(par)

	case doctoken.CommandAt, doctoken.CommandBS:
		return p.paraCommand(par)

	case doctoken.HTMLTag:
		return p.paraTag(par)

	case doctoken.Symbol:
		text, ok := docast.LookupSymbol(p.tok.Name)
		if !ok {
			p.grammarf("Unsupported symbol %s found", p.tok.Name)
			break
		}
		p.addSymbol(par, p.tok.Name, text)

	case doctoken.NewPara:
		return CodeNewPara

	case doctoken.RCSTag:
		if ancestorOfKind(par, docast.NodeSimpleSect, docast.NodeParamSect) != nil {
			p.pendingSect = p.tok
			return CodeSimpleSec
		}
		p.parseRcs(par)

	default:
		p.grammarf("Found unexpected token %s", p.tok)
	}
	return CodeOK
}

// paraListItem starts an auto list, or ends the paragraph when the marker
// belongs to an enclosing list.
func (p *parser) paraListItem(par *docast.Node) Code {
	if al := ancestorOfKind(par, docast.NodeAutoList); al != nil && al.List.Indent >= p.tok.Indent {
		return CodeListItem
	}

	depth := 0
	for n := par.Parent; n != nil; n = n.Parent {
		if n.Kind == docast.NodeAutoList && n.List.Ordered {
			depth++
		}
	}

	var (
		al   *docast.Node
		code Code
	)
	for {
		al = p.newNode(docast.NodeAutoList)
		al.List = &docast.ListAttrs{Indent: p.tok.Indent, Ordered: p.tok.IsEnumList, Depth: depth}
		p.add(par, al)
		code = p.parseAutoList(al)
		if code != CodeListItem || al.List.Indent != p.tok.Indent {
			break
		}
	}

	switch code {
	case CodeSimpleSec:
		p.tok = p.pendingSect
		return CodeRedispatch
	case CodeEndList:
		if al.List.Indent > p.tok.Indent {
			return CodeEndList
		}
		return CodeOK
	default:
		return code
	}
}

func (p *parser) paraEndList(par *docast.Node) Code {
	item := par.Parent
	if item == nil || item.Kind != docast.NodeAutoListItem {
		p.grammarf("End of list marker found without any preceding list items")
		return CodeOK
	}
	if item.Parent.List.Indent >= p.tok.Indent {
		return CodeEndList
	}
	p.grammarf("End of list marker found with an invalid indent level")
	return CodeOK
}

// paraCommand handles a command token. Simple section commands inside a
// simple section end the paragraph so the section can be started one
// level up.
func (p *parser) paraCommand(par *docast.Node) Code {
	cmd := doctoken.LookupCommand(p.tok.Name)
	if cmd.IsSimpleSect() && ancestorOfKind(par, docast.NodeSimpleSect, docast.NodeParamSect) != nil {
		p.pendingSect = p.tok
		return CodeSimpleSec
	}
	if cmd == doctoken.CmdLi && ancestorOfKind(par, docast.NodeSimpleListItem) != nil {
		return CodeNextItem
	}

	code := p.handleCommand(par, cmd)
	if code == CodeSimpleSec {
		p.tok = p.pendingSect
		return CodeRedispatch
	}
	return code
}

func (p *parser) paraTag(par *docast.Node) Code {
	if !p.tok.EndTag {
		code := p.handleHTMLStart(par)
		if code == CodeNewPara && !par.HasChildren() {
			return CodeOK
		}
		return code
	}

	if doctoken.LookupTag(p.tok.Name) == doctoken.TagDiv && len(p.styles) == 0 {
		if par.HasChildren() {
			return CodeEndDiv
		}
		p.addStyleMarker(par, docast.StyleDiv, false, p.tok.Name, nil)
		return CodeOK
	}
	return p.handleHTMLEnd(par)
}

// handleCommand runs the handler of a paragraph-level command.
func (p *parser) handleCommand(par *docast.Node, cmd doctoken.Command) Code {
	switch cmd {
	case doctoken.CmdUnknown:
		p.grammarf("Found unknown command '%s%s'", p.tok.CommandPrefix(), p.tok.Name)

	case doctoken.CmdEmphasis, doctoken.CmdBold, doctoken.CmdCode:
		if p.styleCommand(par, commandStyles[cmd]) {
			return CodeRedispatch
		}

	case doctoken.CmdSa:
		p.inSeeBlock = true
		code := p.handleSimpleSection(par, docast.SectSee, false)
		p.inSeeBlock = false
		return code
	case doctoken.CmdReturn:
		code := p.handleSimpleSection(par, docast.SectReturn, false)
		p.hasReturnCommand = true
		return code
	case doctoken.CmdAuthor:
		return p.handleSimpleSection(par, docast.SectAuthor, false)
	case doctoken.CmdAuthors:
		return p.handleSimpleSection(par, docast.SectAuthors, false)
	case doctoken.CmdVersion:
		return p.handleSimpleSection(par, docast.SectVersion, false)
	case doctoken.CmdSince:
		return p.handleSimpleSection(par, docast.SectSince, false)
	case doctoken.CmdDate:
		return p.handleSimpleSection(par, docast.SectDate, false)
	case doctoken.CmdNote:
		return p.handleSimpleSection(par, docast.SectNote, false)
	case doctoken.CmdWarning:
		return p.handleSimpleSection(par, docast.SectWarning, false)
	case doctoken.CmdPre:
		return p.handleSimpleSection(par, docast.SectPre, false)
	case doctoken.CmdPost:
		return p.handleSimpleSection(par, docast.SectPost, false)
	case doctoken.CmdCopyright:
		return p.handleSimpleSection(par, docast.SectCopyright, false)
	case doctoken.CmdInvariant:
		return p.handleSimpleSection(par, docast.SectInvariant, false)
	case doctoken.CmdRemark:
		return p.handleSimpleSection(par, docast.SectRemark, false)
	case doctoken.CmdAttention:
		return p.handleSimpleSection(par, docast.SectAttention, false)
	case doctoken.CmdPar:
		return p.handleSimpleSection(par, docast.SectUser, false)

	case doctoken.CmdParam:
		return p.handleParamSection(par, p.tok.Name, docast.ParamParam, false, p.tok.ParamDir)
	case doctoken.CmdTParam:
		return p.handleParamSection(par, p.tok.Name, docast.ParamTemplateParam, false, p.tok.ParamDir)
	case doctoken.CmdRetVal:
		return p.handleParamSection(par, p.tok.Name, docast.ParamRetVal, false, doctoken.DirUnspecified)
	case doctoken.CmdException:
		return p.handleParamSection(par, p.tok.Name, docast.ParamException, false, doctoken.DirUnspecified)

	case doctoken.CmdXRefItem:
		return p.handleXRefItem(par)

	case doctoken.CmdLi:
		return p.handleSimpleList(par)

	case doctoken.CmdSection:
		p.handleSection()
		return CodeSection
	case doctoken.CmdSubsection:
		p.handleSection()
		return CodeSubsection
	case doctoken.CmdSubsubsection:
		p.handleSection()
		return CodeSubsubsection
	case doctoken.CmdParagraph:
		p.handleSection()
		return CodeParagraph

	case doctoken.CmdStartCode:
		p.handleStartCode(par, false)
	case doctoken.CmdVerbatim:
		text, ok := p.readVerbatim(doctoken.ModeVerbatim)
		p.add(par, p.newVerbatim(docast.VerbatimPlain, text))
		if !ok {
			p.grammarf("Verbatim section ended without an end marker")
		}
	case doctoken.CmdDot:
		p.handleDiagram(par, docast.VerbatimDot)
	case doctoken.CmdMsc:
		p.handleDiagram(par, docast.VerbatimMsc)
	case doctoken.CmdStartUML:
		p.handleDiagram(par, docast.VerbatimPlantUML)

	case doctoken.CmdEndParBlock:
		return CodeEndParBlock
	case doctoken.CmdEndCode, doctoken.CmdEndHTMLOnly, doctoken.CmdEndManOnly,
		doctoken.CmdEndRTFOnly, doctoken.CmdEndLatexOnly, doctoken.CmdEndXMLOnly,
		doctoken.CmdEndDocbookOnly, doctoken.CmdEndLink, doctoken.CmdEndVerbatim,
		doctoken.CmdEndDot, doctoken.CmdEndMsc, doctoken.CmdEndUML,
		doctoken.CmdSecRefItem, doctoken.CmdEndSecRefList:
		p.grammarf("Unexpected command %s inside paragraph", p.tok.Name)

	case doctoken.CmdLineBreak:
		p.addLeaf(par, docast.NodeLineBreak, "")

	case doctoken.CmdAddIndex:
		p.handleIndexEntry(par)

	case doctoken.CmdInternal:
		return CodeInternal
	case doctoken.CmdEndInternal:
		return CodeEndInternal

	case doctoken.CmdParBlock:
		return p.handleParBlock(par)

	case doctoken.CmdCopyDoc, doctoken.CmdCopyBrief, doctoken.CmdCopyDetails:
		p.handleCopy(par, cmd)

	case doctoken.CmdInclude:
		p.handleInclude(par, docast.IncludePlain)
	case doctoken.CmdIncludeLineno:
		p.handleInclude(par, docast.IncludeWithLines)
	case doctoken.CmdDontInclude:
		p.handleInclude(par, docast.IncludeDontInclude)
	case doctoken.CmdHTMLInclude:
		p.handleInclude(par, docast.IncludeHTMLInclude)
	case doctoken.CmdLatexInclude:
		p.handleInclude(par, docast.IncludeLatexInclude)
	case doctoken.CmdRTFInclude:
		p.handleInclude(par, docast.IncludeRTFInclude)
	case doctoken.CmdManInclude:
		p.handleInclude(par, docast.IncludeManInclude)
	case doctoken.CmdXMLInclude:
		p.handleInclude(par, docast.IncludeXMLInclude)
	case doctoken.CmdDocbookInclude:
		p.handleInclude(par, docast.IncludeDocbookInclude)
	case doctoken.CmdVerbInclude:
		p.handleInclude(par, docast.IncludeVerbInclude)
	case doctoken.CmdSnippet:
		p.handleInclude(par, docast.IncludeSnippet)
	case doctoken.CmdSnippetLineno:
		p.handleInclude(par, docast.IncludeSnippetWithLines)
	case doctoken.CmdIncludeDoc:
		p.handleInclude(par, docast.IncludeDoc)
	case doctoken.CmdSnippetDoc:
		p.handleInclude(par, docast.IncludeSnippetDoc)

	case doctoken.CmdSkip:
		p.handleIncludeOperator(par, docast.IncludeOpSkip)
	case doctoken.CmdUntil:
		p.handleIncludeOperator(par, docast.IncludeOpUntil)
	case doctoken.CmdSkipLine:
		p.handleIncludeOperator(par, docast.IncludeOpSkipLine)
	case doctoken.CmdLine:
		p.handleIncludeOperator(par, docast.IncludeOpLine)

	case doctoken.CmdDotFile:
		p.handleFile(par, docast.NodeDotFile)
	case doctoken.CmdMscFile:
		p.handleFile(par, docast.NodeMscFile)
	case doctoken.CmdDiaFile:
		p.handleFile(par, docast.NodeDiaFile)

	case doctoken.CmdLink:
		p.handleLink(par, false)
	case doctoken.CmdJavaLink:
		p.handleLink(par, true)
	case doctoken.CmdCite:
		p.handleCite(par)
	case doctoken.CmdEmoji:
		p.handleEmoji(par)
	case doctoken.CmdRef, doctoken.CmdSubpage:
		p.handleRef(par)
	case doctoken.CmdSecRefList:
		p.handleSecRefList(par)

	case doctoken.CmdInheritDoc:
		p.handleInheritDoc(par)
	case doctoken.CmdSortID:
		p.handleSortID()
	case doctoken.CmdForceOutput:

	default:
		if !p.defaultCommand(par, cmd) {
			p.internalf("command %s has no paragraph handler", p.tok.Name)
		}
	}
	return CodeOK
}

// parseParagraphs parses paragraphs into container for as long as they
// end with CodeNewPara and more, when set, agrees. Empty paragraphs are
// dropped; the first and last kept ones are marked.
func (p *parser) parseParagraphs(container *docast.Node, more func() bool) Code {
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

		if code != CodeNewPara || (more != nil && !more()) {
			if last != nil {
				last.Para.Last = true
			}
			return code
		}
	}
}

// parseSinglePara parses one paragraph into container and marks it as both
// first and last. An empty paragraph is dropped.
func (p *parser) parseSinglePara(container *docast.Node) Code {
	par := p.newPara()
	p.add(container, par)
	code := p.parsePara(par, false)
	par.Para.First = true
	par.Para.Last = true
	if !par.HasChildren() {
		docast.RemoveChild(container, par)
	}
	return code
}

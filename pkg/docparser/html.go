package docparser

import (
	"github.com/copperspice/doxypress-sub002/pkg/docast"
	"github.com/copperspice/doxypress-sub002/pkg/doctoken"
)

// emptyTagAllowed lists the HTML tags that may be written as <tag/>.
var emptyTagAllowed = map[doctoken.Tag]bool{
	doctoken.TagUnknown: true,
	doctoken.TagImg:     true,
	doctoken.TagBr:      true,
	doctoken.TagHr:      true,
	doctoken.TagP:       true,
}

// closeXMLTags end the XML documentation block they belong to.
var closeXMLTags = map[doctoken.Tag]bool{
	doctoken.XMLRemarks:    true,
	doctoken.XMLPara:       true,
	doctoken.XMLValue:      true,
	doctoken.XMLExample:    true,
	doctoken.XMLParam:      true,
	doctoken.XMLList:       true,
	doctoken.XMLTypeParam:  true,
	doctoken.XMLReturns:    true,
	doctoken.XMLSee:        true,
	doctoken.XMLSeeAlso:    true,
	doctoken.XMLException:  true,
	doctoken.XMLInheritDoc: true,
}

// ignoredEndTags are closed implicitly by the structure around them.
var ignoredEndTags = map[doctoken.Tag]bool{
	doctoken.TagDt:           true,
	doctoken.TagDd:           true,
	doctoken.TagTr:           true,
	doctoken.TagTd:           true,
	doctoken.TagTh:           true,
	doctoken.TagA:            true,
	doctoken.XMLTerm:         true,
	doctoken.XMLItem:         true,
	doctoken.XMLListHeader:   true,
	doctoken.XMLInclude:      true,
	doctoken.XMLPermission:   true,
	doctoken.XMLDescription:  true,
	doctoken.XMLParamRef:     true,
	doctoken.XMLTypeParamRef: true,
}

// handleHTMLStart handles a start tag inside a paragraph.
func (p *parser) handleHTMLStart(par *docast.Node) Code {
	tok := p.tok
	tag := doctoken.LookupTag(tok.Name)

	if tok.EmptyTag && !tag.IsXML() && !emptyTagAllowed[tag] {
		p.grammarf("HTML tag '<%s/>' may not use the 'empty tag' XHTML syntax", tok.Name)
	}

	switch tag {
	case doctoken.TagUl, doctoken.TagOl:
		if tok.EmptyTag {
			break
		}
		list := p.newNode(docast.NodeHtmlList)
		list.List = &docast.ListAttrs{Ordered: tag == doctoken.TagOl}
		list.Attribs = tok.Attribs
		p.add(par, list)
		return p.parseHTMLList(list)

	case doctoken.TagLi:
		if tok.EmptyTag {
			break
		}
		if !insideList(par, false) && !insideList(par, true) {
			p.grammarf("Lonely <li> tag found")
			break
		}
		return CodeNextItem

	case doctoken.TagS:
		p.styleEnter(par, docast.StyleS, tok.Name, tok.Attribs)

	case doctoken.TagCode:
		if tok.EmptyTag {
			break
		}
		if p.xmlComment {
			p.handleStartCode(par, true)
			break
		}
		p.styleEnter(par, docast.StyleCode, tok.Name, tok.Attribs)

	case doctoken.TagPre:
		if tok.EmptyTag {
			break
		}
		p.styleEnter(par, docast.StylePreformatted, tok.Name, tok.Attribs)
		p.setInsidePre(true)

	case doctoken.TagDiv:
		if !tok.EmptyTag {
			p.styleEnter(par, docast.StyleDiv, tok.Name, tok.Attribs)
		}

	case doctoken.TagP:
		return CodeNewPara

	case doctoken.TagDl:
		if tok.EmptyTag {
			break
		}
		dl := p.newNode(docast.NodeHtmlDescList)
		dl.Attribs = tok.Attribs
		p.add(par, dl)
		return p.parseDescList(dl)

	case doctoken.TagDt:
		return CodeDescTitle
	case doctoken.TagDd:
		return CodeDescData

	case doctoken.TagTable:
		if tok.EmptyTag {
			break
		}
		table := p.newNode(docast.NodeHtmlTable)
		table.Table = &docast.TableAttrs{}
		table.Attribs = tok.Attribs
		p.add(par, table)
		return p.parseTable(table)

	case doctoken.TagTr:
		return CodeTableRow
	case doctoken.TagTd:
		return CodeTableCell
	case doctoken.TagTh:
		return CodeTableHCell

	case doctoken.TagCaption:
		p.grammarf("Unexpected tag <caption> found")

	case doctoken.TagBr:
		p.addLeaf(par, docast.NodeLineBreak, "")
	case doctoken.TagHr:
		p.addLeaf(par, docast.NodeHorRuler, "")

	case doctoken.TagA:
		return p.handleAHref(par, tok.Attribs)

	case doctoken.TagH1, doctoken.TagH2, doctoken.TagH3,
		doctoken.TagH4, doctoken.TagH5, doctoken.TagH6:
		if tok.EmptyTag {
			break
		}
		return p.handleHTMLHeader(par, tag.HeaderLevel(), tok.Attribs)

	case doctoken.TagImg:
		p.handleImg(par, tok.Attribs)

	case doctoken.TagBlockQuote:
		if tok.EmptyTag {
			break
		}
		bq := p.newNode(docast.NodeHtmlBlockQuote)
		bq.Attribs = tok.Attribs
		p.add(par, bq)
		return p.parseBlockQuote(bq)

	case doctoken.XMLSummary:
		if p.styleOpen(docast.StyleDetails) {
			if !tok.EmptyTag {
				p.styleEnter(par, docast.StyleSummary, tok.Name, tok.Attribs)
			}
			break
		}
		p.xmlComment = true

	case doctoken.XMLRemarks, doctoken.XMLExample:
		p.xmlComment = true

	case doctoken.XMLValue, doctoken.XMLPara:
		if par.HasChildren() {
			return CodeNewPara
		}

	case doctoken.XMLDescription, doctoken.XMLTerm:
		if insideTable(par) {
			return CodeTableCell
		}

	case doctoken.XMLParam, doctoken.XMLTypeParam:
		return p.handleXMLParam(par, tag)

	case doctoken.XMLParamRef, doctoken.XMLTypeParamRef:
		p.handleXMLParamRef(par, tag)

	case doctoken.XMLException:
		p.xmlComment = true
		cref, ok := tok.Attribs.Get("cref")
		if !ok {
			p.grammarf("Missing 'cref' attribute from <exception> tag.")
			break
		}
		return p.handleParamSection(par, cref, docast.ParamException, true, doctoken.DirUnspecified)

	case doctoken.XMLItem, doctoken.XMLListHeader:
		switch {
		case insideTable(par):
			return CodeTableRow
		case insideList(par, false) || insideList(par, true):
			return CodeNextItem
		default:
			p.grammarf("Single <item> tag found")
		}

	case doctoken.XMLReturns:
		p.xmlComment = true
		code := p.handleSimpleSection(par, docast.SectReturn, true)
		p.hasReturnCommand = true
		return code

	case doctoken.XMLSee:
		p.xmlComment = true
		p.handleXMLSee(par, tok)

	case doctoken.XMLSeeAlso:
		p.xmlComment = true
		cref, ok := tok.Attribs.Get("cref")
		if !ok {
			p.grammarf("Missing 'cref' attribute from <seealso> tag.")
			break
		}
		ss := lastChildSeeSect(par)
		if ss == nil {
			ss = p.newNode(docast.NodeSimpleSect)
			ss.Sect = &docast.SectAttrs{Type: docast.SectSee}
			p.add(par, ss)
		}
		p.appendSeeAlso(ss, cref)

	case doctoken.XMLList:
		p.xmlComment = true
		return p.handleXMLList(par, tok.Attribs)

	case doctoken.XMLInclude, doctoken.XMLPermission:
		p.xmlComment = true

	case doctoken.XMLInheritDoc:
		p.handleInheritDoc(par)

	case doctoken.TagUnknown:
		p.grammarf("Unsupported xml/html tag <%s> found", tok.Name)
		p.addWord(par, "<"+tok.Name+tok.Attribs.String()+">")

	default:
		style, ok := tagStyles[tag]
		if ok && !tok.EmptyTag {
			p.styleEnter(par, style, tok.Name, tok.Attribs)
		}
	}
	return CodeOK
}

// handleHTMLEnd handles an end tag inside a paragraph.
func (p *parser) handleHTMLEnd(par *docast.Node) Code {
	name := p.tok.Name
	tag := doctoken.LookupTag(name)

	switch tag {
	case doctoken.TagUl, doctoken.TagOl:
		if !insideList(par, tag == doctoken.TagOl) {
			p.nestingf("Found </%s> tag without matching <%s>", name, name)
			break
		}
		return CodeCloseList

	case doctoken.TagLi:
		if !insideLI(par) {
			p.nestingf("Found </li> tag without matching <li>")
		}

	case doctoken.TagBlockQuote:
		return CodeEndBlockQuote
	case doctoken.TagP:
		return CodeNewPara
	case doctoken.TagDl:
		return CodeEndDesc
	case doctoken.TagTable:
		return CodeEndTable

	case doctoken.TagPre:
		p.styleLeave(par, docast.StylePreformatted, name)
		p.setInsidePre(false)
	case doctoken.TagDiv:
		p.styleLeave(par, docast.StyleDiv, name)

	case doctoken.TagCaption, doctoken.TagBr, doctoken.TagImg, doctoken.TagHr,
		doctoken.TagH1, doctoken.TagH2, doctoken.TagH3,
		doctoken.TagH4, doctoken.TagH5, doctoken.TagH6:
		p.grammarf("Unexpected tag </%s> found", name)

	case doctoken.XMLSummary:
		if p.styleOpen(docast.StyleDetails) {
			p.styleLeave(par, docast.StyleSummary, name)
			break
		}
		return CodeCloseXML

	case doctoken.TagUnknown:
		p.grammarf("Unsupported xml/html tag </%s> found", name)
		p.addWord(par, "</"+name+">")

	default:
		switch {
		case ignoredEndTags[tag]:
		case closeXMLTags[tag]:
			return CodeCloseXML
		default:
			if style, ok := tagStyles[tag]; ok {
				p.styleLeave(par, style, name)
			}
		}
	}
	return CodeOK
}

func lastChildSeeSect(par *docast.Node) *docast.Node {
	for n := par.LastChild; n != nil; n = n.Prev {
		if n.Kind == docast.NodeSimpleSect && n.Sect.Type == docast.SectSee {
			return n
		}
	}
	return nil
}

func (p *parser) handleXMLParam(par *docast.Node, tag doctoken.Tag) Code {
	p.xmlComment = true
	suffix, typ := "", docast.ParamParam
	if tag == doctoken.XMLTypeParam {
		suffix, typ = "type", docast.ParamTemplateParam
	}

	name, ok := p.tok.Attribs.Get("name")
	switch {
	case !ok:
		p.grammarf("Missing 'name' attribute from <param%s> tag.", suffix)
		return CodeOK
	case name == "":
		if p.cfg.WarnUndocParams {
			p.grammarf("Empty 'name' attribute for <param%s> tag.", suffix)
		}
		return CodeOK
	}

	return p.handleParamSection(par, name, typ, true, doctoken.DirUnspecified)
}

// handleXMLParamRef renders <paramref name=".."/> as an italic name.
func (p *parser) handleXMLParamRef(par *docast.Node, tag doctoken.Tag) {
	name, ok := p.tok.Attribs.Get("name")
	if !ok {
		suffix := ""
		if tag == doctoken.XMLTypeParamRef {
			suffix = "type"
		}
		p.grammarf("Missing 'name' attribute from <param%sref> tag.", suffix)
		return
	}
	p.addStyleMarker(par, docast.StyleItalic, true, p.tok.Name, nil)
	p.addWord(par, name)
	p.addStyleMarker(par, docast.StyleItalic, false, p.tok.Name, nil)
	p.addWhiteSpace(par, " ")
}

// handleXMLSee handles <see cref=".."/>, <see cref="..">text</see> and
// <see langword=".."/>.
func (p *parser) handleXMLSee(par *docast.Node, tok doctoken.Token) {
	if cref, ok := tok.Attribs.Get("cref"); ok {
		if tok.EmptyTag {
			p.inSeeBlock = true
			p.handleLinkedWord(par, cref, true)
			p.inSeeBlock = false
			return
		}
		link := p.newLink(cref)
		p.add(par, link)
		if leftover := p.parseLink(link, false, true); leftover != "" {
			p.addWord(par, leftover)
		}
		return
	}

	if word, ok := tok.Attribs.Get("langword"); ok {
		p.addStyleMarker(par, docast.StyleCode, true, tok.Name, nil)
		p.handleLinkedWord(par, word, true)
		p.addStyleMarker(par, docast.StyleCode, false, tok.Name, nil)
		return
	}
	p.grammarf("Missing 'cref' or 'langword' attribute from <see> tag.")
}

// handleXMLList handles <list type="bullet|number|table">.
func (p *parser) handleXMLList(par *docast.Node, attribs doctoken.Attrs) Code {
	typ, _ := attribs.Get("type")
	if typ == "table" {
		table := p.newNode(docast.NodeHtmlTable)
		table.Table = &docast.TableAttrs{IsXML: true}
		table.Attribs = attribs
		p.add(par, table)
		return p.parseTableXML(table)
	}

	list := p.newNode(docast.NodeHtmlList)
	list.List = &docast.ListAttrs{Ordered: typ == "number", IsXML: true}
	list.Attribs = attribs
	p.add(par, list)
	return p.parseHTMLListXML(list)
}

// handleAHref handles <a name=..> anchors and <a href=..> links.
func (p *parser) handleAHref(par *docast.Node, attribs doctoken.Attrs) Code {
	for i, attr := range attribs {
		switch attr.Name {
		case "name", "id":
			if attr.Value == "" {
				p.grammarf("Found <a> tag with name option but without a value")
				continue
			}
			p.addAnchor(par, attr.Value, true)
		case "href":
			href := p.newNode(docast.NodeHRef)
			href.Ref = &docast.RefAttrs{Target: attr.Value, TargetKind: "url", RelPath: p.file}
			href.Attribs = append(attribs[:i:i], attribs[i+1:]...)
			p.add(par, href)

			p.insideHTMLLink = true
			code := p.parseHRef(href)
			p.insideHTMLLink = false
			return code
		}
	}
	return CodeOK
}

// parseHRef parses the body of <a href=..> up to </a>.
func (p *parser) parseHRef(href *docast.Node) Code {
	p.pushNode(href)
	defer p.popNode(href)
	defer p.flushPendingStyles(href)

	for p.next() != doctoken.EOF {
		if p.handleDefault(href, true) {
			continue
		}
		switch p.tok.Kind {
		case doctoken.CommandAt, doctoken.CommandBS:
			p.grammarf("Invalid command %s as part of a <a>..</a> block", p.tok)
		case doctoken.Symbol:
			p.grammarf("Unsupported symbol %s found", p.tok.Name)
		case doctoken.HTMLTag:
			tag := doctoken.LookupTag(p.tok.Name)
			switch {
			case tag == doctoken.TagA && p.tok.EndTag:
				return CodeOK
			case tag == doctoken.TagBr:
				p.addLeaf(href, docast.NodeLineBreak, "")
			default:
				p.grammarf("Unexpected html tag <%s%s> found within <a href=...> context",
					endSlash(p.tok), p.tok.Name)
			}
		default:
			p.grammarf("Unexpected token %s", p.tok)
		}
	}
	p.grammarf("Unexpected end of comment while inside <a href=...> tag")
	return CodeEOF
}

// handleHTMLHeader parses <hN>..</hN>. A complete header ends the
// paragraph.
func (p *parser) handleHTMLHeader(par *docast.Node, level int, attribs doctoken.Attrs) Code {
	h := p.newNode(docast.NodeHtmlHeader)
	h.Section = &docast.SectionAttrs{Level: level}
	h.Attribs = attribs
	p.add(par, h)

	if code := p.parseHTMLHeader(h, level); code != CodeOK {
		return code
	}
	return CodeNewPara
}

func (p *parser) parseHTMLHeader(h *docast.Node, level int) Code {
	p.pushNode(h)
	defer p.popNode(h)
	defer p.flushPendingStyles(h)

	for p.next() != doctoken.EOF {
		if p.handleDefault(h, true) {
			continue
		}
		switch p.tok.Kind {
		case doctoken.CommandAt, doctoken.CommandBS:
			p.grammarf("Invalid command %s as part of a <h%d> tag", p.tok, level)
		case doctoken.HTMLTag:
			tag := doctoken.LookupTag(p.tok.Name)
			switch {
			case p.tok.EndTag && tag.HeaderLevel() > 0:
				if tag.HeaderLevel() != level {
					p.nestingf("<h%d> ended with </h%d>", level, tag.HeaderLevel())
				}
				return CodeOK
			case tag == doctoken.TagA && !p.tok.EndTag:
				p.handleAHref(h, p.tok.Attribs)
			case tag == doctoken.TagBr:
				p.addLeaf(h, docast.NodeLineBreak, "")
			default:
				p.grammarf("Unexpected html tag <%s%s> found within <h%d> context",
					endSlash(p.tok), p.tok.Name, level)
			}
		case doctoken.Symbol:
			p.grammarf("Unsupported symbol %s found", p.tok.Name)
		default:
			p.grammarf("Unexpected token %s", p.tok)
		}
	}
	p.grammarf("Unexpected end of comment while inside <h%d> tag", level)
	return CodeEOF
}

func endSlash(tok doctoken.Token) string {
	if tok.EndTag {
		return "/"
	}
	return ""
}

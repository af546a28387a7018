package docparser

import (
	"github.com/copperspice/doxypress-sub002/pkg/docast"
	"github.com/copperspice/doxypress-sub002/pkg/doctoken"
)

// skipBlank reads past whitespace and paragraph breaks.
func (p *parser) skipBlank() doctoken.Kind {
	k := p.next()
	for k == doctoken.Whitespace || k == doctoken.NewPara {
		k = p.next()
	}
	return k
}

// parseHTMLList parses the items of <ul> or <ol> up to the matching end
// tag.
func (p *parser) parseHTMLList(list *docast.Node) Code {
	p.pushNode(list)
	defer p.popNode(list)

	letter := 'u'
	if list.List.Ordered {
		letter = 'o'
	}

	switch p.skipBlank() {
	case doctoken.HTMLTag:
		tag := doctoken.LookupTag(p.tok.Name)
		switch {
		case tag == doctoken.TagLi && !p.tok.EndTag:
		case (tag == doctoken.TagUl || tag == doctoken.TagOl) && p.tok.EndTag:
			p.addDummyItem(list)
			p.grammarf("Empty list")
			return CodeOK
		default:
			p.addDummyItem(list)
			p.grammarf("Expected <li> tag,  found <%s%s> instead", endSlash(p.tok), p.tok.Name)
			p.src.PushBackTag(p.tok.Name)
			return CodeOK
		}
	case doctoken.EOF:
		p.addDummyItem(list)
		p.grammarf("Unexpected end of comment while looking for an html list item")
		return CodeOK
	default:
		p.addDummyItem(list)
		p.grammarf("Expected <li> tag, found %s token instead", p.tok)
		return CodeOK
	}

	code := CodeNextItem
	for num := 1; code == CodeNextItem; num++ {
		item := p.newListItem(list, num)
		p.pushNode(item)
		code = p.parseParagraphs(item, nil)
		p.popNode(item)
	}

	switch code {
	case CodeEOF:
		p.grammarf("Unexpected end of comment while inside <%cl> block", letter)
	case CodeCloseList:
		return CodeOK
	}
	return code
}

func (p *parser) newListItem(list *docast.Node, num int) *docast.Node {
	item := p.newNode(docast.NodeHtmlListItem)
	item.List = &docast.ListAttrs{Ordered: list.List.Ordered, Number: num, IsXML: list.List.IsXML}
	item.Attribs = p.tok.Attribs
	return p.add(list, item)
}

// addDummyItem keeps a malformed list non-empty.
func (p *parser) addDummyItem(list *docast.Node) {
	item := p.newNode(docast.NodeHtmlListItem)
	item.List = &docast.ListAttrs{Ordered: list.List.Ordered, Number: 1}
	p.add(list, item)
}

// parseHTMLListXML parses <list type="bullet|number"> with <item> children.
func (p *parser) parseHTMLListXML(list *docast.Node) Code {
	p.pushNode(list)
	defer p.popNode(list)

	switch p.skipBlank() {
	case doctoken.HTMLTag:
		if doctoken.LookupTag(p.tok.Name) != doctoken.XMLItem || p.tok.EndTag {
			p.grammarf("Expected <item> tag, found <%s> instead", p.tok.Name)
			p.src.PushBackTag(p.tok.Name)
			return CodeOK
		}
	case doctoken.EOF:
		p.grammarf("Unexpected end of comment while looking for an html list item")
		return CodeOK
	default:
		p.grammarf("Expected <item> tag, found %s token instead", p.tok)
		return CodeOK
	}

	code := CodeNextItem
	for num := 1; code == CodeNextItem; num++ {
		item := p.newListItem(list, num)
		p.pushNode(item)
		code = p.parseItemXML(item)
		p.popNode(item)
	}

	if code == CodeEOF {
		kind := "bullet"
		if list.List.Ordered {
			kind = "number"
		}
		p.grammarf("Unexpected end of comment while inside <list type=\"%s\"> block", kind)
		return code
	}
	if code == CodeCloseXML || p.tok.Name == "list" {
		return CodeOK
	}
	return code
}

// parseItemXML parses the paragraphs of an <item> up to the next item or
// the closing tag.
func (p *parser) parseItemXML(item *docast.Node) Code {
	var first, last *docast.Node
	for {
		par := p.newPara()
		p.add(item, par)
		code := p.parsePara(par, false)
		if par.HasChildren() {
			if first == nil {
				first = par
				par.Para.First = true
			}
			last = par
		} else {
			docast.RemoveChild(item, par)
		}

		if code == CodeEOF || code == CodeNextItem || code == CodeCloseXML {
			if last != nil {
				last.Para.Last = true
			}
			return code
		}
	}
}

// parseDescList parses the <dt>/<dd> pairs of a <dl>.
func (p *parser) parseDescList(dl *docast.Node) Code {
	p.pushNode(dl)
	defer p.popNode(dl)

	switch p.skipBlank() {
	case doctoken.HTMLTag:
		if doctoken.LookupTag(p.tok.Name) != doctoken.TagDt || p.tok.EndTag {
			p.grammarf("Expected <dt> tag, found <%s> instead", p.tok.Name)
			p.src.PushBackTag(p.tok.Name)
			return CodeOK
		}
	case doctoken.EOF:
		p.grammarf("Unexpected end of comment while looking for an html description title")
		return CodeOK
	default:
		p.grammarf("Expected <dt> tag, found %s token instead", p.tok)
		return CodeOK
	}

	code := CodeDescTitle
	for code == CodeDescTitle || code == CodeDescData {
		if code == CodeDescTitle {
			dt := p.newNode(docast.NodeHtmlDescTitle)
			dt.Attribs = p.tok.Attribs
			p.add(dl, dt)
			code = p.parseDescTitle(dt)
			continue
		}
		dd := p.newNode(docast.NodeHtmlDescData)
		dd.Attribs = p.tok.Attribs
		p.add(dl, dd)
		p.pushNode(dd)
		code = p.parseParagraphs(dd, nil)
		p.popNode(dd)
	}

	switch code {
	case CodeEOF:
		p.grammarf("Unexpected end of comment while inside <dl> block")
	case CodeEndDesc:
		return CodeOK
	}
	return code
}

// parseDescTitle parses the inline content of a <dt>.
func (p *parser) parseDescTitle(dt *docast.Node) Code {
	p.pushNode(dt)
	defer p.popNode(dt)
	defer p.flushPendingStyles(dt)

	for p.next() != doctoken.EOF {
		if p.handleDefault(dt, true) {
			continue
		}
		switch p.tok.Kind {
		case doctoken.CommandAt, doctoken.CommandBS:
			switch doctoken.LookupCommand(p.tok.Name) {
			case doctoken.CmdRef:
				p.handleRef(dt)
			case doctoken.CmdLink:
				p.handleLink(dt, false)
			case doctoken.CmdJavaLink:
				p.handleLink(dt, true)
			default:
				p.grammarf("Invalid command %s as part of a <dt> tag", p.tok)
			}
		case doctoken.Symbol:
			p.grammarf("Unsupported symbol %s found", p.tok.Name)
		case doctoken.HTMLTag:
			tag := doctoken.LookupTag(p.tok.Name)
			switch {
			case tag == doctoken.TagDd && !p.tok.EndTag:
				return CodeDescData
			case tag == doctoken.TagDt && p.tok.EndTag:
			case tag == doctoken.TagDt:
				return CodeDescTitle
			case tag == doctoken.TagDl && p.tok.EndTag:
				return CodeEndDesc
			case tag == doctoken.TagA && !p.tok.EndTag:
				p.handleAHref(dt, p.tok.Attribs)
			default:
				p.grammarf("Unexpected html tag <%s%s> found within <dt> context", endSlash(p.tok), p.tok.Name)
			}
		default:
			p.grammarf("Unexpected token %s", p.tok)
		}
	}
	p.grammarf("Unexpected end of comment while inside <dt> tag")
	return CodeEOF
}

func (p *parser) parseBlockQuote(bq *docast.Node) Code {
	p.pushNode(bq)
	defer p.popNode(bq)

	code := p.parseParagraphs(bq, nil)
	if code == CodeEndBlockQuote {
		return CodeOK
	}
	return code
}

// handleParBlock parses \parblock .. \endparblock.
func (p *parser) handleParBlock(par *docast.Node) Code {
	block := p.newNode(docast.NodeParBlock)
	p.add(par, block)

	p.pushNode(block)
	defer p.popNode(block)

	code := p.parseParagraphs(block, nil)
	if code == CodeEndParBlock {
		return CodeOK
	}
	return code
}

// handleSimpleList parses a run of \li items. Each item holds exactly one
// paragraph.
func (p *parser) handleSimpleList(par *docast.Node) Code {
	sl := p.newNode(docast.NodeSimpleList)
	p.add(par, sl)

	p.pushNode(sl)
	defer p.popNode(sl)

	code := CodeNextItem
	for code == CodeNextItem {
		item := p.newNode(docast.NodeSimpleListItem)
		p.add(sl, item)
		p.pushNode(item)
		ip := p.newPara()
		p.add(item, ip)
		code = p.parsePara(ip, false)
		ip.Para.First = true
		ip.Para.Last = true
		p.popNode(item)
	}

	if code == CodeNewPara {
		return CodeOK
	}
	return code
}

// parseAutoList parses the items of a list started by "-" or "1." markers.
// The list continues while markers of the same kind appear at the same
// indent with non-decreasing explicit numbers.
func (p *parser) parseAutoList(al *docast.Node) Code {
	p.pushNode(al)
	defer p.popNode(al)

	if t, ok := p.src.(doctoken.AutoListTracker); ok {
		t.StartAutoList()
		defer t.EndAutoList()
	}

	num := 1
	for {
		if p.tok.ID != -1 {
			num = p.tok.ID
		}
		item := p.newNode(docast.NodeAutoListItem)
		item.List = &docast.ListAttrs{
			Indent:  al.List.Indent,
			Ordered: al.List.Ordered,
			Depth:   al.List.Depth,
			Number:  num,
		}
		p.add(al, item)
		num++

		code := p.parseAutoListItem(item)
		if code != CodeListItem ||
			p.tok.Indent != al.List.Indent ||
			p.tok.IsEnumList != al.List.Ordered ||
			(p.tok.ID != -1 && p.tok.ID < num) {
			return code
		}
	}
}

// parseAutoListItem parses paragraphs while they are indented deeper than
// the item marker.
func (p *parser) parseAutoListItem(item *docast.Node) Code {
	p.pushNode(item)
	defer p.popNode(item)

	indent := item.List.Indent
	return p.parseParagraphs(item, func() bool {
		return p.tok.Indent > indent
	})
}

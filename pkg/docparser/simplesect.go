package docparser

import (
	"regexp"
	"strings"

	"github.com/copperspice/doxypress-sub002/pkg/docast"
	"github.com/copperspice/doxypress-sub002/pkg/doctoken"
)

// handleSimpleSection starts a simple section in par, or continues the
// previous one when it has the same type.
func (p *parser) handleSimpleSection(par *docast.Node, typ docast.SectType, xml bool) Code {
	var ss *docast.Node
	separate := false
	if last := par.LastChild; last != nil && last.Kind == docast.NodeSimpleSect &&
		last.Sect.Type == typ && typ != docast.SectUser {
		ss = last
		separate = true
	} else {
		ss = p.newNode(docast.NodeSimpleSect)
		ss.Sect = &docast.SectAttrs{Type: typ, IsXML: xml}
		p.add(par, ss)
	}

	if xml {
		return p.parseSimpleSectXML(ss)
	}
	code := p.parseSimpleSect(ss, typ == docast.SectUser, separate)
	if code == CodeNewPara {
		return CodeOK
	}
	return code
}

func lastPara(n *docast.Node) *docast.Node {
	for c := n.LastChild; c != nil; c = c.Prev {
		if c.Kind == docast.NodePara {
			return c
		}
	}
	return nil
}

func (p *parser) parseSimpleSect(ss *docast.Node, userTitle, separate bool) Code {
	p.pushNode(ss)
	defer p.popNode(ss)

	if userTitle {
		title := p.newNode(docast.NodeTitle)
		p.add(ss, title)
		p.parseTitle(title, "title section")
	}

	prev := lastPara(ss)
	if prev != nil {
		prev.Para.Last = false
	}
	if separate {
		p.addLeaf(ss, docast.NodeSimpleSectSep, "")
	}

	par := p.newPara()
	par.Para.First = prev == nil
	par.Para.Last = true
	p.add(ss, par)
	code := p.parsePara(par, false)
	if !par.HasChildren() {
		docast.RemoveChild(ss, par)
		if prev != nil {
			prev.Para.Last = true
		}
	}
	return code
}

// parseSimpleSectXML parses the paragraphs of <returns> and similar tags up
// to the closing tag.
func (p *parser) parseSimpleSectXML(ss *docast.Node) Code {
	p.pushNode(ss)
	defer p.popNode(ss)

	for {
		prev := lastPara(ss)
		par := p.newPara()
		par.Para.First = prev == nil
		par.Para.Last = true
		p.add(ss, par)

		code := p.parsePara(par, false)
		if par.HasChildren() {
			if prev != nil {
				prev.Para.Last = false
			}
		} else {
			docast.RemoveChild(ss, par)
		}

		switch code {
		case CodeEOF:
			return code
		case CodeCloseXML:
			return CodeOK
		}
	}
}

// parseTitle parses the rest of the line into title. what names the
// construct in diagnostics.
func (p *parser) parseTitle(title *docast.Node, what string) {
	p.pushNode(title)
	defer p.popNode(title)

	p.setMode(doctoken.ModeTitle)
	for p.next() != doctoken.EOF {
		if p.handleDefault(title, true) {
			continue
		}
		switch p.tok.Kind {
		case doctoken.CommandAt, doctoken.CommandBS:
			p.grammarf("Invalid command %s as part of a %s", p.tok.Name, what)
		case doctoken.Symbol:
			p.grammarf("Unsupported symbol %s found", p.tok.Name)
		default:
			p.grammarf("Unexpected token %s", p.tok)
		}
	}
	p.setMode(doctoken.ModePara)
	p.flushPendingStyles(title)
}

// appendSeeAlso adds a link word to a see-also section, comma separated
// from the previous one.
func (p *parser) appendSeeAlso(ss *docast.Node, target string) {
	par := ss.LastChild
	if par == nil || par.Kind != docast.NodePara {
		par = p.newPara()
		par.Para.First = true
		par.Para.Last = true
		p.add(ss, par)
	} else {
		p.addWord(par, ",")
		p.addWhiteSpace(par, " ")
	}

	saved := p.inSeeBlock
	p.inSeeBlock = true
	p.handleLinkedWord(par, target, false)
	p.inSeeBlock = saved
}

// parseRcs turns a $Keyword: value$ tag into a titled simple section.
func (p *parser) parseRcs(par *docast.Node) {
	ss := p.newNode(docast.NodeSimpleSect)
	ss.Sect = &docast.SectAttrs{Type: docast.SectRcs}
	p.add(par, ss)

	title := p.newNode(docast.NodeTitle)
	p.add(ss, title)
	p.addWord(title, p.tok.Name)

	text := p.tok.Text
	p.pushNode(ss)
	p.nested(true, true, func() {
		p.parseDocInto(ss, text)
	})
	p.popNode(ss)
}

// handleParamSection adds a parameter list to par, reusing a directly
// preceding parameter section of the same type.
func (p *parser) handleParamSection(par *docast.Node, name string, typ docast.ParamType, xml bool, dir doctoken.ParamDir) Code {
	var ps *docast.Node
	if last := par.LastChild; last != nil && last.Kind == docast.NodeParamSect && last.Sect.ParamType == typ {
		ps = last
	} else {
		ps = p.newNode(docast.NodeParamSect)
		ps.Sect = &docast.SectAttrs{ParamType: typ, IsXML: xml}
		p.add(par, ps)
	}

	code := p.parseParamSect(ps, name, xml, dir)
	if code == CodeNewPara {
		return CodeOK
	}
	return code
}

func (p *parser) parseParamSect(ps *docast.Node, name string, xml bool, dir doctoken.ParamDir) Code {
	p.pushNode(ps)
	defer p.popNode(ps)

	if dir != doctoken.DirUnspecified {
		ps.Sect.HasInOut = true
	}

	pl := p.newNode(docast.NodeParamList)
	pl.Sect = &docast.SectAttrs{ParamType: ps.Sect.ParamType, Dir: dir, IsXML: xml}
	p.add(ps, pl)

	var code Code
	if xml {
		code = p.parseParamListXML(pl, name)
	} else {
		code = p.parseParamList(pl, name)
	}
	if code == CodeEndParBlock {
		return CodeOK
	}
	return code
}

// parseParamList reads the comma separated names after \param, \tparam,
// \retval or \exception and one description paragraph.
func (p *parser) parseParamList(pl *docast.Node, cmdName string) Code {
	p.pushNode(pl)
	defer p.popNode(pl)

	if p.next() != doctoken.Whitespace {
		p.grammarf("Expected whitespace after \\%s command", cmdName)
		return CodeOK
	}

	p.setMode(doctoken.ModeParam)
	for p.next() == doctoken.Word {
		p.addParamName(pl, p.tok.Name)
	}
	p.setMode(doctoken.ModePara)

	switch p.tok.Kind {
	case doctoken.Whitespace:
	case doctoken.EOF:
		p.grammarf("Unexpected end of comment block while parsing the argument of command %s", cmdName)
		return CodeOK
	default:
		p.grammarf("Unexpected token in comment block while parsing the argument of command %s", cmdName)
		return CodeOK
	}

	par := p.newPara()
	par.Para.First = true
	par.Para.Last = true
	p.add(pl, par)
	code := p.parsePara(par, false)
	if !par.HasChildren() {
		docast.RemoveChild(pl, par)
	}
	return code
}

func (p *parser) addParamName(pl *docast.Node, name string) {
	switch pl.Sect.ParamType {
	case docast.ParamParam:
		if i := strings.IndexByte(name, '#'); i >= 0 {
			p.addParamTypes(pl, name[:i])
			name = name[i+1:]
			pl.Parent.Sect.HasTypes = true
		}
		p.hasParamCommand = true
		p.checkArgumentName(name)
	case docast.ParamRetVal:
		p.hasReturnCommand = true
	}
	p.handleLinkedWord(pl, name, false)
}

// addParamTypes adds the `int|long[]` part of `\param int|long[]#x`.
func (p *parser) addParamTypes(pl *docast.Node, types string) {
	pt := p.newNode(docast.NodeParamType)
	p.add(pl, pt)
	for i, typ := range strings.Split(types, "|") {
		if i > 0 {
			p.addLeaf(pt, docast.NodeSep, "|")
		}
		suffix := ""
		if j := strings.IndexByte(typ, '['); j >= 0 {
			typ, suffix = typ[:j], typ[j:]
		}
		p.handleLinkedWord(pt, typ, false)
		if suffix != "" {
			p.addWord(pt, suffix)
		}
	}
}

// parseParamListXML parses the body of <param name="x"> up to its end tag.
func (p *parser) parseParamListXML(pl *docast.Node, name string) Code {
	p.pushNode(pl)
	defer p.popNode(pl)

	p.addParamName(pl, name)

	code := p.parseParagraphs(pl, nil)
	switch code {
	case CodeEOF:
		p.grammarf("Unterminated param or exception tag")
		return code
	case CodeCloseXML:
		switch doctoken.LookupTag(p.tok.Name) {
		case doctoken.XMLParam, doctoken.XMLTypeParam, doctoken.XMLException:
			return CodeOK
		}
	}
	return code
}

var argNamePattern = regexp.MustCompile(`\$?[a-zA-Z0-9_\x{80}-\x{10FFFF}]+\.*`)

// checkArgumentName records the names of a \param command and reports the
// ones the documented member does not have.
func (p *parser) checkArgumentName(name string) {
	if !p.cfg.WarnDocError || p.member == nil || !p.member.IsFunction() || name == "" {
		return
	}

	for _, arg := range argNamePattern.FindAllString(name, -1) {
		found := false
		for _, param := range p.member.Params {
			param = strings.TrimSuffix(strings.TrimSpace(param), "...")
			if arg == param {
				p.paramsFound[arg]++
				found = true
				break
			}
		}
		if !found {
			p.grammarf("Argument '%s' of command @param was not found in the argument list of %s(%s)",
				arg, p.member.Name, strings.Join(p.member.Params, ", "))
		}
	}
}

// checkUndocumentedParams reports duplicated and missing parameter
// documentation of the member once its whole comment has been parsed.
func (p *parser) checkUndocumentedParams() {
	m := p.member
	if m == nil || !m.IsFunction() {
		return
	}

	if p.hasParamCommand {
		var missing []string
		for _, param := range m.Params {
			param = strings.TrimSuffix(strings.TrimSpace(param), "...")
			if param == "" {
				continue
			}
			switch n := p.paramsFound[param]; {
			case n == 0:
				missing = append(missing, "parameter '"+param+"'")
			case n > 1:
				p.grammarf("Argument '%s' from the argument list of %s has multiple \\param documentation sections",
					param, m.Name)
			}
		}
		if len(missing) > 0 && p.cfg.WarnUndocParams {
			p.grammarf("The following parameters of %s(%s) are not documented: %s",
				m.Name, strings.Join(m.Params, ", "), strings.Join(missing, ", "))
		}
	}

	void := strings.TrimSpace(m.ReturnType) == "void"
	switch {
	case p.hasReturnCommand && void:
		p.grammarf("Documented empty return type of %s", m.Name)
	case !p.hasReturnCommand && !void && m.ReturnType != "" && p.hasParamCommand && p.cfg.WarnUndocParams:
		p.grammarf("Return type of %s is not documented", m.Name)
	}
}

// handleXRefItem parses \todo, \bug, \test, \deprecated and \xrefitem.
// Items of a list are numbered in document order and looked up by that
// number.
func (p *parser) handleXRefItem(par *docast.Node) Code {
	key := p.tok.Name
	heading := ""
	if key == "xrefitem" {
		if p.next() != doctoken.Whitespace {
			p.grammarf("Expected whitespace after \\%s command", key)
			return CodeOK
		}
		p.setMode(doctoken.ModeXRefItem)
		k := p.next()
		p.setMode(doctoken.ModePara)
		if k != doctoken.Word {
			p.grammarf("Unexpected token %s as the argument of xrefitem", p.tok)
			return CodeOK
		}
		key, heading = p.tok.Name, p.tok.Text
	}

	p.xrefCount[key]++
	id := p.xrefCount[key]

	ref := p.newNode(docast.NodeXRefItem)
	ref.Ref = &docast.RefAttrs{Target: key, Key: key, ID: id, TargetKind: "xrefitem"}
	item, found := p.res.XRefItem(key, id)
	if found {
		ref.Ref.File = item.File
		ref.Ref.Anchor = item.Anchor
		if p.member != nil && strings.HasPrefix(p.member.Name, "@") {
			ref.Ref.File = "@"
			ref.Ref.Anchor = "@"
		}
		if item.Heading != "" {
			heading = item.Heading
		}
	}
	if heading == "" {
		heading = key
	}
	p.add(par, ref)

	title := p.newNode(docast.NodeTitle)
	p.add(ref, title)
	p.addWord(title, heading)

	p.pushNode(ref)
	defer p.popNode(ref)

	body := p.newPara()
	body.Para.First = true
	body.Para.Last = true
	p.add(ref, body)
	code := p.parsePara(body, false)
	if !body.HasChildren() {
		docast.RemoveChild(ref, body)
		if found && item.Text != "" {
			p.nested(true, true, func() {
				p.parseDocInto(ref, item.Text)
			})
		}
	}
	if code == CodeNewPara {
		return CodeOK
	}
	return code
}

// handleCite reads the key of \cite.
func (p *parser) handleCite(par *docast.Node) {
	if p.next() != doctoken.Whitespace {
		p.grammarf("Expected whitespace after \\%s command", "cite")
		return
	}

	p.setMode(doctoken.ModeCite)
	defer p.setMode(doctoken.ModePara)
	switch p.next() {
	case doctoken.Word, doctoken.LinkedWord:
	case doctoken.EOF:
		p.grammarf("Unexpected end of comment block while parsing the argument of command %s", "cite")
		return
	default:
		p.grammarf("Unexpected token %s as the argument of %s", p.tok, "cite")
		return
	}

	key := p.tok.Name
	n := p.newNode(docast.NodeCite)
	n.Ref = &docast.RefAttrs{Target: key, Anchor: "CITEREF_" + key, Scope: p.context, TargetKind: "cite"}
	p.add(par, n)

	if p.bibFiles == 0 {
		p.resolutionf("No bib files for the \\cite command were specified in 'CITE BIB FILES'")
		n.Text = key
		return
	}
	label, ok := p.res.Cite(key)
	if !ok {
		p.resolutionf("Unable to resolve reference to '%s' for \\cite command", key)
		n.Text = key
		n.Ref.Anchor = ""
		return
	}
	n.Text = label
}

func (p *parser) handleEmoji(par *docast.Node) {
	if p.next() != doctoken.Whitespace {
		p.grammarf("Expected whitespace after \\%s command", "emoji")
		return
	}

	p.setMode(doctoken.ModeEmoji)
	defer p.setMode(doctoken.ModePara)
	switch p.next() {
	case doctoken.Word:
		p.addLeaf(par, docast.NodeEmoji, p.tok.Name)
	case doctoken.EOF:
		p.grammarf("Unexpected end of comment block while parsing the argument of command %s", "emoji")
	default:
		p.grammarf("Unexpected token %s as the argument of %s", p.tok, "emoji")
	}
}

// handleSortID consumes the argument of \sortid.
func (p *parser) handleSortID() {
	if p.next() != doctoken.Whitespace {
		p.grammarf("Expected whitespace after \\%s command", "sortid")
		return
	}
	switch p.next() {
	case doctoken.Word, doctoken.LinkedWord:
	case doctoken.EOF:
		p.grammarf("Unexpected end of comment block while parsing the argument of command %s", "sortid")
	default:
		p.grammarf("Unexpected token %s as the argument of %s", p.tok, "sortid")
	}
}

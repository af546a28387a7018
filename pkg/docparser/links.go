package docparser

import (
	"strings"

	"github.com/copperspice/doxypress-sub002/pkg/diag"
	"github.com/copperspice/doxypress-sub002/pkg/docast"
	"github.com/copperspice/doxypress-sub002/pkg/doctoken"
	"github.com/copperspice/doxypress-sub002/pkg/resolver"
)

// handleLink parses \link target text \endlink and {@link target text}.
func (p *parser) handleLink(parent *docast.Node, java bool) {
	cmd := p.tok.Name
	if p.next() != doctoken.Whitespace {
		p.grammarf("Expected whitespace after \\%s command", cmd)
		return
	}

	p.setMode(doctoken.ModeLink)
	if p.next() != doctoken.Word {
		p.setMode(doctoken.ModePara)
		p.grammarf("Unexpected token %s as the argument of %s", p.tok, cmd)
		return
	}
	p.setMode(doctoken.ModePara)

	link := p.newLink(p.tok.Name)
	p.add(parent, link)
	if leftover := p.parseLink(link, java, false); leftover != "" {
		p.addWord(parent, leftover)
	}
}

// newLink returns a Link node for target, resolved against the current
// context.
func (p *parser) newLink(target string) *docast.Node {
	link := p.newNode(docast.NodeLink)
	link.Ref = &docast.RefAttrs{
		Target: strings.TrimPrefix(target, "#"),
		Scope:  p.context,
	}

	ent, ok := p.res.ResolveLink(p.context, target, p.inSeeBlock)
	if !ok {
		p.resolutionf("Unable to resolve link to '%s' for \\link command", target)
		return link
	}
	link.Ref.Anchor = ent.Anchor
	link.Ref.TargetKind = string(ent.Kind)
	link.Ref.Tooltip = ent.Brief
	if ent.Linkable() {
		link.Ref.File = ent.File
		link.Ref.External = ent.External
	}
	return link
}

// parseLink parses the link text up to \endlink, the closing brace of a
// Java-style link or the end tag of <see>. It returns text that followed
// the closing brace in the same word.
func (p *parser) parseLink(link *docast.Node, java, xml bool) string {
	p.pushNode(link)
	defer p.popNode(link)

	var leftover string
	p.linkLoop(link, java, xml, &leftover)

	if !link.HasChildren() {
		p.addWord(link, link.Ref.Target)
	}
	p.flushPendingStyles(link)
	return leftover
}

func (p *parser) linkLoop(link *docast.Node, java, xml bool, leftover *string) {
	for p.next() != doctoken.EOF {
		if p.handleDefault(link, false) {
			continue
		}
		switch p.tok.Kind {
		case doctoken.CommandAt, doctoken.CommandBS:
			if doctoken.LookupCommand(p.tok.Name) == doctoken.CmdEndLink {
				if java {
					p.grammarf("{@link.. ended with @endlink command")
				}
				return
			}
			p.grammarf("Invalid command %s as part of a \\link", p.tok)
		case doctoken.Symbol:
			p.grammarf("Unsupported symbol %s found", p.tok.Name)
		case doctoken.HTMLTag:
			if p.tok.Name != "see" || !xml {
				p.grammarf("Unexpected xml/html command %s found", p.tok.Name)
			}
			return
		case doctoken.Word, doctoken.LinkedWord:
			w := p.tok.Name
			if java {
				if i := strings.IndexByte(w, '}'); i >= 0 {
					if i > 0 {
						p.addWord(link, w[:i])
					}
					*leftover = w[i+1:]
					return
				}
			}
			p.addWord(link, w)
		default:
			p.grammarf("Unexpected token %s", p.tok)
		}
	}
	p.grammarf("Unexpected end of comment while inside link command")
}

// handleRef parses \ref target ["title"] and \subpage target ["title"].
func (p *parser) handleRef(parent *docast.Node) {
	cmd := p.tok.Name
	if p.next() != doctoken.Whitespace {
		p.grammarf("Expected whitespace after \\%s command", cmd)
		return
	}

	p.setMode(doctoken.ModeRef)
	defer p.setMode(doctoken.ModePara)
	if p.next() != doctoken.Word {
		p.grammarf("Unexpected token %s as the argument of %s", p.tok, cmd)
		return
	}

	ref, text := p.newRef(p.tok.Name, doctoken.LookupCommand(cmd) == doctoken.CmdSubpage)
	p.add(parent, ref)
	p.parseRefTitle(ref, text)
}

// newRef resolves target as a section label first and as a symbol second.
// It returns the node and the text shown when no title is given.
func (p *parser) newRef(target string, subpage bool) (*docast.Node, string) {
	ref := p.newNode(docast.NodeRef)
	ref.Ref = &docast.RefAttrs{Target: target, Scope: p.context, RelPath: p.file}

	if sec, ok := p.lookupSection(target); ok {
		if sec.Dupes > 0 {
			p.warn(diag.CategoryAmbiguity, "Link to ambiguous anchor '%s', using first anchor declared in %s",
				target, sec.File)
		}
		text := sec.Title
		if text == "" {
			text = sec.Label
		}
		ref.Ref.File = sec.File
		ref.Ref.External = sec.External
		ref.Ref.IsSubPage = subpage
		switch sec.Kind {
		case resolver.SectionAnchor:
			ref.Ref.TargetKind = "anchor"
		case resolver.SectionTable:
			ref.Ref.TargetKind = "table"
		default:
			ref.Ref.TargetKind = "section"
		}
		if sec.Kind != resolver.SectionPage || subpage {
			ref.Ref.Anchor = sec.Label
		}
		return ref, text
	}

	if ent, ok := p.res.ResolveLink(p.context, target, true); ok {
		text := linkText(target)
		if ent.Kind == resolver.KindFile || ent.Kind == resolver.KindPage {
			text = target
		}
		ref.Ref.Anchor = ent.Anchor
		ref.Ref.TargetKind = string(ent.Kind)
		ref.Ref.Tooltip = ent.Brief
		if ent.Linkable() {
			ref.Ref.File = ent.File
			ref.Ref.External = ent.External
			return ref, text
		}
	}

	p.resolutionf("Unable to resolve reference to '%s' for \\ref command", target)
	return ref, target
}

// lookupSection finds label, also under the page id of a markdown file
// name.
func (p *parser) lookupSection(label string) (resolver.Section, bool) {
	if sec, ok := p.res.Section(label); ok {
		return sec, true
	}
	if strings.HasSuffix(label, ".md") || strings.HasSuffix(label, ".markdown") {
		return p.res.Section(markdownPageID(label))
	}
	return resolver.Section{}, false
}

// markdownPageID is the page label of a markdown file.
func markdownPageID(name string) string {
	var sb strings.Builder
	sb.WriteString("md_")
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// parseRefTitle reads the optional "title" of a reference. Without one the
// resolved text is parsed as the reference's content.
func (p *parser) parseRefTitle(ref *docast.Node, text string) {
	p.pushNode(ref)
	defer p.popNode(ref)

	p.setMode(doctoken.ModeRefTitle)
	for p.next() != doctoken.EOF {
		if p.handleDefault(ref, true) {
			continue
		}
		switch p.tok.Kind {
		case doctoken.CommandAt, doctoken.CommandBS:
			p.grammarf("Invalid command %s as part of a \\ref", p.tok)
		case doctoken.Symbol:
			p.grammarf("Unsupported symbol %s found", p.tok.Name)
		case doctoken.HTMLTag:
		default:
			p.grammarf("Unexpected token %s", p.tok)
		}
	}
	p.setMode(doctoken.ModePara)

	if !ref.HasChildren() && text != "" {
		p.addFlattened(ref, text)
	}
	p.flushPendingStyles(ref)
}

// addFlattened parses text in a nested context and appends the content of
// its paragraphs to n.
func (p *parser) addFlattened(n *docast.Node, text string) {
	tmp := docast.NewNode(docast.NodeText)
	p.nested(false, false, func() {
		p.insideHTMLLink = true
		p.parseDocInto(tmp, text)
	})
	for par := tmp.FirstChild; par != nil; par = par.Next {
		if par.Kind == docast.NodePara {
			docast.MoveChildren(par, n)
		}
	}
}

// handleInternalRef parses \_internalref file#anchor text.
func (p *parser) handleInternalRef(parent *docast.Node) {
	cmd := p.tok.Name
	if p.next() != doctoken.Whitespace {
		p.grammarf("Expected whitespace after \\%s command", cmd)
		return
	}

	p.setMode(doctoken.ModeInternalRef)
	defer p.setMode(doctoken.ModePara)
	if k := p.next(); k != doctoken.Word && k != doctoken.LinkedWord {
		p.grammarf("Unexpected token %s as the argument of %s", p.tok, cmd)
		return
	}

	ref := p.newNode(docast.NodeInternalRef)
	ref.Ref = &docast.RefAttrs{Target: p.tok.Name, File: p.tok.Name, RelPath: p.file}
	if file, anchor, ok := strings.Cut(p.tok.Name, "#"); ok {
		ref.Ref.File = file
		ref.Ref.Anchor = anchor
	}
	p.add(parent, ref)

	p.pushNode(ref)
	defer p.popNode(ref)
	for p.next() != doctoken.EOF {
		if p.handleDefault(ref, true) {
			continue
		}
		switch p.tok.Kind {
		case doctoken.CommandAt, doctoken.CommandBS:
			p.grammarf("Invalid command %s as part of a \\ref", p.tok)
		case doctoken.Symbol:
			p.grammarf("Unsupported symbol %s found", p.tok.Name)
		default:
			p.grammarf("Unexpected token %s", p.tok)
		}
	}
	p.flushPendingStyles(ref)
}

// handleSecRefList parses \secreflist \refitem label title ... \endsecreflist.
func (p *parser) handleSecRefList(par *docast.Node) {
	list := p.newNode(docast.NodeSecRefList)
	p.add(par, list)

	p.pushNode(list)
	defer p.popNode(list)

	for k := p.skipBlank(); k != doctoken.EOF; k = p.next() {
		switch k {
		case doctoken.Whitespace:
			continue
		case doctoken.CommandAt, doctoken.CommandBS:
		default:
			p.grammarf("Unexpected token %s inside section reference list", p.tok)
			return
		}

		switch doctoken.LookupCommand(p.tok.Name) {
		case doctoken.CmdSecRefItem:
			if p.next() != doctoken.Whitespace {
				p.grammarf("Expected whitespace after \\refitem command")
				continue
			}
			if k := p.next(); k != doctoken.Word && k != doctoken.LinkedWord {
				p.grammarf("Unexpected token %s as the argument of \\refitem", p.tok)
				continue
			}
			p.parseSecRefItem(list, p.tok.Name)
		case doctoken.CmdEndSecRefList:
			return
		default:
			p.grammarf("Invalid command %s as part of a \\secreflist", p.tok)
			return
		}
	}
}

func (p *parser) parseSecRefItem(list *docast.Node, target string) {
	item := p.newNode(docast.NodeSecRefItem)
	item.Ref = &docast.RefAttrs{Target: target, TargetKind: "section", RelPath: p.file}
	p.add(list, item)
	p.parseTitle(item, "\\refitem")

	if target == "" {
		p.grammarf("reference to empty target")
		return
	}
	sec, ok := p.res.Section(target)
	if !ok {
		p.resolutionf("reference to unknown section %s", target)
		return
	}
	item.Ref.File = sec.File
	item.Ref.Anchor = sec.Label
	item.Ref.External = sec.External
	p.recordSection(sec)
}

// diagramFiles describes the external diagram file commands.
var diagramFiles = map[docast.NodeKind]struct {
	cmd, what, ext string
}{
	docast.NodeDotFile: {"dotfile", "dot", ".dot"},
	docast.NodeMscFile: {"mscfile", "msc", ".msc"},
	docast.NodeDiaFile: {"diafile", "dia", ".dia"},
}

// handleFile parses \dotfile, \mscfile and \diafile. The node is dropped
// when the file cannot be found.
func (p *parser) handleFile(par *docast.Node, kind docast.NodeKind) {
	info := diagramFiles[kind]
	if p.next() != doctoken.Whitespace {
		p.grammarf("Expected whitespace after \\%s command", info.cmd)
		return
	}

	p.setMode(doctoken.ModeFile)
	k := p.next()
	p.setMode(doctoken.ModePara)
	if k != doctoken.Word {
		p.grammarf("Unexpected token %s as the argument of %s", p.tok, info.cmd)
		return
	}

	n := p.newNode(kind)
	n.Image = &docast.ImageAttrs{Name: p.tok.Name}
	n.Ref = &docast.RefAttrs{Scope: p.context}
	p.add(par, n)
	n.Image.Width, n.Image.Height = p.titleAndSize(n, info.cmd)

	path, candidates, ok := p.res.FindFile(n.Image.Name)
	if !ok && len(candidates) <= 1 && !strings.HasSuffix(n.Image.Name, info.ext) {
		path, candidates, ok = p.res.FindFile(n.Image.Name + info.ext)
	}
	switch {
	case ok:
		n.Image.File = path
		return
	case len(candidates) > 1:
		p.warnAmbiguous(candidates, "Included %s file name %s is ambiguous", info.what, n.Image.Name)
	default:
		p.resolutionf("Included %s file %s was not found", info.what, n.Image.Name)
	}
	docast.RemoveChild(par, n)
}

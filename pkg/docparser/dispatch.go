package docparser

import (
	"strings"

	"github.com/copperspice/doxypress-sub002/pkg/docast"
	"github.com/copperspice/doxypress-sub002/pkg/doctoken"
	"github.com/copperspice/doxypress-sub002/pkg/resolver"
)

// tagStyles maps the inline HTML tags to the style they toggle.
var tagStyles = map[doctoken.Tag]docast.Style{
	doctoken.TagBold:      docast.StyleBold,
	doctoken.TagStrike:    docast.StyleStrike,
	doctoken.TagDel:       docast.StyleDel,
	doctoken.TagUnderline: docast.StyleUnderline,
	doctoken.TagIns:       docast.StyleIns,
	doctoken.TagCite:      docast.StyleCite,
	doctoken.TagDetails:   docast.StyleDetails,
	doctoken.TagS:         docast.StyleS,
	doctoken.TagCode:      docast.StyleCode,
	doctoken.XMLC:         docast.StyleCode,
	doctoken.TagEmphasis:  docast.StyleItalic,
	doctoken.TagSub:       docast.StyleSubscript,
	doctoken.TagSup:       docast.StyleSuperscript,
	doctoken.TagCenter:    docast.StyleCenter,
	doctoken.TagSmall:     docast.StyleSmall,
	doctoken.TagSpan:      docast.StyleSpan,
}

// commandStyles maps the word-level style commands to their style.
var commandStyles = map[doctoken.Command]docast.Style{
	doctoken.CmdEmphasis: docast.StyleItalic,
	doctoken.CmdBold:     docast.StyleBold,
	doctoken.CmdCode:     docast.StyleCode,
}

type rawBlock struct {
	mode  doctoken.Mode
	typ   docast.VerbatimType
	label string
}

// rawBlocks are the output-format passthrough blocks.
var rawBlocks = map[doctoken.Command]rawBlock{
	doctoken.CmdHTMLOnly:    {doctoken.ModeHTMLOnly, docast.VerbatimHTMLOnly, "Htmlonly"},
	doctoken.CmdManOnly:     {doctoken.ModeManOnly, docast.VerbatimManOnly, "Manonly"},
	doctoken.CmdRTFOnly:     {doctoken.ModeRTFOnly, docast.VerbatimRTFOnly, "Rtfonly"},
	doctoken.CmdLatexOnly:   {doctoken.ModeLatexOnly, docast.VerbatimLatexOnly, "Latexonly"},
	doctoken.CmdXMLOnly:     {doctoken.ModeXMLOnly, docast.VerbatimXMLOnly, "Xmlonly"},
	doctoken.CmdDocbookOnly: {doctoken.ModeDocbookOnly, docast.VerbatimDocbookOnly, "Docbookonly"},
}

// handleDefault handles the tokens that are valid in every inline context:
// escapes, word-level styles, inline HTML styles, symbols, whitespace and
// words. It reports false when the caller must handle p.tok itself.
func (p *parser) handleDefault(parent *docast.Node, handleWord bool) bool {
	for {
		switch p.tok.Kind {
		case doctoken.CommandAt, doctoken.CommandBS:
			cmd := doctoken.LookupCommand(p.tok.Name)
			style, isStyle := commandStyles[cmd]
			if !isStyle {
				return p.defaultCommand(parent, cmd)
			}
			if !p.styleCommand(parent, style) {
				return true
			}
			switch p.tok.Kind {
			case doctoken.NewPara:
				if p.insidePre() || parent.HasChildren() {
					p.addWhiteSpace(parent, p.tok.Chars)
				}
				return true
			case doctoken.Word, doctoken.HTMLTag:
				continue
			default:
				return true
			}

		case doctoken.HTMLTag:
			return p.defaultTag(parent)

		case doctoken.Symbol:
			text, ok := docast.LookupSymbol(p.tok.Name)
			if !ok {
				return false
			}
			p.addSymbol(parent, p.tok.Name, text)

		case doctoken.Whitespace, doctoken.NewPara:
			if p.insidePre() || parent.HasChildren() {
				p.addWhiteSpace(parent, p.tok.Chars)
			}

		case doctoken.LinkedWord:
			if !handleWord {
				return false
			}
			p.handleLinkedWord(parent, p.tok.Name, false)

		case doctoken.Word:
			if !handleWord {
				return false
			}
			p.addWord(parent, p.tok.Name)

		case doctoken.URL:
			if p.insideHTMLLink {
				p.addWord(parent, p.tok.Name)
			} else {
				p.addURL(parent, p.tok)
			}

		default:
			return false
		}
		return true
	}
}

func (p *parser) defaultCommand(parent *docast.Node, cmd doctoken.Command) bool {
	switch {
	case cmd.IsEscape():
		p.addEscape(parent, cmd)
	case cmd == doctoken.CmdForm:
		p.addFormula(parent)
	case cmd == doctoken.CmdAnchor:
		p.handleAnchor(parent)
	case cmd == doctoken.CmdAnchorName:
		p.handleAnchorName()
	case cmd == doctoken.CmdInternalRef:
		p.handleInternalRef(parent)
	case cmd == doctoken.CmdSetScope:
		p.handleSetScope()
	case cmd == doctoken.CmdImage:
		p.handleImage(parent)
	default:
		if raw, ok := rawBlocks[cmd]; ok {
			p.handleRawBlock(parent, raw)
			return true
		}
		return false
	}
	return true
}

func (p *parser) defaultTag(parent *docast.Node) bool {
	tok := p.tok
	tag := doctoken.LookupTag(tok.Name)
	switch tag {
	case doctoken.TagDiv:
		p.grammarf("Found <div> tag in heading")
	case doctoken.TagPre:
		p.grammarf("Found <pre> tag in heading")
	case doctoken.TagImg:
		if !tok.EndTag {
			p.handleImg(parent, tok.Attribs)
		}
	default:
		style, ok := tagStyles[tag]
		if !ok {
			return false
		}
		if tok.EndTag {
			p.styleLeave(parent, style, tok.Name)
		} else {
			p.styleEnter(parent, style, tok.Name, tok.Attribs)
		}
	}
	return true
}

// styleCommand wraps the argument of \b, \e or \c in a style span. It
// reports true when p.tok holds a token the argument did not consume.
func (p *parser) styleCommand(parent *docast.Node, style docast.Style) bool {
	name := p.tok.Name
	p.addStyleMarker(parent, style, true, name, nil)
	pending := p.styleArgument(parent, name)
	p.addStyleMarker(parent, style, false, name, nil)
	if !pending || p.tok.Kind != doctoken.Word {
		p.addWhiteSpace(parent, " ")
	}
	return pending
}

// styleArgument reads the single word a style command applies to.
func (p *parser) styleArgument(parent *docast.Node, cmdName string) bool {
	if p.next() != doctoken.Whitespace {
		p.grammarf("Expected whitespace after \\%s command", cmdName)
		return true
	}

	for {
		switch p.next() {
		case doctoken.EOF, doctoken.Whitespace:
			return false
		case doctoken.NewPara, doctoken.ListItem, doctoken.EndList:
			return true
		case doctoken.Word:
			if len(p.tok.Name) == 1 && strings.Contains(".,|()[]:;?", p.tok.Name) {
				return true
			}
		}

		if p.handleDefault(parent, true) {
			continue
		}

		switch p.tok.Kind {
		case doctoken.CommandAt, doctoken.CommandBS:
			p.grammarf("Invalid command \\%s as the argument of a \\%s command", p.tok.Name, cmdName)
		case doctoken.Symbol:
			p.grammarf("Unsupported symbol %s found while handling command %s", p.tok.Name, cmdName)
		case doctoken.HTMLTag:
			if insideLI(parent) && p.tok.EndTag && doctoken.LookupTag(p.tok.Name) != doctoken.TagUnknown {
				continue
			}
			return true
		default:
			p.grammarf("Unexpected token %s while handling command %s", p.tok, cmdName)
		}
		return false
	}
}

// linkText returns the display form of a link target.
func linkText(name string) string {
	name = strings.ReplaceAll(name, "#", "::")
	return strings.TrimPrefix(name, "::")
}

// handleLinkedWord turns a word that looks like a symbol into a link when
// the resolver knows it.
func (p *parser) handleLinkedWord(parent *docast.Node, name string, ignoreAutolink bool) {
	display := linkText(name)
	if !p.cfg.AutolinkSupport && !ignoreAutolink {
		p.addWord(parent, display)
		return
	}

	if !p.insideHTMLLink {
		ent, ok := p.res.Resolve(p.context, name)
		if !ok && p.context != "" {
			ent, ok = p.res.Resolve("", name)
		}
		if ok {
			if !ent.Linkable() || p.context == name {
				p.addWord(parent, display)
				return
			}
			p.addLinkedWord(parent, display, name, ent)
			return
		}

		if len(name) > 1 && strings.HasSuffix(name, ":") {
			p.handleLinkedWord(parent, name[:len(name)-1], ignoreAutolink)
			p.addWord(parent, ":")
			return
		}
	}

	if strings.HasPrefix(name, "#") || strings.HasPrefix(name, "::") {
		p.resolutionf("Explicit link to '%s' could not be resolved", display)
		p.addWord(parent, name)
		return
	}
	p.addWord(parent, display)
}

func (p *parser) addLinkedWord(parent *docast.Node, text, target string, ent resolver.Entity) {
	n := p.addLeaf(parent, docast.NodeLinkedWord, text)
	n.Ref = &docast.RefAttrs{
		Target:     target,
		File:       ent.File,
		Anchor:     ent.Anchor,
		Scope:      p.context,
		External:   ent.External,
		Tooltip:    ent.Brief,
		TargetKind: string(ent.Kind),
	}
}

func (p *parser) addURL(parent *docast.Node, tok doctoken.Token) {
	n := p.addLeaf(parent, docast.NodeURL, tok.Name)
	kind := "url"
	if tok.IsEmail {
		kind = "email"
	}
	n.Ref = &docast.RefAttrs{Target: tok.Name, TargetKind: kind}
}

// addEscape appends the character of an escape command. \-- and \---
// become runs of minus signs.
func (p *parser) addEscape(parent *docast.Node, cmd doctoken.Command) {
	entity := "\\" + p.tok.Name
	switch cmd {
	case doctoken.CmdNDash, doctoken.CmdMDash:
		for range len(cmd.EscapedText()) {
			p.addSymbol(parent, entity, "-")
		}
	default:
		p.addSymbol(parent, entity, cmd.EscapedText())
	}
}

func (p *parser) addFormula(parent *docast.Node) {
	text := p.tok.Verb
	if text == "" && p.tok.ID >= 0 {
		f, ok := p.res.Formula(p.tok.ID)
		if !ok {
			p.resolutionf("Incorrect formula id %d", p.tok.ID)
			return
		}
		text = f
	}
	p.addLeaf(parent, docast.NodeFormula, text)
}

// readVerbatim reads the raw body of a block in mode m. ok is false when
// the input ended before the end marker.
func (p *parser) readVerbatim(m doctoken.Mode) (string, bool) {
	p.setMode(m)
	defer p.setMode(doctoken.ModePara)
	p.next()
	return p.tok.Verb, p.tok.Kind != doctoken.EOF
}

func (p *parser) newVerbatim(typ docast.VerbatimType, text string) *docast.Node {
	n := p.newNode(docast.NodeVerbatim)
	n.Text = text
	n.Verbatim = &docast.VerbatimAttrs{
		Type:        typ,
		Context:     p.context,
		IsExample:   p.isExample,
		ExampleFile: p.exampleName,
	}
	return n
}

func (p *parser) handleRawBlock(parent *docast.Node, raw rawBlock) {
	block := p.tok.Options == "block"
	text, ok := p.readVerbatim(raw.mode)
	n := p.newVerbatim(raw.typ, text)
	n.Verbatim.Block = block
	p.add(parent, n)
	if !ok {
		p.grammarf("%s section ended without an end marker", raw.label)
	}
}

// recordSection adds sec to the labels used by this document.
func (p *parser) recordSection(sec resolver.Section) {
	if p.sectionSeen[sec.Label] {
		return
	}
	p.sectionSeen[sec.Label] = true
	p.sections = append(p.sections, sec)
}

// argument reads the single-word argument of the command in p.tok using
// mode m. It reports false, after a diagnostic, when no word follows.
func (p *parser) argument(m doctoken.Mode) (string, bool) {
	cmd := p.tok.Name
	if p.next() != doctoken.Whitespace {
		p.grammarf("Expected whitespace after \\%s command", cmd)
		return "", false
	}

	p.setMode(m)
	defer p.setMode(doctoken.ModePara)
	switch p.next() {
	case doctoken.Word, doctoken.LinkedWord:
		return p.tok.Name, true
	case doctoken.EOF:
		p.grammarf("Unexpected end of comment block while parsing the argument of command %s", cmd)
	default:
		p.grammarf("Unexpected token %s as the argument of %s", p.tok, cmd)
	}
	return "", false
}

func (p *parser) handleAnchor(parent *docast.Node) {
	id, ok := p.argument(doctoken.ModeAnchor)
	if !ok {
		return
	}
	p.addAnchor(parent, id, false)
}

// addAnchor appends an anchor. Anchors written as <a name> define a new
// label; \anchor refers to a label the resolver must know.
func (p *parser) addAnchor(parent *docast.Node, id string, newAnchor bool) {
	if id == "" {
		p.grammarf("Empty anchor label")
	}
	n := p.addLeaf(parent, docast.NodeAnchor, "")
	n.Ref = &docast.RefAttrs{Target: id, TargetKind: string(resolver.SectionAnchor)}

	if newAnchor {
		n.Ref.File = p.file
		n.Ref.Anchor = id
		return
	}
	sec, ok := p.res.Section(id)
	if !ok {
		p.resolutionf("Invalid anchor id '%s'", id)
		n.Ref.File = "invalid"
		n.Ref.Anchor = "invalid"
		return
	}
	n.Ref.File = sec.File
	n.Ref.Anchor = sec.Label
	n.Ref.External = sec.External
	p.recordSection(sec)
}

// handleAnchorName reads `\anchorname id "title"` and sets the title of a
// known anchor in this document's section list.
func (p *parser) handleAnchorName() {
	id, ok := p.argument(doctoken.ModeAnchor)
	if !ok {
		return
	}
	if p.next() != doctoken.Whitespace {
		p.grammarf("Expected whitespace after \\anchorname command")
		return
	}

	p.setMode(doctoken.ModeRefTitle)
	var title []string
	for p.next() != doctoken.EOF {
		title = append(title, p.tok.Name+p.tok.Chars)
	}
	p.setMode(doctoken.ModePara)

	sec, ok := p.res.Section(id)
	if !ok {
		p.resolutionf("Unable to find anchor %s for anchorname", id)
		return
	}
	sec.Title = strings.Join(title, "")
	if p.sectionSeen[id] {
		for i := range p.sections {
			if p.sections[i].Label == id {
				p.sections[i].Title = sec.Title
			}
		}
		return
	}
	p.recordSection(sec)
}

func (p *parser) handleSetScope() {
	p.setMode(doctoken.ModeSetScope)
	defer p.setMode(doctoken.ModePara)
	if p.next() == doctoken.Word {
		p.context = p.tok.Name
	}
}

// titleAndSize parses the optional caption and width=/height= options of
// an image or diagram into n.
func (p *parser) titleAndSize(n *docast.Node, cmdName string) (width, height string) {
	p.pushNode(n)
	defer p.popNode(n)

	p.setMode(doctoken.ModeTitle)
	for p.next() != doctoken.EOF {
		if isSizeOption(p.tok) {
			break
		}
		if p.handleDefault(n, true) {
			continue
		}
		switch p.tok.Kind {
		case doctoken.CommandAt, doctoken.CommandBS:
			p.grammarf("Invalid command %s as part of a \\%s", p.tok.Name, cmdName)
		case doctoken.Symbol:
			p.grammarf("Unsupported symbol %s found", p.tok.Name)
		default:
			p.grammarf("Unexpected token %s", p.tok)
		}
	}

	for p.tok.Kind == doctoken.Whitespace || p.tok.Kind == doctoken.Word {
		if p.tok.Kind == doctoken.Word {
			switch {
			case p.tok.Name == "width" && p.tok.Chars != "":
				width = p.tok.Chars
			case p.tok.Name == "height" && p.tok.Chars != "":
				height = p.tok.Chars
			default:
				p.grammarf("Unknown option %s after \\%s command, expected 'width' or 'height'", p.tok.Name, cmdName)
				p.setMode(doctoken.ModePara)
				p.flushPendingStyles(n)
				return width, height
			}
		}
		p.next()
	}

	p.setMode(doctoken.ModePara)
	p.flushPendingStyles(n)
	return width, height
}

func isSizeOption(tok doctoken.Token) bool {
	return tok.Kind == doctoken.Word && tok.Chars != "" && (tok.Name == "width" || tok.Name == "height")
}

var imageTypes = map[string]docast.ImageType{
	"html":    docast.ImageHTML,
	"latex":   docast.ImageLatex,
	"docbook": docast.ImageDocBook,
	"rtf":     docast.ImageRTF,
	"xml":     docast.ImageXML,
}

// handleImage parses \image[{inline,anchor:id}] format file ["caption"]
// [width=..] [height=..].
func (p *parser) handleImage(parent *docast.Node) {
	var (
		inline bool
		anchor string
	)
	for _, opt := range strings.Split(p.tok.Options, ",") {
		opt = strings.TrimSpace(opt)
		lower := strings.ToLower(opt)
		switch {
		case opt == "":
		case lower == "inline":
			inline = true
		case strings.HasPrefix(lower, "anchor:"):
			if anchor != "" {
				p.grammarf("Multiple use of option 'anchor' for 'image' command, ignoring: %s", opt[7:])
				continue
			}
			anchor = opt[7:]
		default:
			p.grammarf("Unknown option '%s' specified for \\image command", opt)
		}
	}

	if p.next() != doctoken.Whitespace {
		p.grammarf("Expected whitespace after \\image command")
		return
	}
	if k := p.next(); k != doctoken.Word && k != doctoken.LinkedWord {
		p.grammarf("Unexpected token %s as the argument for an \\image command", p.tok)
		return
	}
	format := strings.ToLower(p.tok.Name)
	if p.next() != doctoken.Whitespace {
		p.grammarf("Expected whitespace after \\image command")
		return
	}
	typ, ok := imageTypes[format]
	if !ok {
		p.grammarf("Output format %s specified as the first argument of \\image command is not valid", format)
		return
	}

	p.setMode(doctoken.ModeFile)
	k := p.next()
	p.setMode(doctoken.ModePara)
	if k != doctoken.Word {
		p.grammarf("Unexpected token %s as the argument of an \\image command", p.tok)
		return
	}
	name := p.tok.Name

	if anchor != "" {
		p.addAnchor(parent, anchor, true)
	}
	img := p.newImage(docast.NodeImage, typ, name)
	img.Image.Inline = inline
	p.add(parent, img)
	img.Image.Width, img.Image.Height = p.titleAndSize(img, "image")
}

// handleImg handles <img src=..>.
func (p *parser) handleImg(parent *docast.Node, attribs doctoken.Attrs) {
	src, ok := attribs.Get("src")
	if !ok || src == "" {
		p.grammarf("IMG tag does not have a SRC attribute")
		return
	}
	img := p.newImage(docast.NodeImage, docast.ImageHTML, src)
	img.Attribs = attribs.Without("src")
	p.add(parent, img)
}

func (p *parser) newImage(kind docast.NodeKind, typ docast.ImageType, name string) *docast.Node {
	n := p.newNode(kind)
	n.Image = &docast.ImageAttrs{Type: typ, Name: name}
	if strings.Contains(name, "://") {
		n.Image.URL = name
		return n
	}
	n.Image.File = p.findFile(name, "Image file")
	return n
}

// findFile resolves a referenced file name, reporting ambiguous and
// missing names. what names the kind of file in diagnostics.
func (p *parser) findFile(name, what string) string {
	path, candidates, ok := p.res.FindFile(name)
	switch {
	case ok:
		return path
	case len(candidates) > 1:
		p.warnAmbiguous(candidates, "%s %s is ambiguous", what, name)
	default:
		p.resolutionf("%s %s was not found", what, name)
	}
	return ""
}

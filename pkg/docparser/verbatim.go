package docparser

import (
	"strings"

	"github.com/copperspice/doxypress-sub002/pkg/docast"
	"github.com/copperspice/doxypress-sub002/pkg/doctoken"
)

// handleStartCode reads a \code block, or the body of <code> inside an
// XML comment.
func (p *parser) handleStartCode(par *docast.Node, xml bool) {
	lang := p.tok.Options
	if lang != "" && !strings.HasPrefix(lang, ".") {
		lang = "." + lang
	}

	mode := doctoken.ModeCode
	if xml {
		mode = doctoken.ModeXMLCode
	}
	text, ok := p.readVerbatim(mode)
	if p.xmlComment {
		text = strings.NewReplacer("&lt;", "<", "&gt;", ">").Replace(text)
	}
	text = stripIndentation(skipLeadingBlankLines(text))

	if lang == "" && p.cfg.DetectCodeLanguage && p.detectLang != nil {
		if ext := p.detectLang(text); ext != "" {
			lang = "." + ext
		}
	}

	n := p.newVerbatim(docast.VerbatimCode, text)
	n.Verbatim.Lang = lang
	p.add(par, n)
	if !ok {
		p.grammarf("Code section ended without end marker")
	}
}

// skipLeadingBlankLines drops the lines before the first one with
// content.
func skipLeadingBlankLines(s string) string {
	start := 0
	for i := 0; i < len(s) && (s[i] == ' ' || s[i] == '\n'); i++ {
		if s[i] == '\n' {
			start = i + 1
		}
	}
	return s[start:]
}

// stripIndentation removes the indentation shared by all non-blank lines.
// Tabs count as one column.
func stripIndentation(s string) string {
	lines := strings.Split(s, "\n")
	indent := -1
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		if n := len(line) - len(trimmed); indent < 0 || n < indent {
			indent = n
		}
	}
	if indent <= 0 {
		return s
	}
	for i, line := range lines {
		if len(line) >= indent {
			lines[i] = line[indent:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.Join(lines, "\n")
}

var diagramModes = map[docast.VerbatimType]struct {
	mode  doctoken.Mode
	cmd   string
	label string
}{
	docast.VerbatimDot:      {doctoken.ModeDot, "dot", "Dot"},
	docast.VerbatimMsc:      {doctoken.ModeMsc, "msc", "Msc"},
	docast.VerbatimPlantUML: {doctoken.ModePlantUML, "startuml", "Startuml"},
}

// handleDiagram reads an inline \dot, \msc or \startuml block. The caption
// and size options follow the command on the same line.
func (p *parser) handleDiagram(par *docast.Node, typ docast.VerbatimType) {
	info := diagramModes[typ]

	n := p.newVerbatim(typ, "")
	if typ == docast.VerbatimPlantUML {
		n.Verbatim.IsExample = false
	}
	p.add(par, n)
	n.Verbatim.Width, n.Verbatim.Height = p.titleAndSize(n, info.cmd)

	text, ok := p.readVerbatim(info.mode)
	if typ == docast.VerbatimPlantUML {
		text = strings.Trim(text, "\n")
	}
	n.Text = text
	if !ok {
		p.grammarf("%s section ended without an end marker", info.label)
	}
}

// indexSymbols are the entities that keep an ASCII spelling inside index
// entries.
var indexSymbols = map[string]string{
	"&lsquo;": "`",
	"&rsquo;": "'",
	"&ldquo;": "``",
	"&rdquo;": "''",
	"&ndash;": "--",
	"&mdash;": "---",
}

// handleIndexEntry parses \addindex text into a plain-text index entry.
func (p *parser) handleIndexEntry(par *docast.Node) {
	if p.next() != doctoken.Whitespace {
		p.grammarf("Expected whitespace after \\addindex command")
		return
	}

	var sb strings.Builder
	p.setMode(doctoken.ModeTitle)
	for p.next() != doctoken.EOF {
		switch p.tok.Kind {
		case doctoken.Whitespace:
			sb.WriteByte(' ')
		case doctoken.Word, doctoken.LinkedWord:
			sb.WriteString(p.tok.Name)
		case doctoken.Symbol:
			if s, ok := indexSymbols[p.tok.Name]; ok {
				sb.WriteString(s)
				break
			}
			s, ok := docast.LookupSymbol(p.tok.Name)
			if !ok {
				p.grammarf("Unexpected symbol found as argument of \\addindex")
				break
			}
			sb.WriteString(s)
		case doctoken.CommandAt, doctoken.CommandBS:
			cmd := doctoken.LookupCommand(p.tok.Name)
			if !cmd.IsEscape() {
				p.grammarf("Unexpected command %s found as argument of \\addindex", p.tok)
				break
			}
			sb.WriteString(cmd.EscapedText())
		default:
			p.grammarf("Unexpected token %s found as argument of \\addindex", p.tok)
		}
	}
	p.setMode(doctoken.ModePara)

	n := p.addLeaf(par, docast.NodeIndexEntry, strings.TrimSpace(sb.String()))
	n.Ref = &docast.RefAttrs{Scope: p.scope}
	if p.member != nil {
		n.Ref.Target = p.member.Name
	}
}

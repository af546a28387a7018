package docparser

import (
	"maps"
	"slices"
	"strings"

	"github.com/copperspice/doxypress-sub002/pkg/docast"
	"github.com/copperspice/doxypress-sub002/pkg/doctoken"
	"github.com/copperspice/doxypress-sub002/pkg/resolver"
)

type copyCommand struct {
	name           string
	brief, details bool
}

// copyCommands are the commands the textual pre-pass expands, longest
// first so that "copydetails" is not read as "copydoc".
var copyCommands = []copyCommand{
	{"copydetails", false, true},
	{"copybrief", true, false},
	{"copydoc", true, true},
}

// expandCopyDoc splices the documentation named by \copydoc, \copybrief and
// \copydetails into text. Targets on the copy stack are reported as a cycle
// and left as their literal name.
func (p *parser) expandCopyDoc(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))

	for i := 0; i < len(text); {
		c := text[i]
		if (c != '\\' && c != '@') || escaped(text, i) {
			sb.WriteByte(c)
			i++
			continue
		}

		rest := text[i+1:]
		if cmd, ok := copyCommandAt(rest); ok {
			j := i + 1 + len(cmd.name)
			for j < len(text) && (text[j] == ' ' || text[j] == '\t') {
				j++
			}
			id, end := extractCopyDocID(text, j)
			sb.WriteString(p.copiedText(cmd.name, id, cmd.brief, cmd.details))
			i = end
			continue
		}

		if end, ok := doctoken.RawBlockEnd(text, i); ok {
			sb.WriteString(text[i:end])
			i = end
			continue
		}

		sb.WriteByte(c)
		i++
	}
	return sb.String()
}

// copiedText resolves one copy command for the pre-pass.
func (p *parser) copiedText(cmdName, id string, brief, details bool) string {
	kind := strings.TrimPrefix(cmdName, "copy")

	ent, ok := p.res.LookupDocs(p.context, id)
	if !ok {
		p.resolutionf("@copy%s or @copydoc target '%s' not found", kind, id)
		return id
	}
	if slices.Contains(p.copyStack, ent.Name) {
		p.nestingf("Found recursive @copy%s or @copydoc relation for argument '%s'.", kind, id)
		return id
	}

	p.copyStack = append(p.copyStack, ent.Name)
	defer func() { p.copyStack = p.copyStack[:len(p.copyStack)-1] }()

	var parts []string
	if brief {
		parts = append(parts, p.expandCopyDoc(ent.Brief))
	}
	if details {
		parts = append(parts, p.expandCopyDoc(ent.Details))
	}
	return strings.Join(parts, "\n\n")
}

func escaped(text string, i int) bool {
	return i > 0 && (text[i-1] == '\\' || text[i-1] == '@')
}

func copyCommandAt(rest string) (copyCommand, bool) {
	for _, c := range copyCommands {
		if strings.HasPrefix(rest, c.name) && !isIdentByte(rest, len(c.name)) {
			return c, true
		}
	}
	return copyCommand{}, false
}

func isIdentByte(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	c := s[i]
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// extractCopyDocID reads the target of a copy command starting at i. The
// target ends at whitespace outside parentheses and quotes; a trailing
// " const" or " volatile" belongs to it.
func extractCopyDocID(text string, i int) (string, int) {
	start := i
	round := 0
	var quote byte

scan:
	for ; i < len(text); i++ {
		c := text[i]
		if quote != 0 {
			if c == quote && text[i-1] != '\\' {
				quote = 0
			}
			continue
		}
		switch c {
		case '(':
			round++
		case ')':
			round--
		case '"', '\'':
			quote = c
		case ' ', '\t', '\n':
			if round == 0 {
				break scan
			}
		}
	}

	for _, qual := range []string{" const", " volatile"} {
		if strings.HasPrefix(text[i:], qual) {
			i += len(qual)
			break
		}
	}
	return text[start:i], i
}

// handleCopy parses a copy command that reached the token stream, which
// happens for text that did not go through the pre-pass.
func (p *parser) handleCopy(par *docast.Node, cmd doctoken.Command) {
	kind := strings.TrimPrefix(p.tok.Name, "copy")
	id, ok := p.argument(doctoken.ModeRef)
	if !ok {
		return
	}

	ent, ok := p.res.LookupDocs(p.context, id)
	if !ok {
		p.resolutionf("@copy%s or @copydoc target '%s' not found", kind, id)
		p.addWord(par, id)
		return
	}
	if slices.Contains(p.copyStack, ent.Name) {
		p.nestingf("Found recursive @copy%s or @copydoc relation for argument '%s'.", kind, id)
		p.addWord(par, id)
		return
	}

	outerParam, outerReturn := p.hasParamCommand, p.hasReturnCommand
	outerFound := maps.Clone(p.paramsFound)

	p.nested(false, true, func() {
		p.enterEntity(ent)
		p.paramsFound = map[string]int{}
		p.copyInto(par, ent, cmd != doctoken.CmdCopyDetails, cmd != doctoken.CmdCopyBrief)
	})

	p.hasParamCommand = p.hasParamCommand || outerParam
	p.hasReturnCommand = p.hasReturnCommand || outerReturn
	maps.Copy(p.paramsFound, outerFound)
}

// handleInheritDoc copies the documentation of the member the current
// member reimplements.
func (p *parser) handleInheritDoc(par *docast.Node) {
	if p.member == nil {
		return
	}
	base, ok := p.res.Reimplements(p.member.Name)
	if !ok {
		return
	}
	if slices.Contains(p.copyStack, base.Name) {
		p.nestingf("Found recursive \\inheritdoc relation for '%s'", base.Name)
		return
	}

	p.nested(true, true, func() {
		p.enterEntity(base)
		p.copyInto(par, base, true, true)
	})
}

// copyInto parses the brief and detailed text of ent into par with fresh
// node and style stacks.
func (p *parser) copyInto(par *docast.Node, ent resolver.Entity, brief, details bool) {
	p.nodes = nil
	p.styles = nil
	p.initialStyles = nil

	p.copyStack = append(p.copyStack, ent.Name)
	defer func() { p.copyStack = p.copyStack[:len(p.copyStack)-1] }()

	if brief {
		p.parseDocInto(par, ent.Brief+"\n")
	}
	if details {
		p.parseDocInto(par, ent.Details+"\n")
	}
}

// enterEntity makes ent the scope of the text being parsed.
func (p *parser) enterEntity(ent resolver.Entity) {
	if ent.Kind == resolver.KindMember {
		outer := ""
		if i := strings.LastIndex(ent.Name, "::"); i >= 0 {
			outer = ent.Name[:i]
		}
		p.scope = outer
		p.context = outer
		p.member = &ent
		return
	}
	p.scope = ent.Name
	p.context = ent.Name
	p.member = nil
}

// parseDocInto parses text as paragraphs appended to parent, reading from a
// fresh token source. The caller's source and token are restored.
func (p *parser) parseDocInto(parent *docast.Node, text string) {
	src, tok := p.src, p.tok
	defer func() { p.src, p.tok = src, tok }()

	p.src = p.newSource(text)
	p.parseParagraphs(parent, nil)
}

package docparser

import (
	"github.com/copperspice/doxypress-sub002/pkg/docast"
	"github.com/copperspice/doxypress-sub002/pkg/doctoken"
)

// styleEnter opens a style span at the current ancestor depth.
func (p *parser) styleEnter(parent *docast.Node, style docast.Style, tagName string, attribs doctoken.Attrs) {
	p.addStyleMarker(parent, style, true, tagName, attribs)
	p.styles = append(p.styles, styleEntry{
		style:    style,
		position: len(p.nodes),
		tagName:  tagName,
		attribs:  attribs,
	})
}

// styleLeave closes the innermost style span. The span must be of the same
// style and must have been opened at the current depth; otherwise the close
// is reported and dropped.
func (p *parser) styleLeave(parent *docast.Node, style docast.Style, tagName string) {
	if len(p.styles) == 0 {
		p.nestingf("Found </%s> tag without matching <%s>", tagName, tagName)
		return
	}

	top := p.styles[len(p.styles)-1]
	switch {
	case top.style != style:
		p.nestingf("Found </%s> tag while expecting </%s>", tagName, top.style)
	case top.position != len(p.nodes):
		p.nestingf("Found </%s> at a different nesting level (%d) than expected (%d)",
			tagName, len(p.nodes), top.position)
	default:
		p.addStyleMarker(parent, style, false, tagName, nil)
		p.styles = p.styles[:len(p.styles)-1]
	}
}

// flushPendingStyles force-closes every span opened at or below the current
// depth. The closed spans are remembered and re-opened by the next
// paragraph.
func (p *parser) flushPendingStyles(parent *docast.Node) {
	for len(p.styles) > 0 {
		top := p.styles[len(p.styles)-1]
		if top.position < len(p.nodes) {
			return
		}
		p.addStyleMarker(parent, top.style, false, top.tagName, nil)
		p.initialStyles = append(p.initialStyles, top)
		p.styles = p.styles[:len(p.styles)-1]
	}
}

// reopenInitialStyles re-enters the spans closed by the previous paragraph,
// outermost first.
func (p *parser) reopenInitialStyles(par *docast.Node) {
	for len(p.initialStyles) > 0 {
		last := p.initialStyles[len(p.initialStyles)-1]
		p.initialStyles = p.initialStyles[:len(p.initialStyles)-1]
		p.styleEnter(par, last.style, last.tagName, last.attribs)
	}
}

// reportUnclosedStyles reports spans that were never closed by the end of
// the comment.
func (p *parser) reportUnclosedStyles() {
	for _, s := range p.initialStyles {
		p.nestingf("End of comment block while expecting command </%s>", s.style)
	}
	p.initialStyles = nil
}

package docast

import (
	"strconv"
	"strings"
)

// Sprint renders a tree in a compact single-line form:
// words as quoted strings, whitespace as "_", style markers as <b> and
// </b>, and every other node as Kind"text"(children...).
func Sprint(n *Node) string {
	var sb strings.Builder
	sprint(&sb, n)
	return sb.String()
}

func sprint(sb *strings.Builder, n *Node) {
	if n == nil {
		sb.WriteString("nil")
		return
	}

	switch n.Kind {
	case NodeWord:
		sb.WriteString(strconv.Quote(n.Text))
		return
	case NodeWhiteSpace:
		sb.WriteByte('_')
		return
	case NodeStyleChange:
		sb.WriteByte('<')
		if !n.Style.Enable {
			sb.WriteByte('/')
		}
		sb.WriteString(n.Style.Style.String())
		sb.WriteByte('>')
		return
	}

	sb.WriteString(n.Kind.String())
	if n.Text != "" {
		sb.WriteString(strconv.Quote(n.Text))
	}
	if n.FirstChild == nil {
		return
	}

	sb.WriteByte('(')
	for child := n.FirstChild; child != nil; child = child.Next {
		if child != n.FirstChild {
			sb.WriteByte(' ')
		}
		sprint(sb, child)
	}
	sb.WriteByte(')')
}

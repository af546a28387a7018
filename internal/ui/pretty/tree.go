package pretty

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/copperspice/doxypress-sub002/pkg/docast"
)

// maxTreeText is the number of runes of a node's text shown in a label.
const maxTreeText = 40

// RenderTree draws a parse tree with rounded branch connectors, one node
// per line. Each label is the node kind followed by its quoted text and
// its non-zero attributes.
func (s *Styles) RenderTree(root *docast.Node) string {
	if root == nil {
		return ""
	}
	return s.subtree(docast.Export(root)).String() + "\n"
}

func (s *Styles) subtree(n *docast.Exported) *tree.Tree {
	t := tree.Root(s.treeLabel(n)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(s.TreeEnumerator)
	for _, child := range n.Children {
		if len(child.Children) == 0 {
			t.Child(s.treeLabel(child))
			continue
		}
		t.Child(s.subtree(child))
	}
	return t
}

func (s *Styles) treeLabel(n *docast.Exported) string {
	var sb strings.Builder
	sb.WriteString(s.TreeKind.Render(n.Kind))

	if n.Text != "" {
		text := n.Text
		if r := []rune(text); len(r) > maxTreeText {
			text = string(r[:maxTreeText]) + "…"
		}
		sb.WriteString(" " + s.TreeText.Render(strconv.Quote(text)))
	}

	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		sb.WriteString(" " + s.TreeAttr.Render(fmt.Sprintf("%s=%v", k, n.Attrs[k])))
	}
	return sb.String()
}

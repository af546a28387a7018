// Package docast defines the tree produced by the documentation comment
// parser and the helpers renderers use to walk it.
package docast

import (
	"fmt"

	"github.com/copperspice/doxypress-sub002/pkg/doctoken"
)

// NodeKind classifies the type of an AST node.
type NodeKind uint16

// Node kinds.
const (
	// Roots.
	NodeRoot NodeKind = iota
	NodeText

	// Inline leaves.
	NodeWord
	NodeLinkedWord
	NodeWhiteSpace
	NodeSymbol
	NodeURL
	NodeLineBreak
	NodeHorRuler
	NodeStyleChange
	NodeAnchor
	NodeEmoji
	NodeFormula
	NodeIndexEntry
	NodeSimpleSectSep
	NodeSep

	// Inline containers.
	NodeRef
	NodeLink
	NodeInternalRef
	NodeHRef
	NodeCite
	NodeTitle
	NodeImage
	NodeDotFile
	NodeMscFile
	NodeDiaFile
	NodeParamType

	// Verbatim content.
	NodeVerbatim
	NodeInclude
	NodeIncOperator

	// Blocks.
	NodePara
	NodeSection
	NodeInternal
	NodeSimpleSect
	NodeParamSect
	NodeParamList
	NodeXRefItem
	NodeSecRefList
	NodeSecRefItem
	NodeHtmlHeader
	NodeHtmlList
	NodeHtmlListItem
	NodeHtmlDescList
	NodeHtmlDescTitle
	NodeHtmlDescData
	NodeHtmlTable
	NodeHtmlRow
	NodeHtmlCell
	NodeHtmlCaption
	NodeHtmlBlockQuote
	NodeParBlock
	NodeSimpleList
	NodeSimpleListItem
	NodeAutoList
	NodeAutoListItem
)

var nodeKindNames = [...]string{
	NodeRoot:           "Root",
	NodeText:           "Text",
	NodeWord:           "Word",
	NodeLinkedWord:     "LinkedWord",
	NodeWhiteSpace:     "WhiteSpace",
	NodeSymbol:         "Symbol",
	NodeURL:            "URL",
	NodeLineBreak:      "LineBreak",
	NodeHorRuler:       "HorRuler",
	NodeStyleChange:    "StyleChange",
	NodeAnchor:         "Anchor",
	NodeEmoji:          "Emoji",
	NodeFormula:        "Formula",
	NodeIndexEntry:     "IndexEntry",
	NodeSimpleSectSep:  "SimpleSectSep",
	NodeSep:            "Sep",
	NodeRef:            "Ref",
	NodeLink:           "Link",
	NodeInternalRef:    "InternalRef",
	NodeHRef:           "HRef",
	NodeCite:           "Cite",
	NodeTitle:          "Title",
	NodeImage:          "Image",
	NodeDotFile:        "DotFile",
	NodeMscFile:        "MscFile",
	NodeDiaFile:        "DiaFile",
	NodeParamType:      "ParamType",
	NodeVerbatim:       "Verbatim",
	NodeInclude:        "Include",
	NodeIncOperator:    "IncOperator",
	NodePara:           "Para",
	NodeSection:        "Section",
	NodeInternal:       "Internal",
	NodeSimpleSect:     "SimpleSect",
	NodeParamSect:      "ParamSect",
	NodeParamList:      "ParamList",
	NodeXRefItem:       "XRefItem",
	NodeSecRefList:     "SecRefList",
	NodeSecRefItem:     "SecRefItem",
	NodeHtmlHeader:     "HtmlHeader",
	NodeHtmlList:       "HtmlList",
	NodeHtmlListItem:   "HtmlListItem",
	NodeHtmlDescList:   "HtmlDescList",
	NodeHtmlDescTitle:  "HtmlDescTitle",
	NodeHtmlDescData:   "HtmlDescData",
	NodeHtmlTable:      "HtmlTable",
	NodeHtmlRow:        "HtmlRow",
	NodeHtmlCell:       "HtmlCell",
	NodeHtmlCaption:    "HtmlCaption",
	NodeHtmlBlockQuote: "HtmlBlockQuote",
	NodeParBlock:       "ParBlock",
	NodeSimpleList:     "SimpleList",
	NodeSimpleListItem: "SimpleListItem",
	NodeAutoList:       "AutoList",
	NodeAutoListItem:   "AutoListItem",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) && nodeKindNames[k] != "" {
		return nodeKindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", uint16(k))
}

// Pos is the source position a node was created at.
type Pos struct {
	File string
	Line int
}

// Node is a single node of a documentation tree.
// Each node owns its children; Parent is a back reference only.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	Pos Pos

	// Text is the payload of leaf nodes: word and URL text, whitespace,
	// the decoded character of a symbol, verbatim and included text,
	// formula text, index entries and emoji names.
	Text string

	// Attribs holds the HTML attributes of tag-derived nodes.
	Attribs doctoken.Attrs

	// Per-kind attributes. At most one is set for a given kind.
	Style    *StyleAttrs
	Ref      *RefAttrs
	Section  *SectionAttrs
	Sect     *SectAttrs
	List     *ListAttrs
	Cell     *CellAttrs
	Table    *TableAttrs
	Verbatim *VerbatimAttrs
	Include  *IncludeAttrs
	Image    *ImageAttrs
	Symbol   *SymbolAttrs
	Para     *ParaAttrs
}

// IsBlock returns true for nodes that hold paragraphs rather than inline
// content.
func (n *Node) IsBlock() bool {
	return n.Kind >= NodePara || n.Kind == NodeRoot
}

// IsInline returns true for nodes that appear inside a paragraph.
func (n *Node) IsInline() bool {
	return n.Kind > NodeText && n.Kind < NodePara
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// LastChildKind returns the kind of the last child and whether there is one.
func (n *Node) LastChildKind() (NodeKind, bool) {
	if n.LastChild == nil {
		return 0, false
	}
	return n.LastChild.Kind, true
}

// PlainText concatenates the text of all word-like descendants.
func (n *Node) PlainText() string {
	var buf []byte
	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(n, func(child *Node) error {
		switch child.Kind {
		case NodeWord, NodeLinkedWord, NodeURL, NodeSymbol, NodeWhiteSpace:
			buf = append(buf, child.Text...)
		}
		return nil
	})
	return string(buf)
}

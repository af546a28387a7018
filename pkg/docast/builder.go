package docast

// NewNode creates a new node of the specified kind.
// The node has no parent or children.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// NewRoot creates a new document root node.
func NewRoot() *Node {
	return NewNode(NodeRoot)
}

// NewLeaf creates a leaf node carrying text.
func NewLeaf(kind NodeKind, text string) *Node {
	n := NewNode(kind)
	n.Text = text
	return n
}

// NewPara creates an empty paragraph.
func NewPara() *Node {
	n := NewNode(NodePara)
	n.Para = &ParaAttrs{}
	return n
}

// NewStyleChange creates a style-span boundary marker.
func NewStyleChange(style Style, enable bool, position int, tagName string) *Node {
	n := NewNode(NodeStyleChange)
	n.Style = &StyleAttrs{Style: style, Enable: enable, Position: position, TagName: tagName}
	return n
}

// AppendChild appends a child node to a parent.
// It maintains the parent/child/sibling relationships correctly.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}

	// Remove from previous parent if any.
	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}

	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}

	parent.LastChild = child
}

// PrependChild prepends a child node to a parent.
func PrependChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}

	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}

	child.Parent = parent
	child.Prev = nil
	child.Next = parent.FirstChild

	if parent.FirstChild != nil {
		parent.FirstChild.Prev = child
	} else {
		parent.LastChild = child
	}

	parent.FirstChild = child
}

// InsertBefore inserts newNode before sibling.
// sibling must have a parent.
func InsertBefore(sibling, newNode *Node) {
	if sibling == nil || newNode == nil || sibling.Parent == nil {
		return
	}

	parent := sibling.Parent

	if newNode.Parent != nil {
		RemoveChild(newNode.Parent, newNode)
	}

	newNode.Parent = parent
	newNode.Prev = sibling.Prev
	newNode.Next = sibling

	if sibling.Prev != nil {
		sibling.Prev.Next = newNode
	} else {
		parent.FirstChild = newNode
	}

	sibling.Prev = newNode
}

// RemoveChild removes a child from its parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}

	if child.Prev != nil {
		child.Prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}

	if child.Next != nil {
		child.Next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}

	child.Parent = nil
	child.Prev = nil
	child.Next = nil
}

// MoveChildren re-parents every child of from onto the end of to.
func MoveChildren(from, to *Node) {
	if from == nil || to == nil {
		return
	}
	for child := from.FirstChild; child != nil; {
		next := child.Next
		AppendChild(to, child)
		child = next
	}
}

// SetPos sets the source position of a node and all its descendants that
// do not have one yet.
func SetPos(node *Node, pos Pos) {
	if node == nil {
		return
	}

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(node, func(child *Node) error {
		if child.Pos.Line == 0 {
			child.Pos = pos
		}
		return nil
	})
}

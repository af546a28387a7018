package docast_test

import (
	"testing"

	"github.com/copperspice/doxypress-sub002/pkg/docast"
)

func TestNewNode(t *testing.T) {
	t.Parallel()

	node := docast.NewNode(docast.NodePara)

	if node.Kind != docast.NodePara {
		t.Errorf("expected Para, got %s", node.Kind)
	}

	if node.Parent != nil || node.FirstChild != nil || node.LastChild != nil {
		t.Error("expected nil parent and children")
	}
}

func TestAppendChild(t *testing.T) {
	t.Parallel()

	parent := docast.NewRoot()
	child1 := docast.NewPara()
	child2 := docast.NewNode(docast.NodeSection)

	docast.AppendChild(parent, child1)

	if parent.FirstChild != child1 || parent.LastChild != child1 {
		t.Error("first child not set correctly")
	}

	docast.AppendChild(parent, child2)

	if parent.FirstChild != child1 || parent.LastChild != child2 {
		t.Error("children not linked in order")
	}

	if child1.Next != child2 || child2.Prev != child1 {
		t.Error("sibling pointers not set")
	}
}

func TestAppendChild_ReparentsNode(t *testing.T) {
	t.Parallel()

	oldParent := docast.NewPara()
	newParent := docast.NewPara()
	word := docast.NewLeaf(docast.NodeWord, "w")

	docast.AppendChild(oldParent, word)
	docast.AppendChild(newParent, word)

	if oldParent.HasChildren() {
		t.Error("old parent should have no children")
	}

	if word.Parent != newParent {
		t.Error("word should belong to the new parent")
	}
}

func TestPrependAndInsertBefore(t *testing.T) {
	t.Parallel()

	para := docast.NewPara()
	b := docast.NewLeaf(docast.NodeWord, "b")
	docast.AppendChild(para, b)
	docast.PrependChild(para, docast.NewLeaf(docast.NodeWord, "a"))
	docast.InsertBefore(b, docast.NewLeaf(docast.NodeWhiteSpace, " "))

	if got := docast.Sprint(para); got != `Para("a" _ "b")` {
		t.Errorf("unexpected order: %s", got)
	}
}

func TestRemoveChild(t *testing.T) {
	t.Parallel()

	para := docast.NewPara()
	a := docast.NewLeaf(docast.NodeWord, "a")
	b := docast.NewLeaf(docast.NodeWord, "b")
	c := docast.NewLeaf(docast.NodeWord, "c")
	docast.AppendChild(para, a)
	docast.AppendChild(para, b)
	docast.AppendChild(para, c)

	docast.RemoveChild(para, b)

	if para.ChildCount() != 2 {
		t.Fatalf("expected 2 children, got %d", para.ChildCount())
	}

	if a.Next != c || c.Prev != a {
		t.Error("siblings not relinked")
	}

	if b.Parent != nil || b.Prev != nil || b.Next != nil {
		t.Error("removed node still linked")
	}
}

func TestMoveChildren(t *testing.T) {
	t.Parallel()

	from := docast.NewPara()
	to := docast.NewPara()
	docast.AppendChild(to, docast.NewLeaf(docast.NodeWord, "x"))
	docast.AppendChild(from, docast.NewLeaf(docast.NodeWord, "y"))
	docast.AppendChild(from, docast.NewLeaf(docast.NodeWord, "z"))

	docast.MoveChildren(from, to)

	if from.HasChildren() {
		t.Error("source should be empty")
	}

	if got := docast.Sprint(to); got != `Para("x" "y" "z")` {
		t.Errorf("unexpected result: %s", got)
	}
}

func TestLookupSymbol(t *testing.T) {
	t.Parallel()

	tests := []struct {
		entity string
		want   string
		ok     bool
	}{
		{entity: "&copy;", want: "©", ok: true},
		{entity: "&lt;", want: "<", ok: true},
		{entity: "&#65;", want: "A", ok: true},
		{entity: "&#x42;", want: "B", ok: true},
		{entity: "&bogus;", ok: false},
		{entity: "copy", ok: false},
	}

	for _, tt := range tests {
		got, ok := docast.LookupSymbol(tt.entity)
		if ok != tt.ok || got != tt.want {
			t.Errorf("LookupSymbol(%q) = %q, %v; want %q, %v", tt.entity, got, ok, tt.want, tt.ok)
		}
	}
}

func TestExport_SectionAttrs(t *testing.T) {
	t.Parallel()

	root := docast.NewRoot()
	sect := docast.NewNode(docast.NodeSection)
	sect.Section = &docast.SectionAttrs{ID: "intro", Level: 1}
	docast.AppendChild(root, sect)

	out := docast.Export(root)

	if out.Kind != "Root" || len(out.Children) != 1 {
		t.Fatalf("unexpected export: %+v", out)
	}

	attrs := out.Children[0].Attrs
	if attrs["id"] != "intro" || attrs["level"] != 1 {
		t.Errorf("unexpected section attrs: %v", attrs)
	}
}

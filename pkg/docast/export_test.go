package docast_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/copperspice/doxypress-sub002/pkg/docast"
)

func TestExport(t *testing.T) {
	t.Parallel()

	root := docast.NewRoot()
	docast.SetPos(root, docast.Pos{File: "a.h", Line: 4})

	para := docast.NewPara()
	para.Para.First = true
	docast.AppendChild(root, para)
	docast.AppendChild(para, docast.NewLeaf(docast.NodeWord, "Hello"))
	docast.AppendChild(para, docast.NewLeaf(docast.NodeWhiteSpace, " "))
	docast.AppendChild(para, docast.NewStyleChange(docast.StyleBold, true, 0, "b"))
	docast.AppendChild(para, docast.NewLeaf(docast.NodeWord, "world"))

	want := &docast.Exported{
		Kind: "Root",
		Line: 4,
		Children: []*docast.Exported{{
			Kind:  "Para",
			Attrs: map[string]any{"first": true},
			Children: []*docast.Exported{
				{Kind: "Word", Text: "Hello"},
				{Kind: "WhiteSpace", Text: " "},
				{Kind: "StyleChange", Attrs: map[string]any{"style": "b", "enable": true}},
				{Kind: "Word", Text: "world"},
			},
		}},
	}

	if diff := cmp.Diff(want, docast.Export(root)); diff != "" {
		t.Errorf("Export() mismatch (-want +got):\n%s", diff)
	}
}

func TestExport_Nil(t *testing.T) {
	t.Parallel()

	if got := docast.Export(nil); got != nil {
		t.Errorf("Export(nil) = %+v, want nil", got)
	}
}

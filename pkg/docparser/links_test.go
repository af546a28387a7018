package docparser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copperspice/doxypress-sub002/pkg/diag"
	"github.com/copperspice/doxypress-sub002/pkg/docast"
	"github.com/copperspice/doxypress-sub002/pkg/docparser"
	"github.com/copperspice/doxypress-sub002/pkg/resolver"
)

func TestParse_RefUnresolved(t *testing.T) {
	t.Parallel()

	result := parse(t, nil, `See \ref nowhere.`)

	assert.Equal(t, `Root(Para("See" _ Ref("nowhere") "."))`, docast.Sprint(result.Root))

	refs := docast.FindByKind(result.Root, docast.NodeRef)
	require.Len(t, refs, 1)
	assert.Equal(t, "nowhere", refs[0].Ref.Target)
	assert.Empty(t, refs[0].Ref.File)

	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, diag.CategoryResolution, result.Diagnostics[0].Category)
	assert.Equal(t, `Unable to resolve reference to 'nowhere' for \ref command`, result.Diagnostics[0].Message)
}

func TestParse_RefToSection(t *testing.T) {
	t.Parallel()

	res := resolver.NewMemory()
	res.AddSection(resolver.Section{Label: "intro", Kind: resolver.SectionSection, File: "index", Title: "Introduction"})

	result := parse(t, res, `\ref intro`)

	refs := docast.FindByKind(result.Root, docast.NodeRef)
	require.Len(t, refs, 1)
	assert.Equal(t, "index", refs[0].Ref.File)
	assert.Equal(t, "intro", refs[0].Ref.Anchor)
	assert.Equal(t, "Introduction", refs[0].PlainText())
	assert.Empty(t, result.Diagnostics)
}

func TestParse_LinkUnresolved(t *testing.T) {
	t.Parallel()

	result := parse(t, nil, `\link Missing the text\endlink`)

	assert.Equal(t, `Root(Para(Link("the" _ "text")))`, docast.Sprint(result.Root))

	links := docast.FindByKind(result.Root, docast.NodeLink)
	require.Len(t, links, 1)
	assert.Equal(t, "Missing", links[0].Ref.Target)
	assert.Empty(t, links[0].Ref.File)
	assert.Equal(t, []string{`Unable to resolve link to 'Missing' for \link command`}, messages(result.Diagnostics))
}

func TestParse_LinkResolved(t *testing.T) {
	t.Parallel()

	res := resolver.NewMemory()
	res.AddEntity(resolver.Entity{Name: "Foo", Kind: resolver.KindClass, File: "class_foo", Brief: "A foo."})

	result := parse(t, res, `\link Foo \endlink`)

	links := docast.FindByKind(result.Root, docast.NodeLink)
	require.Len(t, links, 1)
	assert.Equal(t, "class_foo", links[0].Ref.File)
	assert.Equal(t, "A foo.", links[0].Ref.Tooltip)
	assert.Equal(t, "Foo", links[0].PlainText())
	assert.Empty(t, result.Diagnostics)
}

func TestParse_Cite(t *testing.T) {
	t.Parallel()

	res := resolver.NewMemory()
	res.AddCitation("knuth84", "[1]")

	t.Run("resolved and missing", func(t *testing.T) {
		t.Parallel()

		result := parse(t, res, `\cite knuth84 and \cite missing`, docparser.WithCiteBibFiles(1))

		cites := docast.FindByKind(result.Root, docast.NodeCite)
		require.Len(t, cites, 2)
		assert.Equal(t, "[1]", cites[0].Text)
		assert.Equal(t, "CITEREF_knuth84", cites[0].Ref.Anchor)
		assert.Equal(t, "missing", cites[1].Text)
		assert.Empty(t, cites[1].Ref.Anchor)
		assert.Equal(t, []string{`Unable to resolve reference to 'missing' for \cite command`},
			messages(result.Diagnostics))
	})

	t.Run("no bib files", func(t *testing.T) {
		t.Parallel()

		result := parse(t, res, `\cite knuth84`)

		cites := docast.FindByKind(result.Root, docast.NodeCite)
		require.Len(t, cites, 1)
		assert.Equal(t, "knuth84", cites[0].Text)
		assert.Equal(t, []string{`No bib files for the \cite command were specified in 'CITE BIB FILES'`},
			messages(result.Diagnostics))
	})
}

func TestParse_XRefItem(t *testing.T) {
	t.Parallel()

	res := resolver.NewMemory()
	res.AddXRefItem(resolver.XRefItem{
		List:    "todo",
		ID:      2,
		Heading: "Todo",
		File:    "todo",
		Anchor:  "_todo000002",
		Text:    "Fix later.",
	})

	text := "\\todo first\n\n\\todo\n\n\\xrefitem reviews \"Review\" \"Reviews\" Check this."
	result := parse(t, res, text)

	items := docast.FindByKind(result.Root, docast.NodeXRefItem)
	require.Len(t, items, 3)

	first, second, third := items[0], items[1], items[2]

	assert.Equal(t, "todo", first.Ref.Key)
	assert.Equal(t, 1, first.Ref.ID)
	assert.Empty(t, first.Ref.File)
	assert.Contains(t, first.PlainText(), "first")

	assert.Equal(t, 2, second.Ref.ID)
	assert.Equal(t, "todo", second.Ref.File)
	assert.Equal(t, "_todo000002", second.Ref.Anchor)
	titles := docast.FindByKind(second, docast.NodeTitle)
	require.Len(t, titles, 1)
	assert.Equal(t, "Todo", titles[0].PlainText())
	assert.Contains(t, second.PlainText(), "Fix later.")

	assert.Equal(t, "reviews", third.Ref.Key)
	assert.Equal(t, 1, third.Ref.ID)
	titles = docast.FindByKind(third, docast.NodeTitle)
	require.Len(t, titles, 1)
	assert.Equal(t, "Review", titles[0].PlainText())
	assert.Contains(t, third.PlainText(), "Check this.")

	assert.Empty(t, result.Diagnostics)
}

package docparser_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copperspice/doxypress-sub002/pkg/config"
	"github.com/copperspice/doxypress-sub002/pkg/diag"
	"github.com/copperspice/doxypress-sub002/pkg/docast"
	"github.com/copperspice/doxypress-sub002/pkg/docparser"
	"github.com/copperspice/doxypress-sub002/pkg/doctoken"
	"github.com/copperspice/doxypress-sub002/pkg/resolver"
)

func testConfig() config.ParserConfig {
	return config.ParserConfig{WarnDocError: true}
}

func parse(t *testing.T, res resolver.Resolver, text string, opts ...docparser.Option) *docparser.Result {
	t.Helper()

	if res == nil {
		res = resolver.NewMemory()
	}
	p := docparser.New(testConfig(), res, opts...)
	result, err := p.Parse(context.Background(), docparser.Request{File: "a.h", Line: 1, Text: text})
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func messages(diags []diag.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Message)
	}
	return out
}

// styleBalance returns the number of open markers minus close markers for
// every style under root.
func styleBalance(root *docast.Node) map[docast.Style]int {
	balance := map[docast.Style]int{}
	for _, n := range docast.FindByKind(root, docast.NodeStyleChange) {
		if n.Style.Enable {
			balance[n.Style.Style]++
		} else {
			balance[n.Style.Style]--
		}
	}
	return balance
}

func TestParse_Words(t *testing.T) {
	t.Parallel()

	result := parse(t, nil, "Hello world")

	assert.Equal(t, `Root(Para("Hello" _ "world"))`, docast.Sprint(result.Root))
	assert.Empty(t, result.Diagnostics)

	paras := docast.FindByKind(result.Root, docast.NodePara)
	require.Len(t, paras, 1)
	assert.True(t, paras[0].Para.First)
	assert.True(t, paras[0].Para.Last)
}

func TestParse_Paragraphs(t *testing.T) {
	t.Parallel()

	result := parse(t, nil, "First\n\nSecond")

	assert.Equal(t, `Root(Para("First") Para("Second"))`, docast.Sprint(result.Root))

	paras := docast.FindByKind(result.Root, docast.NodePara)
	require.Len(t, paras, 2)
	assert.True(t, paras[0].Para.First)
	assert.False(t, paras[0].Para.Last)
	assert.False(t, paras[1].Para.First)
	assert.True(t, paras[1].Para.Last)
}

func TestParse_StyleCarriedAcrossParagraphs(t *testing.T) {
	t.Parallel()

	result := parse(t, nil, "<b>bold\n\ntext</b>")

	assert.Equal(t, `Root(Para(<b> "bold" </b>) Para(<b> "text" </b>))`, docast.Sprint(result.Root))
	assert.Empty(t, result.Diagnostics)

	for style, n := range styleBalance(result.Root) {
		assert.Zero(t, n, "style %s is unbalanced", style)
	}
}

func TestParse_UnclosedStyle(t *testing.T) {
	t.Parallel()

	result := parse(t, nil, "<b>bold")

	assert.Equal(t, `Root(Para(<b> "bold" </b>))`, docast.Sprint(result.Root))
	assert.Contains(t, messages(result.Diagnostics), "End of comment block while expecting command </b>")

	for style, n := range styleBalance(result.Root) {
		assert.Zero(t, n, "style %s is unbalanced", style)
	}
}

func TestParse_MismatchedStyleClose(t *testing.T) {
	t.Parallel()

	result := parse(t, nil, "<b>bold</em> text</b>")

	assert.Contains(t, messages(result.Diagnostics), "Found </em> tag while expecting </b>")
	assert.Equal(t, 0, styleBalance(result.Root)[docast.StyleBold])
}

func TestParse_NestedAutoList(t *testing.T) {
	t.Parallel()

	result := parse(t, nil, "- a\n  - b")

	want := `Root(Para(AutoList(AutoListItem(Para("a" AutoList(AutoListItem(Para("b"))))))))`
	assert.Equal(t, want, docast.Sprint(result.Root))

	lists := docast.FindByKind(result.Root, docast.NodeAutoList)
	require.Len(t, lists, 2)
	assert.Equal(t, 0, lists[0].List.Indent)
	assert.Equal(t, 2, lists[1].List.Indent)
}

func TestParse_NumberedAutoList(t *testing.T) {
	t.Parallel()

	result := parse(t, nil, "-# one\n-# two")

	lists := docast.FindByKind(result.Root, docast.NodeAutoList)
	require.Len(t, lists, 1)
	assert.True(t, lists[0].List.Ordered)

	items := docast.FindByKind(result.Root, docast.NodeAutoListItem)
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].List.Number)
	assert.Equal(t, 2, items[1].List.Number)
}

func TestParse_TableRowSpan(t *testing.T) {
	t.Parallel()

	text := `<table><tr><td rowspan="2">a</td><td>b</td></tr><tr><td>c</td></tr></table>`
	result := parse(t, nil, text)

	tables := docast.FindByKind(result.Root, docast.NodeHtmlTable)
	require.Len(t, tables, 1)
	assert.Equal(t, 2, tables[0].Table.NumColumns)

	cells := docast.FindByKind(result.Root, docast.NodeHtmlCell)
	require.Len(t, cells, 3)

	type pos struct {
		text     string
		row, col int
	}
	got := make([]pos, 0, len(cells))
	for _, c := range cells {
		got = append(got, pos{text: strings.TrimSpace(c.PlainText()), row: c.Cell.Row, col: c.Cell.Column})
	}
	assert.Equal(t, []pos{
		{text: "a", row: 0, col: 0},
		{text: "b", row: 0, col: 1},
		{text: "c", row: 1, col: 1},
	}, got)
	assert.Equal(t, 2, cells[0].Cell.RowSpan)
}

func TestParse_Verbatim(t *testing.T) {
	t.Parallel()

	result := parse(t, nil, `\verbatim <b>raw</b> \endverbatim`)

	blocks := docast.FindByKind(result.Root, docast.NodeVerbatim)
	require.Len(t, blocks, 1)
	assert.Equal(t, docast.VerbatimPlain, blocks[0].Verbatim.Type)
	assert.Equal(t, " <b>raw</b> ", blocks[0].Text)
	assert.Empty(t, docast.FindByKind(result.Root, docast.NodeStyleChange))
	assert.Empty(t, result.Diagnostics)
}

func TestParse_UnterminatedVerbatim(t *testing.T) {
	t.Parallel()

	result := parse(t, nil, "\\verbatim\nraw text")

	blocks := docast.FindByKind(result.Root, docast.NodeVerbatim)
	require.Len(t, blocks, 1)
	assert.Equal(t, "\nraw text", blocks[0].Text)
	assert.Contains(t, messages(result.Diagnostics), "Verbatim section ended without an end marker")
}

func TestParse_CopyDoc(t *testing.T) {
	t.Parallel()

	res := resolver.NewMemory()
	res.AddEntity(resolver.Entity{
		Name:    "Foo",
		Kind:    resolver.KindClass,
		File:    "class_foo",
		Brief:   "Short",
		Details: "Long text",
	})

	result := parse(t, res, `\copydoc Foo`)

	assert.Equal(t, `Root(Para("Short") Para("Long" _ "text"))`, docast.Sprint(result.Root))
	assert.Empty(t, result.Diagnostics)
}

func TestParse_CopyBriefAndDetails(t *testing.T) {
	t.Parallel()

	res := resolver.NewMemory()
	res.AddEntity(resolver.Entity{Name: "Foo", Kind: resolver.KindClass, Brief: "Short", Details: "Long"})

	brief := parse(t, res, `\copybrief Foo`)
	assert.Equal(t, `Root(Para("Short"))`, docast.Sprint(brief.Root))

	details := parse(t, res, `\copydetails Foo`)
	assert.Equal(t, `Root(Para("Long"))`, docast.Sprint(details.Root))
}

func TestParse_CopyDocCycle(t *testing.T) {
	t.Parallel()

	res := resolver.NewMemory()
	res.AddEntity(resolver.Entity{Name: "A", Kind: resolver.KindClass, Details: `\copydoc B`})
	res.AddEntity(resolver.Entity{Name: "B", Kind: resolver.KindClass, Details: `\copydoc A`})

	result := parse(t, res, `\copydoc A`)

	assert.Equal(t, `Root(Para("A"))`, docast.Sprint(result.Root))
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, diag.CategoryNesting, result.Diagnostics[0].Category)
	assert.Equal(t, "Found recursive @copydoc or @copydoc relation for argument 'A'.", result.Diagnostics[0].Message)
}

func TestParse_CopyDocMissingTarget(t *testing.T) {
	t.Parallel()

	result := parse(t, nil, `\copydoc Missing`)

	assert.Equal(t, `Root(Para("Missing"))`, docast.Sprint(result.Root))
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, diag.CategoryResolution, result.Diagnostics[0].Category)
	assert.Equal(t, "@copydoc or @copydoc target 'Missing' not found", result.Diagnostics[0].Message)
}

func TestParse_CopyDocInsideVerbatimIsKept(t *testing.T) {
	t.Parallel()

	result := parse(t, nil, `\verbatim \copydoc Foo \endverbatim`)

	blocks := docast.FindByKind(result.Root, docast.NodeVerbatim)
	require.Len(t, blocks, 1)
	assert.Equal(t, ` \copydoc Foo `, blocks[0].Text)
	assert.Empty(t, result.Diagnostics)
}

func TestParse_Sections(t *testing.T) {
	t.Parallel()

	res := resolver.NewMemory()
	res.AddSection(resolver.Section{
		Label: "intro",
		Kind:  resolver.SectionSection,
		File:  "index",
		Title: "Introduction",
	})

	result := parse(t, res, "\\section intro Introduction\nBody text")

	assert.Equal(t, `Root(Section(Para("Body" _ "text")))`, docast.Sprint(result.Root))

	sections := docast.FindByKind(result.Root, docast.NodeSection)
	require.Len(t, sections, 1)
	assert.Equal(t, "intro", sections[0].Section.ID)
	assert.Equal(t, 1, sections[0].Section.Level)
	assert.Equal(t, "Introduction", sections[0].Section.Title)
	assert.Equal(t, "index", sections[0].Section.File)

	require.Len(t, result.Sections, 1)
	assert.Equal(t, "intro", result.Sections[0].Label)
}

func TestParse_InvalidSectionID(t *testing.T) {
	t.Parallel()

	result := parse(t, nil, "\\section nope Title\nBody.")

	assert.Empty(t, docast.FindByKind(result.Root, docast.NodeSection))
	assert.Contains(t, messages(result.Diagnostics), "Invalid section id 'nope', ignoring section")
}

func TestParse_Internal(t *testing.T) {
	t.Parallel()

	result := parse(t, nil, "Public.\n\\internal\nSecret.")

	internals := docast.FindByKind(result.Root, docast.NodeInternal)
	require.Len(t, internals, 1)
	assert.True(t, internals[0].Section.Hidden)
	assert.Contains(t, internals[0].PlainText(), "Secret")

	cfg := testConfig()
	cfg.InternalDocs = true
	p := docparser.New(cfg, resolver.NewMemory())
	shown, err := p.Parse(context.Background(), docparser.Request{File: "a.h", Text: "Public.\n\\internal\nSecret."})
	require.NoError(t, err)
	internals = docast.FindByKind(shown.Root, docast.NodeInternal)
	require.Len(t, internals, 1)
	assert.False(t, internals[0].Section.Hidden)
}

func TestParse_UndocumentedParams(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.WarnUndocParams = true
	p := docparser.New(cfg, resolver.NewMemory())

	member := &resolver.Entity{
		Name:       "f",
		Kind:       resolver.KindMember,
		Params:     []string{"x", "y"},
		ReturnType: "void",
	}
	result, err := p.Parse(context.Background(), docparser.Request{
		File:   "a.h",
		Text:   `\param x the x value`,
		Member: member,
	})
	require.NoError(t, err)

	assert.Len(t, docast.FindByKind(result.Root, docast.NodeParamSect), 1)
	assert.Contains(t, messages(result.Diagnostics),
		"The following parameters of f(x, y) are not documented: parameter 'y'")
}

func TestParse_UnknownParam(t *testing.T) {
	t.Parallel()

	p := docparser.New(testConfig(), resolver.NewMemory())
	member := &resolver.Entity{Name: "f", Kind: resolver.KindMember, Params: []string{"x"}}

	result, err := p.Parse(context.Background(), docparser.Request{
		File:   "a.h",
		Text:   `\param z nothing`,
		Member: member,
	})
	require.NoError(t, err)
	assert.Contains(t, messages(result.Diagnostics),
		"Argument 'z' of command @param was not found in the argument list of f(x)")
}

func TestParse_WarningsDisabled(t *testing.T) {
	t.Parallel()

	p := docparser.New(config.ParserConfig{}, resolver.NewMemory())
	result, err := p.Parse(context.Background(), docparser.Request{File: "a.h", Text: "<b>bold"})
	require.NoError(t, err)
	assert.Empty(t, result.Diagnostics)
}

func TestParse_Sink(t *testing.T) {
	t.Parallel()

	collector := diag.NewCollector()
	result := parse(t, nil, "<b>bold", docparser.WithSink(collector))

	assert.Equal(t, len(result.Diagnostics), collector.Len())
	assert.NotZero(t, collector.Len())
}

func TestParse_DiagnosticPosition(t *testing.T) {
	t.Parallel()

	p := docparser.New(testConfig(), resolver.NewMemory())
	result, err := p.Parse(context.Background(), docparser.Request{
		File: "widget.h",
		Line: 10,
		Text: "One.\n\\verbatim\nnever closed",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Diagnostics)

	d := result.Diagnostics[0]
	assert.Equal(t, "widget.h", d.File)
	assert.GreaterOrEqual(t, d.Line, 11)
}

func TestParse_WhitespaceRunsMerge(t *testing.T) {
	t.Parallel()

	source := func(string) doctoken.Source {
		return doctoken.NewSliceSource(
			doctoken.Token{Kind: doctoken.Word, Name: "a", ID: -1},
			doctoken.Token{Kind: doctoken.Whitespace, Chars: " ", ID: -1},
			doctoken.Token{Kind: doctoken.Whitespace, Chars: "\t", ID: -1},
			doctoken.Token{Kind: doctoken.Word, Name: "b", ID: -1},
		)
	}
	result := parse(t, nil, "ignored", docparser.WithSourceFactory(source))

	assert.Equal(t, `Root(Para("a" _ "b"))`, docast.Sprint(result.Root))
	spaces := docast.FindByKind(result.Root, docast.NodeWhiteSpace)
	require.Len(t, spaces, 1)
	assert.Equal(t, " \t", spaces[0].Text)
}

func TestParse_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := docparser.New(testConfig(), resolver.NewMemory())
	result, err := p.Parse(ctx, docparser.Request{File: "a.h", Text: "text"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}

func TestParseText(t *testing.T) {
	t.Parallel()

	p := docparser.New(testConfig(), resolver.NewMemory())
	result, err := p.ParseText(context.Background(), "a.h", "Hello world")
	require.NoError(t, err)

	assert.Equal(t, docast.NodeText, result.Root.Kind)
	assert.Equal(t, `Text("Hello" _ "world")`, docast.Sprint(result.Root))
	assert.Empty(t, result.Diagnostics)
}

func TestParseText_RejectsCommands(t *testing.T) {
	t.Parallel()

	p := docparser.New(testConfig(), resolver.NewMemory())
	result, err := p.ParseText(context.Background(), "a.h", `a \b c`)
	require.NoError(t, err)

	assert.Contains(t, messages(result.Diagnostics), "Unexpected command 'b' found")
	assert.Empty(t, docast.FindByKind(result.Root, docast.NodeStyleChange))
}

func TestInternalError(t *testing.T) {
	t.Parallel()

	err := error(&docparser.InternalError{File: "a.h", Line: 3, Message: "node stack underflow"})
	assert.True(t, errors.Is(err, docparser.ErrInternal))
	assert.Equal(t, "a.h:3: node stack underflow", err.Error())

	var ie *docparser.InternalError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 3, ie.Line)
}

func TestParse_SimpleSectEndsAutoListAtSameIndent(t *testing.T) {
	t.Parallel()

	result := parse(t, nil, "\\note first\n- item\n\\warning second")

	sects := docast.FindByKind(result.Root, docast.NodeSimpleSect)
	require.Len(t, sects, 2)

	note, warning := sects[0], sects[1]
	assert.Equal(t, docast.SectNote, note.Sect.Type)
	assert.Equal(t, docast.SectWarning, warning.Sect.Type)

	// The warning closes the list and the note, and becomes the note's
	// sibling rather than a section inside the last list item.
	assert.Same(t, note.Parent, warning.Parent)
	assert.Len(t, docast.FindByKind(note, docast.NodeAutoList), 1)
	assert.Empty(t, docast.FindByKind(warning, docast.NodeAutoList))
	assert.Contains(t, docast.Sprint(warning), `"second"`)
	assert.Empty(t, result.Diagnostics)
}

func TestParse_MarkdownLeavesRawBlocksAlone(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.MarkdownSupport = true
	p := docparser.New(cfg, resolver.NewMemory())

	run := func(text string) *docparser.Result {
		result, err := p.Parse(context.Background(), docparser.Request{File: "a.h", Line: 1, Text: text})
		require.NoError(t, err)
		return result
	}

	code := docast.FindByKind(run("\\code\nint *a* = **b**;\n\\endcode").Root, docast.NodeVerbatim)
	require.Len(t, code, 1)
	assert.Equal(t, "int *a* = **b**;\n", code[0].Text)

	verbatim := docast.FindByKind(run("\\verbatim\n# not a heading `x`\n\\endverbatim").Root, docast.NodeVerbatim)
	require.Len(t, verbatim, 1)
	assert.Equal(t, "\n# not a heading `x`\n", verbatim[0].Text)

	formula := docast.FindByKind(run("See \\f$ a*b*c \\f$ and *this*.").Root, docast.NodeFormula)
	require.Len(t, formula, 1)
	assert.Equal(t, "$ a*b*c $", formula[0].Text)
}

func TestParse_SimpleSectInsideAutoListItem(t *testing.T) {
	t.Parallel()

	result := parse(t, nil, "- x\n\\warning b")

	sects := docast.FindByKind(result.Root, docast.NodeSimpleSect)
	require.Len(t, sects, 1)
	assert.Equal(t, docast.SectWarning, sects[0].Sect.Type)

	// Without an enclosing simple section the warning stays in the item.
	var item *docast.Node
	for n := sects[0].Parent; n != nil; n = n.Parent {
		if n.Kind == docast.NodeAutoListItem {
			item = n
			break
		}
	}
	require.NotNil(t, item)
	assert.Contains(t, item.PlainText(), "x")
	assert.Contains(t, docast.Sprint(sects[0]), `"b"`)
	assert.Empty(t, result.Diagnostics)
}

func TestParse_StyleArgumentStopsAtPunctuation(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		`\b foo, bar`: `Root(Para(<b> "foo" </b> "," _ "bar"))`,
		`\b foo bar`:  `Root(Para(<b> "foo" </b> _ "bar"))`,
		`\c value;`:   `Root(Para(<code> "value" </code> ";"))`,
	}
	for text, want := range tests {
		t.Run(text, func(t *testing.T) {
			t.Parallel()

			result := parse(t, nil, text)
			assert.Equal(t, want, docast.Sprint(result.Root))
			for style, n := range styleBalance(result.Root) {
				assert.Zero(t, n, "style %s", style)
			}
		})
	}
}

func TestParse_WhitespaceReparse(t *testing.T) {
	t.Parallel()

	for _, text := range []string{
		"one  two",
		"one \t two",
		"one\n   two three",
		"a\tb \t c",
	} {
		first := parse(t, nil, text)
		again := parse(t, nil, first.Root.PlainText())

		assert.Equal(t, docast.Sprint(first.Root), docast.Sprint(again.Root), "text %q", text)
		assert.Len(t, docast.FindByKind(again.Root, docast.NodeWhiteSpace),
			len(docast.FindByKind(first.Root, docast.NodeWhiteSpace)), "text %q", text)
	}
}

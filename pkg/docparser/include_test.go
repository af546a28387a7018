package docparser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copperspice/doxypress-sub002/pkg/docast"
	"github.com/copperspice/doxypress-sub002/pkg/resolver"
)

const exampleSource = "#include <x>\n\nint main()\n{\n  return 0;\n}\n"

func exampleResolver() *resolver.Memory {
	res := resolver.NewMemory()
	res.AddFile(resolver.File{Name: "example.cpp", Text: exampleSource})
	res.AddFile(resolver.File{
		Name: "snippets.cpp",
		Text: "a\n//! [Adding]\nx = 1;\n//! [Adding]\nb\n",
	})
	res.AddFile(resolver.File{Name: "intro.dox", Text: "Included <b>text</b>"})
	return res
}

func TestParse_Include(t *testing.T) {
	t.Parallel()

	result := parse(t, exampleResolver(), `\include example.cpp`)

	includes := docast.FindByKind(result.Root, docast.NodeInclude)
	require.Len(t, includes, 1)
	assert.Equal(t, docast.IncludePlain, includes[0].Include.Type)
	assert.Equal(t, "example.cpp", includes[0].Include.File)
	assert.Equal(t, exampleSource, includes[0].Text)
	assert.Empty(t, result.Diagnostics)
}

func TestParse_IncludeLineNumbers(t *testing.T) {
	t.Parallel()

	result := parse(t, exampleResolver(), `\include{lineno} example.cpp`)

	includes := docast.FindByKind(result.Root, docast.NodeInclude)
	require.Len(t, includes, 1)
	assert.Equal(t, docast.IncludeWithLines, includes[0].Include.Type)
	assert.True(t, includes[0].Include.ShowLineNo)
}

func TestParse_IncludeMissingFile(t *testing.T) {
	t.Parallel()

	result := parse(t, exampleResolver(), `\include nothere.cpp`)

	assert.Contains(t, messages(result.Diagnostics), "Included file nothere.cpp was not found")
}

func TestParse_IncludeOperators(t *testing.T) {
	t.Parallel()

	result := parse(t, exampleResolver(), "\\dontinclude example.cpp\n\\skip main\n\\until }")

	includes := docast.FindByKind(result.Root, docast.NodeInclude)
	require.Len(t, includes, 1)
	assert.Equal(t, docast.IncludeDontInclude, includes[0].Include.Type)
	assert.Empty(t, includes[0].Text)

	ops := docast.FindByKind(result.Root, docast.NodeIncOperator)
	require.Len(t, ops, 2)

	skip, until := ops[0], ops[1]
	assert.Equal(t, docast.IncludeOpSkip, skip.Include.Type)
	assert.Equal(t, "main", skip.Include.Pattern)
	assert.True(t, skip.Include.First)
	assert.False(t, skip.Include.Last)

	assert.Equal(t, docast.IncludeOpUntil, until.Include.Type)
	assert.Equal(t, "example.cpp", until.Include.File)
	assert.False(t, until.Include.First)
	assert.True(t, until.Include.Last)
	assert.Equal(t, "{\n  return 0;\n}", until.Text)
	assert.Empty(t, result.Diagnostics)
}

func TestParse_IncludeOperatorsWalkForward(t *testing.T) {
	t.Parallel()

	res := resolver.NewMemory()
	res.AddFile(resolver.File{Name: "ex.cpp", Text: "a\n\nfoo 1\nbar\nfoo 2\nbaz\n"})

	tests := map[string]struct {
		text string
		want []string
	}{
		"repeated skip": {
			text: "\\dontinclude ex.cpp\n\\skip foo\n\\skip foo\n\\until baz",
			want: []string{"", "", "baz"},
		},
		"skip then until": {
			text: "\\dontinclude ex.cpp\n\\skip foo\n\\until 2",
			want: []string{"", "bar\nfoo 2"},
		},
		"skipline then line": {
			text: "\\dontinclude ex.cpp\n\\skipline foo\n\\line bar",
			want: []string{"foo 1", "bar"},
		},
		"line misses": {
			text: "\\dontinclude ex.cpp\n\\line foo\n\\line foo",
			want: []string{"", "foo 1"},
		},
		"repeated skipline": {
			text: "\\dontinclude ex.cpp\n\\skipline foo\n\\skipline foo\n\\skipline foo",
			want: []string{"foo 1", "foo 2", ""},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			result := parse(t, res, tc.text)

			ops := docast.FindByKind(result.Root, docast.NodeIncOperator)
			got := make([]string, len(ops))
			for i, op := range ops {
				got[i] = op.Text
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParse_IncludeOperatorWithoutInclude(t *testing.T) {
	t.Parallel()

	result := parse(t, exampleResolver(), `\line main`)

	ops := docast.FindByKind(result.Root, docast.NodeIncOperator)
	require.Len(t, ops, 1)
	assert.Empty(t, ops[0].Text)
	assert.Contains(t, messages(result.Diagnostics),
		`No previous '\include' or '\dontinclude' command for '\line' present`)
}

func TestParse_Snippet(t *testing.T) {
	t.Parallel()

	result := parse(t, exampleResolver(), `\snippet snippets.cpp Adding`)

	includes := docast.FindByKind(result.Root, docast.NodeInclude)
	require.Len(t, includes, 1)

	inc := includes[0]
	assert.Equal(t, docast.IncludeSnippet, inc.Include.Type)
	assert.Equal(t, "[Adding]", inc.Include.BlockID)
	assert.Equal(t, "x = 1;\n", inc.Text)
	assert.Equal(t, 3, inc.Include.Line)
	assert.Empty(t, result.Diagnostics)
}

func TestParse_IncludeDoc(t *testing.T) {
	t.Parallel()

	result := parse(t, exampleResolver(), `\includedoc intro.dox`)

	assert.Empty(t, docast.FindByKind(result.Root, docast.NodeInclude))
	assert.Equal(t, `Root(Para(Para("Included" _ <b> "text" </b>)))`, docast.Sprint(result.Root))
	assert.Empty(t, result.Diagnostics)
}

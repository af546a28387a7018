package docparser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copperspice/doxypress-sub002/pkg/config"
	"github.com/copperspice/doxypress-sub002/pkg/diag"
	"github.com/copperspice/doxypress-sub002/pkg/docast"
	"github.com/copperspice/doxypress-sub002/pkg/docparser"
	"github.com/copperspice/doxypress-sub002/pkg/resolver"
)

func parseMember(t *testing.T, cfg config.ParserConfig, res resolver.Resolver, member *resolver.Entity, text string) *docparser.Result {
	t.Helper()

	p := docparser.New(cfg, res)
	result, err := p.Parse(context.Background(), docparser.Request{File: "a.h", Line: 1, Text: text, Member: member})
	require.NoError(t, err)
	return result
}

func TestParse_InheritDoc(t *testing.T) {
	t.Parallel()

	res := resolver.NewMemory()
	res.AddEntity(resolver.Entity{Name: "Base::f", Kind: resolver.KindMember, Brief: "Base brief.", Details: "Base details."})
	derived := resolver.Entity{Name: "Derived::f", Kind: resolver.KindMember, Reimplements: "Base::f"}
	res.AddEntity(derived)

	result := parseMember(t, testConfig(), res, &derived, `\inheritdoc`)

	text := result.Root.PlainText()
	assert.Contains(t, text, "Base brief.")
	assert.Contains(t, text, "Base details.")
	assert.Empty(t, result.Diagnostics)

	noBase := parseMember(t, testConfig(), res, &resolver.Entity{Name: "Other::f", Kind: resolver.KindMember}, `\inheritdoc`)
	assert.Empty(t, noBase.Root.PlainText())
	assert.Empty(t, noBase.Diagnostics)
}

func TestParse_InheritDocCycle(t *testing.T) {
	t.Parallel()

	res := resolver.NewMemory()
	res.AddEntity(resolver.Entity{
		Name:         "Base::f",
		Kind:         resolver.KindMember,
		Details:      "Base docs. \\inheritdoc",
		Reimplements: "Derived::f",
	})
	derived := resolver.Entity{
		Name:         "Derived::f",
		Kind:         resolver.KindMember,
		Details:      "Derived docs. \\inheritdoc",
		Reimplements: "Base::f",
	}
	res.AddEntity(derived)

	result := parseMember(t, testConfig(), res, &derived, `\inheritdoc`)

	text := result.Root.PlainText()
	assert.Contains(t, text, "Base docs.")
	assert.Contains(t, text, "Derived docs.")

	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, diag.CategoryNesting, result.Diagnostics[0].Category)
	assert.Equal(t, `Found recursive \inheritdoc relation for 'Base::f'`, result.Diagnostics[0].Message)
}

func TestParse_InheritDocDocumentsParams(t *testing.T) {
	t.Parallel()

	res := resolver.NewMemory()
	res.AddEntity(resolver.Entity{
		Name:    "Base::f",
		Kind:    resolver.KindMember,
		Params:  []string{"x", "y"},
		Details: "\\param y the y",
	})
	derived := resolver.Entity{
		Name:         "Derived::f",
		Kind:         resolver.KindMember,
		Params:       []string{"x", "y"},
		Reimplements: "Base::f",
	}
	res.AddEntity(derived)
	cfg := testConfig()
	cfg.WarnUndocParams = true

	result := parseMember(t, cfg, res, &derived, "\\inheritdoc\n\n\\param x the x")

	assert.Len(t, docast.FindByKind(result.Root, docast.NodeParamList), 2)
	assert.Empty(t, result.Diagnostics)

	without := parseMember(t, cfg, res, &derived, `\param x the x`)
	assert.Equal(t, []string{"The following parameters of Derived::f(x, y) are not documented: parameter 'y'"},
		messages(without.Diagnostics))
}

func TestParse_InheritDocChecksBaseParams(t *testing.T) {
	t.Parallel()

	res := resolver.NewMemory()
	res.AddEntity(resolver.Entity{
		Name:    "Base::f",
		Kind:    resolver.KindMember,
		Params:  []string{"a"},
		Details: "\\param b not an argument",
	})
	derived := resolver.Entity{Name: "Derived::f", Kind: resolver.KindMember, Params: []string{"b"}, Reimplements: "Base::f"}
	res.AddEntity(derived)

	result := parseMember(t, testConfig(), res, &derived, `\inheritdoc`)

	assert.Equal(t, []string{"Argument 'b' of command @param was not found in the argument list of Base::f(a)"},
		messages(result.Diagnostics))
}

func TestParse_CopyDocInsideIncludedDoc(t *testing.T) {
	t.Parallel()

	res := resolver.NewMemory()
	res.AddEntity(resolver.Entity{Name: "Foo", Kind: resolver.KindClass, Brief: "Short", Details: "Long"})
	res.AddEntity(resolver.Entity{Name: "A", Kind: resolver.KindClass, Details: `\copydoc A`})
	res.AddFile(resolver.File{Name: "copy.dox", Text: `\copydoc Foo`})
	res.AddFile(resolver.File{Name: "loop.dox", Text: `\copydoc A`})

	result := parse(t, res, `\includedoc copy.dox`)
	assert.Equal(t, `Root(Para(Para(Para("Short") Para("Long"))))`, docast.Sprint(result.Root))
	assert.Empty(t, result.Diagnostics)

	loop := parse(t, res, `\includedoc loop.dox`)
	assert.Contains(t, loop.Root.PlainText(), "A")
	require.Len(t, loop.Diagnostics, 1)
	assert.Equal(t, diag.CategoryNesting, loop.Diagnostics[0].Category)
	assert.Equal(t, "Found recursive @copydoc or @copydoc relation for argument 'A'.", loop.Diagnostics[0].Message)
	assert.Equal(t, "loop.dox", loop.Diagnostics[0].File)
}

package resolver_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copperspice/doxypress-sub002/pkg/resolver"
)

func newTestMemory() *resolver.Memory {
	m := resolver.NewMemory()
	m.AddEntity(resolver.Entity{Name: "ns", Kind: resolver.KindNamespace, File: "namespacens"})
	m.AddEntity(resolver.Entity{Name: "ns::Widget", Kind: resolver.KindClass, File: "classns_1_1Widget"})
	m.AddEntity(resolver.Entity{
		Name: "ns::Widget::draw", Kind: resolver.KindMember, File: "classns_1_1Widget",
		Anchor: "a1", Brief: "Draws.", Params: []string{"x", "y"}, Reimplements: "ns::Base::draw",
	})
	m.AddEntity(resolver.Entity{Name: "ns::Base::draw", Kind: resolver.KindMember, File: "classns_1_1Base", Anchor: "b1"})
	m.AddEntity(resolver.Entity{Name: "draw", Kind: resolver.KindMember, File: "globals", Anchor: "g1"})
	return m
}

func TestMemory_ResolveScopes(t *testing.T) {
	t.Parallel()

	m := newTestMemory()

	tests := []struct {
		name       string
		scope      string
		ref        string
		wantAnchor string
		wantOK     bool
	}{
		{"innermost scope wins", "ns::Widget", "draw", "a1", true},
		{"enclosing scope", "ns::Widget::draw", "Widget", "", true},
		{"global fallback", "other", "draw", "g1", true},
		{"explicit global", "ns::Widget", "::draw", "g1", true},
		{"java style member", "", "ns::Widget#draw", "a1", true},
		{"argument list dropped", "ns::Widget", "draw(int, int)", "a1", true},
		{"unknown", "ns", "missing", "", false},
		{"empty", "ns", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, ok := m.Resolve(tt.scope, tt.ref)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantAnchor, e.Anchor)
		})
	}
}

func TestMemory_ResolveLinkPrefersSections(t *testing.T) {
	t.Parallel()

	m := newTestMemory()
	m.AddSection(resolver.Section{Label: "draw", Kind: resolver.SectionSection, File: "page", Anchor: "s_draw"})

	e, ok := m.ResolveLink("ns::Widget", "draw", false)
	require.True(t, ok)
	assert.Equal(t, "s_draw", e.Anchor)
	assert.Equal(t, resolver.KindPage, e.Kind)
}

func TestMemory_Reimplements(t *testing.T) {
	t.Parallel()

	m := newTestMemory()

	base, ok := m.Reimplements("ns::Widget::draw")
	require.True(t, ok)
	assert.Equal(t, "b1", base.Anchor)

	_, ok = m.Reimplements("ns::Base::draw")
	assert.False(t, ok)
}

func TestMemory_SectionDupes(t *testing.T) {
	t.Parallel()

	m := resolver.NewMemory()
	m.AddSection(resolver.Section{Label: "intro", Title: "First"})
	m.AddSection(resolver.Section{Label: "intro", Title: "Second"})

	s, ok := m.Section("intro")
	require.True(t, ok)
	assert.Equal(t, "First", s.Title)
	assert.Equal(t, 1, s.Dupes)
}

func TestMemory_FindFile(t *testing.T) {
	t.Parallel()

	m := resolver.NewMemory()
	m.AddFile(resolver.File{Name: "examples/a/util.cpp", Text: "a"})
	m.AddFile(resolver.File{Name: "examples/b/util.cpp", Text: "b"})
	m.AddFile(resolver.File{Name: "examples/main.cpp", Text: "int main() {}\n"})

	p, candidates, ok := m.FindFile("main.cpp")
	require.True(t, ok)
	assert.Empty(t, candidates)

	text, err := m.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "int main() {}\n", text)

	_, candidates, ok = m.FindFile("util.cpp")
	assert.False(t, ok)
	assert.Equal(t, []string{"examples/a/util.cpp", "examples/b/util.cpp"}, candidates)

	_, candidates, ok = m.FindFile("none.cpp")
	assert.False(t, ok)
	assert.Empty(t, candidates)
}

func TestMemory_FindFileOnDisk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "demo.cpp"), []byte("// demo\n"), 0o600))

	m := resolver.NewMemory(dir)

	p, _, ok := m.FindFile("demo.cpp")
	require.True(t, ok)

	text, err := m.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "// demo\n", text)

	_, err = m.ReadFile(filepath.Join(dir, "missing.cpp"))
	require.Error(t, err)
}

func TestMemory_LoadYAML(t *testing.T) {
	t.Parallel()

	doc := `
entities:
  - name: Foo
    kind: class
    file: classFoo
    brief: A foo.
  - name: Foo::run
    file: classFoo
    anchor: r1
    params: [count]
    returns: int
sections:
  - label: intro
    title: Introduction
    file: index
    level: 1
files:
  - name: ex.cpp
    text: |
      line one
xrefs:
  - list: todo
    id: 1
    heading: Todo
    title: Todo List
    anchor: _todo000001
citations:
  knuth84: "[1]"
formulas:
  3: "$x^2$"
`

	m := resolver.NewMemory()
	require.NoError(t, m.LoadYAML(strings.NewReader(doc)))

	run, ok := m.Resolve("Foo", "run")
	require.True(t, ok)
	assert.Equal(t, resolver.KindMember, run.Kind)
	assert.True(t, run.IsFunction())
	assert.Equal(t, "int", run.ReturnType)

	s, ok := m.Section("intro")
	require.True(t, ok)
	assert.Equal(t, resolver.SectionSection, s.Kind)

	item, ok := m.XRefItem("todo", 1)
	require.True(t, ok)
	assert.Equal(t, "_todo000001", item.Anchor)

	label, ok := m.Cite("knuth84")
	require.True(t, ok)
	assert.Equal(t, "[1]", label)

	f, ok := m.Formula(3)
	require.True(t, ok)
	assert.Equal(t, "$x^2$", f)

	assert.Len(t, m.Entities(), 2)
}

func TestMemory_LoadYAMLErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{"unknown key", "bogus: 1\n"},
		{"entity without name", "entities:\n  - kind: class\n"},
		{"malformed", "entities: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := resolver.NewMemory().LoadYAML(strings.NewReader(tt.doc))
			require.Error(t, err)
		})
	}

	require.NoError(t, resolver.NewMemory().LoadYAML(strings.NewReader("")))
}

func TestEntityLinkable(t *testing.T) {
	t.Parallel()

	assert.True(t, resolver.Entity{File: "x"}.Linkable())
	assert.False(t, resolver.Entity{File: "x", Hidden: true}.Linkable())
	assert.False(t, resolver.Entity{}.Linkable())
	assert.True(t, resolver.KindClass.IsCompound())
	assert.False(t, resolver.KindMember.IsCompound())
}

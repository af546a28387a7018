package docparser_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copperspice/doxypress-sub002/pkg/docast"
)

func TestParse_TableGrid(t *testing.T) {
	t.Parallel()

	text := `<table>` +
		`<tr><td colspan="2" rowspan="3">A</td><td>B</td></tr>` +
		`<tr><td rowspan="2">C</td><td>D</td></tr>` +
		`<tr><td>E</td></tr>` +
		`<tr><td>F</td><td>G</td><td>H</td><td>I</td></tr>` +
		`</table>`
	result := parse(t, nil, text)

	tables := docast.FindByKind(result.Root, docast.NodeHtmlTable)
	require.Len(t, tables, 1)
	numCols := tables[0].Table.NumColumns
	assert.Equal(t, 4, numCols)

	cells := docast.FindByKind(result.Root, docast.NodeHtmlCell)
	require.Len(t, cells, 9)

	got := map[string][2]int{}
	for _, c := range cells {
		got[strings.TrimSpace(c.PlainText())] = [2]int{c.Cell.Row, c.Cell.Column}
	}
	assert.Equal(t, map[string][2]int{
		"A": {0, 0}, "B": {0, 2},
		"C": {1, 2}, "D": {1, 3},
		"E": {2, 3},
		"F": {3, 0}, "G": {3, 1}, "H": {3, 2}, "I": {3, 3},
	}, got)

	occupied := map[[2]int]string{}
	for _, c := range cells {
		name := strings.TrimSpace(c.PlainText())
		assert.Less(t, c.Cell.Column+c.Cell.ColSpan-1, numCols, "cell %s", name)
		for r := c.Cell.Row; r < c.Cell.Row+c.Cell.RowSpan; r++ {
			for col := c.Cell.Column; col < c.Cell.Column+c.Cell.ColSpan; col++ {
				if prev, ok := occupied[[2]int{r, col}]; ok {
					t.Errorf("cells %s and %s overlap at (%d,%d)", prev, name, r, col)
				}
				occupied[[2]int{r, col}] = name
			}
		}
	}
	assert.Empty(t, result.Diagnostics)
}

func TestParse_HTMLList(t *testing.T) {
	t.Parallel()

	result := parse(t, nil, "<ul><li>one<li>two</ul> after")

	want := `Root(Para(HtmlList(HtmlListItem(Para("one")) HtmlListItem(Para("two"))) "after"))`
	assert.Equal(t, want, docast.Sprint(result.Root))
	assert.Empty(t, result.Diagnostics)
}

func TestParse_HTMLOrderedList(t *testing.T) {
	t.Parallel()

	result := parse(t, nil, "<ol><li>a</li><li>b</li></ol>")

	lists := docast.FindByKind(result.Root, docast.NodeHtmlList)
	require.Len(t, lists, 1)
	assert.True(t, lists[0].List.Ordered)

	items := docast.FindByKind(result.Root, docast.NodeHtmlListItem)
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].List.Number)
	assert.Equal(t, 2, items[1].List.Number)
	assert.Equal(t, "b", items[1].PlainText())
	assert.Empty(t, result.Diagnostics)
}

func TestParse_HTMLListMalformed(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		result := parse(t, nil, "<ol></ol>")

		assert.Equal(t, `Root(Para(HtmlList(HtmlListItem)))`, docast.Sprint(result.Root))
		assert.Equal(t, []string{"Empty list"}, messages(result.Diagnostics))
	})

	t.Run("missing li", func(t *testing.T) {
		t.Parallel()

		result := parse(t, nil, "<ul>text</ul>")

		items := docast.FindByKind(result.Root, docast.NodeHtmlListItem)
		require.Len(t, items, 1)
		assert.False(t, items[0].HasChildren())
		assert.Equal(t, 1, items[0].List.Number)

		msgs := messages(result.Diagnostics)
		assert.True(t, slices.ContainsFunc(msgs, func(m string) bool {
			return strings.HasPrefix(m, "Expected <li> tag, found ")
		}), "messages: %v", msgs)
		assert.Contains(t, msgs, "Found </ul> tag without matching <ul>")
	})

	t.Run("lonely li", func(t *testing.T) {
		t.Parallel()

		result := parse(t, nil, "a <li> b")

		assert.Empty(t, docast.FindByKind(result.Root, docast.NodeHtmlListItem))
		assert.Contains(t, messages(result.Diagnostics), "Lonely <li> tag found")
	})
}

func TestParse_DescriptionList(t *testing.T) {
	t.Parallel()

	result := parse(t, nil, "<dl><dt>Term</dt><dd>Definition</dd><dt>Other</dt><dd>More</dd></dl> after")

	want := `Root(Para(HtmlDescList(` +
		`HtmlDescTitle("Term") HtmlDescData(Para("Definition")) ` +
		`HtmlDescTitle("Other") HtmlDescData(Para("More"))) "after"))`
	assert.Equal(t, want, docast.Sprint(result.Root))
	assert.Empty(t, result.Diagnostics)
}

func TestParse_DescriptionListWithoutTitle(t *testing.T) {
	t.Parallel()

	result := parse(t, nil, "<dl><dd>x</dd></dl>")

	assert.Empty(t, docast.FindByKind(result.Root, docast.NodeHtmlDescTitle))
	assert.Contains(t, messages(result.Diagnostics), "Expected <dt> tag, found <dd> instead")
}

func TestParse_WhitespaceAfterBlockDropped(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text string
		want string
	}{
		"after table": {
			text: "<table><tr><td>a</td></tr></table>   b",
			want: `Root(Para(HtmlTable(HtmlRow(HtmlCell(Para("a")))) "b"))`,
		},
		"after list": {
			text: "<ul><li>a</ul>\t b",
			want: `Root(Para(HtmlList(HtmlListItem(Para("a"))) "b"))`,
		},
		"after word": {
			text: "a   b",
			want: `Root(Para("a" _ "b"))`,
		},
		"at paragraph start": {
			text: "   a",
			want: `Root(Para("a"))`,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			result := parse(t, nil, tc.text)
			assert.Equal(t, tc.want, docast.Sprint(result.Root))
		})
	}
}

func TestParse_StrayStructuralTags(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text     string
		want     string
		messages []string
	}{
		"cell end tag is ignored": {
			text: "a</td>b",
			want: `Root(Para("a" "b"))`,
		},
		"cell start tag ends the paragraph": {
			text: "a<td>b",
			want: `Root(Para("a") Para("b"))`,
		},
		"description list end tag ends the paragraph": {
			text: "a</dl>b",
			want: `Root(Para("a") Para("b"))`,
		},
		"list end tag is reported": {
			text:     "a</ul>b",
			want:     `Root(Para("a" "b"))`,
			messages: []string{"Found </ul> tag without matching <ul>"},
		},
		"list item end tag is reported": {
			text:     "a</li>b",
			want:     `Root(Para("a" "b"))`,
			messages: []string{"Found </li> tag without matching <li>"},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			result := parse(t, nil, tc.text)
			assert.Equal(t, tc.want, docast.Sprint(result.Root))
			if tc.messages == nil {
				assert.Empty(t, result.Diagnostics)
			} else {
				assert.Equal(t, tc.messages, messages(result.Diagnostics))
			}
		})
	}
}

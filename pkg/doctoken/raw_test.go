package doctoken_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/copperspice/doxypress-sub002/pkg/doctoken"
)

func TestRawRegions(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text string
		want []string
	}{
		"code block":     {"a \\code x *y* \\endcode b", []string{"\\code x *y* \\endcode"}},
		"mixed prefixes": {"\\code x @endcode", []string{"\\code x @endcode"}},
		"formulas":       {"@f$x@f$ and \\f[y\\f]", []string{"@f$x@f$", "\\f[y\\f]"}},
		"unclosed":       {"a \\verbatim rest", []string{"\\verbatim rest"}},
		"longer command": {"\\codeword and \\dotfile a.dot", nil},
		"escaped":        {"\\\\code x \\\\endcode", nil},
		"html only":      {"<b>\\htmlonly<i>x</i>\\endhtmlonly</b>", []string{"\\htmlonly<i>x</i>\\endhtmlonly"}},
		"plain text":     {"no raw *blocks* here", nil},
		"lone end":       {"x \\endcode y", nil},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var got []string
			for _, r := range doctoken.RawRegions(tc.text) {
				got = append(got, tc.text[r.Start:r.End])
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRawBlockEnd(t *testing.T) {
	t.Parallel()

	text := "x \\msc a->b; \\endmsc y"

	end, ok := doctoken.RawBlockEnd(text, 2)
	assert.True(t, ok)
	assert.Equal(t, " y", text[end:])

	_, ok = doctoken.RawBlockEnd(text, 0)
	assert.False(t, ok)

	_, ok = doctoken.RawBlockEnd(text, len(text))
	assert.False(t, ok)
}

func TestRegion_Overlaps(t *testing.T) {
	t.Parallel()

	r := doctoken.Region{Start: 2, End: 5}

	assert.False(t, r.Overlaps(0, 2))
	assert.True(t, r.Overlaps(1, 3))
	assert.True(t, r.Overlaps(4, 6))
	assert.False(t, r.Overlaps(5, 7))
	assert.True(t, r.Overlaps(3, 3))
	assert.False(t, r.Overlaps(5, 5))
}

package doctoken

import "strings"

// rawBlocks are the commands whose body reaches the parser unchanged, with
// the command that ends them. Formula delimiters have no name to bound, so
// they match even when a letter follows.
var rawBlocks = []struct {
	start, end string
	formula    bool
}{
	{"docbookonly", "enddocbookonly", false},
	{"htmlonly", "endhtmlonly", false},
	{"latexonly", "endlatexonly", false},
	{"startuml", "enduml", false},
	{"verbatim", "endverbatim", false},
	{"manonly", "endmanonly", false},
	{"rtfonly", "endrtfonly", false},
	{"xmlonly", "endxmlonly", false},
	{"code", "endcode", false},
	{"dot", "enddot", false},
	{"msc", "endmsc", false},
	{"f$", "f$", true},
	{"f[", "f]", true},
	{"f{", "f}", true},
	{"f(", "f)", true},
}

// Region is the byte range [Start, End) of a raw block, including its start
// and end commands.
type Region struct {
	Start, End int
}

// Overlaps reports whether [start, end) overlaps r. An empty range
// overlaps when r contains its position.
func (r Region) Overlaps(start, end int) bool {
	if end <= start {
		return start >= r.Start && start < r.End
	}
	return start < r.End && end > r.Start
}

// RawBlockEnd reports whether an unescaped \ or @ command at text[i] opens a
// raw block, and returns the offset just past its end command, or len(text)
// when the block is not closed.
func RawBlockEnd(text string, i int) (int, bool) {
	if i >= len(text) || (text[i] != '\\' && text[i] != '@') || isEscapedAt(text, i) {
		return 0, false
	}
	rest := text[i+1:]
	for _, b := range rawBlocks {
		if !strings.HasPrefix(rest, b.start) {
			continue
		}
		if !b.formula && continuesWord(rest, len(b.start)) {
			continue
		}
		return endCommand(text, i+1+len(b.start), b.end), true
	}
	return 0, false
}

// RawRegions returns the raw blocks of text in order.
func RawRegions(text string) []Region {
	var regions []Region
	for i := 0; i < len(text); i++ {
		if end, ok := RawBlockEnd(text, i); ok {
			regions = append(regions, Region{Start: i, End: end})
			i = end - 1
		}
	}
	return regions
}

// endCommand returns the offset just past the first unescaped \end or @end
// command at or after from, or len(text).
func endCommand(text string, from int, end string) int {
	for i := from; i < len(text); i++ {
		if (text[i] == '\\' || text[i] == '@') && !isEscapedAt(text, i) && strings.HasPrefix(text[i+1:], end) {
			return i + 1 + len(end)
		}
	}
	return len(text)
}

func isEscapedAt(text string, i int) bool {
	return i > 0 && (text[i-1] == '\\' || text[i-1] == '@')
}

func continuesWord(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	c := s[i]
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

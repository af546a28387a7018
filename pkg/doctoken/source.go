package doctoken

// Source produces the token stream of one documentation block.
//
// Next returns EOF forever once the input is exhausted. PushBackTag makes
// the next call to Next return an HTML start tag with the given name, so a
// list or table parser can hand an unexpected tag back to its caller.
type Source interface {
	Next() Token
	SetMode(m Mode)
	PushBackTag(name string)
	Line() int
}

// PreTracker is implemented by sources whose paragraph tokenisation depends
// on being inside a <pre> block.
type PreTracker interface {
	SetInsidePre(inside bool)
}

// AutoListTracker is implemented by sources that only recognise the "."
// end-of-list marker while an auto list is open.
type AutoListTracker interface {
	StartAutoList()
	EndAutoList()
}

// SliceSource replays a fixed token slice. Modes are recorded but otherwise
// ignored, which makes it suitable for tests and for front ends that
// tokenise on their own.
type SliceSource struct {
	tokens  []Token
	pos     int
	pending []Token
	modes   []Mode
	lastTag Token
	line    int
}

// NewSliceSource returns a Source over tokens.
func NewSliceSource(tokens ...Token) *SliceSource {
	return &SliceSource{tokens: tokens, line: 1}
}

// Next implements Source.
func (s *SliceSource) Next() Token {
	if n := len(s.pending); n > 0 {
		tok := s.pending[n-1]
		s.pending = s.pending[:n-1]
		return tok
	}
	if s.pos >= len(s.tokens) {
		return Token{Kind: EOF, ID: -1, Line: s.line}
	}
	tok := s.tokens[s.pos]
	s.pos++
	if tok.Line > 0 {
		s.line = tok.Line
	}
	if tok.Kind == HTMLTag {
		s.lastTag = tok
	}
	return tok
}

// SetMode implements Source.
func (s *SliceSource) SetMode(m Mode) {
	s.modes = append(s.modes, m)
}

// PushBackTag implements Source.
func (s *SliceSource) PushBackTag(name string) {
	s.pending = append(s.pending, pushedBackTag(s.lastTag, name, s.line))
}

// Line implements Source.
func (s *SliceSource) Line() int {
	return s.line
}

// Modes returns every mode switch requested so far, in order.
func (s *SliceSource) Modes() []Mode {
	return s.modes
}

// pushedBackTag returns last when it is the start tag being pushed back,
// otherwise a bare start tag named name.
func pushedBackTag(last Token, name string, line int) Token {
	if last.Kind == HTMLTag && !last.EndTag && last.Name == name {
		return last
	}
	return Token{Kind: HTMLTag, Name: name, ID: -1, Line: line}
}

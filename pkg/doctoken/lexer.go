package doctoken

import (
	"strconv"
	"strings"
)

// tabSize is the column width of a tab when computing list indents.
const tabSize = 4

// rcsKeywords are the RCS/CVS keywords recognised as $Keyword: value $.
var rcsKeywords = map[string]bool{
	"Author": true, "Date": true, "Header": true, "Id": true, "Locker": true,
	"Log": true, "Name": true, "RCSfile": true, "Revision": true,
	"Source": true, "State": true,
}

// optionCommands are the commands that accept a {..} or [..] option block
// written directly after the command name.
var optionCommands = map[string]bool{
	"code": true, "include": true, "includelineno": true, "includedoc": true,
	"dontinclude": true, "snippet": true, "snippetlineno": true,
	"snippetdoc": true, "image": true, "dotfile": true, "mscfile": true,
	"diafile": true, "htmlonly": true, "htmlinclude": true, "param": true,
	"tparam": true,
}

// urlPrefixes start a URL token.
var urlPrefixes = []string{"http://", "https://", "ftp://", "ftps://", "file://", "news:"}

// Lexer is the reference Source implementation. It tokenises comment text
// on demand, one token per call to Next, so mode switches take effect at the
// exact point the parser requests them.
type Lexer struct {
	src  string
	pos  int
	line int
	mode Mode

	pending []Token
	lastTag Token

	// lineStart is set when pos is at the first column of a line.
	lineStart bool

	insidePre     bool
	autoListDepth int
	javaLinkDepth int

	// inQuotedTitle is set while ModeRefTitle is inside "...".
	inQuotedTitle bool
}

var (
	_ Source          = (*Lexer)(nil)
	_ PreTracker      = (*Lexer)(nil)
	_ AutoListTracker = (*Lexer)(nil)
)

// NewLexer returns a Lexer in ModePara over text.
func NewLexer(text string) *Lexer {
	return &Lexer{src: text, line: 1, lineStart: true}
}

// SetMode implements Source.
func (l *Lexer) SetMode(m Mode) {
	l.mode = m
	l.inQuotedTitle = false
}

// Mode returns the current mode.
func (l *Lexer) Mode() Mode {
	return l.mode
}

// PushBackTag implements Source.
func (l *Lexer) PushBackTag(name string) {
	l.pending = append(l.pending, pushedBackTag(l.lastTag, name, l.line))
}

// Line implements Source.
func (l *Lexer) Line() int {
	return l.line
}

// SetInsidePre implements PreTracker.
func (l *Lexer) SetInsidePre(inside bool) {
	l.insidePre = inside
}

// StartAutoList implements AutoListTracker.
func (l *Lexer) StartAutoList() {
	l.autoListDepth++
}

// EndAutoList implements AutoListTracker.
func (l *Lexer) EndAutoList() {
	if l.autoListDepth > 0 {
		l.autoListDepth--
	}
}

// Tokens lexes text in ModePara until EOF. It is a convenience for tests
// and debugging; the parser drives a Lexer through Next.
func Tokens(text string) []Token {
	lx := NewLexer(text)
	var out []Token
	for {
		tok := lx.Next()
		if tok.Kind == EOF {
			return out
		}
		out = append(out, tok)
	}
}

// Next implements Source.
func (l *Lexer) Next() Token {
	if n := len(l.pending); n > 0 {
		tok := l.pending[n-1]
		l.pending = l.pending[:n-1]
		return tok
	}

	switch l.mode {
	case ModePara:
		return l.lexPara(false)
	case ModeTitle:
		return l.lexPara(true)
	case ModeFile:
		return l.lexArgument(true, false)
	case ModeLink, ModeInternalRef, ModeAnchor, ModeSetScope:
		return l.lexArgument(false, false)
	case ModeRef, ModeCite:
		return l.lexArgument(false, true)
	case ModeEmoji:
		return l.lexEmoji()
	case ModePattern, ModeSnippet:
		return l.lexRestOfLine()
	case ModeRefTitle:
		return l.lexRefTitle()
	case ModeParam:
		return l.lexParam()
	case ModeXRefItem:
		return l.lexXRefItem()
	case ModeSkipTitle:
		return l.lexSkipTitle()
	case ModeXMLCode:
		return l.lexVerbatim("</code>", false)
	default:
		if end, ok := verbatimEnd[l.mode]; ok {
			return l.lexVerbatim(end, true)
		}
		return l.lexPara(false)
	}
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) peek(offset int) byte {
	if l.pos+offset < len(l.src) {
		return l.src[l.pos+offset]
	}
	return 0
}

func (l *Lexer) token(kind Kind, line int) Token {
	return Token{Kind: kind, ID: -1, Line: line}
}

// advance moves pos to end, counting newlines on the way.
func (l *Lexer) advance(end int) {
	if end > len(l.src) {
		end = len(l.src)
	}
	l.line += strings.Count(l.src[l.pos:end], "\n")
	l.pos = end
}

// lexPara lexes running text. In title mode a newline ends the input
// without being consumed and no paragraph or list structure is produced.
func (l *Lexer) lexPara(title bool) Token {
	if l.eof() {
		return l.token(EOF, l.line)
	}
	if title && l.peek(0) == '\n' {
		return l.token(EOF, l.line)
	}

	if l.lineStart && !title && !l.insidePre {
		l.lineStart = false
		if tok, ok := l.tryListMarker(l.pos); ok {
			return tok
		}
	}
	l.lineStart = false

	ch := l.peek(0)
	switch {
	case ch == ' ' || ch == '\t' || ch == '\r':
		return l.lexBlank(title)
	case ch == '\n':
		return l.lexNewline()
	case ch == '\\' || ch == '@':
		if tok, ok := l.tryCommand(); ok {
			return tok
		}
	case ch == '{' && l.javaLinkStart() != "":
		return l.lexJavaLink()
	case ch == '}' && l.javaLinkDepth > 0:
		l.javaLinkDepth--
		line := l.line
		l.advance(l.pos + 1)
		tok := l.token(CommandBS, line)
		tok.Name = "endlink"
		return tok
	case ch == '<':
		if tok, ok := l.tryTag(); ok {
			return tok
		}
	case ch == '&':
		if tok, ok := l.trySymbol(); ok {
			return tok
		}
	case ch == '$':
		if tok, ok := l.tryRCSTag(); ok {
			return tok
		}
	case ch == '"' && title:
		l.advance(l.pos + 1)
		return l.lexPara(title)
	}

	return l.lexWord(title)
}

// lexBlank lexes a run of blanks, merging it with a following newline.
func (l *Lexer) lexBlank(title bool) Token {
	line := l.line
	start := l.pos
	end := l.pos
	for end < len(l.src) && isBlank(l.src[end]) {
		end++
	}
	if !title && !l.insidePre && strings.TrimSpace(l.src[end:]) == "" {
		l.advance(len(l.src))
		return l.token(EOF, line)
	}
	if end < len(l.src) && l.src[end] == '\n' && !title {
		l.advance(end)
		tok := l.lexNewline()
		if tok.Kind == Whitespace {
			tok.Chars = l.src[start:l.pos]
		}
		tok.Line = line
		return tok
	}
	l.advance(end)
	tok := l.token(Whitespace, line)
	tok.Chars = l.src[start:end]
	return tok
}

// lexNewline lexes a newline at pos. A following blank line produces
// NewPara, a following list marker produces ListItem or EndList, and
// otherwise the newline and the next line's indent become whitespace.
func (l *Lexer) lexNewline() Token {
	line := l.line
	start := l.pos

	if !l.insidePre && strings.TrimSpace(l.src[l.pos:]) == "" {
		l.advance(len(l.src))
		return l.token(EOF, line)
	}

	next := l.pos + 1
	if !l.insidePre {
		// Look for one or more blank lines.
		blankLines := 0
		scan := next
		for {
			eol := strings.IndexByte(l.src[scan:], '\n')
			if eol < 0 || strings.TrimSpace(l.src[scan:scan+eol]) != "" {
				break
			}
			scan += eol + 1
			blankLines++
		}
		if blankLines > 0 {
			l.advance(scan)
			l.lineStart = true
			tok := l.token(NewPara, line)
			tok.Indent = indentOf(l.src[scan:])
			return tok
		}

		if tok, ok := l.tryListMarker(next); ok {
			tok.Line = line + 1
			return tok
		}
	}

	end := next
	for end < len(l.src) && isBlank(l.src[end]) {
		end++
	}
	l.advance(end)
	tok := l.token(Whitespace, line)
	tok.Chars = l.src[start:end]
	return tok
}

// tryListMarker recognises an auto list item or end-of-list marker on the
// line starting at lineStart and consumes it, together with the text before
// it, on success.
func (l *Lexer) tryListMarker(lineStart int) (Token, bool) {
	i := lineStart
	for i < len(l.src) && isBlank(l.src[i]) {
		i++
	}
	indent := columnOf(l.src[lineStart:i])
	rest := l.src[i:]

	tok := Token{Kind: ListItem, ID: -1, Indent: indent}
	var width int
	switch {
	case strings.HasPrefix(rest, "-#") && followedByBlank(rest, 2):
		tok.IsEnumList = true
		width = 2
	case len(rest) > 0 && (rest[0] == '-' || rest[0] == '+' || rest[0] == '*') && followedByBlank(rest, 1):
		width = 1
	case len(rest) > 0 && isDigit(rest[0]):
		j := 0
		for j < len(rest) && isDigit(rest[j]) {
			j++
		}
		if j >= len(rest) || rest[j] != '.' || !followedByBlank(rest, j+1) {
			return Token{}, false
		}
		n, err := strconv.Atoi(rest[:j])
		if err != nil {
			return Token{}, false
		}
		tok.IsEnumList = true
		tok.ID = n
		width = j + 1
	case l.autoListDepth > 0 && len(rest) > 0 && rest[0] == '.':
		eol := strings.IndexByte(rest, '\n')
		if eol < 0 {
			eol = len(rest)
		}
		if strings.TrimSpace(rest[1:eol]) != "" {
			return Token{}, false
		}
		tok.Kind = EndList
		tok.Line = l.line
		l.advance(i + eol)
		return tok, true
	default:
		return Token{}, false
	}

	tok.Line = l.line
	end := i + width
	for end < len(l.src) && isBlank(l.src[end]) {
		end++
	}
	l.advance(end)
	return tok, true
}

// tryCommand lexes \name, @name, escapes, and \f formulas.
func (l *Lexer) tryCommand() (Token, bool) {
	line := l.line
	kind := CommandBS
	if l.peek(0) == '@' {
		kind = CommandAt
	}
	rest := l.src[l.pos+1:]

	if kind == CommandBS && len(rest) > 0 && rest[0] == 'f' && len(rest) > 1 {
		if tok, ok := l.tryFormula(line); ok {
			return tok, true
		}
	}

	for _, esc := range []string{"---", "--", "::"} {
		if strings.HasPrefix(rest, esc) {
			l.advance(l.pos + 1 + len(esc))
			tok := l.token(kind, line)
			tok.Name = esc
			return tok, true
		}
	}
	if len(rest) > 0 && strings.IndexByte(`\@<>&$#%|".+-=`, rest[0]) >= 0 {
		l.advance(l.pos + 2)
		tok := l.token(kind, line)
		tok.Name = rest[:1]
		return tok, true
	}

	n := 0
	for n < len(rest) && (isIdentChar(rest[n]) || (n > 0 && isDigit(rest[n]))) {
		n++
	}
	if n == 0 {
		return Token{}, false
	}
	name := rest[:n]
	if kind == CommandAt && !IsCommandName(name) {
		return Token{}, false
	}

	l.advance(l.pos + 1 + n)
	tok := l.token(kind, line)
	tok.Name = name

	if optionCommands[name] && !l.eof() {
		switch l.peek(0) {
		case '{':
			if end := strings.IndexByte(l.src[l.pos:], '}'); end > 0 {
				tok.Options = strings.TrimSpace(l.src[l.pos+1 : l.pos+end])
				l.advance(l.pos + end + 1)
			}
		case '[':
			if end := strings.IndexByte(l.src[l.pos:], ']'); end > 0 {
				tok.Options = strings.TrimSpace(l.src[l.pos+1 : l.pos+end])
				if name == "param" || name == "tparam" {
					tok.ParamDir = ParseParamDir(tok.Options)
				}
				l.advance(l.pos + end + 1)
			}
		}
	}
	return tok, true
}

// tryFormula lexes \f$..\f$, \f[..\f] and \f{env}{..\f}. The formula text
// is returned in Verb of a "form" command.
func (l *Lexer) tryFormula(line int) (Token, bool) {
	open := l.peek(2)
	var closer string
	switch open {
	case '$':
		closer = `\f$`
	case '[':
		closer = `\f]`
	case '{':
		closer = `\f}`
	default:
		return Token{}, false
	}
	bodyStart := l.pos + 3
	end := strings.Index(l.src[bodyStart:], closer)
	if end < 0 {
		return Token{}, false
	}
	tok := l.token(CommandBS, line)
	tok.Name = "form"
	switch open {
	case '$':
		tok.Verb = "$" + l.src[bodyStart:bodyStart+end] + "$"
	case '[':
		tok.Verb = `\[` + l.src[bodyStart:bodyStart+end] + `\]`
	default:
		tok.Verb = "{" + l.src[bodyStart:bodyStart+end]
	}
	l.advance(bodyStart + end + len(closer))
	return tok, true
}

func (l *Lexer) javaLinkStart() string {
	rest := l.src[l.pos:]
	for _, p := range []string{"{@linkplain", "{@link"} {
		if strings.HasPrefix(rest, p) && followedByBlank(rest, len(p)) {
			return p
		}
	}
	return ""
}

func (l *Lexer) lexJavaLink() Token {
	line := l.line
	p := l.javaLinkStart()
	l.advance(l.pos + len(p))
	l.javaLinkDepth++
	tok := l.token(CommandAt, line)
	tok.Name = "javalink"
	return tok
}

// tryTag lexes an HTML/XML tag or skips an HTML comment.
func (l *Lexer) tryTag() (Token, bool) {
	line := l.line
	rest := l.src[l.pos:]

	if strings.HasPrefix(rest, "<!--") {
		end := strings.Index(rest[4:], "-->")
		if end < 0 {
			return Token{}, false
		}
		l.advance(l.pos + 4 + end + 3)
		return l.lexPara(l.mode == ModeTitle), true
	}

	i := 1
	endTag := false
	if i < len(rest) && rest[i] == '/' {
		endTag = true
		i++
	}
	nameStart := i
	for i < len(rest) && (isAlnum(rest[i]) || rest[i] == ':' || rest[i] == '-' || rest[i] == '_') {
		i++
	}
	if i == nameStart || !isAlpha(rest[nameStart]) {
		return Token{}, false
	}
	name := rest[nameStart:i]

	attrs, emptyTag, n, ok := parseTagAttrs(rest[i:])
	if !ok {
		return Token{}, false
	}

	l.advance(l.pos + i + n)
	tok := l.token(HTMLTag, line)
	tok.Name = strings.ToLower(name)
	tok.EndTag = endTag
	tok.EmptyTag = emptyTag
	tok.Attribs = attrs
	l.lastTag = tok
	return tok, true
}

// parseTagAttrs parses attributes up to and including the closing '>'.
// It returns the attributes, whether the tag was self-closing, and the
// number of bytes consumed.
func parseTagAttrs(s string) (Attrs, bool, int, bool) {
	var attrs Attrs
	i := 0
	for {
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		if i >= len(s) {
			return nil, false, 0, false
		}
		switch {
		case s[i] == '>':
			return attrs, false, i + 1, true
		case s[i] == '/' && i+1 < len(s) && s[i+1] == '>':
			return attrs, true, i + 2, true
		case s[i] == '<':
			return nil, false, 0, false
		}

		nameStart := i
		for i < len(s) && !isSpace(s[i]) && s[i] != '=' && s[i] != '>' && s[i] != '/' {
			i++
		}
		if i == nameStart {
			return nil, false, 0, false
		}
		attr := Attr{Name: strings.ToLower(s[nameStart:i])}
		for i < len(s) && isBlank(s[i]) {
			i++
		}
		if i < len(s) && s[i] == '=' {
			i++
			for i < len(s) && isBlank(s[i]) {
				i++
			}
			if i < len(s) && (s[i] == '"' || s[i] == '\'') {
				q := s[i]
				end := strings.IndexByte(s[i+1:], q)
				if end < 0 {
					return nil, false, 0, false
				}
				attr.Value = s[i+1 : i+1+end]
				i += end + 2
			} else {
				valStart := i
				for i < len(s) && !isSpace(s[i]) && s[i] != '>' {
					i++
				}
				attr.Value = s[valStart:i]
			}
		}
		attrs = append(attrs, attr)
	}
}

// trySymbol lexes a character entity such as &copy; or &#169;.
func (l *Lexer) trySymbol() (Token, bool) {
	rest := l.src[l.pos:]
	end := strings.IndexByte(rest, ';')
	if end < 2 || end > 32 {
		return Token{}, false
	}
	body := rest[1:end]
	if body[0] == '#' {
		for _, c := range []byte(body[1:]) {
			if !isAlnum(c) {
				return Token{}, false
			}
		}
	} else {
		for _, c := range []byte(body) {
			if !isAlnum(c) {
				return Token{}, false
			}
		}
	}
	tok := l.token(Symbol, l.line)
	tok.Name = rest[:end+1]
	l.advance(l.pos + end + 1)
	return tok, true
}

// tryRCSTag lexes $Keyword: value $.
func (l *Lexer) tryRCSTag() (Token, bool) {
	rest := l.src[l.pos:]
	colon := strings.IndexByte(rest, ':')
	if colon < 2 || !rcsKeywords[rest[1:colon]] {
		return Token{}, false
	}
	end := strings.IndexByte(rest[colon+1:], '$')
	if end < 0 || strings.ContainsRune(rest[colon+1:colon+1+end], '\n') {
		return Token{}, false
	}
	tok := l.token(RCSTag, l.line)
	tok.Name = rest[1:colon]
	tok.Text = strings.TrimSpace(rest[colon+1 : colon+1+end])
	l.advance(l.pos + colon + 1 + end + 1)
	return tok, true
}

// lexWord lexes a word, URL, e-mail address or linked word.
func (l *Lexer) lexWord(title bool) Token {
	line := l.line
	start := l.pos
	rest := l.src[start:]

	for _, prefix := range urlPrefixes {
		if strings.HasPrefix(strings.ToLower(rest), prefix) && len(rest) > len(prefix) {
			end := l.wordEnd(start, false)
			end = trimTrailing(l.src, start, end, ".,;:!?)")
			l.advance(end)
			tok := l.token(URL, line)
			tok.Name = l.src[start:end]
			return tok
		}
	}

	if rest[0] == '%' && len(rest) > 1 && isIdentChar(rest[1]) {
		end := l.wordEnd(start+1, title)
		end = trimTrailing(l.src, start+1, end, ".,;:!?)")
		l.advance(end)
		tok := l.token(Word, line)
		tok.Name = l.src[start+1 : end]
		return tok
	}

	end := l.wordEnd(start, title)
	if end == start {
		// A lone special character that did not start a construct.
		end = start + 1
	}
	end = trimTrailing(l.src, start, end, ".,;:!?")
	if end-start > 1 && l.src[end-1] == ')' && !strings.Contains(l.src[start:end], "(") {
		end--
	}
	if end-start > 1 && l.src[start] == '(' {
		end = start + 1
	}

	word := l.src[start:end]
	l.advance(end)

	if title {
		for _, opt := range []string{"width=", "height="} {
			if strings.HasPrefix(word, opt) && len(word) > len(opt) {
				tok := l.token(Word, line)
				tok.Name = strings.TrimSuffix(opt, "=")
				tok.Chars = word[len(opt):]
				return tok
			}
		}
	}

	if isEmail(word) {
		tok := l.token(URL, line)
		tok.Name = word
		tok.IsEmail = true
		return tok
	}

	kind := Word
	if isLinkedWord(word) {
		kind = LinkedWord
	}
	tok := l.token(kind, line)
	tok.Name = word
	return tok
}

// wordEnd returns the end of the word starting at start.
func (l *Lexer) wordEnd(start int, title bool) int {
	i := start
	for i < len(l.src) {
		c := l.src[i]
		if isSpace(c) {
			break
		}
		if i > start {
			if c == '\\' && i+1 < len(l.src) && (isAlpha(l.src[i+1]) || strings.IndexByte(`\@<>&$#%|".+-=:`, l.src[i+1]) >= 0) {
				break
			}
			if c == '@' && i+1 < len(l.src) && !isAlnum(l.src[i-1]) && isAlpha(l.src[i+1]) {
				break
			}
			if c == '<' && (startsKnownTag(l.src[i:]) || strings.HasPrefix(l.src[i:], "<!--")) {
				break
			}
			if c == '&' && strings.IndexByte(l.src[i:], ';') > 1 {
				break
			}
			if c == '}' && l.javaLinkDepth > 0 {
				break
			}
		}
		if title && c == '"' {
			break
		}
		i++
	}
	return i
}

// lexArgument lexes a single command argument word. At a newline or the
// end of the input it returns EOF without consuming the newline.
func (l *Lexer) lexArgument(allowQuotes, trimPunct bool) Token {
	l.skipBlanks()
	line := l.line
	if l.eof() || l.peek(0) == '\n' {
		return l.token(EOF, line)
	}

	start := l.pos
	if allowQuotes && l.peek(0) == '"' {
		end := strings.IndexByte(l.src[start+1:], '"')
		if end >= 0 && !strings.ContainsRune(l.src[start+1:start+1+end], '\n') {
			l.advance(start + 1 + end + 1)
			tok := l.token(Word, line)
			tok.Name = l.src[start+1 : start+1+end]
			return tok
		}
	}

	end := start
	for end < len(l.src) && !isSpace(l.src[end]) && (l.javaLinkDepth == 0 || l.src[end] != '}') {
		end++
	}
	if trimPunct {
		end = trimTrailing(l.src, start, end, ".,;:!?)\"")
	}
	l.advance(end)
	tok := l.token(Word, line)
	tok.Name = l.src[start:end]
	return tok
}

func (l *Lexer) lexEmoji() Token {
	tok := l.lexArgument(false, false)
	if tok.Kind == Word {
		name := strings.Trim(tok.Name, ":")
		tok.Name = ":" + name + ":"
	}
	return tok
}

// lexRestOfLine returns the trimmed rest of the line as one word.
func (l *Lexer) lexRestOfLine() Token {
	l.skipBlanks()
	line := l.line
	eol := strings.IndexByte(l.src[l.pos:], '\n')
	if eol < 0 {
		eol = len(l.src) - l.pos
	}
	text := strings.TrimSpace(l.src[l.pos : l.pos+eol])
	if text == "" {
		return l.token(EOF, line)
	}
	l.advance(l.pos + eol)
	tok := l.token(Word, line)
	tok.Name = text
	return tok
}

// lexRefTitle lexes an optional "quoted" title. Without an opening quote it
// returns EOF and consumes nothing.
func (l *Lexer) lexRefTitle() Token {
	line := l.line
	if !l.inQuotedTitle {
		i := l.pos
		for i < len(l.src) && isBlank(l.src[i]) {
			i++
		}
		if i >= len(l.src) || l.src[i] != '"' {
			return l.token(EOF, line)
		}
		l.advance(i + 1)
		l.inQuotedTitle = true
	}

	if l.eof() || l.peek(0) == '\n' {
		l.inQuotedTitle = false
		return l.token(EOF, line)
	}
	if l.peek(0) == '"' {
		l.advance(l.pos + 1)
		l.inQuotedTitle = false
		return l.token(EOF, line)
	}
	start := l.pos
	if isBlank(l.peek(0)) {
		l.skipBlanks()
		tok := l.token(Whitespace, line)
		tok.Chars = l.src[start:l.pos]
		return tok
	}
	end := start
	for end < len(l.src) && !isSpace(l.src[end]) && l.src[end] != '"' {
		end++
	}
	l.advance(end)
	tok := l.token(Word, line)
	tok.Name = l.src[start:end]
	return tok
}

// lexParam lexes comma separated parameter names. The first non-name
// returns Whitespace and leaves any newline in place.
func (l *Lexer) lexParam() Token {
	line := l.line
	if l.peek(0) == ',' {
		l.advance(l.pos + 1)
		l.skipBlanks()
	}
	if l.eof() {
		return l.token(EOF, line)
	}
	c := l.peek(0)
	if isSpace(c) {
		start := l.pos
		l.skipBlanks()
		if l.pos < len(l.src) && l.src[l.pos] == ',' {
			return l.lexParam()
		}
		tok := l.token(Whitespace, line)
		tok.Chars = l.src[start:l.pos]
		return tok
	}
	start := l.pos
	end := start
	for end < len(l.src) && !isSpace(l.src[end]) && l.src[end] != ',' {
		end++
	}
	l.advance(end)
	tok := l.token(Word, line)
	tok.Name = l.src[start:end]
	return tok
}

// lexXRefItem lexes a list key followed by optional "heading" and
// "list title" strings, returned in Text and Chars.
func (l *Lexer) lexXRefItem() Token {
	tok := l.lexArgument(false, false)
	if tok.Kind != Word {
		return tok
	}
	for _, dst := range []*string{&tok.Text, &tok.Chars} {
		i := l.pos
		for i < len(l.src) && isBlank(l.src[i]) {
			i++
		}
		if i >= len(l.src) || l.src[i] != '"' {
			break
		}
		end := strings.IndexByte(l.src[i+1:], '"')
		if end < 0 {
			break
		}
		*dst = l.src[i+1 : i+1+end]
		l.advance(i + 1 + end + 1)
	}
	return tok
}

// lexSkipTitle consumes the rest of the line.
func (l *Lexer) lexSkipTitle() Token {
	line := l.line
	start := l.pos
	eol := strings.IndexByte(l.src[l.pos:], '\n')
	if eol < 0 {
		eol = len(l.src) - l.pos
	}
	l.advance(l.pos + eol)
	tok := l.token(Whitespace, line)
	tok.Chars = l.src[start:l.pos]
	return tok
}

// lexVerbatim reads raw text up to end (a command name when isCommand,
// otherwise a literal marker). A missing marker returns EOF carrying the
// remaining text.
func (l *Lexer) lexVerbatim(end string, isCommand bool) Token {
	line := l.line
	start := l.pos
	var idx, markLen int
	if isCommand {
		idx, markLen = findCommand(l.src[start:], end)
	} else {
		idx = strings.Index(l.src[start:], end)
		markLen = len(end)
	}
	if idx < 0 {
		l.advance(len(l.src))
		tok := l.token(EOF, line)
		tok.Verb = l.src[start:]
		return tok
	}
	tok := l.token(Word, line)
	tok.Name = end
	tok.Verb = l.src[start : start+idx]
	l.advance(start + idx + markLen)
	return tok
}

// findCommand returns the offset and length of the first \name or @name
// in s that is not a prefix of a longer identifier.
func findCommand(s, name string) (int, int) {
	off := 0
	for {
		idx := strings.IndexAny(s[off:], `\@`)
		if idx < 0 {
			return -1, 0
		}
		at := off + idx
		rest := s[at+1:]
		if strings.HasPrefix(rest, name) && (len(rest) == len(name) || !isIdentChar(rest[len(name)])) {
			return at, len(name) + 1
		}
		off = at + 1
	}
}

func (l *Lexer) skipBlanks() {
	for l.pos < len(l.src) && isBlank(l.src[l.pos]) {
		l.pos++
	}
}

// startsKnownTag reports whether s starts with <name or </name for a name
// in the tag vocabulary.
func startsKnownTag(s string) bool {
	i := 1
	if i < len(s) && s[i] == '/' {
		i++
	}
	j := i
	for j < len(s) && isAlnum(s[j]) {
		j++
	}
	if j == i || j >= len(s) {
		return false
	}
	if s[j] != '>' && s[j] != '/' && !isSpace(s[j]) {
		return false
	}
	return LookupTag(s[i:j]) != TagUnknown
}

// trimTrailing moves end back over trailing characters in set.
func trimTrailing(s string, start, end int, set string) int {
	for end-start > 1 && strings.IndexByte(set, s[end-1]) >= 0 {
		end--
	}
	return end
}

// isLinkedWord reports whether word looks like a symbol reference:
// a scoped name, a #member reference, or a function call.
func isLinkedWord(word string) bool {
	if strings.Contains(word, "::") {
		return len(strings.Trim(word, ":")) > 0
	}
	if i := strings.IndexByte(word, '#'); i >= 0 && i+1 < len(word) && isIdentChar(word[i+1]) {
		return true
	}
	if open := strings.IndexByte(word, '('); open > 0 && strings.HasSuffix(word, ")") {
		for _, c := range []byte(word[:open]) {
			if !isIdentChar(c) && !isDigit(c) && c != '~' {
				return false
			}
		}
		return true
	}
	return false
}

func isEmail(word string) bool {
	at := strings.IndexByte(word, '@')
	if at < 1 || at != strings.LastIndexByte(word, '@') {
		return false
	}
	domain := word[at+1:]
	dot := strings.IndexByte(domain, '.')
	if dot < 1 || dot == len(domain)-1 {
		return false
	}
	for _, c := range []byte(word) {
		if !isAlnum(c) && strings.IndexByte("._+-@", c) < 0 {
			return false
		}
	}
	return true
}

// indentOf returns the column of the first non-blank character of s.
func indentOf(s string) int {
	i := 0
	for i < len(s) && isBlank(s[i]) {
		i++
	}
	return columnOf(s[:i])
}

// columnOf returns the display width of a run of blanks.
func columnOf(blanks string) int {
	col := 0
	for _, c := range []byte(blanks) {
		if c == '\t' {
			col += tabSize - col%tabSize
		} else {
			col++
		}
	}
	return col
}

func followedByBlank(s string, i int) bool {
	return i < len(s) && isBlank(s[i])
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

func isSpace(c byte) bool {
	return isBlank(c) || c == '\n'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlnum(c byte) bool {
	return isAlpha(c) || isDigit(c)
}

func isIdentChar(c byte) bool {
	return isAlpha(c) || c == '_' || c >= 0x80
}

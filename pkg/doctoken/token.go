// Package doctoken defines the token stream consumed by the documentation
// comment parser, the command and HTML tag vocabularies, and a reference
// lexer that produces tokens from raw comment text.
package doctoken

import (
	"fmt"
	"strings"
)

// Kind classifies a token.
type Kind uint8

// Token kinds.
const (
	EOF Kind = iota
	Word
	LinkedWord
	Whitespace
	ListItem
	EndList
	CommandAt
	HTMLTag
	Symbol
	NewPara
	RCSTag
	URL
	CommandBS
)

var kindNames = [...]string{
	EOF:        "end of input",
	Word:       "word",
	LinkedWord: "linked word",
	Whitespace: "whitespace",
	ListItem:   "list item",
	EndList:    "end of list marker",
	CommandAt:  "command",
	HTMLTag:    "html tag",
	Symbol:     "symbol",
	NewPara:    "new paragraph",
	RCSTag:     "rcs tag",
	URL:        "url",
	CommandBS:  "command",
}

// String returns the human-readable token kind used in diagnostics.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("token(%d)", uint8(k))
}

// IsCommand reports whether k is a command token (either prefix).
func (k Kind) IsCommand() bool {
	return k == CommandAt || k == CommandBS
}

// ParamDir is the direction annotation of a \param command.
type ParamDir uint8

// Parameter directions.
const (
	DirUnspecified ParamDir = 0
	DirIn          ParamDir = 1
	DirOut         ParamDir = 2
	DirInOut       ParamDir = 3
)

// String returns the direction as written in the source ("in", "out", "in,out").
func (d ParamDir) String() string {
	switch d {
	case DirIn:
		return "in"
	case DirOut:
		return "out"
	case DirInOut:
		return "in,out"
	default:
		return ""
	}
}

// ParseParamDir parses the bracket option of a \param command.
func ParseParamDir(opt string) ParamDir {
	var d ParamDir
	for _, part := range strings.Split(strings.ToLower(opt), ",") {
		switch strings.TrimSpace(part) {
		case "in":
			d |= DirIn
		case "out":
			d |= DirOut
		}
	}
	return d
}

// Attr is one HTML tag attribute.
type Attr struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// Attrs is an ordered HTML attribute list.
type Attrs []Attr

// Get returns the value of the first attribute named name (case-insensitive).
func (a Attrs) Get(name string) (string, bool) {
	for _, attr := range a {
		if strings.EqualFold(attr.Name, name) {
			return attr.Value, true
		}
	}
	return "", false
}

// Without returns a copy of the list with every attribute named name removed.
func (a Attrs) Without(name string) Attrs {
	out := make(Attrs, 0, len(a))
	for _, attr := range a {
		if !strings.EqualFold(attr.Name, name) {
			out = append(out, attr)
		}
	}
	return out
}

// String renders the list back to tag syntax, with a leading space per attribute.
func (a Attrs) String() string {
	var sb strings.Builder
	for _, attr := range a {
		sb.WriteByte(' ')
		sb.WriteString(attr.Name)
		if attr.Value != "" {
			sb.WriteString(`="`)
			sb.WriteString(attr.Value)
			sb.WriteByte('"')
		}
	}
	return sb.String()
}

// Token is a single lexical unit of a documentation comment.
type Token struct {
	Kind Kind

	// Name is the word text, command name, tag name, symbol name or URL.
	Name string

	// Text is the value of an RCS tag.
	Text string

	// Chars holds whitespace characters, or the value of a width=/height= option.
	Chars string

	// Verb is the raw body of a verbatim section.
	Verb string

	// Options is the {..} or [..] option text written directly after a command.
	Options string

	// Indent is the column of a list item or end-of-list marker.
	Indent int

	// IsEnumList marks numbered list items.
	IsEnumList bool

	// ID is an explicit list item number, formula number or cross-reference
	// item id; -1 when absent.
	ID int

	// Attribs are the attributes of an HTML tag.
	Attribs Attrs

	// EndTag marks </tag>; EmptyTag marks <tag/>.
	EndTag   bool
	EmptyTag bool

	// IsEmail marks URL tokens holding an e-mail address.
	IsEmail bool

	// ParamDir is the [in]/[out] annotation of a \param command.
	ParamDir ParamDir

	// Line is the 1-based source line the token started on.
	Line int
}

// String renders a token for diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case Word, LinkedWord, URL, Symbol:
		return fmt.Sprintf("%s '%s'", t.Kind, t.Name)
	case CommandAt:
		return "@" + t.Name
	case CommandBS:
		return "\\" + t.Name
	case HTMLTag:
		if t.EndTag {
			return "</" + t.Name + ">"
		}
		return "<" + t.Name + ">"
	default:
		return t.Kind.String()
	}
}

// CommandPrefix returns "@" or "\" depending on how a command was written.
func (t Token) CommandPrefix() string {
	if t.Kind == CommandAt {
		return "@"
	}
	return "\\"
}

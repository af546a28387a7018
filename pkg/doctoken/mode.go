package doctoken

// Mode selects how a Source interprets the following input.
//
// The parser switches modes before reading command arguments; the source
// stays in a mode until told otherwise.
type Mode uint8

// Lexer modes.
const (
	// ModePara is the default mode for running paragraph text.
	ModePara Mode = iota

	// ModeTitle reads the rest of the current line as title tokens and
	// recognises width=/height= size options.
	ModeTitle

	// ModeFile reads a single (optionally quoted) file name.
	ModeFile

	// ModePattern reads the rest of the current line as one word.
	ModePattern

	// ModeLink reads a single link target.
	ModeLink

	// ModeRef reads a single reference target, trailing punctuation excluded.
	ModeRef

	// ModeRefTitle reads an optional "quoted" reference title.
	ModeRefTitle

	// ModeInternalRef reads an internal reference target.
	ModeInternalRef

	// ModeAnchor reads an anchor or section identifier.
	ModeAnchor

	// ModeCite reads a bibliography key.
	ModeCite

	// ModeEmoji reads an emoji name, with or without surrounding colons.
	ModeEmoji

	// ModeParam reads comma separated parameter names.
	ModeParam

	// ModeXRefItem reads a cross-reference list key.
	ModeXRefItem

	// ModeSkipTitle consumes the rest of the current line.
	ModeSkipTitle

	// ModeSetScope reads a scope name.
	ModeSetScope

	// ModeSnippet reads the rest of the line as a snippet block id.
	ModeSnippet

	// Verbatim modes read raw text up to the matching end command.
	ModeCode
	ModeXMLCode
	ModeVerbatim
	ModeHTMLOnly
	ModeManOnly
	ModeRTFOnly
	ModeLatexOnly
	ModeXMLOnly
	ModeDocbookOnly
	ModeDot
	ModeMsc
	ModePlantUML
)

var modeNames = [...]string{
	ModePara:        "para",
	ModeTitle:       "title",
	ModeFile:        "file",
	ModePattern:     "pattern",
	ModeLink:        "link",
	ModeRef:         "ref",
	ModeRefTitle:    "reftitle",
	ModeInternalRef: "internalref",
	ModeAnchor:      "anchor",
	ModeCite:        "cite",
	ModeEmoji:       "emoji",
	ModeParam:       "param",
	ModeXRefItem:    "xrefitem",
	ModeSkipTitle:   "skiptitle",
	ModeSetScope:    "setscope",
	ModeSnippet:     "snippet",
	ModeCode:        "code",
	ModeXMLCode:     "xmlcode",
	ModeVerbatim:    "verbatim",
	ModeHTMLOnly:    "htmlonly",
	ModeManOnly:     "manonly",
	ModeRTFOnly:     "rtfonly",
	ModeLatexOnly:   "latexonly",
	ModeXMLOnly:     "xmlonly",
	ModeDocbookOnly: "docbookonly",
	ModeDot:         "dot",
	ModeMsc:         "msc",
	ModePlantUML:    "plantuml",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// verbatimEnd maps each verbatim mode to the command that terminates it.
var verbatimEnd = map[Mode]string{
	ModeCode:        "endcode",
	ModeVerbatim:    "endverbatim",
	ModeHTMLOnly:    "endhtmlonly",
	ModeManOnly:     "endmanonly",
	ModeRTFOnly:     "endrtfonly",
	ModeLatexOnly:   "endlatexonly",
	ModeXMLOnly:     "endxmlonly",
	ModeDocbookOnly: "enddocbookonly",
	ModeDot:         "enddot",
	ModeMsc:         "endmsc",
	ModePlantUML:    "enduml",
}

// IsVerbatim reports whether m reads raw text up to an end marker.
func (m Mode) IsVerbatim() bool {
	if m == ModeXMLCode {
		return true
	}
	_, ok := verbatimEnd[m]
	return ok
}

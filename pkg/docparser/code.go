package docparser

// Code reports why a node parser stopped consuming tokens. A parser that
// stops on a token its caller must handle leaves that token in the parser's
// current-token slot.
type Code uint8

// Control codes.
const (
	// CodeOK means the node finished normally.
	CodeOK Code = iota

	// CodeEOF means the token source ran out.
	CodeEOF

	// CodeNewPara, CodeListItem and CodeEndList mirror the paragraph
	// break, auto list item and end-of-list tokens.
	CodeNewPara
	CodeListItem
	CodeEndList

	// CodeNextItem and CodeCloseList are raised by <li>, \li, <item>,
	// </ul> and </ol>, never by auto list markers.
	CodeNextItem
	CodeCloseList

	// CodeSimpleSec asks an enclosing section to start the simple section
	// whose command name is held in the parser's pending slot.
	CodeSimpleSec

	// Section boundaries, one per level.
	CodeSection
	CodeSubsection
	CodeSubsubsection
	CodeParagraph

	CodeInternal
	CodeEndInternal

	CodeTableRow
	CodeTableCell
	CodeTableHCell
	CodeEndTable

	CodeDescTitle
	CodeDescData
	CodeEndDesc

	CodeEndBlockQuote
	CodeEndParBlock
	CodeEndDiv

	// CodeCloseXML is returned for the end tag of an XML documentation
	// element.
	CodeCloseXML

	// CodeRedispatch means the current token was read but not consumed and
	// must be dispatched again by the caller.
	CodeRedispatch
)

var codeNames = [...]string{
	CodeOK:            "ok",
	CodeEOF:           "eof",
	CodeNewPara:       "newpara",
	CodeListItem:      "listitem",
	CodeEndList:       "endlist",
	CodeNextItem:      "nextitem",
	CodeCloseList:     "closelist",
	CodeSimpleSec:     "simplesec",
	CodeSection:       "section",
	CodeSubsection:    "subsection",
	CodeSubsubsection: "subsubsection",
	CodeParagraph:     "paragraph",
	CodeInternal:      "internal",
	CodeEndInternal:   "endinternal",
	CodeTableRow:      "tablerow",
	CodeTableCell:     "tablecell",
	CodeTableHCell:    "tablehcell",
	CodeEndTable:      "endtable",
	CodeDescTitle:     "desctitle",
	CodeDescData:      "descdata",
	CodeEndDesc:       "enddesc",
	CodeEndBlockQuote: "endblockquote",
	CodeEndParBlock:   "endparblock",
	CodeEndDiv:        "enddiv",
	CodeCloseXML:      "closexml",
	CodeRedispatch:    "redispatch",
}

func (c Code) String() string {
	if int(c) < len(codeNames) {
		return codeNames[c]
	}
	return "unknown"
}

// isSectionBoundary reports whether c ends the paragraphs of a section.
func (c Code) isSectionBoundary() bool {
	switch c {
	case CodeSection, CodeSubsection, CodeSubsubsection, CodeParagraph:
		return true
	default:
		return false
	}
}

// sectionLevel returns the level a section boundary opens.
func (c Code) sectionLevel() int {
	switch c {
	case CodeSection:
		return 1
	case CodeSubsection:
		return 2
	case CodeSubsubsection:
		return 3
	case CodeParagraph:
		return 4
	default:
		return 0
	}
}

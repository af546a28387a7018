package doctoken

// Command identifies a documentation command such as \param or @code.
type Command uint16

// Documentation commands. CmdUnknown is returned for names outside the
// vocabulary.
const (
	CmdUnknown Command = iota

	// Inline styles.
	CmdEmphasis
	CmdBold
	CmdCode

	// Escaped characters.
	CmdBSlash
	CmdAt
	CmdLess
	CmdGreater
	CmdAmp
	CmdDollar
	CmdHash
	CmdPercent
	CmdPipe
	CmdQuote
	CmdPunct
	CmdDColon
	CmdPlus
	CmdMinus
	CmdEqual
	CmdNDash
	CmdMDash

	// Simple sections.
	CmdAttention
	CmdAuthor
	CmdAuthors
	CmdCopyright
	CmdDate
	CmdInvariant
	CmdNote
	CmdPar
	CmdPost
	CmdPre
	CmdRemark
	CmdReturn
	CmdSa
	CmdSince
	CmdVersion
	CmdWarning

	// Parameter sections.
	CmdParam
	CmdTParam
	CmdRetVal
	CmdException

	// Cross-reference lists.
	CmdXRefItem

	// Structure.
	CmdSection
	CmdSubsection
	CmdSubsubsection
	CmdParagraph
	CmdInternal
	CmdEndInternal
	CmdParBlock
	CmdEndParBlock
	CmdLi
	CmdLineBreak

	// Verbatim blocks.
	CmdStartCode
	CmdEndCode
	CmdVerbatim
	CmdEndVerbatim
	CmdHTMLOnly
	CmdEndHTMLOnly
	CmdManOnly
	CmdEndManOnly
	CmdRTFOnly
	CmdEndRTFOnly
	CmdLatexOnly
	CmdEndLatexOnly
	CmdXMLOnly
	CmdEndXMLOnly
	CmdDocbookOnly
	CmdEndDocbookOnly
	CmdDot
	CmdEndDot
	CmdMsc
	CmdEndMsc
	CmdStartUML
	CmdEndUML

	// Anchors, links and references.
	CmdAnchor
	CmdAnchorName
	CmdLink
	CmdJavaLink
	CmdEndLink
	CmdRef
	CmdSubpage
	CmdInternalRef
	CmdSecRefList
	CmdSecRefItem
	CmdEndSecRefList
	CmdCite
	CmdEmoji
	CmdAddIndex
	CmdSetScope

	// Includes and include operators.
	CmdInclude
	CmdIncludeLineno
	CmdIncludeDoc
	CmdDontInclude
	CmdVerbInclude
	CmdHTMLInclude
	CmdLatexInclude
	CmdRTFInclude
	CmdManInclude
	CmdXMLInclude
	CmdDocbookInclude
	CmdSnippet
	CmdSnippetLineno
	CmdSnippetDoc
	CmdLine
	CmdSkip
	CmdSkipLine
	CmdUntil

	// Images and diagrams.
	CmdImage
	CmdDotFile
	CmdMscFile
	CmdDiaFile

	// Formulas.
	CmdForm

	// Documentation copying.
	CmdCopyDoc
	CmdCopyBrief
	CmdCopyDetails
	CmdInheritDoc

	// Accepted and ignored.
	CmdSortID
	CmdForceOutput
)

var commandNames = map[string]Command{
	"a":  CmdEmphasis,
	"e":  CmdEmphasis,
	"em": CmdEmphasis,
	"b":  CmdBold,
	"c":  CmdCode,
	"p":  CmdCode,

	"\\":  CmdBSlash,
	"@":   CmdAt,
	"<":   CmdLess,
	">":   CmdGreater,
	"&":   CmdAmp,
	"$":   CmdDollar,
	"#":   CmdHash,
	"%":   CmdPercent,
	"|":   CmdPipe,
	`"`:   CmdQuote,
	".":   CmdPunct,
	"::":  CmdDColon,
	"+":   CmdPlus,
	"-":   CmdMinus,
	"=":   CmdEqual,
	"--":  CmdNDash,
	"---": CmdMDash,

	"attention": CmdAttention,
	"author":    CmdAuthor,
	"authors":   CmdAuthors,
	"copyright": CmdCopyright,
	"date":      CmdDate,
	"invariant": CmdInvariant,
	"note":      CmdNote,
	"par":       CmdPar,
	"post":      CmdPost,
	"pre":       CmdPre,
	"remark":    CmdRemark,
	"remarks":   CmdRemark,
	"return":    CmdReturn,
	"returns":   CmdReturn,
	"result":    CmdReturn,
	"sa":        CmdSa,
	"see":       CmdSa,
	"since":     CmdSince,
	"version":   CmdVersion,
	"warning":   CmdWarning,

	"param":     CmdParam,
	"tparam":    CmdTParam,
	"retval":    CmdRetVal,
	"exception": CmdException,
	"throw":     CmdException,
	"throws":    CmdException,

	"xrefitem":   CmdXRefItem,
	"todo":       CmdXRefItem,
	"test":       CmdXRefItem,
	"bug":        CmdXRefItem,
	"deprecated": CmdXRefItem,

	"section":       CmdSection,
	"subsection":    CmdSubsection,
	"subsubsection": CmdSubsubsection,
	"paragraph":     CmdParagraph,
	"internal":      CmdInternal,
	"endinternal":   CmdEndInternal,
	"parblock":      CmdParBlock,
	"endparblock":   CmdEndParBlock,
	"li":            CmdLi,
	"arg":           CmdLi,
	"n":             CmdLineBreak,

	"code":           CmdStartCode,
	"endcode":        CmdEndCode,
	"verbatim":       CmdVerbatim,
	"endverbatim":    CmdEndVerbatim,
	"htmlonly":       CmdHTMLOnly,
	"endhtmlonly":    CmdEndHTMLOnly,
	"manonly":        CmdManOnly,
	"endmanonly":     CmdEndManOnly,
	"rtfonly":        CmdRTFOnly,
	"endrtfonly":     CmdEndRTFOnly,
	"latexonly":      CmdLatexOnly,
	"endlatexonly":   CmdEndLatexOnly,
	"xmlonly":        CmdXMLOnly,
	"endxmlonly":     CmdEndXMLOnly,
	"docbookonly":    CmdDocbookOnly,
	"enddocbookonly": CmdEndDocbookOnly,
	"dot":            CmdDot,
	"enddot":         CmdEndDot,
	"msc":            CmdMsc,
	"endmsc":         CmdEndMsc,
	"startuml":       CmdStartUML,
	"enduml":         CmdEndUML,

	"anchor":        CmdAnchor,
	"anchorname":    CmdAnchorName,
	"link":          CmdLink,
	"javalink":      CmdJavaLink,
	"endlink":       CmdEndLink,
	"ref":           CmdRef,
	"subpage":       CmdSubpage,
	"_internalref":  CmdInternalRef,
	"secreflist":    CmdSecRefList,
	"refitem":       CmdSecRefItem,
	"endsecreflist": CmdEndSecRefList,
	"cite":          CmdCite,
	"emoji":         CmdEmoji,
	"addindex":      CmdAddIndex,
	"_setscope":     CmdSetScope,

	"include":        CmdInclude,
	"includelineno":  CmdIncludeLineno,
	"includedoc":     CmdIncludeDoc,
	"dontinclude":    CmdDontInclude,
	"verbinclude":    CmdVerbInclude,
	"htmlinclude":    CmdHTMLInclude,
	"latexinclude":   CmdLatexInclude,
	"rtfinclude":     CmdRTFInclude,
	"maninclude":     CmdManInclude,
	"xmlinclude":     CmdXMLInclude,
	"docbookinclude": CmdDocbookInclude,
	"snippet":        CmdSnippet,
	"snippetlineno":  CmdSnippetLineno,
	"snippetdoc":     CmdSnippetDoc,
	"line":           CmdLine,
	"skip":           CmdSkip,
	"skipline":       CmdSkipLine,
	"until":          CmdUntil,

	"image":   CmdImage,
	"dotfile": CmdDotFile,
	"mscfile": CmdMscFile,
	"diafile": CmdDiaFile,

	"form": CmdForm,

	"copydoc":     CmdCopyDoc,
	"copybrief":   CmdCopyBrief,
	"copydetails": CmdCopyDetails,
	"inheritdoc":  CmdInheritDoc,

	"sortid":       CmdSortID,
	"force_output": CmdForceOutput,
}

// LookupCommand maps a command name (without its \ or @ prefix) to its id.
func LookupCommand(name string) Command {
	if c, ok := commandNames[name]; ok {
		return c
	}
	return CmdUnknown
}

// IsCommandName reports whether name is part of the vocabulary.
func IsCommandName(name string) bool {
	_, ok := commandNames[name]
	return ok
}

// IsSimpleSect reports whether c opens a simple or parameter section, the
// commands that close an enclosing section of the same family.
func (c Command) IsSimpleSect() bool {
	switch c {
	case CmdAttention, CmdAuthor, CmdAuthors, CmdCopyright, CmdDate,
		CmdInvariant, CmdNote, CmdPar, CmdPost, CmdPre, CmdRemark, CmdReturn,
		CmdSa, CmdSince, CmdVersion, CmdWarning,
		CmdParam, CmdTParam, CmdRetVal, CmdException, CmdXRefItem:
		return true
	default:
		return false
	}
}

// IsEscape reports whether c stands for a single escaped character.
func (c Command) IsEscape() bool {
	return c >= CmdBSlash && c <= CmdMDash
}

// EscapedText returns the literal text of an escape command.
func (c Command) EscapedText() string {
	switch c {
	case CmdBSlash:
		return "\\"
	case CmdAt:
		return "@"
	case CmdLess:
		return "<"
	case CmdGreater:
		return ">"
	case CmdAmp:
		return "&"
	case CmdDollar:
		return "$"
	case CmdHash:
		return "#"
	case CmdPercent:
		return "%"
	case CmdPipe:
		return "|"
	case CmdQuote:
		return `"`
	case CmdPunct:
		return "."
	case CmdDColon:
		return "::"
	case CmdPlus:
		return "+"
	case CmdMinus:
		return "-"
	case CmdEqual:
		return "="
	case CmdNDash:
		return "--"
	case CmdMDash:
		return "---"
	default:
		return ""
	}
}

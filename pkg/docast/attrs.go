package docast

import "github.com/copperspice/doxypress-sub002/pkg/doctoken"

// Style is an inline style toggled by a StyleChange marker.
type Style uint8

// Inline styles.
const (
	StyleBold Style = iota
	StyleItalic
	StyleCode
	StyleCenter
	StyleSmall
	StyleSubscript
	StyleSuperscript
	StylePreformatted
	StyleDiv
	StyleSpan
	StyleStrike
	StyleUnderline
	StyleDel
	StyleIns
	StyleCite
	StyleDetails
	StyleSummary
	StyleS
)

var styleNames = [...]string{
	StyleBold:         "b",
	StyleItalic:       "em",
	StyleCode:         "code",
	StyleCenter:       "center",
	StyleSmall:        "small",
	StyleSubscript:    "subscript",
	StyleSuperscript:  "superscript",
	StylePreformatted: "pre",
	StyleDiv:          "div",
	StyleSpan:         "span",
	StyleStrike:       "strike",
	StyleUnderline:    "u",
	StyleDel:          "del",
	StyleIns:          "ins",
	StyleCite:         "cite",
	StyleDetails:      "details",
	StyleSummary:      "summary",
	StyleS:            "s",
}

// String returns the tag-like name used in diagnostics.
func (s Style) String() string {
	if int(s) < len(styleNames) {
		return styleNames[s]
	}
	return "unknown"
}

// StyleAttrs describes a style-span boundary marker.
type StyleAttrs struct {
	Style Style

	// Enable is true for the opening marker and false for the closing one.
	Enable bool

	// Position is the depth of the ancestor stack when the span opened.
	Position int

	// TagName is the tag or command name that produced the marker.
	TagName string
}

// RefAttrs holds the resolved target of a reference-like node.
type RefAttrs struct {
	// Target is the reference as written.
	Target string

	// File and Anchor locate the resolved target; both are empty when the
	// reference could not be resolved.
	File   string
	Anchor string

	// Scope is the scope the reference was resolved in.
	Scope string

	// RelPath is the output-relative path prefix.
	RelPath string

	// External names the tag file of an externally defined target.
	External string

	// Tooltip is the brief description of the target.
	Tooltip string

	// TargetKind is the resolver's kind of the target (class, member,
	// page, section, anchor, ...).
	TargetKind string

	// IsSubPage marks \subpage references.
	IsSubPage bool

	// Key and ID identify cross-reference list items.
	Key string
	ID  int
}

// SectionAttrs describes a section or an HTML heading.
type SectionAttrs struct {
	ID     string
	Level  int
	Title  string
	File   string
	Anchor string

	// Hidden marks an \internal block that renderers skip.
	Hidden bool
}

// SectType is the type of a simple section.
type SectType uint8

// Simple section types.
const (
	SectUnknown SectType = iota
	SectSee
	SectReturn
	SectAuthor
	SectAuthors
	SectVersion
	SectSince
	SectDate
	SectNote
	SectWarning
	SectCopyright
	SectPre
	SectPost
	SectInvariant
	SectRemark
	SectAttention
	SectUser
	SectRcs
)

var sectTypeNames = [...]string{
	SectUnknown:   "unknown",
	SectSee:       "see",
	SectReturn:    "return",
	SectAuthor:    "author",
	SectAuthors:   "authors",
	SectVersion:   "version",
	SectSince:     "since",
	SectDate:      "date",
	SectNote:      "note",
	SectWarning:   "warning",
	SectCopyright: "copyright",
	SectPre:       "pre",
	SectPost:      "post",
	SectInvariant: "invariant",
	SectRemark:    "remark",
	SectAttention: "attention",
	SectUser:      "par",
	SectRcs:       "rcs",
}

func (t SectType) String() string {
	if int(t) < len(sectTypeNames) {
		return sectTypeNames[t]
	}
	return "unknown"
}

// ParamType is the type of a parameter section.
type ParamType uint8

// Parameter section types.
const (
	ParamUnknown ParamType = iota
	ParamParam
	ParamRetVal
	ParamException
	ParamTemplateParam
)

func (t ParamType) String() string {
	switch t {
	case ParamParam:
		return "param"
	case ParamRetVal:
		return "retval"
	case ParamException:
		return "exception"
	case ParamTemplateParam:
		return "templateparam"
	default:
		return "unknown"
	}
}

// SectAttrs describes simple sections, parameter sections and parameter
// lists.
type SectAttrs struct {
	Type      SectType
	ParamType ParamType

	// Dir is the direction of a parameter list.
	Dir doctoken.ParamDir

	// HasInOut is set on a parameter section when any of its lists carries
	// an explicit direction.
	HasInOut bool

	// HasTypes is set when a parameter name was written as type#name.
	HasTypes bool

	// IsXML marks sections created from XML documentation tags.
	IsXML bool
}

// ListAttrs describes lists and list items.
type ListAttrs struct {
	// Indent is the column of an auto list's markers.
	Indent int

	// Ordered is true for numbered lists.
	Ordered bool

	// Depth is the nesting depth of numbered auto lists.
	Depth int

	// Number is the number of a list item.
	Number int

	// IsXML marks lists created from <list>.
	IsXML bool
}

// Alignment is the horizontal alignment of a table cell.
type Alignment uint8

// Cell alignments.
const (
	AlignNone Alignment = iota
	AlignLeft
	AlignRight
	AlignCenter
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	default:
		return ""
	}
}

// CellAttrs holds the grid position of a table cell. Row and Column are
// 0-based and assigned after the whole table is parsed.
type CellAttrs struct {
	Row     int
	Column  int
	RowSpan int
	ColSpan int
	Heading bool
	Align   Alignment
}

// TableAttrs describes a table.
type TableAttrs struct {
	// NumColumns is the width of the resolved grid.
	NumColumns int

	// HasCaption is set when the first child is the caption.
	HasCaption bool

	// IsXML marks tables created from <list type="table">.
	IsXML bool
}

// VerbatimType is the kind of a verbatim block.
type VerbatimType uint8

// Verbatim block kinds.
const (
	VerbatimCode VerbatimType = iota
	VerbatimHTMLOnly
	VerbatimManOnly
	VerbatimLatexOnly
	VerbatimRTFOnly
	VerbatimXMLOnly
	VerbatimDocbookOnly
	VerbatimPlain
	VerbatimDot
	VerbatimMsc
	VerbatimPlantUML
)

var verbatimTypeNames = [...]string{
	VerbatimCode:        "code",
	VerbatimHTMLOnly:    "htmlonly",
	VerbatimManOnly:     "manonly",
	VerbatimLatexOnly:   "latexonly",
	VerbatimRTFOnly:     "rtfonly",
	VerbatimXMLOnly:     "xmlonly",
	VerbatimDocbookOnly: "docbookonly",
	VerbatimPlain:       "verbatim",
	VerbatimDot:         "dot",
	VerbatimMsc:         "msc",
	VerbatimPlantUML:    "plantuml",
}

func (t VerbatimType) String() string {
	if int(t) < len(verbatimTypeNames) {
		return verbatimTypeNames[t]
	}
	return "unknown"
}

// VerbatimAttrs describes a verbatim block. The body is in Node.Text and an
// optional title is held by the node's children.
type VerbatimAttrs struct {
	Type VerbatimType

	// Lang is the language of a code block, with a leading dot.
	Lang string

	// Block marks \htmlonly[block].
	Block bool

	// Context is the scope code references are resolved in.
	Context string

	IsExample   bool
	ExampleFile string

	Width  string
	Height string
}

// IncludeType is the kind of an include command or include operator.
type IncludeType uint8

// Include kinds.
const (
	IncludePlain IncludeType = iota
	IncludeWithLines
	IncludeDontInclude
	IncludeDontIncWithLines
	IncludeVerbInclude
	IncludeHTMLInclude
	IncludeLatexInclude
	IncludeRTFInclude
	IncludeManInclude
	IncludeXMLInclude
	IncludeDocbookInclude
	IncludeSnippet
	IncludeSnippetWithLines
	IncludeSnippetDoc
	IncludeDoc

	// Include operators.
	IncludeOpLine
	IncludeOpSkip
	IncludeOpSkipLine
	IncludeOpUntil
)

var includeTypeNames = [...]string{
	IncludePlain:            "include",
	IncludeWithLines:        "includelineno",
	IncludeDontInclude:      "dontinclude",
	IncludeDontIncWithLines: "dontinclude{lineno}",
	IncludeVerbInclude:      "verbinclude",
	IncludeHTMLInclude:      "htmlinclude",
	IncludeLatexInclude:     "latexinclude",
	IncludeRTFInclude:       "rtfinclude",
	IncludeManInclude:       "maninclude",
	IncludeXMLInclude:       "xmlinclude",
	IncludeDocbookInclude:   "docbookinclude",
	IncludeSnippet:          "snippet",
	IncludeSnippetWithLines: "snippetlineno",
	IncludeSnippetDoc:       "snippetdoc",
	IncludeDoc:              "includedoc",
	IncludeOpLine:           "line",
	IncludeOpSkip:           "skip",
	IncludeOpSkipLine:       "skipline",
	IncludeOpUntil:          "until",
}

func (t IncludeType) String() string {
	if int(t) < len(includeTypeNames) {
		return includeTypeNames[t]
	}
	return "unknown"
}

// IncludeAttrs describes an include command or include operator. The
// included text is in Node.Text.
type IncludeAttrs struct {
	Type IncludeType

	// File is the file name as written; for operators, the file of the
	// preceding include.
	File string

	// Pattern is the operator's search pattern.
	Pattern string

	// BlockID is the snippet marker.
	BlockID string

	Context     string
	IsExample   bool
	ExampleFile string

	// Block marks \htmlinclude[block].
	Block bool

	// ShowLineNo and Line are used to number included lines.
	ShowLineNo bool
	Line       int

	// First and Last mark the boundaries of a run of consecutive include
	// operators.
	First bool
	Last  bool
}

// ImageType is the output format an image applies to.
type ImageType uint8

// Image formats.
const (
	ImageHTML ImageType = iota
	ImageLatex
	ImageRTF
	ImageDocBook
	ImageXML
)

func (t ImageType) String() string {
	switch t {
	case ImageHTML:
		return "html"
	case ImageLatex:
		return "latex"
	case ImageRTF:
		return "rtf"
	case ImageDocBook:
		return "docbook"
	case ImageXML:
		return "xml"
	default:
		return "unknown"
	}
}

// ImageAttrs describes images and diagram files. The caption is held by
// the node's children.
type ImageAttrs struct {
	Type ImageType

	// Name is the file name as written.
	Name string

	// File is the resolved path, empty when the file was not found.
	File string

	// URL is set when Name is an absolute URL.
	URL string

	Width  string
	Height string
	Inline bool
}

// SymbolAttrs names the character entity a Symbol node was decoded from.
type SymbolAttrs struct {
	Name string
}

// ParaAttrs marks paragraphs that start or end their container.
type ParaAttrs struct {
	First bool
	Last  bool
}

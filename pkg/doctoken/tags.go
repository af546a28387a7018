package doctoken

import "strings"

// Tag identifies an HTML or XML documentation tag.
type Tag uint8

// HTML tags.
const (
	TagUnknown Tag = iota
	TagBold
	TagCenter
	TagTable
	TagCaption
	TagSmall
	TagCite
	TagCode
	TagEmphasis
	TagImg
	TagPre
	TagSub
	TagSup
	TagTr
	TagTd
	TagTh
	TagOl
	TagUl
	TagLi
	TagHr
	TagDl
	TagDt
	TagDd
	TagBr
	TagA
	TagP
	TagH1
	TagH2
	TagH3
	TagH4
	TagH5
	TagH6
	TagSpan
	TagDiv
	TagBlockQuote
	TagStrike
	TagS
	TagUnderline
	TagIns
	TagDel
	TagDetails

	// XML documentation tags. XMLC is also used for <tt> and <kbd>.
	XMLC
	XMLDescription
	XMLExample
	XMLException
	XMLInclude
	XMLItem
	XMLList
	XMLListHeader
	XMLPara
	XMLParam
	XMLParamRef
	XMLTypeParam
	XMLTypeParamRef
	XMLPermission
	XMLRemarks
	XMLReturns
	XMLSee
	XMLSeeAlso
	XMLSummary
	XMLTerm
	XMLValue
	XMLInheritDoc
)

var tagNames = map[string]Tag{
	"strong":     TagBold,
	"b":          TagBold,
	"bold":       TagBold,
	"center":     TagCenter,
	"table":      TagTable,
	"caption":    TagCaption,
	"small":      TagSmall,
	"cite":       TagCite,
	"code":       TagCode,
	"dfn":        TagCode,
	"var":        TagEmphasis,
	"em":         TagEmphasis,
	"i":          TagEmphasis,
	"img":        TagImg,
	"pre":        TagPre,
	"sub":        TagSub,
	"sup":        TagSup,
	"tr":         TagTr,
	"td":         TagTd,
	"th":         TagTh,
	"ol":         TagOl,
	"ul":         TagUl,
	"li":         TagLi,
	"tt":         XMLC,
	"kbd":        XMLC,
	"hr":         TagHr,
	"dl":         TagDl,
	"dt":         TagDt,
	"dd":         TagDd,
	"br":         TagBr,
	"a":          TagA,
	"p":          TagP,
	"h1":         TagH1,
	"h2":         TagH2,
	"h3":         TagH3,
	"h4":         TagH4,
	"h5":         TagH5,
	"h6":         TagH6,
	"span":       TagSpan,
	"div":        TagDiv,
	"blockquote": TagBlockQuote,
	"strike":     TagStrike,
	"s":          TagS,
	"u":          TagUnderline,
	"ins":        TagIns,
	"del":        TagDel,
	"details":    TagDetails,

	"c":            XMLC,
	"description":  XMLDescription,
	"example":      XMLExample,
	"exception":    XMLException,
	"include":      XMLInclude,
	"item":         XMLItem,
	"list":         XMLList,
	"listheader":   XMLListHeader,
	"para":         XMLPara,
	"param":        XMLParam,
	"paramref":     XMLParamRef,
	"typeparam":    XMLTypeParam,
	"typeparamref": XMLTypeParamRef,
	"permission":   XMLPermission,
	"remarks":      XMLRemarks,
	"returns":      XMLReturns,
	"see":          XMLSee,
	"seealso":      XMLSeeAlso,
	"summary":      XMLSummary,
	"term":         XMLTerm,
	"value":        XMLValue,
	"inheritdoc":   XMLInheritDoc,
}

// LookupTag maps a tag name to its id; matching is case-insensitive.
func LookupTag(name string) Tag {
	if t, ok := tagNames[strings.ToLower(name)]; ok {
		return t
	}
	return TagUnknown
}

// IsXML reports whether t is an XML documentation tag.
func (t Tag) IsXML() bool {
	return t >= XMLC
}

// HeaderLevel returns 1..6 for <h1>..<h6> and 0 otherwise.
func (t Tag) HeaderLevel() int {
	if t >= TagH1 && t <= TagH6 {
		return int(t-TagH1) + 1
	}
	return 0
}

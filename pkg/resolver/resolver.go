// Package resolver defines what the comment parser needs to know about the
// surrounding project: documented entities, section labels, example files,
// cross-reference lists, citations and formulas.
//
// The parser consumes the small interfaces below. Memory implements all of
// them over maps filled by hand or from a YAML symbol file.
package resolver

// EntityKind names the kind of a documented entity.
type EntityKind string

const (
	KindClass     EntityKind = "class"
	KindNamespace EntityKind = "namespace"
	KindFile      EntityKind = "file"
	KindPage      EntityKind = "page"
	KindGroup     EntityKind = "group"
	KindExample   EntityKind = "example"
	KindDir       EntityKind = "dir"
	KindMember    EntityKind = "member"
)

// IsCompound reports whether the kind is a compound rather than a member.
func (k EntityKind) IsCompound() bool {
	return k != KindMember && k != ""
}

// Entity is a documented symbol.
type Entity struct {
	// Name is the fully qualified name, e.g. "ns::Class::method".
	Name string     `yaml:"name"`
	Kind EntityKind `yaml:"kind"`

	// File and Anchor locate the entity's documentation output.
	File   string `yaml:"file"`
	Anchor string `yaml:"anchor,omitempty"`

	// Brief is the brief description text; renderers use it as a tooltip.
	Brief string `yaml:"brief,omitempty"`

	// Details is the detailed description text.
	Details string `yaml:"details,omitempty"`

	// Params lists the argument names of a function member.
	Params []string `yaml:"params,omitempty"`

	// ReturnType is the declared return type of a function member.
	ReturnType string `yaml:"returns,omitempty"`

	// Reimplements names the member this member overrides.
	Reimplements string `yaml:"reimplements,omitempty"`

	// External is the tag-file reference of an entity from another project.
	External string `yaml:"external,omitempty"`

	// Hidden entities resolve for doc-copy but are not linkable.
	Hidden bool `yaml:"hidden,omitempty"`
}

// Linkable reports whether references to e should render as links.
func (e Entity) Linkable() bool {
	return !e.Hidden && e.File != ""
}

// IsFunction reports whether e is a member with an argument list.
func (e Entity) IsFunction() bool {
	return e.Kind == KindMember && e.Params != nil
}

// SectionKind is the kind of a labelled location.
type SectionKind string

const (
	SectionPage          SectionKind = "page"
	SectionSection       SectionKind = "section"
	SectionSubsection    SectionKind = "subsection"
	SectionSubsubsection SectionKind = "subsubsection"
	SectionParagraph     SectionKind = "paragraph"
	SectionAnchor        SectionKind = "anchor"
	SectionTable         SectionKind = "table"
)

// Section is a labelled location: a page, a section heading or an anchor.
type Section struct {
	Label  string      `yaml:"label"`
	Kind   SectionKind `yaml:"kind"`
	File   string      `yaml:"file"`
	Anchor string      `yaml:"anchor,omitempty"`
	Title  string      `yaml:"title,omitempty"`
	Level  int         `yaml:"level,omitempty"`

	// External is the tag-file reference of a label from another project.
	External string `yaml:"external,omitempty"`

	// Dupes counts further definitions of the same label.
	Dupes int `yaml:"dupes,omitempty"`
}

// XRefItem is one entry of a cross-reference list such as "todo".
type XRefItem struct {
	List    string `yaml:"list"`
	ID      int    `yaml:"id"`
	Heading string `yaml:"heading,omitempty"`
	Title   string `yaml:"title,omitempty"`
	File    string `yaml:"file,omitempty"`
	Anchor  string `yaml:"anchor,omitempty"`
	Text    string `yaml:"text,omitempty"`
}

// Symbols resolves names to documented entities.
type Symbols interface {
	// Resolve looks name up from scope outward.
	Resolve(scope, name string) (Entity, bool)

	// ResolveLink resolves the target of \link or \ref. Inside a \see block
	// plain words are tried as members of scope first.
	ResolveLink(scope, target string, inSeeBlock bool) (Entity, bool)

	// LookupDocs finds the entity whose documentation \copydoc copies.
	LookupDocs(scope, name string) (Entity, bool)

	// Reimplements returns the member that member overrides.
	Reimplements(member string) (Entity, bool)
}

// Sections looks up labelled locations.
type Sections interface {
	Section(label string) (Section, bool)
}

// Files finds and reads example and include files.
type Files interface {
	// FindFile locates name. When name is ambiguous ok is false and
	// candidates lists the matches.
	FindFile(name string) (path string, candidates []string, ok bool)

	ReadFile(path string) (string, error)
}

// XRefs looks up cross-reference list items.
type XRefs interface {
	XRefItem(list string, id int) (XRefItem, bool)
}

// Citations looks up bibliography keys.
type Citations interface {
	// Cite returns the display label of key.
	Cite(key string) (string, bool)
}

// Formulas looks up formulas by the id the lexer assigned.
type Formulas interface {
	Formula(id int) (string, bool)
}

// Resolver is the union of the lookups the parser uses.
type Resolver interface {
	Symbols
	Sections
	Files
	XRefs
	Citations
	Formulas
}

package docast

// Exported is a serialisable view of a tree used by the JSON and YAML
// tree outputs.
type Exported struct {
	Kind     string         `json:"kind" yaml:"kind"`
	Text     string         `json:"text,omitempty" yaml:"text,omitempty"`
	Line     int            `json:"line,omitempty" yaml:"line,omitempty"`
	Attrs    map[string]any `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Children []*Exported    `json:"children,omitempty" yaml:"children,omitempty"`
}

// Export converts a tree into its serialisable form.
func Export(n *Node) *Exported {
	if n == nil {
		return nil
	}

	out := &Exported{
		Kind:  n.Kind.String(),
		Text:  n.Text,
		Line:  n.Pos.Line,
		Attrs: exportAttrs(n),
	}
	for child := n.FirstChild; child != nil; child = child.Next {
		out.Children = append(out.Children, Export(child))
	}
	return out
}

// exportAttrs flattens the per-kind attributes of n into a map holding
// only the non-zero values.
func exportAttrs(n *Node) map[string]any {
	attrs := map[string]any{}
	set := func(key string, value any) {
		switch v := value.(type) {
		case string:
			if v == "" {
				return
			}
		case int:
			if v == 0 {
				return
			}
		case bool:
			if !v {
				return
			}
		}
		attrs[key] = value
	}

	for _, a := range n.Attribs {
		attrs["html."+a.Name] = a.Value
	}
	if s := n.Style; s != nil {
		set("style", s.Style.String())
		set("enable", s.Enable)
		set("position", s.Position)
	}
	if r := n.Ref; r != nil {
		set("target", r.Target)
		set("file", r.File)
		set("anchor", r.Anchor)
		set("scope", r.Scope)
		set("external", r.External)
		set("targetKind", r.TargetKind)
		set("subpage", r.IsSubPage)
		set("key", r.Key)
		if r.Key != "" {
			attrs["id"] = r.ID
		}
	}
	if s := n.Section; s != nil {
		set("id", s.ID)
		set("level", s.Level)
		set("title", s.Title)
		set("file", s.File)
		set("anchor", s.Anchor)
		set("hidden", s.Hidden)
	}
	if s := n.Sect; s != nil {
		if n.Kind == NodeSimpleSect {
			set("type", s.Type.String())
		}
		if n.Kind == NodeParamSect {
			set("type", s.ParamType.String())
			set("inout", s.HasInOut)
		}
		set("direction", s.Dir.String())
		set("xml", s.IsXML)
	}
	if l := n.List; l != nil {
		set("indent", l.Indent)
		set("ordered", l.Ordered)
		set("depth", l.Depth)
		set("number", l.Number)
	}
	if c := n.Cell; c != nil {
		attrs["row"] = c.Row
		attrs["column"] = c.Column
		set("rowspan", c.RowSpan)
		set("colspan", c.ColSpan)
		set("heading", c.Heading)
		set("align", c.Align.String())
	}
	if t := n.Table; t != nil {
		set("columns", t.NumColumns)
		set("caption", t.HasCaption)
	}
	if v := n.Verbatim; v != nil {
		set("type", v.Type.String())
		set("lang", v.Lang)
		set("block", v.Block)
		set("context", v.Context)
		set("width", v.Width)
		set("height", v.Height)
	}
	if i := n.Include; i != nil {
		set("type", i.Type.String())
		set("file", i.File)
		set("pattern", i.Pattern)
		set("block", i.BlockID)
		set("first", i.First)
		set("last", i.Last)
		set("lineno", i.ShowLineNo)
		set("line", i.Line)
	}
	if img := n.Image; img != nil {
		set("type", img.Type.String())
		set("name", img.Name)
		set("file", img.File)
		set("url", img.URL)
		set("width", img.Width)
		set("height", img.Height)
		set("inline", img.Inline)
	}
	if s := n.Symbol; s != nil {
		set("entity", s.Name)
	}
	if p := n.Para; p != nil {
		set("first", p.First)
		set("last", p.Last)
	}

	if len(attrs) == 0 {
		return nil
	}
	return attrs
}

package docparser

import (
	"strconv"
	"strings"

	"github.com/copperspice/doxypress-sub002/pkg/docast"
	"github.com/copperspice/doxypress-sub002/pkg/doctoken"
)

// parseTable parses an optional <caption> followed by <tr> rows up to
// </table>, then resolves the grid.
func (p *parser) parseTable(table *docast.Node) Code {
	p.pushNode(table)
	defer p.popNode(table)

	code := p.tableStart(table)
	for code == CodeTableRow {
		row := p.newNode(docast.NodeHtmlRow)
		row.Attribs = p.tok.Attribs
		p.add(table, row)
		code = p.parseRow(row)
	}

	resolveTableGrid(table)

	if code == CodeEndTable {
		return CodeOK
	}
	return code
}

// tableStart reads up to the first <tr>, parsing a caption on the way. It
// returns CodeTableRow when a row follows.
func (p *parser) tableStart(table *docast.Node) Code {
	for {
		switch p.skipBlank() {
		case doctoken.HTMLTag:
			tag := doctoken.LookupTag(p.tok.Name)
			switch {
			case tag == doctoken.TagTr && !p.tok.EndTag:
				return CodeTableRow
			case tag == doctoken.TagCaption && !p.tok.EndTag:
				if table.Table.HasCaption {
					p.grammarf("table already has a caption, found another one")
					return CodeOK
				}
				table.Table.HasCaption = true
				caption := p.newNode(docast.NodeHtmlCaption)
				caption.Attribs = p.tok.Attribs
				p.add(table, caption)
				if code := p.parseCaption(caption); code != CodeOK {
					return code
				}
				continue
			default:
				p.grammarf("Expected <tr> or <caption> tag but found <%s%s> instead", endSlash(p.tok), p.tok.Name)
			}
		case doctoken.EOF:
			p.grammarf("Unexpected end of comment while looking for a <tr> or <caption> tag")
		default:
			p.grammarf("Expected <tr> tag, found %s token instead", p.tok)
		}
		return CodeOK
	}
}

func (p *parser) parseCaption(caption *docast.Node) Code {
	p.pushNode(caption)
	defer p.popNode(caption)
	defer p.flushPendingStyles(caption)

	for p.next() != doctoken.EOF {
		if p.handleDefault(caption, true) {
			continue
		}
		switch p.tok.Kind {
		case doctoken.CommandAt, doctoken.CommandBS:
			p.grammarf("Invalid command %s as part of a <caption> tag", p.tok)
		case doctoken.Symbol:
			p.grammarf("Unsupported symbol %s found", p.tok.Name)
		case doctoken.HTMLTag:
			if doctoken.LookupTag(p.tok.Name) == doctoken.TagCaption && p.tok.EndTag {
				return CodeOK
			}
			p.grammarf("Unexpected html tag <%s%s> found within <caption> context", endSlash(p.tok), p.tok.Name)
		default:
			p.grammarf("Unexpected token %s", p.tok)
		}
	}
	p.grammarf("Unexpected end of comment while inside <caption> tag")
	return CodeEOF
}

// parseRow parses the <td>/<th> cells of one row.
func (p *parser) parseRow(row *docast.Node) Code {
	p.pushNode(row)
	defer p.popNode(row)

	heading := false
	switch p.skipBlank() {
	case doctoken.HTMLTag:
		tag := doctoken.LookupTag(p.tok.Name)
		switch {
		case tag == doctoken.TagTd && !p.tok.EndTag:
		case tag == doctoken.TagTh && !p.tok.EndTag:
			heading = true
		default:
			p.grammarf("Expected <td> or <th> tag but found <%s> instead", p.tok.Name)
			p.src.PushBackTag(p.tok.Name)
			return CodeOK
		}
	case doctoken.EOF:
		p.grammarf("Unexpected end of comment while looking for an html description title")
		return CodeOK
	default:
		p.grammarf("Expected <td> or <th> tag, found %s token instead", p.tok)
		return CodeOK
	}

	code := CodeTableCell
	for code == CodeTableCell || code == CodeTableHCell {
		cell := p.newCell(row, heading)
		p.pushNode(cell)
		code = p.parseParagraphs(cell, nil)
		p.popNode(cell)
		heading = code == CodeTableHCell
	}
	return code
}

func (p *parser) newCell(row *docast.Node, heading bool) *docast.Node {
	cell := p.newNode(docast.NodeHtmlCell)
	cell.Attribs = p.tok.Attribs
	cell.Cell = &docast.CellAttrs{
		RowSpan: rowSpan(cell.Attribs),
		ColSpan: colSpan(cell.Attribs),
		Heading: heading,
		Align:   cellAlignment(cell.Attribs),
	}
	return p.add(row, cell)
}

// parseTableXML parses <list type="table"> with <listheader> and <item>
// rows of <term> and <description> cells.
func (p *parser) parseTableXML(table *docast.Node) Code {
	p.pushNode(table)
	defer p.popNode(table)

	code := CodeOK
	header := false
	if p.skipBlank() == doctoken.HTMLTag && !p.tok.EndTag {
		switch doctoken.LookupTag(p.tok.Name) {
		case doctoken.XMLItem:
			code = CodeTableRow
		case doctoken.XMLListHeader:
			code = CodeTableRow
			header = true
		}
	}

	for code == CodeTableRow {
		row := p.newNode(docast.NodeHtmlRow)
		row.Attribs = p.tok.Attribs
		p.add(table, row)
		code = p.parseRowXML(row, header)
		header = false
	}

	resolveTableGrid(table)

	if p.tok.Kind == doctoken.HTMLTag && p.tok.EndTag && doctoken.LookupTag(p.tok.Name) == doctoken.XMLList {
		return CodeOK
	}
	return code
}

func (p *parser) parseRowXML(row *docast.Node, heading bool) Code {
	p.pushNode(row)
	defer p.popNode(row)

	switch p.skipBlank() {
	case doctoken.HTMLTag:
		tag := doctoken.LookupTag(p.tok.Name)
		if p.tok.EndTag || (tag != doctoken.XMLTerm && tag != doctoken.XMLDescription) {
			p.grammarf("Expected <term> or <description> tag, found <%s> instead", p.tok.Name)
			p.src.PushBackTag(p.tok.Name)
			return CodeOK
		}
	case doctoken.EOF:
		p.grammarf("Unexpected end of comment while looking for an html description title")
		return CodeOK
	default:
		p.grammarf("Expected <td> or <th> tag, found %s token instead", p.tok)
		return CodeOK
	}

	code := CodeTableCell
	for code == CodeTableCell || code == CodeTableHCell {
		cell := p.newCell(row, heading)
		p.pushNode(cell)
		code = p.parseParagraphs(cell, nil)
		p.popNode(cell)
	}
	return code
}

func intAttr(attribs doctoken.Attrs, name string) (int, bool) {
	v, ok := attribs.Get(name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return n, true
}

// rowSpan returns the rowspan attribute; missing or non-positive values
// count as 1.
func rowSpan(attribs doctoken.Attrs) int {
	n, ok := intAttr(attribs, "rowspan")
	if !ok || n < 1 {
		return 1
	}
	return n
}

func colSpan(attribs doctoken.Attrs) int {
	n, _ := intAttr(attribs, "colspan")
	return max(1, n)
}

var alignClasses = map[string]docast.Alignment{
	"markdowntableheadcenter": docast.AlignCenter,
	"markdowntableheadright":  docast.AlignRight,
	"markdowntableheadleft":   docast.AlignLeft,
	"markdowntableheadnone":   docast.AlignCenter,
	"markdowntablebodycenter": docast.AlignCenter,
	"markdowntablebodyright":  docast.AlignRight,
	"markdowntablebodyleft":   docast.AlignLeft,
	"markdowntablebodynone":   docast.AlignLeft,
}

// cellAlignment reads align= or a markdown table class. The first of the
// two attributes decides.
func cellAlignment(attribs doctoken.Attrs) docast.Alignment {
	for _, attr := range attribs {
		value := strings.ToLower(attr.Value)
		switch strings.ToLower(attr.Name) {
		case "align":
			switch value {
			case "center":
				return docast.AlignCenter
			case "right":
				return docast.AlignRight
			}
			return docast.AlignLeft
		case "class":
			if a, ok := alignClasses[value]; ok {
				return a
			}
			return docast.AlignLeft
		}
	}
	return docast.AlignLeft
}

// activeSpan is a cell whose row span still covers later rows.
type activeSpan struct {
	column   int
	width    int
	rowsLeft int
}

// resolveTableGrid assigns 0-based row and column positions to every cell
// of table, skipping the columns held by row spans from earlier rows, and
// sets the table width.
func resolveTableGrid(table *docast.Node) {
	var (
		spans   []activeSpan
		numCols int
		rowIdx  int
	)

	for row := table.FirstChild; row != nil; row = row.Next {
		if row.Kind != docast.NodeHtmlRow {
			continue
		}
		row.Cell = &docast.CellAttrs{Row: rowIdx}

		col := 0
		var started []activeSpan
		for cell := row.FirstChild; cell != nil; cell = cell.Next {
			if cell.Kind != docast.NodeHtmlCell {
				continue
			}
			col = nextFreeColumn(spans, col)

			cell.Cell.Row = rowIdx
			cell.Cell.Column = col
			if cell.Cell.RowSpan > 1 {
				started = append(started, activeSpan{
					column:   col,
					width:    cell.Cell.ColSpan,
					rowsLeft: cell.Cell.RowSpan - 1,
				})
			}
			col += cell.Cell.ColSpan
			numCols = max(numCols, col)
		}

		// Spans from earlier rows that end to the right of the last cell
		// still widen the row.
		for _, s := range spans {
			numCols = max(numCols, s.column+s.width)
		}

		kept := spans[:0]
		for _, s := range spans {
			if s.rowsLeft--; s.rowsLeft > 0 {
				kept = append(kept, s)
			}
		}
		spans = append(kept, started...)
		rowIdx++
	}

	table.Table.NumColumns = numCols
}

// nextFreeColumn returns the first column at or after col that no active
// span occupies.
func nextFreeColumn(spans []activeSpan, col int) int {
	for moved := true; moved; {
		moved = false
		for _, s := range spans {
			if col >= s.column && col < s.column+s.width {
				col = s.column + s.width
				moved = true
			}
		}
	}
	return col
}

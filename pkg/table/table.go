// Package table draws paginated grids on a layout.Context. A row is the unit
// of pagination: it is never split across pages, and the header row is
// repeated at the top of every continuation page.
package table

import (
	"math"

	"github.com/BelalFares97/MultiTool/pkg/blocks"
	"github.com/BelalFares97/MultiTool/pkg/layout"
	"github.com/BelalFares97/MultiTool/pkg/palette"
	"github.com/BelalFares97/MultiTool/pkg/sanitize"
)

// Data is a header row plus body rows. Rows may be ragged; short rows are padded.
type Data struct {
	Header []string
	Rows   [][]string
}

// FromBlock converts an interpreted markdown table.
func FromBlock(t *blocks.Table) Data {
	if t == nil {
		return Data{}
	}
	d := Data{Header: []string(t.Header)}
	for _, r := range t.Body {
		d.Rows = append(d.Rows, []string(r))
	}
	return d
}

// Align is horizontal cell alignment.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Column overrides the style for one column. The zero value inherits everything.
type Column struct {
	// Width in millimeters; 0 shares the remaining width with other auto columns.
	Width    float64
	Align    Align
	Bold     bool
	FontSize float64

	TextColor *palette.Color
	Fill      *palette.Color

	// Colorize picks the text color from the raw cell value, e.g. per speaker.
	Colorize func(string) palette.Color

	// Checkbox draws an empty check square instead of non-empty cell text.
	Checkbox bool
}

// Style is the table-wide appearance.
type Style struct {
	FontSize       float64
	HeaderFontSize float64
	Padding        float64

	TextColor  palette.Color
	HeaderFill palette.Color
	HeaderText palette.Color

	// AltFill, when set, fills every second body row.
	AltFill *palette.Color

	Grid      bool
	GridColor palette.Color

	ShowHeader   bool
	RepeatHeader bool
}

// GridStyle is a bordered table with a dark header.
func GridStyle() Style {
	return Style{
		FontSize:       9,
		HeaderFontSize: 9,
		Padding:        2,
		TextColor:      palette.TextDark,
		HeaderFill:     palette.BrandDark,
		HeaderText:     palette.White,
		Grid:           true,
		GridColor:      palette.MidGray,
		ShowHeader:     true,
		RepeatHeader:   true,
	}
}

// StripedStyle is a borderless table with alternating row fills.
func StripedStyle() Style {
	s := GridStyle()
	s.Grid = false
	alt := palette.LightGray
	s.AltFill = &alt
	return s
}

// cell is a prepared cell: wrapped lines plus resolved drawing attributes.
type cell struct {
	raw   string
	lines []string
	size  float64
	style string
}

// prepared is a table measured for a given width, ready to draw.
type prepared struct {
	widths  []float64
	header  []cell
	headerH float64
	rows    [][]cell
	heights []float64
}

func prepare(c *layout.Context, width float64, data Data, cols []Column, style *Style) *prepared {
	n := len(data.Header)
	for _, r := range data.Rows {
		if len(r) > n {
			n = len(r)
		}
	}
	if n == 0 {
		return nil
	}
	if style.FontSize <= 0 {
		style.FontSize = 9
	}
	if style.HeaderFontSize <= 0 {
		style.HeaderFontSize = style.FontSize
	}
	if len(data.Header) == 0 {
		style.ShowHeader = false
	}

	p := &prepared{widths: columnWidths(width, n, cols)}
	if style.ShowHeader {
		p.header = prepareRow(c, pad(data.Header, n), p.widths, nil, *style, true)
		p.headerH = rowHeight(p.header, style.Padding)
	}

	// A row may use at most one page, minus the repeated header.
	maxRowH := c.ContentHeight()
	if style.ShowHeader && style.RepeatHeader {
		maxRowH -= p.headerH
	}

	p.rows = make([][]cell, len(data.Rows))
	p.heights = make([]float64, len(data.Rows))
	for i, r := range data.Rows {
		p.rows[i] = prepareRow(c, pad(r, n), p.widths, cols, *style, false)
		truncate(c, p.rows[i], p.widths, style.Padding, maxRowH)
		p.heights[i] = rowHeight(p.rows[i], style.Padding)
	}
	return p
}

// lead is the header plus the first body row: the least the table needs on its first page.
func (p *prepared) lead() float64 {
	h := p.headerH
	if len(p.heights) > 0 {
		h += p.heights[0]
	}
	return h
}

// LeadHeight returns the space the table needs before it can start on a page,
// so a caller can keep a section title together with the table below it.
func LeadHeight(c *layout.Context, width float64, data Data, cols []Column, style Style) float64 {
	p := prepare(c, width, data, cols, &style)
	if p == nil {
		return 0
	}
	return p.lead()
}

// Render draws data at x with total width and returns the cursor below the table.
func Render(c *layout.Context, x, width float64, data Data, cols []Column, style Style) float64 {
	p := prepare(c, width, data, cols, &style)
	if p == nil {
		return c.Y()
	}

	if style.ShowHeader {
		y := c.EnsureSpace(p.lead())
		drawRow(c, x, y, p.headerH, p.header, p.widths, cols, style, headerFill(style), true)
		c.Advance(p.headerH)
	}

	for i, r := range p.rows {
		page := c.Page()
		y := c.EnsureSpace(p.heights[i])
		if page != nil && c.Page() != page && style.ShowHeader && style.RepeatHeader {
			drawRow(c, x, y, p.headerH, p.header, p.widths, cols, style, headerFill(style), true)
			c.Advance(p.headerH)
			y = c.Y()
		}
		var fill *palette.Color
		if style.AltFill != nil && i%2 == 1 {
			fill = style.AltFill
		}
		drawRow(c, x, y, p.heights[i], r, p.widths, cols, style, fill, false)
		c.Advance(p.heights[i])
	}
	return c.Y()
}

func headerFill(s Style) *palette.Color {
	f := s.HeaderFill
	return &f
}

func pad(r []string, n int) []string {
	out := make([]string, n)
	copy(out, r)
	return out
}

func column(cols []Column, i int) Column {
	if i < len(cols) {
		return cols[i]
	}
	return Column{}
}

// columnWidths gives fixed columns their width and splits the rest evenly
// between auto columns. Fixed widths are scaled down if they overflow.
func columnWidths(total float64, n int, cols []Column) []float64 {
	widths := make([]float64, n)
	fixed, autos := 0.0, 0
	for i := 0; i < n; i++ {
		if w := column(cols, i).Width; w > 0 {
			widths[i] = w
			fixed += w
		} else {
			autos++
		}
	}

	const minAuto = 10.0
	avail := total - fixed
	if autos > 0 && avail < minAuto*float64(autos) {
		avail = minAuto * float64(autos)
	}
	if autos == 0 {
		avail = 0
	}
	if fixed > 0 && fixed+avail > total {
		scale := (total - avail) / fixed
		for i := range widths {
			widths[i] *= scale
		}
	}
	for i := range widths {
		if column(cols, i).Width <= 0 {
			widths[i] = avail / float64(autos)
		}
	}
	return widths
}

func prepareRow(c *layout.Context, values []string, widths []float64, cols []Column, s Style, header bool) []cell {
	row := make([]cell, len(values))
	for i, v := range values {
		col := column(cols, i)
		ce := cell{raw: v, size: s.FontSize}
		if header {
			ce.size = s.HeaderFontSize
			ce.style = "B"
		} else {
			if col.FontSize > 0 {
				ce.size = col.FontSize
			}
			if col.Bold {
				ce.style = "B"
			}
		}
		if !header && col.Checkbox {
			ce.lines = []string{""}
		} else {
			c.SetFont(ce.style, ce.size)
			ce.lines = c.SplitText(sanitize.Cell(v), widths[i]-2*s.Padding)
		}
		row[i] = ce
	}
	return row
}

func rowHeight(row []cell, padding float64) float64 {
	h := 0.0
	for _, ce := range row {
		if ch := float64(len(ce.lines)) * layout.LineHeight(ce.size); ch > h {
			h = ch
		}
	}
	return h + 2*padding
}

// truncate shortens cells so the row fits in maxH, ending the last kept line with "...".
func truncate(c *layout.Context, row []cell, widths []float64, padding, maxH float64) {
	for i := range row {
		ce := &row[i]
		lh := layout.LineHeight(ce.size)
		limit := int(math.Floor((maxH - 2*padding) / lh))
		if limit < 1 {
			limit = 1
		}
		if len(ce.lines) <= limit {
			continue
		}
		ce.lines = ce.lines[:limit]
		c.SetFont(ce.style, ce.size)
		last := ce.lines[limit-1]
		for len(last) > 0 && c.StringWidth(last+"...") > widths[i]-2*padding {
			last = last[:len(last)-1]
		}
		ce.lines[limit-1] = last + "..."
	}
}

func drawRow(c *layout.Context, x, y, h float64, row []cell, widths []float64, cols []Column, s Style, rowFill *palette.Color, header bool) {
	cx := x
	for i, ce := range row {
		col := column(cols, i)
		w := widths[i]

		fill := rowFill
		if !header && col.Fill != nil {
			fill = col.Fill
		}
		if fill != nil {
			c.SetFillColor(*fill)
			c.Rect(cx, y, w, h, "F")
		}
		if s.Grid {
			c.SetDrawColor(s.GridColor)
			c.SetLineWidth(0.1)
			c.Rect(cx, y, w, h, "D")
		}

		switch {
		case header:
			c.SetTextColor(s.HeaderText)
		case col.Colorize != nil:
			c.SetTextColor(col.Colorize(ce.raw))
		case col.TextColor != nil:
			c.SetTextColor(*col.TextColor)
		default:
			c.SetTextColor(s.TextColor)
		}

		if !header && col.Checkbox {
			if ce.raw == "" {
				cx += w
				continue
			}
			box := 3.5
			c.SetDrawColor(s.TextColor)
			c.SetLineWidth(0.3)
			c.Rect(cx+(w-box)/2, y+(h-box)/2, box, box, "D")
			cx += w
			continue
		}

		c.SetFont(ce.style, ce.size)
		lh := layout.LineHeight(ce.size)
		baseline := y + s.Padding + lh*0.75
		for j, line := range ce.lines {
			ly := baseline + float64(j)*lh
			switch col.Align {
			case AlignCenter:
				c.TextCenter(cx+w/2, ly, line)
			case AlignRight:
				c.TextRight(cx+w-s.Padding, ly, line)
			default:
				c.Text(cx+s.Padding, ly, line)
			}
		}
		cx += w
	}
}

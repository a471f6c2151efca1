// Package report renders the analytics PDF documents.
package report

// All measurements are PDF points (1/72 inch) on an A4 page (595.28 x 841.89).

// TableLayout positions the flat user table.
type TableLayout struct {
	PageMargin   float64 // document margin on every side
	PageTop      float64 // cursor position after a page break
	PageBottom   float64 // a row ending below this line starts a new page
	StartX       float64
	HeaderHeight float64
	RowHeight    float64
	ColumnGap    float64
	NameWidth    float64
	EmailWidth   float64
	PhoneWidth   float64
}

// DefaultTableLayout mirrors the dashboard's printed user report.
var DefaultTableLayout = TableLayout{
	PageMargin:   30,
	PageTop:      50,
	PageBottom:   750,
	StartX:       50,
	HeaderHeight: 25,
	RowHeight:    20,
	ColumnGap:    10,
	NameWidth:    120,
	EmailWidth:   230,
	PhoneWidth:   160,
}

// TotalWidth is the width of the header band and of the rules under each row.
func (l TableLayout) TotalWidth() float64 {
	return l.NameWidth + l.EmailWidth + l.PhoneWidth + 2*l.ColumnGap
}

// GroupLayout positions the grouped order listing.
type GroupLayout struct {
	PageMargin     float64
	LineHeight     float64 // order header lines (14pt text)
	ItemLineHeight float64 // product lines (12pt text)
	ItemIndent     float64
	GroupGap       float64 // space after the last item of a group
	SeparatorGap   float64 // space after a separator line
}

// DefaultGroupLayout mirrors the dashboard's printed orders report.
var DefaultGroupLayout = GroupLayout{
	PageMargin:     40,
	LineHeight:     18,
	ItemLineHeight: 16,
	ItemIndent:     15,
	GroupGap:       20,
	SeparatorGap:   14,
}

// orderHeaderLines is the number of text lines above the product list:
// order id, customer, total + status, date, "Products:".
const orderHeaderLines = 5

// GroupHeight estimates the vertical space one order group needs.
func (l GroupLayout) GroupHeight(items int) float64 {
	return orderHeaderLines*l.LineHeight + l.LineHeight/2 +
		float64(items)*l.ItemLineHeight + l.GroupGap
}

// Cursor tracks the vertical drawing position and decides when a page must break.
// It does not draw; the caller supplies onBreak to start a new physical page.
type Cursor struct {
	top     float64
	bottom  float64
	y       float64
	pages   int
	onBreak func()
}

// NewCursor starts on page one at position y.
func NewCursor(top, bottom, y float64, onBreak func()) *Cursor {
	return &Cursor{top: top, bottom: bottom, y: y, pages: 1, onBreak: onBreak}
}

// Y is the current vertical position.
func (c *Cursor) Y() float64 { return c.y }

// Pages is the number of pages started so far.
func (c *Cursor) Pages() int { return c.pages }

// Set moves the cursor to y, e.g. after the drawing library advanced on its own.
func (c *Cursor) Set(y float64) { c.y = y }

// Advance moves the cursor down by h.
func (c *Cursor) Advance(h float64) { c.y += h }

// BreakIfPast starts a new page when the cursor has passed the bottom threshold.
// Used after a row has been drawn.
func (c *Cursor) BreakIfPast() bool {
	if c.y <= c.bottom {
		return false
	}
	c.newPage()
	return true
}

// Reserve starts a new page when h more points would not fit above the bottom threshold.
// Used before a block is drawn. A block taller than a whole page is drawn anyway.
func (c *Cursor) Reserve(h float64) bool {
	if c.y+h <= c.bottom || c.y == c.top {
		return false
	}
	c.newPage()
	return true
}

func (c *Cursor) newPage() {
	if c.onBreak != nil {
		c.onBreak()
	}
	c.pages++
	c.y = c.top
}

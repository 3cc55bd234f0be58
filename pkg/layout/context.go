// Package layout paginates content onto fixed-size pages.
//
// A Context carries the current page, the vertical cursor and the page
// geometry through every drawing call. Content is placed with the pattern
//
//	y := c.EnsureSpace(h) // may break the page
//	... draw at y ...
//	c.Advance(h)
//
// EnsureSpace is the only place that breaks pages, so no block can be drawn
// below the content bottom or into the footer band.
package layout

import (
	"io"
	"log/slog"

	"github.com/go-pdf/fpdf"

	"github.com/BelalFares97/MultiTool/pkg/palette"
	"github.com/BelalFares97/MultiTool/pkg/sanitize"
)

// PointToMM converts a font size in points to millimeters.
const PointToMM = 25.4 / 72

// LineHeight returns the baseline-to-baseline distance for a font size in points.
func LineHeight(size float64) float64 {
	return size * PointToMM * 1.15
}

// Chrome draws the fixed header and footer bands of a report type.
type Chrome interface {
	Header(c *Context, p *Page)
	Footer(c *Context, p *Page)
}

// band selects where drawn text is recorded on the page outline.
type band int

const (
	bandContent band = iota
	bandHeader
	bandFooter
)

// Context is the render state threaded through every drawing function.
type Context struct {
	cfg     Config
	size    PageSize
	surface Surface
	chrome  Chrome
	log     *slog.Logger

	doc      Document
	page     *Page
	title    string
	y        float64
	band     band
	pen      pen
	finished bool
}

// pen is the drawing state the chrome may change and BeginPage restores.
type pen struct {
	style     string
	size      float64
	text      palette.Color
	fill      palette.Color
	draw      palette.Color
	lineWidth float64
}

// New returns a Context drawing on surface. No page is open until BeginPage
// or the first EnsureSpace.
func New(cfg Config, surface Surface, chrome Chrome, logger *slog.Logger) *Context {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.FontFamily == "" {
		cfg.FontFamily = "Helvetica"
	}
	c := &Context{
		cfg:     cfg,
		size:    cfg.Size(),
		surface: surface,
		chrome:  chrome,
		log:     logger,
	}
	// fpdf cannot measure text until a font is selected
	c.SetFont("", 10)
	c.pen.lineWidth = 0.2
	return c
}

// Geometry accessors.

func (c *Context) Config() Config      { return c.cfg }
func (c *Context) PageWidth() float64  { return c.size.Width }
func (c *Context) PageHeight() float64 { return c.size.Height }
func (c *Context) Left() float64       { return c.cfg.MarginLeft }
func (c *Context) Right() float64      { return c.size.Width - c.cfg.MarginRight }
func (c *Context) Width() float64      { return c.Right() - c.Left() }
func (c *Context) Top() float64        { return c.cfg.ContentTop }
func (c *Context) Bottom() float64     { return c.size.Height - c.cfg.BottomGap }

// ContentHeight is the usable height of one page.
func (c *Context) ContentHeight() float64 { return c.Bottom() - c.Top() }

// Y returns the cursor.
func (c *Context) Y() float64 { return c.y }

// Remaining returns the space left below the cursor on the current page.
func (c *Context) Remaining() float64 { return c.Bottom() - c.y }

// Page returns the open page, or nil before the first page.
func (c *Context) Page() *Page { return c.page }

// Logger returns the logger of the current render.
func (c *Context) Logger() *slog.Logger { return c.log }

// Title returns the title used for pages opened by automatic breaks.
func (c *Context) Title() string { return c.title }

// BeginPage closes the open page, if any, and starts a new one with title.
func (c *Context) BeginPage(title string) *Page {
	saved := c.pen
	c.closePage()

	c.surface.AddPage()
	c.title = title
	c.page = &Page{
		Index:  len(c.doc.Pages) + 1,
		Title:  title,
		Top:    c.Top(),
		Bottom: c.Bottom(),
	}
	c.doc.Pages = append(c.doc.Pages, c.page)
	c.y = c.Top()

	if c.chrome != nil {
		c.band = bandHeader
		c.chrome.Header(c, c.page)
		c.band = bandContent
	}
	c.restore(saved)
	return c.page
}

func (c *Context) restore(p pen) {
	c.SetFont(p.style, p.size)
	c.SetTextColor(p.text)
	c.SetFillColor(p.fill)
	c.SetDrawColor(p.draw)
	c.SetLineWidth(p.lineWidth)
}

// BreakPage starts a new page with title as part of a fixed section plan.
func (c *Context) BreakPage(title string) *Page {
	return c.BeginPage(title)
}

// EnsureSpace returns the cursor at which a block of height h can be drawn.
// If the block does not fit below the cursor the page is finished and a new
// one opened with the same title. A page with nothing on it yet never breaks,
// so a block taller than the page cannot produce blank pages.
func (c *Context) EnsureSpace(h float64) float64 {
	if c.page == nil {
		c.BeginPage(c.title)
		return c.y
	}
	if c.y+h > c.Bottom()+epsilon && c.y > c.Top()+epsilon {
		c.log.Debug("page break", "page", c.page.Index, "cursor", c.y, "needed", h)
		c.BeginPage(c.title)
	}
	return c.y
}

const epsilon = 1e-6

// Advance moves the cursor down by h, never past the content bottom.
func (c *Context) Advance(h float64) {
	c.y += h
	if c.y > c.Bottom() {
		c.y = c.Bottom()
	}
}

// MarkSection records a section banner on the current page outline.
func (c *Context) MarkSection(name string) {
	if c.page != nil {
		c.page.Sections = append(c.page.Sections, sanitize.String(name))
	}
}

// Finish draws the final footer and returns the document outline.
// Calling it more than once is harmless.
func (c *Context) Finish() *Document {
	if !c.finished {
		c.closePage()
		c.finished = true
	}
	return &c.doc
}

// Err reports a drawing surface failure.
func (c *Context) Err() error {
	if c.surface.Ok() {
		return nil
	}
	return c.surface.Error()
}

func (c *Context) closePage() {
	if c.page == nil || c.page.closed {
		return
	}
	if c.chrome != nil {
		c.band = bandFooter
		c.chrome.Footer(c, c.page)
		c.band = bandContent
	}
	c.page.closed = true
}

// -----------------------------------------------------------------------------
// Drawing helpers. All text is sanitized and recorded on the page outline.
// -----------------------------------------------------------------------------

// SetFont selects the configured family with style ("", "B", "I", "BI") and size in points.
func (c *Context) SetFont(style string, size float64) {
	c.pen.style, c.pen.size = style, size
	c.surface.SetFont(c.cfg.FontFamily, style, size)
}

// FontSize returns the current font size in points.
func (c *Context) FontSize() float64 { return c.pen.size }

func (c *Context) SetTextColor(col palette.Color) {
	c.pen.text = col
	c.surface.SetTextColor(col.RGB())
}

func (c *Context) SetFillColor(col palette.Color) {
	c.pen.fill = col
	c.surface.SetFillColor(col.RGB())
}

func (c *Context) SetDrawColor(col palette.Color) {
	c.pen.draw = col
	c.surface.SetDrawColor(col.RGB())
}

func (c *Context) SetLineWidth(w float64) {
	c.pen.lineWidth = w
	c.surface.SetLineWidth(w)
}

// Text draws s with its baseline at (x, y).
func (c *Context) Text(x, y float64, s string) {
	s = sanitize.String(s)
	if s == "" {
		return
	}
	c.record(s)
	c.surface.Text(x, y, s)
}

// TextRight draws s so that it ends at x.
func (c *Context) TextRight(x, y float64, s string) {
	s = sanitize.String(s)
	c.Text(x-c.surface.GetStringWidth(s), y, s)
}

// TextCenter draws s centered on x.
func (c *Context) TextCenter(x, y float64, s string) {
	s = sanitize.String(s)
	c.Text(x-c.surface.GetStringWidth(s)/2, y, s)
}

// StringWidth measures s in the current font.
func (c *Context) StringWidth(s string) float64 {
	return c.surface.GetStringWidth(sanitize.String(s))
}

// SplitText wraps s to width w in the current font. It always returns at
// least one line.
func (c *Context) SplitText(s string, w float64) []string {
	s = sanitize.String(s)
	if s == "" || w <= 0 {
		return []string{s}
	}
	lines := c.surface.SplitText(s, w)
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

func (c *Context) Rect(x, y, w, h float64, style string) {
	c.surface.Rect(x, y, w, h, style)
}

func (c *Context) RoundedRect(x, y, w, h, r float64, style string) {
	c.surface.RoundedRect(x, y, w, h, r, "1234", style)
}

func (c *Context) Circle(x, y, r float64, style string) {
	c.surface.Circle(x, y, r, style)
}

func (c *Context) Line(x1, y1, x2, y2 float64) {
	c.surface.Line(x1, y1, x2, y2)
}

// Image registers an image read from r and draws it in the box (x, y, w, h).
// A decode failure is returned and cleared from the surface so that drawing
// can continue without the image.
func (c *Context) Image(name, imageType string, r io.Reader, x, y, w, h float64) error {
	if err := c.Err(); err != nil {
		return err
	}
	opts := fpdf.ImageOptions{ImageType: imageType}
	c.surface.RegisterImageOptionsReader(name, opts, r)
	if !c.surface.Ok() {
		err := c.surface.Error()
		c.surface.ClearError()
		return err
	}
	c.surface.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	if !c.surface.Ok() {
		err := c.surface.Error()
		c.surface.ClearError()
		return err
	}
	return nil
}

func (c *Context) record(s string) {
	if c.page == nil {
		return
	}
	switch c.band {
	case bandHeader:
		c.page.Header = append(c.page.Header, s)
	case bandFooter:
		c.page.Footer = append(c.page.Footer, s)
	default:
		c.page.Text = append(c.page.Text, s)
	}
}

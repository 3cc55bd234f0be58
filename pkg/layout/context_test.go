package layout

import (
	"bytes"
	"fmt"
	"math/rand"
	"strings"
	"testing"
)

type recordingChrome struct {
	headers int
	footers []int
}

func (r *recordingChrome) Header(c *Context, p *Page) {
	r.headers++
	c.SetFont("B", 9)
	c.Text(c.Left(), 9, "HEADER "+p.Title)
}

func (r *recordingChrome) Footer(c *Context, p *Page) {
	r.footers = append(r.footers, p.Index)
	c.SetFont("", 8)
	c.TextRight(c.Right(), c.PageHeight()-4, fmt.Sprintf("Page %d", p.Index))
}

func newTestContext(chrome Chrome) *Context {
	cfg := DefaultConfig()
	return New(cfg, NewPDF(cfg, Metadata{Title: "test"}), chrome, nil)
}

// greedyPages is the reference pagination: a block moves to a new page only
// when it does not fit and the current page already holds something.
func greedyPages(top, bottom float64, heights []float64) int {
	pages, y := 1, top
	for _, h := range heights {
		if y+h > bottom && y > top {
			pages++
			y = top
		}
		y += h
		if y > bottom {
			y = bottom
		}
	}
	return pages
}

func TestEnsureSpace_PaginationInvariant(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 25; trial++ {
		c := newTestContext(nil)
		c.BeginPage("body")

		heights := make([]float64, 10+rng.Intn(60))
		for i := range heights {
			heights[i] = 2 + rng.Float64()*40
		}

		for i, h := range heights {
			y := c.EnsureSpace(h)
			if y+h > c.Bottom()+epsilon && y != c.Top() {
				t.Fatalf("trial %d block %d: height %.2f at y=%.2f crosses bottom %.2f", trial, i, h, y, c.Bottom())
			}
			c.Rect(c.Left(), y, 10, h, "D")
			c.Advance(h)
			if c.Y() < c.Top() || c.Y() > c.Bottom() {
				t.Fatalf("cursor %.2f outside content region", c.Y())
			}
		}

		doc := c.Finish()
		want := greedyPages(c.Top(), c.Bottom(), heights)
		if doc.PageCount() != want {
			t.Errorf("trial %d: expected %d pages, got %d", trial, want, doc.PageCount())
		}
	}
}

func TestEnsureSpace_NoBlankPages(t *testing.T) {
	t.Parallel()

	c := newTestContext(nil)
	c.BeginPage("tall")
	tall := c.ContentHeight() * 2

	if y := c.EnsureSpace(tall); y != c.Top() {
		t.Errorf("expected oversized block to start at top %.1f, got %.1f", c.Top(), y)
	}
	if c.Page().Index != 1 {
		t.Errorf("expected to stay on page 1, got %d", c.Page().Index)
	}
	c.Advance(tall)
	if c.Y() != c.Bottom() {
		t.Errorf("expected cursor clamped to bottom, got %.1f", c.Y())
	}

	c.EnsureSpace(1)
	if c.Page().Index != 2 {
		t.Errorf("expected next block on page 2, got %d", c.Page().Index)
	}
}

func TestEnsureSpace_OpensFirstPage(t *testing.T) {
	t.Parallel()

	c := newTestContext(nil)
	if c.Page() != nil {
		t.Fatal("expected no page before first draw")
	}
	y := c.EnsureSpace(5)
	if c.Page() == nil || y != c.Top() {
		t.Errorf("expected first page opened at top, got page=%v y=%.1f", c.Page(), y)
	}
}

func TestChrome_HeaderAndFooterPerPage(t *testing.T) {
	t.Parallel()

	chrome := &recordingChrome{}
	c := newTestContext(chrome)
	c.BeginPage("Transcript")
	for i := 0; i < 40; i++ {
		y := c.EnsureSpace(12)
		c.Text(c.Left(), y+5, fmt.Sprintf("row %d", i))
		c.Advance(12)
	}
	doc := c.Finish()
	c.Finish()

	if chrome.headers != doc.PageCount() {
		t.Errorf("expected %d headers, got %d", doc.PageCount(), chrome.headers)
	}
	if len(chrome.footers) != doc.PageCount() {
		t.Errorf("expected %d footers, got %v", doc.PageCount(), chrome.footers)
	}
	for i, p := range doc.Pages {
		if p.Title != "Transcript" {
			t.Errorf("page %d: expected title carried over, got %q", i+1, p.Title)
		}
		if len(p.Header) != 1 || p.Header[0] != "HEADER Transcript" {
			t.Errorf("page %d: unexpected header text %v", i+1, p.Header)
		}
		if len(p.Footer) != 1 || p.Footer[0] != fmt.Sprintf("Page %d", i+1) {
			t.Errorf("page %d: unexpected footer text %v", i+1, p.Footer)
		}
	}

	text := doc.Text()
	if len(text) != 40 || text[0] != "row 0" || text[39] != "row 39" {
		t.Errorf("expected content text in order without bands, got %d entries", len(text))
	}
}

func TestBeginPage_RestoresPenAfterChrome(t *testing.T) {
	t.Parallel()

	c := newTestContext(&recordingChrome{})
	c.BeginPage("first")
	c.SetFont("I", 13)
	c.SetLineWidth(0.7)

	c.Advance(c.ContentHeight())
	c.EnsureSpace(5)
	if c.Page().Index != 2 {
		t.Fatalf("expected page 2, got %d", c.Page().Index)
	}
	if c.FontSize() != 13 || c.pen.style != "I" || c.pen.lineWidth != 0.7 {
		t.Errorf("expected content pen restored, got %+v", c.pen)
	}
}

func TestBreakPage_ExplicitPlan(t *testing.T) {
	t.Parallel()

	c := newTestContext(nil)
	c.BeginPage("Overview")
	c.MarkSection("Meeting Details")
	c.BreakPage("Full Transcript")
	c.MarkSection("Full Transcript")
	doc := c.Finish()

	if doc.PageCount() != 2 {
		t.Fatalf("expected 2 pages, got %d", doc.PageCount())
	}
	got := strings.Join(doc.Sections(), ",")
	if got != "Meeting Details,Full Transcript" {
		t.Errorf("unexpected sections %q", got)
	}
	if doc.Pages[1].Title != "Full Transcript" {
		t.Errorf("unexpected title %q", doc.Pages[1].Title)
	}
}

func TestText_SanitizedAndRecorded(t *testing.T) {
	t.Parallel()

	c := newTestContext(nil)
	c.BeginPage("x")
	c.Text(c.Left(), 30, "Café – “quoted” ≥ 5 تقرير")
	c.Text(c.Left(), 40, "")

	doc := c.Finish()
	if got := doc.Text(); len(got) != 1 || got[0] != `Cafe - "quoted" >= 5 ` {
		t.Errorf("unexpected recorded text %q", got)
	}
	if !doc.Contains("quoted") || doc.PageOf("quoted") != 1 || doc.PageOf("missing") != 0 {
		t.Error("unexpected Contains/PageOf results")
	}
	if c.Err() != nil {
		t.Errorf("unexpected surface error: %v", c.Err())
	}
}

func TestSplitText(t *testing.T) {
	t.Parallel()

	c := newTestContext(nil)
	c.BeginPage("x")
	c.SetFont("", 10)

	if lines := c.SplitText("", 50); len(lines) != 1 {
		t.Errorf("expected one empty line, got %v", lines)
	}
	long := strings.Repeat("lorem ipsum dolor ", 40)
	lines := c.SplitText(long, 60)
	if len(lines) < 5 {
		t.Errorf("expected long text to wrap, got %d lines", len(lines))
	}
	for _, l := range lines {
		if w := c.StringWidth(l); w > 60 {
			t.Errorf("line %q is %.1fmm wide, limit 60", l, w)
		}
	}
}

func TestImage_InvalidDataIsRecoverable(t *testing.T) {
	t.Parallel()

	c := newTestContext(nil)
	c.BeginPage("x")
	err := c.Image("logo", "png", bytes.NewReader([]byte("not a png")), c.Left(), c.Top(), 16, 16)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if c.Err() != nil {
		t.Errorf("expected surface error to be cleared, got %v", c.Err())
	}
	c.Text(c.Left(), 50, "still drawing")
	c.Finish()

	pdf := c.surface.(interface{ PageCount() int })
	if pdf.PageCount() != 1 {
		t.Errorf("expected 1 page, got %d", pdf.PageCount())
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown page", func(c *Config) { c.Page = "B5" }},
		{"negative margin", func(c *Config) { c.MarginLeft = -1 }},
		{"no width", func(c *Config) { c.MarginLeft, c.MarginRight = 105, 105 }},
		{"no height", func(c *Config) { c.ContentTop, c.BottomGap = 200, 97 }},
		{"header overlaps", func(c *Config) { c.HeaderHeight = 30 }},
		{"footer overlaps", func(c *Config) { c.FooterHeight = 20 }},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}

	if s, ok := PageSizeByName("letter"); !ok || s != Letter {
		t.Error("expected Letter size lookup")
	}
}

func TestLineHeight(t *testing.T) {
	t.Parallel()

	got := LineHeight(10)
	if got < 4.05 || got > 4.06 {
		t.Errorf("expected ~4.057mm, got %.4f", got)
	}
}

func TestWriteOutline(t *testing.T) {
	t.Parallel()

	c := newTestContext(nil)
	c.BeginPage("Overview")
	c.MarkSection("Attendees")
	doc := c.Finish()

	var buf bytes.Buffer
	if err := doc.WriteOutline(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "page 1: Overview\n  section: Attendees\n" {
		t.Errorf("unexpected outline %q", buf.String())
	}
}

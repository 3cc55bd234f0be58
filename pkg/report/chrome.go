package report

import (
	"fmt"
	"time"

	"github.com/BelalFares97/MultiTool/pkg/config"
	"github.com/BelalFares97/MultiTool/pkg/layout"
	"github.com/BelalFares97/MultiTool/pkg/palette"
)

// meetingChrome draws the meeting report bands: a split brand bar with the
// product name and page title, and a light footer with the generation date.
type meetingChrome struct {
	brand     config.Branding
	generated time.Time
}

func (m meetingChrome) Header(c *layout.Context, p *layout.Page) {
	pw, h := c.PageWidth(), c.Config().HeaderHeight
	c.SetFillColor(palette.BrandDark)
	c.Rect(0, 0, pw, h, "F")
	c.SetFillColor(palette.BrandMid)
	c.Rect(pw*0.6, 0, pw*0.4, h, "F")

	c.SetTextColor(palette.White)
	c.SetFont("B", 9)
	c.Text(c.Left(), 9, m.brand.Product)
	c.SetFont("", 8)
	c.TextRight(c.Right(), 9, p.Title)
}

func (m meetingChrome) Footer(c *layout.Context, p *layout.Page) {
	pw, ph, h := c.PageWidth(), c.PageHeight(), c.Config().FooterHeight
	c.SetFillColor(palette.LightGray)
	c.Rect(0, ph-h, pw, h, "F")

	c.SetFont("", 7.5)
	c.SetTextColor(palette.TextMed)
	c.Text(c.Left(), ph-3.5, fmt.Sprintf("%s  •  Generated %s", m.brand.Footer, m.generated.Format("02 Jan 2006")))
	c.TextRight(c.Right(), ph-3.5, fmt.Sprintf("Page %d", p.Index))
}

// riskChrome draws the risk report bands: a taller brand bar underlined in
// gold, and a footer carrying the confidentiality notice.
type riskChrome struct {
	brand config.Branding
}

const goldRule = 1.5

func (r riskChrome) Header(c *layout.Context, p *layout.Page) {
	pw := c.PageWidth()
	bar := c.Config().HeaderHeight - goldRule
	c.SetFillColor(palette.BrandDark)
	c.Rect(0, 0, pw, bar, "F")
	c.SetFillColor(palette.BrandMid)
	c.Rect(pw*0.6, 0, pw*0.4, bar, "F")
	c.SetFillColor(palette.Gold)
	c.Rect(0, bar, pw, goldRule, "F")

	c.SetTextColor(palette.White)
	c.SetFont("B", 11)
	c.Text(c.Left(), 12, r.brand.Product)
	c.SetFont("", 9)
	c.TextRight(c.Right(), 12, p.Title)
}

func (r riskChrome) Footer(c *layout.Context, p *layout.Page) {
	pw, ph, h := c.PageWidth(), c.PageHeight(), c.Config().FooterHeight
	c.SetFillColor(riskLightGray)
	c.Rect(0, ph-h, pw, h, "F")

	c.SetFont("", 8)
	c.SetTextColor(riskTextMed)
	c.Text(c.Left(), ph-5, r.brand.Footer)
	c.TextRight(c.Right(), ph-5, fmt.Sprintf("Page %d", p.Index))
}

// Risk report tones are a shade lighter than the shared brand grays.
var (
	riskLightGray = palette.Color{R: 248, G: 249, B: 250}
	riskTextDark  = palette.Color{R: 33, G: 37, B: 41}
	riskTextMed   = palette.Color{R: 73, G: 80, B: 87}
	labelFill     = palette.Color{R: 250, G: 251, B: 253}
)

const (
	bannerHeight  = 8
	bannerAdvance = 12
)

// goldBanner draws a rounded gold section banner and records the section.
// keep is the height of the content that must follow on the same page.
func goldBanner(c *layout.Context, label string, keep float64) {
	y := c.EnsureSpace(bannerAdvance + keep)
	c.SetFillColor(palette.Gold)
	c.RoundedRect(c.Left(), y, c.Width(), bannerHeight, 2, "F")
	c.SetFont("B", 9)
	c.SetTextColor(palette.White)
	c.Text(c.Left()+5, y+5.5, toUpper(label))
	c.MarkSection(label)
	c.Advance(bannerAdvance)
}

// darkBanner draws a square brand-colored section banner and records the section.
func darkBanner(c *layout.Context, label string, keep float64) {
	y := c.EnsureSpace(bannerAdvance + keep)
	c.SetFillColor(palette.BrandDark)
	c.Rect(c.Left(), y, c.Width(), bannerHeight, "F")
	c.SetFont("B", 10)
	c.SetTextColor(palette.White)
	c.Text(c.Left()+4, y+5.5, toUpper(label))
	c.MarkSection(label)
	c.Advance(bannerAdvance)
}

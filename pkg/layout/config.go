package layout

import (
	"fmt"
	"strings"
)

// PageSize is a page size in millimeters.
type PageSize struct {
	Width  float64
	Height float64
}

// Standard page sizes.
var (
	A4     = PageSize{Width: 210, Height: 297}
	Letter = PageSize{Width: 215.9, Height: 279.4}
)

// PageSizeByName resolves "A4" or "Letter" (case-insensitive).
func PageSizeByName(name string) (PageSize, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "a4":
		return A4, true
	case "letter":
		return Letter, true
	default:
		return PageSize{}, false
	}
}

// Config specifies page geometry in millimeters.
type Config struct {
	// Page is the named page size. Default: "A4"
	Page string `yaml:"page"`

	// Horizontal content margins.
	MarginLeft  float64 `yaml:"margin_left"`
	MarginRight float64 `yaml:"margin_right"`

	// ContentTop is the y coordinate where content starts on every page.
	ContentTop float64 `yaml:"content_top"`

	// BottomGap is the distance from the bottom edge that content may not enter.
	BottomGap float64 `yaml:"bottom_gap"`

	// Band heights drawn by the page chrome.
	HeaderHeight float64 `yaml:"header_height"`
	FooterHeight float64 `yaml:"footer_height"`

	// FontFamily is one of the PDF core fonts. Default: "Helvetica"
	FontFamily string `yaml:"font_family"`

	// Compress enables stream compression.
	Compress bool `yaml:"compress"`
}

// DefaultConfig returns the meeting report geometry: 14mm margins, a 14mm
// header band and content from 22mm to 14mm above the bottom edge.
func DefaultConfig() Config {
	return Config{
		Page:         "A4",
		MarginLeft:   14,
		MarginRight:  14,
		ContentTop:   22,
		BottomGap:    14,
		HeaderHeight: 14,
		FooterHeight: 10,
		FontFamily:   "Helvetica",
		Compress:     true,
	}
}

// Size returns the resolved page size, falling back to A4.
func (c Config) Size() PageSize {
	if s, ok := PageSizeByName(c.Page); ok {
		return s
	}
	return A4
}

// Validate checks that the geometry leaves room for content.
func (c Config) Validate() error {
	if _, ok := PageSizeByName(c.Page); !ok {
		return fmt.Errorf("unknown page size %q", c.Page)
	}
	size := c.Size()
	if c.MarginLeft < 0 || c.MarginRight < 0 || c.ContentTop < 0 || c.BottomGap < 0 {
		return fmt.Errorf("margins must not be negative")
	}
	if c.MarginLeft+c.MarginRight >= size.Width {
		return fmt.Errorf("horizontal margins %.1f+%.1f leave no content width", c.MarginLeft, c.MarginRight)
	}
	if c.ContentTop+c.BottomGap >= size.Height {
		return fmt.Errorf("content_top %.1f and bottom_gap %.1f leave no content height", c.ContentTop, c.BottomGap)
	}
	if c.HeaderHeight > c.ContentTop {
		return fmt.Errorf("header band %.1f overlaps content starting at %.1f", c.HeaderHeight, c.ContentTop)
	}
	if c.FooterHeight > c.BottomGap {
		return fmt.Errorf("footer band %.1f overlaps content ending %.1f above the bottom", c.FooterHeight, c.BottomGap)
	}
	return nil
}

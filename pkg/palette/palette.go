// Package palette maps speaker labels to stable colors and holds the brand colors
// shared by every report.
package palette

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

// Color is an RGB color with 0-255 channels.
type Color struct {
	R, G, B int
}

// RGB returns the channels in the order the drawing surface expects them.
func (c Color) RGB() (int, int, int) {
	return c.R, c.G, c.B
}

// Hex returns the color as #RRGGBB.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ParseHex converts "#RRGGBB" (or "RRGGBB") to a Color.
func ParseHex(hex string) (Color, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q", hex)
	}
	var r, g, b int
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return Color{r, g, b}, nil
}

// FromHex is ParseHex that returns black on invalid input.
func FromHex(hex string) Color {
	c, err := ParseHex(hex)
	if err != nil {
		return Color{}
	}
	return c
}

// Brand colors.
var (
	BrandDark = Color{49, 0, 70}
	BrandMid  = Color{126, 0, 53}
	Gold      = Color{153, 120, 0}
	LightGray = Color{245, 245, 250}
	MidGray   = Color{200, 200, 210}
	TextDark  = Color{20, 20, 30}
	TextMed   = Color{80, 80, 100}
	White     = Color{255, 255, 255}

	Approved = Color{16, 185, 129}
	Rejected = Color{239, 68, 68}
	Review   = Color{245, 158, 11}
)

// DefaultSpeakerHex is the speaker palette used in printed reports.
var DefaultSpeakerHex = []string{"#310046", "#7E0035", "#B8861D", "#A90000", "#4f46e5"}

// DefaultFallback is the label used for segments without a speaker.
const DefaultFallback = "Unknown"

// Hash is the 32-bit-shift rolling string hash used by the browser UI:
// h = c + ((h << 5) - h) over UTF-16 code units, where only the shifted
// operand is truncated to int32. Reproducing it exactly keeps printed and
// on-screen speaker colors identical.
func Hash(label string) int64 {
	var h int64
	for _, c := range utf16.Encode([]rune(label)) {
		h = int64(c) + (int64(int32(h)<<5) - h)
	}
	return h
}

// Assigner picks a palette entry for a label.
type Assigner struct {
	Colors   []Color
	Fallback string
}

// NewAssigner builds an Assigner from hex strings. Invalid entries become black;
// an empty list uses DefaultSpeakerHex.
func NewAssigner(hexes []string, fallback string) *Assigner {
	if len(hexes) == 0 {
		hexes = DefaultSpeakerHex
	}
	if fallback == "" {
		fallback = DefaultFallback
	}
	colors := make([]Color, len(hexes))
	for i, h := range hexes {
		colors[i] = FromHex(h)
	}
	return &Assigner{Colors: colors, Fallback: fallback}
}

// Index returns the palette slot for label.
func (a *Assigner) Index(label string) int {
	n := len(a.Colors)
	if n == 0 {
		n = len(DefaultSpeakerHex)
	}
	if label == "" {
		label = a.Fallback
	}
	h := Hash(label)
	if h < 0 {
		h = -h
	}
	return int(h % int64(n))
}

// ColorFor returns the color for label. Same label, same color, always.
func (a *Assigner) ColorFor(label string) Color {
	i := a.Index(label)
	if len(a.Colors) == 0 {
		return FromHex(DefaultSpeakerHex[i])
	}
	return a.Colors[i]
}

var defaultAssigner = NewAssigner(nil, "")

// ColorFor returns the default-palette color for label.
func ColorFor(label string) Color {
	return defaultAssigner.ColorFor(label)
}

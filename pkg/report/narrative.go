package report

import (
	"strings"

	"github.com/BelalFares97/MultiTool/pkg/blocks"
	"github.com/BelalFares97/MultiTool/pkg/layout"
	"github.com/BelalFares97/MultiTool/pkg/palette"
	"github.com/BelalFares97/MultiTool/pkg/table"
)

// narrativeLine is the fixed line pitch of narrative text in millimeters.
const narrativeLine = 6

// renderNarrative draws markdown-dialect text in the column (x, width),
// block by block, and leaves the cursor below the last block.
func renderNarrative(c *layout.Context, x, width float64, text string) {
	sc := blocks.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		drawBlock(c, x, width, sc.Block())
	}
	if err := sc.Err(); err != nil {
		c.Logger().Warn("narrative truncated", "error", err)
	}
}

func drawBlock(c *layout.Context, x, width float64, b blocks.Block) {
	switch b.Kind {
	case blocks.KindHeading:
		size := 14.0
		if b.Level >= blocks.MaxHeadingLevel {
			size = 12
		}
		c.SetFont("B", size)
		c.SetTextColor(palette.BrandDark)
		lines := c.SplitText(b.Text, width)
		// keep the heading with at least one following line
		c.EnsureSpace(max(float64(len(lines))*narrativeLine+2, 2*narrativeLine))
		drawLines(c, x, lines)
		c.Advance(2)

	case blocks.KindBlank:
		c.EnsureSpace(2)
		c.Advance(2)

	case blocks.KindBullet:
		setBodyFont(c, b.Bold)
		lines := c.SplitText(b.Text, width-6)
		y := keepTogether(c, len(lines))
		c.SetFillColor(riskTextDark)
		c.Circle(x+2, y+narrativeLine*0.7-1.2, 0.7, "F")
		drawLines(c, x+6, lines)

	case blocks.KindTable:
		c.Advance(2)
		st := table.GridStyle()
		st.FontSize = 9
		st.TextColor = riskTextDark
		table.Render(c, x, width, table.FromBlock(b.Table), nil, st)
		c.Advance(6)

	default:
		setBodyFont(c, b.Bold)
		lines := c.SplitText(b.Text, width)
		keepTogether(c, len(lines))
		drawLines(c, x, lines)
	}
}

func setBodyFont(c *layout.Context, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	c.SetFont(style, 10)
	c.SetTextColor(riskTextDark)
}

// keepTogether moves to a new page if n lines do not fit below the cursor and
// would fit on a fresh page. It returns the cursor.
func keepTogether(c *layout.Context, n int) float64 {
	h := float64(n) * narrativeLine
	if h <= c.ContentHeight() {
		return c.EnsureSpace(h)
	}
	return c.EnsureSpace(narrativeLine)
}

// drawLines draws one line per pitch, breaking the page between lines if a
// block is taller than the space left.
func drawLines(c *layout.Context, x float64, lines []string) {
	for _, line := range lines {
		y := c.EnsureSpace(narrativeLine)
		c.Text(x, y+narrativeLine*0.7, line)
		c.Advance(narrativeLine)
	}
}

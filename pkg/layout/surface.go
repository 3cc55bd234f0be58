package layout

import (
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Surface is the subset of *fpdf.Fpdf the engine draws with.
type Surface interface {
	AddPage()
	PageNo() int
	GetPageSize() (width, height float64)

	SetFont(family, style string, size float64)
	SetTextColor(r, g, b int)
	SetFillColor(r, g, b int)
	SetDrawColor(r, g, b int)
	SetLineWidth(width float64)

	Text(x, y float64, txt string)
	GetStringWidth(s string) float64
	SplitText(txt string, w float64) []string

	Rect(x, y, w, h float64, style string)
	RoundedRect(x, y, w, h, r float64, corners string, style string)
	Circle(x, y, r float64, style string)
	Line(x1, y1, x2, y2 float64)

	RegisterImageOptionsReader(name string, options fpdf.ImageOptions, r io.Reader) *fpdf.ImageInfoType
	ImageOptions(name string, x, y, w, h float64, flow bool, options fpdf.ImageOptions, link int, linkStr string)

	Ok() bool
	Error() error
	ClearError()
}

var _ Surface = (*fpdf.Fpdf)(nil)

// Metadata is written into the document information dictionary.
type Metadata struct {
	Title    string
	Author   string
	Subject  string
	Creator  string
	Keywords []string
}

// NewPDF returns an fpdf document configured for manual pagination:
// automatic page breaks are off because Context owns every break.
func NewPDF(cfg Config, meta Metadata) *fpdf.Fpdf {
	size := cfg.Size()
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: size.Width, Ht: size.Height},
	})
	pdf.SetMargins(cfg.MarginLeft, cfg.ContentTop, cfg.MarginRight)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(cfg.Compress)

	if meta.Title != "" {
		pdf.SetTitle(meta.Title, true)
	}
	if meta.Author != "" {
		pdf.SetAuthor(meta.Author, true)
	}
	if meta.Subject != "" {
		pdf.SetSubject(meta.Subject, true)
	}
	if meta.Creator != "" {
		pdf.SetCreator(meta.Creator, true)
	}
	if len(meta.Keywords) > 0 {
		pdf.SetKeywords(strings.Join(meta.Keywords, " "), true)
	}
	return pdf
}

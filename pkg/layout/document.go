package layout

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Page is the outline of one emitted page: its content bounds, the sections
// that started on it and every string drawn, in drawing order.
type Page struct {
	Index  int
	Title  string
	Top    float64
	Bottom float64

	Header   []string
	Footer   []string
	Sections []string
	Text     []string

	closed bool
}

// Document is the ordered list of pages produced by a Context.
type Document struct {
	Pages []*Page
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// Sections returns the section names of all pages in order.
func (d *Document) Sections() []string {
	var out []string
	for _, p := range d.Pages {
		out = append(out, p.Sections...)
	}
	return out
}

// Text returns the content text of all pages in order, excluding header and footer bands.
func (d *Document) Text() []string {
	var out []string
	for _, p := range d.Pages {
		out = append(out, p.Text...)
	}
	return out
}

// Contains reports whether any content string on any page contains sub.
func (d *Document) Contains(sub string) bool {
	for _, p := range d.Pages {
		for _, s := range p.Text {
			if strings.Contains(s, sub) {
				return true
			}
		}
	}
	return false
}

// PageOf returns the 1-based page index of the first content string containing
// sub, or 0 if none does.
func (d *Document) PageOf(sub string) int {
	for _, p := range d.Pages {
		for _, s := range p.Text {
			if strings.Contains(s, sub) {
				return p.Index
			}
		}
	}
	return 0
}

// WriteOutline writes a plain-text outline of the document, one page per block.
func (d *Document) WriteOutline(w io.Writer) error {
	for _, p := range d.Pages {
		if _, err := fmt.Fprintf(w, "page %d: %s\n", p.Index, p.Title); err != nil {
			return err
		}
		for _, s := range p.Sections {
			if _, err := fmt.Fprintf(w, "  section: %s\n", s); err != nil {
				return err
			}
		}
	}
	return nil
}

// Render serializes pdf, reporting any error accumulated while drawing.
func Render(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output error: %w", err)
	}
	return buf.Bytes(), nil
}

package report

import (
	"fmt"
	"strconv"
	"time"

	rerrors "github.com/BelalFares97/MultiTool/pkg/errors"
	"github.com/BelalFares97/MultiTool/pkg/layout"
	"github.com/BelalFares97/MultiTool/pkg/palette"
	"github.com/BelalFares97/MultiTool/pkg/table"
)

// Page titles of the meeting report's fixed section plan.
const (
	PageOverview   = "Meeting Overview"
	PageTranscript = "Full Transcript"
	PageNotes      = "Key Notes & Action Items"
)

// MeetingReport renders the three-page meeting minutes report: overview with
// details and attendees, the full diarized transcript, then key notes and
// action items.
func (r *Renderer) MeetingReport(analysis *AnalysisResult, meta Metadata) (*Artifact, error) {
	if analysis == nil {
		return nil, rerrors.InputMissing("meeting", "analysis")
	}

	cfg := r.cfg.Meeting
	now := r.now()
	m := &meetingComposer{
		r:        r,
		analysis: analysis,
		meta:     meta,
		now:      now,
		fallback: r.speakers.Fallback,
	}

	return r.run(job{
		kind:   "meeting",
		name:   meetingFileName(meta.Name),
		layout: cfg.Layout,
		meta: layout.Metadata{
			Title:    cfg.Branding.Title,
			Author:   cfg.Branding.Author,
			Subject:  meta.Name,
			Creator:  Creator,
			Keywords: []string{"meeting", "minutes", cfg.Branding.Product},
		},
		chrome:  meetingChrome{brand: cfg.Branding, generated: now},
		compose: m.compose,
	})
}

type meetingComposer struct {
	r        *Renderer
	analysis *AnalysisResult
	meta     Metadata
	now      time.Time
	fallback string
}

func (m *meetingComposer) compose(c *layout.Context) {
	c.BeginPage(PageOverview)
	m.hero(c)
	m.details(c)
	m.attendees(c)

	c.BreakPage(PageTranscript)
	m.transcript(c)

	c.BreakPage(PageNotes)
	m.notes(c)
	m.actionItems(c)
}

func (m *meetingComposer) hero(c *layout.Context) {
	brand := m.r.cfg.Meeting.Branding
	y := c.EnsureSpace(34)

	c.SetFillColor(palette.LightGray)
	c.RoundedRect(c.Left(), y, c.Width(), 26, 3, "F")
	c.SetFont("B", 18)
	c.SetTextColor(palette.BrandDark)
	c.Text(c.Left()+6, y+11, brand.Title)
	c.SetFont("", 9)
	c.SetTextColor(palette.TextMed)
	c.Text(c.Left()+6, y+19, brand.Tagline)

	c.SetDrawColor(palette.MidGray)
	c.SetLineWidth(0.3)
	c.Line(c.Left(), y+30, c.Right(), y+30)
	c.Advance(34)
}

func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

// meetingGrid is the bordered style shared by the meeting tables.
func meetingGrid(size float64) table.Style {
	st := table.GridStyle()
	st.FontSize = size
	st.HeaderFontSize = 9
	st.Padding = 4
	st.HeaderFill = palette.Gold
	alt := palette.LightGray
	st.AltFill = &alt
	return st
}

// indexColumn is the centered row-number column.
func indexColumn() table.Column {
	med := palette.TextMed
	return table.Column{Width: 12, Align: table.AlignCenter, Bold: true, TextColor: &med}
}

func (m *meetingComposer) details(c *layout.Context) {
	fill := palette.Color{R: 235, G: 235, B: 245}
	data := table.Data{
		Rows: [][]string{
			{"Date of Meeting", m.now.Format("Monday, 02 January 2006")},
			{"Meeting Type", "Microsoft Teams"},
			{"Duration", orNA(m.meta.Length)},
			{"Source File", orNA(m.meta.Name)},
			{"File Size", orNA(m.meta.Size)},
			{"Format", orNA(m.meta.Type)},
		},
	}
	cols := []table.Column{{Width: 55, Bold: true, Fill: &fill}}
	st := meetingGrid(9.5)
	st.ShowHeader = false

	goldBanner(c, "Meeting Details", table.LeadHeight(c, c.Width(), data, cols, st))
	table.Render(c, c.Left(), c.Width(), data, cols, st)
	c.Advance(10)
}

func (m *meetingComposer) attendees(c *layout.Context) {
	speakers := m.analysis.Speakers(m.fallback)
	data := table.Data{Header: []string{"#", "Speaker Label", "Role Designation"}}
	for i, sp := range speakers {
		data.Rows = append(data.Rows, []string{strconv.Itoa(i + 1), sp, roleLabel(i)})
	}
	if len(data.Rows) == 0 {
		data.Rows = [][]string{{"-", "No speakers identified", ""}}
	}
	cols := []table.Column{
		indexColumn(),
		{Width: 80, Bold: true, Colorize: m.r.speakers.ColorFor},
	}
	st := meetingGrid(9.5)

	goldBanner(c, fmt.Sprintf("Attendees (%d identified)", len(speakers)), table.LeadHeight(c, c.Width(), data, cols, st))
	table.Render(c, c.Left(), c.Width(), data, cols, st)
}

func (m *meetingComposer) transcript(c *layout.Context) {
	data := table.Data{Header: []string{"Timestamp", "Speaker", "Utterance"}}
	for _, seg := range m.analysis.Diarization {
		data.Rows = append(data.Rows, []string{seg.Timestamp, speakerLabel(seg.Speaker, m.fallback), seg.Text})
	}
	if len(data.Rows) == 0 {
		data.Rows = [][]string{{"", "", "No transcript segments"}}
	}

	med := palette.TextMed
	cols := []table.Column{
		{Width: 22, Align: table.AlignCenter, Bold: true, TextColor: &med},
		{Width: 36, Bold: true, Colorize: m.r.speakers.ColorFor},
	}
	st := table.StripedStyle()
	st.FontSize = 8.5
	st.HeaderFontSize = 9
	st.Padding = 3.5
	st.HeaderFill = palette.Gold

	goldBanner(c, "Full Transcript - Speaker Diarization", table.LeadHeight(c, c.Width(), data, cols, st))
	table.Render(c, c.Left(), c.Width(), data, cols, st)
}

func (m *meetingComposer) notes(c *layout.Context) {
	data := table.Data{Header: []string{"#", "Note"}}
	for i, n := range m.analysis.Notes {
		data.Rows = append(data.Rows, []string{strconv.Itoa(i + 1), n})
	}
	if len(data.Rows) == 0 {
		data.Rows = [][]string{{"-", "No key notes were recorded."}}
	}
	cols := []table.Column{indexColumn()}
	st := meetingGrid(9)

	goldBanner(c, "Key Meeting Notes", table.LeadHeight(c, c.Width(), data, cols, st))
	table.Render(c, c.Left(), c.Width(), data, cols, st)
	c.Advance(10)
}

func (m *meetingComposer) actionItems(c *layout.Context) {
	data := table.Data{Header: []string{"#", "Status", "Action Item"}}
	for i, item := range m.analysis.ActionItems {
		data.Rows = append(data.Rows, []string{strconv.Itoa(i + 1), "open", item})
	}
	if len(data.Rows) == 0 {
		data.Rows = [][]string{{"-", "", "No action items were recorded."}}
	}
	cols := []table.Column{
		indexColumn(),
		{Width: 14, Align: table.AlignCenter, Checkbox: true},
	}
	st := meetingGrid(9)
	alt := palette.Color{R: 255, G: 248, B: 248}
	st.AltFill = &alt

	goldBanner(c, "Action Items", table.LeadHeight(c, c.Width(), data, cols, st))
	table.Render(c, c.Left(), c.Width(), data, cols, st)
}

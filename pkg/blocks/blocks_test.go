package blocks

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/nao1215/markdown"
)

func TestParse_TableFlushOnParagraph(t *testing.T) {
	t.Parallel()

	got := Parse(strings.Join([]string{"a|b", "1|2", "---", "not a table"}, "\n"))

	if len(got) != 2 {
		t.Fatalf("expected 2 blocks, got %d: %+v", len(got), got)
	}
	if got[0].Kind != KindTable {
		t.Fatalf("expected first block to be a table, got %v", got[0].Kind)
	}
	if !reflect.DeepEqual(got[0].Table.Header, Row{"a", "b"}) {
		t.Errorf("expected header [a b], got %v", got[0].Table.Header)
	}
	if !reflect.DeepEqual(got[0].Table.Body, []Row{{"1", "2"}}) {
		t.Errorf("expected body [[1 2]], got %v", got[0].Table.Body)
	}
	if got[1].Kind != KindParagraph || got[1].Text != "not a table" {
		t.Errorf("expected paragraph 'not a table', got %+v", got[1])
	}
}

func TestParse_Lines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []Block
	}{
		{
			name: "headings clamp to level 3",
			in:   "# One\n## Two\n### Three\n#### Four",
			want: []Block{
				{Kind: KindHeading, Level: 1, Text: "One"},
				{Kind: KindHeading, Level: 2, Text: "Two"},
				{Kind: KindHeading, Level: 3, Text: "Three"},
				{Kind: KindHeading, Level: 3, Text: "Four"},
			},
		},
		{
			name: "hash without space is a paragraph",
			in:   "#hashtag",
			want: []Block{{Kind: KindParagraph, Text: "#hashtag"}},
		},
		{
			name: "bullets strip markers and detect bold",
			in:   "- plain item\n* **bold item**\n  - indented",
			want: []Block{
				{Kind: KindBullet, Text: "plain item"},
				{Kind: KindBullet, Text: "bold item", Bold: true},
				{Kind: KindBullet, Text: "indented"},
			},
		},
		{
			name: "paragraph bold needs a marker pair",
			in:   "**Summary:** all good\nhalf ** marker",
			want: []Block{
				{Kind: KindParagraph, Text: "Summary: all good", Bold: true},
				{Kind: KindParagraph, Text: "half ** marker"},
			},
		},
		{
			name: "blank lines become spacers",
			in:   "one\n\n  \ntwo",
			want: []Block{
				{Kind: KindParagraph, Text: "one"},
				{Kind: KindBlank},
				{Kind: KindBlank},
				{Kind: KindParagraph, Text: "two"},
			},
		},
		{
			name: "carriage returns are ignored",
			in:   "line one\r\nline two\r\n",
			want: []Block{
				{Kind: KindParagraph, Text: "line one"},
				{Kind: KindParagraph, Text: "line two"},
			},
		},
		{
			name: "horizontal rule outside a table is dropped",
			in:   "above\n---\nbelow",
			want: []Block{
				{Kind: KindParagraph, Text: "above"},
				{Kind: KindParagraph, Text: "below"},
			},
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Parse(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestParse_PipedTable(t *testing.T) {
	t.Parallel()

	in := strings.Join([]string{
		"| Field | Declared | Verified |",
		"|:------|---------:|:--------:|",
		"| **Salary** | 25,000 | 18,000 |",
		"| Employer |  | ACME |",
		"| | |",
		"",
		"Done.",
	}, "\n")

	got := Parse(in)
	if len(got) != 3 {
		t.Fatalf("expected table, blank, paragraph, got %+v", got)
	}
	tbl := got[0].Table
	if tbl == nil {
		t.Fatal("expected a table block")
	}
	if !reflect.DeepEqual(tbl.Header, Row{"Field", "Declared", "Verified"}) {
		t.Errorf("unexpected header %v", tbl.Header)
	}
	want := []Row{
		{"Salary", "25,000", "18,000"},
		{"Employer", "", "ACME"},
	}
	if !reflect.DeepEqual(tbl.Body, want) {
		t.Errorf("expected body %v, got %v", want, tbl.Body)
	}
	if got[1].Kind != KindBlank {
		t.Errorf("expected trailing blank, got %v", got[1].Kind)
	}
}

func TestParse_SingleRowTable(t *testing.T) {
	t.Parallel()

	got := Parse("| only | header |")
	if len(got) != 1 || got[0].Kind != KindTable {
		t.Fatalf("expected one table block, got %+v", got)
	}
	if len(got[0].Table.Body) != 0 {
		t.Errorf("expected empty body, got %v", got[0].Table.Body)
	}
	if !reflect.DeepEqual(got[0].Table.Header, Row{"only", "header"}) {
		t.Errorf("unexpected header %v", got[0].Table.Header)
	}
}

func TestParse_TableFlushedByHeadingAndBullet(t *testing.T) {
	t.Parallel()

	got := Parse("a|b\n# Next\nc|d\n- item")
	kinds := make([]Kind, len(got))
	for i, b := range got {
		kinds[i] = b.Kind
	}
	want := []Kind{KindTable, KindHeading, KindTable, KindBullet}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("expected %v, got %v", want, kinds)
	}
}

func TestScanner_Lazy(t *testing.T) {
	t.Parallel()

	s := NewScanner(strings.NewReader("first\nsecond"))
	if !s.Scan() {
		t.Fatal("expected a block")
	}
	if s.Block().Text != "first" {
		t.Errorf("expected 'first', got %q", s.Block().Text)
	}
	if !s.Scan() || s.Block().Text != "second" {
		t.Errorf("expected 'second', got %q", s.Block().Text)
	}
	if s.Scan() {
		t.Error("expected end of input")
	}
	if s.Scan() {
		t.Error("expected Scan to keep returning false")
	}
	if s.Err() != nil {
		t.Errorf("unexpected error %v", s.Err())
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("read failed") }

func TestScanner_ReadError(t *testing.T) {
	t.Parallel()

	s := NewScanner(failingReader{})
	for s.Scan() {
	}
	if s.Err() == nil {
		t.Error("expected read error to be reported")
	}
}

func TestParse_GeneratedMarkdown(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	md := markdown.NewMarkdown(&sb)
	md.H2("Income Verification")
	md.PlainText("")
	md.PlainText("Declared salary differs from the bank statement.")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Source", "Amount"},
		Rows: [][]string{
			{"Declared", "25000"},
			{"Statement", "18000"},
		},
	})
	md.PlainText("")
	md.BulletList("Request salary certificate", "Escalate to credit officer")
	md.PlainText("Recommendation follows.")

	var kinds []Kind
	var tbl *Table
	for _, b := range Parse(md.String()) {
		if b.Kind == KindBlank {
			continue
		}
		kinds = append(kinds, b.Kind)
		if b.Kind == KindTable {
			tbl = b.Table
		}
	}

	want := []Kind{KindHeading, KindParagraph, KindTable, KindBullet, KindBullet, KindParagraph}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("expected %v, got %v", want, kinds)
	}
	if len(tbl.Header) != 2 || !strings.EqualFold(tbl.Header[0], "Source") || !strings.EqualFold(tbl.Header[1], "Amount") {
		t.Errorf("unexpected header %v", tbl.Header)
	}
	if len(tbl.Body) != 2 || tbl.Body[1][1] != "18000" {
		t.Errorf("unexpected body %v", tbl.Body)
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()

	if KindTable.String() != "table" || Kind(99).String() != "unknown" {
		t.Error("unexpected Kind names")
	}
}

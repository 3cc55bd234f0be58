// Package blocks interprets the small markdown dialect used by narrative text
// into a stream of typed blocks: headings, bullets, paragraphs, tables and
// blank spacers.
package blocks

import (
	"bufio"
	"io"
	"strings"
)

// Kind identifies the type of a Block.
type Kind int

const (
	KindParagraph Kind = iota
	KindHeading
	KindBullet
	KindTable
	KindBlank
)

func (k Kind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindHeading:
		return "heading"
	case KindBullet:
		return "bullet"
	case KindTable:
		return "table"
	case KindBlank:
		return "blank"
	default:
		return "unknown"
	}
}

// Row is one table row of already trimmed cells.
type Row []string

// Table is a flushed markdown table. The first accumulated row is the header.
type Table struct {
	Header Row
	Body   []Row
}

// Block is one renderable unit. Level is set for headings (1-3), Table for tables.
type Block struct {
	Kind  Kind
	Level int
	Text  string
	Bold  bool
	Table *Table
}

// MaxHeadingLevel is the deepest heading level that is styled distinctly.
const MaxHeadingLevel = 3

type state int

const (
	stateNormal state = iota
	stateTable
)

// Scanner reads blocks lazily from an io.Reader. Its shape mirrors bufio.Scanner:
//
//	s := blocks.NewScanner(r)
//	for s.Scan() {
//		b := s.Block()
//	}
//	if err := s.Err(); err != nil { ... }
type Scanner struct {
	lines *bufio.Scanner
	state state
	rows  []Row
	queue []Block
	block Block
	done  bool
	err   error
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	ls := bufio.NewScanner(r)
	ls.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Scanner{lines: ls}
}

// Scan advances to the next block. It returns false at end of input or on a read error.
func (s *Scanner) Scan() bool {
	for len(s.queue) == 0 {
		if s.done {
			return false
		}
		if !s.lines.Scan() {
			s.err = s.lines.Err()
			s.done = true
			s.flush()
			continue
		}
		s.step(s.lines.Text())
	}
	s.block = s.queue[0]
	s.queue = s.queue[1:]
	return true
}

// Block returns the block produced by the last call to Scan.
func (s *Scanner) Block() Block {
	return s.block
}

// Err returns the first non-EOF read error.
func (s *Scanner) Err() error {
	return s.err
}

// Parse interprets text in one pass.
func Parse(text string) []Block {
	var out []Block
	s := NewScanner(strings.NewReader(text))
	for s.Scan() {
		out = append(out, s.Block())
	}
	return out
}

// step applies the line rules in order: heading, divider, bullet, table row,
// blank, paragraph.
func (s *Scanner) step(raw string) {
	line := strings.ReplaceAll(raw, "\r", "")
	trimmed := strings.TrimSpace(line)

	if level, text, ok := heading(trimmed); ok {
		s.flush()
		s.emit(Block{Kind: KindHeading, Level: level, Text: stripBold(text)})
		return
	}

	if isDivider(trimmed) {
		return
	}

	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
		s.flush()
		text, bold := emphasis(strings.TrimSpace(trimmed[2:]))
		s.emit(Block{Kind: KindBullet, Text: text, Bold: bold})
		return
	}

	if strings.Contains(trimmed, "|") {
		if row := splitRow(trimmed); row != nil {
			s.rows = append(s.rows, row)
		}
		s.state = stateTable
		return
	}

	if trimmed == "" {
		s.flush()
		s.emit(Block{Kind: KindBlank})
		return
	}

	s.flush()
	text, bold := emphasis(trimmed)
	s.emit(Block{Kind: KindParagraph, Text: text, Bold: bold})
}

// flush is the single exit transition out of stateTable.
func (s *Scanner) flush() {
	if s.state != stateTable {
		return
	}
	s.state = stateNormal
	rows := s.rows
	s.rows = nil
	if len(rows) == 0 {
		return
	}
	t := &Table{Header: rows[0], Body: rows[1:]}
	if len(t.Body) == 0 {
		t.Body = nil
	}
	s.emit(Block{Kind: KindTable, Table: t})
}

func (s *Scanner) emit(b Block) {
	s.queue = append(s.queue, b)
}

func heading(line string) (int, string, bool) {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n > 6 || n >= len(line) || line[n] != ' ' {
		return 0, "", false
	}
	if n > MaxHeadingLevel {
		n = MaxHeadingLevel
	}
	return n, strings.TrimSpace(line[n+1:]), true
}

func isDivider(line string) bool {
	if line == "" {
		return false
	}
	marks := 0
	for _, r := range line {
		switch r {
		case '-', '=':
			marks++
		case ':', '|', '+', ' ', '\t':
		default:
			return false
		}
	}
	return marks > 0
}

// splitRow returns nil for rows with no non-empty cell.
func splitRow(line string) Row {
	cells := strings.Split(line, "|")
	for i := range cells {
		cells[i] = stripBold(strings.TrimSpace(cells[i]))
	}
	if len(cells) > 0 && cells[0] == "" {
		cells = cells[1:]
	}
	if len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	for _, c := range cells {
		if c != "" {
			return Row(cells)
		}
	}
	return nil
}

// emphasis reports whole-line bold when the text holds a marker pair.
func emphasis(text string) (string, bool) {
	if strings.Count(text, "**") < 2 {
		return text, false
	}
	return stripBold(text), true
}

func stripBold(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "**", ""))
}

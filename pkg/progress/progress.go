// Package progress reports batch rendering progress on a terminal.
//
// On a TTY the bar is redrawn in place:
//
//	Rendering [████████░░░░░░░░░░░░] 4/10 failed 1 (2.4s)
//
// Elsewhere each finished job is printed on its own line so that CI logs stay
// readable.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

const (
	hideCursor     = "\033[?25l"
	showCursor     = "\033[?25h"
	carriageReturn = "\r"

	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorReset = "\033[0m"

	symbolSuccess = "✓"
	symbolFailure = "✗"

	barFilled = "█"
	barEmpty  = "░"
)

// Config holds the bar's settings.
type Config struct {
	Total   int
	Message string

	// Width of the bar in cells. Default: 20
	Width int

	// Writer defaults to os.Stderr.
	Writer io.Writer

	// IsTTY overrides terminal detection.
	IsTTY *bool
}

// Bar counts finished jobs against a known total. It is safe for concurrent use.
type Bar struct {
	mu     sync.Mutex
	cfg    Config
	isTTY  bool
	done   int
	failed int
	start  time.Time
	active bool
	last   int
}

// New returns a bar for total jobs.
func New(cfg Config) *Bar {
	if cfg.Width <= 0 {
		cfg.Width = 20
	}
	if cfg.Writer == nil {
		cfg.Writer = os.Stderr
	}
	if cfg.Total < 0 {
		cfg.Total = 0
	}
	isTTY := IsTerminal(cfg.Writer)
	if cfg.IsTTY != nil {
		isTTY = *cfg.IsTTY
	}
	return &Bar{cfg: cfg, isTTY: isTTY}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// Start shows the empty bar. Starting twice is a no-op.
func (b *Bar) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active {
		return
	}
	b.active = true
	b.start = time.Now()
	if b.isTTY {
		fmt.Fprint(b.cfg.Writer, hideCursor)
		b.redraw()
	}
}

// Done records one finished job. label names it on non-TTY output.
func (b *Bar) Done(label string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.active {
		return
	}
	if b.done < b.cfg.Total {
		b.done++
	}
	if err != nil {
		b.failed++
	}

	if b.isTTY {
		b.redraw()
		return
	}
	if err != nil {
		fmt.Fprintf(b.cfg.Writer, "%s [%d/%d] %s: %v\n", symbolFailure, b.done, b.cfg.Total, label, err)
	} else {
		fmt.Fprintf(b.cfg.Writer, "%s [%d/%d] %s\n", symbolSuccess, b.done, b.cfg.Total, label)
	}
}

// Counts returns the finished and failed job counts.
func (b *Bar) Counts() (done, failed int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.done, b.failed
}

// Finish clears the bar and prints a summary line, green when nothing failed.
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.active {
		return
	}
	b.active = false

	symbol, color := symbolSuccess, colorGreen
	if b.failed > 0 {
		symbol, color = symbolFailure, colorRed
	}
	msg := fmt.Sprintf("%d/%d rendered", b.done-b.failed, b.cfg.Total)
	if b.failed > 0 {
		msg += fmt.Sprintf(", %d failed", b.failed)
	}
	elapsed := formatElapsed(time.Since(b.start))

	if b.isTTY {
		b.clear()
		fmt.Fprint(b.cfg.Writer, showCursor)
		fmt.Fprintf(b.cfg.Writer, "%s%s%s %s %s\n", color, symbol, colorReset, msg, elapsed)
		return
	}
	fmt.Fprintf(b.cfg.Writer, "%s %s %s\n", symbol, msg, elapsed)
}

// line builds the bar text. Caller holds the mutex.
func (b *Bar) line() string {
	parts := []string{}
	if b.cfg.Message != "" {
		parts = append(parts, b.cfg.Message)
	}
	parts = append(parts, buildBar(b.done, b.cfg.Total, b.cfg.Width))
	parts = append(parts, fmt.Sprintf("%d/%d", b.done, b.cfg.Total))
	if b.failed > 0 {
		parts = append(parts, fmt.Sprintf("failed %d", b.failed))
	}
	if !b.start.IsZero() {
		parts = append(parts, formatElapsed(time.Since(b.start)))
	}
	return strings.Join(parts, " ")
}

func (b *Bar) redraw() {
	b.clear()
	out := b.line()
	fmt.Fprint(b.cfg.Writer, out)
	b.last = len(out)
}

func (b *Bar) clear() {
	if b.last > 0 {
		fmt.Fprint(b.cfg.Writer, carriageReturn+strings.Repeat(" ", b.last)+carriageReturn)
		b.last = 0
	}
}

func buildBar(done, total, width int) string {
	filled := 0
	if total > 0 {
		filled = min(max(done*width/total, 0), width)
	}
	return "[" + strings.Repeat(barFilled, filled) + strings.Repeat(barEmpty, width-filled) + "]"
}

// formatElapsed renders "(1.2s)" below a minute and "(1m 30s)" above.
func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("(%.1fs)", d.Seconds())
	}
	return fmt.Sprintf("(%dm %ds)", int(d.Minutes()), int(d.Seconds())%60)
}

package progress

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func boolPtr(b bool) *bool { return &b }

func TestNonTTYOutput(t *testing.T) {
	var buf bytes.Buffer
	b := New(Config{Total: 3, Message: "Rendering", Writer: &buf, IsTTY: boolPtr(false)})
	b.Start()
	b.Done("standup.json", nil)
	b.Done("risk.yaml", errors.New("boom"))
	b.Finish()

	out := buf.String()
	if !strings.Contains(out, "✓ [1/3] standup.json") {
		t.Errorf("expected success line, got %q", out)
	}
	if !strings.Contains(out, "✗ [2/3] risk.yaml: boom") {
		t.Errorf("expected failure line, got %q", out)
	}
	if !strings.Contains(out, "1/3 rendered, 1 failed") {
		t.Errorf("expected summary, got %q", out)
	}
	if strings.Contains(out, "\033[") {
		t.Error("expected no escape codes on non-TTY output")
	}
}

func TestTTYRedraw(t *testing.T) {
	var buf bytes.Buffer
	b := New(Config{Total: 2, Message: "Rendering", Width: 10, Writer: &buf, IsTTY: boolPtr(true)})
	b.Start()
	b.Done("a", nil)
	b.Finish()

	out := buf.String()
	if !strings.HasPrefix(out, hideCursor) || !strings.Contains(out, showCursor) {
		t.Error("expected cursor hidden and restored")
	}
	if !strings.Contains(out, "[█████░░░░░] 1/2") {
		t.Errorf("expected half bar, got %q", out)
	}
	if !strings.Contains(out, colorGreen+symbolSuccess) {
		t.Errorf("expected green summary, got %q", out)
	}
}

func TestDoneBeforeStartIgnored(t *testing.T) {
	var buf bytes.Buffer
	b := New(Config{Total: 1, Writer: &buf, IsTTY: boolPtr(false)})
	b.Done("x", nil)
	b.Finish()
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
	if done, _ := b.Counts(); done != 0 {
		t.Errorf("expected 0 done, got %d", done)
	}
}

func TestConcurrentDone(t *testing.T) {
	var buf bytes.Buffer
	b := New(Config{Total: 50, Writer: &buf, IsTTY: boolPtr(true)})
	b.Start()

	var wg sync.WaitGroup
	for i := 0; i < 60; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var err error
			if i%10 == 0 {
				err = errors.New("x")
			}
			b.Done("job", err)
		}(i)
	}
	wg.Wait()

	done, failed := b.Counts()
	if done != 50 {
		t.Errorf("expected done clamped to 50, got %d", done)
	}
	if failed != 6 {
		t.Errorf("expected 6 failed, got %d", failed)
	}
}

func TestBuildBar(t *testing.T) {
	tests := []struct {
		done, total int
		want        string
	}{
		{0, 4, "[░░░░]"},
		{2, 4, "[██░░]"},
		{4, 4, "[████]"},
		{1, 0, "[░░░░]"},
	}
	for _, tt := range tests {
		if got := buildBar(tt.done, tt.total, 4); got != tt.want {
			t.Errorf("buildBar(%d, %d): expected %q, got %q", tt.done, tt.total, tt.want, got)
		}
	}
}

func TestFormatElapsed(t *testing.T) {
	if got := formatElapsed(1200 * time.Millisecond); got != "(1.2s)" {
		t.Errorf("expected (1.2s), got %q", got)
	}
	if got := formatElapsed(90 * time.Second); got != "(1m 30s)" {
		t.Errorf("expected (1m 30s), got %q", got)
	}
}

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestRedactingHandler_SensitiveKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		key      string
		value    string
		wantMask bool
	}{
		{"national id", "national_id", "784-1990-1234567-1", true},
		{"customer id", "customer_id", "C-1042", true},
		{"customer id uppercase", "Customer_ID", "C-1042", true},
		{"client name", "client", "Aafaq Islamic Finance", true},
		{"keyword match", "applicant_passport_no", "N1234567", true},
		{"salary keyword", "monthly_salary", "25000", true},
		{"render id kept", "render_id", "6f1c0d2e", false},
		{"report kept", "report", "risk", false},
		{"pages kept", "pages", "3", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := New(&buf, Options{Verbose: true})
			logger.Info("render", tt.key, tt.value)

			out := buf.String()
			masked := strings.Contains(out, MaskValue)
			if masked != tt.wantMask {
				t.Errorf("expected masked=%v for %s, got output %q", tt.wantMask, tt.key, out)
			}
			if tt.wantMask && strings.Contains(out, tt.value) {
				t.Errorf("value %q leaked: %q", tt.value, out)
			}
		})
	}
}

func TestRedactingHandler_SensitiveValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    string
		wantMask bool
	}{
		{"emirates id", "784-1985-7654321-2", true},
		{"emirates id compact", "784198576543212", true},
		{"iban", "AE070331234567890123456", true},
		{"email", "applicant@example.ae", true},
		{"data uri", "data:image/png;base64,iVBORw0KGgo=", true},
		{"file name", "standup.mp3", false},
		{"decision", "Approved", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := New(&buf, Options{Verbose: true})
			logger.Info("value", "field", tt.value)

			if got := strings.Contains(buf.String(), MaskValue); got != tt.wantMask {
				t.Errorf("expected masked=%v, got output %q", tt.wantMask, buf.String())
			}
		})
	}
}

func TestRedactingHandler_WithAttrsAndGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, Options{Verbose: true}).
		With("national_id", "784-1990-1234567-1").
		WithGroup("form").
		With(slog.Group("applicant", "customer_id", "C-9"))
	logger.Info("render")

	out := buf.String()
	if strings.Contains(out, "784-1990") || strings.Contains(out, "C-9") {
		t.Errorf("expected identifiers masked, got %q", out)
	}
	if strings.Count(out, MaskValue) != 2 {
		t.Errorf("expected 2 masked values, got %q", out)
	}
}

func TestNew_LevelsAndFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, Options{})
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("expected info suppressed at default level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("expected warn logged at default level")
	}

	buf.Reset()
	logger = New(&buf, Options{Level: "info", Format: "json"})
	logger.Info("render finished", "pages", 3)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "render finished" {
		t.Errorf("expected msg 'render finished', got %v", rec["msg"])
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"":      slog.LevelWarn,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(name)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q): expected %v, got %v (%v)", name, want, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

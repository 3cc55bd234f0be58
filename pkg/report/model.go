package report

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Segment is one diarized utterance.
type Segment struct {
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	Speaker   string `json:"speaker" yaml:"speaker"`
	Text      string `json:"text" yaml:"text"`
}

// AnalysisResult is the output of meeting transcription and analysis.
type AnalysisResult struct {
	Diarization []Segment `json:"diarization" yaml:"diarization"`
	Notes       []string  `json:"notes" yaml:"notes"`
	ActionItems []string  `json:"actionItems" yaml:"action_items"`
}

// Speakers returns the distinct speaker labels in order of first appearance.
// Segments without a speaker are attributed to fallback.
func (a *AnalysisResult) Speakers(fallback string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range a.Diarization {
		sp := speakerLabel(s.Speaker, fallback)
		if !seen[sp] {
			seen[sp] = true
			out = append(out, sp)
		}
	}
	return out
}

func speakerLabel(s, fallback string) string {
	if s = strings.TrimSpace(s); s == "" {
		return fallback
	}
	return s
}

// Metadata describes the recording a meeting analysis came from.
// All fields are display strings; empty ones print as N/A.
type Metadata struct {
	Name   string `json:"name" yaml:"name"`
	Size   string `json:"size" yaml:"size"`
	Type   string `json:"type" yaml:"type"`
	Length string `json:"length" yaml:"length"`
}

// FormData is the flat risk-assessment form keyed by field name, as submitted
// by the scoring front end. Values are strings or numbers.
type FormData map[string]any

// Prediction is the scoring model's decision.
type Prediction struct {
	Decision         string             `json:"decision" yaml:"decision"`
	Confidence       float64            `json:"confidence" yaml:"confidence"`
	AllProbabilities map[string]float64 `json:"all_probabilities" yaml:"all_probabilities"`
}

// Narrative is the free-text analysis attached to a risk report.
// It is rendered only when Status is "success".
type Narrative struct {
	Status   string `json:"status" yaml:"status"`
	Analysis string `json:"analysis" yaml:"analysis"`
}

// OrgContext identifies the institution the risk report is printed for.
type OrgContext struct {
	ClientName string `json:"client_name" yaml:"client_name"`

	// Logo is a data:image URI or a local file path.
	Logo string `json:"logo" yaml:"logo"`
}

// RiskInput bundles everything a risk report is composed from.
type RiskInput struct {
	Form       FormData    `json:"form" yaml:"form"`
	Prediction *Prediction `json:"prediction" yaml:"prediction"`
	Narrative  *Narrative  `json:"narrative" yaml:"narrative"`
	Org        OrgContext  `json:"org" yaml:"org"`
}

// Placeholders for absent form values.
const (
	NotAvailable = "N/A"
	NotSpecified = "Not specified"
)

// Text returns the field as display text, or "" if it is absent.
func (f FormData) Text(key string) string {
	v, ok := f[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case json.Number:
		return t.String()
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// Category returns a categorical field, or "Not specified".
func (f FormData) Category(key string) string {
	if s := f.Text(key); s != "" {
		return s
	}
	return NotSpecified
}

// Value returns a field as display text, or "N/A".
func (f FormData) Value(key string) string {
	if s := f.Text(key); s != "" {
		return s
	}
	return NotAvailable
}

// Number returns a numeric field. Numeric strings are accepted.
func (f FormData) Number(key string) (float64, bool) {
	v, ok := f[key]
	if !ok || v == nil {
		return 0, false
	}
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case float32:
		n = float64(t)
	case int:
		n = float64(t)
	case int64:
		n = float64(t)
	case int32:
		n = float64(t)
	case uint64:
		n = float64(t)
	case json.Number:
		x, err := t.Float64()
		if err != nil {
			return 0, false
		}
		n = x
	case string:
		x, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(t), ",", ""), 64)
		if err != nil {
			return 0, false
		}
		n = x
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	rerrors "github.com/BelalFares97/MultiTool/pkg/errors"
	"github.com/BelalFares97/MultiTool/pkg/report"
)

const meetingJSON = `{
  "diarization": [
    {"timestamp": "00:01", "speaker": "Speaker A", "text": "Good morning."},
    {"timestamp": "00:04", "speaker": "Speaker B", "text": "Morning, shall we begin?"}
  ],
  "notes": ["Quarterly targets confirmed."],
  "actionItems": ["Share the deck."]
}`

const riskYAML = `form:
  customer_id: "C-42"
  monthly_salary: 15000
  credit_score: 720
prediction:
  decision: Rejected
  confidence: 0.77
  all_probabilities:
    Approved: 0.23
    Rejected: 0.77
`

func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"standup.json": meetingJSON,
		"risk.yaml":    riskYAML,
		"notes.md":     "## Findings\nSalary matches the statement.\n",
		"jobs.yaml": `output: out
concurrency: 2
jobs:
  - kind: meeting
    input: standup.json
    recording:
      name: standup.mp3
      length: "00:42"
  - kind: risk
    input: risk.yaml
    narrative: notes.md
    client: Aafaq
  - kind: risk
    input: missing.yaml
  - kind: invoice
    input: risk.yaml
`,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func fixedRenderer() *report.Renderer {
	now := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	return report.NewRenderer(nil, report.WithClock(func() time.Time { return now }))
}

func TestLoadFile_ResolvesRelativePaths(t *testing.T) {
	t.Parallel()

	dir := writeFixtures(t)
	f, err := LoadFile(filepath.Join(dir, "jobs.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Jobs) != 4 || f.Concurrency != 2 {
		t.Fatalf("unexpected file %+v", f)
	}
	if f.Output != filepath.Join(dir, "out") {
		t.Errorf("expected output resolved, got %q", f.Output)
	}
	if f.Jobs[1].Input != filepath.Join(dir, "risk.yaml") || f.Jobs[1].Narrative != filepath.Join(dir, "notes.md") {
		t.Errorf("expected paths resolved, got %+v", f.Jobs[1])
	}
	if f.Jobs[0].Recording.Name != "standup.mp3" {
		t.Errorf("unexpected recording %+v", f.Jobs[0].Recording)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := LoadFile(filepath.Join(dir, "none.yaml")); !rerrors.IsCode(err, rerrors.ErrInputReadFailed) {
		t.Errorf("expected INPUT_READ_FAILED, got %v", err)
	}
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("jobs: [\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(bad); !rerrors.IsCode(err, rerrors.ErrInputParseFailed) {
		t.Errorf("expected INPUT_PARSE_FAILED, got %v", err)
	}
}

func TestRun_FailuresDoNotAbortBatch(t *testing.T) {
	t.Parallel()

	dir := writeFixtures(t)
	f, err := LoadFile(filepath.Join(dir, "jobs.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	results, err := Run(context.Background(), fixedRenderer(), f.Jobs, Options{
		Dir:         f.Output,
		Concurrency: f.Concurrency,
		OnDone:      func(Result) { calls.Add(1) },
	})
	if err != nil {
		t.Fatalf("unexpected batch error: %v", err)
	}
	if len(results) != 4 || int(calls.Load()) != 4 {
		t.Fatalf("expected 4 results and callbacks, got %d and %d", len(results), calls.Load())
	}
	if Failed(results) != 2 {
		t.Errorf("expected 2 failures, got %d", Failed(results))
	}

	for i, r := range results {
		if r.Index != i {
			t.Errorf("result %d out of order: index %d", i, r.Index)
		}
	}

	meeting := results[0]
	if meeting.Err != nil || meeting.Path != filepath.Join(dir, "out", "standup_mujaz_report.pdf") {
		t.Errorf("unexpected meeting result %+v", meeting)
	}
	if meeting.Artifact.PageCount() != 3 {
		t.Errorf("expected 3 meeting pages, got %d", meeting.Artifact.PageCount())
	}

	risk := results[1]
	if risk.Err != nil || filepath.Base(risk.Path) != "Risk_Assessment_C-42.pdf" {
		t.Fatalf("unexpected risk result %+v", risk)
	}
	doc := risk.Artifact.Document
	if !doc.Contains("DECISION: REJECTED") || !doc.Contains("Aafaq") || !doc.Contains("Salary matches the statement.") {
		t.Error("expected job overrides and narrative in the risk report")
	}

	if !rerrors.IsCode(results[2].Err, rerrors.ErrInputReadFailed) {
		t.Errorf("expected INPUT_READ_FAILED for missing input, got %v", results[2].Err)
	}
	if !rerrors.IsCode(results[3].Err, rerrors.ErrInputParseFailed) {
		t.Errorf("expected INPUT_PARSE_FAILED for unknown kind, got %v", results[3].Err)
	}

	entries, _ := os.ReadDir(filepath.Join(dir, "out"))
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if len(names) != 2 || strings.Contains(strings.Join(names, ","), ".tmp") {
		t.Errorf("expected exactly the two reports on disk, got %v", names)
	}
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	dir := writeFixtures(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := []Job{{Kind: KindMeeting, Input: filepath.Join(dir, "standup.json")}}
	results, err := Run(ctx, fixedRenderer(), jobs, Options{Dir: t.TempDir()})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !errors.Is(results[0].Err, context.Canceled) {
		t.Errorf("expected job marked cancelled, got %v", results[0].Err)
	}
}

func TestRender_OutputOverride(t *testing.T) {
	t.Parallel()

	dir := writeFixtures(t)
	art, err := Render(fixedRenderer(), Job{
		Kind:   KindMeeting,
		Input:  filepath.Join(dir, "standup.json"),
		Output: "sub/minutes.pdf",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if art.Name != "minutes.pdf" {
		t.Errorf("expected name minutes.pdf, got %q", art.Name)
	}

	if _, err := Render(fixedRenderer(), Job{Kind: KindRisk}); !rerrors.IsCode(err, rerrors.ErrInputMissing) {
		t.Errorf("expected INPUT_MISSING without input, got %v", err)
	}
}

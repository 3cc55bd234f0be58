// Package batch renders many reports concurrently from a job file.
package batch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	rerrors "github.com/BelalFares97/MultiTool/pkg/errors"
	"github.com/BelalFares97/MultiTool/pkg/logging"
	"github.com/BelalFares97/MultiTool/pkg/report"
)

// Job kinds.
const (
	KindMeeting = "meeting"
	KindRisk    = "risk"
)

// DefaultConcurrency is used when Options.Concurrency is not positive.
const DefaultConcurrency = 4

// Job is one report to render.
type Job struct {
	Kind  string `yaml:"kind"`
	Input string `yaml:"input"`

	// Output overrides the artifact's suggested file name.
	Output string `yaml:"output,omitempty"`

	// Recording describes the meeting's source file.
	Recording report.Metadata `yaml:"recording,omitempty"`

	// Narrative is a markdown file attached to a risk report.
	Narrative string `yaml:"narrative,omitempty"`
	Client    string `yaml:"client,omitempty"`
	Logo      string `yaml:"logo,omitempty"`
}

// File is a batch job file.
type File struct {
	Output      string `yaml:"output"`
	Concurrency int    `yaml:"concurrency"`
	Jobs        []Job  `yaml:"jobs"`
}

// LoadFile reads a YAML batch file. Relative input, narrative and logo paths
// are resolved against the file's directory.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, rerrors.InputWrap(err, rerrors.ErrInputReadFailed, "failed to read batch file").
			WithContext("path", path)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, rerrors.InputWrap(err, rerrors.ErrInputParseFailed, "failed to parse batch file").
			WithContext("path", path)
	}

	base := filepath.Dir(path)
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) || strings.HasPrefix(strings.ToLower(p), "data:") {
			return p
		}
		return filepath.Join(base, p)
	}
	for i := range f.Jobs {
		j := &f.Jobs[i]
		j.Input = resolve(j.Input)
		j.Narrative = resolve(j.Narrative)
		j.Logo = resolve(j.Logo)
	}
	if f.Output != "" {
		f.Output = resolve(f.Output)
	}
	return &f, nil
}

// Render renders a single job.
func Render(r *report.Renderer, job Job) (*report.Artifact, error) {
	if job.Input == "" {
		return nil, rerrors.InputMissing(job.Kind, "input")
	}

	var art *report.Artifact
	var err error
	switch strings.ToLower(job.Kind) {
	case KindMeeting:
		var a report.AnalysisResult
		if err := report.LoadFile(job.Input, &a); err != nil {
			return nil, err
		}
		art, err = r.MeetingReport(&a, job.Recording)

	case KindRisk:
		var in report.RiskInput
		if err := report.LoadFile(job.Input, &in); err != nil {
			return nil, err
		}
		if job.Narrative != "" {
			text, err := os.ReadFile(job.Narrative)
			if err != nil {
				return nil, rerrors.InputWrap(err, rerrors.ErrInputReadFailed, "failed to read narrative").
					WithContext("path", job.Narrative)
			}
			in.Narrative = &report.Narrative{Status: "success", Analysis: string(text)}
		}
		if job.Client != "" {
			in.Org.ClientName = job.Client
		}
		if job.Logo != "" {
			in.Org.Logo = job.Logo
		}
		art, err = r.RiskReport(in)

	default:
		return nil, rerrors.Input(rerrors.ErrInputParseFailed, "unknown job kind").
			WithContext("kind", job.Kind).
			WithSuggestion("Use kind 'meeting' or 'risk'")
	}
	if err != nil {
		return nil, err
	}

	if job.Output != "" {
		art.Name = filepath.Base(job.Output)
	}
	return art, nil
}

// Result is the outcome of one job. Err is set when the job failed.
type Result struct {
	Index    int
	Job      Job
	Artifact *report.Artifact
	Path     string
	Elapsed  time.Duration
	Err      error
}

// Options configures Run.
type Options struct {
	// Dir receives the rendered files. Default: "."
	Dir string

	// Concurrency bounds the number of renders in flight.
	Concurrency int

	Logger *slog.Logger

	// OnDone is called once per finished job. Calls are serialized.
	OnDone func(Result)
}

// Run renders and saves jobs concurrently. Results are in job order; a failed
// job is recorded in its Result and does not stop the others. The returned
// error is non-nil only when ctx is cancelled, in which case jobs that never
// started carry ctx.Err().
func Run(ctx context.Context, r *report.Renderer, jobs []Job, opts Options) ([]Result, error) {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	log.Info("batch started", "jobs", len(jobs), "concurrency", opts.Concurrency)
	started := time.Now()

	results := make([]Result, len(jobs))
	var mu sync.Mutex
	done := func(res Result) {
		results[res.Index] = res
		if opts.OnDone != nil {
			mu.Lock()
			opts.OnDone(res)
			mu.Unlock()
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i, job := range jobs {
		results[i] = Result{Index: i, Job: job}
		g.Go(func() error {
			select {
			case <-ctx.Done():
				results[i].Err = ctx.Err()
				return ctx.Err()
			default:
			}

			t0 := time.Now()
			res := Result{Index: i, Job: job}
			res.Artifact, res.Err = Render(r, job)
			if res.Err == nil {
				res.Path, res.Err = res.Artifact.Save(opts.Dir)
			}
			res.Elapsed = time.Since(t0)

			if res.Err != nil {
				log.Warn("job failed", "index", i+1, "kind", job.Kind, "error", res.Err)
			} else {
				log.Debug("job finished", "index", i+1, "kind", job.Kind, "pages", res.Artifact.PageCount())
			}
			done(res)
			return nil
		})
	}

	err := g.Wait()
	log.Info("batch finished",
		"jobs", len(jobs),
		"failed", Failed(results),
		"elapsed", time.Since(started))
	return results, err
}

// Failed counts the results that carry an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

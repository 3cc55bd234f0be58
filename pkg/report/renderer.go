// Package report composes meeting and risk-assessment reports onto paginated
// PDF documents.
//
// A Renderer holds only configuration. Every call builds its own PDF surface,
// layout context and outline, so one Renderer may be shared by any number of
// goroutines.
package report

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/BelalFares97/MultiTool/pkg/config"
	rerrors "github.com/BelalFares97/MultiTool/pkg/errors"
	"github.com/BelalFares97/MultiTool/pkg/layout"
	"github.com/BelalFares97/MultiTool/pkg/logging"
	"github.com/BelalFares97/MultiTool/pkg/palette"
)

// Creator is written to the PDF metadata of every report.
const Creator = "reportgen"

// Renderer composes reports.
type Renderer struct {
	cfg      *config.Config
	speakers *palette.Assigner
	log      *slog.Logger
	now      func() time.Time
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

// WithClock replaces time.Now, which fixes the generated-at stamps and report IDs.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRenderer returns a Renderer for cfg. A nil cfg uses config.Default().
func NewRenderer(cfg *config.Config, opts ...Option) *Renderer {
	if cfg == nil {
		cfg = config.Default()
	}
	r := &Renderer{
		cfg:      cfg,
		speakers: cfg.Assigner(),
		log:      logging.Discard(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Config returns the renderer's configuration.
func (r *Renderer) Config() *config.Config { return r.cfg }

// job is one render: its geometry, chrome and the section plan that fills it.
type job struct {
	kind    string
	name    string
	layout  layout.Config
	meta    layout.Metadata
	chrome  layout.Chrome
	compose func(c *layout.Context)
}

func (r *Renderer) run(j job) (art *Artifact, err error) {
	id := uuid.NewString()
	log := r.log.With("render_id", id, "report", j.kind)
	started := time.Now()
	log.Debug("render started", "file", j.name)

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("render panicked", "panic", fmt.Sprint(rec))
			art, err = nil, rerrors.InternalPanic(rec).WithContext("report", j.kind)
		}
	}()

	pdf := layout.NewPDF(j.layout, j.meta)
	pdf.SetCreationDate(r.now())
	c := layout.New(j.layout, pdf, j.chrome, log)

	j.compose(c)
	doc := c.Finish()
	if err := c.Err(); err != nil {
		log.Error("render failed", "error", err)
		return nil, rerrors.RenderWrap(err, "failed to draw "+j.kind+" report").
			WithContext("report", j.kind)
	}

	data, err := layout.Render(pdf)
	if err != nil {
		log.Error("render failed", "error", err)
		return nil, rerrors.RenderWrap(err, "failed to serialize "+j.kind+" report").
			WithContext("report", j.kind)
	}

	art = &Artifact{ID: id, Name: j.name, Data: data, Document: doc}
	log.Info("render finished",
		"pages", doc.PageCount(),
		"bytes", len(data),
		"sha256", art.ShortChecksum(),
		"elapsed", time.Since(started))
	return art, nil
}

// Package pipeline runs slidelint's analyses over a whole deck.
//
// The CLI and the HTTP server both go through a [Runner] so that defaults,
// caching and logging behave the same from every entry point.
//
// # Usage
//
//	doc, err := pipeline.LoadDocument("deck.pptx", os.Stdin)
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.CheckBounds = true
//	result, err := runner.Analyze(ctx, doc, opts, sink)
//
// A cached report replays its diagnostic lines to the sink, so output is
// identical whether or not the cache was hit.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/slidelint/pkg/analysis"
	"github.com/matzehuels/slidelint/pkg/cache"
	"github.com/matzehuels/slidelint/pkg/errors"
	"github.com/matzehuels/slidelint/pkg/geom"
	"github.com/matzehuels/slidelint/pkg/slide"
)

// Output formats for reports.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ValidateFormat checks that a report format is supported.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, FormatText, FormatJSON)
}

// =============================================================================
// Options
// =============================================================================

// Options configures an analysis run. Start from DefaultOptions or
// Config.Options; the zero value reports containment.
type Options struct {
	// Slides are 1-based slide numbers. Empty means every slide.
	Slides []int `json:"slides,omitempty"`

	Overlap analysis.Options `json:"overlap"`

	// CheckBounds adds the out-of-bounds check to each slide.
	CheckBounds bool `json:"check_bounds,omitempty"`

	// Refresh skips cache reads. Results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// DefaultOptions returns options for every slide with containment muted.
func DefaultOptions() Options {
	return Options{Overlap: analysis.DefaultOptions()}
}

// SetDefaults fills unset tolerances and the logger.
func (o *Options) SetDefaults() {
	o.Overlap.Tolerances = o.Overlap.Tolerances.OrDefault()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate applies defaults and checks the slide selection against doc.
func (o *Options) Validate(doc *slide.Document) error {
	o.SetDefaults()
	if doc == nil {
		return errors.New(errors.ErrCodeInvalidInput, "document is nil")
	}
	for _, n := range o.Slides {
		if err := errors.ValidateSlideNumber(n, len(doc.Slides)); err != nil {
			return err
		}
	}
	return nil
}

// SlideNumbers returns the selected slide numbers, or every slide of doc.
func (o *Options) SlideNumbers(doc *slide.Document) []int {
	if len(o.Slides) > 0 {
		return o.Slides
	}
	ns := make([]int, len(doc.Slides))
	for i := range ns {
		ns[i] = i + 1
	}
	return ns
}

// ReportKeyOpts returns cache key options for slide n. label is the slide's
// diagnostic label, which differs between attached and detached slides of
// otherwise identical decks.
func (o *Options) ReportKeyOpts(n int, label string) cache.ReportKeyOpts {
	tol := o.Overlap.Tolerances.OrDefault()
	return cache.ReportKeyOpts{
		Slide:                  n,
		Label:                  label,
		MuteContainment:        o.Overlap.MuteContainment,
		IgnoreLines:            o.Overlap.IgnoreLines,
		IgnoreDecorativeShapes: o.Overlap.IgnoreDecorativeShapes,
		CheckBounds:            o.CheckBounds,
		Coarse:                 tol.Coarse,
		Fine:                   tol.Fine,
	}
}

// =============================================================================
// Results
// =============================================================================

// SlideResult is the analysis of one slide. It is what the cache stores.
type SlideResult struct {
	Number     int                  `json:"number"`
	Report     *analysis.Report     `json:"report"`
	Canvas     *slide.Canvas        `json:"canvas,omitempty"`
	Violations []analysis.Violation `json:"violations,omitempty"`

	// Lines are every diagnostic emitted for the slide, in order.
	Lines []analysis.Line `json:"lines"`
}

// Result contains the outputs of Runner.Analyze.
type Result struct {
	// RunID identifies the run in logs and API responses.
	RunID string `json:"run_id"`

	// DeckHash is the content hash of the analyzed document.
	DeckHash string `json:"deck_hash"`

	Slides    []SlideResult `json:"slides"`
	Stats     Stats         `json:"stats"`
	CacheInfo CacheInfo     `json:"cache"`
}

// Clean reports whether no slide has anything reportable.
func (r *Result) Clean(opts Options) bool {
	for _, s := range r.Slides {
		if !s.Report.Clean(opts.Overlap) || len(s.Violations) > 0 {
			return false
		}
	}
	return true
}

// Stats contains run totals.
type Stats struct {
	Slides       int           `json:"slides"`
	Elements     int           `json:"elements"`
	Overlaps     int           `json:"overlaps"`
	Severe       int           `json:"severe"`
	Containments int           `json:"containments"`
	OutOfBounds  int           `json:"out_of_bounds"`
	Duration     time.Duration `json:"duration"`
}

func (s *Stats) add(r *SlideResult, elements int) {
	s.Slides++
	s.Elements += elements
	s.Overlaps += len(r.Report.Overlaps)
	s.Severe += r.Report.Severe()
	s.Containments += len(r.Report.Containments)
	s.OutOfBounds += len(r.Violations)
}

// CacheInfo counts per-slide cache hits.
type CacheInfo struct {
	Hits   int `json:"hits"`
	Misses int `json:"misses"`
}

// tolerances logs a debug line when t widens the defaults.
func tolerances(logger *log.Logger, t geom.Tolerances) geom.Tolerances {
	t = t.OrDefault()
	if !t.IsDefault() {
		logger.Debug("using non-default tolerances", "coarse", t.Coarse, "fine", t.Fine)
	}
	return t
}

package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/slidelint/pkg/analysis"
	"github.com/matzehuels/slidelint/pkg/arrange"
	"github.com/matzehuels/slidelint/pkg/cache"
	"github.com/matzehuels/slidelint/pkg/geom"
	"github.com/matzehuels/slidelint/pkg/observability"
	"github.com/matzehuels/slidelint/pkg/slide"
)

// Runner executes analyses with caching.
//
// The Runner holds no per-run state beyond the cache and logger. Mutating
// calls (Align, Distribute) touch only the document they are given, so one
// Runner can serve concurrent requests as long as each has its own deck.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the per-entry default lifetimes when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Analyze runs overlap analysis, and the bounds check when requested, on
// every selected slide of doc. Diagnostics go to sink in slide order.
func (r *Runner) Analyze(ctx context.Context, doc *slide.Document, opts Options, sink analysis.Sink) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(doc); err != nil {
		return nil, err
	}
	start := time.Now()

	deckHash, err := DeckHash(doc)
	if err != nil {
		return nil, err
	}
	result := &Result{RunID: uuid.NewString(), DeckHash: deckHash}
	canvas := slide.NewCachedCanvasResolver(nil)

	for _, n := range opts.SlideNumbers(doc) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, hit, err := r.analyzeSlide(ctx, doc, deckHash, n, opts, canvas, sink)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", n, err)
		}
		if hit {
			result.CacheInfo.Hits++
		} else {
			result.CacheInfo.Misses++
		}
		result.Slides = append(result.Slides, *res)
		result.Stats.add(res, len(doc.Slides[n-1].Elements))
	}
	result.Stats.Duration = time.Since(start)

	r.Logger.Info("analyzed deck",
		"run", result.RunID,
		"slides", result.Stats.Slides,
		"overlaps", result.Stats.Overlaps,
		"cache_hits", result.CacheInfo.Hits,
		"duration", result.Stats.Duration)
	return result, nil
}

// AnalyzeSlideWithCacheInfo analyzes slide n of doc and reports whether the
// result came from the cache. On a hit the stored lines are replayed to sink.
func (r *Runner) AnalyzeSlideWithCacheInfo(ctx context.Context, doc *slide.Document, n int, opts Options, sink analysis.Sink) (*SlideResult, bool, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(doc); err != nil {
		return nil, false, err
	}
	deckHash, err := DeckHash(doc)
	if err != nil {
		return nil, false, err
	}
	return r.analyzeSlide(ctx, doc, deckHash, n, opts, slide.CanvasResolver{}, sink)
}

func (r *Runner) analyzeSlide(ctx context.Context, doc *slide.Document, deckHash string, n int, opts Options, canvas slide.CanvasSource, sink analysis.Sink) (*SlideResult, bool, error) {
	s, err := doc.Slide(n)
	if err != nil {
		return nil, false, err
	}
	hooks := observability.Analysis()
	key := r.Keyer.ReportKey(deckHash, opts.ReportKeyOpts(n, analysis.SlideLabel(s)))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached SlideResult
			if err := json.Unmarshal(data, &cached); err == nil && cached.Report != nil {
				observability.Cache().OnCacheHit(ctx, "report")
				analysis.Replay(sink, cached.Lines)
				return &cached, true, nil
			}
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "error", err)
		}
	}
	observability.Cache().OnCacheMiss(ctx, "report")

	hooks.OnAnalyzeStart(ctx, n, len(s.Elements))
	start := time.Now()

	rec := &analysis.Recorder{}
	out := analysis.Tee(rec, sink)
	overlap := opts.Overlap
	overlap.Tolerances = tolerances(opts.Logger, overlap.Tolerances)

	rep, err := analysis.AnalyzeOverlaps(s, overlap, out)
	if err != nil {
		hooks.OnAnalyzeComplete(ctx, n, 0, 0, time.Since(start), err)
		return nil, false, err
	}
	res := &SlideResult{Number: n, Report: rep}

	if opts.CheckBounds {
		c, err := canvas.Resolve(s, doc)
		if err != nil {
			hooks.OnAnalyzeComplete(ctx, n, len(rep.Overlaps), len(rep.Containments), time.Since(start), err)
			return nil, false, err
		}
		res.Canvas = &c
		res.Violations, err = analysis.CheckBounds(s, c, overlap.Tolerances, out)
		if err != nil {
			return nil, false, err
		}
	}
	res.Lines = rec.Lines
	hooks.OnAnalyzeComplete(ctx, n, len(rep.Overlaps), len(rep.Containments), time.Since(start), nil)

	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLReport)); err != nil {
			opts.Logger.Warn("cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "report", len(data))
		}
	}
	return res, false, nil
}

// RelationsWithCacheInfo classifies every element pair on slide n.
func (r *Runner) RelationsWithCacheInfo(ctx context.Context, doc *slide.Document, n int, tol geom.Tolerances) ([]analysis.Pair, bool, error) {
	if doc == nil {
		return nil, false, fmt.Errorf("document is nil")
	}
	s, err := doc.Slide(n)
	if err != nil {
		return nil, false, err
	}
	tol = tolerances(r.Logger, tol)
	deckHash, err := DeckHash(doc)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.RelationsKey(deckHash, cache.RelationsKeyOpts{Slide: n, Coarse: tol.Coarse, Fine: tol.Fine})

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var pairs []analysis.Pair
		if err := json.Unmarshal(data, &pairs); err == nil {
			observability.Cache().OnCacheHit(ctx, "relations")
			return pairs, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "relations")

	pairs, err := analysis.Relations(s, tol)
	if err != nil {
		return nil, false, err
	}
	if data, err := json.Marshal(pairs); err == nil {
		if r.Cache.Set(ctx, key, data, r.ttl(cache.TTLRelations)) == nil {
			observability.Cache().OnCacheSet(ctx, "relations", len(data))
		}
	}
	return pairs, false, nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// Relations is a convenience wrapper that discards the cache hit info.
func (r *Runner) Relations(ctx context.Context, doc *slide.Document, n int, tol geom.Tolerances) ([]analysis.Pair, error) {
	pairs, _, err := r.RelationsWithCacheInfo(ctx, doc, n, tol)
	return pairs, err
}

// Canvas resolves the canvas size of slide n.
func (r *Runner) Canvas(doc *slide.Document, n int) (slide.Canvas, error) {
	if doc == nil {
		return slide.Canvas{}, fmt.Errorf("document is nil")
	}
	s, err := doc.Slide(n)
	if err != nil {
		return slide.Canvas{}, err
	}
	return slide.CanvasResolver{}.Resolve(s, doc)
}

// Align aligns elements of slide n in place. Nothing is cached: the deck
// changes.
func (r *Runner) Align(ctx context.Context, doc *slide.Document, n int, indices []int, mode arrange.Alignment) ([]arrange.Move, error) {
	s, err := r.slide(doc, n)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	moves, err := arrange.Align(s, indices, mode)
	observability.Analysis().OnArrange(ctx, string(mode), len(indices), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("aligned elements", "slide", n, "mode", mode, "moved", len(moves))
	return moves, nil
}

// Distribute distributes elements of slide n in place.
func (r *Runner) Distribute(ctx context.Context, doc *slide.Document, n int, indices []int, axis arrange.Direction) ([]arrange.Move, error) {
	s, err := r.slide(doc, n)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	moves, err := arrange.Distribute(s, indices, axis)
	observability.Analysis().OnArrange(ctx, string(axis), len(indices), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("distributed elements", "slide", n, "axis", axis, "moved", len(moves))
	return moves, nil
}

func (r *Runner) slide(doc *slide.Document, n int) (*slide.Slide, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}
	return doc.Slide(n)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// DeckHash returns the content hash of doc.
func DeckHash(doc *slide.Document) (string, error) {
	data, err := slide.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("serialize deck for cache key: %w", err)
	}
	return cache.Hash(data), nil
}

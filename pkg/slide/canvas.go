package slide

import (
	"encoding/json"
	"math"
	"reflect"

	"github.com/matzehuels/slidelint/pkg/errors"
)

const (
	// EMUPerInch is the number of English Metric Units in one inch.
	EMUPerInch = 914400

	// emuThreshold separates inch-scale values from device units. No real
	// slide is wider than 1000 inches.
	emuThreshold = 1000
)

// Canvas is a slide's width and height in inches.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CanvasSource resolves the canvas for a slide.
type CanvasSource interface {
	Resolve(s *Slide, doc *Document) (Canvas, error)
}

// dimensionPairs are the field names tried, in order, on each container.
var dimensionPairs = [][2]string{
	{"width", "height"},
	{"w", "h"},
	{"cx", "cy"},
	{"slideWidth", "slideHeight"},
	{"slide_width", "slide_height"},
	{"sldW", "sldH"},
}

// nestedKeys are wrapper properties searched when a container has no pair
// of its own.
var nestedKeys = []string{
	"size",
	"layout",
	"presLayout",
	"_presLayout",
	"dimensions",
	"sldSz",
	"pageSize",
}

// CanvasResolver finds canvas dimensions by searching candidate layout
// objects, most slide-specific first: the slide's own layout, its owning
// document's layout, then doc's layout and document-level props. The first
// usable pair wins. It holds no state.
type CanvasResolver struct{}

// Resolve returns the canvas for s. doc may be nil when s is attached to a
// document. Values above 1000 are taken as EMU and converted to inches.
func (CanvasResolver) Resolve(s *Slide, doc *Document) (Canvas, error) {
	if s == nil {
		return Canvas{}, errors.New(errors.ErrCodeInvalidSlide, "slide is nil")
	}

	candidates := []map[string]any{s.Layout}
	if owner := s.Owner(); owner != nil {
		candidates = append(candidates, owner.Layout)
	}
	if doc != nil {
		candidates = append(candidates, doc.Layout, doc.Props)
	}

	seen := make(map[uintptr]bool)
	for _, c := range candidates {
		if w, h, ok := findPair(c, seen); ok {
			return normalize(w, h), nil
		}
	}
	return Canvas{}, errors.New(errors.ErrCodeDimensionResolution,
		"no width/height pair found in %d candidate layout(s)", len(candidates))
}

func normalize(w, h float64) Canvas {
	if w > emuThreshold || h > emuThreshold {
		return Canvas{Width: w / EMUPerInch, Height: h / EMUPerInch}
	}
	return Canvas{Width: w, Height: h}
}

func findPair(v any, seen map[uintptr]bool) (w, h float64, ok bool) {
	m, isMap := v.(map[string]any)
	if !isMap || m == nil {
		return 0, 0, false
	}
	id := reflect.ValueOf(m).Pointer()
	if seen[id] {
		return 0, 0, false
	}
	seen[id] = true

	for _, p := range dimensionPairs {
		w, wok := dimension(m[p[0]])
		h, hok := dimension(m[p[1]])
		if wok && hok {
			return w, h, true
		}
	}
	for _, k := range nestedKeys {
		if w, h, ok := findPair(m[k], seen); ok {
			return w, h, true
		}
	}
	return 0, 0, false
}

// dimension converts v to a positive finite number.
func dimension(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, false
	}
	return f, true
}

// CachedCanvasResolver memoizes resolved canvases per slide. Its lifetime is
// the caller's: create one per batch of work and call Reset when layouts may
// have changed. Not safe for concurrent use.
type CachedCanvasResolver struct {
	Inner CanvasSource
	memo  map[*Slide]Canvas
}

// NewCachedCanvasResolver wraps inner, defaulting to CanvasResolver.
func NewCachedCanvasResolver(inner CanvasSource) *CachedCanvasResolver {
	if inner == nil {
		inner = CanvasResolver{}
	}
	return &CachedCanvasResolver{Inner: inner, memo: make(map[*Slide]Canvas)}
}

// Resolve returns the memoized canvas for s or resolves and stores it.
// Failures are not memoized.
func (r *CachedCanvasResolver) Resolve(s *Slide, doc *Document) (Canvas, error) {
	if c, ok := r.memo[s]; ok {
		return c, nil
	}
	inner := r.Inner
	if inner == nil {
		inner = CanvasResolver{}
	}
	c, err := inner.Resolve(s, doc)
	if err != nil {
		return Canvas{}, err
	}
	if r.memo == nil {
		r.memo = make(map[*Slide]Canvas)
	}
	r.memo[s] = c
	return c, nil
}

// Reset forgets every memoized canvas.
func (r *CachedCanvasResolver) Reset() {
	clear(r.memo)
}

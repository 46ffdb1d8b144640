package analysis

import (
	"fmt"
	"math"

	"github.com/matzehuels/slidelint/pkg/geom"
	"github.com/matzehuels/slidelint/pkg/slide"
)

const (
	// MinSevereOverlap is the intersection width and height, in inches, at
	// which a text overlap becomes severe.
	MinSevereOverlap = 0.1

	// HintEqualityTolerance is the relative difference under which the two
	// overlap extents count as equal and both axes are suggested.
	HintEqualityTolerance = 0.15

	// DecorativeTransparency is the fill transparency, in percent, at or
	// above which a stroked shape counts as decorative.
	DecorativeTransparency = 99
)

// Options controls which elements take part in overlap analysis.
type Options struct {
	// MuteContainment suppresses containment lines and the containment count
	// in the summary. Containment is usually intentional, as with full-bleed
	// backgrounds.
	MuteContainment bool `json:"muteContainment" toml:"mute_containment"`

	// IgnoreLines skips line elements.
	IgnoreLines bool `json:"ignoreLines" toml:"ignore_lines"`

	// IgnoreDecorativeShapes skips stroked shapes with no visible fill.
	IgnoreDecorativeShapes bool `json:"ignoreDecorativeShapes" toml:"ignore_decorative_shapes"`

	Tolerances geom.Tolerances `json:"tolerances" toml:"-"`
}

// DefaultOptions returns options with containment muted and nothing ignored.
func DefaultOptions() Options {
	return Options{MuteContainment: true, Tolerances: geom.DefaultTolerances}
}

// Hint suggests how far to move a severe overlap apart. A zero field means
// that axis is not suggested.
type Hint struct {
	Horizontal float64 `json:"horizontal,omitempty"`
	Vertical   float64 `json:"vertical,omitempty"`
}

// String renders the hint as it appears in diagnostics.
func (h Hint) String() string {
	switch {
	case h.Horizontal > 0 && h.Vertical > 0:
		return fmt.Sprintf("move apart horizontally by %s or vertically by %s",
			FormatNumber(h.Horizontal), FormatNumber(h.Vertical))
	case h.Horizontal > 0:
		return fmt.Sprintf("move apart horizontally by %s", FormatNumber(h.Horizontal))
	case h.Vertical > 0:
		return fmt.Sprintf("move apart vertically by %s", FormatNumber(h.Vertical))
	}
	return ""
}

// hintFor picks both axes when the overlap extents are within
// HintEqualityTolerance of each other, else the axis with the smaller one.
func hintFor(in geom.Rect) Hint {
	m := math.Max(in.W, in.H)
	if m <= 0 {
		return Hint{}
	}
	if math.Abs(in.W-in.H)/m <= HintEqualityTolerance {
		return Hint{Horizontal: in.W, Vertical: in.H}
	}
	if in.W < in.H {
		return Hint{Horizontal: in.W}
	}
	return Hint{Vertical: in.H}
}

// Overlap is one pair of elements whose boxes overlap.
type Overlap struct {
	A            slide.Descriptor `json:"a"`
	B            slide.Descriptor `json:"b"`
	Intersection geom.Rect        `json:"intersection"`
	Severe       bool             `json:"severe"`
	Hint         *Hint            `json:"hint,omitempty"`
}

// Containment is one pair where Container encloses Contained.
type Containment struct {
	Container slide.Descriptor `json:"container"`
	Contained slide.Descriptor `json:"contained"`
}

// Report is the result of AnalyzeOverlaps.
type Report struct {
	Slide        string        `json:"slide"`
	Overlaps     []Overlap     `json:"overlaps"`
	Containments []Containment `json:"containments"`

	// Suppressed counts line pairs whose boxes overlapped but whose
	// segments did not.
	Suppressed int `json:"suppressed"`

	// Lines are the diagnostics emitted, in order.
	Lines []Line `json:"lines"`
}

// Severe returns the number of severe overlaps.
func (r *Report) Severe() int {
	n := 0
	for _, o := range r.Overlaps {
		if o.Severe {
			n++
		}
	}
	return n
}

// Clean reports whether nothing reportable was found.
func (r *Report) Clean(opts Options) bool {
	return len(r.Overlaps) == 0 && (opts.MuteContainment || len(r.Containments) == 0)
}

// IsDecorative reports whether el is a stroked shape with no visible fill.
func IsDecorative(el *slide.Element) bool {
	if el == nil || slide.Classify(el) != slide.TagShape || el.Line == nil {
		return false
	}
	if el.Fill == nil {
		return true
	}
	return el.Fill.Transparency != nil && *el.Fill.Transparency >= DecorativeTransparency
}

// Describe builds descriptors for s with Ignorable set per opts.
func Describe(s *slide.Slide, opts Options) []slide.Descriptor {
	ds := slide.DescribeAll(s)
	for i := range ds {
		switch {
		case opts.IgnoreLines && ds[i].Tag.IsLine():
			ds[i].Ignorable = true
		case opts.IgnoreDecorativeShapes && IsDecorative(s.Elements[i]):
			ds[i].Ignorable = true
		}
	}
	return ds
}

// AnalyzeOverlaps compares every unordered pair of non-ignorable elements of
// s in index order and emits one line per finding plus a summary.
//
// Overlaps involving text whose intersection is at least MinSevereOverlap
// on both axes are severe and carry a Hint. Containments are always
// returned but only emitted when opts.MuteContainment is false.
func AnalyzeOverlaps(s *slide.Slide, opts Options, sink Sink) (*Report, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	rec := &Recorder{}
	out := Tee(rec, orDiscard(sink))
	c := geom.NewClassifier(opts.Tolerances)

	label := SlideLabel(s)
	rep := &Report{Slide: label, Overlaps: []Overlap{}, Containments: []Containment{}}
	ds := Describe(s, opts)

	for i := 0; i < len(ds); i++ {
		if ds[i].Ignorable {
			continue
		}
		for j := i + 1; j < len(ds); j++ {
			if ds[j].Ignorable {
				continue
			}
			a, b := ds[i], ds[j]
			rel := slide.Relate(c, a, b)

			switch rel.Kind {
			case geom.Overlapping:
				o := Overlap{A: a, B: b, Intersection: *rel.Intersection}
				in := o.Intersection
				if in.W >= MinSevereOverlap && in.H >= MinSevereOverlap &&
					(a.Tag == slide.TagText || b.Tag == slide.TagText) {
					o.Severe = true
					h := hintFor(in)
					o.Hint = &h
					out.Emit(Line{Severity: SeverityError, Text: fmt.Sprintf(
						"❌ %s: text overlap between element %d (%s) and element %d (%s) [%s x %s]; %s",
						label, a.Index, a.Tag, b.Index, b.Tag,
						FormatNumber(in.W), FormatNumber(in.H), h)})
				} else {
					out.Emit(Line{Severity: SeverityWarn, Text: fmt.Sprintf(
						"⚠️ %s: element %d (%s) overlaps element %d (%s) [%s x %s]",
						label, a.Index, a.Tag, b.Index, b.Tag,
						FormatNumber(in.W), FormatNumber(in.H))})
				}
				rep.Overlaps = append(rep.Overlaps, o)

			case geom.Contained:
				container, contained := a, b
				if rel.Container == geom.RoleB {
					container, contained = b, a
				}
				rep.Containments = append(rep.Containments, Containment{Container: container, Contained: contained})
				if !opts.MuteContainment {
					out.Emit(Line{Severity: SeverityWarn, Text: fmt.Sprintf(
						"⚠️ %s: element %d (%s) is contained in element %d (%s)",
						label, contained.Index, contained.Tag, container.Index, container.Tag)})
				}

			case geom.Disjoint:
				if rel.Suppressed {
					rep.Suppressed++
				}
			}
		}
	}

	if !rep.Clean(opts) {
		summary := fmt.Sprintf("%s: %d overlapping pair(s)", label, len(rep.Overlaps))
		if !opts.MuteContainment {
			summary += fmt.Sprintf(", %d containment(s)", len(rep.Containments))
		}
		out.Emit(Line{Severity: SeverityInfo, Text: summary})
	}

	rep.Lines = rec.Lines
	if rep.Lines == nil {
		rep.Lines = []Line{}
	}
	return rep, nil
}

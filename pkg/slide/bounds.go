package slide

import (
	"github.com/matzehuels/slidelint/pkg/geom"
)

// Bounds returns the effective bounding box of el.
//
// The options group is read when it stores any position field, otherwise the
// top-level group. Missing fields read as 0. A crop sizing override on either
// group replaces the width and height; the stored size is left alone.
func Bounds(el *Element) geom.Rect {
	if el == nil {
		return geom.Rect{}
	}
	src, alt := &el.Placement, el.Options
	if el.Options.HasPosition() {
		src, alt = el.Options, &el.Placement
	}

	r := geom.Rect{X: val(src.X), Y: val(src.Y), W: val(src.W), H: val(src.H)}
	if w, h, ok := src.Sizing.crop(); ok {
		r.W, r.H = w, h
	} else if alt != nil {
		if w, h, ok := alt.Sizing.crop(); ok {
			r.W, r.H = w, h
		}
	}
	return r
}

// Flipped reports whether el is a line running along the anti-diagonal of
// its box. Flips are read from the same group as the bounds.
func Flipped(el *Element) bool {
	if el == nil || Classify(el) != TagLine {
		return false
	}
	src := &el.Placement
	if el.Options.HasPosition() {
		src = el.Options
	}
	return src.FlipH != src.FlipV
}

func val(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// PositionTargets lists every field group of el that stores a position.
// An element that stores none gets its top-level group.
func PositionTargets(el *Element) []*Placement {
	if el == nil {
		return nil
	}
	var targets []*Placement
	if el.Placement.HasPosition() {
		targets = append(targets, &el.Placement)
	}
	if el.Options.HasPosition() {
		targets = append(targets, el.Options)
	}
	if len(targets) == 0 {
		targets = append(targets, &el.Placement)
	}
	return targets
}

// SetX moves el horizontally, writing through every position target.
func SetX(el *Element, x float64) {
	for _, p := range PositionTargets(el) {
		p.X = F(x)
	}
}

// SetY moves el vertically, writing through every position target.
func SetY(el *Element, y float64) {
	for _, p := range PositionTargets(el) {
		p.Y = F(y)
	}
}

// Descriptor is a per-call view of one element: its index in the slide,
// semantic tag and effective bounds. Descriptors are rebuilt on every call
// because positions may change between calls.
type Descriptor struct {
	Index int `json:"index"`
	Tag   Tag `json:"type"`
	geom.Rect
	Ignorable bool `json:"ignorable,omitempty"`
	Flipped   bool `json:"flipped,omitempty"`
}

// Describe builds the descriptor for the element at index i.
func Describe(el *Element, i int) Descriptor {
	return Descriptor{Index: i, Tag: Classify(el), Rect: Bounds(el), Flipped: Flipped(el)}
}

// DescribeAll builds descriptors for every element of s in order.
func DescribeAll(s *Slide) []Descriptor {
	if s == nil {
		return nil
	}
	out := make([]Descriptor, len(s.Elements))
	for i, el := range s.Elements {
		out[i] = Describe(el, i)
	}
	return out
}

// Relate classifies the pair (a, b) using c.
func Relate(c geom.Classifier, a, b Descriptor) geom.Relation {
	return c.ClassifyFlipped(a.Rect, b.Rect, a.Tag.IsLine(), b.Tag.IsLine(), a.Flipped, b.Flipped)
}

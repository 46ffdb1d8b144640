package geom

import "math"

// Point is a 2-D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Segment is a straight line between two points.
type Segment struct {
	A, B Point
}

// orientation returns 0 when p, q, r are colinear within eps, 1 for a
// clockwise turn and -1 for counter-clockwise.
func orientation(p, q, r Point, eps float64) int {
	v := (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)
	switch {
	case math.Abs(v) <= eps:
		return 0
	case v > 0:
		return 1
	default:
		return -1
	}
}

// within reports whether q, already known to be colinear with p and r, lies
// on the interval between them.
func within(p, q, r Point, eps float64) bool {
	return q.X <= math.Max(p.X, r.X)+eps && q.X >= math.Min(p.X, r.X)-eps &&
		q.Y <= math.Max(p.Y, r.Y)+eps && q.Y >= math.Min(p.Y, r.Y)-eps
}

// Intersects reports whether s and o share at least one point. Colinear
// segments intersect when their intervals on the shared line overlap.
func (s Segment) Intersects(o Segment, eps float64) bool {
	o1 := orientation(s.A, s.B, o.A, eps)
	o2 := orientation(s.A, s.B, o.B, eps)
	o3 := orientation(o.A, o.B, s.A, eps)
	o4 := orientation(o.A, o.B, s.B, eps)

	if o1 != o2 && o3 != o4 {
		return true
	}

	switch {
	case o1 == 0 && within(s.A, o.A, s.B, eps):
		return true
	case o2 == 0 && within(s.A, o.B, s.B, eps):
		return true
	case o3 == 0 && within(o.A, s.A, o.B, eps):
		return true
	case o4 == 0 && within(o.A, s.B, o.B, eps):
		return true
	}
	return false
}

// TouchesRect reports whether s has an endpoint inside r or crosses any of
// its edges.
func (s Segment) TouchesRect(r Rect, eps float64) bool {
	if r.ContainsPoint(s.A, eps) || r.ContainsPoint(s.B, eps) {
		return true
	}
	for _, e := range r.Edges() {
		if s.Intersects(e, eps) {
			return true
		}
	}
	return false
}

// DiagonalOf returns the segment running from the top-left to the
// bottom-right corner of r, which is how a line element spans its box.
func DiagonalOf(r Rect) Segment {
	return Segment{A: Point{r.X, r.Y}, B: Point{r.X2(), r.Y2()}}
}

// AntiDiagonalOf returns the segment from the bottom-left to the top-right
// corner of r: the span of a line flipped on exactly one axis.
func AntiDiagonalOf(r Rect) Segment {
	return Segment{A: Point{r.X, r.Y2()}, B: Point{r.X2(), r.Y}}
}

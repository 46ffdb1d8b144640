package arrange

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/slidelint/pkg/errors"
	"github.com/matzehuels/slidelint/pkg/geom"
	"github.com/matzehuels/slidelint/pkg/slide"
)

// Move records one element's position before and after an operation.
type Move struct {
	Index int        `json:"index"`
	From  geom.Point `json:"from"`
	To    geom.Point `json:"to"`
}

// Arranger runs alignment and distribution with a fixed set of tolerances.
// The zero value uses geom.DefaultTolerances.
type Arranger struct {
	Tol geom.Tolerances
}

// Align snaps the selected elements of s to the chosen edge or center line
// of their common envelope using default tolerances.
func Align(s *slide.Slide, indices []int, mode Alignment) ([]Move, error) {
	return Arranger{}.Align(s, indices, mode)
}

// Distribute spaces the selected elements of s evenly along axis using
// default tolerances.
func Distribute(s *slide.Slide, indices []int, axis Direction) ([]Move, error) {
	return Arranger{}.Distribute(s, indices, axis)
}

// Align moves one coordinate of each selected element: x for left, right
// and horizontal centering, y for the rest. Edges go to the envelope edge;
// centers go to the envelope center minus half the element's own size.
func (a Arranger) Align(s *slide.Slide, indices []int, mode Alignment) ([]Move, error) {
	sel, err := selection(s, indices)
	if err != nil {
		return nil, err
	}
	if !mode.Valid() {
		return nil, errors.New(errors.ErrCodeUnsupportedAlignment, "unsupported alignment %q", mode)
	}
	if len(sel) < 2 {
		return nil, nil
	}

	rects := make([]geom.Rect, len(sel))
	for k, i := range sel {
		rects[k] = slide.Bounds(s.Elements[i])
	}
	env := geom.Envelope(rects...)

	moves := make([]Move, 0, len(sel))
	for k, i := range sel {
		el, r := s.Elements[i], rects[k]
		to := geom.Point{X: r.X, Y: r.Y}
		switch mode {
		case AlignLeft:
			to.X = env.X
		case AlignRight:
			to.X = env.X2() - r.W
		case AlignHorizontalCenter:
			to.X = env.CenterX() - r.W/2
		case AlignTop:
			to.Y = env.Y
		case AlignBottom:
			to.Y = env.Y2() - r.H
		case AlignVerticalCenter:
			to.Y = env.CenterY() - r.H/2
		}
		switch mode {
		case AlignLeft, AlignRight, AlignHorizontalCenter:
			slide.SetX(el, to.X)
		default:
			slide.SetY(el, to.Y)
		}
		moves = append(moves, Move{Index: i, From: geom.Point{X: r.X, Y: r.Y}, To: to})
	}
	return moves, nil
}

// Distribute orders the selection by leading edge on axis, ties within the
// fine tolerance broken by index, then places each element so the gaps
// between neighbors are equal and the outer edges stay where they were.
// The gap is negative when the elements are wider than their span.
func (a Arranger) Distribute(s *slide.Slide, indices []int, axis Direction) ([]Move, error) {
	sel, err := selection(s, indices)
	if err != nil {
		return nil, err
	}
	if !axis.Valid() {
		return nil, errors.New(errors.ErrCodeUnsupportedDistributionDirection, "unsupported distribution direction %q", axis)
	}
	if len(sel) < 2 {
		return nil, nil
	}
	eps := a.Tol.OrDefault().Fine

	type item struct {
		index      int
		r          geom.Rect
		lead, size float64
	}
	items := make([]item, len(sel))
	for k, i := range sel {
		r := slide.Bounds(s.Elements[i])
		it := item{index: i, r: r, lead: r.X, size: r.W}
		if axis == Vertical {
			it.lead, it.size = r.Y, r.H
		}
		items[k] = it
	}

	slices.SortStableFunc(items, func(p, q item) int {
		if math.Abs(p.lead-q.lead) < eps {
			return cmp.Compare(p.index, q.index)
		}
		return cmp.Compare(p.lead, q.lead)
	})

	start, end, total := math.Inf(1), math.Inf(-1), 0.0
	for _, it := range items {
		start = math.Min(start, it.lead)
		end = math.Max(end, it.lead+it.size)
		total += it.size
	}
	gap := (end - start - total) / float64(len(items)-1)

	moves := make([]Move, 0, len(items))
	cursor := start
	for _, it := range items {
		el := s.Elements[it.index]
		to := geom.Point{X: it.r.X, Y: it.r.Y}
		if axis == Horizontal {
			to.X = cursor
			slide.SetX(el, cursor)
		} else {
			to.Y = cursor
			slide.SetY(el, cursor)
		}
		moves = append(moves, Move{Index: it.index, From: geom.Point{X: it.r.X, Y: it.r.Y}, To: to})
		cursor += it.size + gap
	}
	return moves, nil
}

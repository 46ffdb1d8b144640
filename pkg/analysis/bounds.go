package analysis

import (
	"fmt"
	"strings"

	"github.com/matzehuels/slidelint/pkg/geom"
	"github.com/matzehuels/slidelint/pkg/slide"
)

// Edge names a side of the canvas.
type Edge string

const (
	EdgeLeft   Edge = "left"
	EdgeTop    Edge = "top"
	EdgeRight  Edge = "right"
	EdgeBottom Edge = "bottom"
)

// Breach is one edge of an element lying outside the canvas.
type Breach struct {
	Edge  Edge    `json:"edge"`
	Value float64 `json:"value"`
	Limit float64 `json:"limit"`
}

// String renders the breach as "right=11 > width=10" or "left=-0.5 < 0".
func (b Breach) String() string {
	switch b.Edge {
	case EdgeRight:
		return fmt.Sprintf("right=%s > width=%s", FormatNumber(b.Value), FormatNumber(b.Limit))
	case EdgeBottom:
		return fmt.Sprintf("bottom=%s > height=%s", FormatNumber(b.Value), FormatNumber(b.Limit))
	}
	return fmt.Sprintf("%s=%s < %s", b.Edge, FormatNumber(b.Value), FormatNumber(b.Limit))
}

// Violation is an element with at least one breached edge.
type Violation struct {
	Element  slide.Descriptor `json:"element"`
	Breaches []Breach         `json:"breaches"`
}

// String joins the breaches with ", ".
func (v Violation) String() string {
	parts := make([]string, len(v.Breaches))
	for i, b := range v.Breaches {
		parts[i] = b.String()
	}
	return strings.Join(parts, ", ")
}

// CheckBounds returns one violation per element of s extending past canvas
// by more than the coarse tolerance, and emits a line for each plus a
// summary when any were found.
func CheckBounds(s *slide.Slide, canvas slide.Canvas, tol geom.Tolerances, sink Sink) ([]Violation, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	eps := tol.OrDefault().Coarse
	out := orDiscard(sink)
	label := SlideLabel(s)

	violations := []Violation{}
	for _, d := range slide.DescribeAll(s) {
		var bs []Breach
		if d.X < -eps {
			bs = append(bs, Breach{Edge: EdgeLeft, Value: d.X})
		}
		if d.Y < -eps {
			bs = append(bs, Breach{Edge: EdgeTop, Value: d.Y})
		}
		if d.X2() > canvas.Width+eps {
			bs = append(bs, Breach{Edge: EdgeRight, Value: d.X2(), Limit: canvas.Width})
		}
		if d.Y2() > canvas.Height+eps {
			bs = append(bs, Breach{Edge: EdgeBottom, Value: d.Y2(), Limit: canvas.Height})
		}
		if len(bs) == 0 {
			continue
		}
		v := Violation{Element: d, Breaches: bs}
		violations = append(violations, v)
		out.Emit(Line{Severity: SeverityWarn, Text: fmt.Sprintf(
			"⚠️ %s: element %d (%s) is out of bounds: %s", label, d.Index, d.Tag, v)})
	}

	if len(violations) > 0 {
		out.Emit(Line{Severity: SeverityInfo, Text: fmt.Sprintf(
			"%s: %d element(s) out of bounds", label, len(violations))})
	}
	return violations, nil
}

// WarnIfSlideElementsOutOfBounds resolves the canvas of s with src, falling
// back to a fresh CanvasResolver, and runs CheckBounds against it.
func WarnIfSlideElementsOutOfBounds(s *slide.Slide, doc *slide.Document, src slide.CanvasSource, tol geom.Tolerances, sink Sink) ([]Violation, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = slide.CanvasResolver{}
	}
	canvas, err := src.Resolve(s, doc)
	if err != nil {
		return nil, err
	}
	return CheckBounds(s, canvas, tol, sink)
}

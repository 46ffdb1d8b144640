package arrange

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/slidelint/pkg/errors"
	"github.com/matzehuels/slidelint/pkg/geom"
	"github.com/matzehuels/slidelint/pkg/slide"
)

func newSlide(rects ...geom.Rect) *slide.Slide {
	s := &slide.Slide{}
	for _, r := range rects {
		s.Elements = append(s.Elements, slide.NewElement(r.X, r.Y, r.W, r.H))
	}
	return s
}

func positions(s *slide.Slide) []geom.Point {
	out := make([]geom.Point, len(s.Elements))
	for i, el := range s.Elements {
		r := slide.Bounds(el)
		out[i] = geom.Point{X: r.X, Y: r.Y}
	}
	return out
}

func TestAlign(t *testing.T) {
	rects := []geom.Rect{
		{X: 2, Y: 0, W: 1, H: 1},
		{X: 5, Y: 1, W: 2, H: 1},
		{X: 3, Y: 2, W: 1, H: 3},
	}

	tests := []struct {
		mode Alignment
		want []geom.Point
	}{
		{AlignLeft, []geom.Point{{X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2}}},
		{AlignRight, []geom.Point{{X: 6, Y: 0}, {X: 5, Y: 1}, {X: 6, Y: 2}}},
		{AlignHorizontalCenter, []geom.Point{{X: 4, Y: 0}, {X: 3.5, Y: 1}, {X: 4, Y: 2}}},
		{AlignTop, []geom.Point{{X: 2, Y: 0}, {X: 5, Y: 0}, {X: 3, Y: 0}}},
		{AlignBottom, []geom.Point{{X: 2, Y: 4}, {X: 5, Y: 4}, {X: 3, Y: 2}}},
		{AlignVerticalCenter, []geom.Point{{X: 2, Y: 2}, {X: 5, Y: 2}, {X: 3, Y: 1}}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			s := newSlide(rects...)
			if _, err := Align(s, []int{0, 1, 2}, tt.mode); err != nil {
				t.Fatalf("Align: %v", err)
			}
			if got := positions(s); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("positions = %v, want %v", got, tt.want)
			}
			for i, el := range s.Elements {
				r := slide.Bounds(el)
				if r.W != rects[i].W || r.H != rects[i].H {
					t.Errorf("element %d resized to %v x %v", i, r.W, r.H)
				}
			}
		})
	}
}

func TestAlignSubset(t *testing.T) {
	s := newSlide(
		geom.Rect{X: 4, Y: 0, W: 1, H: 1},
		geom.Rect{X: 0, Y: 0, W: 1, H: 1},
		geom.Rect{X: 2, Y: 0, W: 1, H: 1},
	)
	moves, err := Align(s, []int{0, 2, 2}, AlignLeft)
	if err != nil {
		t.Fatal(err)
	}
	if len(moves) != 2 {
		t.Errorf("moves = %d, want 2 after dedupe", len(moves))
	}
	want := []geom.Point{{X: 2}, {X: 0}, {X: 2}}
	if got := positions(s); !reflect.DeepEqual(got, want) {
		t.Errorf("positions = %v, want %v", got, want)
	}
}

func TestAlignNoOp(t *testing.T) {
	tests := []struct {
		name    string
		indices []int
	}{
		{"empty", nil},
		{"single", []int{1}},
		{"duplicates of one", []int{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSlide(geom.Rect{X: 1, W: 1, H: 1}, geom.Rect{X: 3, W: 1, H: 1})
			before := positions(s)
			moves, err := Align(s, tt.indices, AlignLeft)
			if err != nil {
				t.Fatal(err)
			}
			if moves != nil {
				t.Errorf("moves = %v, want nil", moves)
			}
			if got := positions(s); !reflect.DeepEqual(got, before) {
				t.Errorf("positions changed: %v", got)
			}
		})
	}
}

func TestAlignWritesThroughBothGroups(t *testing.T) {
	s := &slide.Slide{Elements: []*slide.Element{
		{
			Placement: slide.Placement{X: slide.F(3), Y: slide.F(0), W: slide.F(1), H: slide.F(1)},
			Options:   &slide.Placement{X: slide.F(3), Y: slide.F(0), W: slide.F(1), H: slide.F(1)},
		},
		{Options: &slide.Placement{X: slide.F(1), Y: slide.F(2), W: slide.F(1), H: slide.F(1)}},
	}}

	if _, err := Align(s, []int{0, 1}, AlignLeft); err != nil {
		t.Fatal(err)
	}
	a := s.Elements[0]
	if *a.X != 1 || *a.Options.X != 1 {
		t.Errorf("element 0 x = %v / %v, want 1 / 1", *a.X, *a.Options.X)
	}
	if b := s.Elements[1]; b.Placement.X != nil {
		t.Errorf("element 1 grew a top-level x: %v", *b.Placement.X)
	}
}

func TestDistribute(t *testing.T) {
	tests := []struct {
		name    string
		rects   []geom.Rect
		indices []int
		axis    Direction
		want    []float64
	}{
		{
			name:    "three unit boxes over six",
			rects:   []geom.Rect{{X: 0, W: 1, H: 1}, {X: 1, W: 1, H: 1}, {X: 5, W: 1, H: 1}},
			indices: []int{0, 1, 2},
			axis:    Horizontal,
			want:    []float64{0, 2.5, 5},
		},
		{
			name:    "unsorted input",
			rects:   []geom.Rect{{X: 5, W: 1, H: 1}, {X: 0, W: 1, H: 1}, {X: 3.7, W: 1, H: 1}},
			indices: []int{2, 0, 1},
			axis:    Horizontal,
			want:    []float64{5, 0, 2.5},
		},
		{
			name:    "ties broken by index",
			rects:   []geom.Rect{{X: 0, W: 1, H: 1}, {X: 4, W: 2, H: 1}, {X: 0, W: 1, H: 1}},
			indices: []int{2, 0, 1},
			axis:    Horizontal,
			want:    []float64{0, 4, 2},
		},
		{
			name:    "negative gap",
			rects:   []geom.Rect{{X: 0, W: 2, H: 1}, {X: 0.5, W: 2, H: 1}, {X: 2, W: 2, H: 1}},
			indices: []int{0, 1, 2},
			axis:    Horizontal,
			want:    []float64{0, 1, 2},
		},
		{
			name:    "vertical",
			rects:   []geom.Rect{{Y: 0, W: 1, H: 1}, {Y: 1, W: 1, H: 2}, {Y: 7, W: 1, H: 1}},
			indices: []int{0, 1, 2},
			axis:    Vertical,
			want:    []float64{0, 3, 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSlide(tt.rects...)
			if _, err := Distribute(s, tt.indices, tt.axis); err != nil {
				t.Fatalf("Distribute: %v", err)
			}
			for i, el := range s.Elements {
				r := slide.Bounds(el)
				got := r.X
				if tt.axis == Vertical {
					got = r.Y
				}
				if math.Abs(got-tt.want[i]) > 1e-9 {
					t.Errorf("element %d at %v, want %v", i, got, tt.want[i])
				}
			}
		})
	}
}

func TestDistributeEqualGaps(t *testing.T) {
	s := newSlide(
		geom.Rect{X: 0, W: 1, H: 1},
		geom.Rect{X: 1, W: 1, H: 1},
		geom.Rect{X: 5, W: 1, H: 1},
	)
	if _, err := Distribute(s, []int{0, 1, 2}, Horizontal); err != nil {
		t.Fatal(err)
	}
	b := []geom.Rect{slide.Bounds(s.Elements[0]), slide.Bounds(s.Elements[1]), slide.Bounds(s.Elements[2])}
	g1, g2 := b[1].X-b[0].X2(), b[2].X-b[1].X2()
	if g1 != 1.5 || g2 != 1.5 {
		t.Errorf("gaps = %v, %v, want 1.5, 1.5", g1, g2)
	}
}

func TestValidationPrecedesMutation(t *testing.T) {
	tests := []struct {
		name string
		run  func(s *slide.Slide) error
		code errors.Code
	}{
		{
			name: "align index out of range",
			run: func(s *slide.Slide) error {
				_, err := Align(s, []int{0, 1, 9}, AlignLeft)
				return err
			},
			code: errors.ErrCodeIndexOutOfBounds,
		},
		{
			name: "align negative index",
			run: func(s *slide.Slide) error {
				_, err := Align(s, []int{-1, 0, 1}, AlignLeft)
				return err
			},
			code: errors.ErrCodeIndexOutOfBounds,
		},
		{
			name: "align unknown mode",
			run: func(s *slide.Slide) error {
				_, err := Align(s, []int{0, 1}, Alignment("diagonal"))
				return err
			},
			code: errors.ErrCodeUnsupportedAlignment,
		},
		{
			name: "distribute index out of range",
			run: func(s *slide.Slide) error {
				_, err := Distribute(s, []int{0, 1, 3}, Horizontal)
				return err
			},
			code: errors.ErrCodeIndexOutOfBounds,
		},
		{
			name: "distribute unknown axis",
			run: func(s *slide.Slide) error {
				_, err := Distribute(s, []int{0, 1, 2}, Direction("diagonal"))
				return err
			},
			code: errors.ErrCodeUnsupportedDistributionDirection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSlide(
				geom.Rect{X: 4, Y: 4, W: 1, H: 1},
				geom.Rect{X: 0, Y: 1, W: 1, H: 1},
				geom.Rect{X: 9, Y: 2, W: 1, H: 1},
			)
			before := positions(s)
			err := tt.run(s)
			if !errors.Is(err, tt.code) {
				t.Fatalf("err = %v, want %s", err, tt.code)
			}
			if got := positions(s); !reflect.DeepEqual(got, before) {
				t.Errorf("slide mutated on error: %v", got)
			}
		})
	}
}

func TestInvalidSlide(t *testing.T) {
	if _, err := Align(&slide.Slide{}, []int{0, 1}, AlignLeft); !errors.Is(err, errors.ErrCodeInvalidSlide) {
		t.Errorf("Align err = %v", err)
	}
	if _, err := Distribute(nil, []int{0, 1}, Vertical); !errors.Is(err, errors.ErrCodeInvalidSlide) {
		t.Errorf("Distribute err = %v", err)
	}
}

func TestParseIndices(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"0,1,2", []int{0, 1, 2}, false},
		{"3 1", []int{3, 1}, false},
		{" 2, 4 ,", []int{2, 4}, false},
		{"", nil, true},
		{"1,a", nil, true},
		{"1.5", nil, true},
	}

	for _, tt := range tests {
		got, err := ParseIndices(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseIndices(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil {
			if !errors.Is(err, errors.ErrCodeInvalidIndices) {
				t.Errorf("ParseIndices(%q) code = %v", tt.in, errors.GetCode(err))
			}
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseIndices(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseIndexValues(t *testing.T) {
	tests := []struct {
		in       []any
		want     []int
		wantCode errors.Code
	}{
		{[]any{0.0, 2.0}, []int{0, 2}, ""},
		{[]any{json.Number("3"), 1}, []int{3, 1}, ""},
		{[]any{json.Number("4.0")}, []int{4}, ""},
		{[]any{1.5}, nil, errors.ErrCodeInvalidIndices},
		{[]any{json.Number("2.5")}, nil, errors.ErrCodeInvalidIndices},
		{[]any{"1"}, nil, errors.ErrCodeInvalidIndices},
		{[]any{nil}, nil, errors.ErrCodeInvalidIndices},
		{[]any{math.NaN()}, nil, errors.ErrCodeInvalidIndices},
		{[]any{math.Inf(1)}, nil, errors.ErrCodeInvalidIndices},
		{[]any{1e20}, nil, errors.ErrCodeIndexOutOfBounds},
		{[]any{-1e20}, nil, errors.ErrCodeIndexOutOfBounds},
		{[]any{json.Number("1e20")}, nil, errors.ErrCodeIndexOutOfBounds},
	}

	for _, tt := range tests {
		got, err := ParseIndexValues(tt.in)
		if (err != nil) != (tt.wantCode != "") {
			t.Errorf("ParseIndexValues(%v) err = %v, want code %q", tt.in, err, tt.wantCode)
			continue
		}
		if err != nil {
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("ParseIndexValues(%v) code = %v, want %v", tt.in, errors.GetCode(err), tt.wantCode)
			}
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseIndexValues(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseAlignment(t *testing.T) {
	tests := map[string]Alignment{
		"left":               AlignLeft,
		"RIGHT":              AlignRight,
		"horizontallyCenter": AlignHorizontalCenter,
		"hcenter":            AlignHorizontalCenter,
		"vcenter":            AlignVerticalCenter,
		"verticallycenter":   AlignVerticalCenter,
	}
	for in, want := range tests {
		got, err := ParseAlignment(in)
		if err != nil || got != want {
			t.Errorf("ParseAlignment(%q) = %q, %v, want %q", in, got, err, want)
		}
	}
	if _, err := ParseAlignment("justify"); !errors.Is(err, errors.ErrCodeUnsupportedAlignment) {
		t.Errorf("ParseAlignment(justify) err = %v", err)
	}
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]Direction{"horizontal": Horizontal, "V": Vertical, "x": Horizontal} {
		if got, err := ParseDirection(in); err != nil || got != want {
			t.Errorf("ParseDirection(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseDirection("diagonal"); !errors.Is(err, errors.ErrCodeUnsupportedDistributionDirection) {
		t.Errorf("ParseDirection(diagonal) err = %v", err)
	}
}

func ExampleDistribute() {
	s := &slide.Slide{Elements: []*slide.Element{
		slide.NewElement(0, 0, 1, 1),
		slide.NewElement(1, 0, 1, 1),
		slide.NewElement(5, 0, 1, 1),
	}}
	moves, _ := Distribute(s, []int{0, 1, 2}, Horizontal)
	for _, m := range moves {
		fmt.Printf("element %d: x %g -> %g\n", m.Index, m.From.X, m.To.X)
	}
	// Output:
	// element 0: x 0 -> 0
	// element 1: x 1 -> 2.5
	// element 2: x 5 -> 5
}

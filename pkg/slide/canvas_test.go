package slide

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/matzehuels/slidelint/pkg/errors"
)

func TestCanvasResolver(t *testing.T) {
	tests := []struct {
		name      string
		slide     *Slide
		doc       *Document
		want      Canvas
		wantError bool
	}{
		{
			name:  "slide layout width/height",
			slide: &Slide{Layout: map[string]any{"width": 10.0, "height": 5.625}},
			want:  Canvas{Width: 10, Height: 5.625},
		},
		{
			name:  "w/h pair",
			slide: &Slide{Layout: map[string]any{"w": 13.333, "h": 7.5}},
			want:  Canvas{Width: 13.333, Height: 7.5},
		},
		{
			name:  "earlier pair wins",
			slide: &Slide{Layout: map[string]any{"w": 1.0, "h": 1.0, "width": 10.0, "height": 7.5}},
			want:  Canvas{Width: 10, Height: 7.5},
		},
		{
			name:  "EMU normalized",
			slide: &Slide{Layout: map[string]any{"cx": 9144000, "cy": 6858000}},
			want:  Canvas{Width: 10, Height: 7.5},
		},
		{
			name:  "json.Number EMU",
			slide: &Slide{Layout: map[string]any{"sldW": json.Number("12192000"), "sldH": json.Number("6858000")}},
			want:  Canvas{Width: 12192000.0 / EMUPerInch, Height: 7.5},
		},
		{
			name: "nested wrapper",
			slide: &Slide{Layout: map[string]any{
				"presLayout": map[string]any{"sldSz": map[string]any{"cx": 9144000, "cy": 5143500}},
			}},
			want: Canvas{Width: 10, Height: 5.625},
		},
		{
			name:  "owner layout",
			slide: NewDocument(map[string]any{"width": 10.0, "height": 7.5}, &Slide{Elements: []*Element{}}).Slides[0],
			want:  Canvas{Width: 10, Height: 7.5},
		},
		{
			name:  "doc props",
			slide: &Slide{},
			doc:   &Document{Props: map[string]any{"pageSize": map[string]any{"slide_width": 10.0, "slide_height": 5.625}}},
			want:  Canvas{Width: 10, Height: 5.625},
		},
		{
			name:  "slide layout beats doc",
			slide: &Slide{Layout: map[string]any{"width": 4.0, "height": 3.0}},
			doc:   &Document{Layout: map[string]any{"width": 10.0, "height": 7.5}},
			want:  Canvas{Width: 4, Height: 3},
		},
		{
			name:  "non-positive values skipped",
			slide: &Slide{Layout: map[string]any{"width": 0.0, "height": 5.0, "w": 10.0, "h": 5.0}},
			want:  Canvas{Width: 10, Height: 5},
		},
		{
			name:  "non-finite values skipped",
			slide: &Slide{Layout: map[string]any{"width": math.Inf(1), "height": 5.0, "w": 8.0, "h": 6.0}},
			want:  Canvas{Width: 8, Height: 6},
		},
		{
			name:      "string values rejected",
			slide:     &Slide{Layout: map[string]any{"width": "10", "height": "7.5"}},
			wantError: true,
		},
		{
			name:      "nothing found",
			slide:     &Slide{},
			doc:       &Document{},
			wantError: true,
		},
		{
			name:      "nil slide",
			slide:     nil,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanvasResolver{}.Resolve(tt.slide, tt.doc)
			if tt.wantError {
				if err == nil {
					t.Fatalf("Resolve() = %+v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if math.Abs(got.Width-tt.want.Width) > 1e-9 || math.Abs(got.Height-tt.want.Height) > 1e-9 {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCanvasResolverFailureCode(t *testing.T) {
	_, err := CanvasResolver{}.Resolve(&Slide{}, &Document{})
	if !errors.Is(err, errors.ErrCodeDimensionResolution) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeDimensionResolution)
	}
}

func TestCanvasResolverCycle(t *testing.T) {
	a := map[string]any{}
	b := map[string]any{"layout": a}
	a["size"] = b

	_, err := CanvasResolver{}.Resolve(&Slide{Layout: a}, nil)
	if !errors.Is(err, errors.ErrCodeDimensionResolution) {
		t.Errorf("cyclic layout: err = %v, want dimension failure", err)
	}
}

type countingSource struct {
	calls int
	c     Canvas
}

func (s *countingSource) Resolve(*Slide, *Document) (Canvas, error) {
	s.calls++
	return s.c, nil
}

func TestCachedCanvasResolver(t *testing.T) {
	inner := &countingSource{c: Canvas{Width: 10, Height: 7.5}}
	r := NewCachedCanvasResolver(inner)
	s := &Slide{}

	for range 3 {
		if _, err := r.Resolve(s, nil); err != nil {
			t.Fatal(err)
		}
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}

	r.Reset()
	if _, err := r.Resolve(s, nil); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 2 {
		t.Errorf("inner calls after Reset = %d, want 2", inner.calls)
	}
}

func TestCachedCanvasResolverSkipsFailures(t *testing.T) {
	r := NewCachedCanvasResolver(nil)
	s := &Slide{}

	if _, err := r.Resolve(s, nil); err == nil {
		t.Fatal("expected failure for slide without layout")
	}
	s.Layout = map[string]any{"width": 10.0, "height": 5.625}
	got, err := r.Resolve(s, nil)
	if err != nil {
		t.Fatalf("Resolve after fix: %v", err)
	}
	if got.Width != 10 {
		t.Errorf("Width = %v, want 10", got.Width)
	}
}

package relgraph

import (
	"strings"
	"testing"

	"github.com/matzehuels/slidelint/pkg/analysis"
	"github.com/matzehuels/slidelint/pkg/geom"
	"github.com/matzehuels/slidelint/pkg/slide"
)

func descriptor(i int, tag slide.Tag, x, y, w, h float64) slide.Descriptor {
	return slide.Descriptor{Index: i, Tag: tag, Rect: geom.Rect{X: x, Y: y, W: w, H: h}}
}

func TestToDOT(t *testing.T) {
	ds := []slide.Descriptor{
		descriptor(0, slide.TagShape, 0, 0, 10, 5),
		descriptor(1, slide.TagText, 1, 1, 2, 1),
		descriptor(2, slide.TagLine, 0, 0, 4, 4),
		descriptor(3, slide.TagImage, 3, 0, 1, 0.5),
	}
	ds[2].Ignorable = true

	pairs := []analysis.Pair{
		{A: ds[0], B: ds[1], Relation: geom.Relation{Kind: geom.Contained, Container: geom.RoleA}},
		{A: ds[1], B: ds[3], Relation: geom.Relation{Kind: geom.Touching}},
		{A: ds[2], B: ds[3], Relation: geom.Relation{Kind: geom.Disjoint, Suppressed: true}},
		{A: ds[3], B: ds[1], Relation: geom.Relation{Kind: geom.Contained, Container: geom.RoleB}},
		{A: ds[1], B: ds[2], Relation: geom.Relation{Kind: geom.Overlapping}},
		{A: ds[0], B: ds[3], Relation: geom.Relation{Kind: geom.Disjoint}},
	}

	tests := []struct {
		name    string
		opts    Options
		want    []string
		notWant []string
	}{
		{
			name: "default",
			opts: Options{Title: "Slide 1"},
			want: []string{
				`label="Slide 1"`,
				`e1 [label="1: text\n1,1 2x1"]`,
				`e0 -- e1 [dir=forward`,
				`e1 -- e3 [style=dashed`,
				`e1 -- e3 [dir=forward`,
				`e1 -- e2 [color="#d62728"`,
			},
			notWant: []string{"e2 -- e3", "e0 -- e3", "lightgrey"},
		},
		{
			name:    "suppressed and ignorable",
			opts:    Options{Suppressed: true, Ignorable: true},
			want:    []string{`e2 -- e3 [style=dotted`, `fillcolor=lightgrey`},
			notWant: []string{"e0 -- e3", "labelloc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dot := ToDOT(ds, pairs, tt.opts)
			if !strings.HasPrefix(dot, "graph G {") || !strings.HasSuffix(dot, "}\n") {
				t.Errorf("not a DOT graph:\n%s", dot)
			}
			for _, w := range tt.want {
				if !strings.Contains(dot, w) {
					t.Errorf("missing %q in:\n%s", w, dot)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(dot, w) {
					t.Errorf("unexpected %q in:\n%s", w, dot)
				}
			}
		})
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 62.00 44.00" width="100%"`) {
		t.Errorf("normalizeViewBox = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg><g/></svg>")); string(got) != "<svg><g/></svg>" {
		t.Errorf("no viewBox should pass through, got %s", got)
	}
}

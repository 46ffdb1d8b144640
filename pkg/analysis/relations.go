package analysis

import (
	"github.com/matzehuels/slidelint/pkg/geom"
	"github.com/matzehuels/slidelint/pkg/slide"
)

// Pair is the relation between two elements of a slide, A.Index < B.Index.
type Pair struct {
	A        slide.Descriptor `json:"a"`
	B        slide.Descriptor `json:"b"`
	Relation geom.Relation    `json:"relation"`
}

// Relations classifies every unordered pair of elements of s in index
// order. Ignorable elements are not skipped; callers filter by Kind.
func Relations(s *slide.Slide, tol geom.Tolerances) ([]Pair, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	c := geom.NewClassifier(tol)
	ds := slide.DescribeAll(s)

	pairs := make([]Pair, 0, len(ds)*(len(ds)-1)/2)
	for i := 0; i < len(ds); i++ {
		for j := i + 1; j < len(ds); j++ {
			pairs = append(pairs, Pair{A: ds[i], B: ds[j], Relation: slide.Relate(c, ds[i], ds[j])})
		}
	}
	return pairs, nil
}

// NonDisjoint filters pairs down to those that touch, overlap or contain one
// another.
func NonDisjoint(pairs []Pair) []Pair {
	var out []Pair
	for _, p := range pairs {
		if p.Relation.Kind != geom.Disjoint {
			out = append(out, p)
		}
	}
	return out
}

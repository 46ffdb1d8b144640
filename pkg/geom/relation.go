package geom

import "fmt"

// Kind is the category of a pairwise relation.
type Kind int

const (
	// Disjoint rectangles are separated on at least one axis.
	Disjoint Kind = iota
	// Touching rectangles meet along an edge or corner with no area in common.
	Touching
	// Overlapping rectangles share a region larger than the coarse epsilon.
	Overlapping
	// Contained means one rectangle encloses the other.
	Contained
)

var kindNames = [...]string{"disjoint", "touching", "overlapping", "contained"}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	for i, n := range kindNames {
		if n == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown relation kind %q", b)
}

// Role identifies which operand of a comparison plays the container.
type Role int

const (
	RoleNone Role = iota
	RoleA
	RoleB
)

// Relation is the result of comparing two rectangles.
type Relation struct {
	Kind Kind `json:"kind"`

	// Container is set only for Contained.
	Container Role `json:"container,omitempty"`

	// Intersection is the shared region for Overlapping and Contained.
	Intersection *Rect `json:"intersection,omitempty"`

	// Suppressed marks a bounding-box overlap that the diagonal-line check
	// ruled out. Kind is Disjoint in that case.
	Suppressed bool `json:"suppressed,omitempty"`
}

// Classifier compares rectangles using a fixed set of tolerances.
type Classifier struct {
	Tol Tolerances
}

// NewClassifier returns a Classifier with unset tolerances defaulted.
func NewClassifier(tol Tolerances) Classifier {
	return Classifier{Tol: tol.OrDefault()}
}

// Classify returns the relation between a and b. lineA and lineB say whether
// the corresponding operand is a line element.
//
// The result is symmetric except for the container role. When both boxes
// contain each other (equal or near-equal boxes) no containment is reported
// and the pair is classified by its intersection instead, which makes
// identical boxes Overlapping.
func (c Classifier) Classify(a, b Rect, lineA, lineB bool) Relation {
	return c.ClassifyFlipped(a, b, lineA, lineB, false, false)
}

// ClassifyFlipped is Classify for line operands that may run along the
// anti-diagonal of their box. flipA and flipB only matter for line operands.
func (c Classifier) ClassifyFlipped(a, b Rect, lineA, lineB, flipA, flipB bool) Relation {
	tol := c.Tol.OrDefault()

	if a.Separated(b, tol.Coarse) {
		return Relation{Kind: Disjoint}
	}

	aInB := b.Contains(a, tol.Coarse)
	bInA := a.Contains(b, tol.Coarse)
	if aInB != bInA {
		container := RoleA
		if aInB {
			container = RoleB
		}
		if !diagonalLineContainer(a, b, lineA, lineB, container, tol.Fine) {
			in := Intersect(a, b)
			return Relation{Kind: Contained, Container: container, Intersection: &in}
		}
	}

	in := Intersect(a, b)
	if in.W <= tol.Coarse || in.H <= tol.Coarse {
		return Relation{Kind: Touching}
	}
	rel := Relation{Kind: Overlapping, Intersection: &in}

	if lineA == lineB {
		return rel
	}
	line, other, flip := a, b, flipA
	if lineB {
		line, other, flip = b, a, flipB
	}
	if !line.Diagonal(tol.Fine) {
		return rel
	}
	seg := DiagonalOf(line)
	if flip {
		seg = AntiDiagonalOf(line)
	}
	if seg.TouchesRect(other, tol.Fine) {
		return rel
	}
	return Relation{Kind: Disjoint, Suppressed: true}
}

// diagonalLineContainer reports whether the container of a one-way
// containment is a diagonal line while the other operand is not. A line's
// box encloses empty space, so such pairs are judged by the segment instead.
func diagonalLineContainer(a, b Rect, lineA, lineB bool, container Role, eps float64) bool {
	if lineA == lineB {
		return false
	}
	if container == RoleA {
		return lineA && a.Diagonal(eps)
	}
	return lineB && b.Diagonal(eps)
}

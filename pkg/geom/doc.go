// Package geom provides the bounding-box geometry behind slidelint.
//
// Everything here is pure: rectangles, line segments, tolerance constants and
// the pairwise relation classifier. Nothing in this package knows about
// slides or elements; callers in [github.com/matzehuels/slidelint/pkg/slide]
// convert elements into [Rect] values first.
//
// # Coordinates
//
// Rectangles use a top-left origin with X growing to the right and Y growing
// downward, matching presentation tools. Units are whatever the caller uses;
// slidelint works in inches throughout.
//
// # Tolerances
//
// Two epsilons drive every comparison:
//
//   - Coarse (1e-4) for box-level comparisons: separation, containment and
//     the minimum intersection size that counts as an overlap.
//   - Fine (1e-6) for segment arithmetic and ordering tie-breaks.
//
// Both live in [Tolerances]; [DefaultTolerances] holds the standard values.
// Changing them moves classifications near boundaries, so widening is a
// configuration decision rather than something callers should do ad hoc.
//
// # Relations
//
// [Classifier.Classify] compares two rectangles and returns a [Relation]:
//
//	c := geom.NewClassifier(geom.DefaultTolerances)
//	rel := c.Classify(geom.Rect{X: 0, Y: 0, W: 4, H: 3}, geom.Rect{X: 1, Y: 1, W: 1, H: 1}, false, false)
//	// rel.Kind == geom.Contained, rel.Container == geom.RoleA
//
// When exactly one operand is a diagonal line, an apparent overlap is checked
// against the line's real segment so that a connector's bounding box does not
// flag cards it only passes near.
package geom

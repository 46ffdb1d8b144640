// Package slide models presentation decks as the host document stores them
// and turns their elements into geometry.
//
// A [Document] owns ordered [Slide] values; each slide owns ordered
// [Element] values. Elements are loosely typed: position may live in the
// top-level field group, in the options group, or in both, and the semantic
// kind is inferred from whichever markers are present. This package
// normalizes that:
//
//   - [Bounds] resolves the effective box of an element.
//   - [Classify] infers its [Tag].
//   - [CanvasResolver] finds the slide size from heterogeneous layout objects.
//   - [SetX] and [SetY] write a position back through every field group.
//
// Element indices are positions in [Slide.Elements] and are only valid for
// the duration of one call; [Descriptor] values are rebuilt every time.
//
// # Decoding
//
// [ReadJSON] accepts either a full document or a bare slide. Slides inside a
// document know their 1-based position through [Slide.Number]; a bare slide
// does not.
package slide

// Package arrange repositions selected slide elements relative to each
// other.
//
// [Align] snaps a selection to a shared edge or center line; [Distribute]
// spaces it evenly along one axis. Both validate the whole selection before
// touching any element, never change sizes, and write the new coordinate
// through every field group an element stores its position in.
//
// Indices refer to positions in the slide's element list. Duplicates are
// ignored, and a selection of fewer than two distinct elements is a no-op.
package arrange

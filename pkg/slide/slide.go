package slide

import (
	"github.com/matzehuels/slidelint/pkg/errors"
)

// Slide is an ordered sequence of elements plus an optional layout object
// used for canvas dimension lookup. Element indices are positions in
// Elements and are only meaningful for the duration of one call.
type Slide struct {
	Layout   map[string]any `json:"layout,omitempty"`
	Elements []*Element     `json:"elements"`

	owner *Document
}

// Owner returns the document the slide belongs to, or nil for a detached slide.
func (s *Slide) Owner() *Document {
	if s == nil {
		return nil
	}
	return s.owner
}

// Number returns the 1-based position of s in its document. ok is false
// when the slide is detached or no longer listed by its owner.
func (s *Slide) Number() (n int, ok bool) {
	if s == nil || s.owner == nil {
		return 0, false
	}
	for i, other := range s.owner.Slides {
		if other == s {
			return i + 1, true
		}
	}
	return 0, false
}

// Validate fails with INVALID_SLIDE when s has no element sequence.
func (s *Slide) Validate() error {
	if s == nil {
		return errors.New(errors.ErrCodeInvalidSlide, "slide is nil")
	}
	if s.Elements == nil {
		return errors.New(errors.ErrCodeInvalidSlide, "slide has no element sequence")
	}
	return nil
}

// Document is a presentation: document-level layout fields and its slides.
type Document struct {
	Layout map[string]any `json:"layout,omitempty"`
	Props  map[string]any `json:"props,omitempty"`
	Slides []*Slide       `json:"slides"`
}

// NewDocument returns a document owning the given slides.
func NewDocument(layout map[string]any, slides ...*Slide) *Document {
	d := &Document{Layout: layout, Slides: slides}
	d.Attach()
	return d
}

// Attach marks d as the owner of each of its slides. Decoding calls it;
// callers that build or reorder Slides by hand call it again afterwards.
func (d *Document) Attach() {
	for _, s := range d.Slides {
		if s != nil {
			s.owner = d
		}
	}
}

// Slide returns the slide at 1-based position n.
func (d *Document) Slide(n int) (*Slide, error) {
	count := 0
	if d != nil {
		count = len(d.Slides)
	}
	if err := errors.ValidateSlideNumber(n, count); err != nil {
		return nil, err
	}
	s := d.Slides[n-1]
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// ElementCount returns the number of elements across all slides.
func (d *Document) ElementCount() int {
	n := 0
	for _, s := range d.Slides {
		if s != nil {
			n += len(s.Elements)
		}
	}
	return n
}

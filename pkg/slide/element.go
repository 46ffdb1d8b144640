package slide

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Placement is one field group carrying an element's position and size.
// Every field is optional; nil means the group does not store that value.
type Placement struct {
	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"`
	W *float64 `json:"w,omitempty"`
	H *float64 `json:"h,omitempty"`

	// Sizing is the crop viewport override, if any.
	Sizing *Sizing `json:"sizing,omitempty"`

	// FlipH and FlipV mirror the content of the box. A line flipped on one
	// axis runs from bottom-left to top-right.
	FlipH bool `json:"flipH,omitempty"`
	FlipV bool `json:"flipV,omitempty"`
}

// HasPosition reports whether the group stores any position or size field.
func (p *Placement) HasPosition() bool {
	return p != nil && (p.X != nil || p.Y != nil || p.W != nil || p.H != nil)
}

// Sizing describes how an element's content fits its box. Only the "crop"
// type changes the effective bounds.
type Sizing struct {
	Type string  `json:"type,omitempty"`
	W    float64 `json:"w,omitempty"`
	H    float64 `json:"h,omitempty"`
}

// SizingCrop is the Sizing type whose W and H replace the placement size.
const SizingCrop = "crop"

// crop returns the override size when s is a usable crop viewport.
func (s *Sizing) crop() (w, h float64, ok bool) {
	if s == nil || !strings.EqualFold(s.Type, SizingCrop) {
		return 0, 0, false
	}
	if s.W <= 0 || s.H <= 0 {
		return 0, 0, false
	}
	return s.W, s.H, true
}

// Stroke is the outline style of a shape or line.
type Stroke struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
	Dash  string  `json:"dashType,omitempty"`
}

// Fill is the interior paint of a shape. Transparency is a percentage.
type Fill struct {
	Color        string   `json:"color,omitempty"`
	Transparency *float64 `json:"transparency,omitempty"`
}

// Text is element text content. It decodes from a plain string, a list of
// strings, or a list of runs carrying a "text" field.
type Text []string

// String joins all runs.
func (t Text) String() string { return strings.Join(t, "") }

// Empty reports whether the text has no visible characters.
func (t Text) Empty() bool { return strings.TrimSpace(t.String()) == "" }

// UnmarshalJSON accepts "abc", ["a","b"] and [{"text":"a"},{"text":"b"}].
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text{s}
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Text, 0, len(raw))
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			out = append(out, s)
			continue
		}
		var run struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(r, &run); err != nil {
			return err
		}
		out = append(out, run.Text)
	}
	*t = out
	return nil
}

// MarshalJSON writes a single run as a string and several as a list.
// Text is written verbatim; "<", ">" and "&" are not escaped.
func (t Text) MarshalJSON() ([]byte, error) {
	var v any = []string(t)
	if len(t) == 1 {
		v = t[0]
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Element is a slide object as the host document stores it. slidelint reads
// its markers and geometry and only ever writes the X and Y fields.
//
// Geometry lives in the top-level group (x, y, w, h) and/or in Options.
// When Options carries any position field it is authoritative for reads;
// writes go to every group that stores a position.
type Element struct {
	Placement
	Options *Placement `json:"options,omitempty"`

	// Kind is the explicit discriminator; "line" marks a true line element.
	Kind string `json:"_type,omitempty"`
	// Type is a free-form explicit type name.
	Type string `json:"type,omitempty"`
	Name string `json:"name,omitempty"`

	Text      Text            `json:"text,omitempty"`
	Image     string          `json:"image,omitempty"`
	Path      string          `json:"path,omitempty"`
	Data      string          `json:"data,omitempty"`
	ChartType string          `json:"chartType,omitempty"`
	Shape     string          `json:"shape,omitempty"`
	Line      *Stroke         `json:"line,omitempty"`
	Fill      *Fill           `json:"fill,omitempty"`
	MediaType string          `json:"mediaType,omitempty"`
	Table     json.RawMessage `json:"table,omitempty"`
	Rows      json.RawMessage `json:"rows,omitempty"`
	SmartArt  json.RawMessage `json:"smartart,omitempty"`
}

// F returns a pointer to v, for building elements in code.
func F(v float64) *float64 { return &v }

// NewElement returns an element with its geometry in the top-level group.
func NewElement(x, y, w, h float64) *Element {
	return &Element{Placement: Placement{X: F(x), Y: F(y), W: F(w), H: F(h)}}
}

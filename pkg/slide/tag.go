package slide

import "bytes"

// Tag is the semantic type inferred for an element.
type Tag string

const (
	TagLine     Tag = "line"
	TagText     Tag = "text"
	TagImage    Tag = "image"
	TagChart    Tag = "chart"
	TagShape    Tag = "shape"
	TagMedia    Tag = "media"
	TagTable    Tag = "table"
	TagSmartArt Tag = "smartart"
	TagUnknown  Tag = "unknown"
)

// IsLine reports whether t marks a true line element.
func (t Tag) IsLine() bool { return t == TagLine }

// Classify infers the semantic tag of el. The first matching rule wins:
//
//  1. explicit discriminator "line"
//  2. any explicit type string, verbatim
//  3. text content
//  4. image path or data
//  5. chart type
//  6. shape name or stroke style
//  7. media type
//  8. table object or row list
//  9. smart diagram
//
// Anything else is TagUnknown. A shape drawn with a stroke stays a shape;
// only the explicit discriminator makes an element a line.
func Classify(el *Element) Tag {
	switch {
	case el == nil:
		return TagUnknown
	case el.Kind == string(TagLine):
		return TagLine
	case el.Type != "":
		return Tag(el.Type)
	case !el.Text.Empty():
		return TagText
	case el.Image != "" || el.Path != "" || el.Data != "":
		return TagImage
	case el.ChartType != "":
		return TagChart
	case el.Shape != "" || el.Line != nil:
		return TagShape
	case el.MediaType != "":
		return TagMedia
	case present(el.Table) || present(el.Rows):
		return TagTable
	case present(el.SmartArt):
		return TagSmartArt
	}
	return TagUnknown
}

func present(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

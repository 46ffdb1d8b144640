package arrange

import (
	"strings"

	"github.com/matzehuels/slidelint/pkg/errors"
)

// Alignment is the edge or center line Align snaps to.
type Alignment string

const (
	AlignLeft             Alignment = "left"
	AlignRight            Alignment = "right"
	AlignTop              Alignment = "top"
	AlignBottom           Alignment = "bottom"
	AlignHorizontalCenter Alignment = "horizontallyCenter"
	AlignVerticalCenter   Alignment = "verticallyCenter"
)

// Alignments lists every supported mode.
var Alignments = []Alignment{
	AlignLeft, AlignRight, AlignTop, AlignBottom, AlignHorizontalCenter, AlignVerticalCenter,
}

var alignmentAliases = map[string]Alignment{
	"hcenter":  AlignHorizontalCenter,
	"center-h": AlignHorizontalCenter,
	"vcenter":  AlignVerticalCenter,
	"center-v": AlignVerticalCenter,
	"middle":   AlignVerticalCenter,
}

// Valid reports whether a is a supported mode.
func (a Alignment) Valid() bool {
	for _, m := range Alignments {
		if a == m {
			return true
		}
	}
	return false
}

// ParseAlignment resolves a mode name case-insensitively, accepting the
// short aliases hcenter and vcenter.
func ParseAlignment(s string) (Alignment, error) {
	for _, m := range Alignments {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	if m, ok := alignmentAliases[strings.ToLower(s)]; ok {
		return m, nil
	}
	return "", errors.New(errors.ErrCodeUnsupportedAlignment, "unsupported alignment %q", s)
}

// Direction is the axis Distribute spaces along.
type Direction string

const (
	Horizontal Direction = "horizontal"
	Vertical   Direction = "vertical"
)

// Valid reports whether d is a supported axis.
func (d Direction) Valid() bool { return d == Horizontal || d == Vertical }

// ParseDirection resolves an axis name case-insensitively; "h" and "v"
// are accepted.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "horizontal", "h", "x":
		return Horizontal, nil
	case "vertical", "v", "y":
		return Vertical, nil
	}
	return "", errors.New(errors.ErrCodeUnsupportedDistributionDirection, "unsupported distribution direction %q", s)
}

package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/slidelint/pkg/slide"
)

// UnknownSlide labels a slide whose position in its document is not known.
const UnknownSlide = "(Unknown slide index)"

// SlideLabel returns "Slide N" for an attached slide and UnknownSlide otherwise.
func SlideLabel(s *slide.Slide) string {
	if n, ok := s.Number(); ok {
		return fmt.Sprintf("Slide %d", n)
	}
	return UnknownSlide
}

// FormatNumber prints v with at most four decimals and no trailing zeros.
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}

package arrange

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/slidelint/pkg/errors"
	"github.com/matzehuels/slidelint/pkg/slide"
)

// ParseIndices parses a comma- or space-separated list of element indices,
// as given on the command line.
func ParseIndices(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	if len(fields) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidIndices, "no indices given")
	}
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidIndices, "index %q is not an integer", f)
		}
		out = append(out, n)
	}
	return out, nil
}

// ParseIndexValues converts decoded JSON values to indices. Numbers must
// be integral; anything else is rejected. Integers too large for int are
// reported as out of bounds.
func ParseIndexValues(vals []any) ([]int, error) {
	out := make([]int, 0, len(vals))
	for _, v := range vals {
		var f float64
		switch n := v.(type) {
		case int:
			out = append(out, n)
			continue
		case float64:
			f = n
		case json.Number:
			if i, err := n.Int64(); err == nil {
				if i > int64(math.MaxInt) || i < int64(math.MinInt) {
					return nil, errors.New(errors.ErrCodeIndexOutOfBounds, "index %v out of range", v)
				}
				out = append(out, int(i))
				continue
			}
			parsed, err := n.Float64()
			if err != nil {
				return nil, errors.New(errors.ErrCodeInvalidIndices, "index %v is not an integer", v)
			}
			f = parsed
		default:
			return nil, errors.New(errors.ErrCodeInvalidIndices, "index %v is not an integer", v)
		}
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			return nil, errors.New(errors.ErrCodeInvalidIndices, "index %v is not an integer", v)
		}
		if math.Abs(f) >= math.MaxInt {
			return nil, errors.New(errors.ErrCodeIndexOutOfBounds, "index %v out of range", v)
		}
		out = append(out, int(f))
	}
	return out, nil
}

// selection validates every index against s and returns the distinct ones
// in first-seen order.
func selection(s *slide.Slide, indices []int) ([]int, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	n := len(s.Elements)
	seen := make(map[int]bool, len(indices))
	out := make([]int, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= n {
			return nil, errors.New(errors.ErrCodeIndexOutOfBounds, "index %d out of range [0, %d)", i, n)
		}
		if seen[i] {
			continue
		}
		seen[i] = true
		out = append(out, i)
	}
	return out, nil
}

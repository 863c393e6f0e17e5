package version

import (
	"fmt"
	"strconv"
	"strings"
)

// NumericComparator compares versions made of one or more non-negative
// integers separated by dots. Missing trailing parts count as zero, so
// "1.2" equals "1.2.0".
type NumericComparator struct{}

func NewNumericComparator() *NumericComparator {
	return &NumericComparator{}
}

func (NumericComparator) Compare(a, b string) (int, error) {
	first, err := parseNumeric(a)
	if err != nil {
		return 0, err
	}
	second, err := parseNumeric(b)
	if err != nil {
		return 0, err
	}

	n := max(len(first), len(second))
	for i := range n {
		var x, y int64
		if i < len(first) {
			x = first[i]
		}
		if i < len(second) {
			y = second[i]
		}
		if c := compareInts(x, y); c != 0 {
			return c, nil
		}
	}
	return 0, nil
}

func parseNumeric(v string) ([]int64, error) {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: version string cannot be blank", ErrInvalidVersion)
	}

	parts := strings.Split(trimmed, ".")
	out := make([]int64, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("%w: empty part in %q", ErrInvalidVersion, v)
		}
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: part %q is not numeric in %q", ErrInvalidVersion, part, v)
		}
		out = append(out, n)
	}
	return out, nil
}

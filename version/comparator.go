package version

// Comparator orders two version strings. Compare returns zero when the
// versions are equal, a positive number when a is greater and a negative
// number when a is smaller. Malformed input yields an error wrapping
// ErrInvalidVersion.
type Comparator interface {
	Compare(a, b string) (int, error)
}

// ComparatorFunc adapts a function to the Comparator interface.
type ComparatorFunc func(a, b string) (int, error)

func (f ComparatorFunc) Compare(a, b string) (int, error) {
	return f(a, b)
}

// IsGreater reports whether a is strictly greater than b.
func IsGreater(cmp Comparator, a, b string) (bool, error) {
	c, err := cmp.Compare(a, b)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

func compareInts(a, b int64) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

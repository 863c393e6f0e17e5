package version

import (
	"fmt"

	"github.com/Masterminds/semver"
)

// SemverComparator compares Semantic Versions, including pre-release
// precedence ("1.0.0-beta" < "1.0.0"). A leading "v" and short forms such as
// "1.2" are accepted.
type SemverComparator struct{}

func NewSemverComparator() *SemverComparator {
	return &SemverComparator{}
}

func (SemverComparator) Compare(a, b string) (int, error) {
	v1, err := semver.NewVersion(a)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidVersion, a, err)
	}
	v2, err := semver.NewVersion(b)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidVersion, b, err)
	}
	return v1.Compare(v2), nil
}

// ComparatorByName resolves "numeric", "build" or "semver".
func ComparatorByName(name string) (Comparator, error) {
	switch name {
	case "", "numeric":
		return NewNumericComparator(), nil
	case "build":
		return NewBuildComparator(), nil
	case "semver":
		return NewSemverComparator(), nil
	default:
		return nil, fmt.Errorf("unknown comparator %q", name)
	}
}

package version

import (
	"fmt"
	"regexp"
	"strconv"
)

// buildPattern matches "1", "1.2", "1.2.3" and "1.2.3-45", surrounded by optional whitespace.
var buildPattern = regexp.MustCompile(`^\s*(\d+)(?:\.(\d+))?(?:\.(\d+))?(?:-(\d+))?\s*$`)

// BuildVersion is a major.minor.patch version with a build number.
type BuildVersion struct {
	Major int64
	Minor int64
	Patch int64
	Build int64
}

func (v BuildVersion) String() string {
	return fmt.Sprintf("%d.%d.%d-%d", v.Major, v.Minor, v.Patch, v.Build)
}

// ParseBuildVersion parses strictly; missing components are zero.
func ParseBuildVersion(raw string) (BuildVersion, error) {
	m := buildPattern.FindStringSubmatch(raw)
	if m == nil {
		return BuildVersion{}, fmt.Errorf("%w: %q", ErrInvalidVersion, raw)
	}

	var nums [4]int64
	for i := range nums {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.ParseInt(m[i+1], 10, 64)
		if err != nil {
			return BuildVersion{}, fmt.Errorf("%w: %q: %w", ErrInvalidVersion, raw, err)
		}
		nums[i] = n
	}
	return BuildVersion{Major: nums[0], Minor: nums[1], Patch: nums[2], Build: nums[3]}, nil
}

// BuildComparator orders versions by major, minor, patch and then build number.
type BuildComparator struct{}

func NewBuildComparator() *BuildComparator {
	return &BuildComparator{}
}

func (BuildComparator) Compare(a, b string) (int, error) {
	v1, err := ParseBuildVersion(a)
	if err != nil {
		return 0, err
	}
	v2, err := ParseBuildVersion(b)
	if err != nil {
		return 0, err
	}

	for _, pair := range [][2]int64{
		{v1.Major, v2.Major},
		{v1.Minor, v2.Minor},
		{v1.Patch, v2.Patch},
		{v1.Build, v2.Build},
	} {
		if c := compareInts(pair[0], pair[1]); c != 0 {
			return c, nil
		}
	}
	return 0, nil
}

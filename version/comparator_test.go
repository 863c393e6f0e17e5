package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericComparator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "equal", a: "1.2.3", b: "1.2.3", want: 0},
		{name: "missing parts are zero", a: "1.2", b: "1.2.0", want: 0},
		{name: "numeric not lexical", a: "1.10.0", b: "1.9.0", want: 1},
		{name: "smaller major", a: "1.99", b: "2", want: -1},
		{name: "longer greater", a: "1.2.3.1", b: "1.2.3", want: 1},
		{name: "whitespace trimmed", a: " 2.0 ", b: "2.0", want: 0},
		{name: "large parts", a: "2024.10.19", b: "2024.9.30", want: 1},
	}

	cmp := NewNumericComparator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cmp.Compare(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("invalid", func(t *testing.T) {
		for _, bad := range []string{"", "  ", "1..2", "1.a", "1.2-3", "-1", ".1"} {
			_, err := cmp.Compare(bad, "1.0")
			require.ErrorIs(t, err, ErrInvalidVersion, "input %q", bad)
			_, err = cmp.Compare("1.0", bad)
			require.ErrorIs(t, err, ErrInvalidVersion, "input %q", bad)
		}
	})
}

func TestBuildComparator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "equal full", a: "1.2.3-45", b: "1.2.3-45", want: 0},
		{name: "build breaks tie", a: "1.2.3-46", b: "1.2.3-45", want: 1},
		{name: "missing build is zero", a: "1.2.3", b: "1.2.3-1", want: -1},
		{name: "short forms", a: "1", b: "1.0.0", want: 0},
		{name: "patch beats build", a: "1.2.4", b: "1.2.3-99", want: 1},
		{name: "surrounding whitespace", a: " 2.0 ", b: "1.9.9", want: 1},
	}

	cmp := NewBuildComparator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cmp.Compare(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("invalid", func(t *testing.T) {
		for _, bad := range []string{"", "1.2.3.4", "1.2.3-beta", "v1.2", "1.2."} {
			_, err := cmp.Compare(bad, "1.0")
			require.ErrorIs(t, err, ErrInvalidVersion, "input %q", bad)
		}
	})
}

func TestParseBuildVersion(t *testing.T) {
	t.Parallel()

	v, err := ParseBuildVersion("3.4.5-6")
	require.NoError(t, err)
	require.Equal(t, BuildVersion{Major: 3, Minor: 4, Patch: 5, Build: 6}, v)
	require.Equal(t, "3.4.5-6", v.String())

	v, err = ParseBuildVersion("7.1")
	require.NoError(t, err)
	require.Equal(t, BuildVersion{Major: 7, Minor: 1}, v)
}

func TestSemverComparator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "equal", a: "1.2.3", b: "1.2.3", want: 0},
		{name: "prerelease lower", a: "1.0.0-beta", b: "1.0.0", want: -1},
		{name: "prefix v", a: "v2.0.0", b: "1.9.9", want: 1},
		{name: "short form", a: "1.2", b: "1.2.0", want: 0},
	}

	cmp := NewSemverComparator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cmp.Compare(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := cmp.Compare("not-a-version", "1.0.0")
	require.ErrorIs(t, err, ErrInvalidVersion)
	_, err = cmp.Compare("1.0.0", "")
	require.ErrorIs(t, err, ErrInvalidVersion)
}

func TestIsGreater(t *testing.T) {
	t.Parallel()

	cmp := NewNumericComparator()
	ok, err := IsGreater(cmp, "2.0", "1.9")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = IsGreater(cmp, "1.9", "1.9")
	require.NoError(t, err)
	require.False(t, ok)

	_, err = IsGreater(cmp, "x", "1")
	require.ErrorIs(t, err, ErrInvalidVersion)

	reversed := ComparatorFunc(func(a, b string) (int, error) {
		return cmp.Compare(b, a)
	})
	ok, err = IsGreater(reversed, "1.0", "2.0")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestComparatorByName(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]Comparator{
		"":        &NumericComparator{},
		"numeric": &NumericComparator{},
		"build":   &BuildComparator{},
		"semver":  &SemverComparator{},
	} {
		got, err := ComparatorByName(name)
		require.NoError(t, err)
		require.IsType(t, want, got)
	}

	_, err := ComparatorByName("calendar")
	require.ErrorContains(t, err, "unknown comparator")
}

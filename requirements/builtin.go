package requirements

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/Masterminds/semver"

	"github.com/robbyt/go-princeofversions/version"
)

// OSVersionChecker approves a requirement when the host OS version is at
// least the required one. The OS version is supplied by the caller since
// there is no portable way to read it.
type OSVersionChecker struct {
	current    string
	comparator version.Comparator
}

// NewOSVersionChecker uses a NumericComparator when comparator is nil.
func NewOSVersionChecker(current string, comparator version.Comparator) *OSVersionChecker {
	if comparator == nil {
		comparator = version.NewNumericComparator()
	}
	return &OSVersionChecker{current: current, comparator: comparator}
}

func (c *OSVersionChecker) CheckRequirement(_ context.Context, required string) (bool, error) {
	cmp, err := c.comparator.Compare(c.current, required)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidRequirement, err)
	}
	return cmp >= 0, nil
}

// RuntimeVersionChecker approves a requirement when the Go runtime that runs
// the application is at least the required release, e.g. "1.22".
type RuntimeVersionChecker struct {
	runtimeVersion func() string
	comparator     version.Comparator
}

func NewRuntimeVersionChecker() *RuntimeVersionChecker {
	return &RuntimeVersionChecker{
		runtimeVersion: runtime.Version,
		comparator:     version.NewNumericComparator(),
	}
}

func (c *RuntimeVersionChecker) CheckRequirement(_ context.Context, required string) (bool, error) {
	current, err := normalizeGoVersion(c.runtimeVersion())
	if err != nil {
		return false, err
	}

	cmp, err := c.comparator.Compare(current, strings.TrimPrefix(strings.TrimSpace(required), "go"))
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidRequirement, err)
	}
	return cmp >= 0, nil
}

// normalizeGoVersion turns "go1.22.3" or "go1.23rc1 X:foo" into a dotted number.
func normalizeGoVersion(raw string) (string, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: empty runtime version", ErrInvalidRequirement)
	}
	v, ok := strings.CutPrefix(fields[0], "go")
	if !ok {
		return "", fmt.Errorf("%w: unrecognised runtime version %q", ErrInvalidRequirement, raw)
	}
	end := strings.IndexFunc(v, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})
	if end >= 0 {
		v = v[:end]
	}
	if v == "" {
		return "", fmt.Errorf("%w: unrecognised runtime version %q", ErrInvalidRequirement, raw)
	}
	return v, nil
}

// ConstraintChecker treats the requirement value as a semver constraint
// (">= 1.2, < 2") and checks a fixed version against it.
type ConstraintChecker struct {
	current *semver.Version
}

func NewConstraintChecker(current string) (*ConstraintChecker, error) {
	v, err := semver.NewVersion(current)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", version.ErrInvalidVersion, current, err)
	}
	return &ConstraintChecker{current: v}, nil
}

func (c *ConstraintChecker) CheckRequirement(_ context.Context, constraint string) (bool, error) {
	cs, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("%w: constraint %q: %w", ErrInvalidRequirement, constraint, err)
	}
	return cs.Check(c.current), nil
}

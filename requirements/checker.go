// Package requirements decides whether an update entry applies to the
// current environment.
//
// An update configuration entry may carry requirements such as
// {"required_os_version": "13"}. Each key is handled by a registered Checker;
// the Processor accepts an entry only if every key has a checker and every
// checker approves.
package requirements

import (
	"context"
	"errors"
)

// Well-known requirement keys.
const (
	KeyOSVersion         = "required_os_version"
	KeyRuntimeVersion    = "required_go_version"
	KeyVersionConstraint = "required_version_constraint"
)

var (
	ErrInvalidRequirement = errors.New("invalid requirement")

	// Scripted checkers.
	ErrScriptCompile = errors.New("requirement script failed to compile")
	ErrScriptExec    = errors.New("requirement script failed to execute")
	ErrScriptResult  = errors.New("requirement script did not produce a bool")
)

// Checker evaluates the value of a single requirement.
type Checker interface {
	CheckRequirement(ctx context.Context, value string) (bool, error)
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(ctx context.Context, value string) (bool, error)

func (f CheckerFunc) CheckRequirement(ctx context.Context, value string) (bool, error) {
	return f(ctx, value)
}

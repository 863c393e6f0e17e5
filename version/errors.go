package version

import "errors"

var (
	ErrInvalidVersion     = errors.New("invalid version")
	ErrVersionUnavailable = errors.New("version unavailable")
)

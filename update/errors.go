package update

import (
	"errors"
	"fmt"
	"maps"
)

var (
	// ErrNoVersions is returned when a configuration names neither a
	// mandatory nor an optional version.
	ErrNoVersions = errors.New("configuration contains no mandatory or optional version")

	ErrInvalidConfiguration = errors.New("invalid update configuration")
	ErrNoUpdate             = errors.New("there is no update available")
	ErrNotOptional          = errors.New("there is no optional update available")
)

// RequirementsNotSatisfiedError means an update exists but none of its
// entries apply to this environment. Metadata is the configuration's root
// metadata.
type RequirementsNotSatisfiedError struct {
	Metadata map[string]string
}

func NewRequirementsNotSatisfiedError(metadata map[string]string) *RequirementsNotSatisfiedError {
	return &RequirementsNotSatisfiedError{Metadata: maps.Clone(metadata)}
}

func (e *RequirementsNotSatisfiedError) Error() string {
	return fmt.Sprintf("requirements not satisfied, metadata: %v", e.Metadata)
}

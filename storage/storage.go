// Package storage remembers the last version a user was notified about.
package storage

import (
	"context"
	"errors"
)

var ErrStorageUnavailable = errors.New("storage unavailable")

// Storage persists the last notified version.
type Storage interface {
	// LastSavedVersion returns the saved version and whether one exists.
	LastSavedVersion(ctx context.Context) (string, bool, error)
	SaveVersion(ctx context.Context, version string) error
}

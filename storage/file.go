package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

const (
	// KeyLastNotifiedVersion is the document field holding the version.
	KeyLastNotifiedVersion = "last_notified_version"

	defaultFileName = "princeofversions.json"
)

type fileDocument struct {
	LastNotifiedVersion *string `json:"last_notified_version,omitempty"`
}

// File stores the version in a small JSON document. Writes go to a temporary
// file in the same directory which is then renamed over the target.
type File struct {
	path string
	mu   sync.Mutex
}

var _ Storage = (*File)(nil)

func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: path is empty", ErrStorageUnavailable)
	}
	return &File{path: filepath.Clean(path)}, nil
}

// DefaultFilePath returns <user config dir>/<appID>/princeofversions.json.
func DefaultFilePath(appID string) (string, error) {
	if appID == "" {
		return "", fmt.Errorf("%w: application id is empty", ErrStorageUnavailable)
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return filepath.Join(dir, appID, defaultFileName), nil
}

func (f *File) Path() string {
	return f.path
}

func (f *File) String() string {
	return fmt.Sprintf("storage.File{Path: %s}", f.path)
}

func (f *File) LastSavedVersion(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", false, fmt.Errorf("%w: corrupt state file %s: %w", ErrStorageUnavailable, f.path, err)
	}
	if doc.LastNotifiedVersion == nil {
		return "", false, nil
	}
	return *doc.LastNotifiedVersion, true, nil
}

func (f *File) SaveVersion(ctx context.Context, version string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.MarshalIndent(fileDocument{LastNotifiedVersion: &version}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	tmp, err := os.CreateTemp(dir, ".princeofversions-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return nil
}

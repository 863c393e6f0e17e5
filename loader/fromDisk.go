package loader

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/robbyt/go-princeofversions/internal/helpers"
)

// FromDisk reads the configuration from a local file on every Load.
type FromDisk struct {
	path      string
	sourceURL *url.URL
}

func NewFromDisk(path string) (*FromDisk, error) {
	path = strings.TrimPrefix(path, "file://")

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return nil, fmt.Errorf("%w: %s", ErrSchemeUnsupported, path)
	}

	if !filepath.IsAbs(path) {
		return nil, fmt.Errorf("%w: relative paths are not supported", ErrConfigNotAvailable)
	}

	path = filepath.Clean(path)
	if path == "/" || path == "\\" {
		return nil, fmt.Errorf("%w: path is empty or invalid", ErrConfigNotAvailable)
	}

	u := &url.URL{Scheme: "file", Path: path}

	return &FromDisk{
		path:      path,
		sourceURL: u,
	}, nil
}

func (l *FromDisk) String() string {
	content, err := os.ReadFile(l.path)
	if err != nil {
		return fmt.Sprintf("loader.FromDisk{Path: %s}", l.path)
	}
	return fmt.Sprintf("loader.FromDisk{Path: %s, SHA256: %s}", l.path, helpers.ShortSHA256(string(content)))
}

func (l *FromDisk) Load(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	content, err := os.ReadFile(l.path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrConfigNotAvailable, err)
	}
	return string(content), nil
}

// GetSourceURL returns the source URL of the configuration.
func (l *FromDisk) GetSourceURL() *url.URL {
	return l.sourceURL
}

// Package loader provides sources for update configuration content.
package loader

import (
	"context"
	"net/url"
)

// Loader fetches the raw text of an update configuration.
type Loader interface {
	// Load returns the full configuration content, or an error if the source
	// could not be read.
	Load(ctx context.Context) (string, error)

	// GetSourceURL identifies where the content comes from, for logging.
	GetSourceURL() *url.URL
}

package loader

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/robbyt/go-princeofversions/internal/helpers"
)

// FromString serves configuration content held in memory.
type FromString struct {
	content   string
	sourceURL *url.URL
}

func NewFromString(content string) (*FromString, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is empty", ErrInputEmpty)
	}

	u, err := url.Parse("string://inline/" + helpers.ShortSHA256(content))
	if err != nil {
		return nil, fmt.Errorf("failed to create source URL: %w", err)
	}

	return &FromString{
		content:   content,
		sourceURL: u,
	}, nil
}

func (l *FromString) String() string {
	return fmt.Sprintf("loader.FromString{Chars: %d}", len(l.content))
}

func (l *FromString) Load(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return l.content, nil
}

// GetSourceURL returns the source URL of the configuration.
func (l *FromString) GetSourceURL() *url.URL {
	return l.sourceURL
}

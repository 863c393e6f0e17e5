package options

import (
	"log/slog"
	"os"

	"github.com/robbyt/go-princeofversions/requirements"
	"github.com/robbyt/go-princeofversions/storage"
	"github.com/robbyt/go-princeofversions/version"
)

const DefaultPlatform = "ios"

// DefaultConfig returns a Config with everything but the version provider
// filled in.
func DefaultConfig() *Config {
	return &Config{
		handler:    DefaultHandler(),
		comparator: DefaultComparator(),
		storage:    storage.NewMemory(),
		checkers:   DefaultCheckers(),
		platform:   DefaultPlatform,
	}
}

// DefaultHandler returns the default logging handler
func DefaultHandler() slog.Handler {
	return slog.NewTextHandler(os.Stderr, nil)
}

func DefaultComparator() version.Comparator {
	return version.NewNumericComparator()
}

// DefaultCheckers returns the checkers registered unless overridden.
func DefaultCheckers() map[string]requirements.Checker {
	return map[string]requirements.Checker{
		requirements.KeyRuntimeVersion: requirements.NewRuntimeVersionChecker(),
	}
}

// WithDefaults applies default values to any config properties that are nil
func WithDefaults() Option {
	return func(c *Config) error {
		if c.handler == nil {
			c.handler = DefaultHandler()
		}
		if c.comparator == nil {
			c.comparator = DefaultComparator()
		}
		if c.storage == nil {
			c.storage = storage.NewMemory()
		}
		if c.platform == "" {
			c.platform = DefaultPlatform
		}
		if c.checkers == nil {
			c.checkers = make(map[string]requirements.Checker)
		}
		for k, v := range DefaultCheckers() {
			if _, ok := c.checkers[k]; !ok {
				c.checkers[k] = v
			}
		}
		return nil
	}
}
